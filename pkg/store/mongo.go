package store

import (
	"context"
	"fmt"

	"store-scraper/pkg/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClient wraps the MongoDB client and collection used as an optional
// persistence sink.
type MongoClient struct {
	mongoClient *mongo.Client
	database    *mongo.Database
	collection  *mongo.Collection
}

// NewMongoClient creates a new MongoDB-backed sink.
func NewMongoClient(connectionString, databaseName, collectionName string) *MongoClient {
	clientOptions := options.Client().ApplyURI(connectionString)
	mongoClient, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		// Return client with nil - error will be caught during Connect()
		return &MongoClient{}
	}

	database := mongoClient.Database(databaseName)
	collection := database.Collection(collectionName)

	return &MongoClient{
		mongoClient: mongoClient,
		database:    database,
		collection:  collection,
	}
}

// Connect establishes connection to MongoDB
func (c *MongoClient) Connect(ctx context.Context) error {
	if c.mongoClient == nil {
		return fmt.Errorf("mongo client not initialized")
	}
	return c.mongoClient.Ping(ctx, nil)
}

// Close closes the MongoDB connection
func (c *MongoClient) Close(ctx context.Context) error {
	if c.mongoClient == nil {
		return nil
	}
	return c.mongoClient.Disconnect(ctx)
}

// SaveStores upserts every record, keyed by its url.
func (c *MongoClient) SaveStores(ctx context.Context, stores []domain.StoreRecord) error {
	if c.collection == nil {
		return fmt.Errorf("collection not initialized")
	}

	opts := options.Update().SetUpsert(true)
	for _, s := range stores {
		filter := bson.M{"url": s.URL}
		update := bson.M{"$set": s}
		if _, err := c.collection.UpdateOne(ctx, filter, update, opts); err != nil {
			return fmt.Errorf("upsert store %s: %w", s.URL, err)
		}
	}
	return nil
}
