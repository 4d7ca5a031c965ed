package store

import (
	"context"
	"database/sql"

	"store-scraper/pkg/domain"
)

// Sink persists a finished batch of store records.
type Sink interface {
	SaveStores(ctx context.Context, stores []domain.StoreRecord) error
}

// DBProvider is an interface for database clients that provide access to a
// sql.DB handle. This allows both PostgresClient and SupabaseClient to be
// used interchangeably.
type DBProvider interface {
	DB() *sql.DB
}
