package domain

// StoreRecord represents a single restaurant location scraped from the site.
// URL is the only field guaranteed to be present; everything else is
// best-effort and stays nil/empty when the page didn't provide it.
type StoreRecord struct {
	Name         *string        `json:"name" bson:"name"`
	Address      *string        `json:"address" bson:"address"`
	Phone        *string        `json:"phone" bson:"phone"`
	Description  *string        `json:"description" bson:"description"`
	Services     []string       `json:"services" bson:"services"`
	OpeningHours []TradingHours `json:"opening_hours" bson:"opening_hours"`
	Latitude     *float64       `json:"latitude" bson:"latitude"`
	Longitude    *float64       `json:"longitude" bson:"longitude"`
	URL          string         `json:"url" bson:"url"`
}

// TradingHours is one day's opening hours entry.
type TradingHours struct {
	Name        string `json:"name" bson:"name"`               // day label, e.g. "Monday"
	Description string `json:"description" bson:"description"` // e.g. "11AM - 9PM" or "Closed"
	IsClosed    bool   `json:"isClosed" bson:"is_closed"`
}
