package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"store-scraper/pkg/domain"
)

// FileSink writes the aggregated records to a JSON file. This is the sink
// the scraper ships with; the database clients are optional extras.
type FileSink struct {
	path string
}

// NewFileSink creates a sink writing to path.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// SaveStores writes the records as an indented JSON array, sorted by name.
// HTML escaping is off so non-ASCII and ampersands survive literally.
func (s *FileSink) SaveStores(ctx context.Context, stores []domain.StoreRecord) error {
	sorted := SortByName(stores)

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if err := enc.Encode(sorted); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode stores: %w", err)
	}
	return f.Close()
}

// SortByName returns a copy of stores ordered by case-insensitive name;
// records without a name sort first, as the empty string. Nil slices are
// normalized so absent lists serialize as [] rather than null.
func SortByName(stores []domain.StoreRecord) []domain.StoreRecord {
	sorted := make([]domain.StoreRecord, len(stores))
	copy(sorted, stores)

	for i := range sorted {
		if sorted[i].Services == nil {
			sorted[i].Services = []string{}
		}
		if sorted[i].OpeningHours == nil {
			sorted[i].OpeningHours = []domain.TradingHours{}
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return nameKey(sorted[i]) < nameKey(sorted[j])
	})
	return sorted
}

func nameKey(s domain.StoreRecord) string {
	if s.Name == nil {
		return ""
	}
	return strings.ToLower(*s.Name)
}
