package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"store-scraper/pkg/domain"
)

func strp(s string) *string { return &s }

func TestSortByName(t *testing.T) {
	records := []domain.StoreRecord{
		{Name: strp("beta"), URL: "https://grilld.com.au/restaurants/beta"},
		{Name: nil, URL: "https://grilld.com.au/restaurants/unnamed"},
		{Name: strp("Alpha"), URL: "https://grilld.com.au/restaurants/alpha"},
		{Name: strp("ALPINE"), URL: "https://grilld.com.au/restaurants/alpine"},
	}

	sorted := SortByName(records)

	// absent name sorts first (as empty string), then case-insensitive order
	wantURLs := []string{
		"https://grilld.com.au/restaurants/unnamed",
		"https://grilld.com.au/restaurants/alpha",
		"https://grilld.com.au/restaurants/alpine",
		"https://grilld.com.au/restaurants/beta",
	}
	for i, want := range wantURLs {
		if sorted[i].URL != want {
			t.Errorf("Position %d: expected %s, got %s", i, want, sorted[i].URL)
		}
	}

	// the input slice is left untouched
	if records[0].Name == nil || *records[0].Name != "beta" {
		t.Error("SortByName mutated its input")
	}
}

func TestSortByName_NormalizesNilSlices(t *testing.T) {
	sorted := SortByName([]domain.StoreRecord{{URL: "https://grilld.com.au/restaurants/x"}})

	if sorted[0].Services == nil {
		t.Error("Expected nil services to become an empty slice")
	}
	if sorted[0].OpeningHours == nil {
		t.Error("Expected nil opening hours to become an empty slice")
	}
}

func TestFileSink_RoundTrip(t *testing.T) {
	lat, lon := -37.821, 144.952

	in := []domain.StoreRecord{
		{
			Name:        strp("Café Saint Kilda"),
			Address:     strp("99 Acland St, St Kilda, VIC"),
			Phone:       strp("(03) 9028 5113"),
			Description: strp("Burgers & more by the beach"),
			Services:    []string{"Delivery", "Dine-in"},
			OpeningHours: []domain.TradingHours{
				{Name: "Monday", Description: "11AM - 9PM"},
			},
			Latitude:  &lat,
			Longitude: &lon,
			URL:       "https://grilld.com.au/restaurants/st-kilda",
		},
		{
			URL: "https://grilld.com.au/restaurants/mystery",
		},
	}

	path := filepath.Join(t.TempDir(), "stores.json")
	sink := NewFileSink(path)

	if err := sink.SaveStores(context.Background(), in); err != nil {
		t.Fatalf("SaveStores failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}

	// non-ASCII must survive literally, not as \u escapes
	if !strings.Contains(string(raw), "Café Saint Kilda") {
		t.Error("Expected literal non-ASCII text in output")
	}

	var out []domain.StoreRecord
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(out))
	}

	// unnamed record sorts first; absent arrays come back empty, not null
	if out[0].URL != "https://grilld.com.au/restaurants/mystery" {
		t.Errorf("Expected unnamed record first, got %s", out[0].URL)
	}
	if out[0].Services == nil || out[0].OpeningHours == nil {
		t.Error("Expected empty arrays for absent lists")
	}

	if !reflect.DeepEqual(out[1], SortByName(in)[1]) {
		t.Errorf("Round trip changed the record:\nwant: %+v\ngot:  %+v", SortByName(in)[1], out[1])
	}
}
