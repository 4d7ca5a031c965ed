package urls

import (
	"context"
	"reflect"
	"testing"
)

func TestContainsPathFilter(t *testing.T) {
	filter := NewContainsPathFilter("restaurants/")

	in := []string{
		"https://grilld.com.au/restaurants/alpha",
		"https://grilld.com.au/careers",
		"https://grilld.com.au/restaurants/beta",
	}

	got, err := FilterURLs(context.Background(), in, filter)
	if err != nil {
		t.Fatalf("FilterURLs failed: %v", err)
	}

	want := []string{
		"https://grilld.com.au/restaurants/alpha",
		"https://grilld.com.au/restaurants/beta",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestUnique(t *testing.T) {
	in := []string{"b", "a", "b", "c", "a"}
	want := []string{"a", "b", "c"}

	if got := Unique(in); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}
