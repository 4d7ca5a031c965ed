package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"store-scraper/pkg/domain"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoStructuredData means the page carried no usable ld+json block. The
// structured-data block is the only reliable source of name/address/phone,
// so without it the page yields no record at all.
var ErrNoStructuredData = errors.New("structured data block not found")

// page is one fetched detail page, parsed once and shared by all strategies.
type page struct {
	doc *goquery.Document
	url string
}

// partial holds whatever fields a single strategy managed to pull out of the
// page. Strategies are pure: they read the page and fill a partial, nothing
// else.
type partial struct {
	name        *string
	address     *string
	phone       *string
	description *string
	services    []string
	hours       []domain.TradingHours
	latitude    *float64
	longitude   *float64
}

// Extract runs the extraction strategies over a page body in priority order
// and merges their outputs into one record. The structured-data strategy is
// load-bearing: if it fails the whole extraction fails. The later strategies
// only ever fill fields the earlier ones left absent, so their internal
// failures degrade to "found nothing".
func Extract(body []byte, pageURL string) (*domain.StoreRecord, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	p := &page{doc: doc, url: pageURL}

	structured, err := structuredData(p)
	if err != nil {
		return nil, err
	}

	parts := []partial{structured, embeddedState(p), visibleMarkup(p)}
	return merge(parts, pageURL), nil
}

// merge folds the strategy outputs left-to-right: the first strategy to
// populate a field wins, the first to produce a non-empty list wins.
func merge(parts []partial, pageURL string) *domain.StoreRecord {
	rec := &domain.StoreRecord{
		URL:          pageURL,
		Services:     []string{},
		OpeningHours: []domain.TradingHours{},
	}

	for _, p := range parts {
		if rec.Name == nil {
			rec.Name = p.name
		}
		if rec.Address == nil {
			rec.Address = p.address
		}
		if rec.Phone == nil {
			rec.Phone = p.phone
		}
		if rec.Description == nil {
			rec.Description = p.description
		}
		if rec.Latitude == nil {
			rec.Latitude = p.latitude
		}
		if rec.Longitude == nil {
			rec.Longitude = p.longitude
		}
		if len(rec.Services) == 0 && len(p.services) > 0 {
			rec.Services = p.services
		}
		if len(rec.OpeningHours) == 0 && len(p.hours) > 0 {
			rec.OpeningHours = p.hours
		}
	}

	return rec
}

// strptr returns a pointer to the trimmed string, or nil when it is empty.
func strptr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
