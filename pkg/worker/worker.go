package worker

import (
	"context"
	"errors"
	"fmt"

	"store-scraper/pkg/capture"
	"store-scraper/pkg/domain"
	"store-scraper/pkg/extract"
	"store-scraper/pkg/httpclient"
)

// Scraper processes a single store page: fetch, then extract.
type Scraper struct {
	client  *httpclient.HTTPClient
	capture *capture.Capture
}

// NewScraper creates a new scraper. dump may be nil to disable diagnostic
// capture.
func NewScraper(client *httpclient.HTTPClient, dump *capture.Capture) *Scraper {
	return &Scraper{
		client:  client,
		capture: dump,
	}
}

// ScrapeStore fetches one store page and extracts its record. A transport
// failure, a missing data block or a parse failure all surface as an error;
// the caller counts the page as processed and moves on.
func (s *Scraper) ScrapeStore(ctx context.Context, url string) (*domain.StoreRecord, error) {
	body, err := s.client.GetBody(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch store page: %w", err)
	}

	record, err := extract.Extract(body, url)
	if err != nil {
		if errors.Is(err, extract.ErrNoStructuredData) {
			s.capture.Dump(url, body)
		}
		return nil, fmt.Errorf("failed to extract store data: %w", err)
	}

	return record, nil
}
