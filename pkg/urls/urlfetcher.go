package urls

import "context"

// URLsFetcher defines the interface for detail-URL discovery sources
// (listing page, sitemap, RSS feed).
type URLsFetcher interface {
	Fetch(ctx context.Context, sourceURL string) ([]string, error)
}
