package urls

import (
	"context"
	"fmt"

	"github.com/mmcdole/gofeed"
)

// FeedFetcher discovers store URLs from an RSS/Atom feed, for site variants
// that publish their locations through a feed.
type FeedFetcher struct {
	feedParser *gofeed.Parser
}

// NewFeedFetcher creates a new feed fetcher
func NewFeedFetcher() *FeedFetcher {
	return &FeedFetcher{
		feedParser: gofeed.NewParser(),
	}
}

// Fetch fetches and parses an RSS/Atom feed and returns its item links.
func (f *FeedFetcher) Fetch(ctx context.Context, feedURL string) ([]string, error) {
	feed, err := f.feedParser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	if feed == nil || len(feed.Items) == 0 {
		return nil, fmt.Errorf("feed contains no items")
	}

	links := make([]string, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link != "" {
			links = append(links, item.Link)
		}
	}

	if len(links) == 0 {
		return nil, fmt.Errorf("no valid URLs found in feed items")
	}
	return links, nil
}
