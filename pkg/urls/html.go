package urls

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/url"
	"sort"
	"strings"

	"store-scraper/pkg/httpclient"

	"github.com/PuerkitoBio/goquery"
)

// richTextAnchors scopes the anchor scan to the page's main rich-text body,
// skipping navigation and footer links.
const richTextAnchors = ".c-body-rich-text a[href]"

// HTMLFetcher discovers store detail URLs from the restaurants listing page.
type HTMLFetcher struct {
	client    *httpclient.HTTPClient
	base      *url.URL
	substring string
}

// NewHTMLFetcher creates a fetcher that keeps anchors whose href contains
// substring and resolves relative targets against baseURL.
func NewHTMLFetcher(client *httpclient.HTTPClient, baseURL, substring string) (*HTMLFetcher, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	return &HTMLFetcher{
		client:    client,
		base:      base,
		substring: substring,
	}, nil
}

// Fetch downloads the listing page and extracts the unique store URLs,
// sorted lexicographically for deterministic runs. Zero matches is not an
// error by itself; the caller decides whether an empty run is fatal.
func (f *HTMLFetcher) Fetch(ctx context.Context, listingURL string) ([]string, error) {
	body, err := f.client.GetBody(ctx, listingURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	seen := make(map[string]bool)
	var storeURLs []string

	doc.Find(richTextAnchors).Each(func(i int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || href == "" {
			return
		}
		if !strings.Contains(href, f.substring) {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		full := f.base.ResolveReference(ref).String()

		if !seen[full] {
			seen[full] = true
			storeURLs = append(storeURLs, full)
		}
	})

	if len(storeURLs) == 0 {
		log.Printf("Warning: no store URLs found on %s. The page structure might have changed.", listingURL)
	}

	sort.Strings(storeURLs)
	return storeURLs, nil
}
