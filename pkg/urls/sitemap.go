package urls

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"sync"

	"store-scraper/pkg/httpclient"

	"golang.org/x/sync/errgroup"
)

// XML structures for parsing sitemap XML

// urlSet represents a regular sitemap structure
type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	URLs    []urlEntry `xml:"url"`
}

// urlEntry represents a single URL entry in XML
type urlEntry struct {
	Location string `xml:"loc"`
	LastMod  string `xml:"lastmod,omitempty"`
}

// sitemapIndex represents a sitemap index structure
type sitemapIndex struct {
	XMLName  xml.Name     `xml:"sitemapindex"`
	Sitemaps []sitemapRef `xml:"sitemap"`
}

// sitemapRef represents a reference to another sitemap in an index
type sitemapRef struct {
	Location string `xml:"loc"`
}

// SitemapFetcher discovers store URLs from the site's sitemap. It is an
// alternate discovery source for when the listing page is unavailable or
// restructured.
type SitemapFetcher struct {
	client *httpclient.HTTPClient
}

// NewSitemapFetcher creates a new sitemap fetcher
func NewSitemapFetcher(client *httpclient.HTTPClient) *SitemapFetcher {
	return &SitemapFetcher{client: client}
}

// Fetch downloads and parses a sitemap. A sitemap index fans out to its
// child sitemaps with bounded concurrency; a failing child is logged and
// skipped so one broken sitemap doesn't hide the rest.
func (f *SitemapFetcher) Fetch(ctx context.Context, sitemapURL string) ([]string, error) {
	body, err := f.client.GetBody(ctx, sitemapURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sitemap: %w", err)
	}

	if bytes.Contains(body, []byte("<sitemapindex")) {
		refs, err := parseSitemapIndex(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to parse sitemap index: %w", err)
		}
		return f.fetchIndexed(ctx, refs)
	}

	entries, err := parseSitemap(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse sitemap: %w", err)
	}
	return entries, nil
}

// fetchIndexed fetches every child sitemap of an index, at most four at a time.
func (f *SitemapFetcher) fetchIndexed(ctx context.Context, refs []string) ([]string, error) {
	var (
		mu  sync.Mutex
		all []string
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, ref := range refs {
		ref := ref
		g.Go(func() error {
			entries, err := f.Fetch(ctx, ref)
			if err != nil {
				log.Printf("Skipping sitemap %s: %v", ref, err)
				return nil // best-effort: don't cancel siblings
			}
			mu.Lock()
			all = append(all, entries...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("no entries found in any sitemap from index")
	}
	return all, nil
}

// parseSitemapIndex parses a sitemap index file
func parseSitemapIndex(reader io.Reader) ([]string, error) {
	var index sitemapIndex
	if err := xml.NewDecoder(reader).Decode(&index); err != nil {
		return nil, fmt.Errorf("failed to decode sitemap index XML: %w", err)
	}

	refs := make([]string, 0, len(index.Sitemaps))
	for _, ref := range index.Sitemaps {
		if ref.Location != "" {
			refs = append(refs, ref.Location)
		}
	}
	return refs, nil
}

// parseSitemap parses a regular sitemap XML
func parseSitemap(reader io.Reader) ([]string, error) {
	var set urlSet
	if err := xml.NewDecoder(reader).Decode(&set); err != nil {
		return nil, fmt.Errorf("failed to decode sitemap XML: %w", err)
	}

	entries := make([]string, 0, len(set.URLs))
	for _, entry := range set.URLs {
		if entry.Location != "" {
			entries = append(entries, entry.Location)
		}
	}
	return entries, nil
}
