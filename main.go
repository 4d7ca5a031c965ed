package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"store-scraper/pkg/capture"
	"store-scraper/pkg/config"
	"store-scraper/pkg/httpclient"
	"store-scraper/pkg/store"
	"store-scraper/pkg/urls"
	"store-scraper/pkg/worker"
)

const configPath = "config.yaml"

func main() {
	start := time.Now()
	ctx := context.Background()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	timeout := time.Duration(cfg.Scrape.TimeoutSeconds) * time.Second
	client := httpclient.NewClient(httpclient.CloudflareClient, timeout)

	storeURLs, err := discoverStoreURLs(ctx, cfg, client)
	if err != nil {
		log.Fatalf("Error fetching store list: %v", err)
	}
	if len(storeURLs) == 0 {
		log.Println("Aborting due to no URLs being found.")
		return
	}
	log.Printf("Found %d unique store URLs.", len(storeURLs))

	dump := capture.New(cfg.Scrape.DebugDir)
	scraper := worker.NewScraper(client, dump)
	manager := worker.NewManager(cfg.Scrape.Workers, scraper)

	log.Printf("Scraping %d store pages with up to %d parallel workers...", len(storeURLs), cfg.Scrape.Workers)
	records := manager.ProcessURLs(ctx, storeURLs)

	log.Printf("Successfully scraped data for %d out of %d stores in %s.",
		len(records), len(storeURLs), time.Since(start).Round(time.Millisecond))

	fileSink := store.NewFileSink(cfg.Output.Path)
	if err := fileSink.SaveStores(ctx, records); err != nil {
		log.Printf("Error writing to file %s: %v", cfg.Output.Path, err)
	} else {
		log.Printf("Data saved to %s", cfg.Output.Path)
	}

	for _, sink := range buildExtraSinks(ctx, cfg) {
		if err := sink.SaveStores(ctx, records); err != nil {
			log.Printf("Error saving stores: %v", err)
		}
	}
}

// discoverStoreURLs resolves the configured discovery source to the list of
// detail-page URLs, de-duplicated and sorted.
func discoverStoreURLs(ctx context.Context, cfg config.Config, client *httpclient.HTTPClient) ([]string, error) {
	switch cfg.Site.Source {
	case "", "listing":
		fetcher, err := urls.NewHTMLFetcher(client, cfg.Site.BaseURL, cfg.Site.LinkSubstring)
		if err != nil {
			return nil, err
		}
		listingURL, err := url.JoinPath(cfg.Site.BaseURL, cfg.Site.ListingPath)
		if err != nil {
			return nil, fmt.Errorf("failed to build listing URL: %w", err)
		}
		log.Printf("Fetching store list from %s...", listingURL)
		return fetcher.Fetch(ctx, listingURL)

	case "sitemap":
		return discoverFiltered(ctx, cfg, urls.NewSitemapFetcher(client))

	case "feed":
		return discoverFiltered(ctx, cfg, urls.NewFeedFetcher())

	default:
		return nil, fmt.Errorf("unknown discovery source %q", cfg.Site.Source)
	}
}

// discoverFiltered runs a non-listing discovery source and narrows its
// output to detail pages via the link substring filter.
func discoverFiltered(ctx context.Context, cfg config.Config, fetcher urls.URLsFetcher) ([]string, error) {
	log.Printf("Fetching store list from %s...", cfg.Site.SourceURL)
	fetched, err := fetcher.Fetch(ctx, cfg.Site.SourceURL)
	if err != nil {
		return nil, err
	}

	kept, err := urls.FilterURLs(ctx, fetched, urls.NewContainsPathFilter(cfg.Site.LinkSubstring))
	if err != nil {
		return nil, err
	}
	return urls.Unique(kept), nil
}

// buildExtraSinks assembles the optional database sinks the config enables.
// A sink that fails to connect is dropped with a log line; it never aborts
// the run.
func buildExtraSinks(ctx context.Context, cfg config.Config) []store.Sink {
	var sinks []store.Sink

	if dsn := cfg.Sinks.Postgres.DSN; dsn != "" {
		pg := store.NewPostgresClient(store.PostgresConfig{DSN: dsn})
		if err := pg.Connect(ctx); err != nil {
			log.Printf("Postgres sink disabled: %v", err)
		} else if err := pg.EnsureSchema(ctx); err != nil {
			log.Printf("Postgres sink disabled: %v", err)
		} else {
			sinks = append(sinks, pg)
		}
	}

	if uri := cfg.Sinks.Mongo.URI; uri != "" {
		mc := store.NewMongoClient(uri, cfg.Sinks.Mongo.Database, cfg.Sinks.Mongo.Collection)
		if err := mc.Connect(ctx); err != nil {
			log.Printf("Mongo sink disabled: %v", err)
		} else {
			sinks = append(sinks, mc)
		}
	}

	if cfg.Sinks.Supabase.URL != "" {
		sb := store.NewSupabaseClient(store.SupabaseConfig{
			SupabaseURL: cfg.Sinks.Supabase.URL,
			SupabaseKey: cfg.Sinks.Supabase.Key,
			Password:    cfg.Sinks.Supabase.Password,
		})
		if err := sb.Connect(ctx); err != nil {
			log.Printf("Supabase sink disabled: %v", err)
		} else if !sb.HasDirectDB() {
			log.Printf("Supabase sink disabled: direct database connection unavailable")
		} else if err := sb.EnsureSchema(ctx); err != nil {
			log.Printf("Supabase sink disabled: %v", err)
		} else {
			sinks = append(sinks, sb)
		}
	}

	return sinks
}
