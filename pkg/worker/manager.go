package worker

import (
	"context"
	"log"
	"sync"

	"store-scraper/pkg/domain"
)

// Manager runs a fixed-size pool of workers over the discovered store URLs.
type Manager struct {
	workerCount int
	scraper     *Scraper
}

// NewManager creates a new manager
func NewManager(workerCount int, scraper *Scraper) *Manager {
	if workerCount < 1 {
		workerCount = 1
	}
	return &Manager{
		workerCount: workerCount,
		scraper:     scraper,
	}
}

// ProcessURLs distributes URLs to workers and scrapes them concurrently. It
// returns the successfully extracted records in completion order; pages that
// failed are counted and logged but produce nothing. Every submitted URL is
// drained - an individual failure never cancels the rest of the run.
func (m *Manager) ProcessURLs(ctx context.Context, storeURLs []string) []domain.StoreRecord {
	jobChan := make(chan string, len(storeURLs))
	for _, u := range storeURLs {
		jobChan <- u
	}
	close(jobChan)

	type result struct {
		record *domain.StoreRecord
		url    string
		err    error
	}
	resultsChan := make(chan result, len(storeURLs))

	var wg sync.WaitGroup
	for i := 0; i < m.workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for url := range jobChan {
				record, err := m.scraper.ScrapeStore(ctx, url)
				resultsChan <- result{record: record, url: url, err: err}
			}
		}()
	}

	// Close results channel when all workers finish
	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	// Aggregate results; a single goroutine reads the channel, so the
	// processed counter needs no locking.
	total := len(storeURLs)
	processed := 0
	records := make([]domain.StoreRecord, 0, total)

	for res := range resultsChan {
		processed++
		if res.err != nil {
			log.Printf("Progress: %d/%d - %s: %v", processed, total, res.url, res.err)
			continue
		}

		name := ""
		if res.record.Name != nil {
			name = *res.record.Name
		}
		log.Printf("Progress: %d/%d - extracted %q", processed, total, name)
		records = append(records, *res.record)
	}

	return records
}
