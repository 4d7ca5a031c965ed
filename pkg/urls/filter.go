package urls

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// UrlFilter defines the interface for URL filtering
type UrlFilter interface {
	ShouldKeep(ctx context.Context, url string) (bool, error)
}

// FilterURLs applies all filters to a list of URLs
func FilterURLs(ctx context.Context, urlList []string, filters ...UrlFilter) ([]string, error) {
	filtered := make([]string, 0, len(urlList))

	for _, urlStr := range urlList {
		keep := true
		for _, f := range filters {
			shouldKeep, err := f.ShouldKeep(ctx, urlStr)
			if err != nil {
				return nil, fmt.Errorf("filter error for URL %s: %w", urlStr, err)
			}
			if !shouldKeep {
				keep = false
				break
			}
		}
		if keep {
			filtered = append(filtered, urlStr)
		}
	}

	return filtered, nil
}

// ContainsPathFilter filters URLs to only keep those that contain a specific path segment
type ContainsPathFilter struct {
	pathSegment string
}

// NewContainsPathFilter creates a new path filter that keeps URLs containing the specified path segment
func NewContainsPathFilter(pathSegment string) *ContainsPathFilter {
	return &ContainsPathFilter{
		pathSegment: pathSegment,
	}
}

// ShouldKeep returns true if URL contains the specified path segment
func (f *ContainsPathFilter) ShouldKeep(ctx context.Context, urlStr string) (bool, error) {
	return strings.Contains(urlStr, f.pathSegment), nil
}

// Unique de-duplicates a URL list and returns it sorted lexicographically.
func Unique(urlList []string) []string {
	seen := make(map[string]bool, len(urlList))
	out := make([]string, 0, len(urlList))
	for _, u := range urlList {
		if !seen[u] {
			seen[u] = true
			out = append(out, u)
		}
	}
	sort.Strings(out)
	return out
}
