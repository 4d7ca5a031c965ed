package capture

import (
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
)

// Capture persists the raw body of the first page whose expected data block
// was missing. One sample per run is enough to diagnose a structural change
// on the site, so the flag is first-wins and never resets.
type Capture struct {
	dir  string
	done atomic.Bool
}

// New creates a capture writing into dir. An empty dir disables capture.
func New(dir string) *Capture {
	return &Capture{dir: dir}
}

// Dump writes body to the debug directory, at most once per run. Safe to
// call from any worker; losers of the race return immediately. Dump is a
// diagnostic aid only: its own failures are logged, never propagated.
func (c *Capture) Dump(pageURL string, body []byte) {
	if c == nil || c.dir == "" {
		return
	}
	if !c.done.CompareAndSwap(false, true) {
		return
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		log.Printf("Failed to create debug directory %s: %v", c.dir, err)
		return
	}

	path := filepath.Join(c.dir, slug(pageURL)+".html")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		log.Printf("Failed to write debug file %s: %v", path, err)
		return
	}
	log.Printf("Saved debug copy of %s to %s", pageURL, path)
}

// slug derives a file name from the last path segment of the URL.
func slug(pageURL string) string {
	segment := pageURL
	if u, err := url.Parse(pageURL); err == nil {
		if p := strings.Trim(u.Path, "/"); p != "" {
			segment = p
			if i := strings.LastIndex(p, "/"); i >= 0 {
				segment = p[i+1:]
			}
		} else if u.Hostname() != "" {
			segment = u.Hostname()
		}
	}

	var b strings.Builder
	for _, r := range strings.ToLower(segment) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}

	s := strings.Trim(b.String(), "-")
	if s == "" {
		return "page"
	}
	return s
}
