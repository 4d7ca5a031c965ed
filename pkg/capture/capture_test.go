package capture

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestDump_WritesFirstBodyOnly(t *testing.T) {
	dir := t.TempDir()
	c := New(dir)

	c.Dump("https://grilld.com.au/restaurants/south-bank", []byte("<html>first</html>"))
	c.Dump("https://grilld.com.au/restaurants/newtown", []byte("<html>second</html>"))

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 file, got %d", len(entries))
	}
	if entries[0].Name() != "south-bank.html" {
		t.Errorf("Expected south-bank.html, got %q", entries[0].Name())
	}

	body, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatalf("Failed to read debug file: %v", err)
	}
	if string(body) != "<html>first</html>" {
		t.Errorf("Unexpected debug body: %q", body)
	}
}

func TestDump_ConcurrentCallersWriteOnce(t *testing.T) {
	dir := t.TempDir()
	c := New(dir)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Dump("https://grilld.com.au/restaurants/store", []byte("body"))
		}()
	}
	wg.Wait()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected 1 file after concurrent dumps, got %d", len(entries))
	}
}

func TestDump_DisabledWithoutDir(t *testing.T) {
	c := New("")
	c.Dump("https://grilld.com.au/restaurants/store", []byte("body")) // must not panic

	var nilCapture *Capture
	nilCapture.Dump("https://grilld.com.au/restaurants/store", []byte("body")) // nil receiver is fine
}

func TestSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://grilld.com.au/restaurants/south-bank", "south-bank"},
		{"https://grilld.com.au/restaurants/St%20Kilda", "st-kilda"},
		{"https://grilld.com.au/", "grilld-com-au"},
		{"", "page"},
	}

	for _, c := range cases {
		if got := slug(c.in); got != c.want {
			t.Errorf("slug(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
