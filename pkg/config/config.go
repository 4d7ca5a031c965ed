package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Site struct {
		BaseURL       string `yaml:"base_url"`
		ListingPath   string `yaml:"listing_path"`
		LinkSubstring string `yaml:"link_substring"`
		// Source selects how detail URLs are discovered: "listing" (default),
		// "sitemap" or "feed".
		Source    string `yaml:"source"`
		SourceURL string `yaml:"source_url"`
	} `yaml:"site"`

	Scrape struct {
		Workers        int    `yaml:"workers"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		DebugDir       string `yaml:"debug_dir"`
	} `yaml:"scrape"`

	Output struct {
		Path string `yaml:"path"`
	} `yaml:"output"`

	Sinks struct {
		Postgres struct {
			DSN string `yaml:"dsn"`
		} `yaml:"postgres"`
		Mongo struct {
			URI        string `yaml:"uri"`
			Database   string `yaml:"database"`
			Collection string `yaml:"collection"`
		} `yaml:"mongo"`
		Supabase struct {
			URL      string `yaml:"url"`
			Key      string `yaml:"key"`
			Password string `yaml:"password"`
		} `yaml:"supabase"`
	} `yaml:"sinks"`
}

// Load reads the config file at path. A missing file is not an error: the
// defaults describe the live target site, so the scraper runs without any
// config at all.
func Load(path string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// Default returns the built-in configuration.
func Default() Config {
	var cfg Config
	cfg.Site.BaseURL = "https://grilld.com.au"
	cfg.Site.ListingPath = "/restaurants"
	cfg.Site.LinkSubstring = "restaurants/"
	cfg.Site.Source = "listing"
	cfg.Scrape.Workers = 10
	cfg.Scrape.TimeoutSeconds = 20
	cfg.Scrape.DebugDir = "debug"
	cfg.Output.Path = "stores.json"
	return cfg
}
