package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"store-scraper/pkg/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
	supabase "github.com/supabase-community/supabase-go"
)

// SupabaseConfig holds configuration required to connect to Supabase.
type SupabaseConfig struct {
	// ConnectionString is the Supabase Postgres connection string.
	// If not provided, will be constructed from SupabaseURL and Password.
	ConnectionString string

	// SupabaseURL is the Supabase project URL (required if ConnectionString
	// not provided). Example: "https://[project-ref].supabase.co"
	SupabaseURL string

	// SupabaseKey is the Supabase API key (required for SDK features).
	SupabaseKey string

	// Password is the database password (required if ConnectionString not
	// provided). This is the database password, not the API key.
	Password string

	// Optional tuning knobs for the connection pool.
	MaxOpenConns int
	MaxIdleConns int
	ConnMaxIdle  time.Duration
	ConnMaxLife  time.Duration
}

// SupabaseClient persists store records into a Supabase project, reusing the
// Postgres save path over the direct database connection.
type SupabaseClient struct {
	db          *sql.DB
	supabaseSDK *supabase.Client
	cfg         SupabaseConfig
}

// NewSupabaseClient constructs a Supabase client.
func NewSupabaseClient(cfg SupabaseConfig) *SupabaseClient {
	return &SupabaseClient{cfg: cfg}
}

// Connect initializes the database connection and optionally the Supabase
// SDK client. With only URL and key (no password/connection string) the
// client works in REST API mode, which cannot bulk-save records.
func (c *SupabaseClient) Connect(ctx context.Context) error {
	if c.cfg.SupabaseURL != "" && c.cfg.SupabaseKey != "" {
		sdkClient, err := supabase.NewClient(c.cfg.SupabaseURL, c.cfg.SupabaseKey, nil)
		if err != nil {
			return fmt.Errorf("initialize supabase SDK: %w", err)
		}
		c.supabaseSDK = sdkClient
	}

	connStr := c.cfg.ConnectionString
	if connStr == "" && c.cfg.Password != "" {
		var err error
		connStr, err = c.buildConnectionString()
		if err != nil {
			if c.supabaseSDK != nil {
				return nil // REST API mode only
			}
			return fmt.Errorf("build connection string: %w", err)
		}
	}

	if connStr != "" {
		// Disable the prepared statement cache and use the simple protocol to
		// avoid conflicts when the pool runs statements in parallel.
		connStr = c.addConnectionParam(connStr, "statement_cache_capacity", "0")
		connStr = c.addConnectionParam(connStr, "default_query_exec_mode", "simple_protocol")

		db, err := sql.Open("pgx", connStr)
		if err != nil {
			if c.supabaseSDK != nil {
				return nil // REST API mode only
			}
			return fmt.Errorf("open supabase postgres: %w", err)
		}

		if c.cfg.MaxOpenConns > 0 {
			db.SetMaxOpenConns(c.cfg.MaxOpenConns)
		}
		if c.cfg.MaxIdleConns > 0 {
			db.SetMaxIdleConns(c.cfg.MaxIdleConns)
		}
		if c.cfg.ConnMaxIdle > 0 {
			db.SetConnMaxIdleTime(c.cfg.ConnMaxIdle)
		}
		if c.cfg.ConnMaxLife > 0 {
			db.SetConnMaxLifetime(c.cfg.ConnMaxLife)
		}

		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			if c.supabaseSDK != nil {
				return nil // REST API mode only
			}
			return fmt.Errorf("ping supabase postgres: %w", err)
		}

		c.db = db
	}

	if c.db == nil && c.supabaseSDK == nil {
		return fmt.Errorf("either connection string/password or Supabase URL+key must be provided")
	}

	return nil
}

// Close closes the database connection.
func (c *SupabaseClient) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// DB exposes the underlying sql.DB handle. Returns nil in REST API mode.
func (c *SupabaseClient) DB() *sql.DB {
	return c.db
}

// HasDirectDB returns true if a direct database connection is available.
func (c *SupabaseClient) HasDirectDB() bool {
	return c.db != nil
}

// SDK returns the Supabase SDK client for Supabase-specific features.
// Returns nil if the SDK was not initialized.
func (c *SupabaseClient) SDK() *supabase.Client {
	return c.supabaseSDK
}

// EnsureSchema creates the stores table when missing.
func (c *SupabaseClient) EnsureSchema(ctx context.Context) error {
	return EnsureStoresSchema(ctx, c.db)
}

// SaveStores upserts every record keyed by url over the direct connection.
func (c *SupabaseClient) SaveStores(ctx context.Context, stores []domain.StoreRecord) error {
	if c.db == nil {
		return fmt.Errorf("supabase direct database connection required to save stores")
	}
	return saveStoresSQL(ctx, c.db, stores)
}

// buildConnectionString derives the Postgres connection string from the
// project URL and database password.
func (c *SupabaseClient) buildConnectionString() (string, error) {
	if c.cfg.Password == "" {
		return "", fmt.Errorf("supabase password is required when connection string is not provided")
	}

	parsedURL, err := url.Parse(c.cfg.SupabaseURL)
	if err != nil {
		return "", fmt.Errorf("parse supabase URL: %w", err)
	}

	host := parsedURL.Host
	// Extract project ref from host (e.g., "abc123.supabase.co" -> "abc123")
	parts := strings.Split(host, ".")
	if len(parts) < 2 {
		return "", fmt.Errorf("invalid supabase URL format: expected [project-ref].supabase.co")
	}
	projectRef := parts[0]

	encodedPassword := url.QueryEscape(c.cfg.Password)
	connStr := fmt.Sprintf("postgresql://postgres:%s@db.%s.supabase.co:5432/postgres?sslmode=require&statement_cache_capacity=0", encodedPassword, projectRef)

	return connStr, nil
}

// addConnectionParam adds a query parameter to the connection string if not already present.
func (c *SupabaseClient) addConnectionParam(connStr, key, value string) string {
	if strings.Contains(connStr, key+"=") {
		return connStr // Parameter already exists
	}

	separator := "?"
	if strings.Contains(connStr, "?") {
		separator = "&"
	}

	return connStr + separator + key + "=" + value
}
