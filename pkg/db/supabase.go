package db

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	supabase "github.com/supabase-community/supabase-go"
)

// SupabaseConfig holds configuration required to connect to Supabase.
type SupabaseConfig struct {
	// ConnectionString is the Supabase Postgres connection string. If not
	// provided, it is constructed from SupabaseURL and Password.
	ConnectionString string

	// SupabaseURL is the Supabase project URL.
	// Example: "https://[project-ref].supabase.co"
	SupabaseURL string

	// SupabaseKey is the Supabase API key (service_role for server-side).
	SupabaseKey string

	// Password is the database password, not the API key.
	Password string
}

// SupabaseSaver persists corpus reports into a Supabase project's Postgres
// database, reusing the plain Postgres saver over a constructed DSN. The SDK
// client is kept for Supabase-specific features (auth, storage).
type SupabaseSaver struct {
	*PostgresSaver
	supabaseSDK *supabase.Client
	cfg         SupabaseConfig
}

// NewSupabaseSaver constructs a Supabase report saver.
func NewSupabaseSaver(cfg SupabaseConfig) *SupabaseSaver {
	return &SupabaseSaver{cfg: cfg}
}

// Connect initializes the SDK client and the direct Postgres connection.
func (s *SupabaseSaver) Connect(ctx context.Context) error {
	if s.cfg.SupabaseURL != "" && s.cfg.SupabaseKey != "" {
		sdkClient, err := supabase.NewClient(s.cfg.SupabaseURL, s.cfg.SupabaseKey, nil)
		if err != nil {
			return fmt.Errorf("initialize supabase SDK: %w", err)
		}
		s.supabaseSDK = sdkClient
	}

	connStr := s.cfg.ConnectionString
	if connStr == "" {
		var err error
		connStr, err = s.buildConnectionString()
		if err != nil {
			return fmt.Errorf("build connection string: %w", err)
		}
	}

	// Disable the prepared statement cache and use the simple protocol to
	// avoid conflicts when savers run concurrently.
	connStr = addConnectionParam(connStr, "statement_cache_capacity", "0")
	connStr = addConnectionParam(connStr, "default_query_exec_mode", "simple_protocol")

	s.PostgresSaver = NewPostgresSaver(PostgresConfig{DSN: connStr})
	return s.PostgresSaver.Connect(ctx)
}

// SDK returns the Supabase SDK client. Returns nil if the SDK was not
// initialized.
func (s *SupabaseSaver) SDK() *supabase.Client {
	return s.supabaseSDK
}

// buildConnectionString constructs a Supabase Postgres connection string
// from the project URL and database password.
func (s *SupabaseSaver) buildConnectionString() (string, error) {
	if s.cfg.SupabaseURL == "" {
		return "", fmt.Errorf("supabase URL is required when connection string is not provided")
	}
	if s.cfg.Password == "" {
		return "", fmt.Errorf("supabase password is required when connection string is not provided")
	}

	// URL format: https://[project-ref].supabase.co
	parsedURL, err := url.Parse(s.cfg.SupabaseURL)
	if err != nil {
		return "", fmt.Errorf("parse supabase URL: %w", err)
	}

	parts := strings.Split(parsedURL.Host, ".")
	if len(parts) < 2 {
		return "", fmt.Errorf("invalid supabase URL format: expected [project-ref].supabase.co")
	}
	projectRef := parts[0]

	encodedPassword := url.QueryEscape(s.cfg.Password)
	return fmt.Sprintf("postgresql://postgres:%s@db.%s.supabase.co:5432/postgres?sslmode=require", encodedPassword, projectRef), nil
}

// addConnectionParam adds a query parameter to the connection string if not
// already present.
func addConnectionParam(connStr, key, value string) string {
	if strings.Contains(connStr, key+"=") {
		return connStr
	}

	separator := "?"
	if strings.Contains(connStr, "?") {
		separator = "&"
	}
	return connStr + separator + key + "=" + value
}
