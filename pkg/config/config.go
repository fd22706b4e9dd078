package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv       = "RSS_SCRAPER_CONFIG"
	mongoURIEnv         = "MONGO_URI"
	postgresDSNEnv      = "DATABASE_DSN"
	supabaseURLEnv      = "SUPABASE_URL"
	supabaseKeyEnv      = "SUPABASE_KEY"
	supabasePasswordEnv = "SUPABASE_DB_PASSWORD"
)

// Config holds the recognized configuration surface of the scraper.
type Config struct {
	WorkerCount                  int     `yaml:"worker_count"`
	FetchTimeoutSeconds          float64 `yaml:"fetch_timeout_seconds"`
	TitlesPerFeed                int     `yaml:"titles_per_feed"`
	MinMedianWords               int     `yaml:"min_median_words"`
	DuplicateSimilarityThreshold float64 `yaml:"duplicate_similarity_threshold"`
	DiscoverFeeds                bool    `yaml:"discover_feeds"`
	OutputPath                   string  `yaml:"output_path"`

	Storage StorageConfig `yaml:"storage"`
}

// StorageConfig selects the optional report storage backends. Empty values
// leave the corresponding backend disabled.
type StorageConfig struct {
	MongoURI         string `yaml:"mongo_uri"`
	MongoDatabase    string `yaml:"mongo_database"`
	PostgresDSN      string `yaml:"postgres_dsn"`
	SupabaseURL      string `yaml:"supabase_url"`
	SupabaseKey      string `yaml:"supabase_key"`
	SupabasePassword string `yaml:"supabase_password"`
}

// Default returns the configuration used when nothing is provided.
func Default() Config {
	return Config{
		WorkerCount:                  10,
		FetchTimeoutSeconds:          5,
		TitlesPerFeed:                5,
		MinMedianWords:               2,
		DuplicateSimilarityThreshold: 0.8,
		OutputPath:                   "rss_data.json",
		Storage: StorageConfig{
			MongoDatabase: "rssscraper",
		},
	}
}

// Load reads YAML configuration from path (or $RSS_SCRAPER_CONFIG when path
// is empty) on top of the defaults, then applies environment overrides for
// credentials. An explicitly passed path must exist; a missing file is only
// tolerated for the env-var default. A malformed file is always an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err != nil && os.IsNotExist(err) && !explicit:
			// Fall through with defaults.
		case err != nil:
			return cfg, fmt.Errorf("config: cannot read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return cfg, fmt.Errorf("config: cannot parse %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, cfg.validate()
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(mongoURIEnv); v != "" {
		c.Storage.MongoURI = v
	}
	if v := os.Getenv(postgresDSNEnv); v != "" {
		c.Storage.PostgresDSN = v
	}
	if v := os.Getenv(supabaseURLEnv); v != "" {
		c.Storage.SupabaseURL = v
	}
	if v := os.Getenv(supabaseKeyEnv); v != "" {
		c.Storage.SupabaseKey = v
	}
	if v := os.Getenv(supabasePasswordEnv); v != "" {
		c.Storage.SupabasePassword = v
	}
}

// validate rejects configurations the pipeline cannot run with. These are
// programmer/config errors and fail the run fatally.
func (c *Config) validate() error {
	if c.WorkerCount <= 0 {
		return fmt.Errorf("config: worker_count must be positive, got %d", c.WorkerCount)
	}
	if c.FetchTimeoutSeconds <= 0 {
		return fmt.Errorf("config: fetch_timeout_seconds must be positive, got %v", c.FetchTimeoutSeconds)
	}
	if c.TitlesPerFeed <= 0 {
		return fmt.Errorf("config: titles_per_feed must be positive, got %d", c.TitlesPerFeed)
	}
	if c.DuplicateSimilarityThreshold <= 0 || c.DuplicateSimilarityThreshold > 1 {
		return fmt.Errorf("config: duplicate_similarity_threshold must be in (0,1], got %v", c.DuplicateSimilarityThreshold)
	}
	return nil
}

// FetchTimeout resolves the configured timeout to a duration.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds * float64(time.Second))
}
