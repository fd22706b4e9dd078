package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sidharrth2002/rss-scraper/pkg/config"
	"github.com/sidharrth2002/rss-scraper/pkg/db"
	"github.com/sidharrth2002/rss-scraper/pkg/pipeline"
	"github.com/sidharrth2002/rss-scraper/pkg/scrapeservice"
	"github.com/sidharrth2002/rss-scraper/pkg/urls"
	"github.com/sidharrth2002/rss-scraper/pkg/validate"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML config file (defaults to $RSS_SCRAPER_CONFIG)")

		urlFile = flag.String("urls", "", "File with feed URLs, one per line")
		pdfURL  = flag.String("pdf", "", "URL of a PDF document to extract feed URLs from")

		workers  = flag.Int("workers", 0, "Number of parallel workers (overrides config)")
		timeout  = flag.Float64("timeout", 0, "Per-feed fetch timeout in seconds (overrides config)")
		titles   = flag.Int("titles", 0, "Max titles to extract per feed (overrides config)")
		discover = flag.Bool("discover", false, "Attempt feed autodiscovery on HTML responses")
		output   = flag.String("output", "", "Output path for the JSON report (overrides config)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	applyFlagOverrides(&cfg, *workers, *timeout, *titles, *discover, *output)

	source, err := buildSource(*urlFile, *pdfURL, cfg.FetchTimeout())
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	savers, cleanup := buildSavers(ctx, cfg.Storage)
	defer cleanup()

	pipe := pipeline.New(pipeline.Options{
		WorkerCount:   cfg.WorkerCount,
		FetchTimeout:  cfg.FetchTimeout(),
		TitlesPerFeed: cfg.TitlesPerFeed,
		Thresholds: validate.Thresholds{
			MinMedianWords:      cfg.MinMedianWords,
			DuplicateSimilarity: cfg.DuplicateSimilarityThreshold,
		},
		DiscoverFeeds: cfg.DiscoverFeeds,
	})

	service := scrapeservice.New(scrapeservice.Options{
		Source:     source,
		Pipeline:   pipe,
		Savers:     savers,
		OutputPath: cfg.OutputPath,
	})

	start := time.Now()
	rep, err := service.Run(ctx)
	if err != nil {
		log.Fatalf("Scrape failed: %v", err)
	}
	log.Printf("Done: %d/%d valid feeds (%.2f%%) in %s",
		rep.ValidURLs, rep.TotalURLs, rep.ValidityRate*100, time.Since(start))
}

// applyFlagOverrides lets explicit flags win over the config file.
func applyFlagOverrides(cfg *config.Config, workers int, timeout float64, titles int, discover bool, output string) {
	if workers > 0 {
		cfg.WorkerCount = workers
	}
	if timeout > 0 {
		cfg.FetchTimeoutSeconds = timeout
	}
	if titles > 0 {
		cfg.TitlesPerFeed = titles
	}
	if discover {
		cfg.DiscoverFeeds = true
	}
	if output != "" {
		cfg.OutputPath = output
	}
}

// buildSource picks the URL source from flags. Exactly one must be given.
func buildSource(urlFile, pdfURL string, timeout time.Duration) (urls.Source, error) {
	switch {
	case urlFile != "" && pdfURL != "":
		return nil, errUsage("only one of -urls and -pdf may be given")
	case urlFile != "":
		return urls.NewFileSource(urlFile), nil
	case pdfURL != "":
		// PDF downloads can be slow; give them a generous multiple of the
		// per-feed budget.
		return urls.NewPDFSource(pdfURL, 4*timeout), nil
	default:
		return nil, errUsage("one of -urls or -pdf is required")
	}
}

type errUsage string

func (e errUsage) Error() string { return string(e) }

// buildSavers connects the storage backends selected by config. A backend
// that fails to connect is skipped with a warning rather than failing the
// run: storage is an optional side channel.
func buildSavers(ctx context.Context, storage config.StorageConfig) ([]db.ReportSaver, func()) {
	var savers []db.ReportSaver
	var cleanups []func()

	if storage.MongoURI != "" {
		saver := db.NewMongoSaver(storage.MongoURI, storage.MongoDatabase)
		if err := saver.Connect(ctx); err != nil {
			log.Printf("WARNING: mongo storage disabled: %v", err)
		} else {
			savers = append(savers, saver)
			cleanups = append(cleanups, func() { _ = saver.Close(context.Background()) })
		}
	}

	if storage.PostgresDSN != "" {
		saver := db.NewPostgresSaver(db.PostgresConfig{DSN: storage.PostgresDSN})
		if err := saver.Connect(ctx); err != nil {
			log.Printf("WARNING: postgres storage disabled: %v", err)
		} else {
			savers = append(savers, saver)
			cleanups = append(cleanups, func() { _ = saver.Close() })
		}
	}

	if storage.SupabaseURL != "" || storage.SupabasePassword != "" {
		saver := db.NewSupabaseSaver(db.SupabaseConfig{
			SupabaseURL: storage.SupabaseURL,
			SupabaseKey: storage.SupabaseKey,
			Password:    storage.SupabasePassword,
		})
		if err := saver.Connect(ctx); err != nil {
			log.Printf("WARNING: supabase storage disabled: %v", err)
		} else {
			savers = append(savers, saver)
			cleanups = append(cleanups, func() { _ = saver.Close() })
		}
	}

	return savers, func() {
		for _, c := range cleanups {
			c()
		}
	}
}
