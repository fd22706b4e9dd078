package scrapeservice

import (
	"context"
	"fmt"
	"log"

	"github.com/sidharrth2002/rss-scraper/pkg/db"
	"github.com/sidharrth2002/rss-scraper/pkg/domain"
	"github.com/sidharrth2002/rss-scraper/pkg/pipeline"
	"github.com/sidharrth2002/rss-scraper/pkg/report"
	"github.com/sidharrth2002/rss-scraper/pkg/urls"
)

// Service runs the whole scrape: resolve the URL list from a source, fan it
// through the pipeline, write the JSON artifact and hand the report to any
// configured savers.
type Service struct {
	source     urls.Source
	pipeline   *pipeline.Pipeline
	savers     []db.ReportSaver
	outputPath string
}

// Options holds the service collaborators.
type Options struct {
	Source     urls.Source
	Pipeline   *pipeline.Pipeline
	Savers     []db.ReportSaver
	OutputPath string
}

// New creates a scrape service
func New(opts Options) *Service {
	return &Service{
		source:     opts.Source,
		pipeline:   opts.Pipeline,
		savers:     opts.Savers,
		outputPath: opts.OutputPath,
	}
}

// Run executes one full scrape and returns the corpus report.
func (s *Service) Run(ctx context.Context) (*domain.CorpusReport, error) {
	rawURLs, err := s.source.URLs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve URL list: %w", err)
	}
	log.Printf("Service: source produced %d URLs", len(rawURLs))

	feedURLs, err := urls.Apply(ctx, rawURLs, urls.NewSchemeFilter(), urls.NewDedupFilter())
	if err != nil {
		return nil, fmt.Errorf("failed to filter URL list: %w", err)
	}
	if len(feedURLs) == 0 {
		return nil, fmt.Errorf("no usable URLs after filtering")
	}
	log.Printf("Service: %d URLs after filtering", len(feedURLs))

	rep, err := s.pipeline.Run(ctx, feedURLs)
	if err != nil {
		return nil, err
	}

	if s.outputPath != "" {
		if err := report.Write(rep, s.outputPath); err != nil {
			return nil, err
		}
		log.Printf("Service: report written to %s", s.outputPath)
	}

	// Saver failures are logged, never fatal: the artifact above is the
	// primary output.
	for _, saver := range s.savers {
		if err := saver.SaveReport(ctx, rep); err != nil {
			log.Printf("Service: ERROR saving report: %v", err)
		}
	}

	return rep, nil
}
