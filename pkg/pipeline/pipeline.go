package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/sidharrth2002/rss-scraper/pkg/domain"
	"github.com/sidharrth2002/rss-scraper/pkg/validate"
)

const (
	defaultWorkerCount   = 10
	defaultFetchTimeout  = 5 * time.Second
	defaultTitlesPerFeed = 5
)

// Options configures a pipeline run.
type Options struct {
	WorkerCount   int
	FetchTimeout  time.Duration
	TitlesPerFeed int
	Thresholds    validate.Thresholds
	DiscoverFeeds bool
	Reporter      Reporter
}

// withDefaults fills in zero-valued options.
func (o Options) withDefaults() Options {
	if o.WorkerCount <= 0 {
		o.WorkerCount = defaultWorkerCount
	}
	if o.FetchTimeout <= 0 {
		o.FetchTimeout = defaultFetchTimeout
	}
	if o.TitlesPerFeed <= 0 {
		o.TitlesPerFeed = defaultTitlesPerFeed
	}
	if o.Reporter == nil {
		o.Reporter = LogReporter{}
	}
	return o
}

// Pipeline fans a URL list out across a bounded worker pool. Each worker
// runs the full fetch→parse→clean→validate chain for one URL to completion
// before taking the next; a failure for one URL never affects another.
type Pipeline struct {
	opts Options
}

// New creates a pipeline with the given options.
func New(opts Options) *Pipeline {
	return &Pipeline{opts: opts.withDefaults()}
}

type job struct {
	index int
	url   string
}

// Run processes every URL and returns the corpus report. The records slice
// preserves input URL order regardless of worker completion order: each
// worker writes into a pre-indexed slot it alone owns, so no lock is needed
// on the happy path.
//
// Run fails only on caller errors (empty URL list) or run-level cancellation,
// never because individual feeds are dead.
func (p *Pipeline) Run(ctx context.Context, feedURLs []string) (*domain.CorpusReport, error) {
	if len(feedURLs) == 0 {
		return nil, fmt.Errorf("pipeline requires at least one URL")
	}

	jobs := make(chan job, len(feedURLs))
	for i, u := range feedURLs {
		jobs <- job{index: i, url: u}
	}
	close(jobs)

	records := make([]domain.FeedRecord, len(feedURLs))

	workerCount := p.opts.WorkerCount
	if workerCount > len(feedURLs) {
		workerCount = len(feedURLs)
	}

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			// One processor per worker: the feed parser is not shared.
			proc := NewProcessor(p.opts)

			for {
				select {
				case j, ok := <-jobs:
					if !ok {
						return
					}
					records[j.index] = proc.Process(ctx, j.url)
					if records[j.index].Validity == domain.ValidityValid {
						log.Printf("Worker %d: Valid RSS feed: %s", workerID, j.url)
					} else {
						log.Printf("Worker %d: %s feed %s (%s)", workerID, records[j.index].Validity, j.url, records[j.index].Reason)
					}

				case <-ctx.Done():
					return
				}
			}
		}(i)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pipeline run aborted: %w", err)
	}

	report := buildReport(records)
	p.opts.Reporter.ReportRun(report.TotalURLs, report.ValidURLs, report.ValidityRate)
	return report, nil
}

// buildReport aggregates per-URL records into the corpus report.
func buildReport(records []domain.FeedRecord) *domain.CorpusReport {
	valid := 0
	for _, r := range records {
		if r.Validity == domain.ValidityValid {
			valid++
		}
	}

	return &domain.CorpusReport{
		TotalURLs:    len(records),
		ValidURLs:    valid,
		ValidityRate: float64(valid) / float64(len(records)),
		Records:      records,
	}
}
