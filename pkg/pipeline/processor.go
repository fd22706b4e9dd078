package pipeline

import (
	"context"
	"errors"
	"log"
	"unicode/utf8"

	"github.com/sidharrth2002/rss-scraper/pkg/content"
	"github.com/sidharrth2002/rss-scraper/pkg/domain"
	"github.com/sidharrth2002/rss-scraper/pkg/feed"
	"github.com/sidharrth2002/rss-scraper/pkg/validate"
)

// Processor runs the full fetch→parse→clean→validate chain for one URL and
// produces exactly one FeedRecord. It never returns an error: every failure
// mode ends up encoded in the record so one dead feed cannot abort the run.
//
// A Processor is not safe for concurrent use (the feed parser keeps state);
// the pipeline creates one per worker.
type Processor struct {
	fetcher   *feed.Fetcher
	parser    *feed.Parser
	validator *validate.Validator
	maxTitles int
	discover  bool
}

// NewProcessor creates a processor from the pipeline options.
func NewProcessor(opts Options) *Processor {
	return &Processor{
		fetcher:   feed.NewFetcher(opts.FetchTimeout),
		parser:    feed.NewParser(),
		validator: validate.NewValidator(opts.Thresholds),
		maxTitles: opts.TitlesPerFeed,
		discover:  opts.DiscoverFeeds,
	}
}

// Process builds the terminal FeedRecord for url.
func (p *Processor) Process(ctx context.Context, url string) domain.FeedRecord {
	result := p.fetcher.Fetch(ctx, url)
	if result.Status != domain.FetchOK {
		return domain.FeedRecord{URL: url, Validity: domain.ValidityInvalid, Reason: result.Reason()}
	}

	rawTitles, err := p.parseTitles(ctx, url, result.Body)
	if err != nil {
		return domain.FeedRecord{URL: url, Validity: domain.ValidityInvalid, Reason: parseReason(err)}
	}

	cleaned := make([]domain.CleanTitle, 0, len(rawTitles))
	for _, raw := range rawTitles {
		text, ok := content.CleanTitle(raw)
		if !ok {
			continue
		}
		cleaned = append(cleaned, domain.CleanTitle{
			FeedURL: url,
			Text:    text,
			Length:  utf8.RuneCountInString(text),
		})
	}

	validity, reason := p.validator.Validate(cleaned)
	return domain.FeedRecord{URL: url, Validity: validity, Titles: cleaned, Reason: reason}
}

// parseTitles parses the fetched body, with at most one autodiscovery hop
// when enabled and the body turned out to be an HTML page.
func (p *Processor) parseTitles(ctx context.Context, url string, body []byte) ([]string, error) {
	titles, err := p.parser.ParseTitles(body, p.maxTitles)
	if err == nil || !p.discover || !errors.Is(err, feed.ErrNotXML) || !feed.LooksLikeHTML(body) {
		return titles, err
	}

	discovered, discoverErr := p.parseDiscoveredFeed(ctx, url, body)
	if discoverErr != nil {
		log.Printf("Processor: feed discovery for %s failed: %v", url, discoverErr)
		// Fall back to the original NotXml outcome.
		return nil, err
	}
	return discovered, nil
}

// parseDiscoveredFeed follows the feed link advertised by an HTML page.
// Never more than one hop.
func (p *Processor) parseDiscoveredFeed(ctx context.Context, pageURL string, body []byte) ([]string, error) {
	feedURL, err := feed.DiscoverFeedURL(pageURL, body)
	if err != nil {
		return nil, err
	}

	log.Printf("Processor: %s advertises feed %s, following", pageURL, feedURL)
	result := p.fetcher.Fetch(ctx, feedURL)
	if result.Status != domain.FetchOK {
		return nil, errors.New(result.Reason())
	}
	return p.parser.ParseTitles(result.Body, p.maxTitles)
}

// parseReason maps a parse error onto the record reason taxonomy.
func parseReason(err error) string {
	if errors.Is(err, feed.ErrNoItems) {
		return domain.ReasonNoItems
	}
	return domain.ReasonNotXML
}
