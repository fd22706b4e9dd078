package feed

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
)

var (
	// ErrNotXML means the body could not be interpreted as a feed at all.
	ErrNotXML = errors.New("body is not a parseable feed")
	// ErrNoItems means the feed parsed but contained no usable titles.
	ErrNoItems = errors.New("feed contains no usable titles")
)

// Parser extracts titles from raw feed bytes. gofeed tolerates missing or
// wrong XML declarations, CDATA-wrapped markup, entities and non-UTF8
// encodings, which is exactly the mess real-world feeds serve.
//
// A Parser is not safe for concurrent use; the pipeline creates one per
// worker.
type Parser struct {
	feedParser *gofeed.Parser
}

// NewParser creates a new feed parser
func NewParser() *Parser {
	return &Parser{
		feedParser: gofeed.NewParser(),
	}
}

// ParseTitles walks the feed's items in document order and returns the titles
// of the first max items. Items with empty titles are skipped, never inserted
// as empty strings; if fewer than max items exist the result is shorter,
// never padded.
func (p *Parser) ParseTitles(body []byte, max int) ([]string, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrNotXML
	}

	// gofeed also understands JSON Feed, but this pipeline ingests XML feeds
	// only: a JSON body is not-XML, not an empty feed.
	if gofeed.DetectFeedType(bytes.NewReader(body)) == gofeed.FeedTypeJSON {
		return nil, ErrNotXML
	}

	parsed, err := p.feedParser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotXML, err)
	}
	if parsed == nil || len(parsed.Items) == 0 {
		return nil, ErrNoItems
	}

	items := parsed.Items
	if max > 0 && len(items) > max {
		items = items[:max]
	}

	titles := make([]string, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Title) == "" {
			continue
		}
		titles = append(titles, item.Title)
	}

	if len(titles) == 0 {
		return nil, ErrNoItems
	}
	return titles, nil
}
