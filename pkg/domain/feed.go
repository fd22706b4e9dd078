package domain

import "fmt"

// FetchStatus classifies the outcome of a single feed retrieval.
type FetchStatus int

const (
	FetchOK FetchStatus = iota
	FetchNetworkError
	FetchTimeout
	FetchHTTPError
)

// String returns the reason string recorded on a FeedRecord for this status.
func (s FetchStatus) String() string {
	switch s {
	case FetchOK:
		return "Ok"
	case FetchNetworkError:
		return "NetworkError"
	case FetchTimeout:
		return "Timeout"
	case FetchHTTPError:
		return "HttpError"
	default:
		return "Unknown"
	}
}

// FetchResult is what the fetcher hands to the parser. Body is only set when
// Status is FetchOK; StatusCode is only meaningful for FetchHTTPError.
type FetchResult struct {
	URL        string
	Status     FetchStatus
	StatusCode int
	Body       []byte
}

// Reason builds the human-readable failure reason for a non-OK result.
func (r FetchResult) Reason() string {
	if r.Status == FetchHTTPError {
		return fmt.Sprintf("HttpError(%d)", r.StatusCode)
	}
	return r.Status.String()
}

// Validity classifies a feed's record after the full pipeline chain.
type Validity string

const (
	ValidityValid   Validity = "valid"
	ValidityInvalid Validity = "invalid"
	ValiditySuspect Validity = "suspect"
)

// Failure reasons recorded on FeedRecord when a feed is not valid.
const (
	ReasonNoTitles   = "NoTitlesExtracted"
	ReasonTooShort   = "TitlesTooShort"
	ReasonDuplicates = "DuplicateTitles"
	ReasonNotXML     = "NotXml"
	ReasonNoItems    = "NoItems"
)

// CleanTitle is one normalized title extracted from a feed.
// Length is the title length in runes after cleaning.
type CleanTitle struct {
	FeedURL string
	Text    string
	Length  int
}

// FeedRecord is the terminal outcome for one input URL. It is written exactly
// once by the pipeline worker that owns the URL and never mutated afterwards.
type FeedRecord struct {
	URL      string
	Validity Validity
	Titles   []CleanTitle
	Reason   string
}

// TitleTexts returns the record's title strings in extraction order.
func (r FeedRecord) TitleTexts() []string {
	texts := make([]string, 0, len(r.Titles))
	for _, t := range r.Titles {
		texts = append(texts, t.Text)
	}
	return texts
}

// CorpusReport is the sole externally visible artifact of a pipeline run.
// Records preserves the input URL order.
type CorpusReport struct {
	TotalURLs    int
	ValidURLs    int
	ValidityRate float64
	Records      []FeedRecord
}
