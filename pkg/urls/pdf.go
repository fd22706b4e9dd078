package urls

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/sidharrth2002/rss-scraper/pkg/content"
	"github.com/sidharrth2002/rss-scraper/pkg/httpclient"
)

var urlPattern = regexp.MustCompile(`https?://[^\s]+`)

// PDFSource downloads a PDF document over HTTP and extracts every URL found
// in its text. This is how the reference corpus distributes its feed list.
type PDFSource struct {
	pdfURL string
	client *httpclient.HTTPClient
}

// NewPDFSource creates a PDF-backed URL source. The timeout bounds the PDF
// download, which can be large.
func NewPDFSource(pdfURL string, timeout time.Duration) *PDFSource {
	return &PDFSource{
		pdfURL: pdfURL,
		client: httpclient.NewClient(httpclient.SimpleClient, timeout),
	}
}

// URLs downloads the PDF and returns the unique URLs in its text, in order
// of first appearance.
func (s *PDFSource) URLs(ctx context.Context) ([]string, error) {
	resp, err := s.client.Get(ctx, s.pdfURL)
	if err != nil {
		return nil, fmt.Errorf("failed to download pdf: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code downloading pdf: %d", resp.StatusCode)
	}

	text, err := content.ExtractPDFText(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to extract pdf text: %w", err)
	}

	return ExtractURLs(text), nil
}

// ExtractURLs returns the unique http/https URLs in text, preserving the
// order of first appearance. PDF text extraction glues words together, so
// anything up to the next whitespace counts as part of the URL.
func ExtractURLs(text string) []string {
	matches := urlPattern.FindAllString(text, -1)

	seen := make(map[string]bool, len(matches))
	result := make([]string, 0, len(matches))
	for _, m := range matches {
		if seen[m] {
			continue
		}
		seen[m] = true
		result = append(result, m)
	}
	return result
}
