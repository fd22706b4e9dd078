package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sidharrth2002/rss-scraper/pkg/domain"
)

// payload is the wire shape of the corpus report artifact.
type payload struct {
	TotalURLs    int             `json:"total_urls"`
	ValidURLs    int             `json:"valid_urls"`
	ValidityRate float64         `json:"validity_rate"`
	Records      []recordPayload `json:"records"`
}

type recordPayload struct {
	URL      string          `json:"url"`
	Validity domain.Validity `json:"validity"`
	Titles   []string        `json:"titles"`
	Reason   string          `json:"reason,omitempty"`
}

// Marshal serializes the corpus report as one indented JSON object. HTML
// escaping is disabled so decoded titles stay readable in the artifact.
func Marshal(rep *domain.CorpusReport) ([]byte, error) {
	out := payload{
		TotalURLs:    rep.TotalURLs,
		ValidURLs:    rep.ValidURLs,
		ValidityRate: rep.ValidityRate,
		Records:      make([]recordPayload, 0, len(rep.Records)),
	}
	for _, r := range rep.Records {
		out.Records = append(out.Records, recordPayload{
			URL:      r.URL,
			Validity: r.Validity,
			Titles:   r.TitleTexts(),
			Reason:   r.Reason,
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return buf.Bytes(), nil
}

// Write serializes the report and writes it to path.
func Write(rep *domain.CorpusReport, path string) error {
	data, err := Marshal(rep)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
