package content

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

var errEmptyPDF = errors.New("pdf content is empty")

// ExtractPDFText extracts the plain text of a PDF document provided via an
// io.Reader, typically an HTTP response body.
func ExtractPDFText(r io.Reader) (string, error) {
	if r == nil {
		return "", errors.New("pdf source reader is nil")
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read pdf source: %w", err)
	}
	if len(data) == 0 {
		return "", errEmptyPDF
	}

	doc, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	text, err := doc.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, text); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return buf.String(), nil
}
