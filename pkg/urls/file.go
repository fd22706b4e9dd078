package urls

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// FileSource reads feed URLs from a file, one per line.
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed URL source
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// URLs reads the file and returns its URLs in order. Blank lines and lines
// starting with # are skipped; trailing commas are tolerated.
func (s *FileSource) URLs(ctx context.Context) ([]string, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open url list: %w", err)
	}
	defer file.Close()

	var result []string
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		line = strings.TrimRight(line, ", \t")
		if line == "" {
			continue
		}

		result = append(result, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read url list: %w", err)
	}
	return result, nil
}
