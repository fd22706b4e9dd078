package urls

import (
	"context"
	"fmt"
	"net/url"
)

// Filter defines the interface for URL filtering
type Filter interface {
	ShouldKeep(ctx context.Context, url string) (bool, error)
}

// SchemeFilter keeps only URLs that parse and use http or https.
type SchemeFilter struct{}

// NewSchemeFilter creates a new scheme filter
func NewSchemeFilter() *SchemeFilter {
	return &SchemeFilter{}
}

// ShouldKeep returns false for URLs that cannot possibly be fetched.
func (f *SchemeFilter) ShouldKeep(ctx context.Context, urlStr string) (bool, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return false, nil
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != "", nil
}

// DedupFilter drops URLs already seen earlier in the same run.
type DedupFilter struct {
	seen map[string]bool
}

// NewDedupFilter creates a new dedup filter
func NewDedupFilter() *DedupFilter {
	return &DedupFilter{seen: make(map[string]bool)}
}

// ShouldKeep returns false the second time it sees a URL.
func (f *DedupFilter) ShouldKeep(ctx context.Context, urlStr string) (bool, error) {
	if f.seen[urlStr] {
		return false, nil
	}
	f.seen[urlStr] = true
	return true, nil
}

// Apply runs every filter over the URL list, keeping order.
func Apply(ctx context.Context, list []string, filters ...Filter) ([]string, error) {
	filtered := make([]string, 0, len(list))

	for _, urlStr := range list {
		keep := true
		for _, f := range filters {
			shouldKeep, err := f.ShouldKeep(ctx, urlStr)
			if err != nil {
				return nil, fmt.Errorf("filter error for URL %s: %w", urlStr, err)
			}
			if !shouldKeep {
				keep = false
				break
			}
		}
		if keep {
			filtered = append(filtered, urlStr)
		}
	}

	return filtered, nil
}
