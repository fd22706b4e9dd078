package urls

import "context"

// Source produces the ordered list of feed URLs for a pipeline run.
// The pipeline makes no assumption about how the list was produced.
type Source interface {
	URLs(ctx context.Context) ([]string, error)
}
