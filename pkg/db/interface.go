package db

import (
	"context"

	"github.com/sidharrth2002/rss-scraper/pkg/domain"
)

// ReportSaver persists a finished corpus report for downstream analysis.
// Savers are optional collaborators: the JSON artifact is the primary output
// and a saver failure never fails the run.
type ReportSaver interface {
	SaveReport(ctx context.Context, rep *domain.CorpusReport) error
}
