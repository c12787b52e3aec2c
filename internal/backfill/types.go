package backfill

import (
	"context"

	"github.com/fortuna/prepstats/internal/stats"
)

// JobSpec describes one historical stat sheet import.
type JobSpec struct {
	Files  []string
	School string
	Sport  string
	Season string
	Source string
	DryRun bool
}

// RowStore persists raw season rows.
type RowStore interface {
	Insert(ctx context.Context, row stats.RawStatRow, source string) (int64, error)
}

// Reporter receives lifecycle callbacks from the runner.
type Reporter interface {
	OnJobStart(spec JobSpec)
	OnFileStart(path string, index int, total int)
	OnRowSkipped(line int, reason string)
	OnProgress(message string, current int, total int)
	OnJobComplete(imported int)
	OnJobError(err error)
}

// Columns naming where a row belongs rather than a stat. They override
// the job's School, Sport and Season for that row.
var placementColumns = map[string]string{
	"school": "School",
	"sport":  "Sport",
	"season": "Season",
	"year":   "Season",
}
