package backfill

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fortuna/prepstats/internal/boxscore"
	"github.com/fortuna/prepstats/internal/stats"
)

// Runner imports season stat sheets into the raw row store.
type Runner struct {
	store    RowStore
	readFile func(string) ([]byte, error)
}

// NewRunner constructs a runner reading files from disk.
func NewRunner(store RowStore) *Runner {
	return &Runner{
		store:    store,
		readFile: os.ReadFile,
	}
}

// Run imports every file of the spec, reporting progress via the Reporter
// if provided.
func (r *Runner) Run(ctx context.Context, spec JobSpec, reporter Reporter) error {
	if reporter != nil {
		reporter.OnJobStart(spec)
	}
	if len(spec.Files) == 0 {
		return fmt.Errorf("no files provided")
	}

	imported := 0
	total := len(spec.Files)
	for idx, path := range spec.Files {
		if err := ctx.Err(); err != nil {
			return err
		}

		if reporter != nil {
			reporter.OnFileStart(path, idx, total)
		}

		content, err := r.readFile(path)
		if err != nil {
			err = fmt.Errorf("read %s: %w", path, err)
			if reporter != nil {
				reporter.OnJobError(err)
			}
			return err
		}

		n, err := r.ImportCSV(ctx, string(content), spec, reporter)
		imported += n
		if err != nil {
			err = fmt.Errorf("import %s: %w", path, err)
			if reporter != nil {
				reporter.OnJobError(err)
			}
			return err
		}

		if reporter != nil {
			reporter.OnProgress(fmt.Sprintf("✓ %s: %d rows", path, n), idx+1, total)
		}
	}

	if reporter != nil {
		reporter.OnJobComplete(imported)
	}
	return nil
}

// ImportCSV stores each data row of a season stat sheet. The header row
// becomes the stat row keys. Rows without an athlete name, school, sport or
// season are skipped. In dry-run mode rows are only counted.
func (r *Runner) ImportCSV(ctx context.Context, content string, spec JobSpec, reporter Reporter) (int, error) {
	records, err := boxscore.ReadCSV(content)
	if err != nil {
		return 0, err
	}
	if len(records) < 2 {
		return 0, fmt.Errorf("stat sheet must have a header and at least one data row")
	}

	headers := records[0]
	imported := 0
	for i, record := range records[1:] {
		line := i + 2

		row, reason := buildRow(headers, record, spec)
		if reason != "" {
			if reporter != nil {
				reporter.OnRowSkipped(line, reason)
			}
			continue
		}

		if !spec.DryRun {
			if _, err := r.store.Insert(ctx, row, spec.Source); err != nil {
				return imported, fmt.Errorf("line %d: %w", line, err)
			}
		}
		imported++
	}

	return imported, nil
}

// buildRow maps one CSV record onto a raw row. A non-empty reason means the
// record was rejected.
func buildRow(headers, record []string, spec JobSpec) (stats.RawStatRow, string) {
	row := stats.RawStatRow{
		School:  spec.School,
		Sport:   spec.Sport,
		Season:  spec.Season,
		StatRow: stats.StatRow{},
	}

	for i, header := range headers {
		if i >= len(record) || header == "" {
			continue
		}
		value := strings.TrimSpace(record[i])
		if value == "" {
			continue
		}

		switch placementColumns[strings.ToLower(header)] {
		case "School":
			row.School = value
		case "Sport":
			row.Sport = value
		case "Season":
			row.Season = value
		default:
			row.StatRow[header] = value
		}
	}

	row.AthleteName = stats.ResolveText(row.StatRow, "Athlete Name")
	switch {
	case row.AthleteName == "":
		return row, "missing athlete name"
	case row.School == "":
		return row, "missing school"
	case row.Sport == "":
		return row, "missing sport"
	case row.Season == "":
		return row, "missing season"
	}
	return row, ""
}
