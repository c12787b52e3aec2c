package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/fortuna/prepstats/internal/service"
	"github.com/fortuna/prepstats/internal/stats"
)

// exportPageSize is the largest selectable page size
const exportPageSize = 100

// Renderer renders one page of already fetched rows
type Renderer interface {
	Render(raw []stats.RawStatRow, state stats.ViewState) service.Page
}

// Export walks every page of the view and writes the rows as CSV. It
// returns the number of data rows written.
func Export(w io.Writer, r Renderer, raw []stats.RawStatRow, state stats.ViewState) (int, error) {
	cw := csv.NewWriter(w)

	state = state.WithPageSize(exportPageSize)
	page := r.Render(raw, state)

	header := []string{"Rank", "Name", "School", "Sport", "Season"}
	for _, col := range page.Columns {
		header = append(header, col.Label)
	}
	header = append(header, "Flags")
	if err := cw.Write(header); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	written := 0
	for {
		for _, row := range page.Rows {
			record := []string{strconv.Itoa(row.Rank), row.Name, row.School, row.Sport, row.Season}
			record = append(record, row.Cells...)
			record = append(record, flags(row))
			if err := cw.Write(record); err != nil {
				return written, fmt.Errorf("writing row %d: %w", row.Rank, err)
			}
			written++
		}

		if page.Pagination.CurrentPage >= page.Pagination.TotalPages {
			break
		}
		state = page.State
		state.Page++
		page = r.Render(raw, state)
	}

	cw.Flush()
	return written, cw.Error()
}

func flags(row stats.DisplayRow) string {
	var out string
	if row.Extended {
		out += "*"
	}
	if row.HighGP {
		out += "⚠"
	}
	return out
}
