package stats

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortDirection is ascending or descending.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// SortState is the current sort column and direction of a table.
type SortState struct {
	Column    string        `json:"column"`
	Direction SortDirection `json:"direction"`
}

// ascendingByDefault lists columns whose first click sorts ascending.
var ascendingByDefault = map[string]bool{
	"era":    true,
	"whip":   true,
	"ga":     true,
	"name":   true,
	"school": true,
	"sport":  true,
	"season": true,
}

// textColumns are compared as locale-aware strings.
var textColumns = map[string]bool{
	"name":   true,
	"school": true,
	"sport":  true,
	"season": true,
}

// InitialDirection is the direction a column sorts in on its first click.
func InitialDirection(key string) SortDirection {
	if ascendingByDefault[key] {
		return Ascending
	}
	return Descending
}

// Toggle applies a header click. The same column flips direction; a new
// column starts at its initial direction.
func (s SortState) Toggle(key string) SortState {
	if key == s.Column && s.Column != "" {
		if s.Direction == Ascending {
			return SortState{Column: key, Direction: Descending}
		}
		return SortState{Column: key, Direction: Ascending}
	}
	return SortState{Column: key, Direction: InitialDirection(key)}
}

// DefaultSort returns the sort used before any header click.
func DefaultSort(sport SportType, category Category) SortState {
	var key string
	switch sport {
	case Baseball, Softball:
		if category == CategoryPitching {
			key = "era"
		} else {
			key = "avg"
		}
	case Football:
		switch category {
		case CategoryPassing:
			key = "passyds"
		case CategoryReceiving:
			key = "recyds"
		case CategoryDefense:
			key = "tackles"
		default:
			key = "rushyds"
		}
	case Volleyball:
		key = "kills"
	case Soccer:
		key = "goals"
	default:
		key = "ppg"
	}
	return SortState{Column: key, Direction: InitialDirection(key)}
}

// sortable is one row as seen by the sort engine.
type sortable interface {
	text(key string) string
	number(key string, category Category) float64
}

// SortRecords orders season records by a column. Numeric columns resolve the
// column definition against each record's own sport.
func SortRecords(records []ConsolidatedRecord, state SortState, category Category) {
	items := make([]sortable, len(records))
	for i := range records {
		items[i] = seasonItem{records[i]}
	}
	order := sortOrder(items, state, category)
	reorder(records, order)
}

// SortCareers orders career rows by a column.
func SortCareers(careers []CareerAggregate, state SortState) {
	items := make([]sortable, len(careers))
	for i := range careers {
		items[i] = careerItem{careers[i]}
	}
	order := sortOrder(items, state, CategoryNone)
	reorder(careers, order)
}

func sortOrder(items []sortable, state SortState, category Category) []int {
	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	if state.Column == "" {
		return order
	}

	desc := state.Direction == Descending
	if textColumns[state.Column] {
		// collators are not safe for concurrent use
		c := collate.New(language.English, collate.IgnoreCase)
		keys := make([]string, len(items))
		for i, it := range items {
			keys[i] = it.text(state.Column)
		}
		sort.SliceStable(order, func(a, b int) bool {
			cmp := c.CompareString(keys[order[a]], keys[order[b]])
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})
		return order
	}

	values := make([]float64, len(items))
	for i, it := range items {
		values[i] = it.number(state.Column, category)
	}
	sort.SliceStable(order, func(a, b int) bool {
		if desc {
			return values[order[a]] > values[order[b]]
		}
		return values[order[a]] < values[order[b]]
	})
	return order
}

func reorder[T any](items []T, order []int) {
	sorted := make([]T, len(items))
	for i, idx := range order {
		sorted[i] = items[idx]
	}
	copy(items, sorted)
}

type seasonItem struct{ rec ConsolidatedRecord }

func (s seasonItem) text(key string) string {
	switch key {
	case "name":
		return s.rec.Name
	case "school":
		return Abbreviate(s.rec.School)
	case "sport":
		return s.rec.Sport
	default:
		return s.rec.Season
	}
}

func (s seasonItem) number(key string, category Category) float64 {
	column, ok := ColumnFor(s.rec.SportType, string(category), key)
	if !ok {
		return 0
	}
	return ValueFor(s.rec.Stats, column, s.rec.SportType)
}

type careerItem struct{ agg CareerAggregate }

func (c careerItem) text(key string) string {
	switch key {
	case "name":
		return c.agg.Name
	case "school":
		return c.agg.School
	case "sport":
		return c.agg.Sport
	default:
		return c.agg.SeasonDisplay
	}
}

func (c careerItem) number(key string, _ Category) float64 {
	return c.agg.Values[key]
}
