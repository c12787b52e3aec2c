package stats

import "strings"

// StatsView selects season rows or one of the career rollups.
type StatsView string

const (
	ViewSeason         StatsView = "season"
	ViewCareerStandard StatsView = "career-standard"
	ViewCareerExtended StatsView = "career-extended"
)

// ParseStatsView maps request text to a view, defaulting to season rows.
func ParseStatsView(s string) StatsView {
	switch StatsView(strings.ToLower(strings.TrimSpace(s))) {
	case ViewCareerStandard:
		return ViewCareerStandard
	case ViewCareerExtended:
		return ViewCareerExtended
	default:
		return ViewSeason
	}
}

// Filter is the query accepted from the portal. The store-facing fields
// narrow the fetch; the rest select how the fetched rows are shown.
type Filter struct {
	SchoolID        string    `json:"school_id,omitempty"`
	Sport           string    `json:"sport,omitempty"`
	Division        string    `json:"division,omitempty"`
	Season          string    `json:"season,omitempty"`
	FootballVariant string    `json:"football_variant,omitempty"`
	Query           string    `json:"query,omitempty"`
	StatCategory    string    `json:"stat_category,omitempty"`
	ShowAdvanced    bool      `json:"show_advanced,omitempty"`
	StatsView       StatsView `json:"stats_view,omitempty"`
}

// ViewState is the UI session state threaded through every render.
type ViewState struct {
	View         StatsView `json:"view"`
	Sport        string    `json:"sport"`
	Category     string    `json:"category"`
	ShowAdvanced bool      `json:"show_advanced"`
	Sort         SortState `json:"sort"`
	Page         int       `json:"page"`
	PageSize     int       `json:"page_size"`
}

// ViewState derives the initial view state of a filter.
func (f Filter) ViewState() ViewState {
	return ViewState{
		View:         ParseStatsView(string(f.StatsView)),
		Sport:        f.Sport,
		Category:     f.StatCategory,
		ShowAdvanced: f.ShowAdvanced,
		Page:         1,
	}
}

// Click applies a header click and returns to the first page.
func (v ViewState) Click(key string) ViewState {
	v.Sort = v.Sort.Toggle(key)
	v.Page = 1
	return v
}

// WithPageSize changes the page size and returns to the first page.
func (v ViewState) WithPageSize(size int) ViewState {
	v.PageSize = size
	v.Page = 1
	return v
}

// WithCategory switches the stat category. The sort resets to the new
// table's default.
func (v ViewState) WithCategory(category string) ViewState {
	if category != v.Category {
		v.Category = category
		v.Sort = SortState{}
		v.Page = 1
	}
	return v
}

// Resolve fills in the view, category and sort defaults Render applies for
// raw, so a header click can toggle the sort the user actually sees.
func (v ViewState) Resolve(raw []RawStatRow) ViewState {
	sport := DetectSportType(HeaderSport(v.Sport, raw))
	category := NormalizeCategory(sport, v.Category)

	v.View = ParseStatsView(string(v.View))
	v.Category = string(category)
	if v.Sort.Column == "" {
		v.Sort = DefaultSort(sport, category)
	}
	if v.Sort.Direction == "" {
		v.Sort.Direction = InitialDirection(v.Sort.Column)
	}
	return v
}

// WithView selects a stats view directly.
func (v ViewState) WithView(view StatsView) ViewState {
	v.View = view
	v.Page = 1
	return v
}

// DisplayRow is one ready-to-render table row.
type DisplayRow struct {
	Rank        int      `json:"rank"`
	Name        string   `json:"name"`
	School      string   `json:"school"`
	Sport       string   `json:"sport"`
	Season      string   `json:"season"`
	Cells       []string `json:"cells"`
	HighGP      bool     `json:"high_gp,omitempty"`
	Extended    bool     `json:"extended,omitempty"`
	Submissions int      `json:"submissions,omitempty"`
}

// Result is one rendered page.
type Result struct {
	Columns    []ColumnDefinition `json:"columns"`
	Rows       []DisplayRow       `json:"rows"`
	Pagination Pagination         `json:"pagination"`
	Message    string             `json:"message,omitempty"`
}

// NoRecordsMessage is reported for an empty result set.
const NoRecordsMessage = "No records found"

// Engine runs the consolidate, aggregate, project, sort and paginate pipeline.
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	opts Options
}

// NewEngine creates an engine with the given thresholds.
func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts.withDefaults()}
}

// Options returns the engine's effective thresholds.
func (e *Engine) Options() Options {
	return e.opts
}

// HeaderSport picks the sport that drives the table header: the filter's
// sport, else the first record's, else basketball.
func HeaderSport(filterSport string, raw []RawStatRow) string {
	if s := strings.TrimSpace(filterSport); s != "" && !strings.EqualFold(s, "all") {
		return s
	}
	for _, row := range raw {
		if strings.TrimSpace(row.Sport) != "" {
			return row.Sport
		}
	}
	return string(Basketball)
}

// Render projects raw rows through the view state. It never mutates raw and
// always starts from it, so any view can follow any other.
func (e *Engine) Render(raw []RawStatRow, state ViewState) (Result, ViewState) {
	sportText := HeaderSport(state.Sport, raw)
	next := state.Resolve(raw)
	category := Category(next.Category)

	columns := DisplayColumnsFor(sportText, string(category), state.ShowAdvanced)
	records := Consolidate(raw)

	var rows []DisplayRow
	var page Pagination
	switch next.View {
	case ViewCareerStandard, ViewCareerExtended:
		limit := 0
		if next.View == ViewCareerStandard {
			limit = e.opts.StandardSeasons
		}
		careers := AggregateCareers(records, limit, e.opts)
		SortCareers(careers, next.Sort)

		var start, end int
		page, start, end = Paginate(len(careers), state.Page, state.PageSize, e.opts.DefaultPageSize)
		for i, agg := range careers[start:end] {
			rows = append(rows, careerRow(start+i+1, agg, columns))
		}

	default:
		SortRecords(records, next.Sort, category)

		var start, end int
		page, start, end = Paginate(len(records), state.Page, state.PageSize, e.opts.DefaultPageSize)
		for i, rec := range records[start:end] {
			rows = append(rows, seasonRow(start+i+1, rec, category, columns))
		}
	}

	next.Page = page.CurrentPage
	next.PageSize = page.PageSize

	res := Result{Columns: columns, Rows: rows, Pagination: page}
	if page.TotalCount == 0 {
		res.Rows = []DisplayRow{}
		res.Message = NoRecordsMessage
	}
	return res, next
}

func seasonRow(rank int, rec ConsolidatedRecord, category Category, columns []ColumnDefinition) DisplayRow {
	cells := make([]string, len(columns))
	for i, header := range columns {
		column, ok := ColumnFor(rec.SportType, string(category), header.Key)
		if !ok {
			cells[i] = "-"
			continue
		}
		cells[i] = SeasonCell(rec.Stats, column, rec.SportType)
	}
	return DisplayRow{
		Rank:        rank,
		Name:        rec.Name,
		School:      Abbreviate(rec.School),
		Sport:       rec.Sport,
		Season:      rec.Season,
		Cells:       cells,
		Submissions: rec.Submissions,
	}
}

func careerRow(rank int, agg CareerAggregate, columns []ColumnDefinition) DisplayRow {
	cells := make([]string, len(columns))
	for i, header := range columns {
		cell, ok := agg.Cells[header.Key]
		if !ok {
			cell = "-"
		}
		cells[i] = cell
	}
	return DisplayRow{
		Rank:     rank,
		Name:     agg.Name,
		School:   agg.School,
		Sport:    agg.Sport,
		Season:   agg.SeasonDisplay,
		Cells:    cells,
		HighGP:   agg.HighGP,
		Extended: agg.Extended,
	}
}
