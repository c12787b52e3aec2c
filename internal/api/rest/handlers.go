package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/fortuna/prepstats/internal/service"
	"github.com/fortuna/prepstats/internal/stats"
	"github.com/fortuna/prepstats/internal/store"
)

// RecordsService fetches and renders record pages
type RecordsService interface {
	Fetch(ctx context.Context, filter stats.Filter) ([]stats.RawStatRow, error)
	Render(raw []stats.RawStatRow, state stats.ViewState) service.Page
}

// MetadataService serves the dropdown lists
type MetadataService interface {
	Schools(ctx context.Context) ([]*store.School, error)
	Sports(ctx context.Context) ([]string, error)
	Seasons(ctx context.Context) ([]string, error)
}

// HealthChecker reports whether a backing store is reachable
type HealthChecker interface {
	HealthCheck() error
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	records  RecordsService
	metadata MetadataService
	db       HealthChecker
}

// NewHandler creates a new handler
func NewHandler(records RecordsService, metadata MetadataService, db HealthChecker) *Handler {
	return &Handler{
		records:  records,
		metadata: metadata,
		db:       db,
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status, code := "healthy", http.StatusOK
	if h.db != nil {
		if err := h.db.HealthCheck(); err != nil {
			status, code = "degraded", http.StatusServiceUnavailable
		}
	}

	respondJSON(w, code, map[string]string{
		"status":  status,
		"service": serviceName,
		"version": serviceVersion,
	})
}

// GetRecords fetches the rows matching the filter and returns one rendered
// page with the view state that produced it. A click parameter toggles the
// sort on that column.
func (h *Handler) GetRecords(w http.ResponseWriter, r *http.Request) {
	filter, state, click := parseRecordsQuery(r)

	raw, err := h.records.Fetch(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch records", err)
		return
	}

	if click != "" {
		state = state.Resolve(raw).Click(click)
	}

	respondJSON(w, http.StatusOK, h.records.Render(raw, state))
}

// GetColumns returns the display columns of a sport and category
func (h *Handler) GetColumns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sport := q.Get("sport")
	if sport == "" || strings.EqualFold(sport, "all") {
		sport = string(stats.Basketball)
	}
	sportType := stats.DetectSportType(sport)
	category := stats.NormalizeCategory(sportType, q.Get("category"))

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sport":      sportType,
		"category":   category,
		"categories": stats.Categories(sportType),
		"columns":    stats.DisplayColumnsFor(sport, string(category), parseBool(q.Get("advanced"))),
	})
}

// GetSchools returns the active schools
func (h *Handler) GetSchools(w http.ResponseWriter, r *http.Request) {
	schools, err := h.metadata.Schools(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch schools", err)
		return
	}

	out := make([]map[string]interface{}, 0, len(schools))
	for _, s := range schools {
		school := map[string]interface{}{
			"id":           s.ID,
			"full_name":    s.FullName,
			"abbreviation": stats.Abbreviate(s.FullName),
		}
		if s.ShortName.Valid {
			school["short_name"] = s.ShortName.String
		}
		if s.Division.Valid {
			school["division"] = s.Division.String
		}
		out = append(out, school)
	}

	respondJSON(w, http.StatusOK, out)
}

// GetSports returns the distinct sports
func (h *Handler) GetSports(w http.ResponseWriter, r *http.Request) {
	sports, err := h.metadata.Sports(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch sports", err)
		return
	}
	respondJSON(w, http.StatusOK, nonNil(sports))
}

// GetSeasons returns the distinct seasons
func (h *Handler) GetSeasons(w http.ResponseWriter, r *http.Request) {
	seasons, err := h.metadata.Seasons(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch seasons", err)
		return
	}
	respondJSON(w, http.StatusOK, nonNil(seasons))
}

// parseRecordsQuery reads the filter, view state and click key of a
// records request.
func parseRecordsQuery(r *http.Request) (stats.Filter, stats.ViewState, string) {
	q := r.URL.Query()

	filter := stats.Filter{
		SchoolID:        q.Get("school"),
		Sport:           q.Get("sport"),
		Division:        q.Get("division"),
		Season:          q.Get("season"),
		FootballVariant: q.Get("football_variant"),
		Query:           q.Get("q"),
		StatCategory:    q.Get("category"),
		ShowAdvanced:    parseBool(q.Get("advanced")),
		StatsView:       stats.ParseStatsView(q.Get("view")),
	}

	state := filter.ViewState()
	if col := q.Get("sort"); col != "" {
		state.Sort = stats.SortState{Column: col, Direction: stats.SortDirection(q.Get("dir"))}
		if state.Sort.Direction != stats.Ascending && state.Sort.Direction != stats.Descending {
			state.Sort.Direction = stats.InitialDirection(col)
		}
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		state.Page = page
	}
	if size, err := strconv.Atoi(q.Get("page_size")); err == nil {
		state.PageSize = size
	}

	return filter, state, q.Get("click")
}

func parseBool(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
