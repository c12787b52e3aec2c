package rest_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fortuna/prepstats/internal/api/rest"
	"github.com/fortuna/prepstats/internal/service"
	"github.com/fortuna/prepstats/internal/stats"
	"github.com/fortuna/prepstats/internal/store"
	"github.com/fortuna/prepstats/internal/submission"
)

type fakeRecords struct {
	rows   []stats.RawStatRow
	err    error
	filter stats.Filter
	states []stats.ViewState
}

func (f *fakeRecords) Fetch(ctx context.Context, filter stats.Filter) ([]stats.RawStatRow, error) {
	f.filter = filter
	return f.rows, f.err
}

func (f *fakeRecords) Render(raw []stats.RawStatRow, state stats.ViewState) service.Page {
	f.states = append(f.states, state)
	res, next := stats.NewEngine(stats.DefaultOptions()).Render(raw, state)
	return service.Page{Result: res, State: next}
}

type fakeMetadata struct {
	err error
}

func (f *fakeMetadata) Schools(ctx context.Context) ([]*store.School, error) {
	return []*store.School{
		{ID: "msd", FullName: "Maryland School for the Deaf", Division: sql.NullString{String: "East", Valid: true}},
	}, f.err
}

func (f *fakeMetadata) Sports(ctx context.Context) ([]string, error) {
	return nil, f.err
}

func (f *fakeMetadata) Seasons(ctx context.Context) ([]string, error) {
	return []string{"2022-2023"}, f.err
}

type fakeDB struct{ err error }

func (f fakeDB) HealthCheck() error { return f.err }

type fakeSubmissions struct {
	review submission.ReviewRequest
	err    error
}

func (f *fakeSubmissions) Preview(ctx context.Context, req submission.Request) (*submission.Preview, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &submission.Preview{Formatted: &submission.Formatted{Sport: "basketball"}}, nil
}

func (f *fakeSubmissions) Submit(ctx context.Context, req submission.Request) (*store.GameSubmission, *submission.Preview, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	sub := &store.GameSubmission{ID: 7, Sport: "basketball", Status: "pending", GameDate: time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC)}
	return sub, &submission.Preview{Parsed: &boxscoreResult, Validation: boxscoreResult.Validate()}, nil
}

func (f *fakeSubmissions) List(ctx context.Context, status submission.Status, limit int) ([]*store.GameSubmission, error) {
	return []*store.GameSubmission{{ID: 1, Status: string(status)}}, f.err
}

func (f *fakeSubmissions) Review(ctx context.Context, id int64, review submission.ReviewRequest) (*store.GameSubmission, error) {
	f.review = review
	if f.err != nil {
		return nil, f.err
	}
	return &store.GameSubmission{ID: id, Status: string(review.Status)}, nil
}

func newRouter(records *fakeRecords, meta *fakeMetadata, subs *fakeSubmissions, db fakeDB) http.Handler {
	return rest.NewRouter(rest.NewHandler(records, meta, db), rest.NewSubmissionHandler(subs), []string{"https://records.example.org"})
}

func serve(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func sampleRows() []stats.RawStatRow {
	return []stats.RawStatRow{
		{AthleteName: "Low", School: "Maryland School for the Deaf", Sport: "Basketball", Season: "2023", StatRow: stats.StatRow{"GP": "10", "PPG": "5"}},
		{AthleteName: "High", School: "Maryland School for the Deaf", Sport: "Basketball", Season: "2023", StatRow: stats.StatRow{"GP": "10", "PPG": "25"}},
	}
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name string
		db   fakeDB
		code int
		want string
	}{
		{"healthy", fakeDB{}, http.StatusOK, "healthy"},
		{"database down", fakeDB{err: errors.New("refused")}, http.StatusServiceUnavailable, "degraded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(t, newRouter(&fakeRecords{}, &fakeMetadata{}, &fakeSubmissions{}, tt.db), "GET", "/health", "")
			if rr.Code != tt.code {
				t.Fatalf("code = %d, want %d", rr.Code, tt.code)
			}
			var body map[string]string
			json.NewDecoder(rr.Body).Decode(&body)
			if body["status"] != tt.want || body["service"] != "prepstats" {
				t.Errorf("body = %v", body)
			}
		})
	}
}

func TestGetRecords(t *testing.T) {
	records := &fakeRecords{rows: sampleRows()}
	h := newRouter(records, &fakeMetadata{}, &fakeSubmissions{}, fakeDB{})

	rr := serve(t, h, "GET", "/api/v1/records?sport=Basketball&season=2023&q=msd&page_size=50&school=msd", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("code = %d: %s", rr.Code, rr.Body.String())
	}
	if records.filter.Sport != "Basketball" || records.filter.Season != "2023" || records.filter.Query != "msd" || records.filter.SchoolID != "msd" {
		t.Errorf("filter = %+v", records.filter)
	}

	var page service.Page
	if err := json.NewDecoder(rr.Body).Decode(&page); err != nil {
		t.Fatal(err)
	}
	if len(page.Rows) != 2 || page.Rows[0].Name != "High" {
		t.Errorf("rows = %+v", page.Rows)
	}
	if page.State.PageSize != 50 || page.State.Sort.Column != "ppg" || page.State.Sort.Direction != stats.Descending {
		t.Errorf("state = %+v", page.State)
	}
}

func TestGetRecordsClickTogglesDefaultSort(t *testing.T) {
	records := &fakeRecords{rows: sampleRows()}
	h := newRouter(records, &fakeMetadata{}, &fakeSubmissions{}, fakeDB{})

	rr := serve(t, h, "GET", "/api/v1/records?sport=Basketball&page=3&click=ppg", "")
	var page service.Page
	if err := json.NewDecoder(rr.Body).Decode(&page); err != nil {
		t.Fatal(err)
	}
	if page.State.Sort.Direction != stats.Ascending || page.State.Page != 1 {
		t.Errorf("state = %+v", page.State)
	}
	if page.Rows[0].Name != "Low" {
		t.Errorf("first row = %q", page.Rows[0].Name)
	}

	rr = serve(t, h, "GET", "/api/v1/records?sport=Basketball&sort=ppg&dir=asc&click=gp", "")
	json.NewDecoder(rr.Body).Decode(&page)
	if page.State.Sort.Column != "gp" || page.State.Sort.Direction != stats.Descending {
		t.Errorf("clicking a new column = %+v", page.State.Sort)
	}
}

func TestGetRecordsFetchError(t *testing.T) {
	h := newRouter(&fakeRecords{err: errors.New("timeout")}, &fakeMetadata{}, &fakeSubmissions{}, fakeDB{})

	rr := serve(t, h, "GET", "/api/v1/records", "")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("code = %d", rr.Code)
	}
	var body map[string]interface{}
	json.NewDecoder(rr.Body).Decode(&body)
	if body["error"] != "Failed to fetch records" || body["details"] != "timeout" {
		t.Errorf("body = %v", body)
	}
}

func TestGetColumns(t *testing.T) {
	h := newRouter(&fakeRecords{}, &fakeMetadata{}, &fakeSubmissions{}, fakeDB{})

	rr := serve(t, h, "GET", "/api/v1/columns?sport=Softball&category=pitching", "")
	var body struct {
		Sport      string                   `json:"sport"`
		Category   string                   `json:"category"`
		Categories []string                 `json:"categories"`
		Columns    []stats.ColumnDefinition `json:"columns"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Sport != "softball" || body.Category != "pitching" || len(body.Categories) != 2 {
		t.Errorf("body = %+v", body)
	}
	if len(body.Columns) == 0 || body.Columns[0].Key != "gp" {
		t.Errorf("columns = %+v", body.Columns)
	}
}

func TestMetadataEndpoints(t *testing.T) {
	h := newRouter(&fakeRecords{}, &fakeMetadata{}, &fakeSubmissions{}, fakeDB{})

	rr := serve(t, h, "GET", "/api/v1/schools", "")
	var schools []map[string]interface{}
	json.NewDecoder(rr.Body).Decode(&schools)
	if len(schools) != 1 || schools[0]["abbreviation"] != "MSD" || schools[0]["division"] != "East" {
		t.Errorf("schools = %v", schools)
	}

	rr = serve(t, h, "GET", "/api/v1/sports", "")
	if strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Errorf("sports = %s, want []", rr.Body.String())
	}

	h = newRouter(&fakeRecords{}, &fakeMetadata{err: errors.New("down")}, &fakeSubmissions{}, fakeDB{})
	if rr := serve(t, h, "GET", "/api/v1/seasons", ""); rr.Code != http.StatusInternalServerError {
		t.Errorf("seasons code = %d", rr.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := newRouter(&fakeRecords{}, &fakeMetadata{}, &fakeSubmissions{}, fakeDB{})

	req := httptest.NewRequest("OPTIONS", "/api/v1/submissions", nil)
	req.Header.Set("Origin", "https://records.example.org")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://records.example.org" {
		t.Errorf("Allow-Origin = %q", got)
	}
}
