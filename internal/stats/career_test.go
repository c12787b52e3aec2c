package stats_test

import (
	"reflect"
	"strconv"
	"testing"

	"github.com/fortuna/prepstats/internal/stats"
)

// sixSeasons returns one basketball season per year 2018..2023 with
// GP 10, PTS 10*(n) and PPG n for the n-th season.
func sixSeasons() []stats.RawStatRow {
	var rows []stats.RawStatRow
	for i, year := 0, 2018; year <= 2023; i, year = i+1, year+1 {
		n := i + 1
		rows = append(rows, stats.RawStatRow{
			AthleteName: "J. Doe",
			School:      "Indiana School for the Deaf",
			Sport:       "Basketball",
			Season:      strconv.Itoa(year),
			StatRow: stats.StatRow{
				"GP":  "10",
				"PTS": strconv.Itoa(10 * n),
				"PPG": strconv.Itoa(n),
			},
		})
	}
	return rows
}

func TestAggregateCareersStandardCapsToLastSeasons(t *testing.T) {
	opts := stats.DefaultOptions()
	records := stats.Consolidate(sixSeasons())

	got := stats.AggregateCareers(records, opts.StandardSeasons, opts)
	if len(got) != 1 {
		t.Fatalf("got %d careers, want 1", len(got))
	}
	c := got[0]

	if want := []string{"2020", "2021", "2022", "2023"}; !reflect.DeepEqual(c.Seasons, want) {
		t.Errorf("Seasons = %v, want %v", c.Seasons, want)
	}
	if c.SeasonDisplay != "2020-2023" {
		t.Errorf("SeasonDisplay = %q", c.SeasonDisplay)
	}
	if c.SeasonCount != 6 {
		t.Errorf("SeasonCount = %d, want 6", c.SeasonCount)
	}
	if c.Name != "J. Doe" || c.Extended {
		t.Errorf("standard view must not star: %q", c.Name)
	}
	if c.School != "ISD" {
		t.Errorf("School = %q, want ISD", c.School)
	}

	tests := map[string]string{
		"gp":  "40",
		"pts": "180",
		"ppg": "4.5",
		"reb": "0",
		"rpg": "0.0",
	}
	for key, want := range tests {
		if got := c.Cells[key]; got != want {
			t.Errorf("cell %s = %q, want %q", key, got, want)
		}
	}
}

func TestAggregateCareersExtendedStarsLongCareers(t *testing.T) {
	opts := stats.DefaultOptions()
	records := stats.Consolidate(sixSeasons())

	c := stats.AggregateCareers(records, 0, opts)[0]
	if c.Name != "J. Doe*" || !c.Extended {
		t.Errorf("Name = %q, Extended = %v", c.Name, c.Extended)
	}
	if c.SeasonDisplay != "2018-2023" {
		t.Errorf("SeasonDisplay = %q", c.SeasonDisplay)
	}
	if c.Cells["gp"] != "60" || c.Cells["pts"] != "210" || c.Cells["ppg"] != "3.5" {
		t.Errorf("cells = %v", c.Cells)
	}
	if c.Totals["ppg"] != 210 {
		t.Errorf("weighted ppg total = %v, want 210", c.Totals["ppg"])
	}
}

func TestAggregateCareersShortCareerModesAgree(t *testing.T) {
	opts := stats.DefaultOptions()
	for seasons := 1; seasons <= 4; seasons++ {
		records := stats.Consolidate(sixSeasons()[:seasons])

		standard := stats.AggregateCareers(records, opts.StandardSeasons, opts)[0]
		extended := stats.AggregateCareers(records, 0, opts)[0]

		if !reflect.DeepEqual(standard, extended) {
			t.Errorf("%d seasons: standard %+v != extended %+v", seasons, standard, extended)
		}
		if standard.Extended {
			t.Errorf("%d seasons: unexpected star", seasons)
		}
	}
}

func TestAggregateCareersSingleSeasonLabel(t *testing.T) {
	raw := []stats.RawStatRow{{
		AthleteName: "K", School: "MSD", Sport: "Basketball", Season: "2021-2022",
		StatRow: stats.StatRow{"GP": "5"},
	}}
	c := stats.AggregateCareers(stats.Consolidate(raw), 4, stats.DefaultOptions())[0]
	if c.SeasonDisplay != "2021" {
		t.Errorf("SeasonDisplay = %q, want 2021", c.SeasonDisplay)
	}
}

func TestAggregateCareersSpanLabel(t *testing.T) {
	var raw []stats.RawStatRow
	for _, season := range []string{"2020-2021", "2019-2020", "2021-2022"} {
		raw = append(raw, stats.RawStatRow{
			AthleteName: "K", School: "MSD", Sport: "Basketball", Season: season,
			StatRow: stats.StatRow{"GP": "5"},
		})
	}
	c := stats.AggregateCareers(stats.Consolidate(raw), 4, stats.DefaultOptions())[0]
	if c.SeasonDisplay != "2019-2022" {
		t.Errorf("SeasonDisplay = %q, want 2019-2022", c.SeasonDisplay)
	}
}

func TestAggregateCareersPerGameWithoutGames(t *testing.T) {
	raw := []stats.RawStatRow{{
		AthleteName: "K", School: "MSD", Sport: "Basketball", Season: "2022",
		StatRow: stats.StatRow{"PPG": "14"},
	}}
	c := stats.AggregateCareers(stats.Consolidate(raw), 0, stats.DefaultOptions())[0]
	if c.Cells["ppg"] != "0.0" {
		t.Errorf("ppg = %q, want 0.0", c.Cells["ppg"])
	}
}

func TestAggregateCareersBattingAverage(t *testing.T) {
	raw := []stats.RawStatRow{
		{AthleteName: "P", School: "TSD", Sport: "Baseball", Season: "2022", StatRow: stats.StatRow{"GP": "20", "H": "20", "AB": "50"}},
		{AthleteName: "P", School: "TSD", Sport: "Baseball", Season: "2023", StatRow: stats.StatRow{"GP": "20", "H": "10", "AB": "50"}},
	}
	c := stats.AggregateCareers(stats.Consolidate(raw), 4, stats.DefaultOptions())[0]
	if c.Cells["avg"] != "0.300" {
		t.Errorf("avg = %q, want 0.300", c.Cells["avg"])
	}

	noAB := []stats.RawStatRow{
		{AthleteName: "Q", School: "TSD", Sport: "Softball", Season: "2022", StatRow: stats.StatRow{"AVG": ".400"}},
		{AthleteName: "Q", School: "TSD", Sport: "Softball", Season: "2023", StatRow: stats.StatRow{"AVG": ".200"}},
	}
	c = stats.AggregateCareers(stats.Consolidate(noAB), 4, stats.DefaultOptions())[0]
	if c.Cells["avg"] != "0.300" {
		t.Errorf("fallback avg = %q, want 0.300", c.Cells["avg"])
	}

	empty := []stats.RawStatRow{
		{AthleteName: "R", School: "TSD", Sport: "Baseball", Season: "2022", StatRow: stats.StatRow{}},
	}
	c = stats.AggregateCareers(stats.Consolidate(empty), 4, stats.DefaultOptions())[0]
	if c.Cells["avg"] != "0.000" {
		t.Errorf("empty avg = %q, want 0.000", c.Cells["avg"])
	}
}

func TestAggregateCareersRatiosFromComponents(t *testing.T) {
	raw := []stats.RawStatRow{
		{AthleteName: "P", School: "TSD", Sport: "Baseball", Season: "2022", StatRow: stats.StatRow{"ER": "10", "IP": "35", "ERA": "2.00"}},
		{AthleteName: "P", School: "TSD", Sport: "Baseball", Season: "2023", StatRow: stats.StatRow{"ER": "5", "IP": "35", "ERA": "1.00"}},
	}
	c := stats.AggregateCareers(stats.Consolidate(raw), 4, stats.DefaultOptions())[0]
	if c.Cells["era"] != "1.50" {
		t.Errorf("era = %q, want 1.50", c.Cells["era"])
	}
}

func TestAggregateCareersLabelHeaders(t *testing.T) {
	raw := []stats.RawStatRow{
		{AthleteName: "K", School: "MSD", Sport: "Soccer", Season: "2022", StatRow: stats.StatRow{"G": "3", "SV": "10", "GA": "10"}},
		{AthleteName: "K", School: "MSD", Sport: "Soccer", Season: "2023", StatRow: stats.StatRow{"G": "3", "SV": "10", "GA": "10"}},
	}
	c := stats.AggregateCareers(stats.Consolidate(raw), 4, stats.DefaultOptions())[0]
	want := map[string]string{"gp": "0", "goals": "6", "saves": "20", "svpct": "0.500"}
	for key, cell := range want {
		if c.Cells[key] != cell {
			t.Errorf("%s = %q, want %q", key, c.Cells[key], cell)
		}
	}
}

func TestAggregateCareersHighGP(t *testing.T) {
	var raw []stats.RawStatRow
	for _, season := range []string{"2020", "2021", "2022"} {
		raw = append(raw, stats.RawStatRow{
			AthleteName: "V", School: "MSSD", Sport: "Volleyball", Season: season,
			StatRow: stats.StatRow{"GP": "50"},
		})
	}
	c := stats.AggregateCareers(stats.Consolidate(raw), 0, stats.DefaultOptions())[0]
	if !c.HighGP {
		t.Errorf("TotalGP %v should exceed the threshold", c.TotalGP)
	}

	opts := stats.DefaultOptions()
	opts.HighGPThreshold = 200
	c = stats.AggregateCareers(stats.Consolidate(raw), 0, opts)[0]
	if c.HighGP {
		t.Error("custom threshold ignored")
	}
}

func TestAggregateCareersGroupsBySchoolAndSport(t *testing.T) {
	raw := []stats.RawStatRow{
		{AthleteName: "A", School: "MSD", Sport: "Basketball", Season: "2022", StatRow: stats.StatRow{"GP": "1"}},
		{AthleteName: "A", School: "TSD", Sport: "Basketball", Season: "2022", StatRow: stats.StatRow{"GP": "1"}},
		{AthleteName: "A", School: "MSD", Sport: "Soccer", Season: "2022", StatRow: stats.StatRow{"GP": "1"}},
		{AthleteName: "A", School: "MSD", Sport: "Basketball", Season: "2023", StatRow: stats.StatRow{"GP": "1"}},
	}
	got := stats.AggregateCareers(stats.Consolidate(raw), 0, stats.DefaultOptions())
	if len(got) != 3 {
		t.Fatalf("got %d careers, want 3", len(got))
	}
	if got[0].Cells["gp"] != "2" {
		t.Errorf("first career gp = %q, want 2", got[0].Cells["gp"])
	}
}
