package boxscore_test

import (
	"strings"
	"testing"

	"github.com/fortuna/prepstats/internal/boxscore"
)

const inlineBoxScore = `Boys Basketball
Final: MSD 78 - ISD 65
February 16, 2026
Location: Frederick, MD
John Smith: 24 pts, 8 reb, 3 ast
Mike Jones: 18 pts, 5 reb
`

func TestParseTextInline(t *testing.T) {
	res := boxscore.ParseText(inlineBoxScore)

	g := res.Game
	if g.HomeTeam != "MSD" || g.AwayTeam != "ISD" {
		t.Errorf("teams = %q vs %q", g.HomeTeam, g.AwayTeam)
	}
	if g.HomeScore == nil || *g.HomeScore != 78 || g.AwayScore == nil || *g.AwayScore != 65 {
		t.Errorf("scores = %v / %v", g.HomeScore, g.AwayScore)
	}
	if g.Date != "2026-02-16" {
		t.Errorf("Date = %q", g.Date)
	}
	if g.Sport != "basketball" || g.Gender != "boys" {
		t.Errorf("sport/gender = %q/%q", g.Sport, g.Gender)
	}
	if g.Location != "Frederick, MD" {
		t.Errorf("Location = %q", g.Location)
	}
	if res.Confidence != 100 {
		t.Errorf("Confidence = %d, want 100", res.Confidence)
	}

	if len(res.Players) != 2 {
		t.Fatalf("got %d players, want 2", len(res.Players))
	}
	smith := res.Players[0]
	if smith.Name != "John Smith" || smith.Stats["points"] != 24 || smith.Stats["rebounds"] != 8 || smith.Stats["assists"] != 3 {
		t.Errorf("first player = %+v", smith)
	}
	if jones := res.Players[1]; jones.Stats["assists"] != 0 || jones.Stats["points"] != 18 {
		t.Errorf("second player = %+v", jones)
	}

	if v := res.Validate(); !v.IsValid {
		t.Errorf("Validate() errors = %v", v.Errors)
	}
}

func TestParseTextTable(t *testing.T) {
	text := strings.Join([]string{
		"MSD 52, TSD 48",
		"Player        PTS  REB  AST",
		"John Smith    24   8    3",
		"Al Lee        10   2    1",
	}, "\n")

	res := boxscore.ParseText(text)

	if res.Game.HomeTeam != "MSD" || res.Game.AwayTeam != "TSD" {
		t.Errorf("teams = %q vs %q", res.Game.HomeTeam, res.Game.AwayTeam)
	}
	if res.Confidence != 75 {
		t.Errorf("Confidence = %d, want 75", res.Confidence)
	}
	if len(res.Players) != 2 {
		t.Fatalf("got %d players, want 2", len(res.Players))
	}
	if p := res.Players[0]; p.Name != "John Smith" || p.Stats["points"] != 24 || p.Stats["assists"] != 3 {
		t.Errorf("first player = %+v", p)
	}
	if p := res.Players[1]; p.Name != "Al Lee" || p.Stats["rebounds"] != 2 {
		t.Errorf("second player = %+v", p)
	}
}

func TestParseTextEmpty(t *testing.T) {
	res := boxscore.ParseText("nothing useful here")

	if res.Confidence != 0 {
		t.Errorf("Confidence = %d", res.Confidence)
	}
	if res.Players == nil || len(res.Players) != 0 {
		t.Errorf("Players = %v, want empty slice", res.Players)
	}

	v := res.Validate()
	if v.IsValid {
		t.Fatal("empty result should not validate")
	}
	want := []string{"Missing home team", "Missing away team", "Missing home score", "Missing away score", "Missing game date", "Missing sport", "No player stats found"}
	if strings.Join(v.Errors, "|") != strings.Join(want, "|") {
		t.Errorf("errors = %v", v.Errors)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2026-02-16", "2026-02-16", true},
		{"February 16, 2026", "2026-02-16", true},
		{"FEB 16 2026", "2026-02-16", true},
		{"Feb. 16, 2026", "2026-02-16", true},
		{"Sept 5, 2025", "2025-09-05", true},
		{"02/16/2026", "2026-02-16", true},
		{"2/6/2026", "2026-02-06", true},
		{"last tuesday", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := boxscore.ParseDate(tt.in)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got.Format(boxscore.DateLayout) != tt.want {
				t.Errorf("got %s, want %s", got.Format(boxscore.DateLayout), tt.want)
			}
		})
	}
}

func TestFindDate(t *testing.T) {
	if got := boxscore.FindDate("Played on Jan 9, 2026 in the main gym"); got != "2026-01-09" {
		t.Errorf("FindDate = %q", got)
	}
	if got := boxscore.FindDate("no date"); got != "" {
		t.Errorf("FindDate = %q, want empty", got)
	}
}

func TestParseDispatch(t *testing.T) {
	tests := []struct {
		source boxscore.Source
		want   boxscore.Source
	}{
		{boxscore.SourceText, boxscore.SourceText},
		{boxscore.SourceCSV, boxscore.SourceCSV},
		{boxscore.SourceHTML, boxscore.SourceHTML},
		{"", boxscore.SourceText},
	}
	for _, tt := range tests {
		if got := boxscore.Parse(tt.source, "x").Source; got != tt.want {
			t.Errorf("Parse(%q).Source = %q, want %q", tt.source, got, tt.want)
		}
	}
}
