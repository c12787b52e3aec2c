package boxscore_test

import (
	"testing"

	"github.com/fortuna/prepstats/internal/boxscore"
)

func TestParseCSVPlayerStats(t *testing.T) {
	content := "Player,Team,PTS,REB,AST\n" +
		"\"Smith, John\",MSD,24,8,3\n" +
		"Mike Jones,ISD,18,5,\n"

	res := boxscore.ParseCSV(content)

	if len(res.Errors) != 0 {
		t.Fatalf("errors = %v", res.Errors)
	}
	if res.Confidence != 60 {
		t.Errorf("Confidence = %d, want 60", res.Confidence)
	}
	if len(res.Players) != 2 {
		t.Fatalf("got %d players", len(res.Players))
	}

	smith := res.Players[0]
	if smith.Name != "Smith, John" || smith.Team != "MSD" || smith.Stats["points"] != 24 {
		t.Errorf("first player = %+v", smith)
	}
	jones := res.Players[1]
	if _, ok := jones.Stats["assists"]; ok {
		t.Errorf("blank cell should be skipped: %+v", jones.Stats)
	}

	if v := boxscore.ValidateCSV(res); !v.IsValid {
		t.Errorf("ValidateCSV errors = %v", v.Errors)
	}
}

func TestParseCSVGameSummary(t *testing.T) {
	content := "Date,Home Team,Away Team,Home Score,Away Score,Location\n" +
		"02/16/2026,MSD,ISD,78,65,Frederick\n"

	res := boxscore.ParseCSV(content)

	g := res.Game
	if g.Date != "2026-02-16" || g.HomeTeam != "MSD" || g.AwayTeam != "ISD" || g.Location != "Frederick" {
		t.Errorf("game = %+v", g)
	}
	if g.HomeScore == nil || *g.HomeScore != 78 || g.AwayScore == nil || *g.AwayScore != 65 {
		t.Errorf("scores = %v / %v", g.HomeScore, g.AwayScore)
	}
	if res.Confidence != 40 {
		t.Errorf("Confidence = %d, want 40", res.Confidence)
	}
}

func TestParseCSVGeneric(t *testing.T) {
	res := boxscore.ParseCSV("Athlete,Goals\nAmy Park,3\n")

	if res.Confidence != 30 || len(res.Warnings) != 1 {
		t.Errorf("confidence %d warnings %v", res.Confidence, res.Warnings)
	}
	if len(res.Players) != 1 || res.Players[0].Name != "Amy Park" || res.Players[0].Stats["goals"] != 3 {
		t.Errorf("players = %+v", res.Players)
	}
}

func TestParseCSVTooShort(t *testing.T) {
	res := boxscore.ParseCSV("Player,PTS\n")
	if len(res.Errors) != 1 || res.Errors[0] != "CSV must have at least header and one data row" {
		t.Errorf("errors = %v", res.Errors)
	}
}

func TestDetectCSVKind(t *testing.T) {
	tests := []struct {
		headers []string
		want    boxscore.CSVKind
	}{
		{[]string{"Player", "PTS"}, boxscore.CSVPlayerStats},
		{[]string{"Name", "REB"}, boxscore.CSVPlayerStats},
		{[]string{"Home Team", "Home Score"}, boxscore.CSVGameSummary},
		{[]string{"foo", "bar"}, boxscore.CSVUnknown},
	}
	for _, tt := range tests {
		if got := boxscore.DetectCSVKind(tt.headers); got != tt.want {
			t.Errorf("DetectCSVKind(%v) = %q, want %q", tt.headers, got, tt.want)
		}
	}
}

func TestValidateCSV(t *testing.T) {
	res := &boxscore.Result{Players: []boxscore.Player{
		{Name: "Ann", Stats: map[string]float64{}},
	}}
	v := boxscore.ValidateCSV(res)
	if v.IsValid || len(v.Errors) != 1 || v.Errors[0] != "Row 2: No stats found for Ann" {
		t.Errorf("ValidateCSV = %+v", v)
	}

	v = boxscore.ValidateCSV(&boxscore.Result{})
	if v.IsValid || v.Errors[0] != "No player data found in CSV" {
		t.Errorf("ValidateCSV(empty) = %+v", v)
	}
}
