package main

import (
	"encoding/csv"
	"fmt"
	"strings"
	"testing"

	"github.com/fortuna/prepstats/internal/service"
	"github.com/fortuna/prepstats/internal/stats"
)

func TestExportWritesEveryPage(t *testing.T) {
	var raw []stats.RawStatRow
	for i := 0; i < 230; i++ {
		raw = append(raw, stats.RawStatRow{
			AthleteName: fmt.Sprintf("Player %03d", i),
			School:      "Texas School for the Deaf",
			Sport:       "Basketball",
			Season:      "2023",
			StatRow:     stats.StatRow{"GP": "10", "PPG": fmt.Sprint(i)},
		})
	}

	records := service.NewRecordsService(nil, nil, nil)
	state := stats.Filter{Sport: "Basketball"}.ViewState()

	var b strings.Builder
	n, err := Export(&b, records, raw, state)
	if err != nil {
		t.Fatal(err)
	}
	if n != 230 {
		t.Errorf("wrote %d rows, want 230", n)
	}

	lines, err := csv.NewReader(strings.NewReader(b.String())).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 231 {
		t.Fatalf("csv has %d lines, want 231", len(lines))
	}
	if got := strings.Join(lines[0][:6], ","); got != "Rank,Name,School,Sport,Season,GP" {
		t.Errorf("header = %s", got)
	}
	if lines[1][0] != "1" || lines[1][1] != "Player 229" {
		t.Errorf("first row = %v", lines[1])
	}
	if lines[230][0] != "230" || lines[230][1] != "Player 000" {
		t.Errorf("last row = %v", lines[230])
	}
}

func TestExportEmpty(t *testing.T) {
	var b strings.Builder
	n, err := Export(&b, service.NewRecordsService(nil, nil, nil), nil, stats.ViewState{})
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 || strings.Count(b.String(), "\n") != 1 {
		t.Errorf("n = %d, output = %q", n, b.String())
	}
}

func TestFlags(t *testing.T) {
	tests := []struct {
		row  stats.DisplayRow
		want string
	}{
		{stats.DisplayRow{}, ""},
		{stats.DisplayRow{Extended: true}, "*"},
		{stats.DisplayRow{Extended: true, HighGP: true}, "*⚠"},
	}
	for _, tt := range tests {
		if got := flags(tt.row); got != tt.want {
			t.Errorf("flags(%+v) = %q, want %q", tt.row, got, tt.want)
		}
	}
}
