package stats_test

import (
	"encoding/json"
	"testing"

	"github.com/fortuna/prepstats/internal/stats"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Rec YDS/G", "RECYDSG"},
		{"fg%", "FG"},
		{"  Games Played ", "GAMESPLAYED"},
		{"3P%", "3P"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := stats.NormalizeKey(tt.in); got != tt.want {
				t.Errorf("NormalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestResolveRaw(t *testing.T) {
	tests := []struct {
		name    string
		row     stats.StatRow
		field   string
		aliases []string
		want    string
	}{
		{
			name:  "exact field",
			row:   stats.StatRow{"PTS": "120"},
			field: "PTS",
			want:  "120",
		},
		{
			name:  "case and punctuation insensitive",
			row:   stats.StatRow{"rec yds/g": "45.5"},
			field: "Rec YDS/G",
			want:  "45.5",
		},
		{
			name:    "alias used when canonical missing",
			row:     stats.StatRow{"Points": "88"},
			field:   "PTS",
			aliases: []string{"Points"},
			want:    "88",
		},
		{
			name:    "empty canonical falls through to alias",
			row:     stats.StatRow{"PTS": "", "Points": "14"},
			field:   "PTS",
			aliases: []string{"Points"},
			want:    "14",
		},
		{
			name:  "numeric values rendered",
			row:   stats.StatRow{"GP": float64(12)},
			field: "GP",
			want:  "12",
		},
		{
			name:  "json number",
			row:   stats.StatRow{"GP": json.Number("9")},
			field: "GP",
			want:  "9",
		},
		{
			name:  "absent",
			row:   stats.StatRow{"REB": "4"},
			field: "PTS",
			want:  "",
		},
		{
			name:  "nil row",
			row:   nil,
			field: "PTS",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stats.ResolveRaw(tt.row, tt.field, tt.aliases); got != tt.want {
				t.Errorf("ResolveRaw() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveRawPrefersExactSpelling(t *testing.T) {
	row := stats.StatRow{"pts": "1", "PTS": "2", "P.T.S.": "3"}
	for i := 0; i < 20; i++ {
		if got := stats.ResolveRaw(row, "PTS", nil); got != "2" {
			t.Fatalf("ResolveRaw() = %q, want exact spelling value 2", got)
		}
	}

	row = stats.StatRow{"pts": "1", "P.T.S.": "3"}
	for i := 0; i < 20; i++ {
		if got := stats.ResolveRaw(row, "PTS", nil); got != "3" {
			t.Fatalf("ResolveRaw() = %q, want smallest key value 3", got)
		}
	}
}

func TestResolveNumeric(t *testing.T) {
	tests := []struct {
		name string
		row  stats.StatRow
		want float64
	}{
		{"thousands separator", stats.StatRow{"Rush YDS": "1,234"}, 1234},
		{"decimal", stats.StatRow{"Rush YDS": "12.5"}, 12.5},
		{"malformed", stats.StatRow{"Rush YDS": "n/a"}, 0},
		{"absent", stats.StatRow{}, 0},
		{"alias", stats.StatRow{"Rushing Yards": "300"}, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stats.Resolve(tt.row, "Rush YDS"); got != tt.want {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseNumber(t *testing.T) {
	if got := stats.ParseNumber("45.5%"); got != 45.5 {
		t.Errorf("ParseNumber(45.5%%) = %v", got)
	}
	if got := stats.ParseNumber(" "); got != 0 {
		t.Errorf("ParseNumber(blank) = %v", got)
	}
}

func TestGamesPlayed(t *testing.T) {
	tests := []struct {
		name  string
		sport stats.SportType
		row   stats.StatRow
		want  float64
	}{
		{"canonical", stats.Soccer, stats.StatRow{"GP": "15"}, 15},
		{"spelled out", stats.Football, stats.StatRow{"Games Played": "10"}, 10},
		{"G in basketball", stats.Basketball, stats.StatRow{"G": "22"}, 22},
		{"G in softball", stats.Softball, stats.StatRow{"G": "30"}, 30},
		{"G in soccer is goals", stats.Soccer, stats.StatRow{"G": "12", "A": "4"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stats.GamesPlayed(tt.row, tt.sport); got != tt.want {
				t.Errorf("GamesPlayed() = %v, want %v", got, tt.want)
			}
		})
	}

	if got := stats.Resolve(stats.StatRow{"G": "12", "A": "4"}, "GP"); got != 0 {
		t.Errorf("Resolve(GP) without a sport = %v, want 0", got)
	}
}
