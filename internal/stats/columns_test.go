package stats_test

import (
	"testing"

	"github.com/fortuna/prepstats/internal/stats"
)

func TestDetectSportType(t *testing.T) {
	tests := []struct {
		text string
		want stats.SportType
	}{
		{"Boys Basketball", stats.Basketball},
		{"Football 11-Man", stats.Football},
		{"FOOTBALL 8-man", stats.Football},
		{"Girls Volleyball", stats.Volleyball},
		{"Softball", stats.Softball},
		{"Baseball", stats.Baseball},
		{"Soccer", stats.Soccer},
		{"Wrestling", stats.Basketball},
		{"", stats.Basketball},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := stats.DetectSportType(tt.text); got != tt.want {
				t.Errorf("DetectSportType(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		sport stats.SportType
		cat   string
		want  stats.Category
	}{
		{stats.Baseball, "pitching", stats.CategoryPitching},
		{stats.Baseball, "passing", stats.CategoryBatting},
		{stats.Softball, "", stats.CategoryBatting},
		{stats.Football, "Receiving", stats.CategoryReceiving},
		{stats.Football, "kicking", stats.CategoryRushing},
		{stats.Basketball, "pitching", stats.CategoryNone},
	}

	for _, tt := range tests {
		t.Run(string(tt.sport)+"/"+tt.cat, func(t *testing.T) {
			if got := stats.NormalizeCategory(tt.sport, tt.cat); got != tt.want {
				t.Errorf("NormalizeCategory() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestColumnKeysUnique(t *testing.T) {
	for _, sport := range stats.SportTypes() {
		cats := stats.Categories(sport)
		if len(cats) == 0 {
			cats = []stats.Category{stats.CategoryNone}
		}
		for _, cat := range cats {
			seen := map[string]bool{}
			for _, c := range stats.ColumnsFor(sport, string(cat)) {
				if seen[c.Key] {
					t.Errorf("%s/%s: duplicate key %q", sport, cat, c.Key)
				}
				seen[c.Key] = true
			}
		}
	}
}

func TestDisplayColumnsFor(t *testing.T) {
	core := stats.DisplayColumnsFor("Basketball", "", false)
	want := []string{"gp", "pts", "ppg", "reb", "ast", "stl", "blk"}
	if len(core) != len(want) {
		t.Fatalf("got %d core columns, want %d", len(core), len(want))
	}
	for i, key := range want {
		if core[i].Key != key {
			t.Errorf("core[%d] = %q, want %q", i, core[i].Key, key)
		}
	}

	all := stats.DisplayColumnsFor("Basketball", "", true)
	full := stats.ColumnsFor(stats.Basketball, "")
	if len(all) != len(full) {
		t.Fatalf("advanced view has %d columns, want %d", len(all), len(full))
	}
	for i, key := range want {
		if all[i].Key != key {
			t.Errorf("advanced view must keep core first: [%d] = %q", i, all[i].Key)
		}
	}
	if all[len(want)].Key != "rpg" {
		t.Errorf("first advanced column = %q, want rpg", all[len(want)].Key)
	}
}

func TestBasketballRateLinks(t *testing.T) {
	links := map[string]string{"reb": "RPG", "ast": "APG", "stl": "SPG", "blk": "BPG"}
	for _, c := range stats.ColumnsFor(stats.Basketball, "") {
		if want, ok := links[c.Key]; ok && c.DerivedRateField != want {
			t.Errorf("%s derived rate = %q, want %q", c.Key, c.DerivedRateField, want)
		}
	}
	for _, sport := range []stats.SportType{stats.Baseball, stats.Football, stats.Volleyball, stats.Soccer} {
		for _, c := range stats.AllColumns(sport) {
			if c.DerivedRateField != "" {
				t.Errorf("%s/%s carries a derived rate field", sport, c.Key)
			}
		}
	}
}

func TestColumnIsPerGame(t *testing.T) {
	tests := []struct {
		label string
		want  bool
	}{
		{"PPG", true},
		{"YDS/G", true},
		{"K/G", true},
		{"GP", false},
		{"PTS", false},
	}
	for _, tt := range tests {
		c := stats.ColumnDefinition{Label: tt.label}
		if got := c.IsPerGame(); got != tt.want {
			t.Errorf("IsPerGame(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}

func TestColumnForFallsBackAcrossCategories(t *testing.T) {
	c, ok := stats.ColumnFor(stats.Football, "passing", "recyds")
	if !ok || c.Field != "Rec YDS" {
		t.Errorf("ColumnFor(recyds) = %+v, %v", c, ok)
	}
	if _, ok := stats.ColumnFor(stats.Soccer, "", "ppg"); ok {
		t.Error("soccer must not resolve ppg")
	}
}

func TestColumnAliasesIncludeLabel(t *testing.T) {
	tests := []struct {
		sport     stats.SportType
		category  string
		key       string
		wantLabel bool
	}{
		{stats.Volleyball, "", "kills", true},
		{stats.Baseball, "pitching", "pk", true},
		{stats.Soccer, "", "goals", true},
		{stats.Basketball, "", "pts", false},
		{stats.Football, "passing", "passyds", false},
		{stats.Football, "receiving", "rectd", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.sport)+"/"+tt.key, func(t *testing.T) {
			c, ok := stats.ColumnFor(tt.sport, tt.category, tt.key)
			if !ok {
				t.Fatalf("no column %s", tt.key)
			}
			got := false
			for _, a := range c.Aliases(tt.sport) {
				if a == c.Label {
					got = true
				}
			}
			if got != tt.wantLabel {
				t.Errorf("Aliases(%s) = %v, label %q included = %v, want %v", tt.key, c.Aliases(tt.sport), c.Label, got, tt.wantLabel)
			}
		})
	}
}
