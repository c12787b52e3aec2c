package boxscore

import (
	"strconv"
	"strings"
)

type columnRole int

const (
	roleStat columnRole = iota
	roleName
	roleTeam
)

type column struct {
	role columnRole
	key  string
}

var statHeaders = map[string]string{
	"pts":            "points",
	"points":         "points",
	"reb":            "rebounds",
	"rebounds":       "rebounds",
	"ast":            "assists",
	"assists":        "assists",
	"stl":            "steals",
	"steals":         "steals",
	"blk":            "blocks",
	"blocks":         "blocks",
	"fg%":            "fg_pct",
	"field goal %":   "fg_pct",
	"3pt":            "three_pointers",
	"3pm":            "three_pointers",
	"three pointers": "three_pointers",
	"ft":             "free_throws",
	"ftm":            "free_throws",
	"free throws":    "free_throws",
	"min":            "minutes",
	"to":             "turnovers",
	"pf":             "fouls",
}

// classify maps one header cell to its role and stat key. Unknown headers
// keep their lower-cased text as the key.
func classify(header string) column {
	h := strings.ToLower(strings.TrimSpace(header))
	switch {
	case h == "player" || h == "athlete" || strings.Contains(h, "name"):
		return column{role: roleName}
	case h == "team" || h == "school":
		return column{role: roleTeam}
	}
	if key, ok := statHeaders[h]; ok {
		return column{role: roleStat, key: key}
	}
	return column{role: roleStat, key: h}
}

// mapColumns classifies a header row. The first name and team columns win.
func mapColumns(headers []string) (cols []column, nameIdx, teamIdx int) {
	nameIdx, teamIdx = -1, -1
	cols = make([]column, len(headers))
	for i, h := range headers {
		c := classify(h)
		switch c.role {
		case roleName:
			if nameIdx >= 0 {
				c = column{role: roleStat, key: strings.ToLower(strings.TrimSpace(h))}
			} else {
				nameIdx = i
			}
		case roleTeam:
			if teamIdx >= 0 {
				c = column{role: roleStat, key: strings.ToLower(strings.TrimSpace(h))}
			} else {
				teamIdx = i
			}
		}
		cols[i] = c
	}
	return cols, nameIdx, teamIdx
}

// isPlayerHeader reports whether headers describe a player stat table.
func isPlayerHeader(headers []string) bool {
	joined := strings.ToLower(strings.Join(headers, " "))
	if !strings.Contains(joined, "player") && !strings.Contains(joined, "name") {
		return false
	}
	for _, marker := range []string{"pts", "points", "reb", "ast"} {
		if strings.Contains(joined, marker) {
			return true
		}
	}
	return false
}

// playerFromCells builds a player from a data row. Non-numeric stat cells
// are skipped.
func playerFromCells(cells []string, cols []column, nameIdx, teamIdx int) (Player, bool) {
	if nameIdx < 0 || nameIdx >= len(cells) {
		return Player{}, false
	}
	p := Player{
		Name:  strings.TrimSpace(cells[nameIdx]),
		Stats: map[string]float64{},
	}
	if p.Name == "" {
		return Player{}, false
	}
	if teamIdx >= 0 && teamIdx < len(cells) {
		p.Team = strings.TrimSpace(cells[teamIdx])
	}
	for i, c := range cols {
		if c.role != roleStat || c.key == "" || i >= len(cells) {
			continue
		}
		if v, ok := parseStat(cells[i]); ok {
			p.Stats[c.key] = v
		}
	}
	return p, true
}

func parseStat(cell string) (float64, bool) {
	s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(cell), "%"))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
