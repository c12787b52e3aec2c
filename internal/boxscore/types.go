// Package boxscore turns pasted or uploaded box scores into structured game
// data. Parsing is best effort: a parser never fails, it reports what it
// found with a confidence score and lets the submitter correct the rest.
package boxscore

import (
	"fmt"
	"strings"
)

// Source identifies the parser that produced a result.
type Source string

const (
	SourceText Source = "text"
	SourceCSV  Source = "csv"
	SourceHTML Source = "html"
)

// Game holds the game-level facts of a box score.
type Game struct {
	HomeTeam  string `json:"home_team,omitempty"`
	AwayTeam  string `json:"away_team,omitempty"`
	HomeScore *int   `json:"home_score,omitempty"`
	AwayScore *int   `json:"away_score,omitempty"`
	Date      string `json:"date,omitempty"`
	Sport     string `json:"sport,omitempty"`
	Gender    string `json:"gender,omitempty"`
	Location  string `json:"location,omitempty"`
}

// Player is one player's line. Stat keys are lower-case names such as
// "points" or "rebounds".
type Player struct {
	Name  string             `json:"name"`
	Team  string             `json:"team,omitempty"`
	Stats map[string]float64 `json:"stats"`
}

// Result is the outcome of parsing one box score.
type Result struct {
	Source     Source   `json:"source"`
	Game       Game     `json:"game"`
	Players    []Player `json:"players"`
	Errors     []string `json:"errors,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
	Confidence int      `json:"confidence"`
}

// Validation lists what a result is missing before it can be submitted.
type Validation struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// Validate checks the fields a game submission needs.
func (r *Result) Validate() Validation {
	var errs []string

	if strings.TrimSpace(r.Game.HomeTeam) == "" {
		errs = append(errs, "Missing home team")
	}
	if strings.TrimSpace(r.Game.AwayTeam) == "" {
		errs = append(errs, "Missing away team")
	}
	if r.Game.HomeScore == nil {
		errs = append(errs, "Missing home score")
	}
	if r.Game.AwayScore == nil {
		errs = append(errs, "Missing away score")
	}
	if r.Game.Date == "" {
		errs = append(errs, "Missing game date")
	}
	if r.Game.Sport == "" {
		errs = append(errs, "Missing sport")
	}
	if len(r.Players) == 0 {
		errs = append(errs, "No player stats found")
	}
	for i, p := range r.Players {
		if strings.TrimSpace(p.Name) == "" {
			errs = append(errs, fmt.Sprintf("Player %d: missing name", i+1))
		}
	}

	return Validation{IsValid: len(errs) == 0, Errors: errs}
}

// Parse dispatches on source.
func Parse(source Source, content string) *Result {
	switch source {
	case SourceCSV:
		return ParseCSV(content)
	case SourceHTML:
		return ParseHTML(content)
	default:
		return ParseText(content)
	}
}

func intPtr(v int) *int {
	return &v
}
