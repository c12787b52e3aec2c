package boxscore

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CSVKind is the detected layout of an uploaded CSV.
type CSVKind string

const (
	CSVPlayerStats CSVKind = "player_stats"
	CSVGameSummary CSVKind = "game_summary"
	CSVUnknown     CSVKind = "unknown"
)

// Confidence points awarded by the CSV parser, per detected kind.
const (
	csvPlayerStatsPoints = 60
	csvGameSummaryPoints = 40
	csvUnknownPoints     = 30
)

// ReadCSV splits content into trimmed records. Quoted fields may contain
// commas; ragged rows are allowed.
func ReadCSV(content string) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(strings.TrimSpace(content)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rows, fmt.Errorf("reading csv: %w", err)
		}
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// DetectCSVKind classifies a CSV from its lower-cased header row.
func DetectCSVKind(headers []string) CSVKind {
	if isPlayerHeader(headers) {
		return CSVPlayerStats
	}
	joined := strings.ToLower(strings.Join(headers, " "))
	if strings.Contains(joined, "team") && strings.Contains(joined, "score") {
		return CSVGameSummary
	}
	return CSVUnknown
}

// ParseCSV parses an uploaded box score export.
func ParseCSV(content string) *Result {
	res := &Result{Source: SourceCSV, Players: []Player{}}

	rows, err := ReadCSV(content)
	if err != nil {
		res.Errors = append(res.Errors, err.Error())
		return res
	}
	if len(rows) < 2 {
		res.Errors = append(res.Errors, "CSV must have at least header and one data row")
		return res
	}

	headers := rows[0]
	switch DetectCSVKind(headers) {
	case CSVPlayerStats:
		res.Players = parsePlayerRows(headers, rows[1:])
		res.Confidence += csvPlayerStatsPoints
	case CSVGameSummary:
		res.Game = parseGameSummary(headers, rows[1])
		res.Confidence += csvGameSummaryPoints
	default:
		res.Players = parsePlayerRows(headers, rows[1:])
		res.Warnings = append(res.Warnings, "Used generic parser - please verify data")
		res.Confidence += csvUnknownPoints
	}
	return res
}

func parsePlayerRows(headers []string, rows [][]string) []Player {
	cols, nameIdx, teamIdx := mapColumns(headers)
	players := []Player{}
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		if p, ok := playerFromCells(row, cols, nameIdx, teamIdx); ok {
			players = append(players, p)
		}
	}
	return players
}

func parseGameSummary(headers []string, row []string) Game {
	var g Game
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	score := func(i int) *int {
		if n, err := strconv.Atoi(cell(i)); err == nil {
			return intPtr(n)
		}
		return nil
	}

	for i, header := range headers {
		h := strings.ToLower(header)
		switch {
		case strings.Contains(h, "date"):
			if t, ok := ParseDate(cell(i)); ok {
				g.Date = t.Format(DateLayout)
			}
		case strings.Contains(h, "home team"):
			g.HomeTeam = cell(i)
		case strings.Contains(h, "away team") || h == "opponent":
			g.AwayTeam = cell(i)
		case strings.Contains(h, "home score"):
			g.HomeScore = score(i)
		case strings.Contains(h, "away score") || strings.Contains(h, "opponent score"):
			g.AwayScore = score(i)
		case strings.Contains(h, "location") || strings.Contains(h, "venue"):
			g.Location = cell(i)
		case strings.Contains(h, "sport"):
			g.Sport = strings.ToLower(cell(i))
		}
	}
	return g
}

// ValidateCSV checks a CSV result for player rows with names and stats.
func ValidateCSV(r *Result) Validation {
	var errs []string
	if len(r.Players) == 0 {
		errs = append(errs, "No player data found in CSV")
	}
	for i, p := range r.Players {
		if p.Name == "" {
			errs = append(errs, fmt.Sprintf("Row %d: Missing player name", i+2))
		}
		if len(p.Stats) == 0 {
			errs = append(errs, fmt.Sprintf("Row %d: No stats found for %s", i+2, p.Name))
		}
	}
	return Validation{IsValid: len(errs) == 0, Errors: errs}
}
