package boxscore

import (
	"regexp"
	"strconv"
	"strings"
)

// Confidence points awarded by the text parser.
const (
	textTeamsPoints    = 30
	textDatePoints     = 10
	textSportPoints    = 10
	textLocationPoints = 5
	textPlayersPoints  = 45
)

var (
	finalScorePattern = regexp.MustCompile(`(?i)(?:Final|Score|Result):\s*([A-Za-z ,.']+?)\s+(\d+)\s*[-–]\s*([A-Za-z ,.']+?)\s+(\d+)`)
	pairScorePattern  = regexp.MustCompile(`([A-Za-z][A-Za-z ,.']*?)\s+(\d+)[, ]+([A-Za-z][A-Za-z ,.']*?)\s+(\d+)`)

	boysPattern  = regexp.MustCompile(`(?i)\b(boys|men|male)\b`)
	girlsPattern = regexp.MustCompile(`(?i)\b(girls|women|female)\b`)

	locationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:Location|Venue|Site):\s*([A-Za-z ,']+)`),
		regexp.MustCompile(`(?i)(?:\bat|@)\s+([A-Za-z ,']+(?:,\s*[A-Z]{2})?)`),
	}

	inlinePlayerPattern = regexp.MustCompile(`(?i)([A-Za-z .']+?)\s*:?\s*(\d+)\s+(?:pts?|points?)\s*,?\s*(\d+)\s+(?:rebs?|rebounds?)\s*,?\s*(?:(\d+)\s*(?:asts?|assists?))?`)

	whitespace = regexp.MustCompile(`\s+`)
)

// knownSports is checked in order against the lower-cased text.
var knownSports = []string{
	"basketball", "volleyball", "football", "soccer", "baseball",
	"softball", "track", "cross country", "wrestling", "swimming",
}

// ParseText parses a box score pasted from a stats site.
func ParseText(text string) *Result {
	res := &Result{Source: SourceText, Players: []Player{}}

	if home, hs, away, as, ok := extractTeamsAndScore(text); ok {
		res.Game.HomeTeam, res.Game.AwayTeam = home, away
		res.Game.HomeScore, res.Game.AwayScore = intPtr(hs), intPtr(as)
		res.Confidence += textTeamsPoints
	}

	if date := FindDate(text); date != "" {
		res.Game.Date = date
		res.Confidence += textDatePoints
	}

	if sport := extractSport(text); sport != "" {
		res.Game.Sport = sport
		res.Confidence += textSportPoints
	}
	res.Game.Gender = extractGender(text)

	if loc := extractLocation(text); loc != "" {
		res.Game.Location = loc
		res.Confidence += textLocationPoints
	}

	if players := extractPlayers(text); len(players) > 0 {
		res.Players = players
		res.Confidence += textPlayersPoints
	}

	return res
}

func extractTeamsAndScore(text string) (home string, homeScore int, away string, awayScore int, ok bool) {
	m := finalScorePattern.FindStringSubmatch(text)
	if m == nil {
		for _, line := range strings.Split(text, "\n") {
			if m = pairScorePattern.FindStringSubmatch(line); m != nil {
				break
			}
		}
	}
	if m == nil {
		return "", 0, "", 0, false
	}

	homeScore, err1 := strconv.Atoi(m[2])
	awayScore, err2 := strconv.Atoi(m[4])
	if err1 != nil || err2 != nil {
		return "", 0, "", 0, false
	}
	home = strings.Trim(strings.TrimSpace(m[1]), ",")
	away = strings.Trim(strings.TrimSpace(m[3]), ",")
	return home, homeScore, away, awayScore, true
}

func extractSport(text string) string {
	lower := strings.ToLower(text)
	for _, sport := range knownSports {
		if strings.Contains(lower, sport) {
			return sport
		}
	}
	return ""
}

func extractGender(text string) string {
	switch {
	case boysPattern.MatchString(text):
		return "boys"
	case girlsPattern.MatchString(text):
		return "girls"
	default:
		return ""
	}
}

func extractLocation(text string) string {
	for _, p := range locationPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			if loc := strings.TrimSpace(m[1]); loc != "" {
				return loc
			}
		}
	}
	return ""
}

// extractPlayers reads inline lines like "John Smith: 24 pts, 8 reb, 3 ast",
// falling back to a whitespace separated stat table.
func extractPlayers(text string) []Player {
	var players []Player
	for _, line := range strings.Split(text, "\n") {
		for _, m := range inlinePlayerPattern.FindAllStringSubmatch(line, -1) {
			name := strings.TrimSpace(m[1])
			if name == "" {
				continue
			}
			p := Player{Name: name, Stats: map[string]float64{}}
			p.Stats["points"], _ = strconv.ParseFloat(m[2], 64)
			p.Stats["rebounds"], _ = strconv.ParseFloat(m[3], 64)
			if m[4] != "" {
				p.Stats["assists"], _ = strconv.ParseFloat(m[4], 64)
			} else {
				p.Stats["assists"] = 0
			}
			players = append(players, p)
		}
	}
	if len(players) > 0 {
		return players
	}
	return parseStatsTable(strings.Split(text, "\n"))
}

// parseStatsTable reads a table such as
//
//	Player         PTS  REB  AST
//	John Smith     24   8    3
//
// Names may contain spaces; stat cells are taken from the right.
func parseStatsTable(lines []string) []Player {
	headerIdx := -1
	var headers []string
	for i, line := range lines {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "player") && (strings.Contains(lower, "pts") || strings.Contains(lower, "points")) {
			headerIdx = i
			headers = whitespace.Split(strings.TrimSpace(line), -1)
			break
		}
	}
	if headerIdx < 0 {
		return nil
	}

	cols, nameIdx, teamIdx := mapColumns(headers)
	if nameIdx < 0 {
		return nil
	}
	statCount := len(headers) - nameIdx - 1

	var players []Player
	for _, line := range lines[headerIdx+1:] {
		line = strings.TrimSpace(line)
		if len(line) < 5 {
			continue
		}
		parts := whitespace.Split(line, -1)
		if len(parts) < 3 || len(parts) <= statCount {
			continue
		}

		nameEnd := len(parts) - statCount
		cells := make([]string, 0, len(headers))
		cells = append(cells, parts[:nameIdx]...)
		cells = append(cells, strings.Join(parts[nameIdx:nameEnd], " "))
		cells = append(cells, parts[nameEnd:]...)

		p, ok := playerFromCells(cells, cols, nameIdx, teamIdx)
		if !ok || len(p.Name) <= 2 {
			continue
		}
		if _, ok := p.Stats["points"]; !ok {
			continue
		}
		players = append(players, p)
	}
	return players
}
