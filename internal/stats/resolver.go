package stats

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode"
)

// StatRow is one submitted stat sheet row. Keys are free-form column headers,
// values are strings or numbers as they arrived from the store.
type StatRow map[string]any

// RawStatRow is one reported statistical record as fetched from the store.
// It is treated as immutable input.
type RawStatRow struct {
	AthleteName string  `json:"athlete_name"`
	School      string  `json:"school"`
	Sport       string  `json:"sport"`
	Season      string  `json:"season"`
	StatRow     StatRow `json:"stat_row"`
}

// FieldAliases maps a canonical field name to the alternate spellings seen
// in submitted sheets.
var FieldAliases = map[string][]string{
	"Athlete Name": {"Name", "Player", "Athlete", "Player Name"},
	"GP":           {"Games", "Games Played", "GMS"},

	// basketball
	"PTS":  {"Points", "TP", "Total Points"},
	"PPG":  {"Points Per Game", "PTS/G", "Pts Avg"},
	"REB":  {"Rebounds", "TRB", "Total Rebounds", "TOT"},
	"RPG":  {"Rebounds Per Game", "REB/G"},
	"AST":  {"Assists", "A"},
	"APG":  {"Assists Per Game", "AST/G"},
	"STL":  {"Steals", "ST"},
	"SPG":  {"Steals Per Game", "STL/G"},
	"BLK":  {"Blocks", "BS", "Blocked Shots"},
	"BPG":  {"Blocks Per Game", "BLK/G"},
	"FGM":  {"Field Goals Made", "FG Made"},
	"FGA":  {"Field Goals Attempted"},
	"FG%":  {"FG Pct", "Field Goal %", "FGP"},
	"3PM":  {"3PT", "Three Pointers", "3FGM"},
	"3PA":  {"3PTA", "3FGA", "Three Point Attempts"},
	"3P%":  {"3PT%", "3FG%", "Three Point %"},
	"FTM":  {"Free Throws", "Free Throws Made"},
	"FTA":  {"Free Throw Attempts"},
	"FT%":  {"FT Pct", "Free Throw %"},
	"OREB": {"OR", "Offensive Rebounds"},
	"DREB": {"DR", "Defensive Rebounds"},
	"TO":   {"TOV", "Turnovers"},
	"PF":   {"Fouls", "Personal Fouls"},

	// baseball / softball
	"AB":   {"At Bats", "At-Bats"},
	"H":    {"Hits"},
	"R":    {"Runs"},
	"RBI":  {"RBIs", "Runs Batted In"},
	"2B":   {"Doubles"},
	"3B":   {"Triples"},
	"HR":   {"Home Runs", "Homers"},
	"BB":   {"Walks", "Base On Balls"},
	"SO":   {"K", "Strikeouts"},
	"SB":   {"Stolen Bases"},
	"AVG":  {"BA", "Batting Average", "Bat Avg"},
	"OBP":  {"On Base %", "OB%"},
	"IP":   {"Innings Pitched", "Innings"},
	"W":    {"Wins"},
	"L":    {"Losses"},
	"SV":   {"Saves"},
	"ER":   {"Earned Runs"},
	"ERA":  {"Earned Run Average"},
	"WHIP": {"Walks Hits Per Inning"},
	"P K":  {"Pitching K", "Pitcher Strikeouts", "Pitching SO"},
	"P BB": {"Pitching BB", "Walks Allowed"},
	"P H":  {"Hits Allowed", "Pitching H"},

	// football
	"CMP":        {"Comp", "Completions", "C"},
	"Pass ATT":   {"Att", "Pass Attempts", "Passing Attempts"},
	"CMP%":       {"Comp %", "Completion %", "Pct"},
	"Pass YDS":   {"Passing Yards", "Pass Yards"},
	"Pass YDS/G": {"Passing Yards Per Game"},
	"Pass TD":    {"Passing TD", "Passing Touchdowns", "TD Passes"},
	"INT":        {"Interceptions Thrown", "Int Thrown"},
	"CAR":        {"Carries", "Rush ATT", "Rushing Attempts"},
	"Rush YDS":   {"Rushing Yards", "Rush Yards"},
	"Rush YDS/G": {"Rushing Yards Per Game"},
	"YPC":        {"Yards Per Carry", "AVG Carry"},
	"Rush TD":    {"Rushing TD", "Rushing Touchdowns"},
	"REC":        {"Receptions", "Catches"},
	"Rec YDS":    {"Receiving Yards", "Rec Yards"},
	"YPR":        {"Yards Per Reception", "Yards Per Catch"},
	"Rec TD":     {"Receiving TD", "Receiving Touchdowns"},
	"Rec YDS/G":  {"Receiving Yards Per Game"},
	"TKL":        {"Tackles", "Total Tackles", "TOT TKL"},
	"SOLO":       {"Solo Tackles"},
	"AST TKL":    {"Assisted Tackles"},
	"TFL":        {"Tackles For Loss"},
	"SACKS":      {"Sack", "SCK"},
	"Def INT":    {"Interceptions", "INTs"},
	"FF":         {"Forced Fumbles"},
	"FR":         {"Fumble Recoveries", "Fumbles Recovered"},

	// volleyball
	"SP":      {"Sets Played", "Sets"},
	"Kills":   {"KILL", "KLS"},
	"Kills/G": {"Kills Per Game"},
	"ERR":     {"Errors", "Attack Errors", "E"},
	"TA":      {"Total Attempts", "Attack Attempts"},
	"HIT%":    {"Hitting %", "Hit Pct", "Hitting Percentage"},
	"Aces":    {"SA", "Service Aces"},
	"Digs":    {"DIG", "D"},
	"Set AST": {"Set Assists", "AST", "Assists"},
	"Blocks":  {"Total Blocks", "TB"},

	// soccer
	"Goals":   {"GLS", "Goal"},
	"Soc AST": {"Soccer Assists", "AST", "Assists", "A"},
	"Shots":   {"SH", "Shot"},
	"SOG":     {"Shots On Goal"},
	"Saves":   {"Soccer Saves", "SVS"},
	"GA":      {"Goals Against"},
	"SV%":     {"Save %", "Save Pct"},
	"Soc PTS": {"Soccer Points"},
}

// sportAliases holds spellings that name a field in some sports only. Soccer
// sheets head goals with "G", so it is not a games-played alias there.
var sportAliases = map[string]map[SportType][]string{
	"GP": {
		Basketball: {"G"},
		Baseball:   {"G"},
		Softball:   {"G"},
		Football:   {"G"},
		Volleyball: {"G"},
	},
}

// NormalizeKey upper-cases a field name and strips everything that is not a
// letter or digit. Every component compares field names through it.
func NormalizeKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToUpper(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// AliasesFor returns the known alternate spellings for a canonical field.
func AliasesFor(field string) []string {
	return FieldAliases[field]
}

// AliasesForSport returns the alternate spellings of field that apply to
// sport: the package aliases followed by the sport's own.
func AliasesForSport(sport SportType, field string) []string {
	extra := sportAliases[field][sport]
	if len(extra) == 0 {
		return FieldAliases[field]
	}
	out := make([]string, 0, len(FieldAliases[field])+len(extra))
	out = append(out, FieldAliases[field]...)
	return append(out, extra...)
}

// ResolveRaw returns the first populated value found under field or any of
// its aliases, in that order. It returns "" when nothing is populated.
func ResolveRaw(row StatRow, field string, aliases []string) string {
	if len(row) == 0 {
		return ""
	}
	if v, ok := lookupNormalized(row, field); ok {
		return v
	}
	for _, alias := range aliases {
		if v, ok := lookupNormalized(row, alias); ok {
			return v
		}
	}
	return ""
}

// ResolveNumeric resolves field like ResolveRaw and parses it as a float after
// stripping thousands separators. Absent or unparseable values are 0.
func ResolveNumeric(row StatRow, field string, aliases []string) float64 {
	return ParseNumber(ResolveRaw(row, field, aliases))
}

// Resolve is ResolveNumeric with the package alias table.
func Resolve(row StatRow, field string) float64 {
	return ResolveNumeric(row, field, FieldAliases[field])
}

// ResolveFor is Resolve with the aliases that apply to sport.
func ResolveFor(row StatRow, sport SportType, field string) float64 {
	return ResolveNumeric(row, field, AliasesForSport(sport, field))
}

// GamesPlayed resolves the games-played count for a row of sport.
func GamesPlayed(row StatRow, sport SportType) float64 {
	return ResolveFor(row, sport, "GP")
}

// ResolveText is ResolveRaw with the package alias table.
func ResolveText(row StatRow, field string) string {
	return ResolveRaw(row, field, FieldAliases[field])
}

// ParseNumber parses a stat sheet number such as "1,234" or "12.5".
// Trailing percent signs are ignored.
func ParseNumber(raw string) float64 {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	s = strings.TrimSuffix(s, "%")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// lookupNormalized finds a populated value whose key normalizes to the same
// string as name. The exact spelling wins; otherwise the smallest original key.
func lookupNormalized(row StatRow, name string) (string, bool) {
	if v, ok := rawString(row[name]); ok {
		return v, true
	}

	want := NormalizeKey(name)
	if want == "" {
		return "", false
	}

	var (
		bestKey string
		bestVal string
		found   bool
	)
	for key, value := range row {
		if NormalizeKey(key) != want {
			continue
		}
		v, ok := rawString(value)
		if !ok {
			continue
		}
		if !found || key < bestKey {
			bestKey, bestVal, found = key, v, true
		}
	}
	return bestVal, found
}

// rawString renders a stored value as text and reports whether it is populated.
func rawString(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		s := strings.TrimSpace(val)
		return s, s != ""
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case json.Number:
		return val.String(), val.String() != ""
	case bool:
		return "", false
	default:
		return "", false
	}
}

// isPopulated reports whether a stored value counts as reported data.
func isPopulated(v any) bool {
	_, ok := rawString(v)
	return ok
}
