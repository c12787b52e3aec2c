package stats

import (
	"math"
	"strconv"
)

// ValueFor returns the numeric value of a column for one season row,
// applying per-game back-computation and the derived-stat overrides.
func ValueFor(row StatRow, column ColumnDefinition, sport SportType) float64 {
	value := column.Value(row, sport)
	if value == 0 && column.DerivedRateField != "" {
		gp := GamesPlayed(row, sport)
		rate := ResolveFor(row, sport, column.DerivedRateField)
		if gp > 0 && rate > 0 {
			value = gp * rate
		}
	}

	if value == 0 {
		switch {
		case sport == Basketball && column.Key == "pts":
			value = GamesPlayed(row, sport) * ResolveFor(row, sport, "PPG")
		case sport == Football && column.Key == "recypg":
			yds := ResolveFor(row, sport, "Rec YDS")
			gp := GamesPlayed(row, sport)
			if yds > 0 && gp > 0 {
				value = yds / gp
			}
		}
	}

	if column.IsAverage() {
		return BattingAverage(ResolveFor(row, sport, "H"), ResolveFor(row, sport, "AB"))
	}
	return value
}

// BattingAverage is hits over at-bats rounded to three decimals, or 0 when
// there are no at-bats.
func BattingAverage(hits, atBats float64) float64 {
	if atBats <= 0 {
		return 0
	}
	return roundTo(hits/atBats, 3)
}

// FormatValue renders a calculated value for display: per-game columns with
// one decimal, averages with three, everything else with up to two.
func FormatValue(column ColumnDefinition, value float64) string {
	switch {
	case column.IsAverage():
		return strconv.FormatFloat(value, 'f', 3, 64)
	case column.IsPerGame():
		return strconv.FormatFloat(value, 'f', 1, 64)
	default:
		return strconv.FormatFloat(roundTo(value, 2), 'f', -1, 64)
	}
}

// SeasonCell renders one season-view cell. The stored text is kept when it
// agrees numerically with the calculated value.
func SeasonCell(row StatRow, column ColumnDefinition, sport SportType) string {
	value := ValueFor(row, column, sport)
	raw := column.Text(row, sport)
	if raw != "" && approxEqual(ParseNumber(raw), value) {
		if _, err := strconv.ParseFloat(stripNumber(raw), 64); err == nil {
			return raw
		}
	}
	return FormatValue(column, value)
}

func stripNumber(raw string) string {
	s := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] == ',' || raw[i] == '%' || raw[i] == ' ' {
			continue
		}
		s = append(s, raw[i])
	}
	return string(s)
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
