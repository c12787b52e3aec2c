package stats

import (
	"regexp"
	"sort"
	"strings"
)

var yearDesignator = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

// CleanName strips a trailing parenthetical class designator such as "(Fr)".
func CleanName(name string) string {
	for {
		cleaned := strings.TrimSpace(yearDesignator.ReplaceAllString(name, ""))
		if cleaned == name {
			return cleaned
		}
		name = cleaned
	}
}

// ConsolidatedRecord is one player's merged row for one season.
type ConsolidatedRecord struct {
	Name      string    `json:"name"`
	School    string    `json:"school"`
	Sport     string    `json:"sport"`
	Season    string    `json:"season"`
	SportType SportType `json:"sport_type"`
	Stats     StatRow   `json:"stats"`

	// Keys keeps the stat map's first-seen key order.
	Keys []string `json:"-"`

	// Submissions counts the raw rows merged into this record.
	Submissions int `json:"submissions"`
}

// Name returns the row's athlete, falling back to the stat map.
func (r RawStatRow) Name() string {
	if n := strings.TrimSpace(r.AthleteName); n != "" {
		return n
	}
	return ResolveText(r.StatRow, "Athlete Name")
}

// AsRaw converts a consolidated record back into raw input form.
func (c ConsolidatedRecord) AsRaw() RawStatRow {
	return RawStatRow{
		AthleteName: c.Name,
		School:      c.School,
		Sport:       c.Sport,
		Season:      c.Season,
		StatRow:     cloneStats(c.Stats),
	}
}

func consolidationKey(name, school, sport, season string) string {
	return name + "|" + school + "|" + sport + "|" + season
}

// Consolidate merges raw rows sharing (cleaned name, school, sport, season).
// The first row seeds the record; later rows overlay only their populated
// fields, so a partial submission never blanks earlier numbers. Output keeps
// first-seen order and never aliases input maps.
func Consolidate(rows []RawStatRow) []ConsolidatedRecord {
	index := make(map[string]int, len(rows))
	out := make([]ConsolidatedRecord, 0, len(rows))

	for _, row := range rows {
		name := CleanName(row.Name())
		key := consolidationKey(name, row.School, row.Sport, row.Season)

		i, ok := index[key]
		if !ok {
			rec := ConsolidatedRecord{
				Name:        name,
				School:      row.School,
				Sport:       row.Sport,
				Season:      row.Season,
				SportType:   DetectSportType(row.Sport),
				Stats:       make(StatRow, len(row.StatRow)),
				Submissions: 1,
			}
			for _, k := range sortedKeys(row.StatRow) {
				rec.Stats[k] = row.StatRow[k]
				rec.Keys = append(rec.Keys, k)
			}
			index[key] = len(out)
			out = append(out, rec)
			continue
		}

		rec := &out[i]
		rec.Submissions++
		overlay(rec, row.StatRow)
	}
	return out
}

// overlay copies populated values from src onto rec. A source key matches an
// existing key by normalized spelling; the existing spelling is kept.
func overlay(rec *ConsolidatedRecord, src StatRow) {
	byNorm := make(map[string]string, len(rec.Keys))
	for _, k := range rec.Keys {
		n := NormalizeKey(k)
		if _, seen := byNorm[n]; !seen {
			byNorm[n] = k
		}
	}

	for _, k := range sortedKeys(src) {
		v := src[k]
		if !isPopulated(v) {
			continue
		}
		if _, exists := rec.Stats[k]; exists {
			rec.Stats[k] = v
			continue
		}
		if existing, ok := byNorm[NormalizeKey(k)]; ok && NormalizeKey(k) != "" {
			rec.Stats[existing] = v
			continue
		}
		rec.Stats[k] = v
		rec.Keys = append(rec.Keys, k)
		byNorm[NormalizeKey(k)] = k
	}
}

func sortedKeys(row StatRow) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func cloneStats(src StatRow) StatRow {
	out := make(StatRow, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
