package stats

import (
	"sort"
	"strconv"
	"strings"
)

// Options holds the tunable thresholds of the aggregation pipeline.
type Options struct {
	// StandardSeasons is the season cap of the standard career view and the
	// count above which an extended career row is starred.
	StandardSeasons int
	// HighGPThreshold flags career rows whose total GP exceeds it.
	HighGPThreshold float64
	DefaultPageSize int
}

// DefaultOptions returns the thresholds used by the portal.
func DefaultOptions() Options {
	return Options{
		StandardSeasons: 4,
		HighGPThreshold: 140,
		DefaultPageSize: 25,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.StandardSeasons <= 0 {
		o.StandardSeasons = d.StandardSeasons
	}
	if o.HighGPThreshold <= 0 {
		o.HighGPThreshold = d.HighGPThreshold
	}
	if !validPageSize(o.DefaultPageSize) {
		o.DefaultPageSize = d.DefaultPageSize
	}
	return o
}

// CareerAggregate is one player's multi-season rollup.
type CareerAggregate struct {
	Name          string    `json:"name"`
	School        string    `json:"school"`
	Sport         string    `json:"sport"`
	SportType     SportType `json:"sport_type"`
	SeasonDisplay string    `json:"season_display"`
	Seasons       []string  `json:"seasons"`

	// SeasonCount is the player's true number of distinct seasons, before
	// any cap is applied.
	SeasonCount int `json:"season_count"`

	// Totals holds summed counting stats keyed by column key. Per-game
	// columns hold season-weighted sums (value x GP).
	Totals  map[string]float64 `json:"totals"`
	TotalGP float64            `json:"total_gp"`

	Values map[string]float64 `json:"values"`
	Cells  map[string]string  `json:"cells"`

	Extended bool `json:"extended"`
	HighGP   bool `json:"high_gp"`
}

// ratioStat recomputes a rate column from summed components.
type ratioStat struct {
	decimals int
	compute  func(sum func(field string) float64) (float64, bool)
}

func quotient(num, den string, scale float64) func(func(string) float64) (float64, bool) {
	return func(sum func(string) float64) (float64, bool) {
		d := sum(den)
		if d <= 0 {
			return 0, false
		}
		return scale * sum(num) / d, true
	}
}

// ratioStats are the rate columns whose career cells are recomputed from
// summed components rather than summed themselves.
var ratioStats = map[string]ratioStat{
	"fgpct":  {decimals: 1, compute: quotient("FGM", "FGA", 100)},
	"tppct":  {decimals: 1, compute: quotient("3PM", "3PA", 100)},
	"ftpct":  {decimals: 1, compute: quotient("FTM", "FTA", 100)},
	"cmppct": {decimals: 1, compute: quotient("CMP", "Pass ATT", 100)},
	"ypc":    {decimals: 1, compute: quotient("Rush YDS", "CAR", 1)},
	"ypr":    {decimals: 1, compute: quotient("Rec YDS", "REC", 1)},
	"era":    {decimals: 2, compute: quotient("ER", "IP", 7)},
	"whip": {decimals: 2, compute: func(sum func(string) float64) (float64, bool) {
		ip := sum("IP")
		if ip <= 0 {
			return 0, false
		}
		return (sum("P BB") + sum("P H")) / ip, true
	}},
	"obp": {decimals: 3, compute: func(sum func(string) float64) (float64, bool) {
		den := sum("AB") + sum("BB")
		if den <= 0 {
			return 0, false
		}
		return (sum("H") + sum("BB")) / den, true
	}},
	"hitpct": {decimals: 3, compute: func(sum func(string) float64) (float64, bool) {
		ta := sum("TA")
		if ta <= 0 {
			return 0, false
		}
		return (sum("Kills") - sum("ERR")) / ta, true
	}},
	"svpct": {decimals: 3, compute: func(sum func(string) float64) (float64, bool) {
		faced := sum("Saves") + sum("GA")
		if faced <= 0 {
			return 0, false
		}
		return sum("Saves") / faced, true
	}},
}

type careerGroup struct {
	name, school, sport string
	seasons             map[string]ConsolidatedRecord
}

// AggregateCareers folds consolidated season rows into one row per
// (name, school, sport). maxSeasons <= 0 aggregates every season; otherwise
// only the last maxSeasons seasons are summed, recomputed from their own rows.
func AggregateCareers(records []ConsolidatedRecord, maxSeasons int, opts Options) []CareerAggregate {
	opts = opts.withDefaults()

	index := make(map[string]int)
	var groups []*careerGroup
	for _, rec := range records {
		key := rec.Name + "|" + rec.School + "|" + rec.Sport
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, &careerGroup{
				name:    rec.Name,
				school:  rec.School,
				sport:   rec.Sport,
				seasons: make(map[string]ConsolidatedRecord),
			})
		}
		g := groups[i]
		if existing, dup := g.seasons[rec.Season]; dup {
			merged := Consolidate([]RawStatRow{existing.AsRaw(), rec.AsRaw()})
			g.seasons[rec.Season] = merged[0]
			continue
		}
		g.seasons[rec.Season] = rec
	}

	out := make([]CareerAggregate, 0, len(groups))
	for _, g := range groups {
		out = append(out, aggregateGroup(g, maxSeasons, opts))
	}
	return out
}

func aggregateGroup(g *careerGroup, maxSeasons int, opts Options) CareerAggregate {
	labels := make([]string, 0, len(g.seasons))
	for s := range g.seasons {
		labels = append(labels, s)
	}
	sort.Strings(labels)

	trueCount := len(labels)
	if maxSeasons > 0 && len(labels) > maxSeasons {
		labels = labels[len(labels)-maxSeasons:]
	}

	sport := DetectSportType(g.sport)
	rows := make([]StatRow, len(labels))
	for i, label := range labels {
		rows[i] = g.seasons[label].Stats
	}

	agg := CareerAggregate{
		Name:          g.name,
		School:        Abbreviate(g.school),
		Sport:         g.sport,
		SportType:     sport,
		SeasonDisplay: seasonRange(labels),
		Seasons:       labels,
		SeasonCount:   trueCount,
		Totals:        make(map[string]float64),
		Values:        make(map[string]float64),
		Cells:         make(map[string]string),
	}

	for _, row := range rows {
		agg.TotalGP += GamesPlayed(row, sport)
	}

	sumField := func(field string) float64 {
		var total float64
		for _, row := range rows {
			total += fieldValue(row, sport, field)
		}
		return total
	}

	for _, column := range AllColumns(sport) {
		if column.Key == gpColumn.Key {
			continue
		}

		var sum, stored float64
		for _, row := range rows {
			v := ValueFor(row, column, sport)
			switch {
			case column.IsPerGame():
				sum += v * GamesPlayed(row, sport)
			default:
				sum += v
			}
			stored += column.Value(row, sport)
		}
		agg.Totals[column.Key] = sum

		switch {
		case column.IsPerGame():
			value := 0.0
			if agg.TotalGP > 0 {
				value = sum / agg.TotalGP
			}
			setCell(&agg, column.Key, value, 1)

		case column.IsAverage():
			hits, atBats := sumField("H"), sumField("AB")
			value := 0.0
			if atBats > 0 {
				value = hits / atBats
			} else if len(rows) > 0 {
				value = stored / float64(len(rows))
			}
			setCell(&agg, column.Key, value, 3)

		default:
			if ratio, ok := ratioStats[column.Key]; ok {
				value, computed := ratio.compute(sumField)
				if !computed && len(rows) > 0 {
					value = sum / float64(len(rows))
				}
				setCell(&agg, column.Key, value, ratio.decimals)
				continue
			}
			setCell(&agg, column.Key, sum, 0)
		}
	}
	setCell(&agg, gpColumn.Key, agg.TotalGP, 0)

	if maxSeasons <= 0 && trueCount > opts.StandardSeasons {
		agg.Name += "*"
		agg.Extended = true
	}
	agg.HighGP = agg.TotalGP > opts.HighGPThreshold
	return agg
}

func setCell(agg *CareerAggregate, key string, value float64, decimals int) {
	value = roundTo(value, decimals)
	agg.Values[key] = value
	agg.Cells[key] = strconv.FormatFloat(value, 'f', decimals, 64)
}

// seasonRange renders "2021" for one season and "2019-2023" for a span.
func seasonRange(seasons []string) string {
	if len(seasons) == 0 {
		return ""
	}
	first := strings.TrimSpace(strings.Split(seasons[0], "-")[0])
	if len(seasons) == 1 {
		return first
	}
	parts := strings.Split(seasons[len(seasons)-1], "-")
	last := strings.TrimSpace(parts[len(parts)-1])
	return first + "-" + last
}
