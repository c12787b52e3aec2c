package stats

import "strings"

// ColumnDefinition describes one displayable and sortable stat.
type ColumnDefinition struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Field string `json:"field"`

	// DerivedRateField names the per-game counterpart used to back-compute a
	// season total when the stored total is absent or zero.
	DerivedRateField string `json:"derived_rate_field,omitempty"`
}

// IsPerGame reports whether the column holds a per-game rate.
func (c ColumnDefinition) IsPerGame() bool {
	return strings.HasSuffix(c.Label, "/G") || strings.HasSuffix(c.Label, "PG")
}

// Aliases returns the spellings a sheet may use for the column in sport. The
// display label comes last, so "K" reads as kills in a volleyball table and
// as pitcher strikeouts in a pitching table. Labels shared by several columns
// of the sport, such as football's "YDS", are left out.
func (c ColumnDefinition) Aliases(sport SportType) []string {
	aliases := AliasesForSport(sport, c.Field)
	label := NormalizeKey(c.Label)
	if label == "" || label == NormalizeKey(c.Field) || sharedLabels[sport][label] {
		return aliases
	}
	for _, a := range aliases {
		if NormalizeKey(a) == label {
			return aliases
		}
	}
	out := make([]string, 0, len(aliases)+1)
	out = append(out, aliases...)
	return append(out, c.Label)
}

// Value resolves the column's stored number from row.
func (c ColumnDefinition) Value(row StatRow, sport SportType) float64 {
	return ResolveNumeric(row, c.Field, c.Aliases(sport))
}

// Text resolves the column's stored text from row.
func (c ColumnDefinition) Text(row StatRow, sport SportType) string {
	return ResolveRaw(row, c.Field, c.Aliases(sport))
}

// sharedLabels holds, per sport, the normalized labels carried by columns of
// different fields when no column stores under that name.
var sharedLabels = func() map[SportType]map[string]bool {
	out := make(map[SportType]map[string]bool)
	for _, sport := range SportTypes() {
		fields := make(map[string]map[string]bool)
		owned := make(map[string]bool)
		for _, c := range AllColumns(sport) {
			label := NormalizeKey(c.Label)
			if fields[label] == nil {
				fields[label] = make(map[string]bool)
			}
			fields[label][c.Field] = true
			owned[NormalizeKey(c.Field)] = true
		}
		shared := make(map[string]bool)
		for label, fs := range fields {
			if len(fs) > 1 && !owned[label] {
				shared[label] = true
			}
		}
		out[sport] = shared
	}
	return out
}()

// IsAverage reports whether the column is a batting average.
func (c ColumnDefinition) IsAverage() bool {
	return c.Key == "avg"
}

type columnTable struct {
	columns []ColumnDefinition
	core    []string
}

func col(key, label, field string) ColumnDefinition {
	return ColumnDefinition{Key: key, Label: label, Field: field}
}

func rateCol(key, label, field, rateField string) ColumnDefinition {
	return ColumnDefinition{Key: key, Label: label, Field: field, DerivedRateField: rateField}
}

var gpColumn = col("gp", "GP", "GP")

var basketballTable = columnTable{
	columns: []ColumnDefinition{
		gpColumn,
		col("pts", "PTS", "PTS"),
		col("ppg", "PPG", "PPG"),
		rateCol("reb", "REB", "REB", "RPG"),
		col("rpg", "RPG", "RPG"),
		rateCol("ast", "AST", "AST", "APG"),
		col("apg", "APG", "APG"),
		rateCol("stl", "STL", "STL", "SPG"),
		col("spg", "SPG", "SPG"),
		rateCol("blk", "BLK", "BLK", "BPG"),
		col("bpg", "BPG", "BPG"),
		col("fgm", "FGM", "FGM"),
		col("fga", "FGA", "FGA"),
		col("fgpct", "FG%", "FG%"),
		col("tpm", "3PM", "3PM"),
		col("tpa", "3PA", "3PA"),
		col("tppct", "3P%", "3P%"),
		col("ftm", "FTM", "FTM"),
		col("fta", "FTA", "FTA"),
		col("ftpct", "FT%", "FT%"),
		col("oreb", "OREB", "OREB"),
		col("dreb", "DREB", "DREB"),
		col("to", "TO", "TO"),
		col("pf", "PF", "PF"),
	},
	core: []string{"gp", "pts", "ppg", "reb", "ast", "stl", "blk"},
}

var battingTable = columnTable{
	columns: []ColumnDefinition{
		gpColumn,
		col("ab", "AB", "AB"),
		col("h", "H", "H"),
		col("r", "R", "R"),
		col("rbi", "RBI", "RBI"),
		col("doubles", "2B", "2B"),
		col("triples", "3B", "3B"),
		col("hr", "HR", "HR"),
		col("bb", "BB", "BB"),
		col("so", "SO", "SO"),
		col("sb", "SB", "SB"),
		col("avg", "AVG", "AVG"),
		col("obp", "OBP", "OBP"),
	},
	core: []string{"gp", "ab", "h", "r", "rbi", "hr", "avg"},
}

var pitchingTable = columnTable{
	columns: []ColumnDefinition{
		gpColumn,
		col("ip", "IP", "IP"),
		col("w", "W", "W"),
		col("l", "L", "L"),
		col("sv", "SV", "SV"),
		col("era", "ERA", "ERA"),
		col("whip", "WHIP", "WHIP"),
		col("pk", "K", "P K"),
		col("pbb", "BB", "P BB"),
		col("ph", "H", "P H"),
		col("er", "ER", "ER"),
	},
	core: []string{"gp", "ip", "w", "l", "era", "pk"},
}

var passingTable = columnTable{
	columns: []ColumnDefinition{
		gpColumn,
		col("cmp", "CMP", "CMP"),
		col("passatt", "ATT", "Pass ATT"),
		col("cmppct", "CMP%", "CMP%"),
		col("passyds", "YDS", "Pass YDS"),
		col("passypg", "YDS/G", "Pass YDS/G"),
		col("passtd", "TD", "Pass TD"),
		col("int", "INT", "INT"),
	},
	core: []string{"gp", "cmp", "passatt", "passyds", "passtd", "int"},
}

var rushingTable = columnTable{
	columns: []ColumnDefinition{
		gpColumn,
		col("car", "CAR", "CAR"),
		col("rushyds", "YDS", "Rush YDS"),
		col("rushypg", "YDS/G", "Rush YDS/G"),
		col("ypc", "YPC", "YPC"),
		col("rushtd", "TD", "Rush TD"),
	},
	core: []string{"gp", "car", "rushyds", "rushtd"},
}

var receivingTable = columnTable{
	columns: []ColumnDefinition{
		gpColumn,
		col("rec", "REC", "REC"),
		col("recyds", "YDS", "Rec YDS"),
		col("recypg", "YDS/G", "Rec YDS/G"),
		col("ypr", "YPR", "YPR"),
		col("rectd", "TD", "Rec TD"),
	},
	core: []string{"gp", "rec", "recyds", "recypg", "rectd"},
}

var defenseTable = columnTable{
	columns: []ColumnDefinition{
		gpColumn,
		col("tackles", "TKL", "TKL"),
		col("solo", "SOLO", "SOLO"),
		col("asttkl", "AST", "AST TKL"),
		col("tfl", "TFL", "TFL"),
		col("sacks", "SACKS", "SACKS"),
		col("defint", "INT", "Def INT"),
		col("ff", "FF", "FF"),
		col("fr", "FR", "FR"),
	},
	core: []string{"gp", "tackles", "tfl", "sacks", "defint"},
}

var volleyballTable = columnTable{
	columns: []ColumnDefinition{
		gpColumn,
		col("sp", "SP", "SP"),
		col("kills", "K", "Kills"),
		col("killspg", "K/G", "Kills/G"),
		col("err", "E", "ERR"),
		col("ta", "TA", "TA"),
		col("hitpct", "HIT%", "HIT%"),
		col("aces", "ACE", "Aces"),
		col("digs", "DIG", "Digs"),
		col("setast", "AST", "Set AST"),
		col("blocks", "BLK", "Blocks"),
	},
	core: []string{"gp", "kills", "aces", "digs", "setast", "blocks"},
}

var soccerTable = columnTable{
	columns: []ColumnDefinition{
		gpColumn,
		col("goals", "G", "Goals"),
		col("socast", "A", "Soc AST"),
		col("socpts", "PTS", "Soc PTS"),
		col("shots", "SH", "Shots"),
		col("sog", "SOG", "SOG"),
		col("saves", "SV", "Saves"),
		col("ga", "GA", "GA"),
		col("svpct", "SV%", "SV%"),
	},
	core: []string{"gp", "goals", "socast", "socpts", "shots", "saves"},
}

func tableFor(sport SportType, category Category) columnTable {
	switch sport {
	case Baseball, Softball:
		if category == CategoryPitching {
			return pitchingTable
		}
		return battingTable
	case Football:
		switch category {
		case CategoryPassing:
			return passingTable
		case CategoryReceiving:
			return receivingTable
		case CategoryDefense:
			return defenseTable
		default:
			return rushingTable
		}
	case Volleyball:
		return volleyballTable
	case Soccer:
		return soccerTable
	default:
		return basketballTable
	}
}

// ColumnsFor returns the full ordered column set for a sport and category.
// Unknown categories fall back to the sport's default.
func ColumnsFor(sport SportType, category string) []ColumnDefinition {
	t := tableFor(sport, NormalizeCategory(sport, category))
	out := make([]ColumnDefinition, len(t.columns))
	copy(out, t.columns)
	return out
}

// ColumnsForText is ColumnsFor with free-form sport text.
func ColumnsForText(sportText, category string) []ColumnDefinition {
	return ColumnsFor(DetectSportType(sportText), category)
}

// DisplayColumnsFor returns the core columns of the table, followed by the
// advanced ones when showAdvanced is set. Both groups keep table order.
func DisplayColumnsFor(sportText, category string, showAdvanced bool) []ColumnDefinition {
	sport := DetectSportType(sportText)
	t := tableFor(sport, NormalizeCategory(sport, category))

	isCore := make(map[string]bool, len(t.core))
	for _, key := range t.core {
		isCore[key] = true
	}

	out := make([]ColumnDefinition, 0, len(t.columns))
	for _, c := range t.columns {
		if isCore[c.Key] {
			out = append(out, c)
		}
	}
	if !showAdvanced {
		return out
	}
	for _, c := range t.columns {
		if !isCore[c.Key] {
			out = append(out, c)
		}
	}
	return out
}

// AllColumns returns the union of every category's columns for a sport,
// de-duplicated by key in first-seen order.
func AllColumns(sport SportType) []ColumnDefinition {
	cats := Categories(sport)
	if len(cats) == 0 {
		cats = []Category{CategoryNone}
	}

	seen := make(map[string]bool)
	var out []ColumnDefinition
	for _, cat := range cats {
		for _, c := range tableFor(sport, cat).columns {
			if seen[c.Key] {
				continue
			}
			seen[c.Key] = true
			out = append(out, c)
		}
	}
	return out
}

// ColumnFor looks a key up in the sport's table for category, then in the
// rest of the sport's columns.
func ColumnFor(sport SportType, category, key string) (ColumnDefinition, bool) {
	for _, c := range tableFor(sport, NormalizeCategory(sport, category)).columns {
		if c.Key == key {
			return c, true
		}
	}
	for _, c := range AllColumns(sport) {
		if c.Key == key {
			return c, true
		}
	}
	return ColumnDefinition{}, false
}

// fieldValue resolves a canonical field for sport through the sport's column
// for that field when there is one, so its label is honoured.
func fieldValue(row StatRow, sport SportType, field string) float64 {
	for _, c := range AllColumns(sport) {
		if c.Field == field {
			return c.Value(row, sport)
		}
	}
	return ResolveFor(row, sport, field)
}
