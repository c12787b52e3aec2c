package stats

import "strings"

// SchoolAbbreviations maps full school names to their display abbreviation.
var SchoolAbbreviations = map[string]string{
	"Alabama School for the Deaf":                  "ASD",
	"Arizona State Schools for the Deaf and Blind": "ASDB",
	"Arkansas School for the Deaf":                 "ASD-AR",
	"California School for the Deaf, Fremont":      "CSDF",
	"California School for the Deaf, Riverside":    "CSDR",
	"Colorado School for the Deaf and the Blind":   "CSDB",
	"Delaware School for the Deaf":                 "DSD",
	"Florida School for the Deaf and the Blind":    "FSDB",
	"Georgia School for the Deaf":                  "GSD",
	"Illinois School for the Deaf":                 "ISD-IL",
	"Indiana School for the Deaf":                  "ISD",
	"Iowa School for the Deaf":                     "ISD-IA",
	"Kansas School for the Deaf":                   "KSD",
	"Kentucky School for the Deaf":                 "KSD-KY",
	"Louisiana School for the Deaf":                "LSD",
	"Maryland School for the Deaf":                 "MSD",
	"Michigan School for the Deaf":                 "MSD-MI",
	"Minnesota State Academy for the Deaf":         "MSAD",
	"Missouri School for the Deaf":                 "MSD-MO",
	"Model Secondary School for the Deaf":          "MSSD",
	"New Mexico School for the Deaf":               "NMSD",
	"North Carolina School for the Deaf":           "NCSD",
	"Ohio School for the Deaf":                     "OSD",
	"Oklahoma School for the Deaf":                 "OSD-OK",
	"Oregon School for the Deaf":                   "OSD-OR",
	"Pennsylvania School for the Deaf":             "PSD",
	"Rochester School for the Deaf":                "RSD",
	"St. Mary's School for the Deaf":               "SMSD",
	"Tennessee School for the Deaf":                "TSD-TN",
	"Texas School for the Deaf":                    "TSD",
	"Virginia School for the Deaf and the Blind":   "VSDB",
	"Washington School for the Deaf":               "WSD",
	"West Virginia Schools for the Deaf and Blind": "WVSDB",
	"Wisconsin School for the Deaf":                "WSD-WI",
}

var normalizedAbbreviations = func() map[string]string {
	out := make(map[string]string, len(SchoolAbbreviations))
	for name, abbr := range SchoolAbbreviations {
		out[normalizeSchool(name)] = abbr
	}
	return out
}()

// schoolHeuristic matches a school whose name is spelled too many ways for
// the table, when every token appears in the lower-cased name.
type schoolHeuristic struct {
	tokens []string
	abbr   string
}

var schoolHeuristics = []schoolHeuristic{
	{tokens: []string{"california", "deaf", "riverside"}, abbr: "CSDR"},
	{tokens: []string{"california", "deaf", "fremont"}, abbr: "CSDF"},
	{tokens: []string{"model", "secondary", "deaf"}, abbr: "MSSD"},
	{tokens: []string{"maryland", "deaf"}, abbr: "MSD"},
	{tokens: []string{"texas", "deaf"}, abbr: "TSD"},
	{tokens: []string{"indiana", "deaf"}, abbr: "ISD"},
}

// Abbreviate returns the display abbreviation for a full school name:
// exact table match, then a punctuation-insensitive match, then a few
// token heuristics. Unknown names come back unchanged.
func Abbreviate(name string) string {
	if abbr, ok := SchoolAbbreviations[name]; ok {
		return abbr
	}
	if abbr, ok := normalizedAbbreviations[normalizeSchool(name)]; ok {
		return abbr
	}

	lower := strings.ToLower(name)
	for _, h := range schoolHeuristics {
		if containsAll(lower, h.tokens) {
			return h.abbr
		}
	}
	return name
}

func normalizeSchool(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func containsAll(s string, tokens []string) bool {
	for _, t := range tokens {
		if !strings.Contains(s, t) {
			return false
		}
	}
	return true
}
