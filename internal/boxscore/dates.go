package boxscore

import (
	"regexp"
	"strings"
	"time"
)

// DateLayout is the normalized game date format.
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"1-2-2006",
	time.RFC3339,
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4}`),
	regexp.MustCompile(`(?i)\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec)\.?\s+\d{1,2},?\s+\d{4}`),
	regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{4}\b`),
	regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
}

// ParseDate parses the date formats seen on box scores.
func ParseDate(s string) (time.Time, bool) {
	s = titleMonth(strings.TrimSpace(s))
	s = strings.Replace(s, ". ", " ", 1)
	s = strings.Replace(s, "Sept ", "Sep ", 1)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FindDate returns the first recognizable date in free text as YYYY-MM-DD.
func FindDate(text string) string {
	for _, p := range datePatterns {
		if m := p.FindString(text); m != "" {
			if t, ok := ParseDate(m); ok {
				return t.Format(DateLayout)
			}
		}
	}
	return ""
}

// titleMonth capitalizes a leading month name so "FEB 16, 2026" parses.
func titleMonth(s string) string {
	if s == "" || s[0] < 'A' || (s[0] > 'Z' && s[0] < 'a') || s[0] > 'z' {
		return s
	}
	end := strings.IndexAny(s, " .")
	if end < 0 {
		return s
	}
	word := strings.ToLower(s[:end])
	return strings.ToUpper(word[:1]) + word[1:] + s[end:]
}
