package stats

import "strings"

// SportType is one of the supported sports. Every sport has a fixed column table.
type SportType string

const (
	Basketball SportType = "basketball"
	Baseball   SportType = "baseball"
	Softball   SportType = "softball"
	Football   SportType = "football"
	Volleyball SportType = "volleyball"
	Soccer     SportType = "soccer"
)

// detectionOrder is the substring match order used by DetectSportType.
var detectionOrder = []SportType{Soccer, Basketball, Volleyball, Football, Baseball, Softball}

// DetectSportType maps free-form sport text such as "Boys Basketball" or
// "Football 11-Man" to a SportType. Unknown text falls back to Basketball.
func DetectSportType(text string) SportType {
	lower := strings.ToLower(text)
	for _, sport := range detectionOrder {
		if strings.Contains(lower, string(sport)) {
			return sport
		}
	}
	return Basketball
}

// SportTypes returns every supported sport in detection order.
func SportTypes() []SportType {
	out := make([]SportType, len(detectionOrder))
	copy(out, detectionOrder)
	return out
}

// Category selects a sub-table for sports that split their stats.
type Category string

const (
	CategoryNone      Category = ""
	CategoryBatting   Category = "batting"
	CategoryPitching  Category = "pitching"
	CategoryPassing   Category = "passing"
	CategoryRushing   Category = "rushing"
	CategoryReceiving Category = "receiving"
	CategoryDefense   Category = "defense"
)

// Categories lists the categories a sport supports, default first.
// Sports with a single table return nil.
func Categories(sport SportType) []Category {
	switch sport {
	case Baseball, Softball:
		return []Category{CategoryBatting, CategoryPitching}
	case Football:
		return []Category{CategoryRushing, CategoryPassing, CategoryReceiving, CategoryDefense}
	default:
		return nil
	}
}

// DefaultCategory is the category used when none or an unknown one is given.
func DefaultCategory(sport SportType) Category {
	cats := Categories(sport)
	if len(cats) == 0 {
		return CategoryNone
	}
	return cats[0]
}

// NormalizeCategory returns cat when the sport supports it, otherwise the
// sport's default category.
func NormalizeCategory(sport SportType, cat string) Category {
	want := Category(strings.ToLower(strings.TrimSpace(cat)))
	for _, c := range Categories(sport) {
		if c == want {
			return c
		}
	}
	return DefaultCategory(sport)
}
