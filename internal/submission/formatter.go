package submission

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fortuna/prepstats/internal/boxscore"
)

// SchoolLookup resolves a free-text team name to a school id.
type SchoolLookup interface {
	FindIDByName(ctx context.Context, name string) (string, error)
}

var sportNames = map[string]string{
	"basketball":      "basketball",
	"bball":           "basketball",
	"hoops":           "basketball",
	"volleyball":      "volleyball",
	"vball":           "volleyball",
	"football":        "football",
	"soccer":          "soccer",
	"baseball":        "baseball",
	"softball":        "softball",
	"track":           "track",
	"track and field": "track",
	"cross country":   "cross country",
	"xc":              "cross country",
	"wrestling":       "wrestling",
	"swimming":        "swimming",
	"swim":            "swimming",
}

// schoolIDs maps name fragments to school ids, checked in order.
var schoolIDs = []struct {
	fragment string
	id       string
}{
	{"msd", "msd"},
	{"maryland", "msd"},
	{"mssd", "mssd"},
	{"model", "mssd"},
	{"isd", "isd"},
	{"indiana", "isd"},
	{"tsd", "tsd"},
	{"texas", "tsd"},
	{"csdf", "csd-fremont"},
	{"csdr", "csd-riverside"},
	{"california fremont", "csd-fremont"},
	{"california riverside", "csd-riverside"},
}

// NormalizeSport maps common sport spellings to their stored name. An empty
// sport defaults to basketball.
func NormalizeSport(sport string) string {
	s := strings.ToLower(strings.TrimSpace(sport))
	if s == "" {
		return "basketball"
	}
	if name, ok := sportNames[s]; ok {
		return name
	}
	return s
}

// KnownSchoolID matches a team name against the built-in school fragments.
func KnownSchoolID(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return ""
	}
	for _, s := range schoolIDs {
		if strings.Contains(n, s.fragment) {
			return s.id
		}
	}
	return ""
}

// Formatter shapes parsed box scores for storage.
type Formatter struct {
	schools SchoolLookup
	now     func() time.Time
}

// NewFormatter creates a formatter. schools may be nil, in which case only
// the built-in fragments resolve school ids.
func NewFormatter(schools SchoolLookup) *Formatter {
	return &Formatter{schools: schools, now: time.Now}
}

// SetClock replaces the time source used for default dates and parsed_at.
func (f *Formatter) SetClock(now func() time.Time) {
	f.now = now
}

// NormalizeDate renders a game date as YYYY-MM-DD, falling back to today.
func (f *Formatter) NormalizeDate(date string) string {
	if t, ok := boxscore.ParseDate(date); ok {
		return t.Format(boxscore.DateLayout)
	}
	return f.now().UTC().Format(boxscore.DateLayout)
}

// SchoolID resolves a team name, trying the built-in fragments before the
// schools table. Unknown teams resolve to "".
func (f *Formatter) SchoolID(ctx context.Context, name string) (string, error) {
	if id := KnownSchoolID(name); id != "" {
		return id, nil
	}
	if f.schools == nil || strings.TrimSpace(name) == "" {
		return "", nil
	}
	id, err := f.schools.FindIDByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return "", fmt.Errorf("resolving school %q: %w", name, err)
	}
	return id, nil
}

// Format converts a parse result into the stored submission shape.
func (f *Formatter) Format(ctx context.Context, res *boxscore.Result, req Request) (*Formatted, error) {
	g := res.Game

	homeID, err := f.SchoolID(ctx, g.HomeTeam)
	if err != nil {
		return nil, err
	}
	awayID, err := f.SchoolID(ctx, g.AwayTeam)
	if err != nil {
		return nil, err
	}

	date := f.NormalizeDate(g.Date)
	sport := NormalizeSport(g.Sport)
	gender := g.Gender
	if gender == "" {
		gender = req.Gender
	}
	if gender == "" {
		gender = "boys"
	}

	source := res.Source
	if source == "" {
		source = req.Source
	}

	return &Formatted{
		GameDate:   date,
		Sport:      sport,
		Gender:     gender,
		HomeTeamID: homeID,
		AwayTeamID: awayID,
		HomeScore:  g.HomeScore,
		AwayScore:  g.AwayScore,
		Location:   g.Location,
		GameData: GameData{
			Version:  GameDataVersion,
			ParsedAt: f.now().UTC().Format(time.RFC3339),
			Source:   source,
			Game: GameInfo{
				Date:     date,
				Sport:    sport,
				Gender:   gender,
				Location: g.Location,
				HomeTeam: TeamRef{ID: homeID, Name: g.HomeTeam, Score: g.HomeScore},
				AwayTeam: TeamRef{ID: awayID, Name: g.AwayTeam, Score: g.AwayScore},
			},
			Players: formatPlayers(res.Players, homeID),
		},
		Method:            methodFor(source),
		SubmittedBy:       req.SubmittedBy,
		SubmitterSchoolID: req.SubmitterSchoolID,
		Confidence:        res.Confidence,
	}, nil
}

// formatPlayers attributes players without a recognizable team to the home
// school.
func formatPlayers(players []boxscore.Player, homeID string) []PlayerLine {
	lines := make([]PlayerLine, 0, len(players))
	for _, p := range players {
		schoolID := homeID
		if p.Team != "" {
			schoolID = KnownSchoolID(p.Team)
		}
		stats := p.Stats
		if stats == nil {
			stats = map[string]float64{}
		}
		lines = append(lines, PlayerLine{
			Name:       p.Name,
			SchoolID:   schoolID,
			SchoolName: p.Team,
			Stats:      stats,
		})
	}
	return lines
}
