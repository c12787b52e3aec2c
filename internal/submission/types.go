package submission

import (
	"context"
	"errors"

	"github.com/fortuna/prepstats/internal/boxscore"
	"github.com/fortuna/prepstats/internal/store"
)

// Status represents the review state of a submission.
type Status string

const (
	StatusPending  Status = store.SubmissionPending
	StatusApproved Status = store.SubmissionApproved
	StatusRejected Status = store.SubmissionRejected
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Method records how a box score reached the portal.
type Method string

const (
	MethodTextPaste Method = "text_paste"
	MethodCSVUpload Method = "csv_upload"
	MethodHTMLPaste Method = "html_paste"
)

func methodFor(source boxscore.Source) Method {
	switch source {
	case boxscore.SourceCSV:
		return MethodCSVUpload
	case boxscore.SourceHTML:
		return MethodHTMLPaste
	default:
		return MethodTextPaste
	}
}

// GameDataVersion tags the game_data JSON layout.
const GameDataVersion = "1.0"

// LowConfidence is the parse confidence below which a submission is
// flagged for careful review.
const LowConfidence = 50

var (
	ErrEmptyContent  = errors.New("submission content is empty")
	ErrUnparseable   = errors.New("box score could not be parsed")
	ErrInvalidStatus = errors.New("review status must be approved or rejected")
	ErrNotFound      = errors.New("submission not found")
)

// Request is a box score as submitted by a school.
type Request struct {
	Content           string          `json:"content"`
	Source            boxscore.Source `json:"source"`
	Gender            string          `json:"gender,omitempty"`
	SubmittedBy       string          `json:"submitted_by,omitempty"`
	SubmitterSchoolID string          `json:"submitter_school_id,omitempty"`
}

// TeamRef names one side of a game.
type TeamRef struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Score *int   `json:"score,omitempty"`
}

// GameInfo is the game section of game_data.
type GameInfo struct {
	Date     string  `json:"date"`
	Sport    string  `json:"sport"`
	Gender   string  `json:"gender"`
	Location string  `json:"location,omitempty"`
	HomeTeam TeamRef `json:"home_team"`
	AwayTeam TeamRef `json:"away_team"`
}

// PlayerLine is one player's stats as stored in game_data.
type PlayerLine struct {
	Name       string             `json:"name"`
	SchoolID   string             `json:"school_id,omitempty"`
	SchoolName string             `json:"school_name,omitempty"`
	Stats      map[string]float64 `json:"stats"`
}

// GameData is the JSON document stored in game_submissions.game_data.
type GameData struct {
	Version  string          `json:"version"`
	ParsedAt string          `json:"parsed_at"`
	Source   boxscore.Source `json:"source"`
	Game     GameInfo        `json:"game"`
	Players  []PlayerLine    `json:"players"`
}

// Formatted is a parsed box score shaped for storage.
type Formatted struct {
	GameDate          string   `json:"game_date"`
	Sport             string   `json:"sport"`
	Gender            string   `json:"gender"`
	HomeTeamID        string   `json:"home_team_id,omitempty"`
	AwayTeamID        string   `json:"away_team_id,omitempty"`
	HomeScore         *int     `json:"home_score,omitempty"`
	AwayScore         *int     `json:"away_score,omitempty"`
	Location          string   `json:"location,omitempty"`
	GameData          GameData `json:"game_data"`
	Method            Method   `json:"submission_method"`
	SubmittedBy       string   `json:"submitted_by,omitempty"`
	SubmitterSchoolID string   `json:"submitter_school_id,omitempty"`
	Confidence        int      `json:"confidence"`
}

// Preview is what a submitter sees before committing a box score.
type Preview struct {
	Parsed     *boxscore.Result    `json:"parsed"`
	Validation boxscore.Validation `json:"validation"`
	Formatted  *Formatted          `json:"formatted"`
}

// ReviewRequest moves a pending submission to a final state.
type ReviewRequest struct {
	Status     Status `json:"status"`
	ReviewedBy string `json:"reviewed_by"`
	Notes      string `json:"notes,omitempty"`
}

// Event types published to notifiers.
const (
	EventCreated  = "submission.created"
	EventReviewed = "submission.reviewed"
)

// Event announces a stored or reviewed submission.
type Event struct {
	Type       string                `json:"type"`
	Submission *store.GameSubmission `json:"submission"`
}

// Notifier receives submission events.
type Notifier interface {
	NotifySubmission(ctx context.Context, event Event) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, event Event) error

// NotifySubmission calls f.
func (f NotifierFunc) NotifySubmission(ctx context.Context, event Event) error {
	return f(ctx, event)
}
