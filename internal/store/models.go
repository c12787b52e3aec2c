package store

import (
	"database/sql"
	"encoding/json"
	"time"
)

// School is a member school of the records portal
type School struct {
	ID        string         `json:"id" db:"id"`
	FullName  string         `json:"full_name" db:"full_name"`
	ShortName sql.NullString `json:"short_name,omitempty" db:"short_name"`
	Division  sql.NullString `json:"division,omitempty" db:"division"`
	IsActive  bool           `json:"is_active" db:"is_active"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
}

// RawStatRecord is one stored season stat sheet row. StatRow holds the
// submitted columns verbatim, including "Athlete Name".
type RawStatRecord struct {
	ID        int64           `json:"id" db:"id"`
	School    string          `json:"school" db:"school"`
	Sport     string          `json:"sport" db:"sport"`
	Season    string          `json:"season" db:"season"`
	StatRow   json.RawMessage `json:"stat_row" db:"stat_row"`
	Source    sql.NullString  `json:"source,omitempty" db:"source"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// Submission review states
const (
	SubmissionPending  = "pending"
	SubmissionApproved = "approved"
	SubmissionRejected = "rejected"
)

// GameSubmission is a box score submitted by a school for review
type GameSubmission struct {
	ID                int64           `json:"id" db:"id"`
	GameDate          time.Time       `json:"game_date" db:"game_date"`
	Sport             string          `json:"sport" db:"sport"`
	Gender            string          `json:"gender" db:"gender"`
	HomeTeamID        sql.NullString  `json:"home_team_id,omitempty" db:"home_team_id"`
	AwayTeamID        sql.NullString  `json:"away_team_id,omitempty" db:"away_team_id"`
	HomeScore         sql.NullInt32   `json:"home_score,omitempty" db:"home_score"`
	AwayScore         sql.NullInt32   `json:"away_score,omitempty" db:"away_score"`
	Location          sql.NullString  `json:"location,omitempty" db:"location"`
	GameData          json.RawMessage `json:"game_data" db:"game_data"`
	SubmissionMethod  string          `json:"submission_method" db:"submission_method"`
	OriginalData      sql.NullString  `json:"original_data,omitempty" db:"original_data"`
	SubmittedBy       sql.NullString  `json:"submitted_by,omitempty" db:"submitted_by"`
	SubmitterSchoolID sql.NullString  `json:"submitter_school_id,omitempty" db:"submitter_school_id"`
	Confidence        int             `json:"confidence" db:"confidence"`
	Status            string          `json:"status" db:"status"`
	ReviewedBy        sql.NullString  `json:"reviewed_by,omitempty" db:"reviewed_by"`
	ReviewNotes       sql.NullString  `json:"review_notes,omitempty" db:"review_notes"`
	ReviewedAt        sql.NullTime    `json:"reviewed_at,omitempty" db:"reviewed_at"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" db:"updated_at"`
}
