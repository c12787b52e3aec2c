package submission

import (
	"encoding/json"

	"github.com/fortuna/prepstats/internal/store"
)

// Payload renders a stored submission for API clients, dropping unset
// nullable columns.
func Payload(sub *store.GameSubmission) map[string]interface{} {
	if sub == nil {
		return nil
	}

	payload := map[string]interface{}{
		"id":                sub.ID,
		"game_date":         sub.GameDate.Format("2006-01-02"),
		"sport":             sub.Sport,
		"gender":            sub.Gender,
		"submission_method": sub.SubmissionMethod,
		"confidence":        sub.Confidence,
		"status":            sub.Status,
		"created_at":        sub.CreatedAt,
		"updated_at":        sub.UpdatedAt,
	}

	if len(sub.GameData) > 0 {
		payload["game_data"] = json.RawMessage(sub.GameData)
	}
	if sub.HomeTeamID.Valid {
		payload["home_team_id"] = sub.HomeTeamID.String
	}
	if sub.AwayTeamID.Valid {
		payload["away_team_id"] = sub.AwayTeamID.String
	}
	if sub.HomeScore.Valid {
		payload["home_score"] = sub.HomeScore.Int32
	}
	if sub.AwayScore.Valid {
		payload["away_score"] = sub.AwayScore.Int32
	}
	if sub.Location.Valid {
		payload["location"] = sub.Location.String
	}
	if sub.SubmittedBy.Valid {
		payload["submitted_by"] = sub.SubmittedBy.String
	}
	if sub.SubmitterSchoolID.Valid {
		payload["submitter_school_id"] = sub.SubmitterSchoolID.String
	}
	if sub.ReviewedBy.Valid {
		payload["reviewed_by"] = sub.ReviewedBy.String
	}
	if sub.ReviewNotes.Valid {
		payload["review_notes"] = sub.ReviewNotes.String
	}
	if sub.ReviewedAt.Valid {
		payload["reviewed_at"] = sub.ReviewedAt.Time
	}

	return payload
}

// MarshalJSON renders the event with the submission as a Payload.
func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"type":       e.Type,
		"submission": Payload(e.Submission),
	})
}
