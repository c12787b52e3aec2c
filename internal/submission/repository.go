package submission

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fortuna/prepstats/internal/store"
)

const submissionColumns = `id, game_date, sport, gender, home_team_id, away_team_id,
	home_score, away_score, location, game_data, submission_method, original_data,
	submitted_by, submitter_school_id, confidence, status, reviewed_by, review_notes,
	reviewed_at, created_at, updated_at`

// Repository handles persistence for game submissions.
type Repository struct {
	db *store.Database
}

// NewRepository constructs a Repository.
func NewRepository(db *store.Database) *Repository {
	return &Repository{db: db}
}

// Create inserts a submission and returns the stored record.
func (r *Repository) Create(ctx context.Context, sub *store.GameSubmission) (*store.GameSubmission, error) {
	query := `
		INSERT INTO game_submissions (
			game_date, sport, gender, home_team_id, away_team_id, home_score, away_score,
			location, game_data, submission_method, original_data, submitted_by,
			submitter_school_id, confidence, status
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		RETURNING ` + submissionColumns

	row := r.db.DB().QueryRowContext(ctx, query,
		sub.GameDate, sub.Sport, sub.Gender, sub.HomeTeamID, sub.AwayTeamID, sub.HomeScore, sub.AwayScore,
		sub.Location, []byte(sub.GameData), sub.SubmissionMethod, sub.OriginalData, sub.SubmittedBy,
		sub.SubmitterSchoolID, sub.Confidence, sub.Status,
	)

	stored, err := scanSubmission(row)
	if err != nil {
		return nil, fmt.Errorf("insert submission: %w", err)
	}
	return stored, nil
}

// Get returns one submission by id.
func (r *Repository) Get(ctx context.Context, id int64) (*store.GameSubmission, error) {
	row := r.db.DB().QueryRowContext(ctx, `SELECT `+submissionColumns+` FROM game_submissions WHERE id = $1`, id)
	sub, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get submission: %w", err)
	}
	return sub, nil
}

// List returns the newest submissions, optionally filtered by status.
func (r *Repository) List(ctx context.Context, status Status, limit int) ([]*store.GameSubmission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM game_submissions
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.db.DB().QueryContext(ctx, query, string(status), limit)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var subs []*store.GameSubmission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		subs = append(subs, sub)
	}

	return subs, rows.Err()
}

// Review records a review decision.
func (r *Repository) Review(ctx context.Context, id int64, review ReviewRequest) (*store.GameSubmission, error) {
	query := `
		UPDATE game_submissions
		SET status = $2,
			reviewed_by = NULLIF($3, ''),
			review_notes = NULLIF($4, ''),
			reviewed_at = NOW(),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + submissionColumns

	row := r.db.DB().QueryRowContext(ctx, query, id, string(review.Status), review.ReviewedBy, review.Notes)
	sub, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("review submission: %w", err)
	}
	return sub, nil
}

func scanSubmission(scanner interface {
	Scan(dest ...interface{}) error
}) (*store.GameSubmission, error) {
	sub := &store.GameSubmission{}
	var gameData []byte
	err := scanner.Scan(
		&sub.ID,
		&sub.GameDate,
		&sub.Sport,
		&sub.Gender,
		&sub.HomeTeamID,
		&sub.AwayTeamID,
		&sub.HomeScore,
		&sub.AwayScore,
		&sub.Location,
		&gameData,
		&sub.SubmissionMethod,
		&sub.OriginalData,
		&sub.SubmittedBy,
		&sub.SubmitterSchoolID,
		&sub.Confidence,
		&sub.Status,
		&sub.ReviewedBy,
		&sub.ReviewNotes,
		&sub.ReviewedAt,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	sub.GameData = gameData
	return sub, nil
}
