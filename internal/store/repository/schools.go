package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortuna/prepstats/internal/store"
)

// SchoolRepository handles school metadata access
type SchoolRepository struct {
	db *store.Database
}

// NewSchoolRepository creates a new school repository
func NewSchoolRepository(db *store.Database) *SchoolRepository {
	return &SchoolRepository{db: db}
}

// GetActive returns all active schools ordered by full name
func (r *SchoolRepository) GetActive(ctx context.Context) ([]*store.School, error) {
	query := `
		SELECT id, full_name, short_name, division, is_active, created_at
		FROM schools
		WHERE is_active = true
		ORDER BY full_name
	`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying schools: %w", err)
	}
	defer rows.Close()

	var schools []*store.School
	for rows.Next() {
		s := &store.School{}
		if err := rows.Scan(&s.ID, &s.FullName, &s.ShortName, &s.Division, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning school: %w", err)
		}
		schools = append(schools, s)
	}

	return schools, rows.Err()
}

// FullNameByID returns a school's full name. Unknown ids resolve to "".
func (r *SchoolRepository) FullNameByID(ctx context.Context, id string) (string, error) {
	var name string
	err := r.db.DB().QueryRowContext(ctx, `SELECT full_name FROM schools WHERE id = $1`, id).Scan(&name)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("querying school: %w", err)
	}
	return name, nil
}

// FullNamesByDivision lists the active schools of a division
func (r *SchoolRepository) FullNamesByDivision(ctx context.Context, division string) ([]string, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT full_name
		FROM schools
		WHERE division = $1 AND is_active = true
		ORDER BY full_name
	`, division)
	if err != nil {
		return nil, fmt.Errorf("querying division schools: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning school name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// FindIDByName matches a free-text team name against full and short names
func (r *SchoolRepository) FindIDByName(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", nil
	}

	pattern := "%" + EscapeLike(name) + "%"
	var id string
	err := r.db.DB().QueryRowContext(ctx, `
		SELECT id
		FROM schools
		WHERE full_name ILIKE $1 OR short_name ILIKE $1
		ORDER BY is_active DESC, full_name
		LIMIT 1
	`, pattern).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("looking up school %q: %w", name, err)
	}
	return id, nil
}
