package repository

import (
	"context"

	"github.com/fortuna/prepstats/internal/store"
)

// MetadataRepository reads the dropdown lists of the records portal
type MetadataRepository struct {
	schools *SchoolRepository
	records *RecordRepository
}

// NewMetadataRepository creates a new metadata repository
func NewMetadataRepository(db *store.Database) *MetadataRepository {
	return &MetadataRepository{
		schools: NewSchoolRepository(db),
		records: NewRecordRepository(db),
	}
}

// ActiveSchools returns all active schools ordered by full name
func (r *MetadataRepository) ActiveSchools(ctx context.Context) ([]*store.School, error) {
	return r.schools.GetActive(ctx)
}

// Sports returns the distinct sports of the stored rows
func (r *MetadataRepository) Sports(ctx context.Context) ([]string, error) {
	return r.records.DistinctSports(ctx)
}

// Seasons returns the distinct seasons of the stored rows
func (r *MetadataRepository) Seasons(ctx context.Context) ([]string, error) {
	return r.records.DistinctSeasons(ctx)
}
