package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fortuna/prepstats/internal/cache"
	"github.com/fortuna/prepstats/internal/store"
)

// MetadataSource reads dropdown metadata from the database.
type MetadataSource interface {
	ActiveSchools(ctx context.Context) ([]*store.School, error)
	Sports(ctx context.Context) ([]string, error)
	Seasons(ctx context.Context) ([]string, error)
}

// MetadataCache stores JSON values with a TTL.
type MetadataCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// MetadataService serves schools, sports and seasons, cache-aside. Cache
// failures fall back to the database.
type MetadataService struct {
	source MetadataSource
	cache  MetadataCache
	ttl    time.Duration
	logger *log.Logger
}

// NewMetadataService creates a metadata service. cache may be nil.
func NewMetadataService(source MetadataSource, c MetadataCache, ttl time.Duration, logger *log.Logger) *MetadataService {
	if logger == nil {
		logger = log.New(log.Writer(), "[metadata] ", log.LstdFlags)
	}
	return &MetadataService{
		source: source,
		cache:  c,
		ttl:    ttl,
		logger: logger,
	}
}

// Schools returns the active schools ordered by full name
func (s *MetadataService) Schools(ctx context.Context) ([]*store.School, error) {
	var schools []*store.School
	err := s.cached(ctx, cache.KeySchools, &schools, func() (interface{}, error) {
		v, err := s.source.ActiveSchools(ctx)
		schools = v
		return v, err
	})
	return schools, err
}

// Sports returns the distinct sports
func (s *MetadataService) Sports(ctx context.Context) ([]string, error) {
	var sports []string
	err := s.cached(ctx, cache.KeySports, &sports, func() (interface{}, error) {
		v, err := s.source.Sports(ctx)
		sports = v
		return v, err
	})
	return sports, err
}

// Seasons returns the distinct seasons
func (s *MetadataService) Seasons(ctx context.Context) ([]string, error) {
	var seasons []string
	err := s.cached(ctx, cache.KeySeasons, &seasons, func() (interface{}, error) {
		v, err := s.source.Seasons(ctx)
		seasons = v
		return v, err
	})
	return seasons, err
}

// Refresh reloads every list from the database into the cache
func (s *MetadataService) Refresh(ctx context.Context) error {
	schools, err := s.source.ActiveSchools(ctx)
	if err != nil {
		return fmt.Errorf("loading schools: %w", err)
	}
	sports, err := s.source.Sports(ctx)
	if err != nil {
		return fmt.Errorf("loading sports: %w", err)
	}
	seasons, err := s.source.Seasons(ctx)
	if err != nil {
		return fmt.Errorf("loading seasons: %w", err)
	}

	if s.cache == nil {
		return nil
	}
	for key, value := range map[string]interface{}{
		cache.KeySchools: schools,
		cache.KeySports:  sports,
		cache.KeySeasons: seasons,
	} {
		if err := s.cache.SetJSON(ctx, key, value, s.ttl); err != nil {
			return fmt.Errorf("caching %s: %w", key, err)
		}
	}
	return nil
}

// cached reads key into dest, calling load on a miss and storing its
// result. load must also fill dest.
func (s *MetadataService) cached(ctx context.Context, key string, dest interface{}, load func() (interface{}, error)) error {
	if s.cache != nil {
		err := s.cache.GetJSON(ctx, key, dest)
		if err == nil {
			return nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Printf("⚠️  cache read %s failed, using database: %v", key, err)
		}
	}

	value, err := load()
	if err != nil {
		return fmt.Errorf("loading %s: %w", key, err)
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, value, s.ttl); err != nil {
			s.logger.Printf("⚠️  cache write %s failed: %v", key, err)
		}
	}
	return nil
}
