package service

import (
	"context"
	"fmt"
	"log"

	"github.com/fortuna/prepstats/internal/stats"
)

// RecordSource fetches raw season rows matching a filter.
type RecordSource interface {
	Fetch(ctx context.Context, filter stats.Filter) ([]stats.RawStatRow, error)
}

// Page is one rendered table page plus the view state that produced it.
type Page struct {
	stats.Result
	State stats.ViewState `json:"state"`
}

// RecordsService fetches raw rows and renders them through the stats engine
type RecordsService struct {
	source RecordSource
	engine *stats.Engine
	logger *log.Logger
}

// NewRecordsService creates a new records service
func NewRecordsService(source RecordSource, engine *stats.Engine, logger *log.Logger) *RecordsService {
	if engine == nil {
		engine = stats.NewEngine(stats.DefaultOptions())
	}
	if logger == nil {
		logger = log.New(log.Writer(), "[records] ", log.LstdFlags)
	}
	return &RecordsService{
		source: source,
		engine: engine,
		logger: logger,
	}
}

// Engine returns the render engine
func (s *RecordsService) Engine() *stats.Engine {
	return s.engine
}

// Fetch reads every raw row matching the filter
func (s *RecordsService) Fetch(ctx context.Context, filter stats.Filter) ([]stats.RawStatRow, error) {
	rows, err := s.source.Fetch(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("fetching records: %w", err)
	}
	s.logger.Printf("fetched %d rows (sport=%q season=%q query=%q)", len(rows), filter.Sport, filter.Season, filter.Query)
	return rows, nil
}

// Render projects already fetched rows through a view state
func (s *RecordsService) Render(raw []stats.RawStatRow, state stats.ViewState) Page {
	res, next := s.engine.Render(raw, state)
	return Page{Result: res, State: next}
}

// Records fetches and renders in one step
func (s *RecordsService) Records(ctx context.Context, filter stats.Filter, state stats.ViewState) (Page, error) {
	raw, err := s.Fetch(ctx, filter)
	if err != nil {
		return Page{}, err
	}
	return s.Render(raw, state), nil
}
