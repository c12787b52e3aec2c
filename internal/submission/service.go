package submission

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/fortuna/prepstats/internal/boxscore"
	"github.com/fortuna/prepstats/internal/store"
)

// Store persists submissions.
type Store interface {
	Create(ctx context.Context, sub *store.GameSubmission) (*store.GameSubmission, error)
	List(ctx context.Context, status Status, limit int) ([]*store.GameSubmission, error)
	Review(ctx context.Context, id int64, review ReviewRequest) (*store.GameSubmission, error)
}

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 50

// Service runs the parse, format, persist and publish pipeline.
type Service struct {
	store     Store
	formatter *Formatter

	mu        sync.RWMutex
	notifiers []Notifier

	logger *log.Logger
}

// NewService constructs a Service.
func NewService(st Store, schools SchoolLookup, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(log.Writer(), "[submission] ", log.LstdFlags)
	}

	return &Service{
		store:     st,
		formatter: NewFormatter(schools),
		logger:    logger,
	}
}

// Formatter exposes the service's formatter.
func (s *Service) Formatter() *Formatter {
	return s.formatter
}

// AddNotifier registers a sink for submission events.
func (s *Service) AddNotifier(n Notifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifiers = append(s.notifiers, n)
}

// Preview parses and formats a box score without storing it.
func (s *Service) Preview(ctx context.Context, req Request) (*Preview, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrEmptyContent
	}

	parsed := boxscore.Parse(req.Source, req.Content)
	formatted, err := s.formatter.Format(ctx, parsed, req)
	if err != nil {
		return nil, err
	}

	return &Preview{
		Parsed:     parsed,
		Validation: parsed.Validate(),
		Formatted:  formatted,
	}, nil
}

// Submit stores a box score as a pending submission and announces it.
func (s *Service) Submit(ctx context.Context, req Request) (*store.GameSubmission, *Preview, error) {
	preview, err := s.Preview(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	if len(preview.Parsed.Errors) > 0 {
		return nil, preview, fmt.Errorf("%w: %s", ErrUnparseable, strings.Join(preview.Parsed.Errors, "; "))
	}

	if preview.Parsed.Confidence < LowConfidence {
		s.logger.Printf("⚠️  low confidence parse (%d) from %s, review carefully", preview.Parsed.Confidence, valueOr(req.SubmittedBy, "anonymous"))
	}

	record, err := toRecord(preview.Formatted, req.Content)
	if err != nil {
		return nil, preview, err
	}

	stored, err := s.store.Create(ctx, record)
	if err != nil {
		return nil, preview, err
	}

	s.logger.Printf("stored submission %d (%s %s, confidence %d)", stored.ID, stored.Sport, stored.GameDate.Format(boxscore.DateLayout), stored.Confidence)
	s.notify(ctx, Event{Type: EventCreated, Submission: stored})

	return stored, preview, nil
}

// List returns recent submissions. An empty status lists every state.
func (s *Service) List(ctx context.Context, status Status, limit int) ([]*store.GameSubmission, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidStatus, status)
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.store.List(ctx, status, limit)
}

// Review approves or rejects a submission.
func (s *Service) Review(ctx context.Context, id int64, review ReviewRequest) (*store.GameSubmission, error) {
	if review.Status != StatusApproved && review.Status != StatusRejected {
		return nil, ErrInvalidStatus
	}

	sub, err := s.store.Review(ctx, id, review)
	if err != nil {
		return nil, err
	}

	s.logger.Printf("submission %d %s by %s", sub.ID, sub.Status, valueOr(review.ReviewedBy, "unknown"))
	s.notify(ctx, Event{Type: EventReviewed, Submission: sub})

	return sub, nil
}

// notify fans an event out to every notifier. Failures are logged only.
func (s *Service) notify(ctx context.Context, event Event) {
	s.mu.RLock()
	notifiers := append([]Notifier(nil), s.notifiers...)
	s.mu.RUnlock()

	for _, n := range notifiers {
		if err := n.NotifySubmission(ctx, event); err != nil {
			s.logger.Printf("⚠️  failed to publish %s for submission %d: %v", event.Type, event.Submission.ID, err)
		}
	}
}

func toRecord(f *Formatted, original string) (*store.GameSubmission, error) {
	gameDate, err := time.Parse(boxscore.DateLayout, f.GameDate)
	if err != nil {
		return nil, fmt.Errorf("invalid game date %q: %w", f.GameDate, err)
	}

	data, err := json.Marshal(f.GameData)
	if err != nil {
		return nil, fmt.Errorf("encoding game data: %w", err)
	}

	return &store.GameSubmission{
		GameDate:          gameDate,
		Sport:             f.Sport,
		Gender:            f.Gender,
		HomeTeamID:        nullString(f.HomeTeamID),
		AwayTeamID:        nullString(f.AwayTeamID),
		HomeScore:         nullInt(f.HomeScore),
		AwayScore:         nullInt(f.AwayScore),
		Location:          nullString(f.Location),
		GameData:          data,
		SubmissionMethod:  string(f.Method),
		OriginalData:      nullString(original),
		SubmittedBy:       nullString(f.SubmittedBy),
		SubmitterSchoolID: nullString(f.SubmitterSchoolID),
		Confidence:        f.Confidence,
		Status:            string(StatusPending),
	}, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(v *int) sql.NullInt32 {
	if v == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(*v), Valid: true}
}

func valueOr(val, fallback string) string {
	if val != "" {
		return val
	}
	return fallback
}
