package mortality

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	reports Repository
}

func NewService(reports Repository) *Service {
	return &Service{reports: reports}
}

func (s *Service) File(ctx context.Context, r *Report) error {
	if r.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if r.Cause == "" {
		return fmt.Errorf("cause is required")
	}
	if r.DiedAt.IsZero() {
		r.DiedAt = time.Now().UTC()
	}
	if r.DiedAt.After(time.Now().UTC()) {
		return fmt.Errorf("time of death cannot be in the future")
	}
	return s.reports.Create(ctx, r)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Report, error) {
	return s.reports.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, r *Report) error {
	if r.Cause == "" {
		return fmt.Errorf("cause is required")
	}
	if _, err := s.reports.GetByID(ctx, r.ID); err != nil {
		return fmt.Errorf("report not found: %w", err)
	}
	return s.reports.Update(ctx, r)
}

// ListByRange returns reports with time of death in [from, to). A zero `to`
// means up to now.
func (s *Service) ListByRange(ctx context.Context, from, to time.Time, limit, offset int) ([]*Report, int, error) {
	if to.IsZero() {
		to = time.Now().UTC()
	}
	if to.Before(from) {
		return nil, 0, fmt.Errorf("invalid date range")
	}
	return s.reports.ListByRange(ctx, from, to, limit, offset)
}
