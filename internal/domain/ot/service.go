package ot

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	notes Repository
}

func NewService(notes Repository) *Service {
	return &Service{notes: notes}
}

func (s *Service) Create(ctx context.Context, n *Note) error {
	if n.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if n.Procedure == "" {
		return fmt.Errorf("procedure is required")
	}
	if n.Surgeon == "" {
		return fmt.Errorf("surgeon is required")
	}
	if n.StartedAt.IsZero() {
		n.StartedAt = time.Now().UTC()
	}
	if n.EndedAt != nil && n.EndedAt.Before(n.StartedAt) {
		return fmt.Errorf("ended_at cannot precede started_at")
	}
	return s.notes.Create(ctx, n)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Note, error) {
	return s.notes.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, n *Note) error {
	if n.Procedure == "" {
		return fmt.Errorf("procedure is required")
	}
	if n.EndedAt != nil && n.EndedAt.Before(n.StartedAt) {
		return fmt.Errorf("ended_at cannot precede started_at")
	}
	if _, err := s.notes.GetByID(ctx, n.ID); err != nil {
		return fmt.Errorf("note not found: %w", err)
	}
	return s.notes.Update(ctx, n)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Note, int, error) {
	return s.notes.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) ListByRange(ctx context.Context, from, to time.Time, limit, offset int) ([]*Note, int, error) {
	if to.IsZero() {
		to = time.Now().UTC()
	}
	if to.Before(from) {
		return nil, 0, fmt.Errorf("invalid date range")
	}
	return s.notes.ListByRange(ctx, from, to, limit, offset)
}
