package casualty

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, cs *Case) error
	GetByID(ctx context.Context, id uuid.UUID) (*Case, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	SetDiscount(ctx context.Context, id uuid.UUID, discount float64) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Case, int, error)
	ListByDay(ctx context.Context, day time.Time) ([]*Case, error)
}
