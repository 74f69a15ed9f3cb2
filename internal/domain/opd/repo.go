package opd

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, v *Visit) error
	GetByID(ctx context.Context, id uuid.UUID) (*Visit, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	// SetDiscount overwrites the visit's flat discount (last write wins).
	SetDiscount(ctx context.Context, id uuid.UUID, discount float64) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Visit, int, error)
	ListByDay(ctx context.Context, day time.Time) ([]*Visit, error)
}
