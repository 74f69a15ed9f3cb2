package ipd

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Admission) error
	GetByID(ctx context.Context, id uuid.UUID) (*Admission, error)
	// Discharge stamps the outcome status and discharge time in one update.
	Discharge(ctx context.Context, id uuid.UUID, status string, at time.Time) error
	SetDiscount(ctx context.Context, id uuid.UUID, discount float64) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Admission, int, error)
	ListByDay(ctx context.Context, day time.Time) ([]*Admission, error)
}
