package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/infisparks/medfordhrms-sub001/internal/billing"
)

// Repository is the append-only ledger store shared by every visit flavor.
// Services and payments are appended independently and never updated or
// deleted; reconciliation replays them from scratch each time.
type Repository interface {
	AppendService(ctx context.Context, sc *ServiceCharge) error
	AppendPayment(ctx context.Context, p *Payment) error
	// Per-visit reads use the visit's shard day key.
	ListServices(ctx context.Context, visitType billing.VisitSource, visitID uuid.UUID, shardDay time.Time) ([]*ServiceCharge, error)
	ListPayments(ctx context.Context, visitType billing.VisitSource, visitID uuid.UUID, shardDay time.Time) ([]*Payment, error)
	// Per-day reads back the record assembler's scan-and-merge over a range.
	ListServicesByDay(ctx context.Context, visitType billing.VisitSource, day time.Time) ([]*ServiceCharge, error)
	ListPaymentsByDay(ctx context.Context, visitType billing.VisitSource, day time.Time) ([]*Payment, error)
}

// LoadBilling fetches one visit's ledger rows and converts them into the
// reconciliation engine's input shape. The read path is identical for every
// visit flavor, so it lives here rather than in each domain service.
func LoadBilling(ctx context.Context, r Repository, src billing.VisitSource, visitID uuid.UUID, shardDay time.Time) ([]billing.ServiceCharge, []billing.Payment, error) {
	srows, err := r.ListServices(ctx, src, visitID, shardDay)
	if err != nil {
		return nil, nil, err
	}
	prows, err := r.ListPayments(ctx, src, visitID, shardDay)
	if err != nil {
		return nil, nil, err
	}
	services := make([]billing.ServiceCharge, 0, len(srows))
	for _, row := range srows {
		services = append(services, row.ToBilling())
	}
	payments := make([]billing.Payment, 0, len(prows))
	for _, row := range prows {
		payments = append(payments, row.ToBilling())
	}
	return services, payments, nil
}
