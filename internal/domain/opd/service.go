package opd

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/infisparks/medfordhrms-sub001/internal/billing"
	"github.com/infisparks/medfordhrms-sub001/internal/domain/ledger"
)

var validVisitStatuses = map[string]bool{
	"waiting": true, "in-consult": true, "completed": true, "cancelled": true,
}

type Service struct {
	visits Repository
	ledger ledger.Repository
}

func NewService(visits Repository, lr ledger.Repository) *Service {
	return &Service{visits: visits, ledger: lr}
}

func (s *Service) Create(ctx context.Context, v *Visit) error {
	if v.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if v.Status == "" {
		v.Status = "waiting"
	}
	if !validVisitStatuses[v.Status] {
		return fmt.Errorf("invalid status: %s", v.Status)
	}
	now := time.Now().UTC()
	if v.VisitedAt.IsZero() {
		v.VisitedAt = now
	}
	// The shard day is fixed at registration time and never moves, even if
	// services or payments land on later days.
	v.ShardDay = billing.Day(now)
	if v.Discount.Value() < 0 {
		return fmt.Errorf("discount cannot be negative")
	}
	return s.visits.Create(ctx, v)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Visit, error) {
	return s.visits.GetByID(ctx, id)
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !validVisitStatuses[status] {
		return fmt.Errorf("invalid status: %s", status)
	}
	if _, err := s.visits.GetByID(ctx, id); err != nil {
		return fmt.Errorf("visit not found: %w", err)
	}
	return s.visits.UpdateStatus(ctx, id, status)
}

// SetDiscount overwrites the visit's flat discount. Last write wins; there is
// no discount history.
func (s *Service) SetDiscount(ctx context.Context, id uuid.UUID, amount billing.Amount) error {
	if amount.Value() < 0 {
		return fmt.Errorf("discount cannot be negative")
	}
	if _, err := s.visits.GetByID(ctx, id); err != nil {
		return fmt.Errorf("visit not found: %w", err)
	}
	return s.visits.SetDiscount(ctx, id, amount.Value())
}

func (s *Service) AddService(ctx context.Context, visitID uuid.UUID, sc *ledger.ServiceCharge) error {
	if sc.ServiceName == "" {
		return fmt.Errorf("service_name is required")
	}
	v, err := s.visits.GetByID(ctx, visitID)
	if err != nil {
		return fmt.Errorf("visit not found: %w", err)
	}
	sc.VisitType = billing.SourceOPD
	sc.VisitID = v.ID
	sc.ShardDay = v.ShardDay
	return s.ledger.AppendService(ctx, sc)
}

func (s *Service) AddPayment(ctx context.Context, visitID uuid.UUID, p *ledger.Payment) error {
	if p.Kind == "" {
		p.Kind = billing.KindDeposit
	}
	if !ledger.ValidKind(p.Kind) {
		return fmt.Errorf("invalid payment kind: %s", p.Kind)
	}
	if p.PaymentType == "" {
		p.PaymentType = billing.MethodCash
	}
	if !ledger.ValidMethod(p.PaymentType) {
		return fmt.Errorf("invalid payment method: %s", p.PaymentType)
	}
	v, err := s.visits.GetByID(ctx, visitID)
	if err != nil {
		return fmt.Errorf("visit not found: %w", err)
	}
	if p.PaidOn.IsZero() {
		p.PaidOn = time.Now().UTC()
	}
	p.VisitType = billing.SourceOPD
	p.VisitID = v.ID
	p.ShardDay = v.ShardDay
	return s.ledger.AppendPayment(ctx, p)
}

// Financials replays the visit's ledger through the reconciliation engine.
// Nothing is read from a stored total; the summary is derived fresh on every
// call.
func (s *Service) Financials(ctx context.Context, visitID uuid.UUID) (*billing.VisitFinancials, error) {
	v, err := s.visits.GetByID(ctx, visitID)
	if err != nil {
		return nil, fmt.Errorf("visit not found: %w", err)
	}
	services, payments, err := ledger.LoadBilling(ctx, s.ledger, billing.SourceOPD, v.ID, v.ShardDay)
	if err != nil {
		return nil, err
	}
	fin := billing.Reconcile(services, payments, v.Discount.Value())
	return &fin, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Visit, int, error) {
	return s.visits.ListByPatient(ctx, patientID, limit, offset)
}
