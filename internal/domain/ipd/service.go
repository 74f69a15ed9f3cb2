package ipd

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/infisparks/medfordhrms-sub001/internal/billing"
	"github.com/infisparks/medfordhrms-sub001/internal/domain/ledger"
)

var dischargeStatuses = map[string]bool{
	"discharged": true, "dama": true, "deceased": true,
}

type Service struct {
	admissions Repository
	ledger     ledger.Repository
}

func NewService(admissions Repository, lr ledger.Repository) *Service {
	return &Service{admissions: admissions, ledger: lr}
}

func (s *Service) Admit(ctx context.Context, a *Admission) error {
	if a.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if a.Ward == "" {
		return fmt.Errorf("ward is required")
	}
	now := time.Now().UTC()
	if a.AdmittedAt.IsZero() {
		a.AdmittedAt = now
	}
	a.ShardDay = billing.Day(now)
	a.Status = "admitted"
	a.DischargedAt = nil
	if a.Discount.Value() < 0 {
		return fmt.Errorf("discount cannot be negative")
	}
	return s.admissions.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Admission, error) {
	return s.admissions.GetByID(ctx, id)
}

// Discharge closes an admission with an outcome status. DAMA is discharge
// against medical advice.
func (s *Service) Discharge(ctx context.Context, id uuid.UUID, status string) error {
	if status == "" {
		status = "discharged"
	}
	if !dischargeStatuses[status] {
		return fmt.Errorf("invalid discharge status: %s", status)
	}
	a, err := s.admissions.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("admission not found: %w", err)
	}
	if a.Status != "admitted" {
		return fmt.Errorf("admission already closed")
	}
	return s.admissions.Discharge(ctx, id, status, time.Now().UTC())
}

func (s *Service) SetDiscount(ctx context.Context, id uuid.UUID, amount billing.Amount) error {
	if amount.Value() < 0 {
		return fmt.Errorf("discount cannot be negative")
	}
	if _, err := s.admissions.GetByID(ctx, id); err != nil {
		return fmt.Errorf("admission not found: %w", err)
	}
	return s.admissions.SetDiscount(ctx, id, amount.Value())
}

func (s *Service) AddService(ctx context.Context, admissionID uuid.UUID, sc *ledger.ServiceCharge) error {
	if sc.ServiceName == "" {
		return fmt.Errorf("service_name is required")
	}
	a, err := s.admissions.GetByID(ctx, admissionID)
	if err != nil {
		return fmt.Errorf("admission not found: %w", err)
	}
	sc.VisitType = billing.SourceIPD
	sc.VisitID = a.ID
	sc.ShardDay = a.ShardDay
	return s.ledger.AppendService(ctx, sc)
}

func (s *Service) AddPayment(ctx context.Context, admissionID uuid.UUID, p *ledger.Payment) error {
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
	a, err := s.admissions.GetByID(ctx, admissionID)
	if err != nil {
		return fmt.Errorf("admission not found: %w", err)
	}
	if p.PaidOn.IsZero() {
		p.PaidOn = time.Now().UTC()
	}
	p.VisitType = billing.SourceIPD
	p.VisitID = a.ID
	p.ShardDay = a.ShardDay
	return s.ledger.AppendPayment(ctx, p)
}

func (s *Service) Financials(ctx context.Context, admissionID uuid.UUID) (*billing.VisitFinancials, error) {
	a, err := s.admissions.GetByID(ctx, admissionID)
	if err != nil {
		return nil, fmt.Errorf("admission not found: %w", err)
	}
	services, payments, err := ledger.LoadBilling(ctx, s.ledger, billing.SourceIPD, a.ID, a.ShardDay)
	if err != nil {
		return nil, err
	}
	fin := billing.Reconcile(services, payments, a.Discount.Value())
	return &fin, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Admission, int, error) {
	return s.admissions.ListByPatient(ctx, patientID, limit, offset)
}
