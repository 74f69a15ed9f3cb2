package casualty

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/infisparks/medfordhrms-sub001/internal/billing"
	"github.com/infisparks/medfordhrms-sub001/internal/domain/ledger"
)

var validTriageLevels = map[string]bool{
	"red": true, "yellow": true, "green": true,
}

var validCaseStatuses = map[string]bool{
	"active": true, "shifted-ipd": true, "discharged": true, "deceased": true,
}

type Service struct {
	cases  Repository
	ledger ledger.Repository
}

func NewService(cases Repository, lr ledger.Repository) *Service {
	return &Service{cases: cases, ledger: lr}
}

func (s *Service) Register(ctx context.Context, cs *Case) error {
	if cs.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if cs.TriageLevel == "" {
		cs.TriageLevel = "yellow"
	}
	if !validTriageLevels[cs.TriageLevel] {
		return fmt.Errorf("invalid triage level: %s", cs.TriageLevel)
	}
	now := time.Now().UTC()
	if cs.ArrivedAt.IsZero() {
		cs.ArrivedAt = now
	}
	cs.ShardDay = billing.Day(now)
	cs.Status = "active"
	if cs.Discount.Value() < 0 {
		return fmt.Errorf("discount cannot be negative")
	}
	return s.cases.Create(ctx, cs)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Case, error) {
	return s.cases.GetByID(ctx, id)
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !validCaseStatuses[status] {
		return fmt.Errorf("invalid status: %s", status)
	}
	if _, err := s.cases.GetByID(ctx, id); err != nil {
		return fmt.Errorf("case not found: %w", err)
	}
	return s.cases.UpdateStatus(ctx, id, status)
}

func (s *Service) SetDiscount(ctx context.Context, id uuid.UUID, amount billing.Amount) error {
	if amount.Value() < 0 {
		return fmt.Errorf("discount cannot be negative")
	}
	if _, err := s.cases.GetByID(ctx, id); err != nil {
		return fmt.Errorf("case not found: %w", err)
	}
	return s.cases.SetDiscount(ctx, id, amount.Value())
}

func (s *Service) AddService(ctx context.Context, caseID uuid.UUID, sc *ledger.ServiceCharge) error {
	if sc.ServiceName == "" {
		return fmt.Errorf("service_name is required")
	}
	cs, err := s.cases.GetByID(ctx, caseID)
	if err != nil {
		return fmt.Errorf("case not found: %w", err)
	}
	sc.VisitType = billing.SourceCasualty
	sc.VisitID = cs.ID
	sc.ShardDay = cs.ShardDay
	return s.ledger.AppendService(ctx, sc)
}

func (s *Service) AddPayment(ctx context.Context, caseID uuid.UUID, p *ledger.Payment) error {
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
	cs, err := s.cases.GetByID(ctx, caseID)
	if err != nil {
		return fmt.Errorf("case not found: %w", err)
	}
	if p.PaidOn.IsZero() {
		p.PaidOn = time.Now().UTC()
	}
	p.VisitType = billing.SourceCasualty
	p.VisitID = cs.ID
	p.ShardDay = cs.ShardDay
	return s.ledger.AppendPayment(ctx, p)
}

func (s *Service) Financials(ctx context.Context, caseID uuid.UUID) (*billing.VisitFinancials, error) {
	cs, err := s.cases.GetByID(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("case not found: %w", err)
	}
	services, payments, err := ledger.LoadBilling(ctx, s.ledger, billing.SourceCasualty, cs.ID, cs.ShardDay)
	if err != nil {
		return nil, err
	}
	fin := billing.Reconcile(services, payments, cs.Discount.Value())
	return &fin, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Case, int, error) {
	return s.cases.ListByPatient(ctx, patientID, limit, offset)
}
