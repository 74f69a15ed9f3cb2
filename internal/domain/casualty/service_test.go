package casualty

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/infisparks/medfordhrms-sub001/internal/billing"
	"github.com/infisparks/medfordhrms-sub001/internal/domain/ledger"
)

type mockRepo struct {
	items map[uuid.UUID]*Case
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: make(map[uuid.UUID]*Case)}
}

func (m *mockRepo) Create(_ context.Context, cs *Case) error {
	cs.ID = uuid.New()
	cs.CreatedAt = time.Now()
	cs.UpdatedAt = time.Now()
	m.items[cs.ID] = cs
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Case, error) {
	cs, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return cs, nil
}

func (m *mockRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	m.items[id].Status = status
	return nil
}

func (m *mockRepo) SetDiscount(_ context.Context, id uuid.UUID, discount float64) error {
	m.items[id].Discount = billing.Amount(discount)
	return nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*Case, int, error) {
	var result []*Case
	for _, cs := range m.items {
		if cs.PatientID == patientID {
			result = append(result, cs)
		}
	}
	return result, len(result), nil
}

func (m *mockRepo) ListByDay(_ context.Context, day time.Time) ([]*Case, error) {
	var result []*Case
	for _, cs := range m.items {
		if cs.ShardDay.Equal(billing.Day(day)) {
			result = append(result, cs)
		}
	}
	return result, nil
}

type mockLedger struct {
	services []*ledger.ServiceCharge
	payments []*ledger.Payment
}

func (m *mockLedger) AppendService(_ context.Context, sc *ledger.ServiceCharge) error {
	sc.ID = uuid.New()
	m.services = append(m.services, sc)
	return nil
}

func (m *mockLedger) AppendPayment(_ context.Context, p *ledger.Payment) error {
	p.ID = uuid.New()
	m.payments = append(m.payments, p)
	return nil
}

func (m *mockLedger) ListServices(_ context.Context, src billing.VisitSource, visitID uuid.UUID, _ time.Time) ([]*ledger.ServiceCharge, error) {
	var result []*ledger.ServiceCharge
	for _, sc := range m.services {
		if sc.VisitType == src && sc.VisitID == visitID {
			result = append(result, sc)
		}
	}
	return result, nil
}

func (m *mockLedger) ListPayments(_ context.Context, src billing.VisitSource, visitID uuid.UUID, _ time.Time) ([]*ledger.Payment, error) {
	var result []*ledger.Payment
	for _, p := range m.payments {
		if p.VisitType == src && p.VisitID == visitID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *mockLedger) ListServicesByDay(_ context.Context, src billing.VisitSource, day time.Time) ([]*ledger.ServiceCharge, error) {
	return nil, nil
}

func (m *mockLedger) ListPaymentsByDay(_ context.Context, src billing.VisitSource, day time.Time) ([]*ledger.Payment, error) {
	return nil, nil
}

func newTestService() *Service {
	return NewService(newMockRepo(), &mockLedger{})
}

func TestRegister_Defaults(t *testing.T) {
	svc := newTestService()
	cs := &Case{PatientID: uuid.New()}
	if err := svc.Register(context.Background(), cs); err != nil {
		t.Fatalf("register: %v", err)
	}
	if cs.TriageLevel != "yellow" {
		t.Errorf("expected default triage yellow, got %s", cs.TriageLevel)
	}
	if cs.Status != "active" {
		t.Errorf("expected status active, got %s", cs.Status)
	}
}

func TestRegister_InvalidTriage(t *testing.T) {
	svc := newTestService()
	cs := &Case{PatientID: uuid.New(), TriageLevel: "purple"}
	if err := svc.Register(context.Background(), cs); err == nil {
		t.Error("expected error for invalid triage level")
	}
}

func TestUpdateStatus_ShiftToIPD(t *testing.T) {
	svc := newTestService()
	cs := &Case{PatientID: uuid.New(), TriageLevel: "red", MLC: true}
	if err := svc.Register(context.Background(), cs); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.UpdateStatus(context.Background(), cs.ID, "shifted-ipd"); err != nil {
		t.Fatalf("update status: %v", err)
	}
	got, _ := svc.Get(context.Background(), cs.ID)
	if got.Status != "shifted-ipd" {
		t.Errorf("expected shifted-ipd, got %s", got.Status)
	}
}

func TestFinancials_CasualtyWorkup(t *testing.T) {
	svc := newTestService()
	cs := &Case{PatientID: uuid.New(), TriageLevel: "red"}
	if err := svc.Register(context.Background(), cs); err != nil {
		t.Fatalf("register: %v", err)
	}

	svc.AddService(context.Background(), cs.ID, &ledger.ServiceCharge{ServiceName: "Casualty charges", Amount: 1500})
	svc.AddService(context.Background(), cs.ID, &ledger.ServiceCharge{ServiceName: "CT Scan", Amount: 4000})
	svc.AddPayment(context.Background(), cs.ID, &ledger.Payment{Amount: 2000, PaymentType: billing.MethodOnline})

	fin, err := svc.Financials(context.Background(), cs.ID)
	if err != nil {
		t.Fatalf("financials: %v", err)
	}
	if fin.GrossCharges != 5500 {
		t.Errorf("gross: expected 5500, got %v", fin.GrossCharges)
	}
	if fin.RemainingBalance != 3500 {
		t.Errorf("balance: expected 3500, got %v", fin.RemainingBalance)
	}
}

func TestAddService_StampsCaseKeys(t *testing.T) {
	svc := newTestService()
	cs := &Case{PatientID: uuid.New()}
	svc.Register(context.Background(), cs)

	sc := &ledger.ServiceCharge{ServiceName: "Suturing", Amount: 800}
	if err := svc.AddService(context.Background(), cs.ID, sc); err != nil {
		t.Fatalf("add service: %v", err)
	}
	if sc.VisitType != billing.SourceCasualty {
		t.Errorf("expected visit type casualty, got %s", sc.VisitType)
	}
	if !sc.ShardDay.Equal(cs.ShardDay) {
		t.Error("expected ledger row to carry the case's shard day")
	}
}
