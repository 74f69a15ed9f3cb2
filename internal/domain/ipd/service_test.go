package ipd

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
	items map[uuid.UUID]*Admission
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: make(map[uuid.UUID]*Admission)}
}

func (m *mockRepo) Create(_ context.Context, a *Admission) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	a.UpdatedAt = time.Now()
	m.items[a.ID] = a
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Admission, error) {
	a, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return a, nil
}

func (m *mockRepo) Discharge(_ context.Context, id uuid.UUID, status string, at time.Time) error {
	a := m.items[id]
	a.Status = status
	a.DischargedAt = &at
	return nil
}

func (m *mockRepo) SetDiscount(_ context.Context, id uuid.UUID, discount float64) error {
	m.items[id].Discount = billing.Amount(discount)
	return nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*Admission, int, error) {
	var result []*Admission
	for _, a := range m.items {
		if a.PatientID == patientID {
			result = append(result, a)
		}
	}
	return result, len(result), nil
}

func (m *mockRepo) ListByDay(_ context.Context, day time.Time) ([]*Admission, error) {
	var result []*Admission
	for _, a := range m.items {
		if a.ShardDay.Equal(billing.Day(day)) {
			result = append(result, a)
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

func admitPatient(t *testing.T, svc *Service) *Admission {
	t.Helper()
	a := &Admission{PatientID: uuid.New(), Ward: "General", BedNumber: "G-12"}
	if err := svc.Admit(context.Background(), a); err != nil {
		t.Fatalf("admit: %v", err)
	}
	return a
}

func TestAdmit(t *testing.T) {
	svc := newTestService()
	a := admitPatient(t, svc)
	if a.Status != "admitted" {
		t.Errorf("expected status admitted, got %s", a.Status)
	}
	if a.ShardDay.IsZero() {
		t.Error("expected shard day to be set")
	}
}

func TestAdmit_WardRequired(t *testing.T) {
	svc := newTestService()
	a := &Admission{PatientID: uuid.New()}
	if err := svc.Admit(context.Background(), a); err == nil {
		t.Error("expected error for missing ward")
	}
}

func TestDischarge(t *testing.T) {
	svc := newTestService()
	a := admitPatient(t, svc)
	if err := svc.Discharge(context.Background(), a.ID, ""); err != nil {
		t.Fatalf("discharge: %v", err)
	}
	got, _ := svc.Get(context.Background(), a.ID)
	if got.Status != "discharged" {
		t.Errorf("expected discharged, got %s", got.Status)
	}
	if got.DischargedAt == nil {
		t.Error("expected discharge time to be stamped")
	}
}

func TestDischarge_AlreadyClosed(t *testing.T) {
	svc := newTestService()
	a := admitPatient(t, svc)
	svc.Discharge(context.Background(), a.ID, "dama")
	if err := svc.Discharge(context.Background(), a.ID, "discharged"); err == nil {
		t.Error("expected error for double discharge")
	}
}

func TestDischarge_InvalidStatus(t *testing.T) {
	svc := newTestService()
	a := admitPatient(t, svc)
	if err := svc.Discharge(context.Background(), a.ID, "transferred"); err == nil {
		t.Error("expected error for invalid status")
	}
}

func TestFinancials_DepositAgainstStay(t *testing.T) {
	svc := newTestService()
	a := admitPatient(t, svc)

	// Advance deposit before any service is recorded.
	svc.AddPayment(context.Background(), a.ID, &ledger.Payment{Amount: 10000, Kind: billing.KindAdvance})
	svc.AddService(context.Background(), a.ID, &ledger.ServiceCharge{ServiceName: "Bed charges", Amount: 6000})
	svc.AddService(context.Background(), a.ID, &ledger.ServiceCharge{ServiceName: "Pharmacy", Amount: 2500})

	fin, err := svc.Financials(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("financials: %v", err)
	}
	if fin.GrossCharges != 8500 {
		t.Errorf("gross: expected 8500, got %v", fin.GrossCharges)
	}
	if fin.RemainingBalance != -1500 {
		t.Errorf("balance: expected -1500, got %v", fin.RemainingBalance)
	}
	if !fin.Refundable() {
		t.Error("expected overpaid stay to be refundable")
	}
}

func TestFinancials_LedgerStampedWithAdmissionDay(t *testing.T) {
	svc := newTestService()
	a := admitPatient(t, svc)
	p := &ledger.Payment{Amount: 1000}
	if err := svc.AddPayment(context.Background(), a.ID, p); err != nil {
		t.Fatalf("add payment: %v", err)
	}
	if p.VisitType != billing.SourceIPD {
		t.Errorf("expected visit type ipd, got %s", p.VisitType)
	}
	if !p.ShardDay.Equal(a.ShardDay) {
		t.Error("expected payment to carry the admission's shard day")
	}
}
