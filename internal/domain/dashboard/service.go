package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/infisparks/medfordhrms-sub001/internal/billing"
	"github.com/infisparks/medfordhrms-sub001/internal/domain/casualty"
	"github.com/infisparks/medfordhrms-sub001/internal/domain/doctor"
	"github.com/infisparks/medfordhrms-sub001/internal/domain/ipd"
	"github.com/infisparks/medfordhrms-sub001/internal/domain/ledger"
	"github.com/infisparks/medfordhrms-sub001/internal/domain/opd"
)

// patientHistoryCap bounds the full-history replay per source. Front-desk
// patients rarely cross double digits of visits; the cap only guards against
// runaway queries.
const patientHistoryCap = 500

// Service is the record assembler: it walks the date-sharded stores day by
// day, merges OPD, IPD and casualty records into the engine's visit shape and
// hands them to the aggregator. All arithmetic happens in the billing
// package; this layer only fetches and converts.
type Service struct {
	opd     opd.Repository
	ipd     ipd.Repository
	cas     casualty.Repository
	ledger  ledger.Repository
	doctors *doctor.Service
}

func NewService(o opd.Repository, i ipd.Repository, c casualty.Repository, lr ledger.Repository, docs *doctor.Service) *Service {
	return &Service{opd: o, ipd: i, cas: c, ledger: lr, doctors: docs}
}

// Stats reconciles every visit created in [from, to] and folds the results
// into dashboard totals, method splits and a per-day series.
func (s *Service) Stats(ctx context.Context, from, to time.Time) (*billing.DashboardStats, error) {
	window := billing.DateRange{From: from, To: to}
	if window.Days() == nil {
		return nil, fmt.Errorf("invalid date range")
	}
	visits, err := s.fetchVisits(ctx, window)
	if err != nil {
		return nil, err
	}
	stats := billing.AggregateWithDoctors(visits, window, s.doctors.ResolveName(ctx))
	return &stats, nil
}

// fetchVisits scans each calendar day's shard across all three visit sources
// and merges the ledger rows onto their owning visits.
func (s *Service) fetchVisits(ctx context.Context, window billing.DateRange) ([]billing.Visit, error) {
	var visits []billing.Visit
	for _, day := range window.Days() {
		dayVisits, err := s.fetchDay(ctx, day)
		if err != nil {
			return nil, fmt.Errorf("fetch shard %s: %w", day.Format("2006-01-02"), err)
		}
		visits = append(visits, dayVisits...)
	}
	return visits, nil
}

func (s *Service) fetchDay(ctx context.Context, day time.Time) ([]billing.Visit, error) {
	var visits []billing.Visit

	opdVisits, err := s.opd.ListByDay(ctx, day)
	if err != nil {
		return nil, err
	}
	services, payments, err := s.dayLedger(ctx, billing.SourceOPD, day)
	if err != nil {
		return nil, err
	}
	for _, v := range opdVisits {
		at := v.VisitedAt
		visits = append(visits, billing.Visit{
			PatientID: v.PatientID.String(),
			VisitID:   v.ID.String(),
			Source:    billing.SourceOPD,
			Services:  services[v.ID],
			Payments:  payments[v.ID],
			Discount:  v.Discount,
			VisitedAt: &at,
			Status:    v.Status,
		})
	}

	admissions, err := s.ipd.ListByDay(ctx, day)
	if err != nil {
		return nil, err
	}
	services, payments, err = s.dayLedger(ctx, billing.SourceIPD, day)
	if err != nil {
		return nil, err
	}
	for _, a := range admissions {
		at := a.AdmittedAt
		visits = append(visits, billing.Visit{
			PatientID: a.PatientID.String(),
			VisitID:   a.ID.String(),
			Source:    billing.SourceIPD,
			Services:  services[a.ID],
			Payments:  payments[a.ID],
			Discount:  a.Discount,
			VisitedAt: &at,
			Status:    a.Status,
		})
	}

	cases, err := s.cas.ListByDay(ctx, day)
	if err != nil {
		return nil, err
	}
	services, payments, err = s.dayLedger(ctx, billing.SourceCasualty, day)
	if err != nil {
		return nil, err
	}
	for _, cs := range cases {
		at := cs.ArrivedAt
		visits = append(visits, billing.Visit{
			PatientID: cs.PatientID.String(),
			VisitID:   cs.ID.String(),
			Source:    billing.SourceCasualty,
			Services:  services[cs.ID],
			Payments:  payments[cs.ID],
			Discount:  cs.Discount,
			VisitedAt: &at,
			Status:    cs.Status,
		})
	}

	return visits, nil
}

// dayLedger loads one source's ledger shard for a day, grouped by visit id.
func (s *Service) dayLedger(ctx context.Context, src billing.VisitSource, day time.Time) (map[uuid.UUID][]billing.ServiceCharge, map[uuid.UUID][]billing.Payment, error) {
	srows, err := s.ledger.ListServicesByDay(ctx, src, day)
	if err != nil {
		return nil, nil, err
	}
	prows, err := s.ledger.ListPaymentsByDay(ctx, src, day)
	if err != nil {
		return nil, nil, err
	}
	services := make(map[uuid.UUID][]billing.ServiceCharge)
	for _, row := range srows {
		services[row.VisitID] = append(services[row.VisitID], row.ToBilling())
	}
	payments := make(map[uuid.UUID][]billing.Payment)
	for _, row := range prows {
		payments[row.VisitID] = append(payments[row.VisitID], row.ToBilling())
	}
	return services, payments, nil
}

// HistoryEntry is one reconciled visit in a patient's billing history.
type HistoryEntry struct {
	VisitID    string                  `json:"visit_id"`
	Source     billing.VisitSource     `json:"source"`
	Status     string                  `json:"status"`
	VisitedAt  time.Time               `json:"visited_at"`
	Financials billing.VisitFinancials `json:"financials"`
}

// PatientHistory is a patient's cross-visit billing summary, derived by
// replaying every visit's ledger through the reconciliation engine.
type PatientHistory struct {
	PatientID    string         `json:"patient_id"`
	Visits       []HistoryEntry `json:"visits"`
	TotalCharges float64        `json:"total_charges"`
	TotalPaid    float64        `json:"total_paid"`
	TotalRefunds float64        `json:"total_refunds"`
	TotalDue     float64        `json:"total_due"`
}

// History reconciles a patient's full visit history across all sources.
func (s *Service) History(ctx context.Context, patientID uuid.UUID) (*PatientHistory, error) {
	hist := &PatientHistory{PatientID: patientID.String()}

	opdVisits, _, err := s.opd.ListByPatient(ctx, patientID, patientHistoryCap, 0)
	if err != nil {
		return nil, err
	}
	for _, v := range opdVisits {
		if err := s.appendHistory(ctx, hist, billing.SourceOPD, v.ID, v.ShardDay, v.VisitedAt, v.Status, v.Discount.Value()); err != nil {
			return nil, err
		}
	}

	admissions, _, err := s.ipd.ListByPatient(ctx, patientID, patientHistoryCap, 0)
	if err != nil {
		return nil, err
	}
	for _, a := range admissions {
		if err := s.appendHistory(ctx, hist, billing.SourceIPD, a.ID, a.ShardDay, a.AdmittedAt, a.Status, a.Discount.Value()); err != nil {
			return nil, err
		}
	}

	cases, _, err := s.cas.ListByPatient(ctx, patientID, patientHistoryCap, 0)
	if err != nil {
		return nil, err
	}
	for _, cs := range cases {
		if err := s.appendHistory(ctx, hist, billing.SourceCasualty, cs.ID, cs.ShardDay, cs.ArrivedAt, cs.Status, cs.Discount.Value()); err != nil {
			return nil, err
		}
	}

	return hist, nil
}

func (s *Service) appendHistory(ctx context.Context, hist *PatientHistory, src billing.VisitSource, visitID uuid.UUID, shardDay, visitedAt time.Time, status string, discount float64) error {
	services, payments, err := ledger.LoadBilling(ctx, s.ledger, src, visitID, shardDay)
	if err != nil {
		return err
	}
	fin := billing.Reconcile(services, payments, discount)
	hist.Visits = append(hist.Visits, HistoryEntry{
		VisitID:    visitID.String(),
		Source:     src,
		Status:     status,
		VisitedAt:  visitedAt,
		Financials: fin,
	})
	hist.TotalCharges += fin.GrossCharges
	hist.TotalPaid += fin.NetPaid
	hist.TotalRefunds += fin.TotalRefunds
	hist.TotalDue += fin.Due()
	return nil
}
