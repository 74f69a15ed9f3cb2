// Package billing is the shared reconciliation engine for visit finances.
//
// Services and payments are appended to a visit independently, over time, by
// different operators; every dashboard, report and export replays the same
// derivation from those raw ledgers instead of patching previously computed
// totals. The functions here are pure: no I/O, no shared state, identical
// inputs always produce identical outputs.
package billing

import "math"

// VisitFinancials is the normalized financial summary of one visit.
//
// RemainingBalance may legitimately be negative (over-payment, or a discount
// larger than the payable total); the UI presents that as "Refundable".
type VisitFinancials struct {
	GrossCharges     float64 `json:"gross_charges"`
	NetPaid          float64 `json:"net_paid"`
	TotalRefunds     float64 `json:"total_refunds"`
	Discount         float64 `json:"discount"`
	RemainingBalance float64 `json:"remaining_balance"`
}

// Refundable reports whether the visit has been paid more than is owed.
func (f VisitFinancials) Refundable() bool { return f.RemainingBalance < 0 }

// Due returns the outstanding amount, 0 when nothing is owed.
func (f VisitFinancials) Due() float64 {
	if f.RemainingBalance > 0 {
		return f.RemainingBalance
	}
	return 0
}

// Reconcile folds a visit's raw service and payment ledgers into a
// VisitFinancials.
//
//	grossCharges     = Σ service amounts
//	netPaid          = Σ credit amounts − Σ refund amounts
//	remainingBalance = grossCharges − discount − netPaid
//
// A discount exceeding the payable total is accepted without clamping; the
// engine does not judge business plausibility, it only derives. Amounts are
// plain rupee values with at most two decimals, so float64 summation error
// stays far below half a paisa for any realistic ledger size.
func Reconcile(services []ServiceCharge, payments []Payment, discount float64) VisitFinancials {
	if math.IsNaN(discount) || discount < 0 {
		discount = 0
	}

	var gross float64
	for _, sc := range services {
		gross += sc.Amount.Value()
	}

	var credits, refunds float64
	for _, p := range payments {
		if p.IsRefund() {
			refunds += p.Amount.Value()
		} else {
			credits += p.Amount.Value()
		}
	}

	netPaid := credits - refunds
	return VisitFinancials{
		GrossCharges:     gross,
		NetPaid:          netPaid,
		TotalRefunds:     refunds,
		Discount:         discount,
		RemainingBalance: gross - discount - netPaid,
	}
}
