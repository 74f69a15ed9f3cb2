package billing

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func visitOn(t time.Time, gross, paid float64) Visit {
	ts := t
	return Visit{
		PatientID: "MF-1",
		VisitID:   "V-1",
		Source:    SourceOPD,
		Services:  []ServiceCharge{charge(gross)},
		Payments:  []Payment{payment(paid, KindDeposit)},
		VisitedAt: &ts,
	}
}

func TestAggregateEmpty(t *testing.T) {
	window := DateRange{From: day(2024, 3, 1), To: day(2024, 3, 3)}
	stats := Aggregate(nil, window)
	if stats.VisitCount != 0 || stats.NetRevenue != 0 || stats.PendingAmount != 0 {
		t.Errorf("expected zero totals, got %+v", stats)
	}
	if len(stats.Series) != 3 {
		t.Errorf("expected 3 day buckets, got %d", len(stats.Series))
	}
	if stats.BusiestDay != nil {
		t.Error("expected no busiest day for empty input")
	}
}

func TestAggregateTotals(t *testing.T) {
	window := DateRange{From: day(2024, 3, 1), To: day(2024, 3, 2)}
	visits := []Visit{
		visitOn(day(2024, 3, 1), 5000, 3000),
		visitOn(day(2024, 3, 2), 2000, 2500),
	}
	visits[0].Discount = 500

	stats := Aggregate(visits, window)
	if stats.VisitCount != 2 {
		t.Errorf("expected 2 visits, got %d", stats.VisitCount)
	}
	// (5000-500) + 2000
	if stats.NetRevenue != 6500 {
		t.Errorf("expected net revenue 6500, got %v", stats.NetRevenue)
	}
	// first visit due 1500, second overpaid (clamped to 0)
	if stats.PendingAmount != 1500 {
		t.Errorf("expected pending 1500, got %v", stats.PendingAmount)
	}
	if stats.Collected.Cash != 5500 {
		t.Errorf("expected cash collected 5500, got %v", stats.Collected.Cash)
	}
}

func TestAggregateNetRevenueIdentityWithoutPayments(t *testing.T) {
	window := DateRange{From: day(2024, 3, 1), To: day(2024, 3, 1)}
	visits := []Visit{
		{Services: []ServiceCharge{charge(1000), charge(250)}, Discount: 100},
		{Services: []ServiceCharge{charge(400)}},
	}
	stats := Aggregate(visits, window)
	if stats.NetRevenue != 1550 {
		t.Errorf("expected net revenue 1550, got %v", stats.NetRevenue)
	}
	if stats.PendingAmount != stats.NetRevenue {
		t.Errorf("with no payments pending must equal net revenue, got %v", stats.PendingAmount)
	}
}

func TestAggregateMethodBreakdown(t *testing.T) {
	window := DateRange{From: day(2024, 3, 1), To: day(2024, 3, 1)}
	visits := []Visit{{
		Services: []ServiceCharge{charge(4000)},
		Payments: []Payment{
			{Amount: 2000, PaymentType: MethodCash, Kind: KindDeposit},
			{Amount: 1500, PaymentType: MethodOnline, Kind: KindAdvance},
			{Amount: 500, PaymentType: MethodOnline, Kind: KindRefund},
		},
	}}
	stats := Aggregate(visits, window)
	if stats.Collected.Cash != 2000 {
		t.Errorf("expected cash 2000, got %v", stats.Collected.Cash)
	}
	if stats.Collected.Online != 1000 {
		t.Errorf("expected online 1000 after refund, got %v", stats.Collected.Online)
	}
	if stats.Refunds.Online != 500 {
		t.Errorf("expected online refunds 500, got %v", stats.Refunds.Online)
	}
	if stats.Refunds.Cash != 0 {
		t.Errorf("expected no cash refunds, got %v", stats.Refunds.Cash)
	}
	if stats.TotalRefunds != 500 {
		t.Errorf("expected total refunds 500, got %v", stats.TotalRefunds)
	}
}

func TestAggregateSeriesExactDayMatch(t *testing.T) {
	window := DateRange{From: day(2024, 3, 1), To: day(2024, 3, 3)}
	late := time.Date(2024, 3, 2, 23, 45, 0, 0, time.UTC)
	outside := day(2024, 2, 28)
	visits := []Visit{
		visitOn(late, 1000, 1000),
		visitOn(outside, 700, 0),
	}
	stats := Aggregate(visits, window)

	// Both visits count toward totals, only the in-window one is bucketed.
	if stats.VisitCount != 2 {
		t.Errorf("expected 2 visits in totals, got %d", stats.VisitCount)
	}
	if stats.Series[1].VisitCount != 1 {
		t.Errorf("expected 1 visit on Mar 2, got %d", stats.Series[1].VisitCount)
	}
	if stats.Series[1].GrossCharges != 1000 {
		t.Errorf("expected gross 1000 on Mar 2, got %v", stats.Series[1].GrossCharges)
	}
	if stats.Series[0].VisitCount != 0 || stats.Series[2].VisitCount != 0 {
		t.Error("expected empty buckets on Mar 1 and Mar 3")
	}
}

func TestAggregateMissingTimestampExcludedFromSeries(t *testing.T) {
	window := DateRange{From: day(2024, 3, 1), To: day(2024, 3, 1)}
	visits := []Visit{{
		Services: []ServiceCharge{charge(900)},
	}}
	stats := Aggregate(visits, window)
	if stats.VisitCount != 1 {
		t.Errorf("timestamp-less visit must still count in totals, got %d", stats.VisitCount)
	}
	if stats.Series[0].VisitCount != 0 {
		t.Errorf("timestamp-less visit must not appear in series, got %d", stats.Series[0].VisitCount)
	}
}

func TestAggregateBusiestDayFirstTieWins(t *testing.T) {
	window := DateRange{From: day(2024, 3, 1), To: day(2024, 3, 2)}
	visits := []Visit{
		visitOn(day(2024, 3, 1), 100, 0),
		visitOn(day(2024, 3, 2), 100, 0),
	}
	stats := Aggregate(visits, window)
	if stats.BusiestDay == nil {
		t.Fatal("expected a busiest day")
	}
	if !stats.BusiestDay.Day.Equal(day(2024, 3, 1)) {
		t.Errorf("tie must go to the first day, got %v", stats.BusiestDay.Day)
	}
}

func TestAggregateRevenueByDoctor(t *testing.T) {
	window := DateRange{From: day(2024, 3, 1), To: day(2024, 3, 1)}
	id := "doc-42"
	visits := []Visit{{
		Services: []ServiceCharge{
			{ServiceName: "Consult", Amount: 600, DoctorName: &id},
			{ServiceName: "Dressing", Amount: 150},
		},
	}}
	resolve := func(got string) string {
		if got == "doc-42" {
			return "Dr. Mehta"
		}
		return got
	}
	stats := AggregateWithDoctors(visits, window, resolve)
	if stats.RevenueByDoctor["Dr. Mehta"] != 600 {
		t.Errorf("expected 600 for Dr. Mehta, got %v", stats.RevenueByDoctor["Dr. Mehta"])
	}
	if len(stats.RevenueByDoctor) != 1 {
		t.Errorf("expected exactly one doctor entry, got %d", len(stats.RevenueByDoctor))
	}
}

func TestDateRangeDays(t *testing.T) {
	r := DateRange{From: time.Date(2024, 3, 1, 18, 30, 0, 0, time.UTC), To: time.Date(2024, 3, 3, 2, 0, 0, 0, time.UTC)}
	days := r.Days()
	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	if !days[0].Equal(day(2024, 3, 1)) || !days[2].Equal(day(2024, 3, 3)) {
		t.Errorf("unexpected day normalization: %v", days)
	}
	if inverted := (DateRange{From: day(2024, 3, 3), To: day(2024, 3, 1)}).Days(); inverted != nil {
		t.Errorf("inverted range must yield no days, got %v", inverted)
	}
}
