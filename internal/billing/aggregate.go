package billing

import "time"

// VisitSource identifies which intake flow created a visit.
type VisitSource string

const (
	SourceOPD      VisitSource = "opd"
	SourceIPD      VisitSource = "ipd"
	SourceCasualty VisitSource = "casualty"
)

// Visit is the engine-facing shape of one visit: identity, raw ledgers and
// the timestamp used for day bucketing. The record assembler builds these
// from the date-sharded store; the aggregator never touches storage.
type Visit struct {
	PatientID string
	VisitID   string
	Source    VisitSource
	Services  []ServiceCharge
	Payments  []Payment
	Discount  Amount
	VisitedAt *time.Time
	Status    string
}

// DateRange is an inclusive reporting window of calendar days.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Days lists every calendar day in the range, normalized to midnight UTC.
func (r DateRange) Days() []time.Time {
	from := Day(r.From)
	to := Day(r.To)
	if to.Before(from) {
		return nil
	}
	var days []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Day normalizes a timestamp to its calendar date (midnight UTC).
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MethodTotals splits an amount by payment method.
type MethodTotals struct {
	Cash   float64 `json:"cash"`
	Online float64 `json:"online"`
}

func (mt *MethodTotals) add(method PaymentMethod, v float64) {
	switch method {
	case MethodOnline:
		mt.Online += v
	default:
		mt.Cash += v
	}
}

// DayBucket is one point of the dashboard time series.
type DayBucket struct {
	Day          time.Time `json:"day"`
	VisitCount   int       `json:"visit_count"`
	GrossCharges float64   `json:"gross_charges"`
	NetPaid      float64   `json:"net_paid"`
}

// DashboardStats is the cross-visit summary consumed by the dashboard and
// date-range reports.
type DashboardStats struct {
	VisitCount      int                `json:"visit_count"`
	NetRevenue      float64            `json:"net_revenue"`
	PendingAmount   float64            `json:"pending_amount"`
	TotalRefunds    float64            `json:"total_refunds"`
	Collected       MethodTotals       `json:"collected"`
	Refunds         MethodTotals       `json:"refunds"`
	RevenueByDoctor map[string]float64 `json:"revenue_by_doctor,omitempty"`
	Series          []DayBucket        `json:"series,omitempty"`
	BusiestDay      *DayBucket         `json:"busiest_day,omitempty"`
}

// NameResolver maps a doctor identifier to a display name. Passed in
// explicitly so aggregation stays side-effect-free and testable.
type NameResolver func(id string) string

// Aggregate reconciles every visit and folds the results into DashboardStats
// for the given window. See AggregateWithDoctors for the resolver variant.
func Aggregate(visits []Visit, window DateRange) DashboardStats {
	return AggregateWithDoctors(visits, window, nil)
}

// AggregateWithDoctors is Aggregate with a doctor-name resolver applied to
// the per-doctor revenue breakdown.
//
// Fail-soft policy: a visit without a timestamp is excluded from the time
// series but still counted in the totals; no single malformed visit ever
// aborts aggregation. Ties for the busiest day go to the earlier day.
func AggregateWithDoctors(visits []Visit, window DateRange, resolve NameResolver) DashboardStats {
	stats := DashboardStats{
		RevenueByDoctor: make(map[string]float64),
	}

	days := window.Days()
	buckets := make([]DayBucket, len(days))
	index := make(map[time.Time]int, len(days))
	for i, d := range days {
		buckets[i] = DayBucket{Day: d}
		index[d] = i
	}

	for _, v := range visits {
		fin := Reconcile(v.Services, v.Payments, v.Discount.Value())

		stats.VisitCount++
		stats.NetRevenue += fin.GrossCharges - fin.Discount
		stats.PendingAmount += fin.Due()
		stats.TotalRefunds += fin.TotalRefunds

		for _, p := range v.Payments {
			amt := p.Amount.Value()
			if p.IsRefund() {
				stats.Collected.add(p.PaymentType, -amt)
				stats.Refunds.add(p.PaymentType, amt)
			} else {
				stats.Collected.add(p.PaymentType, amt)
			}
		}

		for _, sc := range v.Services {
			if sc.DoctorName == nil || *sc.DoctorName == "" {
				continue
			}
			name := *sc.DoctorName
			if resolve != nil {
				name = resolve(name)
			}
			stats.RevenueByDoctor[name] += sc.Amount.Value()
		}

		if v.VisitedAt == nil {
			continue
		}
		if i, ok := index[Day(*v.VisitedAt)]; ok {
			buckets[i].VisitCount++
			buckets[i].GrossCharges += fin.GrossCharges
			buckets[i].NetPaid += fin.NetPaid
		}
	}

	stats.Series = buckets
	for i := range buckets {
		if buckets[i].VisitCount == 0 {
			continue
		}
		if stats.BusiestDay == nil || buckets[i].VisitCount > stats.BusiestDay.VisitCount {
			b := buckets[i]
			stats.BusiestDay = &b
		}
	}

	if len(stats.RevenueByDoctor) == 0 {
		stats.RevenueByDoctor = nil
	}
	return stats
}
