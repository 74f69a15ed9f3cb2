package billing

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Amount is a currency value in rupees. Raw records written by front-desk
// operators sometimes carry amounts as numeric strings (or garbage), so
// decoding is lenient: numbers and numeric strings are accepted, anything
// else becomes 0. Decoding never fails.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*a = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			*a = 0
			return nil
		}
		s = strings.TrimSpace(str)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		*a = 0
		return nil
	}
	*a = Amount(v)
	return nil
}

// Value returns the amount as a non-negative float64. NaN, infinities and
// negative values (which only appear in corrupt data) count as 0 so that a
// single bad entry cannot poison a whole ledger fold.
func (a Amount) Value() float64 {
	v := float64(a)
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// PaymentMethod is how money changed hands.
type PaymentMethod string

const (
	MethodCash   PaymentMethod = "cash"
	MethodOnline PaymentMethod = "online"
)

// PaymentKind classifies a ledger entry. Deposits and advances are credits;
// a refund reverses prior credits and is recorded as a positive amount that
// contributes negatively to net paid.
type PaymentKind string

const (
	KindDeposit PaymentKind = "deposit"
	KindAdvance PaymentKind = "advance"
	KindRefund  PaymentKind = "refund"
)

// ServiceCharge is one billable item appended to a visit. Immutable once
// created.
type ServiceCharge struct {
	ServiceName string    `json:"service_name"`
	Type        string    `json:"type"`
	Amount      Amount    `json:"amount"`
	DoctorName  *string   `json:"doctor_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Payment is one append-only ledger entry against a visit.
type Payment struct {
	ID          string        `json:"id"`
	Amount      Amount        `json:"amount"`
	PaymentType PaymentMethod `json:"payment_type"`
	Kind        PaymentKind   `json:"kind"`
	Date        time.Time     `json:"date"`
	CreatedAt   time.Time     `json:"created_at"`
}

// IsRefund reports whether the entry reverses prior credits.
func (p Payment) IsRefund() bool { return p.Kind == KindRefund }
