package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/infisparks/medfordhrms-sub001/internal/billing"
)

// ServiceCharge maps to the visit_service table. One billable item against a
// visit; immutable once written. Rows are keyed by the owning visit's shard
// day (the calendar day the visit was created), not by the day the service
// was rendered.
type ServiceCharge struct {
	ID          uuid.UUID           `db:"id" json:"id"`
	VisitType   billing.VisitSource `db:"visit_type" json:"visit_type"`
	VisitID     uuid.UUID           `db:"visit_id" json:"visit_id"`
	ShardDay    time.Time           `db:"shard_day" json:"shard_day"`
	ServiceName string              `db:"service_name" json:"service_name"`
	ServiceType string              `db:"service_type" json:"service_type"`
	Amount      billing.Amount      `db:"amount" json:"amount"`
	DoctorID    *uuid.UUID          `db:"doctor_id" json:"doctor_id,omitempty"`
	DoctorName  *string             `db:"doctor_name" json:"doctor_name,omitempty"`
	CreatedAt   time.Time           `db:"created_at" json:"created_at"`
}

// ToBilling converts the stored row into the engine's input shape.
func (s *ServiceCharge) ToBilling() billing.ServiceCharge {
	return billing.ServiceCharge{
		ServiceName: s.ServiceName,
		Type:        s.ServiceType,
		Amount:      s.Amount,
		DoctorName:  s.DoctorName,
		CreatedAt:   s.CreatedAt,
	}
}

// Payment maps to the visit_payment table. Append-only; refunds are stored
// as positive amounts with kind=refund.
type Payment struct {
	ID          uuid.UUID             `db:"id" json:"id"`
	VisitType   billing.VisitSource   `db:"visit_type" json:"visit_type"`
	VisitID     uuid.UUID             `db:"visit_id" json:"visit_id"`
	ShardDay    time.Time             `db:"shard_day" json:"shard_day"`
	Amount      billing.Amount        `db:"amount" json:"amount"`
	PaymentType billing.PaymentMethod `db:"payment_type" json:"payment_type"`
	Kind        billing.PaymentKind   `db:"kind" json:"kind"`
	PaidOn      time.Time             `db:"paid_on" json:"paid_on"`
	CreatedAt   time.Time             `db:"created_at" json:"created_at"`
}

// ToBilling converts the stored row into the engine's input shape.
func (p *Payment) ToBilling() billing.Payment {
	return billing.Payment{
		ID:          p.ID.String(),
		Amount:      p.Amount,
		PaymentType: p.PaymentType,
		Kind:        p.Kind,
		Date:        p.PaidOn,
		CreatedAt:   p.CreatedAt,
	}
}

var validPaymentKinds = map[billing.PaymentKind]bool{
	billing.KindDeposit: true, billing.KindAdvance: true, billing.KindRefund: true,
}

var validPaymentMethods = map[billing.PaymentMethod]bool{
	billing.MethodCash: true, billing.MethodOnline: true,
}

// ValidKind reports whether k is a known payment kind.
func ValidKind(k billing.PaymentKind) bool { return validPaymentKinds[k] }

// ValidMethod reports whether m is a known payment method.
func ValidMethod(m billing.PaymentMethod) bool { return validPaymentMethods[m] }
