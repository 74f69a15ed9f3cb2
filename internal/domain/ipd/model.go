package ipd

import (
	"time"

	"github.com/google/uuid"

	"github.com/infisparks/medfordhrms-sub001/internal/billing"
)

// Admission maps to the ipd_admission table. The shard day is the calendar
// day of admission; every ledger row for the stay, including payments made
// weeks later, is stored under that key.
type Admission struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	PatientID    uuid.UUID      `db:"patient_id" json:"patient_id"`
	DoctorID     *uuid.UUID     `db:"doctor_id" json:"doctor_id,omitempty"`
	Ward         string         `db:"ward" json:"ward"`
	BedNumber    string         `db:"bed_number" json:"bed_number"`
	ShardDay     time.Time      `db:"shard_day" json:"shard_day"`
	AdmittedAt   time.Time      `db:"admitted_at" json:"admitted_at"`
	DischargedAt *time.Time     `db:"discharged_at" json:"discharged_at,omitempty"`
	Status       string         `db:"status" json:"status"`
	Discount     billing.Amount `db:"discount" json:"discount"`
	Note         *string        `db:"note" json:"note,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}
