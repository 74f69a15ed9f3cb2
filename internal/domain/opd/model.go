package opd

import (
	"time"

	"github.com/google/uuid"

	"github.com/infisparks/medfordhrms-sub001/internal/billing"
)

// Visit maps to the opd_visit table.
//
// ShardDay is the calendar day the visit was created. Ledger rows (services
// and payments) are stored under the same day key, so reconstructing a
// visit's finances always scans by shard day, never by event date.
type Visit struct {
	ID        uuid.UUID      `db:"id" json:"id"`
	PatientID uuid.UUID      `db:"patient_id" json:"patient_id"`
	DoctorID  *uuid.UUID     `db:"doctor_id" json:"doctor_id,omitempty"`
	ShardDay  time.Time      `db:"shard_day" json:"shard_day"`
	VisitedAt time.Time      `db:"visited_at" json:"visited_at"`
	Status    string         `db:"status" json:"status"`
	Discount  billing.Amount `db:"discount" json:"discount"`
	Note      *string        `db:"note" json:"note,omitempty"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}
