package mortality

import (
	"time"

	"github.com/google/uuid"
)

// Report maps to the mortality_report table.
type Report struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	PatientID   uuid.UUID  `db:"patient_id" json:"patient_id"`
	DoctorID    *uuid.UUID `db:"doctor_id" json:"doctor_id,omitempty"`
	DiedAt      time.Time  `db:"died_at" json:"died_at"`
	Cause       string     `db:"cause" json:"cause"`
	Place       string     `db:"place" json:"place"`
	BroughtDead bool       `db:"brought_dead" json:"brought_dead"`
	Note        *string    `db:"note" json:"note,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}
