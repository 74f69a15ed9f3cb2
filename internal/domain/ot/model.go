package ot

import (
	"time"

	"github.com/google/uuid"
)

// Note maps to the ot_note table. One record per theatre procedure.
type Note struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	PatientID    uuid.UUID  `db:"patient_id" json:"patient_id"`
	AdmissionID  *uuid.UUID `db:"admission_id" json:"admission_id,omitempty"`
	SurgeonID    *uuid.UUID `db:"surgeon_id" json:"surgeon_id,omitempty"`
	Surgeon      string     `db:"surgeon" json:"surgeon"`
	Anaesthetist string     `db:"anaesthetist" json:"anaesthetist"`
	Procedure    string     `db:"procedure_name" json:"procedure"`
	Findings     *string    `db:"findings" json:"findings,omitempty"`
	StartedAt    time.Time  `db:"started_at" json:"started_at"`
	EndedAt      *time.Time `db:"ended_at" json:"ended_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}
