package casualty

import (
	"time"

	"github.com/google/uuid"

	"github.com/infisparks/medfordhrms-sub001/internal/billing"
)

// Case maps to the casualty_case table. MLC is a medico-legal case; those
// records cannot be deleted once filed.
type Case struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	PatientID     uuid.UUID      `db:"patient_id" json:"patient_id"`
	DoctorID      *uuid.UUID     `db:"doctor_id" json:"doctor_id,omitempty"`
	TriageLevel   string         `db:"triage_level" json:"triage_level"`
	ModeOfArrival string         `db:"mode_of_arrival" json:"mode_of_arrival"`
	MLC           bool           `db:"mlc" json:"mlc"`
	IncidentNote  *string        `db:"incident_note" json:"incident_note,omitempty"`
	ShardDay      time.Time      `db:"shard_day" json:"shard_day"`
	ArrivedAt     time.Time      `db:"arrived_at" json:"arrived_at"`
	Status        string         `db:"status" json:"status"`
	Discount      billing.Amount `db:"discount" json:"discount"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}
