package doctor

import (
	"time"

	"github.com/google/uuid"

	"github.com/infisparks/medfordhrms-sub001/internal/billing"
)

// Doctor maps to the doctor table.
type Doctor struct {
	ID             uuid.UUID      `db:"id" json:"id"`
	Name           string         `db:"name" json:"name"`
	Department     string         `db:"department" json:"department"`
	Specialization *string        `db:"specialization" json:"specialization,omitempty"`
	OPDCharge      billing.Amount `db:"opd_charge" json:"opd_charge"`
	Phone          *string        `db:"phone" json:"phone,omitempty"`
	Active         bool           `db:"active" json:"active"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}
