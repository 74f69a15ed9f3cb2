package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table. UHID is the hospital-wide patient
// number printed on cards and used by the front desk ("MF000123").
type Patient struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	UHID      string     `db:"uhid" json:"uhid"`
	Name      string     `db:"name" json:"name"`
	Gender    string     `db:"gender" json:"gender"`
	AgeYears  *int       `db:"age_years" json:"age_years,omitempty"`
	DOB       *time.Time `db:"dob" json:"dob,omitempty"`
	Phone     *string    `db:"phone" json:"phone,omitempty"`
	Address   *string    `db:"address" json:"address,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}
