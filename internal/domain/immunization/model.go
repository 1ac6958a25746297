package immunization

import (
	"time"

	"github.com/google/uuid"
)

type Immunization struct {
	ID             uuid.UUID  `json:"id"`
	PatientID      uuid.UUID  `json:"patientId"`
	Vaccine        string     `json:"vaccine"`
	DoseNumber     int        `json:"doseNumber"`
	LotNumber      *string    `json:"lotNumber,omitempty"`
	Site           *string    `json:"site,omitempty"`
	Route          *string    `json:"route,omitempty"`
	AdministeredBy *string    `json:"administeredBy,omitempty"`
	AdministeredAt time.Time  `json:"administeredAt"`
	NextDoseDue    *time.Time `json:"nextDoseDue,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}
