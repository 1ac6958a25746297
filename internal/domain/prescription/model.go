package prescription

import (
	"time"

	"github.com/google/uuid"
)

type Prescription struct {
	ID           uuid.UUID  `json:"id"`
	PatientID    uuid.UUID  `json:"patientId"`
	VisitID      *uuid.UUID `json:"visitId,omitempty"`
	Medication   string     `json:"medication"`
	Dosage       string     `json:"dosage"`
	Frequency    string     `json:"frequency"`
	Duration     string     `json:"duration,omitempty"`
	Route        string     `json:"route,omitempty"`
	Instructions *string    `json:"instructions,omitempty"`
	PrescribedBy *string    `json:"prescribedBy,omitempty"`
	Status       string     `json:"status"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Active reports whether the prescription is currently in effect.
func (p *Prescription) Active(now time.Time) bool {
	if p.Status != "active" {
		return false
	}
	if p.EndDate != nil && p.EndDate.Before(now) {
		return false
	}
	return true
}
