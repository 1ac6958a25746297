package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Appointment maps to the appointment table.
type Appointment struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	PatientID      uuid.UUID  `db:"patient_id" json:"patient_id"`
	PractitionerID *uuid.UUID `db:"practitioner_id" json:"practitioner_id,omitempty"`
	ScheduledAt    time.Time  `db:"scheduled_at" json:"scheduled_at"`
	DurationMins   int        `db:"duration_mins" json:"duration_mins"`
	Reason         *string    `db:"reason" json:"reason,omitempty"`
	Status         string     `db:"status" json:"status"`
	Location       *string    `db:"location" json:"location,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}
