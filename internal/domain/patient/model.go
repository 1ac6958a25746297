package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table.
type Patient struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	FirstName      string     `db:"first_name" json:"first_name"`
	LastName       string     `db:"last_name" json:"last_name"`
	DateOfBirth    *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Gender         *string    `db:"gender" json:"gender,omitempty"`
	Phone          *string    `db:"phone" json:"phone,omitempty"`
	Email          *string    `db:"email" json:"email,omitempty"`
	Allergies      *string    `db:"allergies" json:"allergies,omitempty"`
	MedicalHistory *string    `db:"medical_history" json:"medical_history,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// FullName returns "FirstName LastName" for display and message templates.
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Age returns the patient's age in whole years at the given time, or -1 when
// the date of birth is unknown.
func (p *Patient) Age(at time.Time) int {
	if p.DateOfBirth == nil {
		return -1
	}
	years := at.Year() - p.DateOfBirth.Year()
	anniversary := p.DateOfBirth.AddDate(years, 0, 0)
	if anniversary.After(at) {
		years--
	}
	return years
}
