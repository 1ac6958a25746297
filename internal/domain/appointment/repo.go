package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error)
	// ListUpcomingByPatient returns scheduled appointments at or after "from",
	// soonest first.
	ListUpcomingByPatient(ctx context.Context, patientID uuid.UUID, from time.Time, limit int) ([]*Appointment, error)
}
