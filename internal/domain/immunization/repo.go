package immunization

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, im *Immunization) error
	GetByID(ctx context.Context, id uuid.UUID) (*Immunization, error)
	Update(ctx context.Context, im *Immunization) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Immunization, int, error)
	ListDueBefore(ctx context.Context, patientID uuid.UUID, by time.Time) ([]*Immunization, error)
}
