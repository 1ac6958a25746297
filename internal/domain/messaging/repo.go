package messaging

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, m *Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*Message, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Message, int, error)
	List(ctx context.Context, limit, offset int) ([]*Message, int, error)
}
