package lab

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type OrderRepository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	Update(ctx context.Context, o *Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Order, int, error)
}

type ResultRepository interface {
	Create(ctx context.Context, res *Result) error
	GetByID(ctx context.Context, id uuid.UUID) (*Result, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Result, int, error)
	ListRecentByPatient(ctx context.Context, patientID uuid.UUID, since time.Time, limit int) ([]*Result, error)
}
