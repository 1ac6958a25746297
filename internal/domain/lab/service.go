package lab

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var validPriorities = map[string]bool{
	"routine": true,
	"urgent":  true,
	"stat":    true,
}

var validOrderStatuses = map[string]bool{
	"ordered":    true,
	"collected":  true,
	"in-process": true,
	"completed":  true,
	"cancelled":  true,
}

type Service struct {
	orders  OrderRepository
	results ResultRepository
}

func NewService(orders OrderRepository, results ResultRepository) *Service {
	return &Service{orders: orders, results: results}
}

func (s *Service) CreateOrder(ctx context.Context, o *Order) error {
	if o.PatientID == uuid.Nil {
		return fmt.Errorf("patientId is required")
	}
	if o.TestName == "" {
		return fmt.Errorf("testName is required")
	}
	if o.Priority == "" {
		o.Priority = "routine"
	}
	if !validPriorities[o.Priority] {
		return fmt.Errorf("invalid priority: %s", o.Priority)
	}
	if o.Status == "" {
		o.Status = "ordered"
	}
	if !validOrderStatuses[o.Status] {
		return fmt.Errorf("invalid status: %s", o.Status)
	}
	if o.OrderedAt.IsZero() {
		o.OrderedAt = time.Now()
	}
	return s.orders.Create(ctx, o)
}

func (s *Service) GetOrder(ctx context.Context, id uuid.UUID) (*Order, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *Service) UpdateOrder(ctx context.Context, o *Order) error {
	if !validOrderStatuses[o.Status] {
		return fmt.Errorf("invalid status: %s", o.Status)
	}
	if !validPriorities[o.Priority] {
		return fmt.Errorf("invalid priority: %s", o.Priority)
	}
	return s.orders.Update(ctx, o)
}

func (s *Service) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return s.orders.Delete(ctx, id)
}

func (s *Service) ListOrdersByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Order, int, error) {
	return s.orders.ListByPatient(ctx, patientID, limit, offset)
}

// RecordResult stores a result and marks the originating order completed when linked.
func (s *Service) RecordResult(ctx context.Context, res *Result) error {
	if res.PatientID == uuid.Nil {
		return fmt.Errorf("patientId is required")
	}
	if res.TestName == "" {
		return fmt.Errorf("testName is required")
	}
	if res.Value == "" {
		return fmt.Errorf("value is required")
	}
	if res.ResultDate.IsZero() {
		res.ResultDate = time.Now()
	}
	if err := s.results.Create(ctx, res); err != nil {
		return err
	}
	if res.OrderID != nil {
		o, err := s.orders.GetByID(ctx, *res.OrderID)
		if err == nil && o.Status != "completed" {
			o.Status = "completed"
			if err := s.orders.Update(ctx, o); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Service) GetResult(ctx context.Context, id uuid.UUID) (*Result, error) {
	return s.results.GetByID(ctx, id)
}

func (s *Service) ListResultsByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Result, int, error) {
	return s.results.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) RecentResultsForPatient(ctx context.Context, patientID uuid.UUID, since time.Time, limit int) ([]*Result, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.results.ListRecentByPatient(ctx, patientID, since, limit)
}
