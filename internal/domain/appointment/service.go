package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var validStatuses = map[string]bool{
	"scheduled": true,
	"completed": true,
	"cancelled": true,
	"no-show":   true,
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Schedule(ctx context.Context, a *Appointment) error {
	if a.PatientID == uuid.Nil {
		return fmt.Errorf("patientId is required")
	}
	if a.ScheduledAt.IsZero() {
		return fmt.Errorf("scheduledAt is required")
	}
	if a.DurationMins <= 0 {
		a.DurationMins = 30
	}
	if a.Status == "" {
		a.Status = "scheduled"
	}
	if !validStatuses[a.Status] {
		return fmt.Errorf("invalid status: %s", a.Status)
	}
	return s.repo.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, a *Appointment) error {
	if !validStatuses[a.Status] {
		return fmt.Errorf("invalid status: %s", a.Status)
	}
	if a.DurationMins <= 0 {
		return fmt.Errorf("durationMins must be positive")
	}
	return s.repo.Update(ctx, a)
}

func (s *Service) Cancel(ctx context.Context, id uuid.UUID) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	a.Status = "cancelled"
	return s.repo.Update(ctx, a)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

// UpcomingForPatient returns scheduled appointments at or after now, soonest first.
func (s *Service) UpcomingForPatient(ctx context.Context, patientID uuid.UUID, now time.Time, limit int) ([]*Appointment, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.repo.ListUpcomingByPatient(ctx, patientID, now, limit)
}
