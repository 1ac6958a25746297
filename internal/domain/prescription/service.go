package prescription

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var validStatuses = map[string]bool{
	"active":       true,
	"completed":    true,
	"discontinued": true,
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Prescribe(ctx context.Context, p *Prescription) error {
	if p.PatientID == uuid.Nil {
		return fmt.Errorf("patientId is required")
	}
	if p.Medication == "" {
		return fmt.Errorf("medication is required")
	}
	if p.Dosage == "" {
		return fmt.Errorf("dosage is required")
	}
	if p.Frequency == "" {
		return fmt.Errorf("frequency is required")
	}
	if p.Status == "" {
		p.Status = "active"
	}
	if !validStatuses[p.Status] {
		return fmt.Errorf("invalid status: %s", p.Status)
	}
	if p.StartDate.IsZero() {
		p.StartDate = time.Now()
	}
	if p.EndDate != nil && p.EndDate.Before(p.StartDate) {
		return fmt.Errorf("endDate must not precede startDate")
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, p *Prescription) error {
	if !validStatuses[p.Status] {
		return fmt.Errorf("invalid status: %s", p.Status)
	}
	return s.repo.Update(ctx, p)
}

func (s *Service) Discontinue(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	now := time.Now()
	p.Status = "discontinued"
	p.EndDate = &now
	return s.repo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Prescription, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) ActiveForPatient(ctx context.Context, patientID uuid.UUID) ([]*Prescription, error) {
	return s.repo.ListActiveByPatient(ctx, patientID)
}
