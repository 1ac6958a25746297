package immunization

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Record(ctx context.Context, im *Immunization) error {
	if im.PatientID == uuid.Nil {
		return fmt.Errorf("patientId is required")
	}
	if im.Vaccine == "" {
		return fmt.Errorf("vaccine is required")
	}
	if im.DoseNumber <= 0 {
		im.DoseNumber = 1
	}
	if im.AdministeredAt.IsZero() {
		im.AdministeredAt = time.Now()
	}
	if im.NextDoseDue != nil && im.NextDoseDue.Before(im.AdministeredAt) {
		return fmt.Errorf("nextDoseDue must not precede administeredAt")
	}
	return s.repo.Create(ctx, im)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Immunization, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, im *Immunization) error {
	if im.Vaccine == "" {
		return fmt.Errorf("vaccine is required")
	}
	return s.repo.Update(ctx, im)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Immunization, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

// DueForPatient returns doses whose next administration is due within the window.
func (s *Service) DueForPatient(ctx context.Context, patientID uuid.UUID, window time.Duration) ([]*Immunization, error) {
	return s.repo.ListDueBefore(ctx, patientID, time.Now().Add(window))
}
