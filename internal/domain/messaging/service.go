package messaging

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var validChannels = map[string]bool{
	"sms":    true,
	"email":  true,
	"portal": true,
}

type Service struct {
	repo      Repository
	snapshots *SnapshotBuilder
}

func NewService(repo Repository, snapshots *SnapshotBuilder) *Service {
	return &Service{repo: repo, snapshots: snapshots}
}

func (s *Service) Send(ctx context.Context, m *Message) error {
	if m.PatientID == uuid.Nil {
		return fmt.Errorf("patientId is required")
	}
	if m.Body == "" {
		return fmt.Errorf("body is required")
	}
	if m.Channel == "" {
		m.Channel = "portal"
	}
	if !validChannels[m.Channel] {
		return fmt.Errorf("invalid channel: %s", m.Channel)
	}
	m.Status = "sent"
	now := time.Now()
	m.SentAt = &now
	return s.repo.Create(ctx, m)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Message, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Message, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Message, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// SuggestForPatient builds a fresh clinical snapshot and runs the trigger
// rules against it.
func (s *Service) SuggestForPatient(ctx context.Context, patientID uuid.UUID) ([]Suggestion, error) {
	snap, err := s.snapshots.Build(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return SuggestTemplates(snap, snap.GeneratedAt), nil
}

// FillForPatient fills a catalog template against the patient's current
// clinical snapshot.
func (s *Service) FillForPatient(ctx context.Context, patientID uuid.UUID, templateID string) (string, error) {
	t, ok := TemplateByID(templateID)
	if !ok {
		return "", fmt.Errorf("unknown template: %s", templateID)
	}
	snap, err := s.snapshots.Build(ctx, patientID)
	if err != nil {
		return "", err
	}
	return FillTemplate(t.Body, snap), nil
}
