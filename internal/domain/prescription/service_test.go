package prescription

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	items map[uuid.UUID]*Prescription
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: make(map[uuid.UUID]*Prescription)}
}

func (m *mockRepo) Create(_ context.Context, p *Prescription) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.items[p.ID] = p
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Prescription, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (m *mockRepo) Update(_ context.Context, p *Prescription) error {
	m.items[p.ID] = p
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.items, id)
	return nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*Prescription, int, error) {
	var out []*Prescription
	for _, p := range m.items {
		if p.PatientID == patientID {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}

func (m *mockRepo) ListActiveByPatient(_ context.Context, patientID uuid.UUID) ([]*Prescription, error) {
	now := time.Now()
	var out []*Prescription
	for _, p := range m.items {
		if p.PatientID == patientID && p.Active(now) {
			out = append(out, p)
		}
	}
	return out, nil
}

func TestPrescribeDefaults(t *testing.T) {
	svc := NewService(newMockRepo())
	p := &Prescription{
		PatientID:  uuid.New(),
		Medication: "Amoxicillin",
		Dosage:     "500mg",
		Frequency:  "3 times daily",
	}
	if err := svc.Prescribe(context.Background(), p); err != nil {
		t.Fatalf("Prescribe failed: %v", err)
	}
	if p.Status != "active" {
		t.Errorf("expected default status active, got %s", p.Status)
	}
	if p.StartDate.IsZero() {
		t.Error("expected startDate to default to now")
	}
}

func TestPrescribeMissingFields(t *testing.T) {
	svc := NewService(newMockRepo())
	cases := []Prescription{
		{Medication: "Amoxicillin", Dosage: "500mg", Frequency: "tid"},
		{PatientID: uuid.New(), Dosage: "500mg", Frequency: "tid"},
		{PatientID: uuid.New(), Medication: "Amoxicillin", Frequency: "tid"},
		{PatientID: uuid.New(), Medication: "Amoxicillin", Dosage: "500mg"},
	}
	for i := range cases {
		if err := svc.Prescribe(context.Background(), &cases[i]); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestPrescribeEndBeforeStart(t *testing.T) {
	svc := NewService(newMockRepo())
	start := time.Now()
	end := start.Add(-24 * time.Hour)
	p := &Prescription{
		PatientID:  uuid.New(),
		Medication: "Ibuprofen",
		Dosage:     "400mg",
		Frequency:  "as needed",
		StartDate:  start,
		EndDate:    &end,
	}
	if err := svc.Prescribe(context.Background(), p); err == nil {
		t.Fatal("expected error for endDate before startDate")
	}
}

func TestDiscontinue(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	p := &Prescription{
		PatientID:  uuid.New(),
		Medication: "Metformin",
		Dosage:     "500mg",
		Frequency:  "twice daily",
	}
	if err := svc.Prescribe(context.Background(), p); err != nil {
		t.Fatalf("Prescribe failed: %v", err)
	}
	if err := svc.Discontinue(context.Background(), p.ID); err != nil {
		t.Fatalf("Discontinue failed: %v", err)
	}
	got, _ := repo.GetByID(context.Background(), p.ID)
	if got.Status != "discontinued" {
		t.Errorf("expected status discontinued, got %s", got.Status)
	}
	if got.EndDate == nil {
		t.Error("expected endDate to be set")
	}
}

func TestActiveForPatientExcludesExpired(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	patientID := uuid.New()
	past := time.Now().Add(-time.Hour)

	active := &Prescription{ID: uuid.New(), PatientID: patientID, Status: "active", StartDate: time.Now()}
	expired := &Prescription{ID: uuid.New(), PatientID: patientID, Status: "active", StartDate: past, EndDate: &past}
	stopped := &Prescription{ID: uuid.New(), PatientID: patientID, Status: "discontinued", StartDate: past}
	for _, p := range []*Prescription{active, expired, stopped} {
		repo.items[p.ID] = p
	}

	got, err := svc.ActiveForPatient(context.Background(), patientID)
	if err != nil {
		t.Fatalf("ActiveForPatient failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != active.ID {
		t.Errorf("expected only the active prescription, got %d", len(got))
	}
}
