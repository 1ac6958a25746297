package messaging

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	items map[uuid.UUID]*Message
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: make(map[uuid.UUID]*Message)}
}

func (m *mockRepo) Create(_ context.Context, msg *Message) error {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	m.items[msg.ID] = msg
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Message, error) {
	msg, ok := m.items[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return msg, nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*Message, int, error) {
	var out []*Message
	for _, msg := range m.items {
		if msg.PatientID == patientID {
			out = append(out, msg)
		}
	}
	return out, len(out), nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Message, int, error) {
	var out []*Message
	for _, msg := range m.items {
		out = append(out, msg)
	}
	return out, len(out), nil
}

type stubSources struct {
	demo      Demographics
	demoErr   error
	appts     []AppointmentInfo
	rx        []PrescriptionInfo
	labs      []LabResultInfo
	lastVisit *VisitInfo
}

func (s *stubSources) Demographics(context.Context, uuid.UUID) (Demographics, error) {
	return s.demo, s.demoErr
}
func (s *stubSources) Upcoming(context.Context, uuid.UUID, time.Time, int) ([]AppointmentInfo, error) {
	return s.appts, nil
}
func (s *stubSources) Active(context.Context, uuid.UUID) ([]PrescriptionInfo, error) {
	return s.rx, nil
}
func (s *stubSources) Recent(context.Context, uuid.UUID, time.Time, int) ([]LabResultInfo, error) {
	return s.labs, nil
}
func (s *stubSources) Latest(context.Context, uuid.UUID) (*VisitInfo, error) {
	if s.lastVisit == nil {
		return nil, errors.New("not found")
	}
	return s.lastVisit, nil
}

func newTestService(src *stubSources) (*Service, *mockRepo) {
	repo := newMockRepo()
	builder := NewSnapshotBuilder(src, src, src, src, src)
	return NewService(repo, builder), repo
}

func TestSendDefaults(t *testing.T) {
	svc, repo := newTestService(&stubSources{})
	m := &Message{PatientID: uuid.New(), Body: "hello"}
	if err := svc.Send(context.Background(), m); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if m.Channel != "portal" {
		t.Errorf("expected default channel portal, got %s", m.Channel)
	}
	if m.Status != "sent" || m.SentAt == nil {
		t.Error("expected message marked sent with a timestamp")
	}
	if _, ok := repo.items[m.ID]; !ok {
		t.Error("expected message to be stored")
	}
}

func TestSendValidation(t *testing.T) {
	svc, _ := newTestService(&stubSources{})
	if err := svc.Send(context.Background(), &Message{Body: "x"}); err == nil {
		t.Error("expected error for missing patientId")
	}
	if err := svc.Send(context.Background(), &Message{PatientID: uuid.New()}); err == nil {
		t.Error("expected error for missing body")
	}
	if err := svc.Send(context.Background(), &Message{PatientID: uuid.New(), Body: "x", Channel: "fax"}); err == nil {
		t.Error("expected error for invalid channel")
	}
}

func TestSuggestForPatientBuildsSnapshot(t *testing.T) {
	src := &stubSources{
		demo:  Demographics{FirstName: "Maria", LastName: "Santos"},
		appts: []AppointmentInfo{{ScheduledAt: time.Now().Add(48 * time.Hour)}},
	}
	svc, _ := newTestService(src)
	got, err := svc.SuggestForPatient(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("SuggestForPatient failed: %v", err)
	}
	if len(got) != 1 || got[0].TemplateID != "appointment_reminder" {
		t.Fatalf("expected appointment reminder suggestion, got %+v", got)
	}
	if !strings.Contains(got[0].FilledBody, "Maria") {
		t.Errorf("expected filled body to use patient name, got %q", got[0].FilledBody)
	}
}

func TestSuggestForPatientUnknownPatient(t *testing.T) {
	svc, _ := newTestService(&stubSources{demoErr: errors.New("not found")})
	if _, err := svc.SuggestForPatient(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected error when patient lookup fails")
	}
}

func TestFillForPatient(t *testing.T) {
	src := &stubSources{
		demo: Demographics{FirstName: "Maria"},
		rx:   []PrescriptionInfo{{Medication: "Metformin", Dosage: "500mg", Frequency: "twice daily"}},
	}
	svc, _ := newTestService(src)
	body, err := svc.FillForPatient(context.Background(), uuid.New(), "medication_instructions")
	if err != nil {
		t.Fatalf("FillForPatient failed: %v", err)
	}
	if !strings.Contains(body, "Metformin") || strings.Contains(body, "{") {
		t.Errorf("unexpected filled body: %q", body)
	}
}

func TestFillForPatientUnknownTemplate(t *testing.T) {
	svc, _ := newTestService(&stubSources{})
	if _, err := svc.FillForPatient(context.Background(), uuid.New(), "nope"); err == nil {
		t.Fatal("expected error for unknown template")
	}
}
