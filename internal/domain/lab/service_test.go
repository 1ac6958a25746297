package lab

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockOrderRepo struct {
	items map[uuid.UUID]*Order
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{items: make(map[uuid.UUID]*Order)}
}

func (m *mockOrderRepo) Create(_ context.Context, o *Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	m.items[o.ID] = o
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*Order, error) {
	o, ok := m.items[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return o, nil
}

func (m *mockOrderRepo) Update(_ context.Context, o *Order) error {
	m.items[o.ID] = o
	return nil
}

func (m *mockOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.items, id)
	return nil
}

func (m *mockOrderRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*Order, int, error) {
	var out []*Order
	for _, o := range m.items {
		if o.PatientID == patientID {
			out = append(out, o)
		}
	}
	return out, len(out), nil
}

type mockResultRepo struct {
	items map[uuid.UUID]*Result
}

func newMockResultRepo() *mockResultRepo {
	return &mockResultRepo{items: make(map[uuid.UUID]*Result)}
}

func (m *mockResultRepo) Create(_ context.Context, res *Result) error {
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	m.items[res.ID] = res
	return nil
}

func (m *mockResultRepo) GetByID(_ context.Context, id uuid.UUID) (*Result, error) {
	res, ok := m.items[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return res, nil
}

func (m *mockResultRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*Result, int, error) {
	var out []*Result
	for _, res := range m.items {
		if res.PatientID == patientID {
			out = append(out, res)
		}
	}
	return out, len(out), nil
}

func (m *mockResultRepo) ListRecentByPatient(_ context.Context, patientID uuid.UUID, since time.Time, limit int) ([]*Result, error) {
	var out []*Result
	for _, res := range m.items {
		if res.PatientID == patientID && !res.ResultDate.Before(since) {
			out = append(out, res)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func newTestService() (*Service, *mockOrderRepo, *mockResultRepo) {
	orders := newMockOrderRepo()
	results := newMockResultRepo()
	return NewService(orders, results), orders, results
}

func TestCreateOrderDefaults(t *testing.T) {
	svc, _, _ := newTestService()
	o := &Order{PatientID: uuid.New(), TestName: "CBC"}
	if err := svc.CreateOrder(context.Background(), o); err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if o.Priority != "routine" {
		t.Errorf("expected default priority routine, got %s", o.Priority)
	}
	if o.Status != "ordered" {
		t.Errorf("expected default status ordered, got %s", o.Status)
	}
	if o.OrderedAt.IsZero() {
		t.Error("expected orderedAt to default to now")
	}
}

func TestCreateOrderInvalidPriority(t *testing.T) {
	svc, _, _ := newTestService()
	o := &Order{PatientID: uuid.New(), TestName: "CBC", Priority: "whenever"}
	if err := svc.CreateOrder(context.Background(), o); err == nil {
		t.Fatal("expected error for invalid priority")
	}
}

func TestRecordResultCompletesOrder(t *testing.T) {
	svc, orders, _ := newTestService()
	o := &Order{PatientID: uuid.New(), TestName: "HbA1c"}
	if err := svc.CreateOrder(context.Background(), o); err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	res := &Result{
		OrderID:   &o.ID,
		PatientID: o.PatientID,
		TestName:  "HbA1c",
		Value:     "7.2",
		Abnormal:  true,
	}
	if err := svc.RecordResult(context.Background(), res); err != nil {
		t.Fatalf("RecordResult failed: %v", err)
	}
	got, _ := orders.GetByID(context.Background(), o.ID)
	if got.Status != "completed" {
		t.Errorf("expected order status completed, got %s", got.Status)
	}
	if res.ResultDate.IsZero() {
		t.Error("expected resultDate to default to now")
	}
}

func TestRecordResultMissingValue(t *testing.T) {
	svc, _, _ := newTestService()
	res := &Result{PatientID: uuid.New(), TestName: "CBC"}
	if err := svc.RecordResult(context.Background(), res); err == nil {
		t.Fatal("expected error for missing value")
	}
}

func TestRecentResultsRespectsCutoff(t *testing.T) {
	svc, _, results := newTestService()
	patientID := uuid.New()
	now := time.Now()

	recent := &Result{ID: uuid.New(), PatientID: patientID, TestName: "CBC", Value: "ok", ResultDate: now.Add(-2 * 24 * time.Hour)}
	old := &Result{ID: uuid.New(), PatientID: patientID, TestName: "CBC", Value: "ok", ResultDate: now.Add(-10 * 24 * time.Hour)}
	results.items[recent.ID] = recent
	results.items[old.ID] = old

	got, err := svc.RecentResultsForPatient(context.Background(), patientID, now.Add(-7*24*time.Hour), 10)
	if err != nil {
		t.Fatalf("RecentResultsForPatient failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != recent.ID {
		t.Errorf("expected only the result within the window, got %d", len(got))
	}
}
