package visit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clinic/clinic/internal/platform/storage"
)

type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (failingStore) Set(context.Context, string, string, time.Duration) error {
	return errors.New("store unavailable")
}
func (failingStore) Delete(context.Context, string) error { return nil }

func TestAutosaveSkipsEmptyDraft(t *testing.T) {
	mem := storage.NewMemoryStore()
	drafts := NewDraftStore(mem, 24*time.Hour)
	saver := NewAutosaver(drafts, 10*time.Millisecond, zerolog.Nop())
	patientID := uuid.New()

	empty := &VisitDraft{History: "some history but no required field"}
	saver.Start(patientID, func() *VisitDraft { return empty })
	time.Sleep(60 * time.Millisecond)
	saver.Stop()

	_, found, _ := drafts.Load(context.Background(), patientID)
	if found {
		t.Error("expected empty draft to never be persisted")
	}
	if !saver.LastSaved().IsZero() {
		t.Error("expected no last-saved timestamp for an empty draft")
	}
}

func TestAutosaveWritesPopulatedDraft(t *testing.T) {
	mem := storage.NewMemoryStore()
	drafts := NewDraftStore(mem, 24*time.Hour)
	saver := NewAutosaver(drafts, 10*time.Millisecond, zerolog.Nop())
	patientID := uuid.New()

	draft := &VisitDraft{ChiefComplaint: "headache"}
	saver.Start(patientID, func() *VisitDraft { return draft })
	time.Sleep(60 * time.Millisecond)
	saver.Stop()

	snap, found, err := drafts.Load(context.Background(), patientID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !found {
		t.Fatal("expected populated draft to be persisted")
	}
	if snap.Draft.ChiefComplaint != "headache" {
		t.Errorf("unexpected persisted draft: %+v", snap.Draft)
	}
	if saver.LastSaved().IsZero() {
		t.Error("expected last-saved timestamp to be recorded")
	}
}

func TestAutosaveSwallowsStorageFailure(t *testing.T) {
	drafts := NewDraftStore(failingStore{}, 24*time.Hour)
	saver := NewAutosaver(drafts, 10*time.Millisecond, zerolog.Nop())

	draft := &VisitDraft{ChiefComplaint: "headache"}
	saver.Start(uuid.New(), func() *VisitDraft { return draft })
	time.Sleep(60 * time.Millisecond)
	saver.Stop()

	if !saver.LastSaved().IsZero() {
		t.Error("expected no last-saved timestamp when every write fails")
	}
}

func TestAutosaveRestartSwitchesPatient(t *testing.T) {
	mem := storage.NewMemoryStore()
	drafts := NewDraftStore(mem, 24*time.Hour)
	saver := NewAutosaver(drafts, 10*time.Millisecond, zerolog.Nop())
	first := uuid.New()
	second := uuid.New()

	saver.Start(first, func() *VisitDraft { return &VisitDraft{ChiefComplaint: "first"} })
	time.Sleep(40 * time.Millisecond)
	saver.Start(second, func() *VisitDraft { return &VisitDraft{ChiefComplaint: "second"} })
	time.Sleep(40 * time.Millisecond)
	saver.Stop()

	snap, found, _ := drafts.Load(context.Background(), second)
	if !found || snap.Draft.ChiefComplaint != "second" {
		t.Error("expected autosaver to follow the most recent Start")
	}
}
