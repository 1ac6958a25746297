package visit

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/clinic/clinic/internal/domain/cds"
	"github.com/clinic/clinic/internal/platform/storage"
)

func testDraft() *VisitDraft {
	return &VisitDraft{
		VisitType:      "consultation",
		ChiefComplaint: "persistent cough",
		History:        "three days of productive cough",
		Vitals: cds.Vitals{
			BloodPressure: "120/80",
			HeartRate:     "72",
			Temperature:   "37.1",
			Weight:        "70",
			Height:        "170",
		},
		Exam:                ExamFindings{General: "alert, no distress", Respiratory: "scattered rhonchi"},
		Assessment:          "likely acute bronchitis",
		Diagnosis:           "acute bronchitis",
		TreatmentPlan:       "rest, fluids, antibiotics",
		Medications:         "Azithromycin 500mg - Once daily",
		AdditionalDiagnoses: []string{"seasonal allergies"},
		MedicationList:      []string{"Azithromycin"},
	}
}

func TestDraftRoundTrip(t *testing.T) {
	store := NewDraftStore(storage.NewMemoryStore(), 24*time.Hour)
	patientID := uuid.New()
	original := testDraft()

	if _, err := store.Save(context.Background(), patientID, original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	snap, found, err := store.Load(context.Background(), patientID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !found {
		t.Fatal("expected snapshot to be found immediately after save")
	}
	if !reflect.DeepEqual(&snap.Draft, original) {
		t.Errorf("round-trip mismatch:\n got %+v\nwant %+v", snap.Draft, *original)
	}
	if len(snap.Draft.AdditionalDiagnoses) != 1 || len(snap.Draft.MedicationList) != 1 {
		t.Error("expected list fields to survive the round trip")
	}
}

func TestDraftLoadMissing(t *testing.T) {
	store := NewDraftStore(storage.NewMemoryStore(), 24*time.Hour)
	_, found, err := store.Load(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if found {
		t.Error("expected no snapshot for unknown patient")
	}
}

func TestDraftAgeCutoff(t *testing.T) {
	store := NewDraftStore(storage.NewMemoryStore(), 24*time.Hour)
	patientID := uuid.New()

	saved := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return saved }
	if _, err := store.Save(context.Background(), patientID, testDraft()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// One minute shy of the cutoff: still restorable.
	store.now = func() time.Time { return saved.Add(24*time.Hour - time.Minute) }
	_, found, err := store.Load(context.Background(), patientID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !found {
		t.Fatal("expected snapshot younger than 24h to be offered")
	}

	// At the cutoff: discarded, and gone on the next read too.
	store.now = func() time.Time { return saved.Add(24 * time.Hour) }
	_, found, err = store.Load(context.Background(), patientID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if found {
		t.Fatal("expected snapshot aged 24h to be discarded")
	}
	_, found, _ = store.Load(context.Background(), patientID)
	if found {
		t.Error("expected discarded snapshot to be deleted")
	}
}

func TestDraftClear(t *testing.T) {
	store := NewDraftStore(storage.NewMemoryStore(), 24*time.Hour)
	patientID := uuid.New()
	if _, err := store.Save(context.Background(), patientID, testDraft()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Clear(context.Background(), patientID); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	_, found, _ := store.Load(context.Background(), patientID)
	if found {
		t.Error("expected cleared snapshot to be gone")
	}
}

func TestDraftNoticeFlag(t *testing.T) {
	store := NewDraftStore(storage.NewMemoryStore(), 24*time.Hour)
	patientID := uuid.New()

	seen, err := store.NoticeSeen(context.Background(), patientID)
	if err != nil {
		t.Fatalf("NoticeSeen failed: %v", err)
	}
	if seen {
		t.Error("expected notice to start unseen")
	}

	if err := store.MarkNoticeSeen(context.Background(), patientID); err != nil {
		t.Fatalf("MarkNoticeSeen failed: %v", err)
	}
	seen, _ = store.NoticeSeen(context.Background(), patientID)
	if !seen {
		t.Error("expected notice to be recorded as seen")
	}

	// Flags belong to one patient only.
	other, _ := store.NoticeSeen(context.Background(), uuid.New())
	if other {
		t.Error("expected notice flag to be scoped per patient")
	}

	// Clearing the draft resets the flag.
	if err := store.Clear(context.Background(), patientID); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	seen, _ = store.NoticeSeen(context.Background(), patientID)
	if seen {
		t.Error("expected notice flag to be cleared with the draft")
	}
}

func TestDraftCorruptSnapshotTreatedAsMissing(t *testing.T) {
	mem := storage.NewMemoryStore()
	store := NewDraftStore(mem, 24*time.Hour)
	patientID := uuid.New()
	if err := mem.Set(context.Background(), "visit-draft:"+patientID.String(), "{not json", 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	_, found, err := store.Load(context.Background(), patientID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if found {
		t.Error("expected corrupt snapshot to be treated as absent")
	}
}
