package visit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinic/clinic/internal/platform/storage"
)

// DraftStore persists one DraftSnapshot per patient. Snapshots older than
// maxAge are treated as abandoned: discarded on load, never restored.
type DraftStore struct {
	store  storage.Store
	maxAge time.Duration

	now func() time.Time
}

func NewDraftStore(store storage.Store, maxAge time.Duration) *DraftStore {
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}
	return &DraftStore{store: store, maxAge: maxAge, now: time.Now}
}

func draftKey(patientID uuid.UUID) string {
	return "visit-draft:" + patientID.String()
}

func noticeKey(patientID uuid.UUID) string {
	return "draft-notice:" + patientID.String()
}

// Save writes the draft as a snapshot stamped with the current time. The
// backing entry expires at twice the restore window so stale snapshots do
// not accumulate.
func (s *DraftStore) Save(ctx context.Context, patientID uuid.UUID, d *VisitDraft) (*DraftSnapshot, error) {
	snap := &DraftSnapshot{
		PatientID: patientID,
		Draft:     *d,
		SavedAt:   s.now(),
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal draft snapshot: %w", err)
	}
	if err := s.store.Set(ctx, draftKey(patientID), string(raw), 2*s.maxAge); err != nil {
		return nil, fmt.Errorf("write draft snapshot: %w", err)
	}
	return snap, nil
}

// Load returns the stored snapshot for the patient, if one exists and is
// younger than the restore window. An expired snapshot is deleted and
// reported as absent.
func (s *DraftStore) Load(ctx context.Context, patientID uuid.UUID) (*DraftSnapshot, bool, error) {
	raw, found, err := s.store.Get(ctx, draftKey(patientID))
	if err != nil {
		return nil, false, fmt.Errorf("read draft snapshot: %w", err)
	}
	if !found {
		return nil, false, nil
	}
	var snap DraftSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		// Unreadable snapshot is as good as no snapshot.
		_ = s.store.Delete(ctx, draftKey(patientID))
		return nil, false, nil
	}
	if s.now().Sub(snap.SavedAt) >= s.maxAge {
		_ = s.store.Delete(ctx, draftKey(patientID))
		return nil, false, nil
	}
	return &snap, true, nil
}

// Clear removes the stored snapshot; called after successful submission
// or explicit discard. The restore-notice flag goes with it so the next
// draft announces itself again.
func (s *DraftStore) Clear(ctx context.Context, patientID uuid.UUID) error {
	_ = s.store.Delete(ctx, noticeKey(patientID))
	return s.store.Delete(ctx, draftKey(patientID))
}

// MarkNoticeSeen records that the restored-draft notice has been shown for
// this patient. The flag shares the snapshot's lifetime.
func (s *DraftStore) MarkNoticeSeen(ctx context.Context, patientID uuid.UUID) error {
	return s.store.Set(ctx, noticeKey(patientID), "1", 2*s.maxAge)
}

// NoticeSeen reports whether the restored-draft notice was already shown.
func (s *DraftStore) NoticeSeen(ctx context.Context, patientID uuid.UUID) (bool, error) {
	_, found, err := s.store.Get(ctx, noticeKey(patientID))
	return found, err
}
