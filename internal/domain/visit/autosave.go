package visit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clinic/clinic/internal/platform/schedule"
)

// Autosaver periodically snapshots an open draft to the draft store. A
// draft with none of chief complaint, diagnosis, or treatment plan filled
// in is skipped, so empty drafts are never persisted. Storage failures are
// logged and swallowed; the in-memory draft stays the source of truth.
type Autosaver struct {
	drafts   *DraftStore
	interval time.Duration
	log      zerolog.Logger

	mu        sync.Mutex
	task      *schedule.Task
	patientID uuid.UUID
	current   func() *VisitDraft
	lastSaved time.Time
}

func NewAutosaver(drafts *DraftStore, interval time.Duration, log zerolog.Logger) *Autosaver {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Autosaver{drafts: drafts, interval: interval, log: log}
}

// Start begins autosaving snapshots produced by current. A previous run,
// if any, is stopped first.
func (a *Autosaver) Start(patientID uuid.UUID, current func() *VisitDraft) {
	a.Stop()

	a.mu.Lock()
	a.patientID = patientID
	a.current = current
	a.task = schedule.NewTask(a.interval, a.tick)
	task := a.task
	a.mu.Unlock()

	task.Start()
}

func (a *Autosaver) Stop() {
	a.mu.Lock()
	task := a.task
	a.task = nil
	a.mu.Unlock()

	if task != nil {
		task.Stop()
	}
}

// LastSaved reports when a snapshot was last written, zero if never.
func (a *Autosaver) LastSaved() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastSaved
}

func (a *Autosaver) tick(ctx context.Context) {
	a.mu.Lock()
	patientID := a.patientID
	current := a.current
	a.mu.Unlock()

	if current == nil {
		return
	}
	draft := current()
	if draft == nil || !draft.HasContent() {
		return
	}

	snap, err := a.drafts.Save(ctx, patientID, draft)
	if err != nil {
		a.log.Warn().Err(err).
			Str("patient_id", patientID.String()).
			Msg("draft autosave failed")
		return
	}

	a.mu.Lock()
	a.lastSaved = snap.SavedAt
	a.mu.Unlock()
}
