package visit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinic/clinic/internal/domain/cds"
)

// DraftState is the derived state recomputed from a draft on every field
// change: BMI, the full alert set, and diagnosis-driven suggestions. It is
// always rebuilt from scratch, never patched.
type DraftState struct {
	BMI         *float64                   `json:"bmi"`
	Alerts      []string                   `json:"alerts"`
	Suggestions []cds.MedicationSuggestion `json:"suggestions"`
	Instruction string                     `json:"instruction,omitempty"`
}

type Service struct {
	repo   Repository
	drafts *DraftStore
}

func NewService(repo Repository, drafts *DraftStore) *Service {
	return &Service{repo: repo, drafts: drafts}
}

// OnFieldChange derives fresh state from the current draft values.
// Suggestions are cleared whenever the diagnosis field is empty.
func (s *Service) OnFieldChange(d *VisitDraft) DraftState {
	state := DraftState{
		BMI:         cds.ComputeBMI(d.Vitals.Weight, d.Vitals.Height),
		Alerts:      cds.EvaluateVitals(d.Vitals),
		Suggestions: []cds.MedicationSuggestion{},
	}
	if strings.TrimSpace(d.Diagnosis) != "" {
		state.Suggestions, state.Instruction = cds.Suggest(d.Diagnosis)
	}
	return state
}

// AppendMedication adds a suggested medication to the draft's medication
// list. Appension is idempotent: a name already present is skipped.
func (s *Service) AppendMedication(d *VisitDraft, m cds.MedicationSuggestion) bool {
	for _, existing := range d.MedicationList {
		if strings.EqualFold(existing, m.Name) {
			return false
		}
	}
	d.MedicationList = append(d.MedicationList, m.Name)
	line := fmt.Sprintf("%s %s - %s", m.Name, m.Dosage, m.Frequency)
	if d.Medications == "" {
		d.Medications = line
	} else {
		d.Medications += "\n" + line
	}
	return true
}

// MergeSnapshot folds a restored snapshot's list state into the working
// draft without duplicating entries.
func (s *Service) MergeSnapshot(d *VisitDraft, snap *DraftSnapshot) {
	d.AdditionalDiagnoses = mergeUnique(d.AdditionalDiagnoses, snap.Draft.AdditionalDiagnoses)
	d.MedicationList = mergeUnique(d.MedicationList, snap.Draft.MedicationList)
}

func mergeUnique(dst, src []string) []string {
	for _, v := range src {
		found := false
		for _, existing := range dst {
			if strings.EqualFold(existing, v) {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, v)
		}
	}
	return dst
}

// notesPayload nests the clinical narrative fields under the submitted
// visit's notes column.
type notesPayload struct {
	History              string       `json:"history,omitempty"`
	PhysicalExam         ExamFindings `json:"physicalExam"`
	Assessment           string       `json:"assessment,omitempty"`
	FollowUpInstructions string       `json:"followUpInstructions,omitempty"`
	AdditionalNotes      string       `json:"additionalNotes,omitempty"`
	Vitals               cds.Vitals   `json:"vitals"`
}

// Submit validates and finalizes a draft into a visit record, then clears
// the stored snapshot. A storage failure while clearing is not a
// submission failure.
func (s *Service) Submit(ctx context.Context, patientID uuid.UUID, d *VisitDraft, createdBy *string) (*Visit, error) {
	if strings.TrimSpace(d.ChiefComplaint) == "" {
		return nil, fmt.Errorf("chiefComplaint is required")
	}
	if strings.TrimSpace(d.Diagnosis) == "" {
		return nil, fmt.Errorf("diagnosis is required")
	}
	if strings.TrimSpace(d.TreatmentPlan) == "" {
		return nil, fmt.Errorf("treatmentPlan is required")
	}

	secondary := d.SecondaryDiagnoses
	if len(d.AdditionalDiagnoses) > 0 {
		secondary = joinFlat(secondary, d.AdditionalDiagnoses)
	}
	medications := d.Medications
	if len(d.MedicationList) > 0 && medications == "" {
		medications = strings.Join(d.MedicationList, ", ")
	}

	notes, err := json.Marshal(notesPayload{
		History:              d.History,
		PhysicalExam:         d.Exam,
		Assessment:           d.Assessment,
		FollowUpInstructions: d.FollowUpInstructions,
		AdditionalNotes:      d.Notes,
		Vitals:               d.Vitals,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal visit notes: %w", err)
	}

	v := &Visit{
		PatientID:          patientID,
		VisitType:          d.VisitType,
		ChiefComplaint:     d.ChiefComplaint,
		Diagnosis:          d.Diagnosis,
		SecondaryDiagnoses: secondary,
		TreatmentPlan:      d.TreatmentPlan,
		Medications:        medications,
		Notes:              string(notes),
		VisitDate:          time.Now(),
		CreatedBy:          createdBy,
	}
	if d.FollowUpDate != "" {
		if t, err := time.Parse("2006-01-02", d.FollowUpDate); err == nil {
			v.FollowUpDate = &t
		}
	}
	if v.VisitType == "" {
		v.VisitType = "consultation"
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	_ = s.drafts.Clear(ctx, patientID)
	return v, nil
}

func joinFlat(existing string, extra []string) string {
	parts := make([]string, 0, len(extra)+1)
	if existing != "" {
		parts = append(parts, existing)
	}
	parts = append(parts, extra...)
	return strings.Join(parts, ", ")
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Visit, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Visit, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) LatestForPatient(ctx context.Context, patientID uuid.UUID) (*Visit, error) {
	return s.repo.LatestByPatient(ctx, patientID)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Drafts exposes the draft store for the handler layer.
func (s *Service) Drafts() *DraftStore {
	return s.drafts
}
