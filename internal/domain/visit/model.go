package visit

import (
	"time"

	"github.com/google/uuid"

	"github.com/clinic/clinic/internal/domain/cds"
)

// ExamFindings holds the free-text physical-exam fields, one per system.
type ExamFindings struct {
	General        string `json:"general,omitempty"`
	Cardiovascular string `json:"cardiovascular,omitempty"`
	Respiratory    string `json:"respiratory,omitempty"`
	Abdomen        string `json:"abdomen,omitempty"`
	Neurological   string `json:"neurological,omitempty"`
	Skin           string `json:"skin,omitempty"`
}

// VisitDraft is an in-progress, not-yet-submitted visit record. The two
// list fields are working state kept alongside the free-text fields; they
// travel with saved snapshots but are flattened on submission.
type VisitDraft struct {
	VisitType      string       `json:"visitType,omitempty"`
	ChiefComplaint string       `json:"chiefComplaint,omitempty"`
	History        string       `json:"history,omitempty"`
	Vitals         cds.Vitals   `json:"vitals"`
	Exam           ExamFindings `json:"physicalExam"`

	Assessment         string `json:"assessment,omitempty"`
	Diagnosis          string `json:"diagnosis,omitempty"`
	SecondaryDiagnoses string `json:"secondaryDiagnoses,omitempty"`
	TreatmentPlan      string `json:"treatmentPlan,omitempty"`
	Medications        string `json:"medications,omitempty"`

	FollowUpDate         string `json:"followUpDate,omitempty"`
	FollowUpInstructions string `json:"followUpInstructions,omitempty"`
	Notes                string `json:"notes,omitempty"`

	AdditionalDiagnoses []string `json:"additionalDiagnoses,omitempty"`
	MedicationList      []string `json:"medicationList,omitempty"`
}

// HasContent reports whether the draft is worth persisting. Empty drafts
// are never written by the autosave tick.
func (d *VisitDraft) HasContent() bool {
	return d.ChiefComplaint != "" || d.Diagnosis != "" || d.TreatmentPlan != ""
}

// DraftSnapshot is the serialized form of a VisitDraft written to the
// draft store, keyed per patient.
type DraftSnapshot struct {
	PatientID uuid.UUID  `json:"patientId"`
	Draft     VisitDraft `json:"draft"`
	SavedAt   time.Time  `json:"savedAt"`
}

// Visit is a finalized, submitted visit record.
type Visit struct {
	ID                 uuid.UUID  `json:"id"`
	PatientID          uuid.UUID  `json:"patientId"`
	VisitType          string     `json:"visitType"`
	ChiefComplaint     string     `json:"chiefComplaint"`
	Diagnosis          string     `json:"diagnosis"`
	SecondaryDiagnoses string     `json:"secondaryDiagnoses,omitempty"`
	TreatmentPlan      string     `json:"treatmentPlan"`
	Medications        string     `json:"medications,omitempty"`
	Notes              string     `json:"notes,omitempty"`
	FollowUpDate       *time.Time `json:"followUpDate,omitempty"`
	VisitDate          time.Time  `json:"visitDate"`
	CreatedBy          *string    `json:"createdBy,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}
