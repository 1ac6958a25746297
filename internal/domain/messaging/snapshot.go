package messaging

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PatientClinicalSnapshot is a point-in-time aggregate of one patient's
// clinical context, assembled once at the data boundary and passed by
// value into the fill and suggestion logic. Every optional piece of data
// is declared here; downstream code never reaches back to a repository.
type PatientClinicalSnapshot struct {
	PatientID      uuid.UUID
	FirstName      string
	LastName       string
	DateOfBirth    *time.Time
	Gender         string
	Phone          string
	Email          string
	Allergies      string
	MedicalHistory string

	UpcomingAppointments []AppointmentInfo // soonest first
	ActivePrescriptions  []PrescriptionInfo
	RecentLabResults     []LabResultInfo // newest first
	LastVisit            *VisitInfo

	GeneratedAt time.Time
}

type AppointmentInfo struct {
	ScheduledAt time.Time
	Reason      string
	Location    string
}

type PrescriptionInfo struct {
	Medication string
	Dosage     string
	Frequency  string
}

type LabResultInfo struct {
	TestName   string
	Abnormal   bool
	ResultDate time.Time
}

type VisitInfo struct {
	Diagnosis     string
	TreatmentPlan string
	VisitDate     time.Time
	FollowUpDate  *time.Time
}

type Demographics struct {
	FirstName      string
	LastName       string
	Gender         string
	Phone          string
	Email          string
	Allergies      string
	MedicalHistory string
	DateOfBirth    *time.Time
}

// Narrow views over the collaborating domains, satisfied by adapters at
// wiring time.
type (
	PatientSource interface {
		Demographics(ctx context.Context, patientID uuid.UUID) (Demographics, error)
	}
	AppointmentSource interface {
		Upcoming(ctx context.Context, patientID uuid.UUID, now time.Time, limit int) ([]AppointmentInfo, error)
	}
	PrescriptionSource interface {
		Active(ctx context.Context, patientID uuid.UUID) ([]PrescriptionInfo, error)
	}
	LabSource interface {
		Recent(ctx context.Context, patientID uuid.UUID, since time.Time, limit int) ([]LabResultInfo, error)
	}
	VisitSource interface {
		Latest(ctx context.Context, patientID uuid.UUID) (*VisitInfo, error)
	}
)

// SnapshotBuilder assembles PatientClinicalSnapshots from the collaborating
// domains. Sources that fail or return nothing leave their section empty;
// only a missing patient is an error.
type SnapshotBuilder struct {
	patients      PatientSource
	appointments  AppointmentSource
	prescriptions PrescriptionSource
	labs          LabSource
	visits        VisitSource

	now func() time.Time
}

func NewSnapshotBuilder(patients PatientSource, appointments AppointmentSource,
	prescriptions PrescriptionSource, labs LabSource, visits VisitSource) *SnapshotBuilder {
	return &SnapshotBuilder{
		patients:      patients,
		appointments:  appointments,
		prescriptions: prescriptions,
		labs:          labs,
		visits:        visits,
		now:           time.Now,
	}
}

func (b *SnapshotBuilder) Build(ctx context.Context, patientID uuid.UUID) (PatientClinicalSnapshot, error) {
	now := b.now()
	snap := PatientClinicalSnapshot{PatientID: patientID, GeneratedAt: now}

	demo, err := b.patients.Demographics(ctx, patientID)
	if err != nil {
		return snap, err
	}
	snap.FirstName = demo.FirstName
	snap.LastName = demo.LastName
	snap.Gender = demo.Gender
	snap.Phone = demo.Phone
	snap.Email = demo.Email
	snap.Allergies = demo.Allergies
	snap.MedicalHistory = demo.MedicalHistory
	snap.DateOfBirth = demo.DateOfBirth

	if b.appointments != nil {
		if appts, err := b.appointments.Upcoming(ctx, patientID, now, 5); err == nil {
			snap.UpcomingAppointments = appts
		}
	}
	if b.prescriptions != nil {
		if rx, err := b.prescriptions.Active(ctx, patientID); err == nil {
			snap.ActivePrescriptions = rx
		}
	}
	if b.labs != nil {
		if labs, err := b.labs.Recent(ctx, patientID, now.AddDate(0, 0, -7), 10); err == nil {
			snap.RecentLabResults = labs
		}
	}
	if b.visits != nil {
		if v, err := b.visits.Latest(ctx, patientID); err == nil {
			snap.LastVisit = v
		}
	}
	return snap, nil
}
