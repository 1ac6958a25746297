package messaging

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinic/clinic/internal/domain/appointment"
	"github.com/clinic/clinic/internal/domain/lab"
	"github.com/clinic/clinic/internal/domain/patient"
	"github.com/clinic/clinic/internal/domain/prescription"
	"github.com/clinic/clinic/internal/domain/visit"
)

// Adapters narrowing the sibling domain services to the snapshot sources.

type PatientAdapter struct{ Svc *patient.Service }

func (a PatientAdapter) Demographics(ctx context.Context, patientID uuid.UUID) (Demographics, error) {
	p, err := a.Svc.Get(ctx, patientID)
	if err != nil {
		return Demographics{}, err
	}
	d := Demographics{
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		DateOfBirth: p.DateOfBirth,
	}
	if p.Gender != nil {
		d.Gender = *p.Gender
	}
	if p.Phone != nil {
		d.Phone = *p.Phone
	}
	if p.Email != nil {
		d.Email = *p.Email
	}
	if p.Allergies != nil {
		d.Allergies = *p.Allergies
	}
	if p.MedicalHistory != nil {
		d.MedicalHistory = *p.MedicalHistory
	}
	return d, nil
}

type AppointmentAdapter struct{ Svc *appointment.Service }

func (a AppointmentAdapter) Upcoming(ctx context.Context, patientID uuid.UUID, now time.Time, limit int) ([]AppointmentInfo, error) {
	appts, err := a.Svc.UpcomingForPatient(ctx, patientID, now, limit)
	if err != nil {
		return nil, err
	}
	out := make([]AppointmentInfo, 0, len(appts))
	for _, ap := range appts {
		info := AppointmentInfo{ScheduledAt: ap.ScheduledAt}
		if ap.Reason != nil {
			info.Reason = *ap.Reason
		}
		if ap.Location != nil {
			info.Location = *ap.Location
		}
		out = append(out, info)
	}
	return out, nil
}

type PrescriptionAdapter struct{ Svc *prescription.Service }

func (a PrescriptionAdapter) Active(ctx context.Context, patientID uuid.UUID) ([]PrescriptionInfo, error) {
	rx, err := a.Svc.ActiveForPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	out := make([]PrescriptionInfo, 0, len(rx))
	for _, p := range rx {
		out = append(out, PrescriptionInfo{
			Medication: p.Medication,
			Dosage:     p.Dosage,
			Frequency:  p.Frequency,
		})
	}
	return out, nil
}

type LabAdapter struct{ Svc *lab.Service }

func (a LabAdapter) Recent(ctx context.Context, patientID uuid.UUID, since time.Time, limit int) ([]LabResultInfo, error) {
	results, err := a.Svc.RecentResultsForPatient(ctx, patientID, since, limit)
	if err != nil {
		return nil, err
	}
	out := make([]LabResultInfo, 0, len(results))
	for _, res := range results {
		out = append(out, LabResultInfo{
			TestName:   res.TestName,
			Abnormal:   res.Abnormal,
			ResultDate: res.ResultDate,
		})
	}
	return out, nil
}

type VisitAdapter struct{ Svc *visit.Service }

func (a VisitAdapter) Latest(ctx context.Context, patientID uuid.UUID) (*VisitInfo, error) {
	v, err := a.Svc.LatestForPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return &VisitInfo{
		Diagnosis:     v.Diagnosis,
		TreatmentPlan: v.TreatmentPlan,
		VisitDate:     v.VisitDate,
		FollowUpDate:  v.FollowUpDate,
	}, nil
}
