package messaging

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

var suggestNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func snapshotWith(mutate func(*PatientClinicalSnapshot)) PatientClinicalSnapshot {
	snap := PatientClinicalSnapshot{
		PatientID:   uuid.New(),
		FirstName:   "Maria",
		LastName:    "Santos",
		GeneratedAt: suggestNow,
	}
	if mutate != nil {
		mutate(&snap)
	}
	return snap
}

func TestSuggestEmptySnapshot(t *testing.T) {
	got := SuggestTemplates(snapshotWith(nil), suggestNow)
	if len(got) != 0 {
		t.Errorf("expected no suggestions, got %d", len(got))
	}
	if got == nil {
		t.Error("expected empty slice, not nil")
	}
}

func TestSuggestAppointmentWithinWeek(t *testing.T) {
	snap := snapshotWith(func(s *PatientClinicalSnapshot) {
		s.UpcomingAppointments = []AppointmentInfo{{ScheduledAt: suggestNow.AddDate(0, 0, 3)}}
	})
	got := SuggestTemplates(snap, suggestNow)
	if len(got) != 1 || got[0].TemplateID != "appointment_reminder" {
		t.Fatalf("expected appointment_reminder, got %+v", got)
	}
	if got[0].FilledBody == "" || strings.Contains(got[0].FilledBody, "{") {
		t.Errorf("expected pre-filled body, got %q", got[0].FilledBody)
	}
}

func TestSuggestAppointmentBeyondWeekIgnored(t *testing.T) {
	snap := snapshotWith(func(s *PatientClinicalSnapshot) {
		s.UpcomingAppointments = []AppointmentInfo{{ScheduledAt: suggestNow.AddDate(0, 0, 10)}}
	})
	if got := SuggestTemplates(snap, suggestNow); len(got) != 0 {
		t.Errorf("appointment 10 days out should not trigger, got %+v", got)
	}
}

func TestSuggestAbnormalLabPicksFollowUpTemplate(t *testing.T) {
	snap := snapshotWith(func(s *PatientClinicalSnapshot) {
		s.RecentLabResults = []LabResultInfo{
			{TestName: "HbA1c", Abnormal: true, ResultDate: suggestNow.AddDate(0, 0, -2)},
		}
	})
	got := SuggestTemplates(snap, suggestNow)
	if len(got) != 1 || got[0].TemplateID != "lab_results_abnormal" {
		t.Fatalf("expected lab_results_abnormal, got %+v", got)
	}
}

func TestSuggestNormalLab(t *testing.T) {
	snap := snapshotWith(func(s *PatientClinicalSnapshot) {
		s.RecentLabResults = []LabResultInfo{
			{TestName: "CBC", Abnormal: false, ResultDate: suggestNow.AddDate(0, 0, -2)},
		}
	})
	got := SuggestTemplates(snap, suggestNow)
	if len(got) != 1 || got[0].TemplateID != "lab_results_normal" {
		t.Fatalf("expected lab_results_normal, got %+v", got)
	}
}

func TestSuggestFollowUpWindowIsSymmetric(t *testing.T) {
	for _, offset := range []int{-5, 5} {
		due := suggestNow.AddDate(0, 0, offset)
		snap := snapshotWith(func(s *PatientClinicalSnapshot) {
			s.LastVisit = &VisitInfo{FollowUpDate: &due}
		})
		got := SuggestTemplates(snap, suggestNow)
		if len(got) != 1 || got[0].TemplateID != "follow_up_reminder" {
			t.Errorf("offset %d: expected follow_up_reminder, got %+v", offset, got)
		}
	}
	far := suggestNow.AddDate(0, 0, 12)
	snap := snapshotWith(func(s *PatientClinicalSnapshot) {
		s.LastVisit = &VisitInfo{FollowUpDate: &far}
	})
	if got := SuggestTemplates(snap, suggestNow); len(got) != 0 {
		t.Errorf("follow-up 12 days out should not trigger, got %+v", got)
	}
}

func TestSuggestFixedOrderAndCap(t *testing.T) {
	due := suggestNow.AddDate(0, 0, 2)
	snap := snapshotWith(func(s *PatientClinicalSnapshot) {
		s.UpcomingAppointments = []AppointmentInfo{{ScheduledAt: suggestNow.AddDate(0, 0, 1)}}
		s.RecentLabResults = []LabResultInfo{
			{TestName: "CBC", Abnormal: true, ResultDate: suggestNow.AddDate(0, 0, -1)},
		}
		s.ActivePrescriptions = []PrescriptionInfo{{Medication: "Metformin"}}
		s.LastVisit = &VisitInfo{FollowUpDate: &due}
	})
	got := SuggestTemplates(snap, suggestNow)
	if len(got) != 3 {
		t.Fatalf("expected cap of 3 suggestions, got %d", len(got))
	}
	want := []string{"appointment_reminder", "lab_results_abnormal", "medication_instructions"}
	for i, id := range want {
		if got[i].TemplateID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, got[i].TemplateID)
		}
	}
}
