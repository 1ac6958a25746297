package messaging

import (
	"fmt"
	"time"
)

const maxSuggestions = 3

// SuggestTemplates evaluates a fixed, ordered set of trigger rules against
// the snapshot: upcoming appointment within 7 days, lab result within the
// last 7 days (abnormal picks the follow-up template), any active
// prescription, and a follow-up date within a week either side of now.
// Each satisfied rule contributes one pre-filled suggestion; earlier rules
// win when more than three would qualify.
func SuggestTemplates(snap PatientClinicalSnapshot, now time.Time) []Suggestion {
	suggestions := []Suggestion{}

	add := func(templateID, reason string) {
		if len(suggestions) >= maxSuggestions {
			return
		}
		t, ok := TemplateByID(templateID)
		if !ok {
			return
		}
		suggestions = append(suggestions, Suggestion{
			TemplateID: t.ID,
			Name:       t.Name,
			Category:   t.Category,
			Priority:   t.Priority,
			Reason:     reason,
			FilledBody: FillTemplate(t.Body, snap),
		})
	}

	week := 7 * 24 * time.Hour

	if len(snap.UpcomingAppointments) > 0 {
		next := snap.UpcomingAppointments[0]
		if until := next.ScheduledAt.Sub(now); until >= 0 && until <= week {
			add("appointment_reminder",
				fmt.Sprintf("Appointment coming up on %s", next.ScheduledAt.Format("Jan 2")))
		}
	}

	if len(snap.RecentLabResults) > 0 {
		latest := snap.RecentLabResults[0]
		if age := now.Sub(latest.ResultDate); age >= 0 && age <= week {
			if latest.Abnormal {
				add("lab_results_abnormal",
					fmt.Sprintf("Abnormal %s result needs follow-up", latest.TestName))
			} else {
				add("lab_results_normal",
					fmt.Sprintf("Recent %s result available", latest.TestName))
			}
		}
	}

	if len(snap.ActivePrescriptions) > 0 {
		add("medication_instructions",
			fmt.Sprintf("Active prescription: %s", snap.ActivePrescriptions[0].Medication))
	}

	if snap.LastVisit != nil && snap.LastVisit.FollowUpDate != nil {
		if delta := snap.LastVisit.FollowUpDate.Sub(now); delta >= -week && delta <= week {
			add("follow_up_reminder",
				fmt.Sprintf("Follow-up due around %s", snap.LastVisit.FollowUpDate.Format("Jan 2")))
		}
	}

	return suggestions
}
