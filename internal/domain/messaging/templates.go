package messaging

// templateTable is the static message-template catalog. Order matters
// nowhere here; suggestion ordering is fixed by the trigger rules in
// suggest.go, not by table position.
var templateTable = []Template{
	{
		ID:       "appointment_reminder",
		Name:     "Appointment Reminder",
		Category: "appointment",
		Icon:     "calendar",
		Priority: "high",
		Tags:     []string{"upcoming_appointment"},
		Body: "Hi {firstName}, this is a reminder of your upcoming appointment on " +
			"{appointmentDate} at {appointmentTime}. Location: {appointmentLocation}. " +
			"Please arrive 10 minutes early and bring your insurance card.",
	},
	{
		ID:       "appointment_reschedule",
		Name:     "Appointment Reschedule",
		Category: "appointment",
		Icon:     "calendar-x",
		Priority: "normal",
		Tags:     []string{},
		Body: "Hi {firstName}, we need to reschedule your appointment on " +
			"{appointmentDate}. Please call us at your earliest convenience to " +
			"arrange a new time.",
	},
	{
		ID:       "lab_results_abnormal",
		Name:     "Lab Results — Follow-up Needed",
		Category: "lab_result",
		Icon:     "flask",
		Priority: "high",
		Tags:     []string{"abnormal_lab_result"},
		Body: "Hi {firstName}, your recent {testName} results are back and require " +
			"a follow-up discussion. Please contact {doctorName} to schedule a review. " +
			"This is not an emergency notice, but please don't delay.",
	},
	{
		ID:       "lab_results_normal",
		Name:     "Lab Results — Normal",
		Category: "lab_result",
		Icon:     "flask",
		Priority: "normal",
		Tags:     []string{"normal_lab_result"},
		Body: "Hi {firstName}, good news — your recent {testName} results came back " +
			"within the normal range. No action is needed. Reach out to " +
			"{doctorName} if you have any questions.",
	},
	{
		ID:       "medication_instructions",
		Name:     "Medication Instructions",
		Category: "treatment_plan",
		Icon:     "pill",
		Priority: "normal",
		Tags:     []string{"active_prescription"},
		Body: "Hi {firstName}, a reminder about your current medication: please take " +
			"{medicationName} {dosageInstructions}. If you experience any side " +
			"effects, contact {doctorName} right away.",
	},
	{
		ID:       "follow_up_reminder",
		Name:     "Follow-up Visit Reminder",
		Category: "treatment_plan",
		Icon:     "clock",
		Priority: "normal",
		Tags:     []string{"follow_up_due"},
		Body: "Hi {firstName}, your follow-up visit is due around {followUpDate}. " +
			"Please book an appointment so we can check on your progress.",
	},
	{
		ID:       "general_checkin",
		Name:     "General Check-in",
		Category: "general",
		Icon:     "message",
		Priority: "low",
		Tags:     []string{},
		Body: "Hi {firstName}, we're checking in to see how you're doing. If anything " +
			"has changed with your health, let us know or book a visit.",
	},
	{
		ID:       "thank_you",
		Name:     "Thank You",
		Category: "general",
		Icon:     "heart",
		Priority: "low",
		Tags:     []string{},
		Body: "Hi {firstName}, thank you for visiting our clinic. Follow your " +
			"treatment plan and take any prescribed medication {dosageInstructions}. " +
			"We're here if you need anything.",
	},
}

// Templates returns the full catalog.
func Templates() []Template {
	out := make([]Template, len(templateTable))
	copy(out, templateTable)
	return out
}

// TemplateByID looks up a template in the catalog.
func TemplateByID(id string) (Template, bool) {
	for _, t := range templateTable {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}
