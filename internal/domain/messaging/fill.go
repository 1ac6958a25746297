package messaging

import (
	"strings"
)

const longDate = "Monday, January 2, 2006"

// genericFallback is the phrase used when a token has no resolver at all.
const genericFallback = "your healthcare provider"

type resolver func(snap PatientClinicalSnapshot) (string, bool)

// tokenRules maps each known token to its resolver and the fallback phrase
// used when the snapshot lacks the data. Fallbacks are always plain,
// human-readable text; a filled body never contains a literal {token}.
var tokenRules = map[string]struct {
	resolve  resolver
	fallback string
}{
	"patientName": {
		resolve: func(s PatientClinicalSnapshot) (string, bool) {
			name := strings.TrimSpace(s.FirstName + " " + s.LastName)
			return name, name != ""
		},
		fallback: "there",
	},
	"firstName": {
		resolve:  func(s PatientClinicalSnapshot) (string, bool) { return s.FirstName, s.FirstName != "" },
		fallback: "there",
	},
	"lastName": {
		resolve:  func(s PatientClinicalSnapshot) (string, bool) { return s.LastName, s.LastName != "" },
		fallback: "patient",
	},
	"appointmentDate": {
		resolve: func(s PatientClinicalSnapshot) (string, bool) {
			if len(s.UpcomingAppointments) == 0 {
				return "", false
			}
			return s.UpcomingAppointments[0].ScheduledAt.Format(longDate), true
		},
		fallback: "your scheduled date",
	},
	"appointmentTime": {
		resolve: func(s PatientClinicalSnapshot) (string, bool) {
			if len(s.UpcomingAppointments) == 0 {
				return "", false
			}
			return s.UpcomingAppointments[0].ScheduledAt.Format("3:04 PM"), true
		},
		fallback: "the scheduled time",
	},
	"appointmentLocation": {
		resolve: func(s PatientClinicalSnapshot) (string, bool) {
			if len(s.UpcomingAppointments) == 0 || s.UpcomingAppointments[0].Location == "" {
				return "", false
			}
			return s.UpcomingAppointments[0].Location, true
		},
		fallback: "our clinic",
	},
	"medicationName": {
		resolve: func(s PatientClinicalSnapshot) (string, bool) {
			if len(s.ActivePrescriptions) == 0 {
				return "", false
			}
			return s.ActivePrescriptions[0].Medication, true
		},
		fallback: "your medication",
	},
	"dosageInstructions": {
		resolve: func(s PatientClinicalSnapshot) (string, bool) {
			if len(s.ActivePrescriptions) == 0 {
				return "", false
			}
			rx := s.ActivePrescriptions[0]
			parts := []string{}
			if rx.Dosage != "" {
				parts = append(parts, rx.Dosage)
			}
			if rx.Frequency != "" {
				parts = append(parts, rx.Frequency)
			}
			if len(parts) == 0 {
				return "", false
			}
			return strings.Join(parts, ", "), true
		},
		fallback: "as prescribed",
	},
	"testName": {
		resolve: func(s PatientClinicalSnapshot) (string, bool) {
			if len(s.RecentLabResults) == 0 {
				return "", false
			}
			return s.RecentLabResults[0].TestName, true
		},
		fallback: "lab test",
	},
	"resultDate": {
		resolve: func(s PatientClinicalSnapshot) (string, bool) {
			if len(s.RecentLabResults) == 0 {
				return "", false
			}
			return s.RecentLabResults[0].ResultDate.Format(longDate), true
		},
		fallback: "recently",
	},
	"followUpDate": {
		resolve: func(s PatientClinicalSnapshot) (string, bool) {
			if s.LastVisit == nil || s.LastVisit.FollowUpDate == nil {
				return "", false
			}
			return s.LastVisit.FollowUpDate.Format(longDate), true
		},
		fallback: "your next scheduled visit",
	},
	"diagnosis": {
		resolve: func(s PatientClinicalSnapshot) (string, bool) {
			if s.LastVisit == nil || s.LastVisit.Diagnosis == "" {
				return "", false
			}
			return s.LastVisit.Diagnosis, true
		},
		fallback: "your condition",
	},
	"doctorName": {
		resolve:  func(PatientClinicalSnapshot) (string, bool) { return "", false },
		fallback: "your healthcare provider",
	},
}

// FillTemplate substitutes every {token} in body with snapshot data in a
// single left-to-right pass. A token without data resolves to its fallback
// phrase; an unrecognized token resolves to a generic phrase. Substituted
// text is never rescanned, so values containing braces stay verbatim. An
// unterminated brace is not a token and is emitted as-is.
func FillTemplate(body string, snap PatientClinicalSnapshot) string {
	var out strings.Builder
	out.Grow(len(body))

	for i := 0; i < len(body); {
		open := strings.IndexByte(body[i:], '{')
		if open < 0 {
			out.WriteString(body[i:])
			break
		}
		open += i
		out.WriteString(body[i:open])

		close := strings.IndexByte(body[open:], '}')
		if close < 0 {
			out.WriteString(body[open:])
			break
		}
		close += open

		token := body[open+1 : close]
		out.WriteString(resolveToken(token, snap))
		i = close + 1
	}
	return out.String()
}

func resolveToken(token string, snap PatientClinicalSnapshot) string {
	rule, ok := tokenRules[token]
	if !ok {
		return genericFallback
	}
	if value, ok := rule.resolve(snap); ok {
		return value
	}
	return rule.fallback
}
