package messaging

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID         uuid.UUID  `json:"id"`
	PatientID  uuid.UUID  `json:"patientId"`
	TemplateID *string    `json:"templateId,omitempty"`
	Subject    string     `json:"subject"`
	Body       string     `json:"body"`
	Channel    string     `json:"channel"`
	Status     string     `json:"status"`
	SentBy     *string    `json:"sentBy,omitempty"`
	SentAt     *time.Time `json:"sentAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// Template is read-only reference data. Body text carries {token}
// placeholders resolved at fill time.
type Template struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"` // appointment | lab_result | treatment_plan | general
	Icon     string   `json:"icon"`
	Priority string   `json:"priority"` // low | normal | high
	Tags     []string `json:"tags"`
	Body     string   `json:"body"`
}

// Suggestion is a template pre-filled against a patient snapshot, with a
// human-readable reason for why it was offered.
type Suggestion struct {
	TemplateID string `json:"templateId"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	Priority   string `json:"priority"`
	Reason     string `json:"reason"`
	FilledBody string `json:"filledBody"`
}
