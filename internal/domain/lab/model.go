package lab

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID        uuid.UUID  `json:"id"`
	PatientID uuid.UUID  `json:"patientId"`
	VisitID   *uuid.UUID `json:"visitId,omitempty"`
	TestName  string     `json:"testName"`
	TestCode  *string    `json:"testCode,omitempty"`
	Priority  string     `json:"priority"`
	Status    string     `json:"status"`
	OrderedBy *string    `json:"orderedBy,omitempty"`
	OrderedAt time.Time  `json:"orderedAt"`
	Notes     *string    `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type Result struct {
	ID             uuid.UUID  `json:"id"`
	OrderID        *uuid.UUID `json:"orderId,omitempty"`
	PatientID      uuid.UUID  `json:"patientId"`
	TestName       string     `json:"testName"`
	Value          string     `json:"value"`
	Unit           *string    `json:"unit,omitempty"`
	ReferenceRange *string    `json:"referenceRange,omitempty"`
	Abnormal       bool       `json:"abnormal"`
	ResultDate     time.Time  `json:"resultDate"`
	Notes          *string    `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}
