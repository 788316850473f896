package entity

import (
	"time"

	"github.com/google/uuid"
)

type Outcome struct {
	EventID         uuid.UUID `json:"event_id"`
	DeviceID        string    `json:"device_id"`
	TicketID        string    `json:"ticket_id"`
	AttendeeName    string    `json:"attendee_name"`
	AttendeeCompany string    `json:"attendee_company"`
	Status          Status    `json:"status"`
	StatusText      string    `json:"status_text"`
	Detail          string    `json:"detail,omitempty"`
	Success         bool      `json:"success"`
	Retry           bool      `json:"retry"`
	ProcessedAt     time.Time `json:"processed_at"`
}

// Retryable reports whether the outcome carries an attendee a reprint can use.
func (o Outcome) Retryable() bool {
	return o.AttendeeName != ""
}

func (o Outcome) AuditRecord() AuditRecord {
	return AuditRecord{
		Timestamp:       o.ProcessedAt,
		DeviceID:        o.DeviceID,
		TicketID:        o.TicketID,
		Status:          o.Status,
		AttendeeName:    o.AttendeeName,
		AttendeeCompany: o.AttendeeCompany,
		Detail:          o.Detail,
	}
}
