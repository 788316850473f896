package response

import (
	"time"

	"github.com/andreyxaxa/Scan-Checkin/internal/entity"
)

type Outcome struct {
	EventID         string    `json:"event_id"`
	DeviceID        string    `json:"device_id"`
	TicketID        string    `json:"ticket_id"`
	AttendeeName    string    `json:"attendee_name"`
	AttendeeCompany string    `json:"attendee_company"`
	Status          string    `json:"status" example:"success"`
	StatusText      string    `json:"status_text" example:"Success"`
	Detail          string    `json:"detail,omitempty"`
	Success         bool      `json:"success"`
	Retry           bool      `json:"retry"`
	ProcessedAt     time.Time `json:"processed_at"`
}

func NewOutcome(o entity.Outcome) Outcome {
	return Outcome{
		EventID:         o.EventID.String(),
		DeviceID:        o.DeviceID,
		TicketID:        o.TicketID,
		AttendeeName:    o.AttendeeName,
		AttendeeCompany: o.AttendeeCompany,
		Status:          string(o.Status),
		StatusText:      o.StatusText,
		Detail:          o.Detail,
		Success:         o.Success,
		Retry:           o.Retry,
		ProcessedAt:     o.ProcessedAt,
	}
}

type Retry struct {
	OK      bool     `json:"ok" example:"true"`
	Retried bool     `json:"retried"`
	Info    string   `json:"info,omitempty" example:"No previous check-in to retry."`
	Outcome *Outcome `json:"outcome,omitempty"`
}
