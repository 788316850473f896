package entity

import "time"

type AuditRecord struct {
	Timestamp       time.Time `json:"timestamp"`
	DeviceID        string    `json:"device_id"`
	TicketID        string    `json:"ticket_id"`
	Status          Status    `json:"status"`
	AttendeeName    string    `json:"attendee_name"`
	AttendeeCompany string    `json:"attendee_company"`
	Detail          string    `json:"detail,omitempty"`
}
