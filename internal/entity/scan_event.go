package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultDeviceID = "default" // device did not identify itself
	ManualDeviceID  = "manual"  // browser manual-entry path
)

// ScanEvent is one accepted scan. It is never mutated after the ingress
// builds it.
type ScanEvent struct {
	ID         uuid.UUID `json:"id"`
	DeviceID   string    `json:"device_id"`
	TicketID   string    `json:"ticket_id"`
	ReceivedAt time.Time `json:"received_at"`
}
