package response

type Scan struct {
	OK       bool   `json:"ok" example:"true"`
	TicketID string `json:"ticket_id" example:"g-abc123"`
	DeviceID string `json:"device_id" example:"ranger-1"`
}

type Health struct {
	Status string `json:"status" example:"ok"`
}
