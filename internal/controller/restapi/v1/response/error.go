package response

type Error struct {
	OK    bool   `json:"ok" example:"false"`
	Error string `json:"error" example:"Missing ticket_id"`
}
