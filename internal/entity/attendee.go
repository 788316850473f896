package entity

// Attendee is what the guest directory resolved for a ticket.
type Attendee struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email,omitempty"`
}

// Identifiable reports whether the directory gave us someone we can print.
func (a Attendee) Identifiable() bool {
	return a.Name != "" || a.Email != ""
}

// DisplayName falls back to the email when the directory had no name.
func (a Attendee) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}

	return a.Email
}
