package entity

// Status is the closed set of outcome categories.
type Status string

const (
	StatusSuccess        Status = "success"
	StatusDirectoryError Status = "directory_error"
	StatusInvalidTicket  Status = "invalid_ticket"
	StatusPrintFailed    Status = "print_failed"
	StatusInternalError  Status = "internal_error" // recovered fault inside one event
)

func (s Status) Text() string {
	switch s {
	case StatusSuccess:
		return "Success"
	case StatusDirectoryError:
		return "Error: directory unavailable"
	case StatusInvalidTicket:
		return "Error: invalid ticket"
	case StatusPrintFailed:
		return "Error: print failed"
	case StatusInternalError:
		return "Error: internal failure"
	default:
		return "Error: " + string(s)
	}
}
