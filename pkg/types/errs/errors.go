package errs

import "errors"

var (
	ErrMissingTicket = errors.New("missing ticket_id")
	ErrQueueClosed   = errors.New("scan queue closed")

	ErrGuestNotFound   = errors.New("guest data missing or invalid")
	ErrDirectoryStatus = errors.New("directory returned non-success status")

	ErrNoLastOutcome         = errors.New("no previous check-in to retry")
	ErrLastOutcomeUnresolved = errors.New("previous check-in has no attendee to print")

	ErrUnknownPrinterDriver = errors.New("unknown printer driver")
)
