package infrastructure

import (
	"context"

	"github.com/andreyxaxa/Scan-Checkin/internal/entity"
)

type (
	// GuestDirectory resolves tickets against the remote guest list.
	GuestDirectory interface {
		Resolve(ctx context.Context, ticketID string) (entity.Attendee, error)
		MarkCheckedIn(ctx context.Context, ticketID string) error
	}

	ReceiptEmitter interface {
		Emit(ctx context.Context, name, company string) error
	}

	// ResultSink surfaces outcomes to the operator. Notify must not block on
	// the sink's own side effects.
	ResultSink interface {
		Notify(outcome entity.Outcome)
		Last() (entity.Outcome, bool)
	}

	// EventQueue hands scan events from the ingress to the single consumer.
	EventQueue interface {
		Enqueue(event entity.ScanEvent) error
		Dequeue(ctx context.Context) (entity.ScanEvent, error)
		Len() int
	}

	OutcomePublisher interface {
		Publish(ctx context.Context, outcome entity.Outcome) error
		Close() error
	}
)
