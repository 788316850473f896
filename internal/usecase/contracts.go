package usecase

import (
	"context"

	"github.com/andreyxaxa/Scan-Checkin/internal/entity"
)

type (
	ScanUseCase interface {
		Submit(ctx context.Context, deviceID, ticketID string) (entity.ScanEvent, error)
	}

	CheckInUseCase interface {
		Process(ctx context.Context, event entity.ScanEvent) entity.Outcome
		Retry(ctx context.Context) (entity.Outcome, error)
		LastOutcome() (entity.Outcome, bool)
	}
)
