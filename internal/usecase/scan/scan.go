package scan

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/andreyxaxa/Scan-Checkin/internal/entity"
	"github.com/andreyxaxa/Scan-Checkin/internal/infrastructure"
	"github.com/andreyxaxa/Scan-Checkin/pkg/logger"
	"github.com/andreyxaxa/Scan-Checkin/pkg/types/errs"
	"github.com/google/uuid"
)

type ScanUseCase struct {
	queue  infrastructure.EventQueue
	now    func() time.Time
	logger logger.Interface
}

func New(q infrastructure.EventQueue, l logger.Interface) *ScanUseCase {
	return &ScanUseCase{
		queue:  q,
		now:    time.Now,
		logger: l,
	}
}

// Submit validates one scan and queues it. It returns as soon as the event
// is queued; processing happens on the consumer.
func (uc *ScanUseCase) Submit(ctx context.Context, deviceID, ticketID string) (entity.ScanEvent, error) {
	ticketID = strings.TrimSpace(ticketID)
	if ticketID == "" {
		return entity.ScanEvent{}, errs.ErrMissingTicket
	}

	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		deviceID = entity.DefaultDeviceID
	}

	event := entity.ScanEvent{
		ID:         uuid.New(),
		DeviceID:   deviceID,
		TicketID:   ticketID,
		ReceivedAt: uc.now().UTC(),
	}

	err := uc.queue.Enqueue(event)
	if err != nil {
		return entity.ScanEvent{}, fmt.Errorf("ScanUseCase - Submit - uc.queue.Enqueue: %w", err)
	}

	uc.logger.Debug("scan queued: event=%s device=%s ticket=%s", event.ID, event.DeviceID, event.TicketID)

	return event, nil
}
