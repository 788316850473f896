package scanqueue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andreyxaxa/Scan-Checkin/internal/entity"
	"github.com/andreyxaxa/Scan-Checkin/internal/infrastructure"
	"github.com/andreyxaxa/Scan-Checkin/internal/usecase"
	"github.com/andreyxaxa/Scan-Checkin/pkg/logger"
	"github.com/andreyxaxa/Scan-Checkin/pkg/queue"
)

// Consumer is the only reader of the scan queue. It hands events to the
// check-in use case strictly one at a time.
type Consumer struct {
	chk    usecase.CheckInUseCase
	q      infrastructure.EventQueue
	logger logger.Interface

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	started atomic.Bool
}

func New(chk usecase.CheckInUseCase, q infrastructure.EventQueue, l logger.Interface) *Consumer {
	return &Consumer{
		chk:    chk,
		q:      q,
		logger: l,
	}
}

func (c *Consumer) Start(ctx context.Context) error {
	if !c.started.CompareAndSwap(false, true) {
		return fmt.Errorf("Consumer - Start - consumer already started")
	}

	c.ctx, c.cancel = context.WithCancel(ctx)

	depth := c.q.Len
	queueLen.Store(&depth)

	c.wg.Add(1)
	go c.run()

	return nil
}

func (c *Consumer) run() {
	defer c.wg.Done()

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		// 1. wait for the next scan
		event, err := c.q.Dequeue(c.ctx)
		if err != nil {
			if errors.Is(err, queue.ErrClosed) || errors.Is(err, context.Canceled) {
				return
			}
			c.logger.Error(err, "Consumer - run - c.q.Dequeue")

			continue
		}

		// 2. process it to the end; shutdown does not cut an event in half
		c.process(context.WithoutCancel(c.ctx), event)
	}
}

func (c *Consumer) process(ctx context.Context, event entity.ScanEvent) {
	defer func() {
		if r := recover(); r != nil {
			processedTotal.WithLabelValues(string(entity.StatusInternalError)).Inc()
			c.logger.Error(fmt.Errorf("panic %v", r), "Consumer - process - panic ticket=%s", event.TicketID)
		}
	}()

	start := time.Now()
	outcome := c.chk.Process(ctx, event)

	processingDuration.Observe(time.Since(start).Seconds())
	processedTotal.WithLabelValues(string(outcome.Status)).Inc()

	c.logger.Info("scan processed: device=%s ticket=%s status=%s waited=%s",
		event.DeviceID, event.TicketID, outcome.Status, start.Sub(event.ReceivedAt).Round(time.Millisecond))
}

// Shutdown stops taking new events and waits for the one in flight.
func (c *Consumer) Shutdown(ctx context.Context) error {
	if !c.started.Load() {
		return nil
	}

	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})

	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if left := c.q.Len(); left > 0 {
			c.logger.Warn("Consumer - Shutdown - %d queued scans discarded", left)
		}

		return nil
	case <-ctx.Done():
		return fmt.Errorf("Consumer - Shutdown: %w", ctx.Err())
	}
}
