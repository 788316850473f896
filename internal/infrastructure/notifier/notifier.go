package notifier

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andreyxaxa/Scan-Checkin/internal/entity"
	"github.com/andreyxaxa/Scan-Checkin/internal/infrastructure"
	"github.com/andreyxaxa/Scan-Checkin/pkg/logger"
	"github.com/andreyxaxa/Scan-Checkin/pkg/queue"
)

const _defaultPublishTimeout = 5 * time.Second

// Sink is the operator-facing end of the pipeline. Notify only enqueues;
// display lines and publishing happen on the sink's own goroutine.
type Sink struct {
	q          *queue.Queue[entity.Outcome]
	publishers []infrastructure.OutcomePublisher
	logger     logger.Interface

	publishTimeout time.Duration

	mu   sync.RWMutex
	last *entity.Outcome

	wg      sync.WaitGroup
	started atomic.Bool
}

func New(l logger.Interface, publishers ...infrastructure.OutcomePublisher) *Sink {
	return &Sink{
		q:              queue.New[entity.Outcome](),
		publishers:     publishers,
		logger:         l,
		publishTimeout: _defaultPublishTimeout,
	}
}

func (s *Sink) Notify(outcome entity.Outcome) {
	s.mu.Lock()
	s.last = &outcome
	s.mu.Unlock()

	err := s.q.Enqueue(outcome)
	if err != nil {
		s.logger.Warn("Sink - Notify - outcome for ticket %s not displayed: %v", outcome.TicketID, err)
	}
}

func (s *Sink) Last() (entity.Outcome, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.last == nil {
		return entity.Outcome{}, false
	}

	return *s.last, true
}

func (s *Sink) Start() error {
	if !s.started.CompareAndSwap(false, true) {
		return fmt.Errorf("Sink - Start - sink already started")
	}

	s.wg.Add(1)
	go s.run()

	return nil
}

func (s *Sink) run() {
	defer s.wg.Done()

	for {
		outcome, err := s.q.Dequeue(context.Background())
		if errors.Is(err, queue.ErrClosed) {
			return
		}

		s.deliver(outcome)
	}
}

func (s *Sink) deliver(outcome entity.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error(fmt.Errorf("panic %v", r), "Sink - deliver - panic ticket=%s", outcome.TicketID)
		}
	}()

	s.display(outcome)

	for _, p := range s.publishers {
		ctx, cancel := context.WithTimeout(context.Background(), s.publishTimeout)
		err := p.Publish(ctx, outcome)
		cancel()

		if err != nil {
			s.logger.Error(err, "Sink - deliver - p.Publish")
		}
	}
}

func (s *Sink) display(o entity.Outcome) {
	prefix := "CHECK-IN"
	if o.Retry {
		prefix = "REPRINT"
	}

	name := o.AttendeeName
	if name == "" {
		name = "-"
	}

	if o.Success {
		s.logger.Info("%s %s | %s | %s | device=%s", prefix, o.StatusText, o.TicketID, name, o.DeviceID)
		return
	}

	if o.Detail != "" {
		s.logger.Warn("%s %s | %s | %s | device=%s | %s", prefix, o.StatusText, o.TicketID, name, o.DeviceID, o.Detail)
		return
	}

	s.logger.Warn("%s %s | %s | %s | device=%s", prefix, o.StatusText, o.TicketID, name, o.DeviceID)
}

// Shutdown flushes outcomes still queued for display, then closes publishers.
func (s *Sink) Shutdown(ctx context.Context) error {
	s.q.Close()

	if s.started.Load() {
		done := make(chan struct{})

		go func() {
			s.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			return fmt.Errorf("Sink - Shutdown: %w", ctx.Err())
		}
	}

	var errList []error
	for _, p := range s.publishers {
		if err := p.Close(); err != nil {
			errList = append(errList, err)
		}
	}

	return errors.Join(errList...)
}
