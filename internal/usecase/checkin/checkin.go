package checkin

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andreyxaxa/Scan-Checkin/config"
	"github.com/andreyxaxa/Scan-Checkin/internal/entity"
	"github.com/andreyxaxa/Scan-Checkin/internal/infrastructure"
	"github.com/andreyxaxa/Scan-Checkin/internal/repo"
	"github.com/andreyxaxa/Scan-Checkin/pkg/logger"
	"github.com/andreyxaxa/Scan-Checkin/pkg/types/errs"
)

// CheckInUseCase drives one scan through
// Resolving -> Validating -> Emitting -> Auditing -> Notified.
// Process and Retry share one lock, so at most one event is in the pipeline
// and two print jobs never interleave.
type CheckInUseCase struct {
	directory infrastructure.GuestDirectory
	emitter   infrastructure.ReceiptEmitter
	audit     repo.AuditLog
	sink      infrastructure.ResultSink
	logger    logger.Interface

	resolveTimeout time.Duration
	emitTimeout    time.Duration
	auditTimeout   time.Duration
	markCheckedIn  bool

	now func() time.Time

	mu   sync.Mutex
	last atomic.Pointer[entity.Outcome]
}

func New(
	directory infrastructure.GuestDirectory,
	emitter infrastructure.ReceiptEmitter,
	audit repo.AuditLog,
	sink infrastructure.ResultSink,
	l logger.Interface,
	pipeline config.Pipeline,
	markCheckedIn bool,
) *CheckInUseCase {
	return &CheckInUseCase{
		directory:      directory,
		emitter:        emitter,
		audit:          audit,
		sink:           sink,
		logger:         l,
		resolveTimeout: pipeline.ResolveTimeout,
		emitTimeout:    pipeline.EmitTimeout,
		auditTimeout:   pipeline.AuditTimeout,
		markCheckedIn:  markCheckedIn,
		now:            time.Now,
	}
}

// Process always yields exactly one outcome and one audit append, whatever
// the collaborators do.
func (uc *CheckInUseCase) Process(ctx context.Context, event entity.ScanEvent) entity.Outcome {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	outcome := uc.resolveAndEmit(ctx, event)
	uc.finish(ctx, outcome)

	return outcome
}

// Retry reprints the last outcome's attendee without asking the directory.
// errs.ErrNoLastOutcome and errs.ErrLastOutcomeUnresolved mean nothing was
// printed or audited.
func (uc *CheckInUseCase) Retry(ctx context.Context) (entity.Outcome, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	last, ok := uc.LastOutcome()
	if !ok {
		return entity.Outcome{}, errs.ErrNoLastOutcome
	}
	if !last.Retryable() {
		return last, errs.ErrLastOutcomeUnresolved
	}

	outcome := uc.reprint(ctx, last)
	uc.finish(ctx, outcome)

	return outcome, nil
}

func (uc *CheckInUseCase) LastOutcome() (entity.Outcome, bool) {
	last := uc.last.Load()
	if last == nil {
		return entity.Outcome{}, false
	}

	return *last, true
}

func (uc *CheckInUseCase) resolveAndEmit(ctx context.Context, event entity.ScanEvent) (outcome entity.Outcome) {
	outcome = entity.Outcome{
		EventID:  event.ID,
		DeviceID: event.DeviceID,
		TicketID: event.TicketID,
	}

	defer func() {
		if r := recover(); r != nil {
			uc.logger.Error(fmt.Errorf("panic: %v", r), "CheckInUseCase - resolveAndEmit - ticket=%s", event.TicketID)

			outcome = uc.complete(entity.Outcome{
				EventID:  event.ID,
				DeviceID: event.DeviceID,
				TicketID: event.TicketID,
			}, entity.StatusInternalError, fmt.Sprintf("internal error: %v", r))
		}
	}()

	// 1. resolving
	resolveCtx, resolveCancel := withTimeout(ctx, uc.resolveTimeout)
	attendee, err := uc.directory.Resolve(resolveCtx, event.TicketID)
	resolveCancel()
	if err != nil {
		uc.logger.Warn("CheckInUseCase - resolveAndEmit - uc.directory.Resolve: ticket=%s: %v", event.TicketID, err)

		if errors.Is(err, errs.ErrGuestNotFound) {
			return uc.complete(outcome, entity.StatusInvalidTicket, err.Error())
		}

		return uc.complete(outcome, entity.StatusDirectoryError, err.Error())
	}

	// 2. validating
	if !attendee.Identifiable() {
		return uc.complete(outcome, entity.StatusInvalidTicket, errs.ErrGuestNotFound.Error())
	}

	outcome.AttendeeName = attendee.DisplayName()
	outcome.AttendeeCompany = attendee.Company

	// 3. emitting
	err = uc.emit(ctx, outcome.AttendeeName, outcome.AttendeeCompany)
	if err != nil {
		uc.logger.Warn("CheckInUseCase - resolveAndEmit - uc.emit: ticket=%s: %v", event.TicketID, err)

		return uc.complete(outcome, entity.StatusPrintFailed, err.Error())
	}

	outcome = uc.complete(outcome, entity.StatusSuccess, "")

	// 3.1 optional check-in write; never downgrades a printed receipt
	if uc.markCheckedIn {
		checkInCtx, checkInCancel := withTimeout(ctx, uc.resolveTimeout)
		err = uc.directory.MarkCheckedIn(checkInCtx, event.TicketID)
		checkInCancel()
		if err != nil {
			uc.logger.Warn("CheckInUseCase - resolveAndEmit - uc.directory.MarkCheckedIn: ticket=%s: %v", event.TicketID, err)

			outcome.Detail = "check-in not recorded: " + err.Error()
		}
	}

	return outcome
}

func (uc *CheckInUseCase) reprint(ctx context.Context, last entity.Outcome) (outcome entity.Outcome) {
	outcome = entity.Outcome{
		EventID:         last.EventID,
		DeviceID:        last.DeviceID,
		TicketID:        last.TicketID,
		AttendeeName:    last.AttendeeName,
		AttendeeCompany: last.AttendeeCompany,
		Retry:           true,
	}

	defer func() {
		if r := recover(); r != nil {
			uc.logger.Error(fmt.Errorf("panic: %v", r), "CheckInUseCase - reprint - ticket=%s", last.TicketID)

			outcome = uc.complete(outcome, entity.StatusInternalError, fmt.Sprintf("internal error: %v", r))
		}
	}()

	err := uc.emit(ctx, last.AttendeeName, last.AttendeeCompany)
	if err != nil {
		uc.logger.Warn("CheckInUseCase - reprint - uc.emit: ticket=%s: %v", last.TicketID, err)

		return uc.complete(outcome, entity.StatusPrintFailed, err.Error())
	}

	return uc.complete(outcome, entity.StatusSuccess, "")
}

func (uc *CheckInUseCase) emit(ctx context.Context, name, company string) error {
	emitCtx, emitCancel := withTimeout(ctx, uc.emitTimeout)
	defer emitCancel()

	return uc.emitter.Emit(emitCtx, name, company)
}

// finish runs Auditing and Notified. Neither step may stop the other.
func (uc *CheckInUseCase) finish(ctx context.Context, outcome entity.Outcome) {
	// 4. auditing
	uc.guard("uc.audit.Append", func() {
		auditCtx, auditCancel := withTimeout(ctx, uc.auditTimeout)
		defer auditCancel()

		err := uc.audit.Append(auditCtx, outcome.AuditRecord())
		if err != nil {
			uc.logger.Error(err, "CheckInUseCase - finish - uc.audit.Append - ticket=%s", outcome.TicketID)
		}
	})

	// 5. notified
	uc.last.Store(&outcome)
	uc.guard("uc.sink.Notify", func() {
		uc.sink.Notify(outcome)
	})
}

func (uc *CheckInUseCase) guard(step string, f func()) {
	defer func() {
		if r := recover(); r != nil {
			uc.logger.Error(fmt.Errorf("panic: %v", r), "CheckInUseCase - finish - %s", step)
		}
	}()

	f()
}

func (uc *CheckInUseCase) complete(outcome entity.Outcome, status entity.Status, detail string) entity.Outcome {
	outcome.Status = status
	outcome.StatusText = status.Text()
	outcome.Success = status == entity.StatusSuccess
	outcome.Detail = detail
	outcome.ProcessedAt = uc.now().UTC()

	return outcome
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, d)
}
