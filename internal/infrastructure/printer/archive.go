package printer

import (
	"context"
	"fmt"
	"time"

	"github.com/andreyxaxa/Scan-Checkin/internal/infrastructure"
	"github.com/andreyxaxa/Scan-Checkin/internal/repo"
	"github.com/andreyxaxa/Scan-Checkin/pkg/logger"
	"github.com/google/uuid"
)

// Archived keeps a PNG copy of every receipt that actually printed.
// Archive failures are logged and never fail the print.
type Archived struct {
	next    infrastructure.ReceiptEmitter
	archive repo.ReceiptArchive
	logger  logger.Interface
	now     func() time.Time
}

func NewArchived(next infrastructure.ReceiptEmitter, archive repo.ReceiptArchive, l logger.Interface) *Archived {
	return &Archived{
		next:    next,
		archive: archive,
		logger:  l,
		now:     time.Now,
	}
}

func (a *Archived) Emit(ctx context.Context, name, company string) error {
	err := a.next.Emit(ctx, name, company)
	if err != nil {
		return err
	}

	png, err := PNG(name, company)
	if err != nil {
		a.logger.Error(err, "Archived - Emit - PNG")
		return nil
	}

	key := fmt.Sprintf("%s/%s.png", a.now().UTC().Format("2006-01-02"), uuid.NewString())

	err = a.archive.Store(ctx, key, png)
	if err != nil {
		a.logger.Error(err, "Archived - Emit - a.archive.Store")
	}

	return nil
}
