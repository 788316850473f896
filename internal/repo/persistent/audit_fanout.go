package persistent

import (
	"context"
	"errors"

	"github.com/andreyxaxa/Scan-Checkin/internal/entity"
	"github.com/andreyxaxa/Scan-Checkin/internal/repo"
)

// AuditFanOut writes every record to all logs, even when an earlier one fails.
type AuditFanOut struct {
	logs []repo.AuditLog
}

func NewAuditFanOut(logs ...repo.AuditLog) *AuditFanOut {
	return &AuditFanOut{logs: logs}
}

func (f *AuditFanOut) Append(ctx context.Context, record entity.AuditRecord) error {
	var errList []error

	for _, l := range f.logs {
		if err := l.Append(ctx, record); err != nil {
			errList = append(errList, err)
		}
	}

	return errors.Join(errList...)
}
