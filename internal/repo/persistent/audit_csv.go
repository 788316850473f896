package persistent

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/andreyxaxa/Scan-Checkin/internal/entity"
)

// _timestampLayout is ISO-8601 UTC with microseconds.
const _timestampLayout = "2006-01-02T15:04:05.000000Z"

var auditHeader = []string{
	"timestamp_utc",
	"device_id",
	"ticket_id",
	"status",
	"attendee_name",
	"attendee_company",
	"detail",
}

// CSVAuditLog appends one row per processed scan. The file is opened per
// append so an operator can rotate or copy it while the service runs.
type CSVAuditLog struct {
	mu   sync.Mutex
	path string
}

func NewCSVAuditLog(path string) (*CSVAuditLog, error) {
	dir := filepath.Dir(path)

	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("CSVAuditLog - New - os.MkdirAll: %w", err)
	}

	return &CSVAuditLog{path: path}, nil
}

func (a *CSVAuditLog) Append(ctx context.Context, record entity.AuditRecord) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("CSVAuditLog - Append: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	f, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("CSVAuditLog - Append - os.OpenFile: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("CSVAuditLog - Append - f.Stat: %w", err)
	}

	w := csv.NewWriter(f)

	if info.Size() == 0 {
		err = w.Write(auditHeader)
		if err != nil {
			return fmt.Errorf("CSVAuditLog - Append - w.Write header: %w", err)
		}
	}

	err = w.Write([]string{
		record.Timestamp.UTC().Format(_timestampLayout),
		record.DeviceID,
		record.TicketID,
		string(record.Status),
		record.AttendeeName,
		record.AttendeeCompany,
		record.Detail,
	})
	if err != nil {
		return fmt.Errorf("CSVAuditLog - Append - w.Write: %w", err)
	}

	w.Flush()
	if err = w.Error(); err != nil {
		return fmt.Errorf("CSVAuditLog - Append - w.Flush: %w", err)
	}

	err = f.Sync()
	if err != nil {
		return fmt.Errorf("CSVAuditLog - Append - f.Sync: %w", err)
	}

	return nil
}
