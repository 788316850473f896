package printer

import (
	"context"

	"github.com/andreyxaxa/Scan-Checkin/pkg/logger"
)

// LogPrinter is a dry-run driver.
type LogPrinter struct {
	logger logger.Interface
}

func NewLogPrinter(l logger.Interface) *LogPrinter {
	return &LogPrinter{logger: l}
}

func (p *LogPrinter) Emit(_ context.Context, name, company string) error {
	p.logger.Info("receipt (dry run):\n%s", Text(name, company))

	return nil
}
