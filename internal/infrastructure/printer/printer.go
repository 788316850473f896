package printer

import (
	"fmt"

	"github.com/andreyxaxa/Scan-Checkin/config"
	"github.com/andreyxaxa/Scan-Checkin/internal/infrastructure"
	"github.com/andreyxaxa/Scan-Checkin/pkg/logger"
	"github.com/andreyxaxa/Scan-Checkin/pkg/types/errs"
)

const (
	DriverLog   = "log"
	DriverTCP   = "tcp"
	DriverSpool = "spool"
)

// New picks the driver named in cfg.
func New(cfg config.Printer, l logger.Interface) (infrastructure.ReceiptEmitter, error) {
	switch cfg.Driver {
	case DriverLog, "":
		return NewLogPrinter(l), nil
	case DriverTCP:
		if cfg.Addr == "" {
			return nil, fmt.Errorf("printer - New: PRINTER_ADDR is required for the tcp driver")
		}
		return NewTCPPrinter(cfg.Addr, cfg.Timeout), nil
	case DriverSpool:
		p, err := NewSpoolPrinter(cfg.SpoolDir)
		if err != nil {
			return nil, fmt.Errorf("printer - New: %w", err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("printer - New: %w: %q", errs.ErrUnknownPrinterDriver, cfg.Driver)
	}
}
