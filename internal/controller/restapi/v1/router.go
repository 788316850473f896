package v1

import (
	"github.com/andreyxaxa/Scan-Checkin/internal/infrastructure"
	"github.com/andreyxaxa/Scan-Checkin/internal/usecase"
	"github.com/andreyxaxa/Scan-Checkin/pkg/logger"
	"github.com/gofiber/fiber/v2"
)

// NewScanRoutes mounts the device-facing routes. Scanners are configured
// with a bare URL, so these live at the root rather than under /v1.
func NewScanRoutes(root fiber.Router, scan usecase.ScanUseCase, l logger.Interface) {
	r := &V1{scan: scan, logger: l}

	{
		// API
		root.Post("/scan", r.processScan)
		root.Post("/manual/scan", r.processManualScan)
		root.Get("/health", r.health)

		// UI
		root.Get("/", r.showUI)
	}
}

func NewOperatorRoutes(apiV1Group fiber.Router, chk usecase.CheckInUseCase, sink infrastructure.ResultSink, l logger.Interface) {
	r := &V1{chk: chk, sink: sink, logger: l}

	operator := apiV1Group.Group("/operator")
	{
		operator.Post("/retry", r.retry)
		operator.Get("/last", r.last)
	}
}
