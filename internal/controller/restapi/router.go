package restapi

import (
	"github.com/andreyxaxa/Scan-Checkin/config"
	v1 "github.com/andreyxaxa/Scan-Checkin/internal/controller/restapi/v1"
	"github.com/andreyxaxa/Scan-Checkin/internal/infrastructure"
	"github.com/andreyxaxa/Scan-Checkin/internal/usecase"
	"github.com/andreyxaxa/Scan-Checkin/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// @title Scan check-in
// @version 1.0.0
// @host localhost:8765
// @BasePath /
func NewRouter(app *fiber.App, cfg *config.Config, scan usecase.ScanUseCase, chk usecase.CheckInUseCase, sink infrastructure.ResultSink, l logger.Interface) {
	app.Use(recover.New())
	app.Use(requestMetrics)

	// Swagger
	if cfg.Swagger.Enabled {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	// Prometheus
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Devices
	v1.NewScanRoutes(app, scan, l)

	// Routers
	apiV1Group := app.Group("/v1")
	{
		v1.NewOperatorRoutes(apiV1Group, chk, sink, l)
	}
}
