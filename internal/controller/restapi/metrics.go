package restapi

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "checkin_http_requests_total",
	Help: "HTTP requests by route and status code",
}, []string{"method", "route", "code"})

func requestMetrics(ctx *fiber.Ctx) error {
	err := ctx.Next()

	code := ctx.Response().StatusCode()
	if err != nil {
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		} else {
			code = fiber.StatusInternalServerError
		}
	}

	httpRequestsTotal.WithLabelValues(ctx.Method(), ctx.Route().Path, strconv.Itoa(code)).Inc()

	return err
}
