package v1

import (
	"errors"
	"net/http"

	"github.com/andreyxaxa/Scan-Checkin/internal/controller/restapi/v1/request"
	"github.com/andreyxaxa/Scan-Checkin/internal/controller/restapi/v1/response"
	"github.com/andreyxaxa/Scan-Checkin/internal/entity"
	"github.com/andreyxaxa/Scan-Checkin/pkg/types/errs"
	"github.com/gofiber/fiber/v2"
)

const _missingTicketMsg = "Missing ticket_id"

// @Summary 	Submit a scan
// @Description Queues one barcode scan for check-in. Returns once queued, before the guest is looked up.
// @Tags 		scan
// @Accept 		json,x-www-form-urlencoded,mpfd,plain
// @Produce 	json
// @Param 		ticket_id formData string false "Ticket id (aliases: ticket, barcode; or the raw body)"
// @Param 		ranger_id formData string false "Device id (aliases: device_id, scanner_id, ranger, device)"
// @Success 	200 {object} response.Scan
// @Failure 	400 {object} response.Error "Missing ticket_id"
// @Failure 	500 {object} response.Error "Queue unavailable"
// @Router 		/scan [post]
func (r *V1) processScan(ctx *fiber.Ctx) error {
	return r.submit(ctx, "")
}

// @Summary 	Submit a manual check-in
// @Description Same contract as /scan; the device id defaults to "manual".
// @Tags 		scan
// @Accept 		json,x-www-form-urlencoded,mpfd,plain
// @Produce 	json
// @Success 	200 {object} response.Scan
// @Failure 	400 {object} response.Error "Missing ticket_id"
// @Failure 	500 {object} response.Error "Queue unavailable"
// @Router 		/manual/scan [post]
func (r *V1) processManualScan(ctx *fiber.Ctx) error {
	return r.submit(ctx, entity.ManualDeviceID)
}

func (r *V1) submit(ctx *fiber.Ctx, defaultDevice string) error {
	payload := parseScan(ctx)

	deviceID := payload.DeviceID
	if deviceID == "" {
		deviceID = defaultDevice
	}

	event, err := r.scan.Submit(ctx.UserContext(), deviceID, payload.TicketID)
	if err != nil {
		if errors.Is(err, errs.ErrMissingTicket) {
			return errorResponse(ctx, http.StatusBadRequest, _missingTicketMsg)
		}
		r.logger.Error(err, "restapi - v1 - submit")

		return errorResponse(ctx, http.StatusInternalServerError, err.Error())
	}

	return ctx.Status(http.StatusOK).JSON(response.Scan{
		OK:       true,
		TicketID: event.TicketID,
		DeviceID: event.DeviceID,
	})
}

func parseScan(ctx *fiber.Ctx) request.Scan {
	contentType := ctx.Get(fiber.HeaderContentType)
	if !request.IsMultipart(contentType) {
		return request.ParseScan(contentType, ctx.Body())
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return request.Scan{}
	}

	return request.FromValues(form.Value)
}

// @Summary 	Liveness check
// @Tags 		health
// @Produce 	json
// @Success 	200 {object} response.Health
// @Router 		/health [get]
func (r *V1) health(ctx *fiber.Ctx) error {
	return ctx.Status(http.StatusOK).JSON(response.Health{Status: "ok"})
}
