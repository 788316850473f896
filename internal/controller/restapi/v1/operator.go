package v1

import (
	"errors"
	"net/http"

	"github.com/andreyxaxa/Scan-Checkin/internal/controller/restapi/v1/response"
	"github.com/andreyxaxa/Scan-Checkin/pkg/types/errs"
	"github.com/gofiber/fiber/v2"
)

const (
	_noPreviousMsg = "No previous check-in to retry."
	_unresolvedMsg = "Previous check-in has no attendee to print."
)

// @Summary 	Retry the last print
// @Description Reprints the receipt of the most recent check-in without asking the directory again.
// @Tags 		operator
// @Produce 	json
// @Success 	200 {object} response.Retry
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/operator/retry [post]
func (r *V1) retry(ctx *fiber.Ctx) error {
	outcome, err := r.chk.Retry(ctx.UserContext())

	switch {
	case errors.Is(err, errs.ErrNoLastOutcome):
		return ctx.Status(http.StatusOK).JSON(response.Retry{OK: true, Info: _noPreviousMsg})
	case errors.Is(err, errs.ErrLastOutcomeUnresolved):
		last := response.NewOutcome(outcome)
		return ctx.Status(http.StatusOK).JSON(response.Retry{OK: true, Info: _unresolvedMsg, Outcome: &last})
	case err != nil:
		r.logger.Error(err, "restapi - v1 - retry")

		return errorResponse(ctx, http.StatusInternalServerError, "retry failed")
	}

	res := response.NewOutcome(outcome)

	return ctx.Status(http.StatusOK).JSON(response.Retry{OK: true, Retried: true, Outcome: &res})
}

// @Summary 	Last outcome
// @Description Returns the most recent check-in or reprint outcome, as last shown to the operator.
// @Tags 		operator
// @Produce 	json
// @Success 	200 {object} response.Outcome
// @Failure 	404 {object} response.Error "Nothing processed yet"
// @Router 		/v1/operator/last [get]
func (r *V1) last(ctx *fiber.Ctx) error {
	outcome, ok := r.sink.Last()
	if !ok {
		return errorResponse(ctx, http.StatusNotFound, "no check-in processed yet")
	}

	return ctx.Status(http.StatusOK).JSON(response.NewOutcome(outcome))
}
