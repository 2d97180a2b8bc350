package http

import (
	"errors"
	"fmt"
	"net/http"

	"courier-tracker/internal/core/application/usecases/commands"
	"courier-tracker/internal/core/domain/model/courier"
	"courier-tracker/internal/core/domain/model/order"
	"courier-tracker/internal/core/domain/model/session"
	"courier-tracker/internal/core/domain/services"
	"courier-tracker/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every failed API call. Redirect tells the UI
// where to go: the login page or the caller's landing page.
type ErrorResponse struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, session.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, session.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, commands.ErrCustomerLocationUnresolved):
		return http.StatusUnprocessableEntity
	case errors.Is(err, commands.ErrCourierPositionUnavailable),
		errors.Is(err, courier.ErrPermissionDenied),
		errors.Is(err, courier.ErrPositionUnavailable),
		errors.Is(err, courier.ErrPositionTimeout),
		errors.Is(err, order.ErrOrderTakenByAnotherCourier),
		errors.Is(err, order.ErrOrderNotAssignedToCourier):
		return http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrUpstreamFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an ErrorResponse. Internal failures are logged and
// reported without detail.
func (s *Server) fail(c echo.Context, err error) error {
	status := statusOf(err)
	body := ErrorResponse{Code: status, Message: err.Error()}

	switch status {
	case http.StatusUnauthorized:
		body.Redirect = services.LoginRoute
	case http.StatusForbidden:
		if caller := callerOf(c); caller != nil {
			body.Redirect = caller.DefaultRoute()
		}
	case http.StatusUnprocessableEntity:
		body.Message = fmt.Sprintf("%s for order #%s", commands.ErrCustomerLocationUnresolved, c.Param("id"))
	case http.StatusInternalServerError:
		s.logger.ErrorContext(c.Request().Context(), "request failed", "path", c.Path(), "error", err)
		body.Message = http.StatusText(status)
	}

	return c.JSON(status, body)
}
