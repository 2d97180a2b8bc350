package http

import (
	"net/http"
	"time"

	"courier-tracker/internal/core/application/usecases/commands"
	"courier-tracker/internal/core/application/usecases/queries"
	"courier-tracker/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type positionRequest struct {
	Lat        *float64  `json:"lat"`
	Lng        *float64  `json:"lng"`
	Accuracy   float64   `json:"accuracy"`
	CapturedAt time.Time `json:"captured_at"`
}

type deviceStateRequest struct {
	State string `json:"state"`
}

// RecordPosition handles POST /api/v1/position: a fix pushed by the device.
func (s *Server) RecordPosition(c echo.Context) error {
	var req positionRequest
	if err := c.Bind(&req); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}
	if req.Lat == nil || req.Lng == nil {
		return s.fail(c, errs.NewValueIsRequiredError("lat and lng"))
	}

	cmd, err := commands.NewRecordPositionCommand(*req.Lat, *req.Lng, req.Accuracy, req.CapturedAt)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.RecordPosition.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusAccepted)
}

// SetDeviceState handles PUT /api/v1/position/permission.
func (s *Server) SetDeviceState(c echo.Context) error {
	var req deviceStateRequest
	if err := c.Bind(&req); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewSetDeviceStateCommand(req.State)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.SetDeviceState.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetTrackingStatus handles GET /api/v1/position.
func (s *Server) GetTrackingStatus(c echo.Context) error {
	return s.writeTrackingStatus(c)
}

// RetryTracking handles POST /api/v1/position/retry: a denied tracker runs
// its initial acquisition again.
func (s *Server) RetryTracking(c echo.Context) error {
	if err := s.handlers.InitializeTracking.Handle(c.Request().Context(), commands.NewInitializeTrackingCommand(true)); err != nil {
		return s.fail(c, err)
	}
	return s.writeTrackingStatus(c)
}

// DismissBanner handles DELETE /api/v1/position/banner.
func (s *Server) DismissBanner(c echo.Context) error {
	if err := s.handlers.DismissBanner.Handle(c.Request().Context(), commands.NewDismissBannerCommand()); err != nil {
		return s.fail(c, err)
	}
	return s.writeTrackingStatus(c)
}

func (s *Server) writeTrackingStatus(c echo.Context) error {
	resp, err := s.handlers.GetTrackingStatus.Handle(c.Request().Context(), queries.NewGetTrackingStatusQuery())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}
