package http

import (
	"net/http"

	"courier-tracker/internal/core/application/usecases/commands"
	"courier-tracker/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// OpenMapView handles PUT /api/v1/orders/:id/map. Opening again replaces the
// order's previous view.
func (s *Server) OpenMapView(c echo.Context) error {
	id, err := orderIDParam(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewOpenMapViewCommand(id)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.OpenMapView.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return s.writeMapView(c, id, http.StatusCreated)
}

// GetMapView handles GET /api/v1/orders/:id/map.
func (s *Server) GetMapView(c echo.Context) error {
	id, err := orderIDParam(c)
	if err != nil {
		return s.fail(c, err)
	}
	return s.writeMapView(c, id, http.StatusOK)
}

// CloseMapView handles DELETE /api/v1/orders/:id/map.
func (s *Server) CloseMapView(c echo.Context) error {
	id, err := orderIDParam(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewCloseMapViewCommand(id)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.CloseMapView.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) writeMapView(c echo.Context, id int64, status int) error {
	query, err := queries.NewGetMapViewQuery(id)
	if err != nil {
		return s.fail(c, err)
	}
	resp, err := s.handlers.GetMapView.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(status, resp)
}
