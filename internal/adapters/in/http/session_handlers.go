package http

import (
	"net/http"

	"courier-tracker/internal/core/application/usecases/commands"
	"courier-tracker/internal/core/application/usecases/queries"
	"courier-tracker/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/v1/session and answers with the profile and the
// route the UI should land on.
func (s *Server) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("request body", err))
	}

	cmd, err := commands.NewLoginCommand(req.Email, req.Password)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.Login.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	profile, err := s.handlers.GetSession.Handle(c.Request().Context(), queries.NewGetSessionQuery())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, profile)
}

// GetSession handles GET /api/v1/session.
func (s *Server) GetSession(c echo.Context) error {
	profile, err := s.handlers.GetSession.Handle(c.Request().Context(), queries.NewGetSessionQuery())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

// Logout handles DELETE /api/v1/session.
func (s *Server) Logout(c echo.Context) error {
	if err := s.handlers.Logout.Handle(c.Request().Context(), commands.NewLogoutCommand()); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
