package http

import (
	"errors"
	"net/http"

	"courier-tracker/internal/core/application/usecases/commands"
	"courier-tracker/internal/core/application/usecases/queries"
	"courier-tracker/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// GetFeed handles GET /api/v1/feed. The first call after login loads the feed.
func (s *Server) GetFeed(c echo.Context) error {
	ctx := c.Request().Context()

	resp, err := s.handlers.GetOrderFeed.Handle(ctx, queries.NewGetOrderFeedQuery())
	if errors.Is(err, errs.ErrObjectNotFound) {
		if err = s.handlers.RefreshFeed.Handle(ctx, commands.NewRefreshFeedCommand()); err != nil {
			return s.fail(c, err)
		}
		resp, err = s.handlers.GetOrderFeed.Handle(ctx, queries.NewGetOrderFeedQuery())
	}
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// RefreshFeed handles POST /api/v1/feed/refresh.
func (s *Server) RefreshFeed(c echo.Context) error {
	ctx := c.Request().Context()

	if err := s.handlers.RefreshFeed.Handle(ctx, commands.NewRefreshFeedCommand()); err != nil {
		return s.fail(c, err)
	}
	resp, err := s.handlers.GetOrderFeed.Handle(ctx, queries.NewGetOrderFeedQuery())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// AcceptOrder handles POST /api/v1/orders/:id/accept and answers with the
// updated feed.
func (s *Server) AcceptOrder(c echo.Context) error {
	id, err := orderIDParam(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewAcceptOrderCommand(id)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.AcceptOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return s.currentFeed(c)
}

// DeliverOrder handles POST /api/v1/orders/:id/deliver and answers with the
// updated feed.
func (s *Server) DeliverOrder(c echo.Context) error {
	id, err := orderIDParam(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewDeliverOrderCommand(id)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.DeliverOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return s.currentFeed(c)
}

func (s *Server) currentFeed(c echo.Context) error {
	resp, err := s.handlers.GetOrderFeed.Handle(c.Request().Context(), queries.NewGetOrderFeedQuery())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}
