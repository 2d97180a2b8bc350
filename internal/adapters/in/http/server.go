// Package http exposes the tracker to the device UI: a JSON API under
// /api/v1, a WebSocket stream per open map view, /health and /metrics.
package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"courier-tracker/internal/core/application/usecases/commands"
	"courier-tracker/internal/core/application/usecases/queries"
	"courier-tracker/internal/core/ports"
	"courier-tracker/internal/pkg/errs"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups the use cases the API calls.
type Handlers struct {
	// Command handlers
	Login              commands.LoginCommandHandler
	Logout             commands.LogoutCommandHandler
	RefreshFeed        commands.RefreshFeedCommandHandler
	AcceptOrder        commands.AcceptOrderCommandHandler
	DeliverOrder       commands.DeliverOrderCommandHandler
	OpenMapView        commands.OpenMapViewCommandHandler
	CloseMapView       commands.CloseMapViewCommandHandler
	InitializeTracking commands.InitializeTrackingCommandHandler
	DismissBanner      commands.DismissBannerCommandHandler
	RecordPosition     commands.RecordPositionCommandHandler
	SetDeviceState     commands.SetDeviceStateCommandHandler

	// Query handlers
	GetSession        queries.GetSessionQueryHandler
	GetOrderFeed      queries.GetOrderFeedQueryHandler
	GetMapView        queries.GetMapViewQueryHandler
	GetTrackingStatus queries.GetTrackingStatusQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	sessions commands.SessionKeeper
	views    ports.MapViewRegistry
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewServer creates the API over handlers. sessions resolves the caller of
// each request and views feeds the map streams.
func NewServer(handlers Handlers, sessions commands.SessionKeeper, views ports.MapViewRegistry, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		sessions: sessions,
		views:    views,
		upgrader: websocket.Upgrader{
			// The device UI is served from another origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger.With("component", "http"),
	}
}

// Register mounts every route and the shared middleware on e.
func (s *Server) Register(e *echo.Echo) {
	e.Use(middleware.Recover(), s.requestLogger(), s.observe)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	policy := s.Policy()
	for _, r := range s.routes() {
		e.Add(r.Method, r.Path, r.Handler, s.authorize(policy))
	}
}

func orderIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("order id", err)
	}
	return id, nil
}
