package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"courier-tracker/internal/core/domain/model/session"
	"courier-tracker/internal/core/domain/services"
	"courier-tracker/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const sessionKey = "session"

// authorize evaluates the access table once per request. The caller's
// session, if any, is kept on the context for the handlers.
func (s *Server) authorize(policy services.AccessPolicy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			current, err := s.sessions.Current(c.Request().Context())
			var caller *session.Session
			switch {
			case err == nil:
				caller = &current
				c.Set(sessionKey, caller)
			case errors.Is(err, session.ErrUnauthenticated):
			default:
				return s.fail(c, err)
			}

			decision := policy.Authorize(c.Request().Method, c.Path(), caller, time.Now())
			if !decision.Allowed() {
				return c.JSON(statusOf(decision.Err), ErrorResponse{
					Code:     statusOf(decision.Err),
					Message:  decision.Err.Error(),
					Redirect: decision.Redirect,
				})
			}
			return next(c)
		}
	}
}

// observe records request counts and latency per route pattern.
func (s *Server) observe(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		started := time.Now()
		err := next(c)

		status := c.Response().Status
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Code
		}
		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTPRequest(c.Request().Method, route, strconv.Itoa(status), time.Since(started))
		return err
	}
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			s.logger.LogAttrs(context.Background(), level, "request", attrs...)
			return nil
		},
	})
}

func callerOf(c echo.Context) *session.Session {
	caller, _ := c.Get(sessionKey).(*session.Session)
	return caller
}
