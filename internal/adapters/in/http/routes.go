package http

import (
	"net/http"

	"courier-tracker/internal/core/domain/model/session"
	"courier-tracker/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

type route struct {
	services.Rule
	Handler echo.HandlerFunc
}

var courierOnly = []session.Role{session.RoleCourier}

// routes is the API and its access table in one place.
func (s *Server) routes() []route {
	return []route{
		{services.Rule{Method: http.MethodPost, Path: "/api/v1/session", Public: true}, s.Login},
		{services.Rule{Method: http.MethodGet, Path: "/api/v1/session"}, s.GetSession},
		{services.Rule{Method: http.MethodDelete, Path: "/api/v1/session"}, s.Logout},

		{services.Rule{Method: http.MethodGet, Path: "/api/v1/feed", Roles: courierOnly}, s.GetFeed},
		{services.Rule{Method: http.MethodPost, Path: "/api/v1/feed/refresh", Roles: courierOnly}, s.RefreshFeed},
		{services.Rule{Method: http.MethodPost, Path: "/api/v1/orders/:id/accept", Roles: courierOnly}, s.AcceptOrder},
		{services.Rule{Method: http.MethodPost, Path: "/api/v1/orders/:id/deliver", Roles: courierOnly}, s.DeliverOrder},

		{services.Rule{Method: http.MethodPut, Path: "/api/v1/orders/:id/map", Roles: courierOnly}, s.OpenMapView},
		{services.Rule{Method: http.MethodGet, Path: "/api/v1/orders/:id/map", Roles: courierOnly}, s.GetMapView},
		{services.Rule{Method: http.MethodDelete, Path: "/api/v1/orders/:id/map", Roles: courierOnly}, s.CloseMapView},
		{services.Rule{Method: http.MethodGet, Path: "/api/v1/orders/:id/map/stream", Roles: courierOnly}, s.StreamMapView},

		{services.Rule{Method: http.MethodPost, Path: "/api/v1/position", Roles: courierOnly}, s.RecordPosition},
		{services.Rule{Method: http.MethodPut, Path: "/api/v1/position/permission", Roles: courierOnly}, s.SetDeviceState},
		{services.Rule{Method: http.MethodGet, Path: "/api/v1/position", Roles: courierOnly}, s.GetTrackingStatus},
		{services.Rule{Method: http.MethodPost, Path: "/api/v1/position/retry", Roles: courierOnly}, s.RetryTracking},
		{services.Rule{Method: http.MethodDelete, Path: "/api/v1/position/banner", Roles: courierOnly}, s.DismissBanner},
	}
}

// Policy returns the access policy built from the route table.
func (s *Server) Policy() services.AccessPolicy {
	table := s.routes()
	rules := make([]services.Rule, 0, len(table))
	for _, r := range table {
		rules = append(rules, r.Rule)
	}
	return services.NewAccessPolicy(rules...)
}
