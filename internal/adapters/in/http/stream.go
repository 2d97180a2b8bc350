package http

import (
	"time"

	"courier-tracker/internal/core/application/usecases/queries"
	"courier-tracker/internal/core/domain/model/order"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

// StreamMapView handles GET /api/v1/orders/:id/map/stream. The socket
// receives the current view, then the whole view after every change. It is
// closed with a normal closure once the view is disposed.
func (s *Server) StreamMapView(c echo.Context) error {
	id, err := orderIDParam(c)
	if err != nil {
		return s.fail(c, err)
	}

	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// The upgrader already answered the request.
		s.logger.Debug("websocket upgrade failed", "error", err)
		return nil
	}
	defer conn.Close()

	events, cancel := s.views.Subscribe(order.ID(id))
	defer cancel()

	// Reading detects the client going away; incoming messages are ignored.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, readErr := conn.ReadMessage(); readErr != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-gone:
			return nil
		case <-ping.C:
			if err = conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return nil
			}
		case event, ok := <-events:
			if !ok || event.Closed {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "map view closed"),
					time.Now().Add(writeWait))
				return nil
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err = conn.WriteJSON(queries.NewMapViewResponse(event.View)); err != nil {
				s.logger.Debug("websocket write failed", "order_id", id, "error", err)
				return nil
			}
		}
	}
}
