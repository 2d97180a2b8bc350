// Package backend talks to the marketplace REST API: login, the order list,
// order updates and courier location reports.
package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"courier-tracker/internal/adapters/out/httpclient"
	"courier-tracker/internal/core/domain/model/kernel"
	"courier-tracker/internal/core/domain/model/order"
	"courier-tracker/internal/core/domain/model/session"
	"courier-tracker/internal/core/ports"
	"courier-tracker/internal/pkg/errs"
)

const (
	loginPath    = "/user/login/"
	ordersPath   = "/api/pedidos/"
	locationPath = "/api/ubicacion/"
)

var (
	_ ports.Authenticator    = (*Client)(nil)
	_ ports.OrderGateway     = (*Client)(nil)
	_ ports.LocationReporter = (*Client)(nil)
)

// Client implements the backend ports over one httpclient.Client.
type Client struct {
	http   *httpclient.Client
	logger *slog.Logger
}

func NewClient(client *httpclient.Client, logger *slog.Logger) (*Client, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("http client")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{http: client, logger: logger.With("component", "backend")}, nil
}

// Login exchanges credentials for tokens and the user profile.
func (c *Client) Login(ctx context.Context, email, password string) (session.Session, error) {
	var resp loginResponse
	err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   loginPath,
		Body:   loginRequest{Email: email, Password: password},
	}, &resp)
	if err != nil {
		switch httpclient.StatusCode(err) {
		case http.StatusUnauthorized, http.StatusBadRequest:
			return session.Session{}, fmt.Errorf("%w: invalid credentials", session.ErrUnauthenticated)
		default:
			return session.Session{}, err
		}
	}

	user := session.User{
		ID:        resp.ID,
		Name:      resp.Name,
		Email:     resp.Email,
		Phone:     resp.Telefono,
		Role:      session.Role(resp.Role),
		Companies: resp.companies(),
	}
	if user.Role == session.RoleCourier && resp.RepartidorModelID != nil && *resp.RepartidorModelID > 0 {
		id := order.CourierID(*resp.RepartidorModelID)
		user.CourierID = &id
	}

	s, err := session.NewSession(resp.Access, resp.Refresh, user, accessTokenExpiry(resp.Access))
	if err != nil {
		return session.Session{}, errs.NewUpstreamErrorWithCause(c.http.Service(), http.StatusOK, err)
	}
	return s, nil
}

// List returns every order the backend shows to the token holder. Orders that
// cannot be decoded are logged and left out.
func (c *Client) List(ctx context.Context, accessToken string) ([]*order.Order, error) {
	var raw []orderDTO
	err := c.http.Do(ctx, httpclient.Request{
		Method:      http.MethodGet,
		Path:        ordersPath,
		BearerToken: accessToken,
	}, &raw)
	if err != nil {
		return nil, c.mapError(err)
	}

	orders := make([]*order.Order, 0, len(raw))
	for _, d := range raw {
		o, err := d.toDomain()
		if err != nil {
			c.logger.WarnContext(ctx, "skipping malformed order", "order_id", d.ID, "error", err)
			continue
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (c *Client) Accept(ctx context.Context, accessToken string, id order.ID, courierID order.CourierID) (*order.Order, error) {
	return c.update(ctx, accessToken, id, updateOrderRequest{RepartidorID: int64(courierID), Estado: order.EnRoute.Wire()})
}

func (c *Client) Deliver(ctx context.Context, accessToken string, id order.ID, courierID order.CourierID) (*order.Order, error) {
	return c.update(ctx, accessToken, id, updateOrderRequest{RepartidorID: int64(courierID), Estado: order.Delivered.Wire()})
}

// update sends a partial order update. The returned order is nil when the
// backend answered with a body that is not an order.
func (c *Client) update(ctx context.Context, accessToken string, id order.ID, body updateOrderRequest) (*order.Order, error) {
	var raw orderDTO
	err := c.http.Do(ctx, httpclient.Request{
		Method:      http.MethodPatch,
		Path:        ordersPath + strconv.FormatInt(int64(id), 10) + "/",
		BearerToken: accessToken,
		Body:        body,
	}, &raw)
	if err != nil {
		return nil, c.mapError(err)
	}

	o, err := raw.toDomain()
	if err != nil {
		c.logger.DebugContext(ctx, "order update returned no usable order", "order_id", id, "error", err)
		return nil, nil //nolint:nilnil // caller falls back to the listed order
	}
	return o, nil
}

// Report sends the courier position.
func (c *Client) Report(ctx context.Context, accessToken string, at kernel.GeoPoint) error {
	if err := at.Validate(); err != nil {
		return err
	}
	err := c.http.Do(ctx, httpclient.Request{
		Method:      http.MethodPost,
		Path:        locationPath,
		BearerToken: accessToken,
		Body:        locationRequest{Latitud: at.Lat(), Longitud: at.Lng()},
	}, nil)
	return c.mapError(err)
}

func (c *Client) mapError(err error) error {
	if err == nil {
		return nil
	}
	switch httpclient.StatusCode(err) {
	case http.StatusUnauthorized:
		return errors.Join(session.ErrUnauthenticated, err)
	case http.StatusNotFound:
		return errors.Join(errs.ErrObjectNotFound, err)
	default:
		return err
	}
}
