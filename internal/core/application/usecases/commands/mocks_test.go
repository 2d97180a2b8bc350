package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"courier-tracker/internal/core/application/usecases/commands"
	"courier-tracker/internal/core/domain/model/courier"
	"courier-tracker/internal/core/domain/model/kernel"
	"courier-tracker/internal/core/domain/model/order"
	"courier-tracker/internal/core/domain/model/session"
	"courier-tracker/internal/core/ports"
	"courier-tracker/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const me = order.CourierID(7)

type MockSessionRepository struct{ mock.Mock }

func (m *MockSessionRepository) Get(ctx context.Context) (session.Session, error) {
	args := m.Called(ctx)
	return args.Get(0).(session.Session), args.Error(1)
}

func (m *MockSessionRepository) Save(ctx context.Context, s session.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepository) Delete(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockSessionUoW struct{ mock.Mock }

func (m *MockSessionUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionUoW) SessionRepository() ports.SessionRepository {
	args := m.Called()
	return args.Get(0).(ports.SessionRepository)
}

type MockSessionUoWFactory struct{ mock.Mock }

func (m *MockSessionUoWFactory) Create() commands.SessionUoW {
	args := m.Called()
	return args.Get(0).(commands.SessionUoW)
}

type MockAuthenticator struct{ mock.Mock }

func (m *MockAuthenticator) Login(ctx context.Context, email, password string) (session.Session, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(session.Session), args.Error(1)
}

type MockOrderGateway struct{ mock.Mock }

func (m *MockOrderGateway) List(ctx context.Context, token string) ([]*order.Order, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderGateway) Accept(ctx context.Context, token string, id order.ID, c order.CourierID) (*order.Order, error) {
	args := m.Called(ctx, token, id, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderGateway) Deliver(ctx context.Context, token string, id order.ID, c order.CourierID) (*order.Order, error) {
	args := m.Called(ctx, token, id, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockLocationReporter struct{ mock.Mock }

func (m *MockLocationReporter) Report(ctx context.Context, token string, at kernel.GeoPoint) error {
	args := m.Called(ctx, token, at)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishOrderChanged(ctx context.Context, c order.CourierID, o *order.Order) error {
	args := m.Called(ctx, c, o)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishCourierLocation(ctx context.Context, c order.CourierID, p courier.Position) error {
	args := m.Called(ctx, c, p)
	return args.Error(0)
}

type MockPositionSource struct{ mock.Mock }

func (m *MockPositionSource) Acquire(ctx context.Context) (courier.Position, error) {
	args := m.Called(ctx)
	return args.Get(0).(courier.Position), args.Error(1)
}

func (m *MockPositionSource) Push(p courier.Position) error {
	args := m.Called(p)
	return args.Error(0)
}

func (m *MockPositionSource) SetDeviceError(err error) {
	m.Called(err)
}

type MockRouter struct{ mock.Mock }

func (m *MockRouter) Route(ctx context.Context, from, to kernel.GeoPoint) ([]kernel.GeoPoint, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.GeoPoint), args.Error(1)
}

type MockGeocoder struct{ mock.Mock }

func (m *MockGeocoder) Geocode(ctx context.Context, address string) (kernel.GeoPoint, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(kernel.GeoPoint), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func point(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return p
}

func position(t *testing.T, lat, lng float64) courier.Position {
	t.Helper()
	p, err := courier.NewPosition(point(t, lat, lng), 5, time.Now())
	require.NoError(t, err)
	return p
}

func newSession(t *testing.T, role session.Role) session.Session {
	t.Helper()
	user := session.User{ID: 1, Name: "Luis", Role: role}
	if role == session.RoleCourier {
		id := me
		user.CourierID = &id
	}
	s, err := session.NewSession("tok", "refresh", user, time.Time{})
	require.NoError(t, err)
	return s
}

// storedSessions serves s to every reader. A nil s means nobody is logged in.
// Deleting and the transaction calls are accepted but not required.
func storedSessions(s *session.Session) (*MockSessionUoWFactory, *MockSessionRepository) {
	repo := new(MockSessionRepository)
	if s == nil {
		repo.On("Get", mock.Anything).Return(session.Session{}, errs.NewObjectNotFoundError("session", "default"))
	} else {
		repo.On("Get", mock.Anything).Return(*s, nil)
	}
	repo.On("Delete", mock.Anything).Return(nil).Maybe()

	uow := new(MockSessionUoW)
	uow.On("SessionRepository").Return(repo)
	uow.On("Begin", mock.Anything).Return(nil).Maybe()
	uow.On("Commit", mock.Anything).Return(nil).Maybe()
	uow.On("Rollback", mock.Anything).Return(nil).Maybe()

	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow)
	return factory, repo
}

func courierKeeper(t *testing.T, feeds ports.FeedStore, trackers ports.TrackerStore, views ports.MapViewRegistry) (commands.SessionKeeper, *MockSessionRepository) {
	t.Helper()
	s := newSession(t, session.RoleCourier)
	factory, repo := storedSessions(&s)
	return commands.NewSessionKeeper(factory, feeds, trackers, views, discardLogger()), repo
}

func restore(t *testing.T, id order.ID, status order.Status, courierID *order.CourierID, details order.Details) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(id, status, courierID, details)
	require.NoError(t, err)
	return o
}

func mine() *order.CourierID {
	id := me
	return &id
}
