package commands_test

import (
	"errors"
	"testing"
	"time"

	"courier-tracker/internal/adapters/out/memory"
	"courier-tracker/internal/core/application/usecases/commands"
	"courier-tracker/internal/core/domain/model/feed"
	"courier-tracker/internal/core/domain/model/session"
	"courier-tracker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSessionKeeper_Current(t *testing.T) {
	t.Run("no stored session", func(t *testing.T) {
		factory, _ := storedSessions(nil)
		keeper := commands.NewSessionKeeper(factory, memory.NewFeedStore(), memory.NewTrackerStore(), memory.NewViewRegistry(), discardLogger())

		_, err := keeper.Current(t.Context())

		require.ErrorIs(t, err, session.ErrUnauthenticated)
	})

	t.Run("store failure is passed through", func(t *testing.T) {
		repo := new(MockSessionRepository)
		repo.On("Get", mock.Anything).Return(session.Session{}, errors.New("connection refused"))
		uow := new(MockSessionUoW)
		uow.On("SessionRepository").Return(repo)
		factory := new(MockSessionUoWFactory)
		factory.On("Create").Return(uow)
		keeper := commands.NewSessionKeeper(factory, memory.NewFeedStore(), memory.NewTrackerStore(), memory.NewViewRegistry(), discardLogger())

		_, err := keeper.Current(t.Context())

		require.EqualError(t, err, "connection refused")
		assert.NotErrorIs(t, err, session.ErrUnauthenticated)
	})
}

func TestSessionKeeper_Courier(t *testing.T) {
	t.Run("courier session", func(t *testing.T) {
		keeper, _ := courierKeeper(t, memory.NewFeedStore(), memory.NewTrackerStore(), memory.NewViewRegistry())

		s, id, err := keeper.Courier(t.Context())

		require.NoError(t, err)
		assert.Equal(t, me, id)
		assert.Equal(t, "tok", s.AccessToken())
	})

	t.Run("other roles are forbidden", func(t *testing.T) {
		s := newSession(t, session.RoleCompany)
		factory, _ := storedSessions(&s)
		keeper := commands.NewSessionKeeper(factory, memory.NewFeedStore(), memory.NewTrackerStore(), memory.NewViewRegistry(), discardLogger())

		_, _, err := keeper.Courier(t.Context())

		require.ErrorIs(t, err, session.ErrNotCourier)
		require.ErrorIs(t, err, session.ErrForbidden)
	})
}

func TestSessionKeeper_BackendFailed(t *testing.T) {
	t.Run("other failures keep the session", func(t *testing.T) {
		feeds := memory.NewFeedStore()
		feeds.Put(feed.Empty(me, time.Now()))
		keeper, repo := courierKeeper(t, feeds, memory.NewTrackerStore(), memory.NewViewRegistry())
		upstream := errs.NewUpstreamError("backend", 503)

		err := keeper.BackendFailed(t.Context(), upstream)

		assert.Equal(t, upstream, err)
		repo.AssertNotCalled(t, "Delete", mock.Anything)
		_, loaded := feeds.Get()
		assert.True(t, loaded)
	})

	t.Run("a rejected token logs the device out", func(t *testing.T) {
		feeds := memory.NewFeedStore()
		feeds.Put(feed.Empty(me, time.Now()))
		keeper, repo := courierKeeper(t, feeds, memory.NewTrackerStore(), memory.NewViewRegistry())
		rejected := errors.Join(session.ErrUnauthenticated, errs.NewUpstreamError("backend", 401))

		err := keeper.BackendFailed(t.Context(), rejected)

		require.ErrorIs(t, err, session.ErrUnauthenticated)
		repo.AssertCalled(t, "Delete", mock.Anything)
		_, loaded := feeds.Get()
		assert.False(t, loaded)
	})
}

func TestLogoutCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	repo := new(MockSessionRepository)
	uow := new(MockSessionUoW)
	factory := new(MockSessionUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SessionRepository").Return(repo).Once(),
		repo.On("Delete", ctx).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	keeper := commands.NewSessionKeeper(factory, memory.NewFeedStore(), memory.NewTrackerStore(), memory.NewViewRegistry(), discardLogger())
	handler := commands.NewLogoutCommandHandler(keeper)

	require.NoError(t, handler.Handle(ctx, commands.NewLogoutCommand()))
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}
