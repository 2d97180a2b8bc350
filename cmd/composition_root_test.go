package cmd_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"courier-tracker/cmd"
	"courier-tracker/internal/adapters/out/kafka"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompositionRoot(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("wires the server and jobs", func(t *testing.T) {
		cfg, err := cmd.NewConfig(envOf(nil))
		require.NoError(t, err)

		app, err := cmd.NewCompositionRoot(cfg, nil, nil, kafka.NopPublisher{}, logger)
		require.NoError(t, err)

		e := echo.New()
		app.CreateServer().Register(e)

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)

		jm := app.CreateJobManager()
		require.NoError(t, jm.StartAll())
		jm.StopAll()
		app.Shutdown()
	})

	t.Run("rejects relative base URLs", func(t *testing.T) {
		cfg, err := cmd.NewConfig(envOf(map[string]string{"OSRM_BASE_URL": "router.local"}))
		require.NoError(t, err)

		_, err = cmd.NewCompositionRoot(cfg, nil, nil, kafka.NopPublisher{}, logger)
		require.Error(t, err)
	})
}
