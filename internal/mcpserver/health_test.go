package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oculairmedia/keep-mcp/internal/dto"
	"github.com/oculairmedia/keep-mcp/internal/mapper"
	"github.com/oculairmedia/keep-mcp/internal/service"
	"github.com/oculairmedia/keep-mcp/pkg/keep"
)

func newHealthService(fail bool) service.INoteService {
	provider := func(ctx context.Context) (service.KeepSession, error) {
		if fail {
			return nil, errors.New("authentication failed")
		}
		return &fakeSession{Session: keep.NewSession("")}, nil
	}
	return service.NewNoteService(provider, service.NewModificationGuard(false), mapper.NewNoteMapper(), nil, nil)
}

func TestHealthHandlerHealthy(t *testing.T) {
	handler := NewHealthHandler(newHealthService(false))

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var health dto.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, ServiceName, health.Service)
	assert.True(t, health.GoogleKeepConnected)
}

func TestHealthHandlerUnhealthy(t *testing.T) {
	handler := NewHealthHandler(newHealthService(true))

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var health dto.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "unhealthy", health.Status)
	assert.False(t, health.GoogleKeepConnected)
}
