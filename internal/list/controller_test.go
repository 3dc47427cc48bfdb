package list

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dotaznik/internal/client"
	"dotaznik/internal/domain"
	"dotaznik/pkg/apperrors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func listForm(id string) domain.Form {
	return domain.Form{
		ID:               id,
		Status:           domain.StatusCompleted,
		Operator:         domain.Party{Name: "Jan Novák", Address: "Praha 1"},
		PaymentFrequency: domain.PayQuarterly,
		CreatedAt:        time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC).UnixNano(),
	}
}

type backendState struct {
	forms      []domain.Form
	deleted    atomic.Int32
	markViewed atomic.Int32
}

func newBackendServer(t *testing.T, state *backendState) *client.Backend {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/admin/forms":
			_ = json.NewEncoder(w).Encode(state.forms)
		case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/admin/forms/"):
			state.deleted.Add(1)
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodPost && r.URL.Path == "/admin/forms/mark-viewed":
			state.markViewed.Add(1)
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return client.NewBackend(server.URL)
}

func TestLoadDegradesToEmptyWithNotice(t *testing.T) {
	backend := client.NewBackend("http://127.0.0.1:1")
	ctrl := NewController(backend, testLogger())

	forms := ctrl.Load(context.Background())
	assert.NotNil(t, forms)
	assert.Empty(t, forms)
	assert.Equal(t, "Formuláře se nepodařilo načíst", ctrl.Notice())
}

func TestLoadClearsNoticeOnSuccess(t *testing.T) {
	state := &backendState{forms: []domain.Form{listForm("form-1")}}
	ctrl := NewController(newBackendServer(t, state), testLogger())

	ctrl.mu.Lock()
	ctrl.notice = "stará chyba"
	ctrl.mu.Unlock()

	forms := ctrl.Load(context.Background())
	require.Len(t, forms, 1)
	assert.Empty(t, ctrl.Notice())
}

func TestExpansionToggle(t *testing.T) {
	state := &backendState{forms: []domain.Form{listForm("form-1")}}
	ctrl := NewController(newBackendServer(t, state), testLogger())

	assert.False(t, ctrl.IsExpanded("form-1"))
	ctrl.ToggleExpanded("form-1")
	assert.True(t, ctrl.IsExpanded("form-1"))

	// Expansion is client-side only, reloading keeps it.
	ctrl.Load(context.Background())
	assert.True(t, ctrl.IsExpanded("form-1"))

	ctrl.ToggleExpanded("form-1")
	assert.False(t, ctrl.IsExpanded("form-1"))
}

func TestDeleteDropsExpansionState(t *testing.T) {
	state := &backendState{forms: []domain.Form{listForm("form-1")}}
	ctrl := NewController(newBackendServer(t, state), testLogger())

	ctrl.ToggleExpanded("form-1")
	require.NoError(t, ctrl.Delete(context.Background(), "form-1"))
	assert.False(t, ctrl.IsExpanded("form-1"))
	assert.Equal(t, int32(1), state.deleted.Load())
}

func TestMarkAllViewedReachesBackend(t *testing.T) {
	state := &backendState{}
	ctrl := NewController(newBackendServer(t, state), testLogger())

	require.NoError(t, ctrl.MarkAllViewed(context.Background()))
	assert.Equal(t, int32(1), state.markViewed.Load())
}

func TestExportDownloads(t *testing.T) {
	state := &backendState{forms: []domain.Form{listForm("form-1")}}
	now := time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)
	ctrl := NewController(newBackendServer(t, state), testLogger()).
		WithClock(func() time.Time { return now })
	ctx := context.Background()

	name, data, err := ctrl.ExportCSV(ctx)
	require.NoError(t, err)
	assert.Equal(t, "formulare_2026-09-01.csv", name)
	assert.Contains(t, string(data), "form-1")

	name, data, err = ctrl.ExportJSON(ctx)
	require.NoError(t, err)
	assert.Equal(t, "formulare_2026-09-01.json", name)
	assert.Contains(t, string(data), `"form-1"`)
}

func TestExportEmptyCollectionRefused(t *testing.T) {
	state := &backendState{forms: []domain.Form{}}
	ctrl := NewController(newBackendServer(t, state), testLogger())

	_, _, err := ctrl.ExportCSV(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeBadRequest))

	_, _, err = ctrl.ExportJSON(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeBadRequest))
}
