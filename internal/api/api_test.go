package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/wargame-go/internal/model"
	"github.com/mcoot/wargame-go/internal/storage/memory"
	"github.com/mcoot/wargame-go/internal/testutil"
)

type fakeStats struct {
	games   int
	waiting int
}

func (f *fakeStats) NumberOfGames() int  { return f.games }
func (f *fakeStats) WaitingClients() int { return f.waiting }

func newTestRouter(t *testing.T, stats *fakeStats, store *memory.Storage) http.Handler {
	t.Helper()
	return NewRouter(RouterConfig{
		Logger:  testutil.NopLogger(),
		Stats:   stats,
		Storage: store,
	})
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t, &fakeStats{}, memory.New())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestStats(t *testing.T) {
	store := memory.New()
	require.NoError(t, store.SaveSummary(context.Background(), &model.MatchSummary{
		ID:          "GAME1",
		Winner:      model.PlayerOneName,
		CompletedAt: time.Now(),
	}))

	router := newTestRouter(t, &fakeStats{games: 2, waiting: 1}, store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp statsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.GamesInProgress)
	assert.Equal(t, 1, resp.ClientsWaiting)
	assert.Equal(t, 1, resp.CompletedMatches)
}

func TestStatsMethodNotAllowed(t *testing.T) {
	router := newTestRouter(t, &fakeStats{}, memory.New())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/stats", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
