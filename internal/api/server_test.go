package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ambergrove/hearthome/internal/econ"
	"github.com/ambergrove/hearthome/internal/engine"
	"github.com/ambergrove/hearthome/internal/garden"
)

func publishedServer(t *testing.T) *Server {
	t.Helper()
	s := NewServer(0, "secret", nil)

	start := time.Unix(0, 0).UTC()
	env := engine.Envelope{
		LastTick:  start.Add(48 * time.Hour),
		GameStart: start,
		Snapshot: engine.Snapshot{
			Units: []garden.Unit{garden.NewPlant("basil", false, 1)},
			Econ:  econ.State{Money: 100, WeeklyRent: 50, WeeklyGroceryBase: 30},
		},
	}
	res := engine.Result{
		GameDay: 3,
		Events: []engine.Event{
			{Kind: engine.EventPlantReady, Day: 3, Payload: engine.StageChangePayload{TypeID: "basil"}},
		},
	}
	s.Publish(env, res)
	return s
}

func TestHandleStatus(t *testing.T) {
	s := publishedServer(t)
	rec := httptest.NewRecorder()

	s.routes().ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3.0, body["game_day"])
	assert.Equal(t, 1.0, body["units"])
	assert.Equal(t, 100.0, body["money"])
}

func TestHandleEconomy_RunwayNotInfinite(t *testing.T) {
	s := publishedServer(t)
	rec := httptest.NewRecorder()

	s.routes().ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/economy", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["runway_forever"])
	assert.Equal(t, 7.0, body["runway_days"], "floor(100/80)*7")
}

func TestHandleEvents(t *testing.T) {
	s := publishedServer(t)
	rec := httptest.NewRecorder()

	s.routes().ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/events?limit=10", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Events []engine.Event `json:"events"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Events, 1)
	assert.Equal(t, engine.EventPlantReady, body.Events[0].Kind)
}

func TestHandleSkip_RequiresAuth(t *testing.T) {
	s := publishedServer(t)
	s.Skip = func(days float64) error { return nil }
	rec := httptest.NewRecorder()

	req := httptest.NewRequest("POST", "/api/v1/skip", strings.NewReader(`{"days":3}`))
	s.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleSkip(t *testing.T) {
	s := publishedServer(t)
	var got float64
	s.Skip = func(days float64) error { got = days; return nil }
	rec := httptest.NewRecorder()

	req := httptest.NewRequest("POST", "/api/v1/skip", strings.NewReader(`{"days":3}`))
	req.Header.Set("Authorization", "Bearer secret")
	s.routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3.0, got)
}

func TestHandleSkip_RejectsNonPositiveDays(t *testing.T) {
	s := publishedServer(t)
	s.Skip = func(days float64) error { return nil }
	rec := httptest.NewRecorder()

	req := httptest.NewRequest("POST", "/api/v1/skip", strings.NewReader(`{"days":-1}`))
	req.Header.Set("Authorization", "Bearer secret")
	s.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSkip_DisabledWithoutKey(t *testing.T) {
	s := NewServer(0, "", nil)
	rec := httptest.NewRecorder()

	req := httptest.NewRequest("POST", "/api/v1/skip", strings.NewReader(`{"days":1}`))
	s.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
