package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/playerroster/internal/api"
	"github.com/mcoot/playerroster/internal/api/apierr"
	"github.com/mcoot/playerroster/internal/api/response"
	"github.com/mcoot/playerroster/internal/factory"
	"github.com/mcoot/playerroster/internal/testutil"
)

// 2001-01-01T00:00:00Z
const birthday2001 = int64(978307200000)

// testServer wraps the router with in-memory dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()

	router := api.NewRouter(api.RouterConfig{
		Logger:        testutil.NopLogger(),
		PlayerService: app.PlayerService,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) createPlayer(t *testing.T, name, race string, experience int) response.Player {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/v1/players", map[string]any{
		"name":       name,
		"title":      "Adventurer",
		"race":       race,
		"profession": "WARRIOR",
		"birthday":   birthday2001,
		"experience": experience,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var p response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	return p
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) apierr.APIError {
	t.Helper()
	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.createPlayer(t, "Alice", "HUMAN", 10)

	rr := ts.request(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "roster_player_operations_total")
	assert.Contains(t, rr.Body.String(), "roster_http_requests_total")
}

func TestCreatePlayer(t *testing.T) {
	ts := newTestServer(t)

	p := ts.createPlayer(t, "Bilbo", "hobbit", 1000)

	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "Bilbo", p.Name)
	assert.Equal(t, "HOBBIT", p.Race)
	assert.Equal(t, birthday2001, p.Birthday)
	assert.Equal(t, 4, p.Level)
	assert.Equal(t, 500, p.UntilNextLevel)
	assert.False(t, p.Banned)
}

func TestCreatePlayerValidation(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/players", map[string]any{
		"name":       "ThisNameIsTooLong",
		"title":      "Adventurer",
		"race":       "ELF",
		"profession": "ROGUE",
		"birthday":   birthday2001,
		"experience": 10,
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	apiErr := decodeError(t, rr)
	assert.Equal(t, apierr.CodeInvalidPlayer, apiErr.Code)
	assert.Contains(t, apiErr.Message, "name")
}

func TestCreatePlayerMissingField(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/players", map[string]any{"name": "Alice"})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidPlayer, decodeError(t, rr).Code)
}

func TestCreatePlayerBadBody(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/players", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, decodeError(t, rr).Code)
}

func TestCreatePlayerUnknownRace(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/players", map[string]any{"race": "GOBLIN"})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, decodeError(t, rr).Code)
}

func TestGetPlayer(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createPlayer(t, "Carla", "DWARF", 300)

	rr := ts.request(http.MethodGet, "/api/v1/players/1", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var p response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	assert.Equal(t, created, p)
}

func TestGetPlayerNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/players/99", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodePlayerNotFound, decodeError(t, rr).Code)
}

func TestInvalidPlayerID(t *testing.T) {
	ts := newTestServer(t)

	for _, id := range []string{"abc", "0", "-3", "1.5"} {
		t.Run(id, func(t *testing.T) {
			rr := ts.request(http.MethodGet, "/api/v1/players/"+id, nil)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, apierr.CodeInvalidID, decodeError(t, rr).Code)
		})
	}
}

func TestListPlayersPaged(t *testing.T) {
	ts := newTestServer(t)
	ts.createPlayer(t, "Alice", "HUMAN", 100)
	ts.createPlayer(t, "Bob", "ELF", 5000)
	ts.createPlayer(t, "Carla", "DWARF", 900)
	ts.createPlayer(t, "Dan", "ORC", 50)

	rr := ts.request(http.MethodGet, "/api/v1/players?order=EXPERIENCE&direction=DESC&pageNumber=0&pageSize=2", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var page response.PlayerPage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, 0, page.PageNumber)
	assert.Equal(t, 2, page.PageSize)
	require.Len(t, page.Players, 2)
	assert.Equal(t, "Bob", page.Players[0].Name)
	assert.Equal(t, "Carla", page.Players[1].Name)
}

func TestListPlayersDefaultPage(t *testing.T) {
	ts := newTestServer(t)
	for _, name := range []string{"Alice", "Bob", "Carla", "Dan"} {
		ts.createPlayer(t, name, "HUMAN", 0)
	}

	rr := ts.request(http.MethodGet, "/api/v1/players", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var page response.PlayerPage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
	assert.Equal(t, 3, page.PageSize)
	require.Len(t, page.Players, 3)
	assert.Equal(t, int64(1), page.Players[0].ID)
}

func TestListPlayersEmptyIsArray(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/players/all", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"players":[]}`, rr.Body.String())
}

func TestAllPlayersFiltered(t *testing.T) {
	ts := newTestServer(t)
	ts.createPlayer(t, "Alice", "HUMAN", 100)
	ts.createPlayer(t, "Bob", "ELF", 5000)
	ts.createPlayer(t, "Carla", "ELF", 900)

	rr := ts.request(http.MethodGet, "/api/v1/players/all?race=ELF&minExperience=1000", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var list response.PlayerList
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list.Players, 1)
	assert.Equal(t, "Bob", list.Players[0].Name)
}

func TestCountWithFilterExpression(t *testing.T) {
	ts := newTestServer(t)
	ts.createPlayer(t, "Alice", "HUMAN", 100)
	ts.createPlayer(t, "Bob", "ELF", 5000)
	ts.createPlayer(t, "Carla", "ELF", 900)

	q := url.Values{"filter": {`race = "ELF" AND experience <= 1000`}}
	rr := ts.request(http.MethodGet, "/api/v1/players/count?"+q.Encode(), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"count":1}`, rr.Body.String())
}

func TestInvalidFilterExpression(t *testing.T) {
	ts := newTestServer(t)

	q := url.Values{"filter": {"gold >= 5"}}
	rr := ts.request(http.MethodGet, "/api/v1/players/count?"+q.Encode(), nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidFilter, decodeError(t, rr).Code)
}

func TestInvalidQueryParameter(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/players?minLevel=high", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, decodeError(t, rr).Code)
}

func TestUpdatePlayer(t *testing.T) {
	ts := newTestServer(t)
	ts.createPlayer(t, "Alice", "HUMAN", 100)

	rr := ts.request(http.MethodPatch, "/api/v1/players/1", map[string]any{
		"experience": 1000,
		"banned":     true,
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var p response.Player
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	assert.Equal(t, "Alice", p.Name)
	assert.Equal(t, 1000, p.Experience)
	assert.Equal(t, 4, p.Level)
	assert.True(t, p.Banned)
}

func TestUpdatePlayerNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPatch, "/api/v1/players/7", map[string]any{"name": "Zed"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeletePlayer(t *testing.T) {
	ts := newTestServer(t)
	ts.createPlayer(t, "Alice", "HUMAN", 100)

	rr := ts.request(http.MethodDelete, "/api/v1/players/1", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())

	rr = ts.request(http.MethodGet, "/api/v1/players/1", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = ts.request(http.MethodDelete, "/api/v1/players/1", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
