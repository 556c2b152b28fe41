package server

import (
	"bytes"
	"encoding/json"
	"morris/communication"
	"morris/engine"
	"morris/game"
	"morris/gamemaster"
	"morris/meta"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const origin = "http://localhost:3000"

func testConfig() meta.ServerConfig {
	return meta.ServerConfig{
		Addr:           ":0",
		AllowedOrigins: []string{origin},
		RateLimit:      meta.RateLimitConfig{Enabled: false},
	}
}

func newServer(t *testing.T, options ...engine.Option) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return New(gamemaster.NewMaster(options...), meta.DefaultLevels(), testConfig())
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	s.Handler().ServeHTTP(res, req)
	return res
}

func decode[T any](t *testing.T, res *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &v), res.Body.String())
	return v
}

func create(t *testing.T, s *Server) communication.Snapshot {
	t.Helper()
	res := do(t, s, http.MethodPost, "/games", "")
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())
	return decode[communication.Snapshot](t, res)
}

func TestServerSecurity(t *testing.T) {
	s := newServer(t)

	res := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, bytes.NewBufferString("healthy"), res.Body)

	req := httptest.NewRequest(http.MethodGet, "/levels", nil)
	req.Header.Add("Origin", "http://evil.com")
	res = httptest.NewRecorder()
	s.Handler().ServeHTTP(res, req)
	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.Equal(t, "forbidden origin", res.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/levels", nil)
	req.Header.Add("Origin", origin)
	res = httptest.NewRecorder()
	s.Handler().ServeHTTP(res, req)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, origin, res.Header().Get("Access-Control-Allow-Origin"))
}

func TestLevels(t *testing.T) {
	s := newServer(t)

	res := do(t, s, http.MethodGet, "/levels", "")

	require.Equal(t, http.StatusOK, res.Code)
	levels := decode[[]meta.Level](t, res)
	if diff := cmp.Diff(meta.DefaultLevels(), levels); diff != "" {
		t.Errorf("levels mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateGame(t *testing.T) {
	s := newServer(t)

	testCases := []struct {
		name         string
		body         string
		expectedCode int
		expectedBody string
	}{
		{name: "default level", body: "", expectedCode: http.StatusCreated, expectedBody: `"phase":"AddTokenFromSupply"`},
		{name: "named level", body: `{"level":"Six Men's Morris"}`, expectedCode: http.StatusCreated, expectedBody: `"tokensPerPlayer":6`},
		{name: "explicit rules", body: `{"rules":{"rings":1,"diagonals":false,"centerNode":false,"tokensForMill":2,"tokensPerPlayer":3,"maxTokensForFlying":0}}`, expectedCode: http.StatusCreated, expectedBody: `"rings":1`},
		{name: "invalid json", body: `{invalid}`, expectedCode: http.StatusBadRequest, expectedBody: "invalid-request-format"},
		{name: "unknown level", body: `{"level":"Chess"}`, expectedCode: http.StatusBadRequest, expectedBody: "unknown level"},
		{name: "invalid rules", body: `{"rules":{"rings":0,"tokensForMill":3,"tokensPerPlayer":9}}`, expectedCode: http.StatusUnprocessableEntity, expectedBody: "invalid rules"},
		{name: "oversized board", body: `{"rules":{"rings":1000000,"tokensForMill":3,"tokensPerPlayer":9}}`, expectedCode: http.StatusUnprocessableEntity, expectedBody: "exceeds"},
		{name: "duplicate players", body: `{"profiles":[{"name":"A","color":"white"},{"name":"A","color":"black"}]}`, expectedCode: http.StatusUnprocessableEntity, expectedBody: "invalid players"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := do(t, s, http.MethodPost, "/games", tc.body)

			assert.Equal(t, tc.expectedCode, res.Code)
			assert.Contains(t, res.Body.String(), tc.expectedBody)
		})
	}
}

func TestPlayGame(t *testing.T) {
	s := newServer(t)
	snapshot := create(t, s)
	path := "/games/" + snapshot.ID

	t.Run("snapshot", func(t *testing.T) {
		res := do(t, s, http.MethodGet, path, "")

		require.Equal(t, http.StatusOK, res.Code)
		if diff := cmp.Diff(snapshot, decode[communication.Snapshot](t, res)); diff != "" {
			t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("legal selection", func(t *testing.T) {
		res := do(t, s, http.MethodPost, path+"/select", `{"node":{"x":0,"y":1,"ring":1}}`)

		require.Equal(t, http.StatusOK, res.Code)
		next := decode[communication.Snapshot](t, res)
		require.Equal(t, "Player2", next.CurrentPlayer)
		require.Len(t, next.Tokens, 1)
	})

	t.Run("rejected selection", func(t *testing.T) {
		res := do(t, s, http.MethodPost, path+"/select", `{"node":{"x":0,"y":1,"ring":1}}`)

		require.Equal(t, http.StatusUnprocessableEntity, res.Code)
		require.Equal(t, "NotEmptyNode", decode[communication.ErrorResponse](t, res).Reason)
	})

	t.Run("unknown node", func(t *testing.T) {
		res := do(t, s, http.MethodPost, path+"/select", `{"node":{"x":0,"y":0,"ring":1}}`)

		require.Equal(t, http.StatusUnprocessableEntity, res.Code)
		require.Equal(t, game.UnknownNode.String(), decode[communication.ErrorResponse](t, res).Reason)
	})

	t.Run("missing node", func(t *testing.T) {
		res := do(t, s, http.MethodPost, path+"/select", `{}`)
		require.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("remove", func(t *testing.T) {
		res := do(t, s, http.MethodDelete, path, "")
		require.Equal(t, http.StatusNoContent, res.Code)

		res = do(t, s, http.MethodGet, path, "")
		require.Equal(t, http.StatusNotFound, res.Code)

		res = do(t, s, http.MethodPost, path+"/select", `{"node":{"x":0,"y":1,"ring":2}}`)
		require.Equal(t, http.StatusNotFound, res.Code)
	})
}

func TestAcknowledgement(t *testing.T) {
	s := newServer(t, engine.WithAcknowledgement())
	snapshot := create(t, s)
	path := "/games/" + snapshot.ID
	require.True(t, snapshot.Awaiting)

	res := do(t, s, http.MethodPost, path+"/select", `{"node":{"x":0,"y":1,"ring":1}}`)
	require.Equal(t, http.StatusConflict, res.Code)

	res = do(t, s, http.MethodPost, path+"/ack", "")
	require.Equal(t, http.StatusOK, res.Code)
	require.False(t, decode[communication.Snapshot](t, res).Awaiting)

	res = do(t, s, http.MethodPost, path+"/select", `{"node":{"x":0,"y":1,"ring":1}}`)
	require.Equal(t, http.StatusOK, res.Code)
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config := testConfig()
	config.RateLimit = meta.RateLimitConfig{Enabled: true, RequestsPerSecond: 0.001, BurstSize: 2}
	s := New(gamemaster.NewMaster(), meta.DefaultLevels(), config)

	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/levels", "").Code)
	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/levels", "").Code)

	res := do(t, s, http.MethodGet, "/levels", "")
	require.Equal(t, http.StatusTooManyRequests, res.Code)
	require.Equal(t, "1", res.Header().Get("Retry-After"))

	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/health", "").Code, "Health checks are not limited")

	t.Run("idle clients are forgotten", func(t *testing.T) {
		s.limiter.forgetIdle(time.Now())
		require.Len(t, s.limiter.clients, 1, "An exhausted bucket is still in use")

		s.limiter.forgetIdle(time.Now().Add(time.Hour * 24))
		require.Empty(t, s.limiter.clients)
	})
}

func TestEventStream(t *testing.T) {
	s := newServer(t)
	server := httptest.NewServer(s.Handler())
	defer server.Close()

	snapshot := create(t, s)
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/games/" + snapshot.ID + "/events"

	t.Run("unknown game", func(t *testing.T) {
		_, res, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/games/nope/events", nil)
		require.Error(t, err)
		require.Equal(t, http.StatusNotFound, res.StatusCode)
	})

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	res := do(t, s, http.MethodPost, "/games/"+snapshot.ID+"/select", `{"node":{"x":0,"y":1,"ring":1}}`)
	require.Equal(t, http.StatusOK, res.Code)

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var message communication.EventMessage
	require.NoError(t, conn.ReadJSON(&message))
	require.Equal(t, communication.TokenPlaced, message.Type)
	require.Equal(t, &communication.Node{X: 0, Y: 1, Ring: 1}, message.Node)

	t.Run("removing the game closes the stream", func(t *testing.T) {
		require.Equal(t, http.StatusNoContent, do(t, s, http.MethodDelete, "/games/"+snapshot.ID, "").Code)

		for {
			if err := conn.ReadJSON(&message); err != nil {
				require.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), err.Error())
				return
			}
		}
	})
}
