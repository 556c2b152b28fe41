package client

import (
	"context"
	"errors"
	"morris/communication"
	"morris/communication/server"
	"morris/game"
	"morris/gamemaster"
	"morris/meta"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func node(x, y, ring int) game.Coordinate {
	return game.Coordinate{X: x, Y: y, Ring: ring}
}

func newClient(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config := meta.ServerConfig{AllowedOrigins: []string{"http://localhost:3000"}}
	srv := httptest.NewServer(server.New(gamemaster.NewMaster(), meta.DefaultLevels(), config).Handler())
	t.Cleanup(srv.Close)
	return New(srv.URL + "/")
}

func TestClient(t *testing.T) {
	c := newClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	levels, err := c.Levels(ctx)
	require.NoError(t, err)
	require.Len(t, levels, len(meta.DefaultLevels()))

	snapshot, err := c.CreateGame(ctx, communication.CreateRequest{Level: "Six Men's Morris"})
	require.NoError(t, err)
	require.Equal(t, 6, snapshot.Rules.TokensPerPlayer)
	id := snapshot.ID

	events, err := c.Events(ctx, id)
	require.NoError(t, err)

	snapshot, err = c.Select(ctx, id, node(1, 1, 2))
	require.NoError(t, err)
	require.Equal(t, "Player2", snapshot.CurrentPlayer)

	message := <-events
	require.Equal(t, communication.TokenPlaced, message.Type)
	require.Equal(t, "Player1", message.Player)

	t.Run("rejections carry their reason", func(t *testing.T) {
		_, err := c.Select(ctx, id, node(1, 1, 2))

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
		reason, ok := apiErr.Rejection()
		require.True(t, ok)
		require.Equal(t, game.NotEmptyNode, reason)
	})

	t.Run("acknowledging is harmless without a handshake", func(t *testing.T) {
		snapshot, err := c.Acknowledge(ctx, id)
		require.NoError(t, err)
		require.False(t, snapshot.Awaiting)
	})

	t.Run("removal ends the stream", func(t *testing.T) {
		require.NoError(t, c.RemoveGame(ctx, id))

		for range events {
		}

		_, err := c.Game(ctx, id)
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, http.StatusNotFound, apiErr.Status)
		_, ok := apiErr.Rejection()
		require.False(t, ok)
	})

	t.Run("streams of unknown games", func(t *testing.T) {
		_, err := c.Events(ctx, id)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, http.StatusNotFound, apiErr.Status)
	})
}
