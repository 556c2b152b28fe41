package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"morris/communication"
	"morris/game"
	"morris/meta"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
)

// APIError is a non-successful response of the server.
type APIError struct {
	Status   int
	Response communication.ErrorResponse
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server replied %d: %s", e.Status, e.Response.Error)
}

// Rejection returns the reason of a rejected selection.
func (e *APIError) Rejection() (game.Reason, bool) {
	if e.Response.Reason == "" {
		return 0, false
	}
	return game.ParseReason(e.Response.Reason)
}

type Client struct {
	serverURL string
	http      *http.Client
	dialer    *websocket.Dialer
}

func New(serverURL string) *Client {
	return &Client{
		serverURL: strings.TrimSuffix(serverURL, "/"),
		http:      http.DefaultClient,
		dialer:    websocket.DefaultDialer,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.serverURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr.Response); err != nil {
			apiErr.Response.Error = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) Levels(ctx context.Context) ([]meta.Level, error) {
	var levels []meta.Level
	err := c.do(ctx, http.MethodGet, "/levels", nil, &levels)
	return levels, err
}

func (c *Client) CreateGame(ctx context.Context, req communication.CreateRequest) (communication.Snapshot, error) {
	var snapshot communication.Snapshot
	err := c.do(ctx, http.MethodPost, "/games", req, &snapshot)
	return snapshot, err
}

func (c *Client) Game(ctx context.Context, id string) (communication.Snapshot, error) {
	var snapshot communication.Snapshot
	err := c.do(ctx, http.MethodGet, "/games/"+id, nil, &snapshot)
	return snapshot, err
}

// Select sends a node selection. A rejection is returned as an *APIError.
func (c *Client) Select(ctx context.Context, id string, node game.Coordinate) (communication.Snapshot, error) {
	var snapshot communication.Snapshot
	n := communication.FromCoordinate(node)
	err := c.do(ctx, http.MethodPost, "/games/"+id+"/select", communication.SelectRequest{Node: &n}, &snapshot)
	return snapshot, err
}

func (c *Client) Acknowledge(ctx context.Context, id string) (communication.Snapshot, error) {
	var snapshot communication.Snapshot
	err := c.do(ctx, http.MethodPost, "/games/"+id+"/ack", nil, &snapshot)
	return snapshot, err
}

func (c *Client) RemoveGame(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/games/"+id, nil, nil)
}

// Events streams the events of a game. The channel closes when the game is
// removed, the connection drops or ctx is done.
func (c *Client) Events(ctx context.Context, id string) (<-chan communication.EventMessage, error) {
	wsURL := "ws" + strings.TrimPrefix(c.serverURL, "http") + "/games/" + id + "/events"
	conn, resp, err := c.dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		if resp != nil && resp.StatusCode >= http.StatusBadRequest {
			return nil, &APIError{Status: resp.StatusCode, Response: communication.ErrorResponse{Error: http.StatusText(resp.StatusCode)}}
		}
		return nil, err
	}

	events := make(chan communication.EventMessage)
	go func() {
		<-ctx.Done()
		conn.Close()
	}()
	go func() {
		defer close(events)
		defer conn.Close()
		for {
			var message communication.EventMessage
			if err := conn.ReadJSON(&message); err != nil {
				return
			}
			select {
			case events <- message:
			case <-ctx.Done():
				return
			}
		}
	}()
	return events, nil
}
