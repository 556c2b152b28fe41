package server

import (
	"morris/communication"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = time.Minute
	pingPeriod = pongWait * 9 / 10
)

func (s *Server) handleEvents(ctx *gin.Context) {
	id := ctx.Param("id")
	events, cancel, err := s.master.Subscribe(id)
	if err != nil {
		fail(ctx, err)
		return
	}
	defer cancel()

	conn, err := s.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Debug().Msgf("websocket upgrade for game %s failed: %v", id, err)
		return
	}
	defer conn.Close()

	log.Debug().Msgf("streaming events of game %s to %s", id, ctx.ClientIP())
	streamEvents(conn, events)
}

// streamEvents writes events until the channel closes or the peer goes away.
func streamEvents(conn *websocket.Conn, events <-chan communication.EventMessage) {
	// Reading is only needed to process pongs and the close handshake
	gone := make(chan struct{})
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-events:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game-removed"))
				return
			}
			if err := conn.WriteJSON(message); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-gone:
			return
		}
	}
}
