package server

import (
	"context"
	"errors"
	"morris/gamemaster"
	"morris/meta"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// ShutdownTimeout bounds the wait for requests in flight when the server stops.
const ShutdownTimeout = 5 * time.Second

// Server exposes the games of a master over HTTP, with their events
// streamed over websockets.
type Server struct {
	master   *gamemaster.Master
	levels   []meta.Level
	config   meta.ServerConfig
	limiter  *RateLimiter
	upgrader websocket.Upgrader
	router   *gin.Engine
}

func New(master *gamemaster.Master, levels []meta.Level, config meta.ServerConfig) *Server {
	s := &Server{
		master:  master,
		levels:  levels,
		config:  config,
		limiter: NewRateLimiter(config.RateLimit),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return s.allowedOrigin(r.Header.Get("Origin"))
		},
	}
	s.router = s.routes()
	return s
}

// Requests without an origin come from non-browser clients and are let through.
func (s *Server) allowedOrigin(origin string) bool {
	return origin == "" || slices.Contains(s.config.AllowedOrigins, origin)
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/health", func(ctx *gin.Context) { ctx.String(http.StatusOK, "healthy") })

	r.Use(func(ctx *gin.Context) {
		if s.allowedOrigin(ctx.Request.Header.Get("Origin")) {
			ctx.Next()
			return
		}
		ctx.String(http.StatusForbidden, "forbidden origin")
		ctx.Abort()
	})

	r.Use(cors.New(cors.Config{
		AllowOrigins: s.config.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type",
			"Upgrade",
			"Connection",
			"Sec-WebSocket-Key",
			"Sec-WebSocket-Version",
			"Sec-WebSocket-Extensions",
			"Sec-WebSocket-Protocol",
		},
	}))
	r.Use(s.limiter.Middleware())

	r.GET("/levels", s.handleLevels)
	{
		games := r.Group("/games")
		games.POST("", s.handleCreate)
		games.GET("/:id", s.handleSnapshot)
		games.POST("/:id/select", s.handleSelect)
		games.POST("/:id/ack", s.handleAcknowledge)
		games.DELETE("/:id", s.handleRemove)
		games.GET("/:id/events", s.handleEvents)
	}
	return r
}

// Handler returns the routes of the server, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.config.Addr,
		Handler: s.router,
	}
	go s.limiter.Cleanup(ctx)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("listening on %s", s.config.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	log.Info().Msg("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
