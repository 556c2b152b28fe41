package server

import (
	"errors"
	"io"
	"morris/communication"
	"morris/engine"
	"morris/game"
	"morris/gamemaster"
	"morris/meta"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func errorResponse(message string) communication.ErrorResponse {
	return communication.ErrorResponse{Error: message}
}

// fail maps an error of the game master to a status and aborts the request.
func fail(ctx *gin.Context, err error) {
	if reason, ok := game.RejectionReason(err); ok {
		ctx.AbortWithStatusJSON(http.StatusUnprocessableEntity, communication.ErrorResponse{
			Error:  err.Error(),
			Reason: reason.String(),
		})
		return
	}

	switch {
	case errors.Is(err, gamemaster.ErrGameNotFound):
		ctx.AbortWithStatusJSON(http.StatusNotFound, errorResponse("game-not-found"))
	case errors.Is(err, engine.ErrAwaitingAck):
		ctx.AbortWithStatusJSON(http.StatusConflict, errorResponse("awaiting-acknowledgement"))
	case errors.Is(err, game.ErrInvalidRules), errors.Is(err, game.ErrInvalidPlayers):
		ctx.AbortWithStatusJSON(http.StatusUnprocessableEntity, errorResponse(err.Error()))
	case errors.Is(err, meta.ErrUnknownLevel):
		ctx.AbortWithStatusJSON(http.StatusBadRequest, errorResponse(err.Error()))
	default:
		log.Error().Msgf("%s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, err)
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse("unknown-error"))
	}
}

func (s *Server) handleLevels(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, s.levels)
}

func (s *Server) handleCreate(ctx *gin.Context) {
	var req communication.CreateRequest
	// The body is optional
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, errorResponse("invalid-request-format"))
		return
	}

	rules, err := s.resolveRules(req)
	if err != nil {
		fail(ctx, err)
		return
	}
	profiles := game.DefaultProfiles()
	if req.Profiles != nil {
		profiles = *req.Profiles
	}

	_, snapshot, err := s.master.Create(rules, profiles)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, snapshot)
}

// Explicit rules take precedence over a level name.
func (s *Server) resolveRules(req communication.CreateRequest) (game.Rules, error) {
	if req.Rules != nil {
		return *req.Rules, nil
	}
	name := req.Level
	if name == "" {
		name = meta.DEFAULT_LEVEL
	}
	level, err := meta.FindLevel(s.levels, name)
	if err != nil {
		return game.Rules{}, err
	}
	return level.Rules, nil
}

func (s *Server) handleSnapshot(ctx *gin.Context) {
	snapshot, err := s.master.Snapshot(ctx.Param("id"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, snapshot)
}

func (s *Server) handleSelect(ctx *gin.Context) {
	var req communication.SelectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, errorResponse("invalid-request-format"))
		return
	}

	snapshot, err := s.master.Select(ctx.Param("id"), req.Node.Coordinate())
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, snapshot)
}

func (s *Server) handleAcknowledge(ctx *gin.Context) {
	snapshot, err := s.master.Acknowledge(ctx.Param("id"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, snapshot)
}

func (s *Server) handleRemove(ctx *gin.Context) {
	if err := s.master.Remove(ctx.Param("id")); err != nil {
		fail(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
