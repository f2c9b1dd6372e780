package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tourneyhq/pokernights-api/internal/api/handler/v1/request"
	"github.com/tourneyhq/pokernights-api/internal/api/handler/v1/response"
	"github.com/tourneyhq/pokernights-api/internal/domain"
	"github.com/tourneyhq/pokernights-api/internal/service"
)

type PlayerService interface {
	CreatePlayer(ctx context.Context, player domain.Player) (domain.Player, error)
	GetPlayer(ctx context.Context, id uint) (domain.Player, error)
	ListPlayers(ctx context.Context) ([]domain.Player, error)
	UpdatePlayer(ctx context.Context, player domain.Player) (domain.Player, error)
	DeletePlayer(ctx context.Context, id uint) error
}

type PlayerHandler struct {
	svc PlayerService
}

func NewPlayerHandler(svc PlayerService) *PlayerHandler {
	return &PlayerHandler{
		svc: svc,
	}
}

// HandleListPlayers godoc
// @Summary      List all players
// @Tags         players
// @Produce      json
// @Success      200  {array}   domain.Player
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /players [get]
// @Security BearerAuth
func (h *PlayerHandler) HandleListPlayers(ctx *gin.Context) {
	players, err := h.svc.ListPlayers(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListPlayers -> h.svc.ListPlayers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, players)
}

// HandleGetPlayer godoc
// @Summary      Get a player
// @Tags         players
// @Produce      json
// @Param        playerID  path      int  true  "Player ID"
// @Success      200  {object}  domain.Player
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /players/{playerID} [get]
// @Security BearerAuth
func (h *PlayerHandler) HandleGetPlayer(ctx *gin.Context) {
	playerID, ok := parseUintParam(ctx, "playerID")
	if !ok {
		return
	}

	player, err := h.svc.GetPlayer(ctx.Request.Context(), playerID)
	if err != nil {
		if errors.Is(err, service.ErrPlayerNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("player", "ID", playerID))
			return
		}

		err = fmt.Errorf("v1.HandleGetPlayer -> h.svc.GetPlayer -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, player)
}

// HandleCreatePlayer godoc
// @Summary      Create a player
// @Tags         players
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreatePlayerRequest  true  "request body"
// @Success      201  {object}  domain.Player
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /players [post]
// @Security BearerAuth
func (h *PlayerHandler) HandleCreatePlayer(ctx *gin.Context) {
	var req request.CreatePlayerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	player, err := h.svc.CreatePlayer(ctx.Request.Context(), domain.Player{
		Name:     req.Name,
		Nickname: req.Nickname,
		IsGuest:  req.IsGuest,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreatePlayer -> h.svc.CreatePlayer -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, player)
}

// HandleUpdatePlayer godoc
// @Summary      Update a player
// @Tags         players
// @Accept       json
// @Produce      json
// @Param        playerID  path      int                          true  "Player ID"
// @Param        request   body      request.UpdatePlayerRequest  true  "request body"
// @Success      200  {object}  domain.Player
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /players/{playerID} [put]
// @Security BearerAuth
func (h *PlayerHandler) HandleUpdatePlayer(ctx *gin.Context) {
	playerID, ok := parseUintParam(ctx, "playerID")
	if !ok {
		return
	}

	var req request.UpdatePlayerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	player, err := h.svc.UpdatePlayer(ctx.Request.Context(), domain.Player{
		ID:       playerID,
		Name:     req.Name,
		Nickname: req.Nickname,
		IsGuest:  req.IsGuest,
	})
	if err != nil {
		if errors.Is(err, service.ErrPlayerNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("player", "ID", playerID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdatePlayer -> h.svc.UpdatePlayer -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, player)
}

// HandleDeletePlayer godoc
// @Summary      Delete a player
// @Tags         players
// @Produce      json
// @Param        playerID  path      int  true  "Player ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /players/{playerID} [delete]
// @Security BearerAuth
func (h *PlayerHandler) HandleDeletePlayer(ctx *gin.Context) {
	playerID, ok := parseUintParam(ctx, "playerID")
	if !ok {
		return
	}

	if err := h.svc.DeletePlayer(ctx.Request.Context(), playerID); err != nil {
		if errors.Is(err, service.ErrPlayerNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("player", "ID", playerID))
			return
		}

		err = fmt.Errorf("v1.HandleDeletePlayer -> h.svc.DeletePlayer -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

func parseUintParam(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid %v (%v)", name, raw)))
		return 0, false
	}

	return uint(parsed), true
}
