package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tourneyhq/pokernights-api/internal/api/handler/v1/request"
	"github.com/tourneyhq/pokernights-api/internal/api/handler/v1/response"
	"github.com/tourneyhq/pokernights-api/internal/domain"
	"github.com/tourneyhq/pokernights-api/internal/service"
)

type SeasonService interface {
	CreateSeason(ctx context.Context, season domain.Season) (domain.Season, error)
	GetSeason(ctx context.Context, id uint) (domain.Season, error)
	ListSeasons(ctx context.Context) ([]domain.Season, error)
	UpdateSeason(ctx context.Context, season domain.Season) (domain.Season, error)
	DeleteSeason(ctx context.Context, id uint) error
	GetStandings(ctx context.Context, seasonID uint) (domain.SeasonStandings, error)
}

type SeasonHandler struct {
	svc SeasonService
}

func NewSeasonHandler(svc SeasonService) *SeasonHandler {
	return &SeasonHandler{
		svc: svc,
	}
}

// HandleListSeasons godoc
// @Summary      List all seasons
// @Tags         seasons
// @Produce      json
// @Success      200  {array}   domain.Season
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /seasons [get]
// @Security BearerAuth
func (h *SeasonHandler) HandleListSeasons(ctx *gin.Context) {
	seasons, err := h.svc.ListSeasons(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListSeasons -> h.svc.ListSeasons -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, seasons)
}

// HandleGetSeason godoc
// @Summary      Get a season
// @Tags         seasons
// @Produce      json
// @Param        seasonID  path      int  true  "Season ID"
// @Success      200  {object}  domain.Season
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /seasons/{seasonID} [get]
// @Security BearerAuth
func (h *SeasonHandler) HandleGetSeason(ctx *gin.Context) {
	seasonID, ok := parseUintParam(ctx, "seasonID")
	if !ok {
		return
	}

	season, err := h.svc.GetSeason(ctx.Request.Context(), seasonID)
	if err != nil {
		if errors.Is(err, service.ErrSeasonNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("season", "ID", seasonID))
			return
		}

		err = fmt.Errorf("v1.HandleGetSeason -> h.svc.GetSeason -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, season)
}

// HandleCreateSeason godoc
// @Summary      Create a season
// @Tags         seasons
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateSeasonRequest  true  "request body"
// @Success      201  {object}  domain.Season
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /seasons [post]
// @Security BearerAuth
func (h *SeasonHandler) HandleCreateSeason(ctx *gin.Context) {
	var req request.CreateSeasonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	season, err := h.svc.CreateSeason(ctx.Request.Context(), domain.Season{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		IsActive:  true,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateSeason -> h.svc.CreateSeason -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, season)
}

// HandleUpdateSeason godoc
// @Summary      Update a season
// @Tags         seasons
// @Accept       json
// @Produce      json
// @Param        seasonID  path      int                          true  "Season ID"
// @Param        request   body      request.UpdateSeasonRequest  true  "request body"
// @Success      200  {object}  domain.Season
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /seasons/{seasonID} [put]
// @Security BearerAuth
func (h *SeasonHandler) HandleUpdateSeason(ctx *gin.Context) {
	seasonID, ok := parseUintParam(ctx, "seasonID")
	if !ok {
		return
	}

	var req request.UpdateSeasonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	season, err := h.svc.UpdateSeason(ctx.Request.Context(), domain.Season{
		ID:        seasonID,
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		IsActive:  req.IsActive,
	})
	if err != nil {
		if errors.Is(err, service.ErrSeasonNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("season", "ID", seasonID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateSeason -> h.svc.UpdateSeason -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, season)
}

// HandleDeleteSeason godoc
// @Summary      Delete a season
// @Tags         seasons
// @Produce      json
// @Param        seasonID  path      int  true  "Season ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /seasons/{seasonID} [delete]
// @Security BearerAuth
func (h *SeasonHandler) HandleDeleteSeason(ctx *gin.Context) {
	seasonID, ok := parseUintParam(ctx, "seasonID")
	if !ok {
		return
	}

	if err := h.svc.DeleteSeason(ctx.Request.Context(), seasonID); err != nil {
		if errors.Is(err, service.ErrSeasonNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("season", "ID", seasonID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteSeason -> h.svc.DeleteSeason -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleGetStandings godoc
// @Summary      Get season standings
// @Description  Recomputes the leaderboard and per-player progress from the season's completed events.
// @Tags         seasons
// @Produce      json
// @Param        seasonID  path      int  true  "Season ID"
// @Success      200  {object}  domain.SeasonStandings
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /seasons/{seasonID}/standings [get]
// @Security BearerAuth
func (h *SeasonHandler) HandleGetStandings(ctx *gin.Context) {
	seasonID, ok := parseUintParam(ctx, "seasonID")
	if !ok {
		return
	}

	standings, err := h.svc.GetStandings(ctx.Request.Context(), seasonID)
	if err != nil {
		if errors.Is(err, service.ErrSeasonNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("season", "ID", seasonID))
			return
		}

		err = fmt.Errorf("v1.HandleGetStandings -> h.svc.GetStandings -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, standings)
}
