package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/estadio/stadium-api/internal/api/handler/v1/request"
	"github.com/estadio/stadium-api/internal/api/handler/v1/response"
	"github.com/estadio/stadium-api/internal/domain"
	"github.com/estadio/stadium-api/internal/service"
)

const defaultGamesLimit = 10

type GameService interface {
	CreateGame(ctx context.Context, game domain.Game) (domain.Game, error)
	GetGame(ctx context.Context, id uint) (domain.Game, error)
	ListGames(ctx context.Context, page domain.Pagination) ([]domain.Game, domain.PageInfo, error)
	UpdateGame(ctx context.Context, id uint, patch domain.GamePatch) (domain.Game, error)
}

type GameHandler struct {
	svc GameService
}

func NewGameHandler(svc GameService) *GameHandler {
	return &GameHandler{svc: svc}
}

// HandleCreateGame godoc
// @Summary      Schedule a game
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateGameRequest true "request body"
// @Success      201      {object}  domain.Game
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /games [post]
// @Security     BearerAuth
func (h *GameHandler) HandleCreateGame(ctx *gin.Context) {
	var req request.CreateGameRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	game, err := h.svc.CreateGame(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		if errors.Is(err, service.ErrStadiumNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("stadium", "ID", *req.StadiumID))
			return
		}

		err = fmt.Errorf("v1.HandleCreateGame -> h.svc.CreateGame -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, game)
}

// HandleListGames godoc
// @Summary      List games
// @Tags         games
// @Produce      json
// @Param        limit    query     int  false  "page size"
// @Param        skip     query     int  false  "offset"
// @Success      200      {object}  response.GamesResponse
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /games [get]
// @Security     BearerAuth
func (h *GameHandler) HandleListGames(ctx *gin.Context) {
	h.listGames(ctx, true)
}

// HandleListPublicGames godoc
// @Summary      List games without authentication
// @Tags         games
// @Produce      json
// @Param        limit    query     int  false  "page size"
// @Param        skip     query     int  false  "offset"
// @Success      200      {object}  response.GamesResponse
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /games/public [get]
func (h *GameHandler) HandleListPublicGames(ctx *gin.Context) {
	h.listGames(ctx, false)
}

func (h *GameHandler) listGames(ctx *gin.Context, auth bool) {
	page, respErr := pagination(ctx, defaultGamesLimit)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	games, info, err := h.svc.ListGames(ctx.Request.Context(), page)
	if err != nil {
		err = fmt.Errorf("v1.listGames -> h.svc.ListGames -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.GamesResponse{
		Auth:       auth,
		Games:      games,
		Pagination: info,
	})
}

// HandleGetGame godoc
// @Summary      Get a game
// @Tags         games
// @Produce      json
// @Param        gameID   path      int  true  "game ID"
// @Success      200      {object}  domain.Game
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /games/{gameID} [get]
// @Security     BearerAuth
func (h *GameHandler) HandleGetGame(ctx *gin.Context) {
	game, ok := h.findGame(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, game)
}

// HandleGetPublicGame godoc
// @Summary      Get a game without authentication
// @Tags         games
// @Produce      json
// @Param        gameID   path      int  true  "game ID"
// @Success      200      {object}  response.GameResponse
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /games/public/{gameID} [get]
func (h *GameHandler) HandleGetPublicGame(ctx *gin.Context) {
	game, ok := h.findGame(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, response.GameResponse{Auth: false, Game: game})
}

func (h *GameHandler) findGame(ctx *gin.Context) (domain.Game, bool) {
	gameID, respErr := parseID(ctx, "gameID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return domain.Game{}, false
	}

	game, err := h.svc.GetGame(ctx.Request.Context(), gameID)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			response.RenderErr(ctx, response.ErrNotFoundMsg("Game not found"))
			return domain.Game{}, false
		}

		err = fmt.Errorf("v1.findGame -> h.svc.GetGame -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return domain.Game{}, false
	}

	return game, true
}

// HandleUpdateGame godoc
// @Summary      Update a game
// @Tags         games
// @Accept       json
// @Produce      json
// @Param        gameID   path      int  true  "game ID"
// @Param        request  body      request.UpdateGameRequest true "request body"
// @Success      200      {object}  domain.Game
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /games/{gameID} [put]
// @Security     BearerAuth
func (h *GameHandler) HandleUpdateGame(ctx *gin.Context) {
	gameID, respErr := parseID(ctx, "gameID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateGameRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	game, err := h.svc.UpdateGame(ctx.Request.Context(), gameID, req.ToDomain())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGameNotFound):
			response.RenderErr(ctx, response.ErrNotFoundMsg("Game not found"))
		case errors.Is(err, service.ErrStadiumNotFound):
			response.RenderErr(ctx, response.ErrNotFound("stadium", "ID", *req.StadiumID))
		default:
			err = fmt.Errorf("v1.HandleUpdateGame -> h.svc.UpdateGame -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, game)
}
