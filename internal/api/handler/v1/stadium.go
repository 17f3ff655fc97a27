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

const defaultStadiumsLimit = 10

type StadiumService interface {
	CreateStadium(ctx context.Context, stadium domain.Stadium) (domain.Stadium, error)
	GetStadium(ctx context.Context, id uint) (domain.Stadium, error)
	ListStadiums(ctx context.Context, page domain.Pagination) ([]domain.Stadium, domain.PageInfo, error)
	UpdateStadium(ctx context.Context, id uint, name *string, sectors []domain.Sector) (domain.Stadium, error)
}

type StadiumHandler struct {
	svc StadiumService
}

func NewStadiumHandler(svc StadiumService) *StadiumHandler {
	return &StadiumHandler{svc: svc}
}

// HandleCreateStadium godoc
// @Summary      Create a stadium with its sectors
// @Tags         stadiums
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateStadiumRequest true "request body"
// @Success      201      {object}  domain.Stadium
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /stadiums [post]
// @Security     BearerAuth
func (h *StadiumHandler) HandleCreateStadium(ctx *gin.Context) {
	var req request.CreateStadiumRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	stadium, err := h.svc.CreateStadium(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateStadium -> h.svc.CreateStadium -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, stadium)
}

// HandleListStadiums godoc
// @Summary      List stadiums
// @Tags         stadiums
// @Produce      json
// @Param        limit    query     int  false  "page size"
// @Param        skip     query     int  false  "offset"
// @Success      200      {object}  response.StadiumsResponse
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /stadiums [get]
// @Security     BearerAuth
func (h *StadiumHandler) HandleListStadiums(ctx *gin.Context) {
	page, respErr := pagination(ctx, defaultStadiumsLimit)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	stadiums, info, err := h.svc.ListStadiums(ctx.Request.Context(), page)
	if err != nil {
		err = fmt.Errorf("v1.HandleListStadiums -> h.svc.ListStadiums -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.StadiumsResponse{
		Auth:       true,
		Stadiums:   stadiums,
		Pagination: info,
	})
}

// HandleGetStadium godoc
// @Summary      Get a stadium
// @Tags         stadiums
// @Produce      json
// @Param        stadiumID path     int  true  "stadium ID"
// @Success      200      {object}  domain.Stadium
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /stadiums/{stadiumID} [get]
// @Security     BearerAuth
func (h *StadiumHandler) HandleGetStadium(ctx *gin.Context) {
	stadiumID, respErr := parseID(ctx, "stadiumID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	stadium, err := h.svc.GetStadium(ctx.Request.Context(), stadiumID)
	if err != nil {
		if errors.Is(err, service.ErrStadiumNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("stadium", "ID", stadiumID))
			return
		}

		err = fmt.Errorf("v1.HandleGetStadium -> h.svc.GetStadium -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, stadium)
}

// HandleUpdateStadium godoc
// @Summary      Update a stadium
// @Description  A sectors list, when present, replaces every existing sector.
// @Tags         stadiums
// @Accept       json
// @Produce      json
// @Param        stadiumID path     int  true  "stadium ID"
// @Param        request  body      request.UpdateStadiumRequest true "request body"
// @Success      200      {object}  domain.Stadium
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /stadiums/{stadiumID} [put]
// @Security     BearerAuth
func (h *StadiumHandler) HandleUpdateStadium(ctx *gin.Context) {
	stadiumID, respErr := parseID(ctx, "stadiumID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateStadiumRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	stadium, err := h.svc.UpdateStadium(ctx.Request.Context(), stadiumID, req.Name, req.SectorsToDomain())
	if err != nil {
		if errors.Is(err, service.ErrStadiumNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("stadium", "ID", stadiumID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateStadium -> h.svc.UpdateStadium -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, stadium)
}
