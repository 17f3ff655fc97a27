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

const defaultTicketsLimit = 5

type TicketService interface {
	Purchase(ctx context.Context, userID, gameID uint, sector string) (domain.Purchase, error)
	CreateForUser(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error)
	List(ctx context.Context, caller domain.Identity, page domain.Pagination) ([]domain.Ticket, error)
	ListByGame(ctx context.Context, gameID uint) ([]domain.Ticket, error)
	Get(ctx context.Context, id uint) (domain.Ticket, error)
	Update(ctx context.Context, id uint, patch domain.TicketPatch) (domain.Ticket, error)
}

type TicketHandler struct {
	svc TicketService
}

func NewTicketHandler(svc TicketService) *TicketHandler {
	return &TicketHandler{svc: svc}
}

// HandlePurchase godoc
// @Summary      Buy a ticket
// @Description  The price depends on the buyer holding the member scope at purchase time.
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        request  body      request.PurchaseTicketRequest true "request body"
// @Success      200      {object}  response.PurchaseResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /tickets/purchase [post]
// @Security     BearerAuth
func (h *TicketHandler) HandlePurchase(ctx *gin.Context) {
	identity, respErr := getIdentity(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.PurchaseTicketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	purchase, err := h.svc.Purchase(ctx.Request.Context(), identity.ID, req.GameID, req.Sector)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGameNotFound):
			response.RenderErr(ctx, response.ErrNotFoundMsg("Game not found"))
		case errors.Is(err, service.ErrGameWithoutStadium):
			response.RenderErr(ctx, response.ErrNotFoundMsg("Game does not have a stadium associated"))
		case errors.Is(err, service.ErrStadiumNotFound):
			response.RenderErr(ctx, response.ErrNotFoundMsg("Stadium not found"))
		case errors.Is(err, service.ErrSectorNotFound):
			response.RenderErr(ctx, response.ErrNotFoundMsg(
				fmt.Sprintf("Sector %q not found in this stadium", req.Sector),
			))
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", identity.ID))
		default:
			err = fmt.Errorf("v1.HandlePurchase -> h.svc.Purchase -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.PurchaseResponse{
		Message:  "Ticket purchased successfully",
		Ticket:   purchase.Ticket,
		Price:    purchase.Price,
		IsMember: purchase.IsMember,
	})
}

// HandleCreateForUser godoc
// @Summary      Issue a ticket to a user
// @Description  Stored exactly as given; no pricing rule is applied.
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateTicketRequest true "request body"
// @Success      201      {object}  domain.Ticket
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /tickets/user [post]
// @Security     BearerAuth
func (h *TicketHandler) HandleCreateForUser(ctx *gin.Context) {
	var req request.CreateTicketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	ticket, err := h.svc.CreateForUser(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGameNotFound):
			response.RenderErr(ctx, response.ErrNotFoundMsg("Game not found"))
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", req.UserID))
		default:
			err = fmt.Errorf("v1.HandleCreateForUser -> h.svc.CreateForUser -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, ticket)
}

// HandleListTickets godoc
// @Summary      List tickets
// @Description  Administrators see every ticket, everyone else only their own.
// @Tags         tickets
// @Produce      json
// @Param        limit    query     int  false  "page size"
// @Param        skip     query     int  false  "offset"
// @Success      200      {object}  response.TicketsResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /tickets [get]
// @Security     BearerAuth
func (h *TicketHandler) HandleListTickets(ctx *gin.Context) {
	identity, respErr := getIdentity(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	page, respErr := pagination(ctx, defaultTicketsLimit)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	tickets, err := h.svc.List(ctx.Request.Context(), identity, page)
	if err != nil {
		err = fmt.Errorf("v1.HandleListTickets -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.TicketsResponse{Auth: true, Tickets: tickets})
}

// HandleListByGame godoc
// @Summary      List the tickets of a game
// @Tags         tickets
// @Produce      json
// @Param        gameID   path      int  true  "game ID"
// @Success      200      {array}   domain.Ticket
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /tickets/game/{gameID} [get]
// @Security     BearerAuth
func (h *TicketHandler) HandleListByGame(ctx *gin.Context) {
	gameID, respErr := parseID(ctx, "gameID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	tickets, err := h.svc.ListByGame(ctx.Request.Context(), gameID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListByGame -> h.svc.ListByGame -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, tickets)
}

// HandleGetTicket godoc
// @Summary      Get a ticket
// @Tags         tickets
// @Produce      json
// @Param        ticketID path      int  true  "ticket ID"
// @Success      200      {object}  domain.Ticket
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /tickets/{ticketID} [get]
// @Security     BearerAuth
func (h *TicketHandler) HandleGetTicket(ctx *gin.Context) {
	ticketID, respErr := parseID(ctx, "ticketID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ticket, err := h.svc.Get(ctx.Request.Context(), ticketID)
	if err != nil {
		if errors.Is(err, service.ErrTicketNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("ticket", "ID", ticketID))
			return
		}

		err = fmt.Errorf("v1.HandleGetTicket -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, ticket)
}

// HandleUpdateTicket godoc
// @Summary      Update a ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Param        ticketID path      int  true  "ticket ID"
// @Param        request  body      request.UpdateTicketRequest true "request body"
// @Success      200      {object}  domain.Ticket
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /tickets/{ticketID} [put]
// @Security     BearerAuth
func (h *TicketHandler) HandleUpdateTicket(ctx *gin.Context) {
	ticketID, respErr := parseID(ctx, "ticketID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateTicketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	ticket, err := h.svc.Update(ctx.Request.Context(), ticketID, req.ToDomain())
	if err != nil {
		if errors.Is(err, service.ErrTicketNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("ticket", "ID", ticketID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateTicket -> h.svc.Update -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, ticket)
}
