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

const defaultRequestsLimit = 10

type MembershipService interface {
	Submit(ctx context.Context, userID uint) (domain.MemberRequest, error)
	Approve(ctx context.Context, requestID, adminID uint) (domain.MemberRequest, error)
	Reject(ctx context.Context, requestID, adminID uint, reason string) (domain.MemberRequest, error)
	ListMine(ctx context.Context, userID uint) ([]domain.MemberRequest, error)
	ListAll(ctx context.Context, page domain.Pagination, status domain.MemberRequestStatus) ([]domain.MemberRequest, error)
}

type MemberRequestHandler struct {
	svc MembershipService
}

func NewMemberRequestHandler(svc MembershipService) *MemberRequestHandler {
	return &MemberRequestHandler{svc: svc}
}

// HandleSubmit godoc
// @Summary      Ask to become a member
// @Tags         member-requests
// @Produce      json
// @Success      200      {object}  response.MemberRequestResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /member-requests [post]
// @Security     BearerAuth
func (h *MemberRequestHandler) HandleSubmit(ctx *gin.Context) {
	identity, respErr := getIdentity(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	created, err := h.svc.Submit(ctx.Request.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, service.ErrPendingRequestExists) {
			response.RenderErr(ctx, response.ErrConflict(err, "You already have a pending membership request"))
			return
		}

		err = fmt.Errorf("v1.HandleSubmit -> h.svc.Submit -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MemberRequestResponse{
		Message: "Membership request submitted successfully",
		Request: created,
	})
}

// HandleListRequests godoc
// @Summary      List membership requests
// @Description  Newest first. With a status filter every matching request is returned.
// @Tags         member-requests
// @Produce      json
// @Param        status   query     string  false  "pending, approved or rejected"
// @Param        limit    query     int     false  "page size"
// @Param        skip     query     int     false  "offset"
// @Success      200      {object}  response.MemberRequestsResponse
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /member-requests [get]
// @Security     BearerAuth
func (h *MemberRequestHandler) HandleListRequests(ctx *gin.Context) {
	page, respErr := pagination(ctx, defaultRequestsLimit)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	status := domain.MemberRequestStatus(ctx.Query("status"))

	requests, err := h.svc.ListAll(ctx.Request.Context(), page, status)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleListRequests -> h.svc.ListAll -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MemberRequestsResponse{Auth: true, Requests: requests})
}

// HandleMyRequests godoc
// @Summary      List the caller's membership requests
// @Tags         member-requests
// @Produce      json
// @Success      200      {object}  response.MemberRequestsResponse
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /member-requests/my-requests [get]
// @Security     BearerAuth
func (h *MemberRequestHandler) HandleMyRequests(ctx *gin.Context) {
	identity, respErr := getIdentity(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	requests, err := h.svc.ListMine(ctx.Request.Context(), identity.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleMyRequests -> h.svc.ListMine -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MemberRequestsResponse{Auth: true, Requests: requests})
}

// HandleApprove godoc
// @Summary      Approve a pending membership request
// @Tags         member-requests
// @Produce      json
// @Param        requestID path     int  true  "request ID"
// @Success      200      {object}  response.MemberRequestResponse
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /member-requests/{requestID}/approve [put]
// @Security     BearerAuth
func (h *MemberRequestHandler) HandleApprove(ctx *gin.Context) {
	identity, respErr := getIdentity(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	requestID, respErr := parseID(ctx, "requestID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	approved, err := h.svc.Approve(ctx.Request.Context(), requestID, identity.ID)
	if err != nil {
		response.RenderErr(ctx, decisionErr("v1.HandleApprove -> h.svc.Approve", requestID, err))
		return
	}

	ctx.JSON(http.StatusOK, response.MemberRequestResponse{
		Message: "Membership request approved",
		Request: approved,
	})
}

// HandleReject godoc
// @Summary      Reject a pending membership request
// @Tags         member-requests
// @Accept       json
// @Produce      json
// @Param        requestID path     int  true  "request ID"
// @Param        request  body      request.RejectMemberRequest false "request body"
// @Success      200      {object}  response.MemberRequestResponse
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /member-requests/{requestID}/reject [put]
// @Security     BearerAuth
func (h *MemberRequestHandler) HandleReject(ctx *gin.Context) {
	identity, respErr := getIdentity(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	requestID, respErr := parseID(ctx, "requestID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	// The body is optional; an empty reason falls back to the default.
	var req request.RejectMemberRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
		if err := req.Validate(); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
	}

	rejected, err := h.svc.Reject(ctx.Request.Context(), requestID, identity.ID, req.Reason)
	if err != nil {
		response.RenderErr(ctx, decisionErr("v1.HandleReject -> h.svc.Reject", requestID, err))
		return
	}

	ctx.JSON(http.StatusOK, response.MemberRequestResponse{
		Message: "Membership request rejected",
		Request: rejected,
	})
}

func decisionErr(op string, requestID uint, err error) *response.Err {
	switch {
	case errors.Is(err, service.ErrRequestNotFound):
		return response.ErrNotFound("member request", "ID", requestID)
	case errors.Is(err, service.ErrRequestNotPending):
		return response.ErrConflict(err, "Request is not pending")
	default:
		return response.ErrInternalServerError(fmt.Errorf("%s -> %w", op, err))
	}
}
