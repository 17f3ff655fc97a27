package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/estadio/stadium-api/internal/api/handler/v1/request"
	"github.com/estadio/stadium-api/internal/api/handler/v1/response"
	"github.com/estadio/stadium-api/internal/domain"
	"github.com/estadio/stadium-api/internal/service"
)

const (
	defaultUsersLimit   = 10
	defaultMembersLimit = 5
)

type UserService interface {
	ListUsers(ctx context.Context, page domain.Pagination) ([]domain.User, error)
	UpdateUser(ctx context.Context, id uint, patch domain.UserPatch) (domain.User, error)
	AttachMember(ctx context.Context, userID uint, member domain.Member) (domain.User, error)
	ListMembers(ctx context.Context, page domain.Pagination) ([]domain.Member, domain.PageInfo, error)
	GetMember(ctx context.Context, id uint) (domain.Member, error)
	GetMemberByTaxNumber(ctx context.Context, taxNumber int64) (domain.Member, error)
	UpdateMemberOfUser(ctx context.Context, userID uint, patch domain.MemberPatch) (domain.Member, error)
}

type UserCreator interface {
	CreateUser(ctx context.Context, user domain.User) (domain.User, error)
}

type UserHandler struct {
	svc     UserService
	creator UserCreator
}

func NewUserHandler(svc UserService, creator UserCreator) *UserHandler {
	return &UserHandler{
		svc:     svc,
		creator: creator,
	}
}

// HandleListUsers godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        limit    query     int  false  "page size"
// @Param        skip     query     int  false  "offset"
// @Success      200      {object}  response.UsersResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /users [get]
// @Security     BearerAuth
func (h *UserHandler) HandleListUsers(ctx *gin.Context) {
	page, respErr := pagination(ctx, defaultUsersLimit)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	users, err := h.svc.ListUsers(ctx.Request.Context(), page)
	if err != nil {
		err = fmt.Errorf("v1.HandleListUsers -> h.svc.ListUsers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.UsersResponse{Auth: true, Users: users})
}

// HandleCreateUser godoc
// @Summary      Create a non-member user
// @Description  Administrators create regular accounts here. The role must be exactly notMember.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateUserRequest true "request body"
// @Success      201      {object}  domain.User
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /users [post]
// @Security     BearerAuth
func (h *UserHandler) HandleCreateUser(ctx *gin.Context) {
	var req request.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.creator.CreateUser(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		if errors.Is(err, service.ErrOnlyNotMember) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrOnlyNotMember))
			return
		}
		if respErr := userConflict(err); respErr != nil {
			response.RenderErr(ctx, respErr)
			return
		}

		err = fmt.Errorf("v1.HandleCreateUser -> h.creator.CreateUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, user)
}

// HandleUpdateUser godoc
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        userID   path      int  true  "user ID"
// @Param        request  body      request.UpdateUserRequest true "request body"
// @Success      200      {object}  domain.User
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /users/{userID} [put]
// @Security     BearerAuth
func (h *UserHandler) HandleUpdateUser(ctx *gin.Context) {
	userID, respErr := parseID(ctx, "userID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.UpdateUser(ctx.Request.Context(), userID, req.ToDomain())
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", userID))
			return
		}
		if respErr := userConflict(err); respErr != nil {
			response.RenderErr(ctx, respErr)
			return
		}

		err = fmt.Errorf("v1.HandleUpdateUser -> h.svc.UpdateUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleAttachMember godoc
// @Summary      Create the member profile of a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        userID   path      int  true  "user ID"
// @Param        request  body      request.MemberRequest true "request body"
// @Success      201      {object}  domain.User
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /users/{userID}/member [post]
// @Security     BearerAuth
func (h *UserHandler) HandleAttachMember(ctx *gin.Context) {
	userID, respErr := parseID(ctx, "userID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.MemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.AttachMember(ctx.Request.Context(), userID, req.ToDomain())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", userID))
		case errors.Is(err, service.ErrMemberExists):
			response.RenderErr(ctx, response.ErrConflict(err, "Member already exists"))
		default:
			err = fmt.Errorf("v1.HandleAttachMember -> h.svc.AttachMember -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, user)
}

// HandleListMembers godoc
// @Summary      List member profiles
// @Tags         members
// @Produce      json
// @Param        limit    query     int  false  "page size"
// @Param        skip     query     int  false  "offset"
// @Success      200      {object}  response.MembersResponse
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /users/member [get]
// @Security     BearerAuth
func (h *UserHandler) HandleListMembers(ctx *gin.Context) {
	page, respErr := pagination(ctx, defaultMembersLimit)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	members, info, err := h.svc.ListMembers(ctx.Request.Context(), page)
	if err != nil {
		err = fmt.Errorf("v1.HandleListMembers -> h.svc.ListMembers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MembersResponse{
		Auth:       true,
		Members:    members,
		Pagination: info,
	})
}

// HandleGetMember godoc
// @Summary      Get a member profile
// @Tags         members
// @Produce      json
// @Param        memberID path      int  true  "member ID"
// @Success      200      {object}  domain.Member
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /users/member/{memberID} [get]
// @Security     BearerAuth
func (h *UserHandler) HandleGetMember(ctx *gin.Context) {
	memberID, respErr := parseID(ctx, "memberID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	member, err := h.svc.GetMember(ctx.Request.Context(), memberID)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("member", "ID", memberID))
			return
		}

		err = fmt.Errorf("v1.HandleGetMember -> h.svc.GetMember -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, member)
}

// HandleGetMemberByTaxNumber godoc
// @Summary      Find a member profile by tax number
// @Tags         members
// @Produce      json
// @Param        taxNumber path     int  true  "tax number"
// @Success      200      {object}  domain.Member
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /users/member/tax/{taxNumber} [get]
// @Security     BearerAuth
func (h *UserHandler) HandleGetMemberByTaxNumber(ctx *gin.Context) {
	taxNumber, err := strconv.ParseInt(ctx.Param("taxNumber"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid taxNumber: %w", err)))
		return
	}

	member, err := h.svc.GetMemberByTaxNumber(ctx.Request.Context(), taxNumber)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("member", "tax number", taxNumber))
			return
		}

		err = fmt.Errorf("v1.HandleGetMemberByTaxNumber -> h.svc.GetMemberByTaxNumber -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, member)
}

// HandleUpdateMemberOfUser godoc
// @Summary      Update the member profile linked to a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        userID   path      int  true  "user ID"
// @Param        request  body      request.UpdateMemberRequest true "request body"
// @Success      200      {object}  domain.Member
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /users/{userID}/member [put]
// @Security     BearerAuth
func (h *UserHandler) HandleUpdateMemberOfUser(ctx *gin.Context) {
	userID, respErr := parseID(ctx, "userID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	member, err := h.svc.UpdateMemberOfUser(ctx.Request.Context(), userID, req.ToDomain())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", userID))
		case errors.Is(err, service.ErrUserHasNoMember), errors.Is(err, service.ErrMemberNotFound):
			response.RenderErr(ctx, response.ErrNotFoundMsg("User does not have an associated member"))
		case errors.Is(err, service.ErrMemberExists):
			response.RenderErr(ctx, response.ErrConflict(err, "Tax number already in use"))
		default:
			err = fmt.Errorf("v1.HandleUpdateMemberOfUser -> h.svc.UpdateMemberOfUser -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, member)
}
