package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/estadio/stadium-api/internal/api/handler/v1/request"
	"github.com/estadio/stadium-api/internal/api/handler/v1/response"
	"github.com/estadio/stadium-api/internal/api/middleware"
	"github.com/estadio/stadium-api/internal/config"
	"github.com/estadio/stadium-api/internal/domain"
	"github.com/estadio/stadium-api/internal/pkg/jwthelper"
	"github.com/estadio/stadium-api/internal/service"
)

type AuthService interface {
	Register(ctx context.Context, user domain.User) (domain.User, error)
	Login(ctx context.Context, name, password string) (domain.User, error)
	Me(ctx context.Context, id uint) (domain.User, error)
}

type AuthHandler struct {
	conf *config.APIConfig
	svc  AuthService
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService) *AuthHandler {
	return &AuthHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleRegister godoc
// @Summary      Register an administrator
// @Description  Public sign-up. Only accounts holding the admin scope can be created here.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request   body      request.CreateUserRequest true "request body"
// @Success      201      {object}   response.LoginResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/register [post]
func (h *AuthHandler) HandleRegister(ctx *gin.Context) {
	var req request.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.Register(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		if errors.Is(err, service.ErrOnlyAdmin) {
			response.RenderErr(ctx, response.ErrUnauthorized(service.ErrOnlyAdmin.Error()))
			return
		}
		if respErr := userConflict(err); respErr != nil {
			response.RenderErr(ctx, respErr)
			return
		}

		err = fmt.Errorf("v1.HandleRegister -> h.svc.Register -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	resp, err := h.issueToken(user)
	if err != nil {
		err = fmt.Errorf("v1.HandleRegister -> h.issueToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}

// HandleLogin godoc
// @Summary      Login with name and password
// @Description  Returns the token and also stores it in an httpOnly cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request   body      request.LoginRequest true "request body"
// @Success      200      {object}   response.LoginResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	user, err := h.svc.Login(ctx.Request.Context(), req.Name, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))

			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	resp, err := h.issueToken(user)
	if err != nil {
		err = fmt.Errorf("v1.HandleLogin -> h.issueToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	_, ttl := h.conf.Token()
	h.setTokenCookie(ctx, resp.Token, int(ttl.Seconds()))

	ctx.JSON(http.StatusOK, resp)
}

// HandleLogout godoc
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200      {object}   response.LogoutResponse
// @Failure      401      {object}   response.Err
// @Router       /auth/logout [get]
// @Security     BearerAuth
func (h *AuthHandler) HandleLogout(ctx *gin.Context) {
	h.setTokenCookie(ctx, "", -1)

	ctx.JSON(http.StatusOK, response.LogoutResponse{Logout: true})
}

// HandleMe godoc
// @Summary      Current user
// @Description  Reads the caller from the store, so scopes granted after login are included.
// @Tags         auth
// @Produce      json
// @Success      200      {object}   domain.User
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) HandleMe(ctx *gin.Context) {
	identity, respErr := getIdentity(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	user, err := h.svc.Me(ctx.Request.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", identity.ID))
			return
		}

		err = fmt.Errorf("v1.HandleMe -> h.svc.Me -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, user)
}

func (h *AuthHandler) issueToken(user domain.User) (response.LoginResponse, error) {
	identity := domain.Identity{
		ID:     user.ID,
		Name:   user.Name,
		Scopes: user.Role.Scopes,
	}

	key, ttl := h.conf.Token()
	token, err := jwthelper.GenerateToken(key, ttl, identity)
	if err != nil {
		return response.LoginResponse{}, fmt.Errorf("jwthelper.GenerateToken -> %w", err)
	}

	return response.LoginResponse{
		Auth:    true,
		Token:   token,
		Decoded: identity,
		User:    response.LoginUser{ID: user.ID, Name: user.Name},
	}, nil
}

func (h *AuthHandler) setTokenCookie(ctx *gin.Context, token string, maxAge int) {
	secure := h.conf.SecureCookie()
	if secure {
		ctx.SetSameSite(http.SameSiteNoneMode)
	} else {
		ctx.SetSameSite(http.SameSiteLaxMode)
	}

	ctx.SetCookie(middleware.TokenCookie, token, maxAge, "/", "", secure, true)
}

// userConflict maps unique violations on users to a 400.
func userConflict(err error) *response.Err {
	for _, sentinel := range []error{
		service.ErrUserNameExists,
		service.ErrUserEmailExists,
		service.ErrUserTaxNumberExists,
	} {
		if errors.Is(err, sentinel) {
			return response.ErrConflict(err, sentinel.Error())
		}
	}

	return nil
}
