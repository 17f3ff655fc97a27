package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/estadio/stadium-api/internal/api/handler/v1/response"
	"github.com/estadio/stadium-api/internal/config"
	"github.com/estadio/stadium-api/internal/domain"
	"github.com/estadio/stadium-api/internal/pkg/jwthelper"
)

const (
	TokenCookie = "token"

	identityKey = "identity"
)

type Authenticator struct {
	conf *config.APIConfig
}

func NewAuthenticator(conf *config.APIConfig) *Authenticator {
	return &Authenticator{
		conf: conf,
	}
}

// VerifyJWT reads the token from the session cookie, falling back to the
// Authorization header, and stores the caller identity on the context.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := tokenFromRequest(ctx)
		if token == "" {
			response.RenderErr(ctx, response.ErrUnauthorized("No token provided."))
			return
		}

		key, _ := a.conf.Token()
		claims, err := jwthelper.ParseToken(key, token)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized("Not authorized"))
			return
		}

		ctx.Set(identityKey, claims.Identity())
		ctx.Next()
	}
}

func tokenFromRequest(ctx *gin.Context) string {
	if cookie, err := ctx.Cookie(TokenCookie); err == nil && cookie != "" {
		return cookie
	}

	header := ctx.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}

	return ""
}

// Authorize lets the request through when the caller holds at least one of
// scopes.
func Authorize(scopes ...domain.Scope) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		identity, ok := GetIdentity(ctx)
		if !ok {
			response.RenderErr(ctx, response.ErrUnauthorized("No token provided."))
			return
		}

		if !identity.Scopes.HasAny(scopes...) {
			response.RenderErr(ctx, response.ErrPermissionDenied(
				fmt.Errorf("user %v lacks any of %v", identity.ID, scopes),
			))
			return
		}

		ctx.Next()
	}
}

func GetIdentity(ctx *gin.Context) (domain.Identity, bool) {
	value, ok := ctx.Get(identityKey)
	if !ok {
		return domain.Identity{}, false
	}

	identity, ok := value.(domain.Identity)
	return identity, ok
}

// SetIdentity is used by tests to bypass token verification.
func SetIdentity(ctx *gin.Context, identity domain.Identity) {
	ctx.Set(identityKey, identity)
}
