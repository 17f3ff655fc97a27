package v1

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/estadio/stadium-api/internal/api/handler/v1/response"
	"github.com/estadio/stadium-api/internal/api/middleware"
	"github.com/estadio/stadium-api/internal/domain"
)

var maxPageLimit = 100

// SetMaxPageLimit caps the ?limit any list endpoint accepts.
func SetMaxPageLimit(limit int) {
	if limit > 0 {
		maxPageLimit = limit
	}
}

func getIdentity(ctx *gin.Context) (domain.Identity, *response.Err) {
	identity, ok := middleware.GetIdentity(ctx)
	if !ok || identity.ID == 0 {
		return domain.Identity{}, response.ErrUnauthorized("User ID not found in token")
	}

	return identity, nil
}

func parseID(ctx *gin.Context, param string) (uint, *response.Err) {
	id, err := strconv.ParseUint(ctx.Param(param), 10, 64)
	if err != nil || id == 0 {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid %s: %q", param, ctx.Param(param)))
	}

	return uint(id), nil
}

// pagination reads ?limit and ?skip, falling back to defaultLimit.
func pagination(ctx *gin.Context, defaultLimit int) (domain.Pagination, *response.Err) {
	page := domain.Pagination{Limit: defaultLimit}

	if raw := ctx.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return domain.Pagination{}, response.ErrBadRequest(fmt.Errorf("invalid limit: %q", raw))
		}
		page.Limit = min(limit, maxPageLimit)
	}

	if raw := ctx.Query("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil || skip < 0 {
			return domain.Pagination{}, response.ErrBadRequest(fmt.Errorf("invalid skip: %q", raw))
		}
		page.Skip = skip
	}

	return page, nil
}
