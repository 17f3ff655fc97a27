package response

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Err is the JSON body of every failed request.
type Err struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	Auth       *bool  `json:"auth,omitempty"`
	StatusText string `json:"status"`
	Message    string `json:"message"`
}

func (e *Err) Error() string {
	return e.Message
}

func RenderErr(ctx *gin.Context, e *Err) {
	if e.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("path", ctx.FullPath()),
			zap.Error(e.Err),
		)
	}

	ctx.AbortWithStatusJSON(e.HTTPStatusCode, e)
}

func newErr(status int, err error, message string) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: status,
		StatusText:     http.StatusText(status),
		Message:        message,
	}
}

func ErrBadRequest(err error) *Err {
	return newErr(http.StatusBadRequest, err, err.Error())
}

// ErrConflict reports a precondition the current state does not satisfy.
// It is rendered as 400 like any other client error.
func ErrConflict(err error, message string) *Err {
	return newErr(http.StatusBadRequest, err, message)
}

func ErrUnauthorized(message string) *Err {
	e := newErr(http.StatusUnauthorized, nil, message)
	auth := false
	e.Auth = &auth
	return e
}

func ErrWrongCredentials(err error) *Err {
	e := newErr(http.StatusUnauthorized, err, "wrong name or password")
	auth := false
	e.Auth = &auth
	return e
}

// ErrPermissionDenied never tells the caller which scope was missing.
func ErrPermissionDenied(err error) *Err {
	return newErr(http.StatusForbidden, err, "Forbidden")
}

func ErrNotFound(entity, field string, value interface{}) *Err {
	return newErr(
		http.StatusNotFound,
		nil,
		fmt.Sprintf("%s with %s %v not found", entity, field, value),
	)
}

func ErrNotFoundMsg(message string) *Err {
	return newErr(http.StatusNotFound, nil, message)
}

func ErrInternalServerError(err error) *Err {
	return newErr(http.StatusInternalServerError, err, "internal server error")
}
