package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error kinds carried alongside the HTTP status so clients can branch
// without parsing message text.
const (
	KindValidation   = "validation"
	KindUnauthorized = "unauthorized"
	KindForbidden    = "forbidden"
	KindNotFound     = "not_found"
	KindInvalidState = "invalid_state"
	KindConflict     = "conflict"
	KindInternal     = "internal"
)

// ErrorBody is the error envelope returned by every failing endpoint.
// swagger:model ErrorBody
type ErrorBody struct {
	Error string `json:"error" example:"order not found"`
	Kind  string `json:"kind" example:"not_found"`
}

func Error(c *gin.Context, status int, kind, msg string) {
	c.AbortWithStatusJSON(status, ErrorBody{Error: msg, Kind: kind})
}

func Validation(c *gin.Context, msg string) { Error(c, http.StatusBadRequest, KindValidation, msg) }
func Unauthorized(c *gin.Context, msg string) {
	Error(c, http.StatusUnauthorized, KindUnauthorized, msg)
}
func Forbidden(c *gin.Context, msg string) { Error(c, http.StatusForbidden, KindForbidden, msg) }
func NotFound(c *gin.Context, msg string)  { Error(c, http.StatusNotFound, KindNotFound, msg) }
func InvalidState(c *gin.Context, msg string) {
	Error(c, http.StatusBadRequest, KindInvalidState, msg)
}
func Conflict(c *gin.Context, msg string) { Error(c, http.StatusConflict, KindConflict, msg) }
func Internal(c *gin.Context, msg string) {
	Error(c, http.StatusInternalServerError, KindInternal, msg)
}
