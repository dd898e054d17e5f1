package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the shape of every error response.
type ErrorBody struct {
	Error     string            `json:"error"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// Common client-facing messages.
const (
	MsgUserNotFound   = "User not found"
	MsgValidation     = "Validation failed"
	MsgUnauthorized   = "Unauthorized"
	MsgEmailTaken     = "Email already exists"
	MsgInternalServer = "Internal server error"
)

// JSON writes a success payload as is.
func JSON(ctx *gin.Context, status int, data any) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, data)
}

// NewError builds an error body stamped with the request id.
func NewError(ctx *gin.Context, message string, details map[string]string) ErrorBody {
	return ErrorBody{
		Error:     message,
		Details:   details,
		RequestID: ctx.GetString("request_id"),
	}
}

// Error writes an error body with the given status.
func Error(ctx *gin.Context, status int, message string, details map[string]string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.JSON(status, NewError(ctx, message, details))
}

// Abort writes an error body and stops the handler chain.
func Abort(ctx *gin.Context, status int, message string) {
	ctx.AbortWithStatusJSON(status, NewError(ctx, message, nil))
}
