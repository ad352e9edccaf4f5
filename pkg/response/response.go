package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Envelope carries the fields every JSON response shares. Handlers embed it
// next to their payload fields so payloads such as token and user stay at the
// top level of the body.
type Envelope struct {
	Success   bool        `json:"success"`
	Status    string      `json:"status"`
	Code      int         `json:"code"`
	Message   string      `json:"message,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Error     interface{} `json:"error,omitempty"`
}

func Success(ctx *gin.Context, status int, message string) Envelope {
	if status == 0 {
		status = http.StatusOK
	}
	return Envelope{
		Success:   true,
		Status:    "success",
		Code:      status,
		Message:   message,
		RequestID: ctx.GetString("request_id"),
		Timestamp: time.Now().UTC(),
	}
}

func Error(ctx *gin.Context, status int, message string, err interface{}) Envelope {
	if status == 0 {
		status = http.StatusBadRequest
	}
	return Envelope{
		Success:   false,
		Status:    "error",
		Code:      status,
		Message:   message,
		RequestID: ctx.GetString("request_id"),
		Timestamp: time.Now().UTC(),
		Error:     err,
	}
}

// OK writes a bare success envelope.
func OK(ctx *gin.Context, status int, message string) {
	env := Success(ctx, status, message)
	ctx.JSON(env.Code, env)
}

// Fail writes an error envelope and aborts the handler chain.
func Fail(ctx *gin.Context, status int, message string, err interface{}) {
	env := Error(ctx, status, message, err)
	ctx.AbortWithStatusJSON(env.Code, env)
}
