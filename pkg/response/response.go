package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// APIError is the envelope for every failed request. Successful requests
// return the resource representation directly.
type APIError struct {
	Status    int         `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id,omitempty"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}

// Error writes a structured error response and returns the envelope.
func Error(ctx *gin.Context, status int, message string, details interface{}) APIError {
	if status == 0 {
		status = http.StatusBadRequest
	}
	e := APIError{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Message:   message,
		Details:   details,
	}
	ctx.JSON(status, e)
	return e
}
