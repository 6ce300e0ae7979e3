package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

// TraceID returns the id set by the trace middleware, or "" outside of it.
func TraceID(c *gin.Context) string {
	return c.GetString("trace_id")
}

// RespondJSON writes data as the raw response body with status 200.
// Documents and acknowledgements are not wrapped so that existing clients
// can read them directly.
func RespondJSON(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: TraceID(c),
	})
}

// AbortWithServiceError responds like HandleServiceError and stops the
// handler chain.
func AbortWithServiceError(c *gin.Context, err error) {
	HandleServiceError(c, err)
	c.Abort()
}

func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidID):
		RespondError(c, http.StatusBadRequest, "Invalid id")
	case errors.Is(err, ErrInvalidPayload):
		RespondError(c, http.StatusBadRequest, "Invalid request payload")
	case errors.Is(err, ErrMissingEmail):
		RespondError(c, http.StatusBadRequest, "Email is required!")
	case errors.Is(err, ErrMissingRoomID):
		RespondError(c, http.StatusBadRequest, "Room id is required")
	case errors.Is(err, ErrPayloadTooLarge):
		RespondError(c, http.StatusRequestEntityTooLarge, "Request body too large")
	case errors.Is(err, ErrFieldNotArray):
		RespondError(c, http.StatusConflict, "Field is not an array")
	case errors.Is(err, ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, ErrInvalidToken):
		RespondError(c, http.StatusUnauthorized, "unauthorized access")
	case errors.Is(err, ErrForbidden):
		RespondError(c, http.StatusForbidden, "forbidden")
	case errors.Is(err, ErrDatabaseError):
		zap.L().Error("database error", zap.String("trace_id", TraceID(c)), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		zap.L().Error("unknown error", zap.String("trace_id", TraceID(c)), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
