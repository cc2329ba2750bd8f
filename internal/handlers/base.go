package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goldenglowitsolutions/scheduling-service/internal/services"
	"github.com/goldenglowitsolutions/scheduling-service/internal/utils"
)

// ErrorResponse is the uniform error body for every non-2xx response.
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// BaseHandler carries the pieces every handler needs.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs handler entry with the request-scoped logger.
func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c, h.logger).Debug(msg, args...)
}

// handleServiceError maps service sentinel errors onto HTTP status codes.
// Anything unrecognized is a 500 with a generic body; the detail stays in
// the logs.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Resource not found",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Resource already exists",
			Details: err.Error(),
		})
	default:
		utils.FromContext(c, h.logger).Error("Unhandled service error", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}

// bindJSON binds the request body and answers 400 itself on failure.
func (h *BaseHandler) bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return false
	}
	return true
}
