package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"printshop-backend/internal/logging"
	"printshop-backend/internal/models"
)

const genericError = "Something went wrong!"

// internalError logs err and answers with a body that does not leak it.
func internalError(c *gin.Context, logger *slog.Logger, msg string, err error) {
	if logger != nil {
		logger.Error(msg, "error", err, "request_id", logging.RequestID(c))
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Success: false,
		Error:   genericError,
	})
}

func notFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, models.ErrorResponse{
		Success: false,
		Error:   msg,
	})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Success: false,
		Error:   msg,
	})
}
