package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"printshop-backend/internal/models"
)

// HealthHandler godoc
// @Summary     Health check
// @Description Returns the health status of the API
// @Tags        health
// @Produce     json
// @Success     200 {object} models.HealthResponse
// @Router      /health [get]
func HealthHandler(c *gin.Context) {
	response := models.HealthResponse{
		Status:    "OK",
		Timestamp: time.Now().UTC(),
	}
	c.JSON(http.StatusOK, response)
}
