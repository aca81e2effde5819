package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"printshop-backend/internal/auth"
	"printshop-backend/internal/models"
)

// SessionAuthority issues and checks admin sessions. *auth.Authority
// implements it.
type SessionAuthority interface {
	Login(ctx context.Context, username, password string) (string, error)
	Verify(ctx context.Context, token string) (bool, error)
}

type AdminHandler struct {
	authority SessionAuthority
	logger    *slog.Logger
}

func NewAdminHandler(authority SessionAuthority, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		authority: authority,
		logger:    logger,
	}
}

// Login godoc
// @Summary     Admin login
// @Description Checks the admin credentials and opens a session valid for 24 hours.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Param       request body models.LoginRequest true "Admin credentials"
// @Success     200 {object} models.LoginResponse
// @Failure     400 {object} models.LoginResponse
// @Failure     401 {object} models.LoginResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.LoginResponse{
			Success: false,
			Message: "Username is required",
		})
		return
	}

	token, err := h.authority.Login(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, models.LoginResponse{
			Success: false,
			Message: "Invalid credentials",
		})
		return
	}
	if err != nil {
		internalError(c, h.logger, "failed to open admin session", err)
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		Success:   true,
		SessionID: token,
		Message:   "Login successful",
	})
}

// Verify godoc
// @Summary     Verify admin session
// @Description Reports whether a session token is still valid. Unknown and expired tokens are both reported as invalid.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Param       request body models.VerifyRequest true "Session token"
// @Success     200 {object} models.VerifyResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /admin/verify [post]
func (h *AdminHandler) Verify(c *gin.Context) {
	var req models.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionID == "" {
		c.JSON(http.StatusOK, models.VerifyResponse{Valid: false})
		return
	}

	valid, err := h.authority.Verify(c.Request.Context(), req.SessionID)
	if err != nil {
		internalError(c, h.logger, "failed to verify admin session", err)
		return
	}

	c.JSON(http.StatusOK, models.VerifyResponse{Valid: valid})
}
