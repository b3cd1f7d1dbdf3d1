package handler

import (
	"net/http"

	"medialog/internal/http-api/middleware"

	"github.com/gin-gonic/gin"
)

// AuthHandler lets frontends check a stored admin token without performing a
// mutation.
type AuthHandler struct {
	adminToken string
}

func NewAuthHandler(adminToken string) *AuthHandler {
	return &AuthHandler{adminToken: adminToken}
}

// Verify handles GET /auth/verify.
func (h *AuthHandler) Verify(c *gin.Context) {
	token := c.GetHeader(middleware.AdminTokenHeader)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false, "error": "no token provided"})
		return
	}

	if middleware.TokenMatches(token, h.adminToken) {
		c.JSON(http.StatusOK, gin.H{"valid": true})
		return
	}
	c.JSON(http.StatusUnauthorized, gin.H{"valid": false, "error": "invalid token"})
}
