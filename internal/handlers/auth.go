package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"auction-service/internal/auth"
	"auction-service/internal/middleware"
)

// AuthHandler issues and clears login tokens.
type AuthHandler struct {
	issuer *auth.TokenIssuer
}

// NewAuthHandler builds an AuthHandler.
func NewAuthHandler(issuer *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{issuer: issuer}
}

// IssueToken signs a token for the posted identity and sets it as an
// httpOnly cookie.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email is required"})
		return
	}

	token, err := h.issuer.Issue(req.Email)
	if err != nil {
		logrus.WithError(err).Error("failed to sign token")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error!"})
		return
	}

	c.SetCookie(middleware.TokenCookie, token, int(24*60*60), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Logout clears the token cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
