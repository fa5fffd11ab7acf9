package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"auction-service/internal/auth"
	"auction-service/internal/models"
	"auction-service/internal/repositories"
)

// TokenCookie is the cookie the login endpoint sets.
const TokenCookie = "token"

// AuthMiddleware validates the token cookie or Authorization header and
// stores the caller's email on the context.
func AuthMiddleware(issuer *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized access"})
			return
		}

		email, err := issuer.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized access"})
			return
		}

		c.Set("userEmail", email)
		c.Next()
	}
}

// RequireRole loads the caller's user document and checks its role. Must
// run after AuthMiddleware.
func RequireRole(userRepo repositories.UserRepository, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString("userEmail")
		user, err := userRepo.GetByEmail(c.Request.Context(), email)
		if err != nil || user.Role != role {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized request"})
			return
		}
		c.Next()
	}
}

// RequireAdmin gates admin-only routes.
func RequireAdmin(userRepo repositories.UserRepository) gin.HandlerFunc {
	return RequireRole(userRepo, models.RoleAdmin)
}

// RequireSeller gates seller-only routes.
func RequireSeller(userRepo repositories.UserRepository) gin.HandlerFunc {
	return RequireRole(userRepo, models.RoleSeller)
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}
