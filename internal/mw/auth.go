package mw

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"wishwash-backend/internal/auth"
)

// claimsKey is the gin context key the authenticated claims are stored under.
const claimsKey = "authClaims"

// Auth validates the bearer token and stores its claims on the context.
// Requests without a valid token are rejected before reaching the handler.
func Auth(issuer *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "access token required"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		claims, err := issuer.Parse(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// ClaimsFrom returns the authenticated claims previously stored by Auth.
// The boolean is false on routes that are not behind the middleware.
func ClaimsFrom(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

// RequireSelf aborts unless the authenticated user matches the path
// parameter named by param. Used for the self-only profile and history
// routes.
func RequireSelf(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "access token required"})
			return
		}
		id, err := strconv.ParseInt(c.Param(param), 10, 64)
		if err != nil || id != claims.UserID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "you can only access your own data"})
			return
		}
		c.Next()
	}
}
