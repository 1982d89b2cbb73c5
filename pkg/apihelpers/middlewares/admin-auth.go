package middlewares

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	jwthandling "github.com/inbal0012/wild-ginger-bot-sub001/pkg/jwt-handling"
)

const (
	HeaderAuthorization = "Authorization"
)

// GetAndValidateAdminUserJWT extracts the JWT from the request and validates it
func GetAndValidateAdminUserJWT(tokenSignKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractToken(c)
		if err != nil {
			slog.Warn("no Authorization token found")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		// Parse and validate token
		parsedToken, ok, err := jwthandling.ValidateAdminUserToken(token, tokenSignKey)
		if err != nil || !ok {
			slog.Warn("token validation failed")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "error during token validation"})
			c.Abort()
			return
		}
		c.Set("validatedToken", parsedToken)
	}
}

// RequireOwner blocks requests whose validated token lacks the owner flag.
// Must run after GetAndValidateAdminUserJWT.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenValue, ok := c.Get("validatedToken")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no validated token"})
			c.Abort()
			return
		}
		claims, ok := tokenValue.(*jwthandling.AdminUserClaims)
		if !ok || !claims.IsOwner {
			slog.Warn("owner-only endpoint accessed without owner flag", slog.String("path", c.Request.URL.Path))
			c.JSON(http.StatusForbidden, gin.H{"error": "owner access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) (string, error) {
	req := c.Request

	var token string
	tokens, ok := req.Header[HeaderAuthorization]
	if ok && len(tokens) > 0 {
		token = tokens[0]
		token = strings.TrimPrefix(token, "Bearer ")
		if len(token) == 0 {
			return token, errors.New("No token found in Authorization header")
		}
	} else {
		return token, errors.New("No Authorization header found")
	}
	return token, nil
}
