// middlewares/auth_middleware.go
package middlewares

import (
	"net/http"
	"strings"

	"github.com/Kalhara-JA/care4u-V7-sub001/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware guards every route behind a bearer token. Both token
// classes pass here; handlers that care about profile completeness check it
// against the store, never against the token.
func AuthMiddleware(tokens *utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "authorization header required"})
			return
		}

		claims, err := tokens.Validate(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid token"})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)

		c.Next()
	}
}
