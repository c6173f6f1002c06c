package middleware

import (
	"net/http"                     // HTTP status codes
	"strings"                      // String manipulation
	"user_orders/internal/service" // Response envelope
	"user_orders/internal/utils"   // JWT utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// OperatorKey is the gin context key holding the authenticated operator name
const OperatorKey = "operator"

// JWTAuthMiddleware validates JWT tokens and extracts the operator name
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, service.Response{
				StatusCode: http.StatusUnauthorized,
				Message:    "Missing or invalid Authorization header",
			})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string and parse it
		claims, err := utils.ParseJWT(tokenStr, secret)       // Parse the JWT token
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"path":  c.FullPath(), // Route being accessed
				"error": err.Error(),  // Why the token was rejected
			}).Warn("Rejected operator token")
			// If parsing fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, service.Response{
				StatusCode: http.StatusUnauthorized,
				Message:    "Invalid or expired token",
			})
			return
		}
		c.Set(OperatorKey, claims.Operator) // Store operator in context
		c.Next()                            // Proceed to the next handler
	}
}

// Operator returns the authenticated operator, or "" on unauthenticated routes
func Operator(c *gin.Context) string {
	return c.GetString(OperatorKey)
}
