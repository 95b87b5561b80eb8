package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GatewayAuth trusts user info from gateway headers (X-User-ID, X-User-Email, X-User-Role).
// This is used when the API runs behind a gateway that already validated the
// caller.
//
// When AUTH_MODE=gateway, the API trusts these headers unconditionally.
// This should ONLY be used in the hosted environment with proper network isolation.
func GatewayAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Authentication required",
				"message": "Missing X-User-ID header from gateway",
			})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("user_email", c.GetHeader("X-User-Email"))
		c.Set("user_role", c.GetHeader("X-User-Role"))

		c.Next()
	}
}

// GetUserID retrieves the caller's ID set by any auth middleware
func GetUserID(c *gin.Context) (string, bool) {
	return getString(c, "user_id")
}

// GetUserEmail retrieves the caller's email when the auth mode provides one
func GetUserEmail(c *gin.Context) (string, bool) {
	return getString(c, "user_email")
}

// GetUserRole retrieves the caller's role when the auth mode provides one
func GetUserRole(c *gin.Context) (string, bool) {
	return getString(c, "user_role")
}

func getString(c *gin.Context, key string) (string, bool) {
	v, exists := c.Get(key)
	if !exists {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}
