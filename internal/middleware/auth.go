package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/dermaline/studio-scheduler/internal/config"
)

const (
	ContextUserID     = "userID"
	ContextUserName   = "userName"
	ContextPrivileged = "privileged"
)

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_authorization_header"})
			return
		}

		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {

			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_claims"})
			return
		}

		userID, ok := claims["sub"].(float64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_payload"})
			return
		}
		name, _ := claims["name"].(string)
		privileged, _ := claims["privileged"].(bool)

		c.Set(ContextUserID, uint(userID))
		c.Set(ContextUserName, name)
		c.Set(ContextPrivileged, privileged)

		c.Next()
	}
}

// RequirePrivileged guards the endpoints that branch on the binary
// privilege flag. Must run after AuthMiddleware.
func RequirePrivileged() gin.HandlerFunc {
	return func(c *gin.Context) {
		if priv, ok := c.Get(ContextPrivileged); !ok || priv != true {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "privileged_required"})
			return
		}
		c.Next()
	}
}
