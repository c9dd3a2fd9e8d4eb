package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"solana-casino-backend/internal/services"
)

// AuthMiddleware binds the request to a wallet address via the bearer
// token. Websocket clients may pass the token as a query parameter.
func AuthMiddleware(jwtService *services.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid authorization format"})
				c.Abort()
				return
			}
			tokenString = parts[1]
		} else {
			tokenString = c.Query("token")
			if tokenString == "" {
				c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "authorization required"})
				c.Abort()
				return
			}
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("wallet", claims.Wallet)
		c.Next()
	}
}

// RateLimitMiddleware throttles the settlement endpoints per wallet.
func RateLimitMiddleware(cache *services.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		wallet := c.GetString("wallet")
		if wallet == "" {
			c.Next()
			return
		}

		path := c.Request.URL.Path

		var limit int
		window := time.Minute
		switch {
		case strings.Contains(path, "/mines/reveal"):
			limit = services.DefaultRateLimitReveals
		case strings.Contains(path, "/cashout") || strings.Contains(path, "/resolve"):
			limit = services.DefaultRateLimitCashout
		case strings.HasSuffix(path, "/bet"):
			limit = services.DefaultRateLimitBets
		default:
			c.Next()
			return
		}

		allowed, err := cache.CheckRateLimit(c.Request.Context(), wallet, path, limit, window)
		if err != nil || !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success":     false,
				"message":     "rate limit exceeded",
				"retry_after": window.Seconds(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
