package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/meetspace/internal/helpers"
	"github.com/joshua-takyi/meetspace/internal/models"
)

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		clientIP := c.ClientIP()
		method := c.Request.Method
		statusCode := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		requestID, _ := c.Get("request_id")

		logger.Info("HTTP Request",
			"request_id", requestID,
			"method", method,
			"path", path,
			"status", statusCode,
			"latency", latency,
			"client_ip", clientIP,
		)
	}
}

// ErrorHandler logs errors that handlers attach to the context and sends a
// generic envelope when no response was written.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			requestID, _ := c.Get("request_id")

			logger.Error("Request error",
				"request_id", requestID,
				"error", err.Error(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)

			if !c.Writer.Written() {
				c.JSON(http.StatusInternalServerError, models.ErrorResponse("internal error"))
			}
		}
	}
}

// Auth verifies the bearer token and stores the requester identity in the
// context under "user". Tokens come from the Authorization header, with an
// access_token cookie fallback for browser clients.
func Auth(jwksURL, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("missing bearer token"))
			c.Abort()
			return
		}

		claims, err := helpers.ValidateToken(token, jwksURL, jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("invalid or expired token"))
			c.Abort()
			return
		}
		if claims.Subject == "" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("token has no subject"))
			c.Abort()
			return
		}

		c.Set("user", &helpers.EnhancedClaims{
			CustomClaims: claims,
			UserID:       claims.Subject,
			Role:         claims.Role,
			Email:        claims.Email,
		})
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if token, err := c.Cookie("access_token"); err == nil {
		return token
	}
	return ""
}
