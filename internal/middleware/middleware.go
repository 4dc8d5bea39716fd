package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/eventmngt/eventapi/internal/dto"
	"github.com/eventmngt/eventapi/internal/helpers"
	"github.com/eventmngt/eventapi/internal/models"
	"github.com/eventmngt/eventapi/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(helpers.RequestIDKey, requestID)
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

		// Process request
		c.Next()

		latency := time.Since(start)
		if raw != "" {
			path = path + "?" + raw
		}

		requestID, _ := c.Get(helpers.RequestIDKey)
		attrs := []any{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", latency,
			"client_ip", c.ClientIP(),
		}
		if p, ok := helpers.GetPrincipal(c); ok {
			attrs = append(attrs, "user_id", p.UserID)
		}

		logger.Info("HTTP Request", attrs...)
	}
}

// ErrorHandler provides centralized error handling for errors handlers
// attached with c.Error and did not answer themselves.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last()
		requestID := c.GetString(helpers.RequestIDKey)

		logger.Error("Request error",
			"request_id", requestID,
			"error", err.Error(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)

		if c.Writer.Written() {
			return
		}
		// Don't return error details in production
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:     "Internal server error",
			RequestID: requestID,
		})
	}
}

// AuthMiddleware resolves the bearer token or access cookie to a principal
// and stores it in the context. Requests without a valid session stop here.
func AuthMiddleware(userService *services.UserService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := userService.Authenticate(c.Request.Context(), helpers.ExtractToken(c))
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUnauthenticated), errors.Is(err, services.ErrInvalidToken):
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error()})
			case errors.Is(err, services.ErrAccountSuspended):
				c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Error: err.Error()})
			default:
				logger.Error("Authentication failed", "error", err)
				_ = c.Error(err)
				c.Abort()
			}
			return
		}

		c.Set(helpers.PrincipalKey, principal)
		c.Next()
	}
}

// RequireRoles lets through only principals holding one of roles. It must run
// after AuthMiddleware.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := helpers.GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: services.ErrUnauthenticated.Error()})
			return
		}
		if !p.HasRole(roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Error: services.ErrForbidden.Error()})
			return
		}
		c.Next()
	}
}
