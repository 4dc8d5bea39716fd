package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/eventmngt/eventapi/internal/dto"
	"github.com/eventmngt/eventapi/internal/helpers"
	"github.com/eventmngt/eventapi/internal/services"
	"github.com/gin-gonic/gin"
)

// CookieOptions controls the access token cookie set on login.
type CookieOptions struct {
	TTL    time.Duration
	Secure bool
}

func Register(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.RegisterRequest
		if !bindJSON(c, &req) {
			return
		}

		user, err := u.Register(c.Request.Context(), &req)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, dto.AuthResponse{
			Message: dto.RoleTitle(user.Role) + " registered successfully!",
			User:    dto.ToUserResponse(user),
		})
	}
}

func Login(u *services.UserService, cookie CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.LoginRequest
		if !bindJSON(c, &req) {
			return
		}

		user, token, err := u.Login(c.Request.Context(), &req)
		if err != nil {
			respondError(c, err)
			return
		}

		helpers.SetAccessCookie(c, token, int(cookie.TTL.Seconds()), cookie.Secure)
		c.JSON(http.StatusOK, dto.AuthResponse{
			Message: dto.RoleTitle(user.Role) + " logged in successfully!",
			User:    dto.ToUserResponse(user),
			Token:   token,
		})
	}
}

// Logout always succeeds; a session store failure is only logged.
func Logout(u *services.UserService, cookie CookieOptions, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := u.Logout(c.Request.Context(), helpers.ExtractToken(c)); err != nil {
			logger.Warn("Failed to delete session",
				"request_id", c.GetString(helpers.RequestIDKey),
				"error", err,
			)
		}

		helpers.SetAccessCookie(c, "", -1, cookie.Secure)
		c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out successfully"})
	}
}
