package handlers

import (
	"net/http"

	"github.com/eventmngt/eventapi/internal/dto"
	"github.com/eventmngt/eventapi/internal/services"
	"github.com/gin-gonic/gin"
)

// GetProfile returns the caller's own account.
func GetProfile(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}

		user, err := u.GetUser(c.Request.Context(), p.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ToProfileResponse(user))
	}
}

func UpdateUserStatus(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		id, ok := pathID(c, services.ErrUserNotFound)
		if !ok {
			return
		}
		var req dto.UserStatusRequest
		if !bindJSON(c, &req) {
			return
		}

		user, err := u.SetStatus(c.Request.Context(), p, id, &req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ToProfileResponse(user))
	}
}

func DeleteUser(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		id, ok := pathID(c, services.ErrUserNotFound)
		if !ok {
			return
		}

		if err := u.DeleteUser(c.Request.Context(), p, id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
