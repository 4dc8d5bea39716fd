package handlers

import (
	"net/http"

	"github.com/eventmngt/eventapi/internal/dto"
	"github.com/eventmngt/eventapi/internal/services"
	"github.com/gin-gonic/gin"
)

func CreateEvent(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		var req dto.EventRequest
		if !bindJSON(c, &req) {
			return
		}

		event, err := e.Create(c.Request.Context(), p, &req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, dto.ToEventResponse(event))
	}
}

func ListEvents(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := e.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ToEventResponses(events))
	}
}

func GetEvent(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, services.ErrEventNotFound)
		if !ok {
			return
		}

		event, err := e.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ToEventResponse(event))
	}
}

// UpdateEvent serves PUT (partial false) and PATCH (partial true).
func UpdateEvent(e *services.EventService, partial bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		id, ok := pathID(c, services.ErrEventNotFound)
		if !ok {
			return
		}
		var req dto.EventRequest
		if !bindJSON(c, &req) {
			return
		}

		event, err := e.Update(c.Request.Context(), p, id, &req, partial)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ToEventResponse(event))
	}
}

func DeleteEvent(e *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		id, ok := pathID(c, services.ErrEventNotFound)
		if !ok {
			return
		}

		if err := e.Delete(c.Request.Context(), p, id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
