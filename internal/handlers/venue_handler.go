package handlers

import (
	"net/http"

	"github.com/eventmngt/eventapi/internal/dto"
	"github.com/eventmngt/eventapi/internal/services"
	"github.com/gin-gonic/gin"
)

func CreateVenue(v *services.VenuesService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		var req dto.VenueRequest
		if !bindJSON(c, &req) {
			return
		}

		venue, err := v.CreateVenue(c.Request.Context(), p, &req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, dto.ToVenueResponse(venue))
	}
}

func ListVenues(v *services.VenuesService) gin.HandlerFunc {
	return func(c *gin.Context) {
		venues, err := v.ListVenues(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ToVenueResponses(venues))
	}
}

func UpdateVenue(v *services.VenuesService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		id, ok := pathID(c, services.ErrVenueNotFound)
		if !ok {
			return
		}
		var req dto.VenueRequest
		if !bindJSON(c, &req) {
			return
		}

		venue, err := v.UpdateVenue(c.Request.Context(), p, id, &req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ToVenueResponse(venue))
	}
}

func DeleteVenue(v *services.VenuesService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		id, ok := pathID(c, services.ErrVenueNotFound)
		if !ok {
			return
		}

		if err := v.DeleteVenue(c.Request.Context(), p, id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
