package handlers

import (
	"context"
	"net/http"

	"github.com/eventmngt/eventapi/internal/dto"
	"github.com/eventmngt/eventapi/internal/helpers"
	"github.com/eventmngt/eventapi/internal/models"
	"github.com/eventmngt/eventapi/internal/services"
	"github.com/gin-gonic/gin"
)

func CreateBooking(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		var req dto.BookingRequest
		if !bindJSON(c, &req) {
			return
		}

		booking, err := b.CreateBooking(c.Request.Context(), p, &req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
	}
}

// ListBookings returns the bookings visible to the caller's role.
func ListBookings(b *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}

		bookings, err := b.ListBookings(c.Request.Context(), p)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ToBookingResponses(bookings))
	}
}

type bookingTransition func(ctx context.Context, actor *helpers.Principal, id uint) (*models.Booking, error)

func transitionBooking(do bookingTransition) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		id, ok := pathID(c, services.ErrBookingNotFound)
		if !ok {
			return
		}

		booking, err := do(c.Request.Context(), p, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
	}
}

func CancelBooking(b *services.BookingService) gin.HandlerFunc {
	return transitionBooking(b.CancelBooking)
}

func ConfirmBooking(b *services.BookingService) gin.HandlerFunc {
	return transitionBooking(b.ConfirmBooking)
}
