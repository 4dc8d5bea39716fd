package handlers

import (
	"net/http"
	"strconv"

	"github.com/eventmngt/eventapi/internal/dto"
	"github.com/eventmngt/eventapi/internal/models"
	"github.com/eventmngt/eventapi/internal/services"
	"github.com/gin-gonic/gin"
)

func CreateReview(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		var req dto.ReviewRequest
		if !bindJSON(c, &req) {
			return
		}

		review, err := r.CreateReview(c.Request.Context(), p, &req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, dto.ToReviewResponse(review))
	}
}

// ListReviews accepts an optional ?event= filter.
func ListReviews(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var eventID uint
		if raw := c.Query("event"); raw != "" {
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil || id == 0 {
				respondError(c, models.NewFieldError("event", "A valid integer is required."))
				return
			}
			eventID = uint(id)
		}

		reviews, err := r.ListReviews(c.Request.Context(), eventID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ToReviewResponses(reviews))
	}
}
