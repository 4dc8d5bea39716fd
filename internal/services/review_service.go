package services

import (
	"context"
	"fmt"

	"github.com/eventmngt/eventapi/internal/dto"
	"github.com/eventmngt/eventapi/internal/helpers"
	"github.com/eventmngt/eventapi/internal/models"
)

const msgReviewExists = "review with this booking already exists."

type ReviewService struct {
	reviewsRepo  models.ReviewsRepo
	bookingsRepo models.BookingsRepo
}

func NewReviewService(reviewsRepo models.ReviewsRepo, bookingsRepo models.BookingsRepo) *ReviewService {
	return &ReviewService{
		reviewsRepo:  reviewsRepo,
		bookingsRepo: bookingsRepo,
	}
}

// CreateReview lets a customer rate their own booking once.
func (rs *ReviewService) CreateReview(ctx context.Context, actor *helpers.Principal, req *dto.ReviewRequest) (*models.Review, error) {
	errs := validate(req)

	var booking *models.Booking
	if req.Booking != nil {
		b, err := rs.bookingsRepo.GetBookingByID(ctx, *req.Booking)
		switch {
		case models.IsNotFound(err):
			errs.Add("booking", doesNotExist(*req.Booking))
		case err != nil:
			return nil, err
		default:
			booking = b
		}
	}
	if booking != nil && !actor.IsOwner(booking.CustomerID) {
		return nil, ErrForbidden
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	exists, err := rs.reviewsRepo.ReviewExistsForBooking(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewFieldError("booking", msgReviewExists)
	}

	review := &models.Review{
		BookingID: booking.ID,
		UserID:    actor.UserID,
		Rating:    *req.Rating,
	}
	if err := rs.reviewsRepo.CreateReview(ctx, review); err != nil {
		switch {
		case models.IsDuplicate(err):
			return nil, models.NewFieldError("booking", msgReviewExists)
		case models.IsForeignKeyViolation(err):
			return nil, models.NewFieldError("booking", doesNotExist(booking.ID))
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

// ListReviews returns all reviews, or those for one event when eventID is set.
func (rs *ReviewService) ListReviews(ctx context.Context, eventID uint) ([]models.Review, error) {
	return rs.reviewsRepo.ListReviews(ctx, eventID)
}
