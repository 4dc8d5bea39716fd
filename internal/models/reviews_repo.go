package models

import (
	"context"
	"fmt"
)

type ReviewsRepo interface {
	CreateReview(ctx context.Context, review *Review) error
	ListReviews(ctx context.Context, eventID uint) ([]Review, error)
	ReviewExistsForBooking(ctx context.Context, bookingID uint) (bool, error)
}

func (g *GormRepo) CreateReview(ctx context.Context, review *Review) error {
	return g.db.WithContext(ctx).Omit("Booking", "User").Create(review).Error
}

// ListReviews returns reviews newest first. A non-zero eventID keeps only
// reviews on bookings for that event.
func (g *GormRepo) ListReviews(ctx context.Context, eventID uint) ([]Review, error) {
	var reviews []Review
	q := g.db.WithContext(ctx).Model(&Review{}).Select("reviews.*")
	if eventID != 0 {
		q = q.Joins("JOIN bookings ON bookings.id = reviews.booking_id").
			Where("bookings.event_id = ?", eventID)
	}
	if err := q.Order("reviews.created_at DESC").Order("reviews.id DESC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}
	return reviews, nil
}

func (g *GormRepo) ReviewExistsForBooking(ctx context.Context, bookingID uint) (bool, error) {
	var count int64
	if err := g.db.WithContext(ctx).Model(&Review{}).Where("booking_id = ?", bookingID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check review: %w", err)
	}
	return count > 0, nil
}
