package models

import (
	"time"
)

// Review is a 1..5 rating left on a booking. A booking has at most one review.
type Review struct {
	ID        uint     `gorm:"primaryKey"`
	BookingID uint     `gorm:"not null;uniqueIndex:idx_reviews_booking;uniqueIndex:idx_reviews_user_booking,priority:2"`
	Booking   *Booking `gorm:"foreignKey:BookingID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	UserID    uint     `gorm:"not null;index;uniqueIndex:idx_reviews_user_booking,priority:1"`
	User      *User    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Rating    int      `gorm:"not null;check:chk_reviews_rating,rating BETWEEN 1 AND 5"`
	CreatedAt time.Time
}
