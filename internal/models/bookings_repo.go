package models

import (
	"context"
	"fmt"
)

type BookingsRepo interface {
	CreateBooking(ctx context.Context, booking *Booking) error
	GetBookingByID(ctx context.Context, id uint) (*Booking, error)
	ListBookings(ctx context.Context, scope Scope) ([]Booking, error)
	BookingExists(ctx context.Context, customerID, eventID uint) (bool, error)
	TransitionBooking(ctx context.Context, id uint, from, to BookingStatus) (bool, error)
}

func (g *GormRepo) CreateBooking(ctx context.Context, booking *Booking) error {
	return g.db.WithContext(ctx).Omit("Customer", "Event").Create(booking).Error
}

// GetBookingByID loads the booking together with its event so callers can
// check who organizes it.
func (g *GormRepo) GetBookingByID(ctx context.Context, id uint) (*Booking, error) {
	var booking Booking
	if err := g.db.WithContext(ctx).Preload("Event").First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListBookings returns bookings newest first, restricted by scope: an
// organizer scope keeps bookings on events they organize, a customer scope
// keeps the customer's own bookings.
func (g *GormRepo) ListBookings(ctx context.Context, scope Scope) ([]Booking, error) {
	var bookings []Booking
	q := g.db.WithContext(ctx).Model(&Booking{}).Select("bookings.*")
	if scope.OrganizerID != 0 {
		q = q.Joins("JOIN events ON events.id = bookings.event_id").
			Where("events.organizer_id = ?", scope.OrganizerID)
	}
	if scope.CustomerID != 0 {
		q = q.Where("bookings.customer_id = ?", scope.CustomerID)
	}
	err := q.Order("bookings.created_at DESC").Order("bookings.id DESC").Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}
	return bookings, nil
}

func (g *GormRepo) BookingExists(ctx context.Context, customerID, eventID uint) (bool, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&Booking{}).
		Where("customer_id = ? AND event_id = ?", customerID, eventID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check booking: %w", err)
	}
	return count > 0, nil
}

// TransitionBooking moves a booking from one status to another in a single
// conditional UPDATE. It returns false when the booking was not in the
// expected status, which also covers a concurrent transition winning first.
func (g *GormRepo) TransitionBooking(ctx context.Context, id uint, from, to BookingStatus) (bool, error) {
	res := g.db.WithContext(ctx).Model(&Booking{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, fmt.Errorf("failed to update booking status: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

var _ BookingsRepo = (*GormRepo)(nil)
var _ UserRepo = (*GormRepo)(nil)
var _ VenuesRepo = (*GormRepo)(nil)
var _ EventsRepo = (*GormRepo)(nil)
var _ PaymentsRepo = (*GormRepo)(nil)
var _ ReviewsRepo = (*GormRepo)(nil)
