package models

import (
	"context"
	"fmt"
)

type PaymentsRepo interface {
	CreatePayment(ctx context.Context, payment *Payment) error
	ListPayments(ctx context.Context, scope Scope) ([]Payment, error)
	PaymentExistsForBooking(ctx context.Context, bookingID uint) (bool, error)
}

func (g *GormRepo) CreatePayment(ctx context.Context, payment *Payment) error {
	return g.db.WithContext(ctx).Omit("Booking", "Customer").Create(payment).Error
}

// ListPayments applies the same visibility rules as ListBookings.
func (g *GormRepo) ListPayments(ctx context.Context, scope Scope) ([]Payment, error) {
	var payments []Payment
	q := g.db.WithContext(ctx).Model(&Payment{}).Select("payments.*")
	if scope.OrganizerID != 0 {
		q = q.Joins("JOIN bookings ON bookings.id = payments.booking_id").
			Joins("JOIN events ON events.id = bookings.event_id").
			Where("events.organizer_id = ?", scope.OrganizerID)
	}
	if scope.CustomerID != 0 {
		q = q.Where("payments.customer_id = ?", scope.CustomerID)
	}
	err := q.Order("payments.payment_datetime DESC").Order("payments.id DESC").Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get payments: %w", err)
	}
	return payments, nil
}

func (g *GormRepo) PaymentExistsForBooking(ctx context.Context, bookingID uint) (bool, error) {
	var count int64
	if err := g.db.WithContext(ctx).Model(&Payment{}).Where("booking_id = ?", bookingID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check payment: %w", err)
	}
	return count > 0, nil
}
