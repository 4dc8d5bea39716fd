package models

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// CanTransitionTo implements the booking state machine: only a pending
// booking moves, and only to confirmed or cancelled.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s != BookingStatusPending {
		return false
	}
	return next == BookingStatusConfirmed || next == BookingStatusCancelled
}

// Booking is one customer's reservation on one event; (customer, event) is unique.
type Booking struct {
	ID              uint          `gorm:"primaryKey"`
	CustomerID      uint          `gorm:"not null;uniqueIndex:idx_bookings_customer_event,priority:1"`
	Customer        *User         `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	EventID         uint          `gorm:"not null;index;uniqueIndex:idx_bookings_customer_event,priority:2"`
	Event           *Event        `gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	TicketsReserved int           `gorm:"not null;check:chk_bookings_tickets_reserved,tickets_reserved >= 1"`
	Status          BookingStatus `gorm:"type:varchar(20);not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
