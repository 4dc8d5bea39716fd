package models

import "time"

type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodDebitCard  PaymentMethod = "debit_card"
	PaymentMethodPaypal     PaymentMethod = "paypal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Payment records what a customer owes for a booking. There is no gateway
// behind it.
type Payment struct {
	ID              uint          `gorm:"primaryKey"`
	BookingID       uint          `gorm:"not null;uniqueIndex:idx_payments_booking"`
	Booking         *Booking      `gorm:"foreignKey:BookingID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CustomerID      uint          `gorm:"not null;index"`
	Customer        *User         `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Method          PaymentMethod `gorm:"type:varchar(20);not null"`
	Status          PaymentStatus `gorm:"type:varchar(20);not null"`
	Amount          Money         `gorm:"type:numeric(10,2);not null"`
	PaymentDatetime time.Time     `gorm:"autoCreateTime"`
}
