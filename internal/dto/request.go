package dto

import (
	"encoding/json"

	"github.com/eventmngt/eventapi/internal/models"
)

// Nullable distinguishes an absent JSON key (Set false) from an explicit
// null (Set true, Null true).
type Nullable[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Null = true
		return nil
	}
	return json.Unmarshal(b, &n.Value)
}

type RegisterRequest struct {
	Name     *string `json:"name" validate:"required,min=1,max=100"`
	Email    *string `json:"email" validate:"required,email,max=150"`
	Password *string `json:"password" validate:"required,min=8,max=128"`
	Role     *string `json:"role" validate:"required,oneof=organizer customer"`
}

type LoginRequest struct {
	Email    *string `json:"email" validate:"required,email"`
	Password *string `json:"password" validate:"required,min=1"`
}

type UserStatusRequest struct {
	Status *string `json:"status" validate:"required,oneof=active suspended"`
}

// EventRequest serves create, PUT and PATCH. Presence of required keys is
// checked by the service depending on the operation.
type EventRequest struct {
	Title       *string         `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string         `json:"description" validate:"omitempty,min=1"`
	Organizer   *uint           `json:"organizer"`
	Category    *string         `json:"category" validate:"omitempty,oneof=music sports education technology business"`
	Venue       Nullable[uint]  `json:"venue"`
	StartDate   *string         `json:"start_date"`
	StartTime   *string         `json:"start_time"`
	EndDate     *string         `json:"end_date"`
	EndTime     *string         `json:"end_time"`
	TicketPrice *models.Decimal `json:"ticket_price"`
	Capacity    *int            `json:"capacity" validate:"omitempty,gte=0,lte=2147483647"`
	Status      *string         `json:"status" validate:"omitempty,oneof=upcoming ongoing completed cancelled"`
}

// Missing lists the required keys absent from the payload.
func (r *EventRequest) Missing() []string {
	var missing []string
	check := func(name string, present bool) {
		if !present {
			missing = append(missing, name)
		}
	}
	check("title", r.Title != nil)
	check("description", r.Description != nil)
	check("organizer", r.Organizer != nil)
	check("category", r.Category != nil)
	check("start_date", r.StartDate != nil)
	check("start_time", r.StartTime != nil)
	check("end_date", r.EndDate != nil)
	check("end_time", r.EndTime != nil)
	check("capacity", r.Capacity != nil)
	return missing
}

type VenueRequest struct {
	Name     *string `json:"name" validate:"omitempty,oneof=pc falettis alhamra expo royalpalm"`
	Address  *string `json:"address" validate:"omitempty,min=1"`
	Capacity *int    `json:"capacity" validate:"omitempty,gte=0,lte=2147483647"`
}

func (r *VenueRequest) Missing() []string {
	var missing []string
	if r.Name == nil {
		missing = append(missing, "name")
	}
	if r.Address == nil {
		missing = append(missing, "address")
	}
	if r.Capacity == nil {
		missing = append(missing, "capacity")
	}
	return missing
}

type BookingRequest struct {
	Customer        *uint `json:"customer"`
	Event           *uint `json:"event" validate:"required"`
	TicketsReserved *int  `json:"tickets_reserved" validate:"required,gte=1,lte=2147483647"`
}

type PaymentRequest struct {
	Booking *uint           `json:"booking" validate:"required"`
	Method  *string         `json:"method" validate:"required,oneof=credit_card debit_card paypal"`
	Amount  *models.Decimal `json:"amount"`
}

type ReviewRequest struct {
	Booking *uint `json:"booking" validate:"required"`
	Rating  *int  `json:"rating" validate:"required,gte=1,lte=5"`
}
