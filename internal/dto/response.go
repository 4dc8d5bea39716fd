package dto

import (
	"strings"
	"time"

	"github.com/eventmngt/eventapi/internal/models"
)

// Response structs are the v1 wire shape. Columns added to the models do not
// appear here until they are added explicitly.

const dateLayout = "2006-01-02"

type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type ProfileResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	Role      string    `json:"role"`
	Bio       *string   `json:"bio"`
	Status    string    `json:"status"`
	IsActive  bool      `json:"is_active"`
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AuthResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
	Token   string       `json:"token,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error     string              `json:"error,omitempty"`
	Errors    map[string][]string `json:"errors,omitempty"`
	RequestID string              `json:"request_id,omitempty"`
}

type VenueResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Capacity int    `json:"capacity"`
}

type EventResponse struct {
	ID          uint         `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Organizer   uint         `json:"organizer"`
	Category    string       `json:"category"`
	Venue       *uint        `json:"venue"`
	StartDate   string       `json:"start_date"`
	StartTime   string       `json:"start_time"`
	EndDate     string       `json:"end_date"`
	EndTime     string       `json:"end_time"`
	TicketPrice models.Money `json:"ticket_price"`
	Capacity    int          `json:"capacity"`
	Status      string       `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type BookingResponse struct {
	ID              uint      `json:"id"`
	Customer        uint      `json:"customer"`
	Event           uint      `json:"event"`
	TicketsReserved int       `json:"tickets_reserved"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type PaymentResponse struct {
	ID              uint         `json:"id"`
	Booking         uint         `json:"booking"`
	Customer        uint         `json:"customer"`
	Method          string       `json:"method"`
	Status          string       `json:"status"`
	Amount          models.Money `json:"amount"`
	PaymentDatetime time.Time    `json:"payment_datetime"`
}

type ReviewResponse struct {
	ID        uint      `json:"id"`
	Booking   uint      `json:"booking"`
	User      uint      `json:"user"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	}
}

func ToProfileResponse(u *models.User) ProfileResponse {
	return ProfileResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      string(u.Role),
		Bio:       u.Bio,
		Status:    string(u.Status),
		IsActive:  u.IsActive,
		IsStaff:   u.IsStaff,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// RoleTitle capitalises a role for user-facing messages ("Organizer").
func RoleTitle(role models.Role) string {
	r := string(role)
	if r == "" {
		return r
	}
	return strings.ToUpper(r[:1]) + r[1:]
}

func ToVenueResponse(v *models.Venue) VenueResponse {
	return VenueResponse{
		ID:       v.ID,
		Name:     string(v.Name),
		Address:  v.Address,
		Capacity: v.Capacity,
	}
}

func ToVenueResponses(venues []models.Venue) []VenueResponse {
	out := make([]VenueResponse, 0, len(venues))
	for i := range venues {
		out = append(out, ToVenueResponse(&venues[i]))
	}
	return out
}

func ToEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Organizer:   e.OrganizerID,
		Category:    string(e.Category),
		Venue:       e.VenueID,
		StartDate:   time.Time(e.StartDate).Format(dateLayout),
		StartTime:   e.StartTime.String(),
		EndDate:     time.Time(e.EndDate).Format(dateLayout),
		EndTime:     e.EndTime.String(),
		TicketPrice: e.TicketPrice,
		Capacity:    e.Capacity,
		Status:      string(e.Status),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func ToEventResponses(events []models.Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for i := range events {
		out = append(out, ToEventResponse(&events[i]))
	}
	return out
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:              b.ID,
		Customer:        b.CustomerID,
		Event:           b.EventID,
		TicketsReserved: b.TicketsReserved,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func ToBookingResponses(bookings []models.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, ToBookingResponse(&bookings[i]))
	}
	return out
}

func ToPaymentResponse(p *models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:              p.ID,
		Booking:         p.BookingID,
		Customer:        p.CustomerID,
		Method:          string(p.Method),
		Status:          string(p.Status),
		Amount:          p.Amount,
		PaymentDatetime: p.PaymentDatetime,
	}
}

func ToPaymentResponses(payments []models.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, ToPaymentResponse(&payments[i]))
	}
	return out
}

func ToReviewResponse(r *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		Booking:   r.BookingID,
		User:      r.UserID,
		Rating:    r.Rating,
		CreatedAt: r.CreatedAt,
	}
}

func ToReviewResponses(reviews []models.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, ToReviewResponse(&reviews[i]))
	}
	return out
}
