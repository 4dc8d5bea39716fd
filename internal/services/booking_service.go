package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/eventmngt/eventapi/internal/dto"
	"github.com/eventmngt/eventapi/internal/helpers"
	"github.com/eventmngt/eventapi/internal/models"
	"github.com/eventmngt/eventapi/internal/notify"
)

const publishTimeout = 5 * time.Second

type BookingService struct {
	bookingsRepo models.BookingsRepo
	eventsRepo   models.EventsRepo
	userRepo     models.UserRepo
	publisher    notify.Publisher
	logger       *slog.Logger
}

func NewBookingService(bookingsRepo models.BookingsRepo, eventsRepo models.EventsRepo, userRepo models.UserRepo, publisher notify.Publisher, logger *slog.Logger) *BookingService {
	return &BookingService{
		bookingsRepo: bookingsRepo,
		eventsRepo:   eventsRepo,
		userRepo:     userRepo,
		publisher:    publisher,
		logger:       logger,
	}
}

// CreateBooking places a pending booking. The customer defaults to the
// caller; only admins may book on behalf of someone else.
func (bs *BookingService) CreateBooking(ctx context.Context, actor *helpers.Principal, req *dto.BookingRequest) (*models.Booking, error) {
	customerID := actor.UserID
	if req.Customer != nil && *req.Customer != actor.UserID {
		if !actor.IsAdmin() {
			return nil, ErrForbidden
		}
		customerID = *req.Customer
	}

	errs := validate(req)
	if customerID != actor.UserID {
		if _, err := bs.userRepo.GetUserByID(ctx, customerID); err != nil {
			if !models.IsNotFound(err) {
				return nil, err
			}
			errs.Add("customer", doesNotExist(customerID))
		}
	}
	if req.Event != nil {
		event, err := bs.eventsRepo.GetEventByID(ctx, *req.Event)
		switch {
		case models.IsNotFound(err):
			errs.Add("event", doesNotExist(*req.Event))
		case err != nil:
			return nil, err
		case !event.AcceptsBookings():
			errs.Add("event", fmt.Sprintf("Bookings are closed for %s events.", event.Status))
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	exists, err := bs.bookingsRepo.BookingExists(ctx, customerID, *req.Event)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewFieldError(models.NonFieldErrors, msgBookingUnique)
	}

	booking := &models.Booking{
		CustomerID:      customerID,
		EventID:         *req.Event,
		TicketsReserved: *req.TicketsReserved,
		Status:          models.BookingStatusPending,
	}
	if err := bs.bookingsRepo.CreateBooking(ctx, booking); err != nil {
		switch {
		case models.IsDuplicate(err):
			return nil, models.NewFieldError(models.NonFieldErrors, msgBookingUnique)
		case models.IsForeignKeyViolation(err):
			return nil, models.NewFieldError("event", doesNotExist(booking.EventID))
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	bs.publish(ctx, notify.RoutingBookingCreated, booking, actor.UserID)
	return booking, nil
}

// ListBookings returns the bookings the caller may see.
func (bs *BookingService) ListBookings(ctx context.Context, actor *helpers.Principal) ([]models.Booking, error) {
	return bs.bookingsRepo.ListBookings(ctx, actor.BookingScope())
}

// CancelBooking is open to the booking's customer, the event's organizer and
// admins.
func (bs *BookingService) CancelBooking(ctx context.Context, actor *helpers.Principal, id uint) (*models.Booking, error) {
	booking, err := bs.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !actor.IsOwner(booking.CustomerID) && !bs.organizes(actor, booking) {
		return nil, ErrForbidden
	}
	return bs.transition(ctx, actor, booking, models.BookingStatusCancelled, notify.RoutingBookingCancelled)
}

// ConfirmBooking is open to the event's organizer and admins.
func (bs *BookingService) ConfirmBooking(ctx context.Context, actor *helpers.Principal, id uint) (*models.Booking, error) {
	booking, err := bs.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !bs.organizes(actor, booking) {
		return nil, ErrForbidden
	}
	return bs.transition(ctx, actor, booking, models.BookingStatusConfirmed, notify.RoutingBookingConfirmed)
}

func (bs *BookingService) getBooking(ctx context.Context, id uint) (*models.Booking, error) {
	booking, err := bs.bookingsRepo.GetBookingByID(ctx, id)
	if err != nil {
		if models.IsNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (bs *BookingService) organizes(actor *helpers.Principal, booking *models.Booking) bool {
	return booking.Event != nil && actor.IsOwner(booking.Event.OrganizerID)
}

func (bs *BookingService) transition(ctx context.Context, actor *helpers.Principal, booking *models.Booking, to models.BookingStatus, routingKey string) (*models.Booking, error) {
	from := booking.Status
	if !from.CanTransitionTo(to) {
		return nil, transitionError(from, to)
	}

	ok, err := bs.bookingsRepo.TransitionBooking(ctx, booking.ID, from, to)
	if err != nil {
		return nil, err
	}
	updated, err := bs.getBooking(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		// another request moved it first
		return nil, transitionError(updated.Status, to)
	}

	bs.publish(ctx, routingKey, updated, actor.UserID)
	return updated, nil
}

// publish reports a committed change. Delivery problems are logged and never
// fail the request.
func (bs *BookingService) publish(ctx context.Context, routingKey string, booking *models.Booking, actorID uint) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	msg := notify.BookingMessage{
		BookingID:       booking.ID,
		CustomerID:      booking.CustomerID,
		EventID:         booking.EventID,
		TicketsReserved: booking.TicketsReserved,
		Status:          string(booking.Status),
		ActorID:         actorID,
		OccurredAt:      time.Now().UTC(),
	}
	if err := bs.publisher.Publish(ctx, routingKey, msg); err != nil {
		bs.logger.Warn("Failed to publish booking event",
			"routing_key", routingKey,
			"booking_id", booking.ID,
			"error", err,
		)
	}
}
