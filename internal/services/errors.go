package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/eventmngt/eventapi/internal/models"
)

var (
	ErrUserNotFound       = errors.New("User not found")
	ErrEventNotFound      = errors.New("Event not found")
	ErrVenueNotFound      = errors.New("Venue not found")
	ErrBookingNotFound    = errors.New("Booking not found")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrAccountSuspended   = errors.New("Your account is suspended")
	ErrUnauthenticated    = errors.New("Authentication credentials were not provided.")
	ErrInvalidToken       = errors.New("Invalid or expired token")
	ErrForbidden          = errors.New("You do not have permission to perform this action.")
	ErrInvalidTransition  = errors.New("invalid booking status transition")
)

const (
	msgEventUnique   = "The fields title, start_date must make a unique set."
	msgBookingUnique = "The fields customer, event must make a unique set."
	msgEmailTaken    = "user with this email already exists."
)

// doesNotExist is the message for a reference to a missing row.
func doesNotExist(id uint) string {
	return fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id)
}

func transitionError(from, to models.BookingStatus) error {
	return fmt.Errorf("%w: cannot move a %s booking to %s", ErrInvalidTransition, from, to)
}

// validate runs the struct tags of a request and returns the failures as
// field errors.
func validate(req any) models.FieldErrors {
	errs := models.FieldErrors{}
	if err := models.Validate.Struct(req); err != nil {
		errs.Merge(models.FromValidator(err))
	}
	return errs
}

func trim(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
