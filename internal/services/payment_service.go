package services

import (
	"context"
	"fmt"

	"github.com/eventmngt/eventapi/internal/dto"
	"github.com/eventmngt/eventapi/internal/helpers"
	"github.com/eventmngt/eventapi/internal/models"
)

const msgPaymentExists = "payment with this booking already exists."

type PaymentService struct {
	paymentsRepo models.PaymentsRepo
	bookingsRepo models.BookingsRepo
}

func NewPaymentService(paymentsRepo models.PaymentsRepo, bookingsRepo models.BookingsRepo) *PaymentService {
	return &PaymentService{
		paymentsRepo: paymentsRepo,
		bookingsRepo: bookingsRepo,
	}
}

// CreatePayment records a pending payment for a booking. Without an explicit
// amount the customer owes ticket price times tickets reserved.
func (ps *PaymentService) CreatePayment(ctx context.Context, actor *helpers.Principal, req *dto.PaymentRequest) (*models.Payment, error) {
	errs := validate(req)

	var booking *models.Booking
	if req.Booking != nil {
		b, err := ps.bookingsRepo.GetBookingByID(ctx, *req.Booking)
		switch {
		case models.IsNotFound(err):
			errs.Add("booking", doesNotExist(*req.Booking))
		case err != nil:
			return nil, err
		default:
			booking = b
		}
	}
	if booking != nil && !actor.IsAdmin() && !actor.IsOwner(booking.CustomerID) {
		return nil, ErrForbidden
	}
	if booking != nil && booking.Status == models.BookingStatusCancelled {
		errs.Add("booking", "Cannot pay for a cancelled booking.")
	}

	var amount models.Money
	if req.Amount != nil {
		parsed, err := models.ParseMoney(string(*req.Amount))
		switch {
		case err != nil:
			errs.Add("amount", err.Error())
		case parsed < 0:
			errs.Add("amount", models.ErrMoneyNegative.Error())
		default:
			amount = parsed
		}
	} else if booking != nil && booking.Event != nil {
		total, err := booking.Event.TicketPrice.Mul(booking.TicketsReserved)
		if err != nil {
			errs.Add("amount", err.Error())
		}
		amount = total
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	exists, err := ps.paymentsRepo.PaymentExistsForBooking(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewFieldError("booking", msgPaymentExists)
	}

	payment := &models.Payment{
		BookingID:  booking.ID,
		CustomerID: booking.CustomerID,
		Method:     models.PaymentMethod(*req.Method),
		Status:     models.PaymentStatusPending,
		Amount:     amount,
	}
	if err := ps.paymentsRepo.CreatePayment(ctx, payment); err != nil {
		switch {
		case models.IsDuplicate(err):
			return nil, models.NewFieldError("booking", msgPaymentExists)
		case models.IsForeignKeyViolation(err):
			return nil, models.NewFieldError("booking", doesNotExist(booking.ID))
		}
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}
	return payment, nil
}

// ListPayments applies the booking visibility rules to payments.
func (ps *PaymentService) ListPayments(ctx context.Context, actor *helpers.Principal) ([]models.Payment, error) {
	return ps.paymentsRepo.ListPayments(ctx, actor.BookingScope())
}
