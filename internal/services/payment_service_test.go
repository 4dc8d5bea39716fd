package services_test

import (
	"context"
	"testing"

	"github.com/eventmngt/eventapi/internal/dto"
	"github.com/eventmngt/eventapi/internal/models"
	"github.com/eventmngt/eventapi/internal/services"
	"github.com/eventmngt/eventapi/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePaymentDefaultsAmount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	organizer := testutil.SeedUser(t, f.db, models.RoleOrganizer)
	customer := testutil.SeedUser(t, f.db, models.RoleCustomer)
	event := testutil.SeedEvent(t, f.db, organizer.ID, nil)
	booking := testutil.SeedBooking(t, f.db, customer.ID, event.ID)

	payment, err := f.payments.CreatePayment(ctx, principalFor(customer), &dto.PaymentRequest{
		Booking: ptr(booking.ID),
		Method:  ptr("credit_card"),
	})
	require.NoError(t, err)
	// 25.00 per ticket, two tickets
	assert.Equal(t, "50.00", payment.Amount.String())
	assert.Equal(t, customer.ID, payment.CustomerID)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)

	_, err = f.payments.CreatePayment(ctx, principalFor(customer), &dto.PaymentRequest{
		Booking: ptr(booking.ID),
		Method:  ptr("paypal"),
	})
	fe, ok := models.AsFieldErrors(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, []string{"payment with this booking already exists."}, fe["booking"])
}

func TestCreatePaymentValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	organizer := testutil.SeedUser(t, f.db, models.RoleOrganizer)
	customer := testutil.SeedUser(t, f.db, models.RoleCustomer)
	stranger := testutil.SeedUser(t, f.db, models.RoleCustomer)
	event := testutil.SeedEvent(t, f.db, organizer.ID, nil)
	booking := testutil.SeedBooking(t, f.db, customer.ID, event.ID)

	_, err := f.payments.CreatePayment(ctx, principalFor(stranger), &dto.PaymentRequest{
		Booking: ptr(booking.ID), Method: ptr("paypal"),
	})
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = f.payments.CreatePayment(ctx, principalFor(customer), &dto.PaymentRequest{
		Booking: ptr(booking.ID), Method: ptr("cash"), Amount: ptr(models.Decimal("-1")),
	})
	fe, ok := models.AsFieldErrors(err)
	require.True(t, ok, "got %v", err)
	assert.Contains(t, fe, "method")
	assert.Equal(t, []string{models.ErrMoneyNegative.Error()}, fe["amount"])

	payment, err := f.payments.CreatePayment(ctx, principalFor(customer), &dto.PaymentRequest{
		Booking: ptr(booking.ID), Method: ptr("debit_card"), Amount: ptr(models.Decimal("10")),
	})
	require.NoError(t, err)
	assert.Equal(t, models.Money(1000), payment.Amount)
}

func TestListPaymentsIsRoleScoped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	organizer := testutil.SeedUser(t, f.db, models.RoleOrganizer)
	otherOrganizer := testutil.SeedUser(t, f.db, models.RoleOrganizer)
	customer := testutil.SeedUser(t, f.db, models.RoleCustomer)
	admin := testutil.SeedUser(t, f.db, models.RoleAdmin)
	event := testutil.SeedEvent(t, f.db, organizer.ID, nil)
	booking := testutil.SeedBooking(t, f.db, customer.ID, event.ID)

	_, err := f.payments.CreatePayment(ctx, principalFor(customer), &dto.PaymentRequest{
		Booking: ptr(booking.ID), Method: ptr("paypal"),
	})
	require.NoError(t, err)

	count := func(u *models.User) int {
		payments, err := f.payments.ListPayments(ctx, principalFor(u))
		require.NoError(t, err)
		return len(payments)
	}
	assert.Equal(t, 1, count(admin))
	assert.Equal(t, 1, count(organizer))
	assert.Equal(t, 0, count(otherOrganizer))
	assert.Equal(t, 1, count(customer))
}

func TestCreatePaymentRejectsTotalBeyondColumnRange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	organizer := testutil.SeedUser(t, f.db, models.RoleOrganizer)
	customer := testutil.SeedUser(t, f.db, models.RoleCustomer)
	event := testutil.SeedEvent(t, f.db, organizer.ID, nil)
	event.TicketPrice = models.Money(99999999_99)
	require.NoError(t, f.repo.SaveEvent(ctx, event))
	booking := testutil.SeedBooking(t, f.db, customer.ID, event.ID)
	require.NoError(t, f.db.Model(booking).Update("tickets_reserved", 1000).Error)

	_, err := f.payments.CreatePayment(ctx, principalFor(customer), &dto.PaymentRequest{
		Booking: ptr(booking.ID), Method: ptr("paypal"),
	})
	fe, ok := models.AsFieldErrors(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, []string{models.ErrMoneyDigits.Error()}, fe["amount"])

	payments, err := f.payments.ListPayments(ctx, principalFor(customer))
	require.NoError(t, err)
	assert.Empty(t, payments)
}
