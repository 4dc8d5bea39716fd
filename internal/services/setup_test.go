package services_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/eventmngt/eventapi/internal/helpers"
	"github.com/eventmngt/eventapi/internal/models"
	"github.com/eventmngt/eventapi/internal/notify"
	"github.com/eventmngt/eventapi/internal/services"
	"github.com/eventmngt/eventapi/internal/testutil"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu       sync.Mutex
	keys     []string
	messages []notify.BookingMessage
	err      error
}

func (p *recordingPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, routingKey)
	if msg, ok := payload.(notify.BookingMessage); ok {
		p.messages = append(p.messages, msg)
	}
	return p.err
}

func (p *recordingPublisher) Close() error {
	return nil
}

func (p *recordingPublisher) routingKeys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.keys...)
}

type fixture struct {
	db        *gorm.DB
	repo      *models.GormRepo
	publisher *recordingPublisher

	users    *services.UserService
	events   *services.EventService
	venues   *services.VenuesService
	bookings *services.BookingService
	payments *services.PaymentService
	reviews  *services.ReviewService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.OpenDB(t)
	repo := models.GormNewRepo(db)
	publisher := &recordingPublisher{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := helpers.NewTokenManager("test-secret", "eventapi")

	return &fixture{
		db:        db,
		repo:      repo,
		publisher: publisher,
		users:     services.NewUserService(repo, models.NewMemorySessionRepo(), tokens, time.Hour),
		events:    services.NewEventService(repo, repo, repo),
		venues:    services.NewVenuesService(repo),
		bookings:  services.NewBookingService(repo, repo, repo, publisher, logger),
		payments:  services.NewPaymentService(repo, repo),
		reviews:   services.NewReviewService(repo, repo),
	}
}

func principalFor(u *models.User) *helpers.Principal {
	return &helpers.Principal{UserID: u.ID, Role: u.Role, Email: u.Email}
}

func ptr[T any](v T) *T {
	return &v
}
