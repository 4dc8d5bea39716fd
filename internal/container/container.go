package container

import (
	"log/slog"
	"time"

	"github.com/eventmngt/eventapi/internal/helpers"
	"github.com/eventmngt/eventapi/internal/models"
	"github.com/eventmngt/eventapi/internal/notify"
	"github.com/eventmngt/eventapi/internal/services"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const tokenIssuer = "eventapi"

// Options carries the settings the container needs beyond its clients.
type Options struct {
	JWTSecret     string
	SessionTTL    time.Duration
	SecureCookies bool
	CORSOrigins   []string
}

// Container holds all application dependencies
type Container struct {
	Logger    *slog.Logger
	Options   Options
	DB        *gorm.DB
	Redis     *redis.Client
	Publisher notify.Publisher

	// MemorySessions is set when sessions are kept in process.
	MemorySessions *models.MemorySessionRepo

	UserService    *services.UserService
	EventService   *services.EventService
	VenueService   *services.VenuesService
	BookingService *services.BookingService
	PaymentService *services.PaymentService
	ReviewService  *services.ReviewService
}

// NewContainer creates a new dependency injection container. A nil Redis
// client selects the in-process session store.
func NewContainer(
	logger *slog.Logger,
	db *gorm.DB,
	redisClient *redis.Client,
	publisher notify.Publisher,
	opts Options,
) *Container {
	// Initialize repositories
	repo := models.GormNewRepo(db)

	var sessions models.SessionRepo
	var memSessions *models.MemorySessionRepo
	if redisClient != nil {
		sessions = models.RedisNewRepo(redisClient)
	} else {
		memSessions = models.NewMemorySessionRepo()
		sessions = memSessions
	}

	tokens := helpers.NewTokenManager(opts.JWTSecret, tokenIssuer)

	return &Container{
		Logger:         logger,
		Options:        opts,
		DB:             db,
		Redis:          redisClient,
		Publisher:      publisher,
		MemorySessions: memSessions,
		UserService:    services.NewUserService(repo, sessions, tokens, opts.SessionTTL),
		EventService:   services.NewEventService(repo, repo, repo),
		VenueService:   services.NewVenuesService(repo),
		BookingService: services.NewBookingService(repo, repo, repo, publisher, logger),
		PaymentService: services.NewPaymentService(repo, repo),
		ReviewService:  services.NewReviewService(repo, repo),
	}
}
