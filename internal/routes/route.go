package routes

import (
	"github.com/eventmngt/eventapi/internal/container"
	"github.com/eventmngt/eventapi/internal/handlers"
	"github.com/eventmngt/eventapi/internal/middleware"
	"github.com/eventmngt/eventapi/internal/models"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	origins := container.Options.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	// Paths keep their trailing slash; don't bounce clients between forms.
	r.RedirectTrailingSlash = false

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "OK",
			"service": "eventapi",
		})
	})

	cookie := handlers.CookieOptions{
		TTL:    container.Options.SessionTTL,
		Secure: container.Options.SecureCookies,
	}
	auth := middleware.AuthMiddleware(container.UserService, container.Logger)
	staff := middleware.RequireRoles(models.RoleAdmin, models.RoleOrganizer)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	api := r.Group("/api")
	{
		api.POST("/register/", handlers.Register(container.UserService))
		api.POST("/login/", handlers.Login(container.UserService, cookie))
		api.POST("/logout/", handlers.Logout(container.UserService, cookie, container.Logger))
		api.GET("/me/", auth, handlers.GetProfile(container.UserService))

		users := api.Group("/users", auth, adminOnly)
		users.PATCH("/:id/status/", handlers.UpdateUserStatus(container.UserService))
		users.DELETE("/:id/", handlers.DeleteUser(container.UserService))
	}

	events := r.Group("/events")
	{
		events.GET("/", handlers.ListEvents(container.EventService))
		events.GET("/:id/", handlers.GetEvent(container.EventService))
		events.POST("/create/", auth, staff, handlers.CreateEvent(container.EventService))
		events.PUT("/update/:id/", auth, staff, handlers.UpdateEvent(container.EventService, false))
		events.PATCH("/partial/:id/", auth, staff, handlers.UpdateEvent(container.EventService, true))
		events.DELETE("/delete/:id/", auth, staff, handlers.DeleteEvent(container.EventService))
	}

	venues := r.Group("/venues")
	{
		venues.GET("/", handlers.ListVenues(container.VenueService))
		venues.POST("/create/", auth, staff, handlers.CreateVenue(container.VenueService))
		venues.PATCH("/partial/:id/", auth, staff, handlers.UpdateVenue(container.VenueService))
		venues.DELETE("/delete/:id/", auth, staff, handlers.DeleteVenue(container.VenueService))
	}

	bookings := r.Group("/bookings", auth)
	{
		bookings.GET("/", handlers.ListBookings(container.BookingService))
		bookings.POST("/create/", handlers.CreateBooking(container.BookingService))
		bookings.POST("/cancel/:id/", handlers.CancelBooking(container.BookingService))
		bookings.POST("/confirm/:id/", handlers.ConfirmBooking(container.BookingService))
	}

	payments := r.Group("/payments", auth)
	{
		payments.GET("/", handlers.ListPayments(container.PaymentService))
		payments.POST("/create/", handlers.CreatePayment(container.PaymentService))
	}

	reviews := r.Group("/reviews")
	{
		reviews.GET("/", handlers.ListReviews(container.ReviewService))
		reviews.POST("/create/", auth, handlers.CreateReview(container.ReviewService))
	}

	return r
}
