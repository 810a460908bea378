package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/meetspace/internal/container"
	"github.com/joshua-takyi/meetspace/internal/handlers"
	"github.com/joshua-takyi/meetspace/internal/middleware"
	"golang.org/x/time/rate"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     container.Config.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	limiter := middleware.NewRateLimiter(
		rate.Limit(container.Config.RateLimitRPS),
		container.Config.RateLimitBurst,
	)

	// API version 1
	v1 := r.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "meetspace-api",
			})
		})
	}

	protected := v1.Group("/")
	protected.Use(middleware.Auth(container.Config.JWKSURL, container.Config.JWTSecret))

	bookingRoutes := protected.Group("/bookings")
	{
		bookingRoutes.POST("/", limiter.Limit(), handlers.CreateBooking(container.BookingService))
		bookingRoutes.GET("/", handlers.ListBookings(container.BookingService))
		bookingRoutes.GET("/:id", handlers.GetBooking(container.BookingService))
		bookingRoutes.POST("/:id/confirm", limiter.Limit(), handlers.ConfirmBooking(container.BookingService))
		bookingRoutes.POST("/:id/cancel", limiter.Limit(), handlers.CancelBooking(container.BookingService))
		bookingRoutes.DELETE("/:id", limiter.Limit(), handlers.CancelBooking(container.BookingService))
	}

	roomRoutes := protected.Group("/rooms")
	{
		roomRoutes.GET("/", handlers.ListRooms(container.RoomService))
		roomRoutes.GET("/:id", handlers.GetRoom(container.RoomService))
		roomRoutes.GET("/:id/availability", handlers.RoomAvailability(container.RoomService))
	}

	return r
}
