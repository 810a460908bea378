package container

import (
	"context"
	"log/slog"

	"github.com/joshua-takyi/meetspace/internal/config"
	"github.com/joshua-takyi/meetspace/internal/connect"
	"github.com/joshua-takyi/meetspace/internal/events"
	"github.com/joshua-takyi/meetspace/internal/models"
	"github.com/joshua-takyi/meetspace/internal/services"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Logger        *slog.Logger
	Config        *config.Config
	MongoDBClient *mongo.Client
	RedisClient   *redis.Client
	Publisher     *events.Publisher
	Store         *models.MongodbRepo

	BookingService *services.BookingService
	RoomService    *services.RoomService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	cfg *config.Config,
	mongoClient *mongo.Client,
	redisClient *redis.Client,
	publisher *events.Publisher,
) *Container {
	store := models.MongodbNewRepo(mongoClient)
	bookingService := services.NewBookingService(store, store, publisher, logger)
	roomService := services.NewRoomService(store, store, redisClient, logger)

	return &Container{
		Logger:         logger,
		Config:         cfg,
		MongoDBClient:  mongoClient,
		RedisClient:    redisClient,
		Publisher:      publisher,
		Store:          store,
		BookingService: bookingService,
		RoomService:    roomService,
	}
}

// Bootstrap prepares storage: booking indexes and the seeded room catalog.
func (c *Container) Bootstrap(ctx context.Context) error {
	if err := c.Store.EnsureBookingIndexes(ctx); err != nil {
		return err
	}
	return c.Store.SeedRooms(ctx, models.DefaultRooms())
}

// Close releases broker, cache and database connections.
func (c *Container) Close() error {
	if err := c.Publisher.Close(); err != nil {
		c.Logger.Error("Error closing publisher", "error", err)
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Error("Error closing Redis", "error", err)
		}
	}
	return connect.MongoDBDisconnect(c.MongoDBClient)
}
