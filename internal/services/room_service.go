package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/joshua-takyi/meetspace/internal/models"
)

const (
	roomsCacheKey = "rooms"
	roomCacheTTL  = 5 * time.Minute
)

// RoomService serves the read-only room catalog with a Redis cache in front
// of the store. Cache trouble degrades to the store silently; rooms change
// only at seed time so staleness is bounded by the TTL.
type RoomService struct {
	roomsRepo models.RoomRepo
	checker   *AvailabilityChecker
	cache     *redis.Client
	logger    *slog.Logger
}

func NewRoomService(roomsRepo models.RoomRepo, bookingsRepo models.BookingRepo, cache *redis.Client, logger *slog.Logger) *RoomService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RoomService{
		roomsRepo: roomsRepo,
		checker:   NewAvailabilityChecker(bookingsRepo),
		cache:     cache,
		logger:    logger,
	}
}

func (rs *RoomService) ListRooms(ctx context.Context) ([]models.Room, error) {
	if cached := rs.cacheGet(ctx, roomsCacheKey); cached != "" {
		var rooms []models.Room
		if err := json.Unmarshal([]byte(cached), &rooms); err == nil {
			return rooms, nil
		}
	}

	rooms, err := rs.roomsRepo.ListRooms(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	rs.cacheSet(ctx, roomsCacheKey, rooms)
	return rooms, nil
}

func (rs *RoomService) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	if strings.TrimSpace(id) == "" {
		return nil, models.ErrRoomNotFound
	}

	key := "room:" + id
	if cached := rs.cacheGet(ctx, key); cached != "" {
		var room models.Room
		if err := json.Unmarshal([]byte(cached), &room); err == nil {
			return &room, nil
		}
	}

	room, err := rs.roomsRepo.GetRoomByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	rs.cacheSet(ctx, key, room)
	return room, nil
}

// Availability lists the room's free windows for a day. The room must exist.
func (rs *RoomService) Availability(ctx context.Context, roomID, date string) ([]models.TimeWindow, error) {
	if _, err := rs.GetRoom(ctx, roomID); err != nil {
		return nil, err
	}
	windows, err := rs.checker.FreeWindows(ctx, roomID, date)
	if err != nil {
		return nil, storeErr(err)
	}
	return windows, nil
}

func (rs *RoomService) cacheGet(ctx context.Context, key string) string {
	if rs.cache == nil {
		return ""
	}
	cached, err := rs.cache.Get(ctx, key).Result()
	if err != nil {
		return ""
	}
	return cached
}

func (rs *RoomService) cacheSet(ctx context.Context, key string, v any) {
	if rs.cache == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := rs.cache.Set(ctx, key, data, roomCacheTTL).Err(); err != nil {
		rs.logger.Debug("room cache set failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}
