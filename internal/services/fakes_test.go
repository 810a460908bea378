package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/joshua-takyi/meetspace/internal/models"
)

// memStore is an in-memory stand-in for the Mongo repos. FindActive can be
// given artificial latency to widen the gap between availability check and
// insert when exercising concurrent admissions.
type memStore struct {
	mu       sync.Mutex
	latency  time.Duration
	bookings []models.Booking
	rooms    map[string]models.Room
}

func newMemStore(rooms ...models.Room) *memStore {
	s := &memStore{rooms: make(map[string]models.Room)}
	for _, r := range rooms {
		s.rooms[r.ID] = r
	}
	return s
}

func (s *memStore) InsertBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	if err := booking.BeforeCreate(); err != nil {
		return nil, err
	}
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	s.mu.Lock()
	s.bookings = append(s.bookings, *booking)
	s.mu.Unlock()

	out := *booking
	return &out, nil
}

func (s *memStore) GetBookingByID(ctx context.Context, id string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			out := s.bookings[i]
			return &out, nil
		}
	}
	return nil, models.ErrBookingNotFound
}

func (s *memStore) FindActiveByRoomAndDate(ctx context.Context, roomID, date string) ([]models.Booking, error) {
	s.mu.Lock()
	var active []models.Booking
	for i := range s.bookings {
		b := s.bookings[i]
		if b.RoomID == roomID && b.Date == date && b.Status.Active() {
			active = append(active, b)
		}
	}
	s.mu.Unlock()

	if s.latency > 0 {
		time.Sleep(s.latency)
	}
	return active, nil
}

func (s *memStore) UpdateBookingStatus(ctx context.Context, id string, to models.BookingStatus) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bookings {
		if s.bookings[i].ID != id {
			continue
		}
		if s.bookings[i].Status == models.BookingCancelled {
			return nil, models.ErrBookingFinalized
		}
		s.bookings[i].Status = to
		s.bookings[i].UpdatedAt = time.Now()
		out := s.bookings[i]
		return &out, nil
	}
	return nil, models.ErrBookingNotFound
}

func (s *memStore) ListBookings(ctx context.Context, filter models.BookingFilter) ([]models.Booking, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []models.Booking
	// newest first
	for i := len(s.bookings) - 1; i >= 0; i-- {
		b := s.bookings[i]
		if filter.RoomID != "" && b.RoomID != filter.RoomID {
			continue
		}
		if filter.Date != "" && b.Date != filter.Date {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if filter.RequestedBy != "" && b.RequestedBy != filter.RequestedBy {
			continue
		}
		matched = append(matched, b)
	}

	total := int64(len(matched))
	if filter.Offset > 0 {
		if filter.Offset >= total {
			return nil, total, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && int64(len(matched)) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (s *memStore) EnsureBookingIndexes(ctx context.Context) error {
	return nil
}

func (s *memStore) GetRoomByID(ctx context.Context, id string) (*models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, models.ErrRoomNotFound
	}
	out := room
	return &out, nil
}

func (s *memStore) ListRooms(ctx context.Context) ([]models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rooms := make([]models.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		rooms = append(rooms, r)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Name < rooms[j].Name })
	return rooms, nil
}

func (s *memStore) SeedRooms(ctx context.Context, rooms []models.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range rooms {
		if _, ok := s.rooms[r.ID]; !ok {
			s.rooms[r.ID] = r
		}
	}
	return nil
}

func testRoom() models.Room {
	return models.Room{ID: "room-a", Name: "Boardroom A", Capacity: 8, Location: "2F"}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
