package services

import (
	"context"
	"sort"
	"time"

	"github.com/joshua-takyi/meetspace/internal/models"
)

// Day bounds for free-window computation, minutes from midnight.
const (
	dayStart = 0
	dayEnd   = 24 * 60
)

// AvailabilityChecker answers whether a window is free of active bookings.
// It only reads; callers that go on to write own the locking.
type AvailabilityChecker struct {
	bookingsRepo models.BookingRepo
}

func NewAvailabilityChecker(bookingsRepo models.BookingRepo) *AvailabilityChecker {
	return &AvailabilityChecker{
		bookingsRepo: bookingsRepo,
	}
}

// IsAvailable reports whether no pending or confirmed booking for the room
// overlaps the requested window.
func (ac *AvailabilityChecker) IsAvailable(ctx context.Context, roomID string, w models.TimeWindow) (bool, error) {
	active, err := ac.bookingsRepo.FindActiveByRoomAndDate(ctx, roomID, w.Date)
	if err != nil {
		return false, err
	}
	for i := range active {
		existing, err := active[i].Window()
		if err != nil {
			// a stored window that no longer parses blocks the slot
			return false, err
		}
		if w.Overlaps(existing) {
			return false, nil
		}
	}
	return true, nil
}

// FreeWindows returns the room's unbooked gaps on the given day, sorted by
// start time. A day with no active bookings yields the full 00:00-24:00 span.
func (ac *AvailabilityChecker) FreeWindows(ctx context.Context, roomID, date string) ([]models.TimeWindow, error) {
	day, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return nil, models.ErrInvalidTimeRange
	}
	date = day.Format(models.DateLayout)

	active, err := ac.bookingsRepo.FindActiveByRoomAndDate(ctx, roomID, date)
	if err != nil {
		return nil, err
	}

	busy := make([]models.TimeWindow, 0, len(active))
	for i := range active {
		w, err := active[i].Window()
		if err != nil {
			return nil, err
		}
		busy = append(busy, w)
	}
	sort.Slice(busy, func(i, j int) bool { return busy[i].Start < busy[j].Start })

	free := make([]models.TimeWindow, 0, len(busy)+1)
	cursor := dayStart
	for _, b := range busy {
		if b.Start > cursor {
			free = append(free, models.TimeWindow{Date: date, Start: cursor, End: b.Start})
		}
		if b.End > cursor {
			cursor = b.End
		}
	}
	if cursor < dayEnd {
		free = append(free, models.TimeWindow{Date: date, Start: cursor, End: dayEnd})
	}
	return free, nil
}
