package models

import (
	"context"
	"time"
)

const (
	BookingDbName  = "meetspace"
	BookingColName = "bookings"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Active reports whether the booking still occupies its slot. Cancelled
// bookings stay in the store for history but no longer count here.
func (s BookingStatus) Active() bool {
	return s == BookingPending || s == BookingConfirmed
}

type Booking struct {
	ID     string `bson:"id" json:"id"`
	RoomID string `bson:"room_id" json:"room_id" validate:"required"`
	// Date is "2006-01-02"; StartTime/EndTime are 24h "15:04" wall clock.
	StartTime   string        `bson:"start_time" json:"start_time" validate:"required"`
	EndTime     string        `bson:"end_time" json:"end_time" validate:"required"`
	Date        string        `bson:"date" json:"date" validate:"required"`
	Purpose     string        `bson:"purpose,omitempty" json:"purpose,omitempty"`
	Status      BookingStatus `bson:"status" json:"status"`
	RequestedBy string        `bson:"requested_by" json:"requested_by"`
	CreatedAt   time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at" json:"updated_at"`
}

// Window rebuilds the interval the booking occupies from its stored strings.
func (b *Booking) Window() (TimeWindow, error) {
	return ParseWindow(b.Date, b.StartTime, b.EndTime)
}

// BookingFilter narrows ListBookings. Zero values mean "any".
type BookingFilter struct {
	RoomID      string
	Date        string
	Status      BookingStatus
	RequestedBy string
	Limit       int64
	Offset      int64
}

type BookingRepo interface {
	InsertBooking(ctx context.Context, booking *Booking) (*Booking, error)
	GetBookingByID(ctx context.Context, id string) (*Booking, error)
	FindActiveByRoomAndDate(ctx context.Context, roomID, date string) ([]Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, to BookingStatus) (*Booking, error)
	ListBookings(ctx context.Context, filter BookingFilter) ([]Booking, int64, error)
	EnsureBookingIndexes(ctx context.Context) error
}
