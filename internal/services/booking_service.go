package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/joshua-takyi/meetspace/internal/apperror"
	"github.com/joshua-takyi/meetspace/internal/events"
	"github.com/joshua-takyi/meetspace/internal/helpers"
	"github.com/joshua-takyi/meetspace/internal/models"
)

// CreateBookingInput is the admission request after authentication.
// RequestedBy comes from the verified token, never from the body.
type CreateBookingInput struct {
	RoomID      string
	Date        string
	StartTime   string
	EndTime     string
	Purpose     string
	RequestedBy string
}

type BookingService struct {
	bookingsRepo models.BookingRepo
	roomsRepo    models.RoomRepo
	checker      *AvailabilityChecker
	locks        *slotLocks
	publisher    *events.Publisher
	logger       *slog.Logger
}

func NewBookingService(bookingsRepo models.BookingRepo, roomsRepo models.RoomRepo, publisher *events.Publisher, logger *slog.Logger) *BookingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BookingService{
		bookingsRepo: bookingsRepo,
		roomsRepo:    roomsRepo,
		checker:      NewAvailabilityChecker(bookingsRepo),
		locks:        newSlotLocks(),
		publisher:    publisher,
		logger:       logger,
	}
}

// storeErr passes domain sentinels through untouched and classifies anything
// else as an internal persistence failure.
func storeErr(err error) error {
	var ae *apperror.Error
	if errors.As(err, &ae) {
		return err
	}
	return apperror.Internal(err)
}

// CreateBooking admits a reservation: required fields, a well-formed window,
// an existing room, and no overlap with active bookings for the same room and
// day. The availability check and the insert run under the slot lock so two
// concurrent overlapping requests cannot both pass the check.
func (bs *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	if strings.TrimSpace(in.RoomID) == "" || strings.TrimSpace(in.Date) == "" ||
		strings.TrimSpace(in.StartTime) == "" || strings.TrimSpace(in.EndTime) == "" {
		return nil, models.ErrMissingFields
	}

	w, err := models.ParseWindow(in.Date, in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}

	if _, err := bs.roomsRepo.GetRoomByID(ctx, in.RoomID); err != nil {
		return nil, storeErr(err)
	}

	mu := bs.locks.get(in.RoomID, w.Date)
	mu.Lock()
	defer mu.Unlock()

	free, err := bs.checker.IsAvailable(ctx, in.RoomID, w)
	if err != nil {
		return nil, storeErr(err)
	}
	if !free {
		return nil, models.ErrRoomUnavailable
	}

	booking := &models.Booking{
		RoomID:      in.RoomID,
		Date:        w.Date,
		StartTime:   models.FormatClock(w.Start),
		EndTime:     models.FormatClock(w.End),
		Purpose:     helpers.StringTrim(in.Purpose),
		Status:      models.BookingPending,
		RequestedBy: in.RequestedBy,
	}
	if err := models.Validate.Struct(booking); err != nil {
		return nil, models.ErrMissingFields
	}
	created, err := bs.bookingsRepo.InsertBooking(ctx, booking)
	if err != nil {
		return nil, storeErr(err)
	}

	bs.publish(ctx, events.RKBookingCreated, created)
	return created, nil
}

// CancelBooking transitions a booking to cancelled. The record stays in the
// store; it simply stops counting as active, so the slot opens up for new
// admissions. Only the owner or an admin may cancel.
func (bs *BookingService) CancelBooking(ctx context.Context, id, requester string, isAdmin bool) (*models.Booking, error) {
	booking, err := bs.getOwned(ctx, id, requester, isAdmin)
	if err != nil {
		return nil, err
	}
	if booking.Status == models.BookingCancelled {
		return nil, models.ErrBookingFinalized
	}

	updated, err := bs.bookingsRepo.UpdateBookingStatus(ctx, id, models.BookingCancelled)
	if err != nil {
		return nil, storeErr(err)
	}

	bs.publish(ctx, events.RKBookingCancelled, updated)
	return updated, nil
}

// ConfirmBooking moves a pending booking to confirmed. Confirming an already
// confirmed booking is a no-op; a cancelled booking refuses the transition.
func (bs *BookingService) ConfirmBooking(ctx context.Context, id, requester string, isAdmin bool) (*models.Booking, error) {
	booking, err := bs.getOwned(ctx, id, requester, isAdmin)
	if err != nil {
		return nil, err
	}
	switch booking.Status {
	case models.BookingConfirmed:
		return booking, nil
	case models.BookingCancelled:
		return nil, models.ErrBookingFinalized
	}

	updated, err := bs.bookingsRepo.UpdateBookingStatus(ctx, id, models.BookingConfirmed)
	if err != nil {
		return nil, storeErr(err)
	}

	bs.publish(ctx, events.RKBookingConfirmed, updated)
	return updated, nil
}

func (bs *BookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	if strings.TrimSpace(id) == "" {
		return nil, models.ErrBookingNotFound
	}
	booking, err := bs.bookingsRepo.GetBookingByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	return booking, nil
}

func (bs *BookingService) ListBookings(ctx context.Context, filter models.BookingFilter) ([]models.Booking, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	bookings, total, err := bs.bookingsRepo.ListBookings(ctx, filter)
	if err != nil {
		return nil, 0, storeErr(err)
	}
	return bookings, total, nil
}

// getOwned fetches a booking and enforces that the requester owns it or
// holds the admin role.
func (bs *BookingService) getOwned(ctx context.Context, id, requester string, isAdmin bool) (*models.Booking, error) {
	if strings.TrimSpace(id) == "" {
		return nil, models.ErrBookingNotFound
	}
	booking, err := bs.bookingsRepo.GetBookingByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	if !isAdmin && booking.RequestedBy != requester {
		return nil, models.ErrNotBookingOwner
	}
	return booking, nil
}

// publish sends a lifecycle event. Broker trouble is logged and swallowed;
// the booking operation already succeeded.
func (bs *BookingService) publish(ctx context.Context, key string, b *models.Booking) {
	if bs.publisher == nil {
		return
	}
	evt := events.BookingEvent{
		BookingID:   b.ID,
		RoomID:      b.RoomID,
		Date:        b.Date,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Status:      string(b.Status),
		RequestedBy: b.RequestedBy,
	}
	if err := bs.publisher.PublishJSON(ctx, key, evt); err != nil {
		bs.logger.Warn("failed to publish booking event",
			slog.String("routing_key", key),
			slog.String("booking_id", b.ID),
			slog.String("error", err.Error()),
		)
	}
}
