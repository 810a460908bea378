package events

// Routing keys published to the booking topic exchange. Consumers bind with
// patterns like "booking.*".
const (
	BookingExchange = "booking.exchange"

	RKBookingCreated   = "booking.created"
	RKBookingConfirmed = "booking.confirmed"
	RKBookingCancelled = "booking.cancelled"
)

// BookingEvent carries enough for a downstream consumer to act without a
// store lookup.
type BookingEvent struct {
	BookingID   string `json:"booking_id"`
	RoomID      string `json:"room_id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Status      string `json:"status"`
	RequestedBy string `json:"requested_by"`
}
