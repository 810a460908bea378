package models

import (
	"testing"
)

// Test to verify filter translation behavior
func TestBookingFilterQuery(t *testing.T) {
	empty := BookingFilter{Limit: 20, Offset: 40}.query()
	if len(empty) != 0 {
		t.Errorf("empty filter produced query %v, want no constraints", empty)
	}

	full := BookingFilter{
		RoomID:      "boardroom-a",
		Date:        "2026-04-01",
		Status:      BookingPending,
		RequestedBy: "user-1",
	}.query()
	if len(full) != 4 {
		t.Fatalf("full filter produced %d constraints, want 4", len(full))
	}
	if full["room_id"] != "boardroom-a" {
		t.Errorf("room_id = %v", full["room_id"])
	}
	if full["date"] != "2026-04-01" {
		t.Errorf("date = %v", full["date"])
	}
	if full["status"] != BookingPending {
		t.Errorf("status = %v", full["status"])
	}
	if full["requested_by"] != "user-1" {
		t.Errorf("requested_by = %v", full["requested_by"])
	}

	partial := BookingFilter{RoomID: "boardroom-a"}.query()
	if len(partial) != 1 {
		t.Errorf("partial filter produced %d constraints, want 1", len(partial))
	}
	if _, ok := partial["status"]; ok {
		t.Error("empty status should not constrain the query")
	}
}

func TestBeforeCreateDefaults(t *testing.T) {
	booking := &Booking{RoomID: "boardroom-a", Date: "2026-04-01"}
	if err := booking.BeforeCreate(); err != nil {
		t.Fatalf("BeforeCreate() error = %v", err)
	}
	if booking.ID == "" {
		t.Error("expected an assigned id")
	}
	if booking.Status != BookingPending {
		t.Errorf("status = %q, want %q", booking.Status, BookingPending)
	}

	// existing values survive
	booking2 := &Booking{ID: "fixed-id", Status: BookingConfirmed}
	if err := booking2.BeforeCreate(); err != nil {
		t.Fatalf("BeforeCreate() error = %v", err)
	}
	if booking2.ID != "fixed-id" {
		t.Errorf("id = %q, want fixed-id", booking2.ID)
	}
	if booking2.Status != BookingConfirmed {
		t.Errorf("status = %q, want %q", booking2.Status, BookingConfirmed)
	}
}

func TestBookingWindow(t *testing.T) {
	booking := &Booking{Date: "2026-04-01", StartTime: "09:30", EndTime: "11:00"}
	w, err := booking.Window()
	if err != nil {
		t.Fatalf("Window() error = %v", err)
	}
	if w.Date != "2026-04-01" {
		t.Errorf("date = %q", w.Date)
	}
	if w.Start != 9*60+30 || w.End != 11*60 {
		t.Errorf("window = [%d, %d), want [570, 660)", w.Start, w.End)
	}

	bad := &Booking{Date: "2026-04-01", StartTime: "25:99", EndTime: "11:00"}
	if _, err := bad.Window(); err == nil {
		t.Error("expected error for unparseable stored times")
	}
}
