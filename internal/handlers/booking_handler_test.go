package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joshua-takyi/meetspace/internal/helpers"
	"github.com/joshua-takyi/meetspace/internal/middleware"
	"github.com/joshua-takyi/meetspace/internal/models"
	"github.com/joshua-takyi/meetspace/internal/services"
)

const testSecret = "handler-test-secret"

// stubStore backs the handler tests in memory.
type stubStore struct {
	mu       sync.Mutex
	bookings []models.Booking
	rooms    map[string]models.Room
}

func newStubStore() *stubStore {
	return &stubStore{
		rooms: map[string]models.Room{
			"boardroom-a": {ID: "boardroom-a", Name: "Boardroom A", Capacity: 8},
		},
	}
}

func (s *stubStore) InsertBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
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

func (s *stubStore) GetBookingByID(ctx context.Context, id string) (*models.Booking, error) {
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

func (s *stubStore) FindActiveByRoomAndDate(ctx context.Context, roomID, date string) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var active []models.Booking
	for i := range s.bookings {
		b := s.bookings[i]
		if b.RoomID == roomID && b.Date == date && b.Status.Active() {
			active = append(active, b)
		}
	}
	return active, nil
}

func (s *stubStore) UpdateBookingStatus(ctx context.Context, id string, to models.BookingStatus) (*models.Booking, error) {
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

func (s *stubStore) ListBookings(ctx context.Context, filter models.BookingFilter) ([]models.Booking, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []models.Booking
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
	if filter.Offset > 0 && filter.Offset < total {
		matched = matched[filter.Offset:]
	} else if filter.Offset >= total {
		matched = nil
	}
	if filter.Limit > 0 && int64(len(matched)) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (s *stubStore) EnsureBookingIndexes(ctx context.Context) error { return nil }

func (s *stubStore) GetRoomByID(ctx context.Context, id string) (*models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, models.ErrRoomNotFound
	}
	out := room
	return &out, nil
}

func (s *stubStore) ListRooms(ctx context.Context) ([]models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rooms := make([]models.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		rooms = append(rooms, r)
	}
	return rooms, nil
}

func (s *stubStore) SeedRooms(ctx context.Context, rooms []models.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range rooms {
		s.rooms[r.ID] = r
	}
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupRouter(store *stubStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := testLogger()
	bookingService := services.NewBookingService(store, store, nil, logger)
	roomService := services.NewRoomService(store, store, nil, logger)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler(logger))

	protected := r.Group("/api/v1")
	protected.Use(middleware.Auth("", testSecret))
	protected.POST("/bookings", CreateBooking(bookingService))
	protected.GET("/bookings", ListBookings(bookingService))
	protected.GET("/bookings/:id", GetBooking(bookingService))
	protected.POST("/bookings/:id/confirm", ConfirmBooking(bookingService))
	protected.POST("/bookings/:id/cancel", CancelBooking(bookingService))
	protected.GET("/rooms", ListRooms(roomService))
	protected.GET("/rooms/:id", GetRoom(roomService))
	protected.GET("/rooms/:id/availability", RoomAvailability(roomService))
	return r
}

func signTestToken(t *testing.T, subject, role string) string {
	t.Helper()
	claims := &helpers.CustomClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) models.ApiResponse {
	t.Helper()
	var resp models.ApiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return resp
}

func validBody() gin.H {
	return gin.H{
		"room_id":    "boardroom-a",
		"date":       "2026-04-01",
		"start_time": "10:00",
		"end_time":   "11:00",
		"purpose":    "design review",
	}
}

func TestCreateBookingHandler(t *testing.T) {
	r := setupRouter(newStubStore())
	token := signTestToken(t, "user-1", "user")

	w := doRequest(t, r, http.MethodPost, "/api/v1/bookings", token, validBody())
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", w.Code, w.Body.String())
	}
	resp := decodeEnvelope(t, w)
	if !resp.Success {
		t.Error("expected success envelope")
	}
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data = %T", resp.Data)
	}
	if data["status"] != "pending" {
		t.Errorf("status = %v, want pending", data["status"])
	}
	if data["id"] == "" || data["id"] == nil {
		t.Error("expected assigned id")
	}
	if data["requested_by"] != "user-1" {
		t.Errorf("requested_by = %v, want token subject", data["requested_by"])
	}
}

func TestCreateBookingHandlerRequiresAuth(t *testing.T) {
	r := setupRouter(newStubStore())

	w := doRequest(t, r, http.MethodPost, "/api/v1/bookings", "", validBody())
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}

	w = doRequest(t, r, http.MethodPost, "/api/v1/bookings", "garbage-token", validBody())
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestCreateBookingHandlerStatusMapping(t *testing.T) {
	r := setupRouter(newStubStore())
	token := signTestToken(t, "user-1", "user")

	// seed a booking to conflict with
	if w := doRequest(t, r, http.MethodPost, "/api/v1/bookings", token, validBody()); w.Code != http.StatusCreated {
		t.Fatalf("seed booking failed: %d", w.Code)
	}

	tests := []struct {
		name       string
		body       gin.H
		wantStatus int
		wantError  string
	}{
		{
			name:       "missing fields",
			body:       gin.H{"room_id": "boardroom-a", "date": "2026-04-01"},
			wantStatus: http.StatusBadRequest,
			wantError:  "missing required fields",
		},
		{
			name:       "invalid range",
			body:       gin.H{"room_id": "boardroom-a", "date": "2026-04-01", "start_time": "14:00", "end_time": "13:00"},
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid time range",
		},
		{
			name:       "unknown room",
			body:       gin.H{"room_id": "room-zz", "date": "2026-04-01", "start_time": "10:00", "end_time": "11:00"},
			wantStatus: http.StatusNotFound,
			wantError:  "room not found",
		},
		{
			name:       "conflict",
			body:       validBody(),
			wantStatus: http.StatusConflict,
			wantError:  "room not available",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, r, http.MethodPost, "/api/v1/bookings", token, tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d; body %s", w.Code, tt.wantStatus, w.Body.String())
			}
			resp := decodeEnvelope(t, w)
			if resp.Success {
				t.Error("expected error envelope")
			}
			if resp.Error != tt.wantError {
				t.Errorf("error = %q, want %q", resp.Error, tt.wantError)
			}
		})
	}
}

func TestGetBookingHandler(t *testing.T) {
	r := setupRouter(newStubStore())
	token := signTestToken(t, "user-1", "user")

	w := doRequest(t, r, http.MethodGet, "/api/v1/bookings/nope", token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}

	created := decodeEnvelope(t, doRequest(t, r, http.MethodPost, "/api/v1/bookings", token, validBody()))
	id := created.Data.(map[string]interface{})["id"].(string)

	w = doRequest(t, r, http.MethodGet, "/api/v1/bookings/"+id, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestCancelBookingHandler(t *testing.T) {
	r := setupRouter(newStubStore())
	owner := signTestToken(t, "user-1", "user")
	stranger := signTestToken(t, "user-2", "user")
	admin := signTestToken(t, "admin-1", "admin")

	created := decodeEnvelope(t, doRequest(t, r, http.MethodPost, "/api/v1/bookings", owner, validBody()))
	id := created.Data.(map[string]interface{})["id"].(string)

	if w := doRequest(t, r, http.MethodPost, "/api/v1/bookings/"+id+"/cancel", stranger, nil); w.Code != http.StatusForbidden {
		t.Fatalf("stranger cancel: status = %d, want 403", w.Code)
	}

	w := doRequest(t, r, http.MethodPost, "/api/v1/bookings/"+id+"/cancel", owner, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("owner cancel: status = %d, want 200; body %s", w.Code, w.Body.String())
	}
	resp := decodeEnvelope(t, w)
	if resp.Data.(map[string]interface{})["status"] != "cancelled" {
		t.Errorf("status after cancel = %v", resp.Data.(map[string]interface{})["status"])
	}

	// cancelled bookings refuse further transitions
	if w := doRequest(t, r, http.MethodPost, "/api/v1/bookings/"+id+"/cancel", admin, nil); w.Code != http.StatusConflict {
		t.Fatalf("second cancel: status = %d, want 409", w.Code)
	}
	if w := doRequest(t, r, http.MethodPost, "/api/v1/bookings/"+id+"/confirm", admin, nil); w.Code != http.StatusConflict {
		t.Fatalf("confirm cancelled: status = %d, want 409", w.Code)
	}

	// the slot is free again
	if w := doRequest(t, r, http.MethodPost, "/api/v1/bookings", owner, validBody()); w.Code != http.StatusCreated {
		t.Fatalf("rebook freed slot: status = %d, want 201", w.Code)
	}
}

func TestConfirmBookingHandler(t *testing.T) {
	r := setupRouter(newStubStore())
	token := signTestToken(t, "user-1", "user")

	created := decodeEnvelope(t, doRequest(t, r, http.MethodPost, "/api/v1/bookings", token, validBody()))
	id := created.Data.(map[string]interface{})["id"].(string)

	w := doRequest(t, r, http.MethodPost, "/api/v1/bookings/"+id+"/confirm", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	resp := decodeEnvelope(t, w)
	if resp.Data.(map[string]interface{})["status"] != "confirmed" {
		t.Errorf("status = %v, want confirmed", resp.Data.(map[string]interface{})["status"])
	}
}

func TestListBookingsHandler(t *testing.T) {
	r := setupRouter(newStubStore())
	alice := signTestToken(t, "user-1", "user")
	bob := signTestToken(t, "user-2", "user")

	if w := doRequest(t, r, http.MethodPost, "/api/v1/bookings", alice, validBody()); w.Code != http.StatusCreated {
		t.Fatalf("seed: %d", w.Code)
	}
	other := validBody()
	other["start_time"], other["end_time"] = "12:00", "13:00"
	if w := doRequest(t, r, http.MethodPost, "/api/v1/bookings", bob, other); w.Code != http.StatusCreated {
		t.Fatalf("seed: %d", w.Code)
	}

	w := doRequest(t, r, http.MethodGet, "/api/v1/bookings", alice, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	resp := decodeEnvelope(t, w)
	if resp.Total != 2 {
		t.Errorf("total = %d, want 2", resp.Total)
	}

	w = doRequest(t, r, http.MethodGet, "/api/v1/bookings?mine=true", bob, nil)
	resp = decodeEnvelope(t, w)
	if resp.Total != 1 {
		t.Errorf("mine total = %d, want 1", resp.Total)
	}

	if w := doRequest(t, r, http.MethodGet, "/api/v1/bookings?limit=0", alice, nil); w.Code != http.StatusBadRequest {
		t.Errorf("bad limit: status = %d, want 400", w.Code)
	}
}
