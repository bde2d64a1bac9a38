package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Jav1009/community-service-api/internal/app"
	"github.com/Jav1009/community-service-api/internal/domain"
	"go.uber.org/zap"
)

type stubBookingService struct {
	bookings []domain.BookingJoined
	booking  domain.BookingJoined
	err      error

	createInput app.CreateBookingInput
	cancelErrs  []error
}

func (s *stubBookingService) ListBookings(_ context.Context) ([]domain.BookingJoined, error) {
	return s.bookings, s.err
}

func (s *stubBookingService) GetBooking(_ context.Context, _ int64) (domain.BookingJoined, error) {
	return s.booking, s.err
}

func (s *stubBookingService) CreateBooking(_ context.Context, in app.CreateBookingInput) (domain.BookingJoined, error) {
	s.createInput = in
	return s.booking, s.err
}

func (s *stubBookingService) UpdateBookingStatus(_ context.Context, _, _ int64) (domain.BookingJoined, error) {
	return s.booking, s.err
}

func (s *stubBookingService) CancelBooking(_ context.Context, _ int64) error {
	if len(s.cancelErrs) > 0 {
		err := s.cancelErrs[0]
		s.cancelErrs = s.cancelErrs[1:]
		return err
	}
	return s.err
}

func testBooking() domain.BookingJoined {
	return domain.BookingJoined{
		ID:           1,
		BookingDate:  "2024-01-01",
		BookingTime:  "10:00",
		CreatedAt:    time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC),
		UserID:       1,
		UserName:     "Community User",
		UserEmail:    "community.user@example.com",
		ServiceID:    10,
		ServiceName:  "Plumbing",
		ServicePrice: 50,
		StatusID:     1,
		StatusName:   domain.StatusScheduled,
	}
}

func TestHandleBookings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		method         string
		body           string
		stub           *stubBookingService
		expectedStatus int
		expectedSubstr []string
	}{
		{
			name:           "list",
			method:         http.MethodGet,
			stub:           &stubBookingService{bookings: []domain.BookingJoined{testBooking()}},
			expectedStatus: http.StatusOK,
			expectedSubstr: []string{`"count":1`, `"user_email":"community.user@example.com"`, `"status_name":"Scheduled"`},
		},
		{
			name:           "create",
			method:         http.MethodPost,
			body:           `{"service_id":10,"booking_date":"2024-01-01","booking_time":"10:00"}`,
			stub:           &stubBookingService{booking: testBooking()},
			expectedStatus: http.StatusCreated,
			expectedSubstr: []string{`"message":"Booking created successfully"`, `"service_price":50`},
		},
		{
			name:           "create unknown service",
			method:         http.MethodPost,
			body:           `{"service_id":999,"booking_date":"2024-01-01","booking_time":"10:00"}`,
			stub:           &stubBookingService{err: domain.NotFoundf("Service with ID 999 not found")},
			expectedStatus: http.StatusNotFound,
			expectedSubstr: []string{`"status":404`, `Service with ID 999 not found`},
		},
		{
			name:           "create invalid body",
			method:         http.MethodPost,
			body:           `{`,
			stub:           &stubBookingService{},
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: []string{`"success":false`},
		},
		{
			name:           "unmatched method",
			method:         http.MethodPut,
			stub:           &stubBookingService{},
			expectedStatus: http.StatusNotFound,
			expectedSubstr: []string{`Route /api/bookings not found`},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tt.method, "/api/bookings", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			HandleBookings(tt.stub, 1, zap.NewNop()).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d (%s)", tt.expectedStatus, rec.Code, rec.Body.String())
			}
			for _, substr := range tt.expectedSubstr {
				if !strings.Contains(rec.Body.String(), substr) {
					t.Fatalf("expected body to contain %q, got %q", substr, rec.Body.String())
				}
			}
		})
	}
}

func TestHandleBookings_AttributesDefaultUser(t *testing.T) {
	t.Parallel()

	stub := &stubBookingService{booking: testBooking()}
	body := `{"service_id":10,"booking_date":"2024-01-01","booking_time":"10:00","notes":"side door"}`
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()

	HandleBookings(stub, 7, zap.NewNop()).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}
	if stub.createInput.UserID != 7 {
		t.Fatalf("expected caller identity 7, got %d", stub.createInput.UserID)
	}
	if stub.createInput.Notes == nil || *stub.createInput.Notes != "side door" {
		t.Fatalf("expected notes to reach the service")
	}
}

func TestHandleBookingByID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		stub           *stubBookingService
		expectedStatus int
		expectedSubstr []string
	}{
		{
			name:           "get",
			method:         http.MethodGet,
			path:           "/api/bookings/1",
			stub:           &stubBookingService{booking: testBooking()},
			expectedStatus: http.StatusOK,
			expectedSubstr: []string{`"status_name":"Scheduled"`},
		},
		{
			name:           "get not found",
			method:         http.MethodGet,
			path:           "/api/bookings/42",
			stub:           &stubBookingService{err: domain.NotFoundf("Booking with ID 42 not found")},
			expectedStatus: http.StatusNotFound,
			expectedSubstr: []string{`Booking with ID 42 not found`},
		},
		{
			name:           "non-integer id",
			method:         http.MethodGet,
			path:           "/api/bookings/nope",
			stub:           &stubBookingService{},
			expectedStatus: http.StatusNotFound,
			expectedSubstr: []string{`Booking with ID nope not found`},
		},
		{
			name:           "status update",
			method:         http.MethodPut,
			path:           "/api/bookings/1/status",
			body:           `{"status_id":2}`,
			stub:           &stubBookingService{booking: testBooking()},
			expectedStatus: http.StatusOK,
			expectedSubstr: []string{`"message":"Booking status updated successfully"`},
		},
		{
			name:           "status update missing status_id",
			method:         http.MethodPut,
			path:           "/api/bookings/1/status",
			body:           `{}`,
			stub:           &stubBookingService{err: domain.InvalidInputf("status_id is required")},
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: []string{`status_id is required`},
		},
		{
			name:           "status update unknown status",
			method:         http.MethodPut,
			path:           "/api/bookings/1/status",
			body:           `{"status_id":99}`,
			stub:           &stubBookingService{err: domain.NotFoundf("Booking status with ID 99 not found")},
			expectedStatus: http.StatusNotFound,
			expectedSubstr: []string{`Booking status with ID 99 not found`},
		},
		{
			name:           "cancel",
			method:         http.MethodPut,
			path:           "/api/bookings/1/cancel",
			stub:           &stubBookingService{},
			expectedStatus: http.StatusOK,
			expectedSubstr: []string{`"message":"Booking with ID 1 has been cancelled"`},
		},
		{
			name:           "unmatched action",
			method:         http.MethodPut,
			path:           "/api/bookings/1/archive",
			stub:           &stubBookingService{},
			expectedStatus: http.StatusNotFound,
			expectedSubstr: []string{`Route /api/bookings/1/archive not found`},
		},
		{
			name:           "unmatched method on action",
			method:         http.MethodPost,
			path:           "/api/bookings/1/cancel",
			stub:           &stubBookingService{},
			expectedStatus: http.StatusNotFound,
			expectedSubstr: []string{`Route /api/bookings/1/cancel not found`},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			HandleBookingByID(tt.stub, "", zap.NewNop()).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d (%s)", tt.expectedStatus, rec.Code, rec.Body.String())
			}
			for _, substr := range tt.expectedSubstr {
				if !strings.Contains(rec.Body.String(), substr) {
					t.Fatalf("expected body to contain %q, got %q", substr, rec.Body.String())
				}
			}
		})
	}
}

func TestHandleBookingByID_CancelTwice(t *testing.T) {
	t.Parallel()

	stub := &stubBookingService{
		cancelErrs: []error{
			nil,
			domain.InvalidOperationf("Only scheduled bookings can be cancelled. Current status: Cancelled"),
		},
	}
	handler := HandleBookingByID(stub, "", zap.NewNop())

	req := httptest.NewRequest(http.MethodPut, "/api/bookings/1/cancel", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected first cancel to return 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Booking with ID 1 has been cancelled") {
		t.Fatalf("unexpected first cancel body: %q", rec.Body.String())
	}

	req2 := httptest.NewRequest(http.MethodPut, "/api/bookings/1/cancel", nil)
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, req2)

	if rec2.Code != http.StatusBadRequest {
		t.Fatalf("expected second cancel to return 400, got %d", rec2.Code)
	}
	if !strings.Contains(rec2.Body.String(), "Only scheduled bookings can be cancelled. Current status: Cancelled") {
		t.Fatalf("unexpected second cancel body: %q", rec2.Body.String())
	}
}

func TestHandleBookingByID_AdminTokenGate(t *testing.T) {
	t.Parallel()

	stub := &stubBookingService{booking: testBooking()}
	handler := HandleBookingByID(stub, "secret", zap.NewNop())

	req := httptest.NewRequest(http.MethodPut, "/api/bookings/1/status", strings.NewReader(`{"status_id":2}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without token, got %d", rec.Code)
	}

	req2 := httptest.NewRequest(http.MethodPut, "/api/bookings/1/status", strings.NewReader(`{"status_id":2}`))
	req2.Header.Set(adminTokenHeader, "secret")
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, req2)

	if rec2.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", rec2.Code)
	}

	// Cancel is a user-facing transition; no token needed.
	req3 := httptest.NewRequest(http.MethodPut, "/api/bookings/1/cancel", nil)
	rec3 := httptest.NewRecorder()
	handler.ServeHTTP(rec3, req3)

	if rec3.Code != http.StatusOK {
		t.Fatalf("expected cancel to bypass admin gate, got %d", rec3.Code)
	}
}
