package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Jav1009/community-service-api/internal/app"
	"github.com/Jav1009/community-service-api/internal/domain"
	"go.uber.org/zap"
)

const adminTokenHeader = "X-Admin-Token"

// BookingService is the minimal interface the booking endpoints need.
type BookingService interface {
	ListBookings(ctx context.Context) ([]domain.BookingJoined, error)
	GetBooking(ctx context.Context, id int64) (domain.BookingJoined, error)
	CreateBooking(ctx context.Context, in app.CreateBookingInput) (domain.BookingJoined, error)
	UpdateBookingStatus(ctx context.Context, id, statusID int64) (domain.BookingJoined, error)
	CancelBooking(ctx context.Context, id int64) error
}

// HandleBookings serves the /api/bookings collection: list and create. New
// bookings are attributed to defaultUserID until an authentication layer
// supplies the caller identity.
func HandleBookings(svc BookingService, defaultUserID int64, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			bookings, err := svc.ListBookings(r.Context())
			if err != nil {
				writeDomainError(w, logger, err)
				return
			}
			data := make([]bookingResponse, 0, len(bookings))
			for _, b := range bookings {
				data = append(data, newBookingResponse(b))
			}
			count := len(data)
			writeJSON(w, http.StatusOK, envelope{Success: true, Count: &count, Data: data})
		case http.MethodPost:
			var req createBookingRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, "Invalid request body")
				return
			}

			created, err := svc.CreateBooking(r.Context(), app.CreateBookingInput{
				UserID:      defaultUserID,
				ServiceID:   req.ServiceID,
				BookingDate: req.BookingDate,
				BookingTime: req.BookingTime,
				Notes:       req.Notes,
			})
			if err != nil {
				writeDomainError(w, logger, err)
				return
			}
			writeJSON(w, http.StatusCreated, envelope{
				Success: true,
				Message: "Booking created successfully",
				Data:    newBookingResponse(created),
			})
		default:
			writeRouteNotFound(w, r)
		}
	}
}

// HandleBookingByID serves /api/bookings/{id} plus the status and cancel
// actions. The status override is gated by adminToken when one is configured.
func HandleBookingByID(svc BookingService, adminToken string, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idText, action, ok := parseBookingItemPath(r.URL.Path)
		if !ok {
			writeRouteNotFound(w, r)
			return
		}
		id, err := strconv.ParseInt(idText, 10, 64)
		if err != nil {
			writeError(w, http.StatusNotFound, fmt.Sprintf("Booking with ID %s not found", idText))
			return
		}

		switch {
		case r.Method == http.MethodGet && action == "":
			booking, err := svc.GetBooking(r.Context(), id)
			if err != nil {
				writeDomainError(w, logger, err)
				return
			}
			writeJSON(w, http.StatusOK, envelope{Success: true, Data: newBookingResponse(booking)})
		case r.Method == http.MethodPut && action == "status":
			if adminToken != "" && r.Header.Get(adminTokenHeader) != adminToken {
				writeError(w, http.StatusForbidden, "Admin token required")
				return
			}

			var req updateBookingStatusRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, "Invalid request body")
				return
			}

			updated, err := svc.UpdateBookingStatus(r.Context(), id, req.StatusID)
			if err != nil {
				writeDomainError(w, logger, err)
				return
			}
			writeJSON(w, http.StatusOK, envelope{
				Success: true,
				Message: "Booking status updated successfully",
				Data:    newBookingResponse(updated),
			})
		case r.Method == http.MethodPut && action == "cancel":
			if err := svc.CancelBooking(r.Context(), id); err != nil {
				writeDomainError(w, logger, err)
				return
			}
			writeJSON(w, http.StatusOK, envelope{
				Success: true,
				Message: fmt.Sprintf("Booking with ID %d has been cancelled", id),
			})
		default:
			writeRouteNotFound(w, r)
		}
	}
}

func parseBookingItemPath(path string) (id, action string, ok bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 3 || len(parts) > 4 {
		return "", "", false
	}
	if parts[0] != "api" || parts[1] != "bookings" || parts[2] == "" {
		return "", "", false
	}
	if len(parts) == 3 {
		return parts[2], "", true
	}
	if parts[3] != "status" && parts[3] != "cancel" {
		return "", "", false
	}
	return parts[2], parts[3], true
}

type createBookingRequest struct {
	ServiceID   int64   `json:"service_id"`
	BookingDate string  `json:"booking_date"`
	BookingTime string  `json:"booking_time"`
	Notes       *string `json:"notes"`
}

type updateBookingStatusRequest struct {
	StatusID int64 `json:"status_id"`
}

type bookingResponse struct {
	ID           int64     `json:"id"`
	BookingDate  string    `json:"booking_date"`
	BookingTime  string    `json:"booking_time"`
	Notes        *string   `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	UserID       int64     `json:"user_id"`
	UserName     string    `json:"user_name"`
	UserEmail    string    `json:"user_email"`
	ServiceID    int64     `json:"service_id"`
	ServiceName  string    `json:"service_name"`
	ServicePrice float64   `json:"service_price"`
	StatusID     int64     `json:"status_id"`
	StatusName   string    `json:"status_name"`
}

func newBookingResponse(b domain.BookingJoined) bookingResponse {
	return bookingResponse{
		ID:           b.ID,
		BookingDate:  b.BookingDate,
		BookingTime:  b.BookingTime,
		Notes:        b.Notes,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
		UserID:       b.UserID,
		UserName:     b.UserName,
		UserEmail:    b.UserEmail,
		ServiceID:    b.ServiceID,
		ServiceName:  b.ServiceName,
		ServicePrice: b.ServicePrice,
		StatusID:     b.StatusID,
		StatusName:   b.StatusName,
	}
}
