package domain

import "time"

// Well-known booking statuses. The booking_status table may hold more, but
// these two drive the lifecycle: new bookings start Scheduled and only
// Scheduled bookings may be cancelled.
const (
	StatusScheduled = "Scheduled"
	StatusCancelled = "Cancelled"
)

// BookingStatus is a named lifecycle state from the booking_status lookup
// table.
type BookingStatus struct {
	ID         int64
	StatusName string
}

// User owns bookings. Users are referenced, not managed, by this service.
type User struct {
	ID    int64
	Name  string
	Email string
}

// Booking is a scheduled appointment linking a user to a service. Dates and
// times travel as strings (YYYY-MM-DD, HH:MM[:SS]).
type Booking struct {
	ID          int64
	UserID      int64
	ServiceID   int64
	StatusID    int64
	BookingDate string
	BookingTime string
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BookingJoined is a booking enriched with user, service and status display
// fields for responses.
type BookingJoined struct {
	ID           int64
	BookingDate  string
	BookingTime  string
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	UserID       int64
	UserName     string
	UserEmail    string
	ServiceID    int64
	ServiceName  string
	ServicePrice float64
	StatusID     int64
	StatusName   string
}
