package app

import (
	"context"
	"time"

	"github.com/Jav1009/community-service-api/internal/clock"
	"github.com/Jav1009/community-service-api/internal/domain"
	"go.uber.org/zap"
)

type BookingRepository interface {
	ListJoined(ctx context.Context) ([]domain.BookingJoined, error)
	GetJoinedByID(ctx context.Context, id int64) (*domain.BookingJoined, error)
	Create(ctx context.Context, booking domain.Booking) (int64, error)
	ServiceExists(ctx context.Context, serviceID int64) (bool, error)
	GetStatusByName(ctx context.Context, name string) (*domain.BookingStatus, error)
	GetStatusByID(ctx context.Context, id int64) (*domain.BookingStatus, error)
	UpdateStatus(ctx context.Context, bookingID, statusID int64, updatedAt time.Time) (bool, error)
	TransitionStatus(ctx context.Context, bookingID int64, fromName, toName string, updatedAt time.Time) (bool, error)
}

// BookingService manages the booking lifecycle: creation, the administrative
// status override, and the guarded cancel transition.
type BookingService struct {
	repo   BookingRepository
	clock  clock.Clock
	logger *zap.Logger
}

func NewBookingService(repo BookingRepository, clk clock.Clock, logger *zap.Logger) *BookingService {
	return &BookingService{
		repo:   repo,
		clock:  clk,
		logger: logger,
	}
}

func (s *BookingService) ListBookings(ctx context.Context) ([]domain.BookingJoined, error) {
	return s.repo.ListJoined(ctx)
}

func (s *BookingService) GetBooking(ctx context.Context, id int64) (domain.BookingJoined, error) {
	booking, err := s.repo.GetJoinedByID(ctx, id)
	if err != nil {
		return domain.BookingJoined{}, err
	}
	if booking == nil {
		return domain.BookingJoined{}, domain.NotFoundf("Booking with ID %d not found", id)
	}
	return *booking, nil
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// CreateBookingInput carries the fields for a new booking. UserID is the
// caller identity, supplied by the transport layer until an authentication
// layer provides it per request.
type CreateBookingInput struct {
	UserID      int64
	ServiceID   int64
	BookingDate string
	BookingTime string
	Notes       *string
}

func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (domain.BookingJoined, error) {
	if in.ServiceID == 0 || in.BookingDate == "" || in.BookingTime == "" {
		return domain.BookingJoined{}, domain.InvalidInputf("service_id, booking_date, and booking_time are required")
	}
	if _, err := time.Parse(dateLayout, in.BookingDate); err != nil {
		return domain.BookingJoined{}, domain.InvalidInputf("booking_date must be in YYYY-MM-DD format")
	}
	if !validBookingTime(in.BookingTime) {
		return domain.BookingJoined{}, domain.InvalidInputf("booking_time must be in HH:MM format")
	}

	exists, err := s.repo.ServiceExists(ctx, in.ServiceID)
	if err != nil {
		return domain.BookingJoined{}, err
	}
	if !exists {
		return domain.BookingJoined{}, domain.NotFoundf("Service with ID %d not found", in.ServiceID)
	}

	// The Scheduled row is seeded by migrations; its absence is a broken
	// deployment, not bad input.
	scheduled, err := s.repo.GetStatusByName(ctx, domain.StatusScheduled)
	if err != nil {
		return domain.BookingJoined{}, err
	}
	if scheduled == nil {
		return domain.BookingJoined{}, domain.Internalf("booking status %q is not configured", domain.StatusScheduled)
	}

	id, err := s.repo.Create(ctx, domain.Booking{
		UserID:      in.UserID,
		ServiceID:   in.ServiceID,
		StatusID:    scheduled.ID,
		BookingDate: in.BookingDate,
		BookingTime: in.BookingTime,
		Notes:       in.Notes,
	})
	if err != nil {
		return domain.BookingJoined{}, err
	}

	created, err := s.repo.GetJoinedByID(ctx, id)
	if err != nil {
		return domain.BookingJoined{}, err
	}
	if created == nil {
		return domain.BookingJoined{}, domain.Internalf("booking %d missing after create", id)
	}

	s.logger.Info("booking created",
		zap.Int64("booking_id", id),
		zap.Int64("user_id", in.UserID),
		zap.Int64("service_id", in.ServiceID))
	return *created, nil
}

// UpdateBookingStatus is the administrative override: any status may move to
// any other status through this path.
func (s *BookingService) UpdateBookingStatus(ctx context.Context, id, statusID int64) (domain.BookingJoined, error) {
	if statusID == 0 {
		return domain.BookingJoined{}, domain.InvalidInputf("status_id is required")
	}

	existing, err := s.repo.GetJoinedByID(ctx, id)
	if err != nil {
		return domain.BookingJoined{}, err
	}
	if existing == nil {
		return domain.BookingJoined{}, domain.NotFoundf("Booking with ID %d not found", id)
	}

	status, err := s.repo.GetStatusByID(ctx, statusID)
	if err != nil {
		return domain.BookingJoined{}, err
	}
	if status == nil {
		return domain.BookingJoined{}, domain.NotFoundf("Booking status with ID %d not found", statusID)
	}

	changed, err := s.repo.UpdateStatus(ctx, id, statusID, s.clock.Now())
	if err != nil {
		return domain.BookingJoined{}, err
	}
	if !changed {
		return domain.BookingJoined{}, domain.NotFoundf("Booking with ID %d not found", id)
	}

	updated, err := s.repo.GetJoinedByID(ctx, id)
	if err != nil {
		return domain.BookingJoined{}, err
	}
	if updated == nil {
		return domain.BookingJoined{}, domain.NotFoundf("Booking with ID %d not found", id)
	}

	s.logger.Info("booking status updated",
		zap.Int64("booking_id", id),
		zap.String("status", status.StatusName))
	return *updated, nil
}

// CancelBooking moves a Scheduled booking to Cancelled. The transition is a
// single conditional update, so two concurrent cancels cannot both pass the
// Scheduled guard.
func (s *BookingService) CancelBooking(ctx context.Context, id int64) error {
	changed, err := s.repo.TransitionStatus(ctx, id, domain.StatusScheduled, domain.StatusCancelled, s.clock.Now())
	if err != nil {
		return err
	}
	if changed {
		s.logger.Info("booking cancelled", zap.Int64("booking_id", id))
		return nil
	}

	// Nothing changed: missing booking, wrong current status, or missing
	// Cancelled seed row. Re-read to say which.
	booking, err := s.repo.GetJoinedByID(ctx, id)
	if err != nil {
		return err
	}
	if booking == nil {
		return domain.NotFoundf("Booking with ID %d not found", id)
	}
	if booking.StatusName == domain.StatusScheduled {
		return domain.Internalf("booking status %q is not configured", domain.StatusCancelled)
	}
	return domain.InvalidOperationf("Only scheduled bookings can be cancelled. Current status: %s", booking.StatusName)
}

func validBookingTime(value string) bool {
	if _, err := time.Parse(timeLayout, value); err == nil {
		return true
	}
	_, err := time.Parse(timeLayout+":05", value)
	return err == nil
}
