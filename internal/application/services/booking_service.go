package services

import (
	"context"
	"fmt"

	"github.com/padelpro/academy/internal/domain/entities"
	"github.com/padelpro/academy/internal/infrastructure/logger"
	"github.com/padelpro/academy/internal/ports"
)

// BookingService handles court reservations
type BookingService struct {
	bookingRepo ports.BookingRepository
	studentRepo ports.StudentRepository
	teacherRepo ports.TeacherRepository
	logger      *logger.Logger
}

// NewBookingService creates a new booking service
func NewBookingService(bookingRepo ports.BookingRepository, studentRepo ports.StudentRepository, teacherRepo ports.TeacherRepository, logger *logger.Logger) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		studentRepo: studentRepo,
		teacherRepo: teacherRepo,
		logger:      logger,
	}
}

// ListBookings returns every reservation
func (s *BookingService) ListBookings(ctx context.Context) []entities.Booking {
	return s.bookingRepo.GetAll(ctx)
}

// GetBooking retrieves a booking by ID
func (s *BookingService) GetBooking(ctx context.Context, id string) (*entities.Booking, error) {
	booking := s.bookingRepo.GetByID(ctx, id)
	if booking == nil {
		return nil, entities.ErrBookingNotFound
	}
	return booking, nil
}

// ListByDate returns the reservations for one day
func (s *BookingService) ListByDate(ctx context.Context, date string) []entities.Booking {
	return s.bookingRepo.GetByDate(ctx, date)
}

// ListByStudent returns a student's reservations
func (s *BookingService) ListByStudent(ctx context.Context, studentID string) []entities.Booking {
	return s.bookingRepo.GetByStudentID(ctx, studentID)
}

// ListByTeacher returns a teacher's reservations
func (s *BookingService) ListByTeacher(ctx context.Context, teacherID string) []entities.Booking {
	return s.bookingRepo.GetByTeacherID(ctx, teacherID)
}

// CreateBooking reserves a court slot. The slot must be free: an existing
// pending or confirmed booking for the same court, date and time blocks it.
func (s *BookingService) CreateBooking(ctx context.Context, req ports.CreateBookingRequest) (*entities.Booking, error) {
	student := s.studentRepo.GetByID(ctx, req.StudentID)
	if student == nil {
		return nil, entities.ErrStudentNotFound
	}
	teacher := s.teacherRepo.GetByID(ctx, req.TeacherID)
	if teacher == nil {
		return nil, entities.ErrTeacherNotFound
	}

	booking := &entities.Booking{
		StudentID:   student.ID,
		StudentName: student.Name,
		TeacherID:   teacher.ID,
		TeacherName: teacher.Name,
		Date:        req.Date,
		Time:        req.Time,
		Court:       req.Court,
		Type:        entities.BookingType(req.Type),
		Status:      entities.BookingStatusPending,
	}

	for _, existing := range s.bookingRepo.GetByDate(ctx, req.Date) {
		if existing.ConflictsWith(booking) {
			return nil, entities.ErrCourtUnavailable
		}
	}

	saved, err := s.bookingRepo.Save(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	s.logger.Info("Booking created", "booking_id", saved.ID, "court", saved.Court, "date", saved.Date, "time", saved.Time)
	return saved, nil
}

// Confirm marks a pending booking as confirmed
func (s *BookingService) Confirm(ctx context.Context, id string) (*entities.Booking, error) {
	return s.decide(ctx, id, entities.BookingStatusConfirmed)
}

// Cancel cancels a booking and releases its court slot
func (s *BookingService) Cancel(ctx context.Context, id string) (*entities.Booking, error) {
	return s.decide(ctx, id, entities.BookingStatusCancelled)
}

func (s *BookingService) decide(ctx context.Context, id string, status entities.BookingStatus) (*entities.Booking, error) {
	updated, err := s.bookingRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Booking status updated", "booking_id", id, "status", status)
	return updated, nil
}

// DeleteBooking removes a reservation outright
func (s *BookingService) DeleteBooking(ctx context.Context, id string) error {
	removed, err := s.bookingRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	if !removed {
		return entities.ErrBookingNotFound
	}
	s.logger.Info("Booking deleted", "booking_id", id)
	return nil
}
