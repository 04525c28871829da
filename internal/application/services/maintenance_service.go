package services

import (
	"context"
	"fmt"

	"github.com/padelpro/academy/internal/infrastructure/logger"
	"github.com/padelpro/academy/internal/ports"
)

// MaintenanceService backs the admin debug tools: a per-collection record
// count dump for diagnosing drift between the UI and the store, and a full
// reset that drops every collection so the next read reseeds it.
type MaintenanceService struct {
	teacherRepo ports.TeacherRepository
	studentRepo ports.StudentRepository
	eventRepo   ports.EventRepository
	bookingRepo ports.BookingRepository
	messageRepo ports.MessageRepository
	blogRepo    ports.BlogRepository
	sessionRepo ports.SessionRepository
	logger      *logger.Logger
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(
	teacherRepo ports.TeacherRepository,
	studentRepo ports.StudentRepository,
	eventRepo ports.EventRepository,
	bookingRepo ports.BookingRepository,
	messageRepo ports.MessageRepository,
	blogRepo ports.BlogRepository,
	sessionRepo ports.SessionRepository,
	logger *logger.Logger,
) *MaintenanceService {
	return &MaintenanceService{
		teacherRepo: teacherRepo,
		studentRepo: studentRepo,
		eventRepo:   eventRepo,
		bookingRepo: bookingRepo,
		messageRepo: messageRepo,
		blogRepo:    blogRepo,
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// Dump returns record counts per collection, broken down by status where
// the collection has one.
func (s *MaintenanceService) Dump(ctx context.Context) *ports.DebugSummary {
	summary := &ports.DebugSummary{}

	summary.Teachers.Total = len(s.teacherRepo.GetAll(ctx))

	students := s.studentRepo.GetAll(ctx)
	summary.Students.Total = len(students)
	summary.Students.ByStatus = make(map[string]int)
	for _, student := range students {
		summary.Students.ByStatus[string(student.EffectiveStatus())]++
	}

	events := s.eventRepo.GetAll(ctx)
	summary.Events.Total = len(events)
	registrations := 0
	for _, event := range events {
		registrations += len(event.Registrations)
	}
	summary.Events.ByStatus = map[string]int{"registrations": registrations}

	bookings := s.bookingRepo.GetAll(ctx)
	summary.Bookings.Total = len(bookings)
	summary.Bookings.ByStatus = make(map[string]int)
	for _, booking := range bookings {
		summary.Bookings.ByStatus[string(booking.Status)]++
	}

	messages := s.messageRepo.GetAll(ctx)
	summary.Messages.Total = len(messages)
	summary.Messages.ByStatus = make(map[string]int)
	for _, message := range messages {
		switch {
		case message.Replied:
			summary.Messages.ByStatus["replied"]++
		case message.Read:
			summary.Messages.ByStatus["read"]++
		default:
			summary.Messages.ByStatus["unread"]++
		}
	}

	blogs := s.blogRepo.GetAll(ctx)
	summary.Blogs.Total = len(blogs)
	published := 0
	for _, post := range blogs {
		if post.Published {
			published++
		}
	}
	summary.Blogs.ByStatus = map[string]int{"published": published, "draft": len(blogs) - published}

	return summary
}

// ResetAll drops every collection and the current session. The next read of
// each collection reseeds it with the sample data.
func (s *MaintenanceService) ResetAll(ctx context.Context) error {
	resets := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"teachers", s.teacherRepo.Reset},
		{"students", s.studentRepo.Reset},
		{"events", s.eventRepo.Reset},
		{"bookings", s.bookingRepo.Reset},
		{"messages", s.messageRepo.Reset},
		{"blogs", s.blogRepo.Reset},
		{"session", s.sessionRepo.Clear},
	}

	for _, reset := range resets {
		if err := reset.fn(ctx); err != nil {
			return fmt.Errorf("reset %s: %w", reset.name, err)
		}
	}

	s.logger.Warn("All collections reset to seed data")
	return nil
}
