package services

import (
	"context"
	"fmt"

	"github.com/padelpro/academy/internal/domain/entities"
	"github.com/padelpro/academy/internal/infrastructure/logger"
	"github.com/padelpro/academy/internal/ports"
)

// EventService handles tournaments, clinics and their registrations
type EventService struct {
	eventRepo   ports.EventRepository
	studentRepo ports.StudentRepository
	logger      *logger.Logger
}

// NewEventService creates a new event service
func NewEventService(eventRepo ports.EventRepository, studentRepo ports.StudentRepository, logger *logger.Logger) *EventService {
	return &EventService{
		eventRepo:   eventRepo,
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// ListEvents returns every event
func (s *EventService) ListEvents(ctx context.Context) []entities.Event {
	return s.eventRepo.GetAll(ctx)
}

// GetEvent retrieves an event by ID
func (s *EventService) GetEvent(ctx context.Context, id string) (*entities.Event, error) {
	event := s.eventRepo.GetByID(ctx, id)
	if event == nil {
		return nil, entities.ErrEventNotFound
	}
	return event, nil
}

// SaveEvent creates or updates an event
func (s *EventService) SaveEvent(ctx context.Context, event *entities.Event) (*entities.Event, error) {
	if event.Type != "" && !event.Type.IsValid() {
		return nil, fmt.Errorf("unknown event type %q", event.Type)
	}
	saved, err := s.eventRepo.Save(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("failed to save event: %w", err)
	}
	s.logger.Info("Event saved", "event_id", saved.ID, "title", saved.Title)
	return saved, nil
}

// RegisterForEvent signs a student up for an event. Repeating the call for
// the same student reports the registration that already exists.
func (s *EventService) RegisterForEvent(ctx context.Context, eventID, studentID string) error {
	if student := s.studentRepo.GetByID(ctx, studentID); student == nil {
		return entities.ErrStudentNotFound
	}

	added, err := s.eventRepo.Register(ctx, eventID, studentID)
	if err != nil {
		return err
	}
	if !added {
		return entities.ErrAlreadyRegistered
	}

	s.logger.Info("Event registration added", "event_id", eventID, "student_id", studentID)
	return nil
}

// UnregisterFromEvent removes a student from an event's registration list
func (s *EventService) UnregisterFromEvent(ctx context.Context, eventID, studentID string) error {
	removed, err := s.eventRepo.Unregister(ctx, eventID, studentID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("student %s is not registered for event %s", studentID, eventID)
	}

	s.logger.Info("Event registration removed", "event_id", eventID, "student_id", studentID)
	return nil
}

// DeleteEvent removes an event
func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	removed, err := s.eventRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if !removed {
		return entities.ErrEventNotFound
	}
	s.logger.Info("Event deleted", "event_id", id)
	return nil
}
