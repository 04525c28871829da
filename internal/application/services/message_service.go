package services

import (
	"context"
	"fmt"

	"github.com/padelpro/academy/internal/domain/entities"
	"github.com/padelpro/academy/internal/infrastructure/logger"
	"github.com/padelpro/academy/internal/ports"
)

// MessageService handles contact form submissions and their triage
type MessageService struct {
	messageRepo ports.MessageRepository
	logger      *logger.Logger
}

// NewMessageService creates a new message service
func NewMessageService(messageRepo ports.MessageRepository, logger *logger.Logger) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		logger:      logger,
	}
}

// Submit files a message from the public contact form
func (s *MessageService) Submit(ctx context.Context, req ports.ContactMessageRequest) (*entities.ContactMessage, error) {
	message := &entities.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}

	saved, err := s.messageRepo.Save(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}

	s.logger.Info("Contact message received", "message_id", saved.ID, "subject", saved.Subject)
	return saved, nil
}

// ListMessages returns every message
func (s *MessageService) ListMessages(ctx context.Context) []entities.ContactMessage {
	return s.messageRepo.GetAll(ctx)
}

// ListUnread returns messages nobody has opened yet
func (s *MessageService) ListUnread(ctx context.Context) []entities.ContactMessage {
	return s.messageRepo.GetUnread(ctx)
}

// GetMessage retrieves a message by ID
func (s *MessageService) GetMessage(ctx context.Context, id string) (*entities.ContactMessage, error) {
	message := s.messageRepo.GetByID(ctx, id)
	if message == nil {
		return nil, entities.ErrMessageNotFound
	}
	return message, nil
}

// MarkRead records that an admin opened the message
func (s *MessageService) MarkRead(ctx context.Context, id string) (*entities.ContactMessage, error) {
	return s.messageRepo.MarkRead(ctx, id)
}

// MarkReplied records that an admin answered the message
func (s *MessageService) MarkReplied(ctx context.Context, id string) (*entities.ContactMessage, error) {
	message, err := s.messageRepo.MarkReplied(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Contact message replied", "message_id", id)
	return message, nil
}

// DeleteMessage removes a message
func (s *MessageService) DeleteMessage(ctx context.Context, id string) error {
	removed, err := s.messageRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	if !removed {
		return entities.ErrMessageNotFound
	}
	s.logger.Info("Contact message deleted", "message_id", id)
	return nil
}
