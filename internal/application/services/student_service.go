package services

import (
	"context"
	"fmt"

	"github.com/padelpro/academy/internal/domain/entities"
	"github.com/padelpro/academy/internal/infrastructure/logger"
	"github.com/padelpro/academy/internal/ports"
)

// StudentService handles registrations and their moderation workflow
type StudentService struct {
	studentRepo ports.StudentRepository
	logger      *logger.Logger
}

// NewStudentService creates a new student service
func NewStudentService(studentRepo ports.StudentRepository, logger *logger.Logger) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// Register files a new registration from the public form. Every new
// registration starts pending and waits for an admin decision.
func (s *StudentService) Register(ctx context.Context, req ports.RegisterStudentRequest) (*entities.Student, error) {
	if existing := s.studentRepo.GetByEmail(ctx, req.Email); existing != nil {
		return nil, entities.ErrEmailTaken
	}

	student := &entities.Student{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		BirthDate:     req.BirthDate,
		Level:         entities.StudentLevel(req.Level),
		Experience:    req.Experience,
		PreferredDays: req.PreferredDays,
		PreferredTime: req.PreferredTime,
		Comments:      req.Comments,
		Status:        entities.StudentStatusPending,
	}

	saved, err := s.studentRepo.Save(ctx, student)
	if err != nil {
		return nil, fmt.Errorf("failed to save registration: %w", err)
	}

	s.logger.Info("Student registered", "student_id", saved.ID, "email", saved.Email)
	return saved, nil
}

// ListStudents returns every registration
func (s *StudentService) ListStudents(ctx context.Context) []entities.Student {
	return s.studentRepo.GetAll(ctx)
}

// ListPending returns registrations waiting for a decision
func (s *StudentService) ListPending(ctx context.Context) []entities.Student {
	return s.studentRepo.GetPending(ctx)
}

// ListApproved returns registrations accepted into the academy
func (s *StudentService) ListApproved(ctx context.Context) []entities.Student {
	return s.studentRepo.GetApproved(ctx)
}

// GetStudent retrieves a student by ID
func (s *StudentService) GetStudent(ctx context.Context, id string) (*entities.Student, error) {
	student := s.studentRepo.GetByID(ctx, id)
	if student == nil {
		return nil, entities.ErrStudentNotFound
	}
	return student, nil
}

// Decide applies an admin decision to a registration. Only approved and
// rejected are decisions; a registration cannot be put back to pending.
func (s *StudentService) Decide(ctx context.Context, id string, status entities.StudentStatus) (*entities.Student, error) {
	if !status.IsDecision() {
		return nil, entities.ErrInvalidStatus
	}

	updated, err := s.studentRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Registration decided", "student_id", id, "status", status)
	return updated, nil
}

// SaveStudent creates or updates a student record from the back office
func (s *StudentService) SaveStudent(ctx context.Context, student *entities.Student) (*entities.Student, error) {
	saved, err := s.studentRepo.Save(ctx, student)
	if err != nil {
		return nil, fmt.Errorf("failed to save student: %w", err)
	}
	s.logger.Info("Student saved", "student_id", saved.ID)
	return saved, nil
}

// DeleteStudent removes a registration
func (s *StudentService) DeleteStudent(ctx context.Context, id string) error {
	removed, err := s.studentRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	if !removed {
		return entities.ErrStudentNotFound
	}
	s.logger.Info("Student deleted", "student_id", id)
	return nil
}
