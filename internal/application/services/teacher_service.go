package services

import (
	"context"
	"fmt"

	"github.com/padelpro/academy/internal/domain/entities"
	"github.com/padelpro/academy/internal/infrastructure/logger"
	"github.com/padelpro/academy/internal/ports"
)

// TeacherService handles coaching staff operations
type TeacherService struct {
	teacherRepo ports.TeacherRepository
	logger      *logger.Logger
}

// NewTeacherService creates a new teacher service
func NewTeacherService(teacherRepo ports.TeacherRepository, logger *logger.Logger) *TeacherService {
	return &TeacherService{
		teacherRepo: teacherRepo,
		logger:      logger,
	}
}

// ListTeachers returns the full coaching staff
func (s *TeacherService) ListTeachers(ctx context.Context) []entities.Teacher {
	return s.teacherRepo.GetAll(ctx)
}

// GetTeacher retrieves a teacher by ID
func (s *TeacherService) GetTeacher(ctx context.Context, id string) (*entities.Teacher, error) {
	teacher := s.teacherRepo.GetByID(ctx, id)
	if teacher == nil {
		return nil, entities.ErrTeacherNotFound
	}
	return teacher, nil
}

// SaveTeacher creates or updates a teacher profile
func (s *TeacherService) SaveTeacher(ctx context.Context, teacher *entities.Teacher) (*entities.Teacher, error) {
	saved, err := s.teacherRepo.Save(ctx, teacher)
	if err != nil {
		return nil, fmt.Errorf("failed to save teacher: %w", err)
	}
	s.logger.Info("Teacher saved", "teacher_id", saved.ID, "name", saved.Name)
	return saved, nil
}

// DeleteTeacher removes a teacher from the staff
func (s *TeacherService) DeleteTeacher(ctx context.Context, id string) error {
	removed, err := s.teacherRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete teacher: %w", err)
	}
	if !removed {
		return entities.ErrTeacherNotFound
	}
	s.logger.Info("Teacher deleted", "teacher_id", id)
	return nil
}
