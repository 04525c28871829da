package ports

import (
	"github.com/padelpro/academy/internal/domain/entities"
)

// Request/response types shared between the HTTP adapters and services.

// LoginRequest carries back-office credentials
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned after a successful login
type AuthResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	ExpiresIn   int64          `json:"expires_in"`
	User        *entities.User `json:"user"`
}

// Claims are the validated fields extracted from an access token
type Claims struct {
	UserID string
	Email  string
	Role   entities.UserRole
}

// RegisterStudentRequest is the public registration form payload
type RegisterStudentRequest struct {
	Name          string   `json:"name" validate:"required"`
	Email         string   `json:"email" validate:"required,email"`
	Phone         string   `json:"phone" validate:"required"`
	BirthDate     string   `json:"birthDate"`
	Level         string   `json:"level" validate:"required,oneof=beginner intermediate advanced professional"`
	Experience    string   `json:"experience"`
	PreferredDays []string `json:"preferredDays"`
	PreferredTime string   `json:"preferredTime"`
	Comments      string   `json:"comments"`
}

// CreateBookingRequest reserves a court slot with a teacher
type CreateBookingRequest struct {
	StudentID   string `json:"studentId" validate:"required"`
	StudentName string `json:"studentName"`
	TeacherID   string `json:"teacherId" validate:"required"`
	TeacherName string `json:"teacherName"`
	Date        string `json:"date" validate:"required"`
	Time        string `json:"time" validate:"required"`
	Court       string `json:"court" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=individual group"`
}

// ContactMessageRequest is the public contact form payload
type ContactMessageRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// CollectionCounts breaks a collection down for the debug dump
type CollectionCounts struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status,omitempty"`
}

// DebugSummary reports per-collection record counts so drift between the
// admin UI and the persisted state can be diagnosed.
type DebugSummary struct {
	Teachers CollectionCounts `json:"teachers"`
	Students CollectionCounts `json:"students"`
	Events   CollectionCounts `json:"events"`
	Bookings CollectionCounts `json:"bookings"`
	Messages CollectionCounts `json:"messages"`
	Blogs    CollectionCounts `json:"blogs"`
}
