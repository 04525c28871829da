package entities

import (
	"errors"
	"time"
)

// Common errors
var (
	ErrTeacherNotFound    = errors.New("teacher not found")
	ErrStudentNotFound    = errors.New("student not found")
	ErrEventNotFound      = errors.New("event not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrMessageNotFound    = errors.New("message not found")
	ErrBlogPostNotFound   = errors.New("blog post not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrCourtUnavailable   = errors.New("court already booked for that slot")
	ErrAlreadyRegistered  = errors.New("already registered for event")
)

// Enums and types
type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"
	UserRoleTeacher UserRole = "teacher"
	UserRoleStudent UserRole = "student"
)

type StudentLevel string

const (
	StudentLevelBeginner     StudentLevel = "beginner"
	StudentLevelIntermediate StudentLevel = "intermediate"
	StudentLevelAdvanced     StudentLevel = "advanced"
	StudentLevelProfessional StudentLevel = "professional"
)

// StudentStatus is the moderation state of a registration. The zero value
// StudentStatusUnspecified exists for records written before the moderation
// workflow was introduced; public-facing filters treat it as approved and a
// load-time migration normalizes it away.
type StudentStatus string

const (
	StudentStatusUnspecified StudentStatus = ""
	StudentStatusPending     StudentStatus = "pending"
	StudentStatusApproved    StudentStatus = "approved"
	StudentStatusRejected    StudentStatus = "rejected"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type BookingType string

const (
	BookingTypeIndividual BookingType = "individual"
	BookingTypeGroup      BookingType = "group"
)

type EventType string

const (
	EventTypeTournament EventType = "tournament"
	EventTypeClinic     EventType = "clinic"
	EventTypeLeague     EventType = "league"
	EventTypeOpenDay    EventType = "open_day"
)

// Teacher represents an academy coach shown on the public site
type Teacher struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Image       string   `json:"image"`
	Role        string   `json:"role"`
	Specialties []string `json:"specialties"`
	Experience  string   `json:"experience"`
	Rating      float64  `json:"rating"`
	Bio         string   `json:"bio"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	CreatedAt   string   `json:"createdAt"`
}

// Student represents a registration submitted through the public form
type Student struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	BirthDate     string        `json:"birthDate"`
	Level         StudentLevel  `json:"level"`
	Experience    string        `json:"experience"`
	PreferredDays []string      `json:"preferredDays"`
	PreferredTime string        `json:"preferredTime"`
	Comments      string        `json:"comments,omitempty"`
	Status        StudentStatus `json:"status,omitempty"`
	CreatedAt     string        `json:"createdAt"`
}

// Event represents a tournament, clinic, league or open day
type Event struct {
	ID                   string    `json:"id"`
	Title                string    `json:"title"`
	Image                string    `json:"image"`
	Date                 string    `json:"date"`
	Time                 string    `json:"time"`
	Location             string    `json:"location"`
	Type                 EventType `json:"type"`
	Category             string    `json:"category"`
	Participants         string    `json:"participants"`
	Price                string    `json:"price"`
	Description          string    `json:"description"`
	RegistrationDeadline string    `json:"registration_deadline"`
	Registrations        []string  `json:"registrations"`
	CreatedAt            string    `json:"createdAt"`
}

// Booking represents a court reservation with a teacher
type Booking struct {
	ID          string        `json:"id"`
	StudentID   string        `json:"studentId"`
	StudentName string        `json:"studentName"`
	TeacherID   string        `json:"teacherId"`
	TeacherName string        `json:"teacherName"`
	Date        string        `json:"date"`
	Time        string        `json:"time"`
	Court       string        `json:"court"`
	Type        BookingType   `json:"type"`
	Status      BookingStatus `json:"status"`
	CreatedAt   string        `json:"createdAt"`
}

// ContactMessage represents a message sent through the contact form.
// Read and Replied are independent flags, not a single state field: a
// message can be read without being replied. The admin UI marks a message
// read before offering the reply action; the store does not enforce that.
type ContactMessage struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Read      bool   `json:"read"`
	Replied   bool   `json:"replied"`
	CreatedAt string `json:"createdAt"`
}

// BlogPost represents an article on the public blog
type BlogPost struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Excerpt   string `json:"excerpt"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	Date      string `json:"date"`
	Image     string `json:"image"`
	Published bool   `json:"published"`
}

// User represents an account that can sign in to the back office
type User struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	CreatedAt    string   `json:"createdAt"`
}

// Session is the single current-user record written at login and cleared at
// logout. Nothing else writes it.
type Session struct {
	UserID    string   `json:"userId"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Role      UserRole `json:"role"`
	IssuedAt  string   `json:"issuedAt"`
	ExpiresAt string   `json:"expiresAt"`
}

// Now returns the creation timestamp format used across all collections.
func Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Business logic methods for Student

// EffectiveStatus maps the legacy unspecified state onto approved.
func (s *Student) EffectiveStatus() StudentStatus {
	if s.Status == StudentStatusUnspecified {
		return StudentStatusApproved
	}
	return s.Status
}

func (s *Student) IsPending() bool {
	return s.Status == StudentStatusPending
}

func (s *Student) IsApproved() bool {
	return s.EffectiveStatus() == StudentStatusApproved
}

// Business logic methods for Event

func (e *Event) IsRegistered(userID string) bool {
	for _, id := range e.Registrations {
		if id == userID {
			return true
		}
	}
	return false
}

// Business logic methods for Booking

// ConflictsWith reports whether two bookings compete for the same court slot.
// Cancelled bookings release their slot.
func (b *Booking) ConflictsWith(other *Booking) bool {
	if b.Status == BookingStatusCancelled || other.Status == BookingStatusCancelled {
		return false
	}
	return b.Date == other.Date && b.Time == other.Time && b.Court == other.Court
}

func (b *Booking) IsFinal() bool {
	return b.Status == BookingStatusConfirmed || b.Status == BookingStatusCancelled
}

// Business logic methods for User

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// Utility methods

func (ur UserRole) IsValid() bool {
	switch ur {
	case UserRoleAdmin, UserRoleTeacher, UserRoleStudent:
		return true
	default:
		return false
	}
}

func (sl StudentLevel) IsValid() bool {
	switch sl {
	case StudentLevelBeginner, StudentLevelIntermediate, StudentLevelAdvanced, StudentLevelProfessional:
		return true
	default:
		return false
	}
}

func (ss StudentStatus) IsValid() bool {
	switch ss {
	case StudentStatusUnspecified, StudentStatusPending, StudentStatusApproved, StudentStatusRejected:
		return true
	default:
		return false
	}
}

// IsDecision reports whether the status is a moderation outcome an admin can
// apply to a pending registration.
func (ss StudentStatus) IsDecision() bool {
	return ss == StudentStatusApproved || ss == StudentStatusRejected
}

func (bs BookingStatus) IsValid() bool {
	switch bs {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	default:
		return false
	}
}

func (bt BookingType) IsValid() bool {
	switch bt {
	case BookingTypeIndividual, BookingTypeGroup:
		return true
	default:
		return false
	}
}

func (et EventType) IsValid() bool {
	switch et {
	case EventTypeTournament, EventTypeClinic, EventTypeLeague, EventTypeOpenDay:
		return true
	default:
		return false
	}
}
