package ports

import (
	"context"

	"github.com/padelpro/academy/internal/domain/entities"
)

// Repository contracts over the key-value collections. Reads never fail:
// the storage tier degrades to seed data when the backing store is
// unavailable, so GetAll and the lookup methods return plain snapshots and
// a nil pointer stands for "not found". Only writes surface errors.

// TeacherRepository defines operations on the teachers collection
type TeacherRepository interface {
	GetAll(ctx context.Context) []entities.Teacher
	GetByID(ctx context.Context, id string) *entities.Teacher
	Save(ctx context.Context, teacher *entities.Teacher) (*entities.Teacher, error)
	Delete(ctx context.Context, id string) (bool, error)
	Reset(ctx context.Context) error
}

// StudentRepository defines operations on the students collection
type StudentRepository interface {
	GetAll(ctx context.Context) []entities.Student
	GetByID(ctx context.Context, id string) *entities.Student
	GetByEmail(ctx context.Context, email string) *entities.Student
	GetPending(ctx context.Context) []entities.Student
	GetApproved(ctx context.Context) []entities.Student
	Save(ctx context.Context, student *entities.Student) (*entities.Student, error)
	UpdateStatus(ctx context.Context, id string, status entities.StudentStatus) (*entities.Student, error)
	// Normalize rewrites records that predate the moderation workflow,
	// stamping their implicit approved status. Returns how many records
	// changed.
	Normalize(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) (bool, error)
	Reset(ctx context.Context) error
}

// EventRepository defines operations on the events collection
type EventRepository interface {
	GetAll(ctx context.Context) []entities.Event
	GetByID(ctx context.Context, id string) *entities.Event
	Save(ctx context.Context, event *entities.Event) (*entities.Event, error)
	Delete(ctx context.Context, id string) (bool, error)
	// Register adds userID to the event's registrations exactly once;
	// it reports false when the event is missing or userID was already
	// registered.
	Register(ctx context.Context, eventID, userID string) (bool, error)
	Unregister(ctx context.Context, eventID, userID string) (bool, error)
	Reset(ctx context.Context) error
}

// BookingRepository defines operations on the bookings collection
type BookingRepository interface {
	GetAll(ctx context.Context) []entities.Booking
	GetByID(ctx context.Context, id string) *entities.Booking
	GetByDate(ctx context.Context, date string) []entities.Booking
	GetByStudentID(ctx context.Context, studentID string) []entities.Booking
	GetByTeacherID(ctx context.Context, teacherID string) []entities.Booking
	Save(ctx context.Context, booking *entities.Booking) (*entities.Booking, error)
	UpdateStatus(ctx context.Context, id string, status entities.BookingStatus) (*entities.Booking, error)
	Delete(ctx context.Context, id string) (bool, error)
	Reset(ctx context.Context) error
}

// MessageRepository defines operations on the contact messages collection
type MessageRepository interface {
	GetAll(ctx context.Context) []entities.ContactMessage
	GetByID(ctx context.Context, id string) *entities.ContactMessage
	GetUnread(ctx context.Context) []entities.ContactMessage
	Save(ctx context.Context, message *entities.ContactMessage) (*entities.ContactMessage, error)
	MarkRead(ctx context.Context, id string) (*entities.ContactMessage, error)
	MarkReplied(ctx context.Context, id string) (*entities.ContactMessage, error)
	Delete(ctx context.Context, id string) (bool, error)
	Reset(ctx context.Context) error
}

// BlogRepository defines operations on the blog posts collection
type BlogRepository interface {
	GetAll(ctx context.Context) []entities.BlogPost
	GetPublished(ctx context.Context) []entities.BlogPost
	GetByID(ctx context.Context, id string) *entities.BlogPost
	Save(ctx context.Context, post *entities.BlogPost) (*entities.BlogPost, error)
	Delete(ctx context.Context, id string) (bool, error)
	Reset(ctx context.Context) error
}

// UserRepository defines operations on the back-office accounts collection
type UserRepository interface {
	GetAll(ctx context.Context) []entities.User
	GetByID(ctx context.Context, id string) *entities.User
	GetByEmail(ctx context.Context, email string) *entities.User
	Save(ctx context.Context, user *entities.User) (*entities.User, error)
	Delete(ctx context.Context, id string) (bool, error)
	Reset(ctx context.Context) error
}

// SessionRepository owns the single current-user record. Login writes it,
// logout clears it, nothing else touches it.
type SessionRepository interface {
	Get(ctx context.Context) *entities.Session
	Put(ctx context.Context, session *entities.Session) error
	Clear(ctx context.Context) error
}
