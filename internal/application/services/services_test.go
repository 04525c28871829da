package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/padelpro/academy/internal/adapters/repository"
	"github.com/padelpro/academy/internal/domain/entities"
	"github.com/padelpro/academy/internal/infrastructure/config"
	"github.com/padelpro/academy/internal/infrastructure/kvstore"
	"github.com/padelpro/academy/internal/infrastructure/logger"
	"github.com/padelpro/academy/internal/ports"
)

type fixtures struct {
	store    kvstore.Store
	teachers ports.TeacherRepository
	students ports.StudentRepository
	events   ports.EventRepository
	bookings ports.BookingRepository
	messages ports.MessageRepository
	blogs    ports.BlogRepository
	sessions ports.SessionRepository
}

func newFixtures() *fixtures {
	store := kvstore.NewMemoryStore()
	log := logger.NewNop()
	return &fixtures{
		store:    store,
		teachers: repository.NewTeacherRepository(store, log, nil),
		students: repository.NewStudentRepository(store, log, nil),
		events:   repository.NewEventRepository(store, log, nil),
		bookings: repository.NewBookingRepository(store, log, nil),
		messages: repository.NewMessageRepository(store, log, nil),
		blogs:    repository.NewBlogRepository(store, log, nil),
		sessions: repository.NewSessionRepository(store, log),
	}
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:    "test-secret",
		ExpiresIn: time.Hour,
		Issuer:    "padelpro-test",
	}
}

func TestStudentServiceRegisterStartsPending(t *testing.T) {
	ctx := context.Background()
	f := newFixtures()
	svc := NewStudentService(f.students, logger.NewNop())

	student, err := svc.Register(ctx, ports.RegisterStudentRequest{
		Name:  "Lucía Fernández",
		Email: "lucia@example.com",
		Phone: "645678901",
		Level: "beginner",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if student.Status != entities.StudentStatusPending {
		t.Fatalf("new registration status = %q, want pending", student.Status)
	}
	if student.ID == "" {
		t.Fatal("registration must get an id")
	}
}

func TestStudentServiceRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixtures()
	svc := NewStudentService(f.students, logger.NewNop())

	// pedro@example.com is in the seed data.
	_, err := svc.Register(ctx, ports.RegisterStudentRequest{
		Name:  "Otro Pedro",
		Email: "PEDRO@example.com",
		Phone: "600000000",
		Level: "beginner",
	})
	if !errors.Is(err, entities.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestStudentServiceDecide(t *testing.T) {
	ctx := context.Background()
	f := newFixtures()
	svc := NewStudentService(f.students, logger.NewNop())

	decided, err := svc.Decide(ctx, "student-2", entities.StudentStatusApproved)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if decided.Status != entities.StudentStatusApproved {
		t.Fatalf("status after decision = %q", decided.Status)
	}

	// Pending is not a decision, and neither is an arbitrary string.
	if _, err := svc.Decide(ctx, "student-3", entities.StudentStatusPending); !errors.Is(err, entities.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus for pending, got %v", err)
	}
	if _, err := svc.Decide(ctx, "student-3", entities.StudentStatus("archived")); !errors.Is(err, entities.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus for unknown status, got %v", err)
	}
}

func TestBookingServiceRejectsTakenSlot(t *testing.T) {
	ctx := context.Background()
	f := newFixtures()
	svc := NewBookingService(f.bookings, f.students, f.teachers, logger.NewNop())

	req := ports.CreateBookingRequest{
		StudentID: "student-1",
		TeacherID: "teacher-1",
		Date:      "20 de Mayo, 2023",
		Time:      "10:00 - 11:00",
		Court:     "Pista 1",
		Type:      "individual",
	}

	first, err := svc.CreateBooking(ctx, req)
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if first.StudentName != "Pedro Sánchez" || first.TeacherName != "Carlos Rodríguez" {
		t.Fatalf("names not resolved from repositories: %+v", first)
	}

	// Same court, date and time is a conflict even for another student.
	req.StudentID = "student-2"
	if _, err := svc.CreateBooking(ctx, req); !errors.Is(err, entities.ErrCourtUnavailable) {
		t.Fatalf("expected ErrCourtUnavailable, got %v", err)
	}

	// A different court at the same hour is fine.
	req.Court = "Pista 2"
	if _, err := svc.CreateBooking(ctx, req); err != nil {
		t.Fatalf("different court rejected: %v", err)
	}
}

func TestBookingServiceCancelReleasesSlot(t *testing.T) {
	ctx := context.Background()
	f := newFixtures()
	svc := NewBookingService(f.bookings, f.students, f.teachers, logger.NewNop())

	req := ports.CreateBookingRequest{
		StudentID: "student-1",
		TeacherID: "teacher-1",
		Date:      "21 de Mayo, 2023",
		Time:      "10:00 - 11:00",
		Court:     "Pista 1",
		Type:      "individual",
	}
	booking, err := svc.CreateBooking(ctx, req)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Cancel(ctx, booking.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// The cancelled booking no longer blocks the slot.
	if _, err := svc.CreateBooking(ctx, req); err != nil {
		t.Fatalf("slot not released after cancel: %v", err)
	}
}

func TestBookingServiceValidatesParticipants(t *testing.T) {
	ctx := context.Background()
	f := newFixtures()
	svc := NewBookingService(f.bookings, f.students, f.teachers, logger.NewNop())

	req := ports.CreateBookingRequest{
		StudentID: "missing",
		TeacherID: "teacher-1",
		Date:      "22 de Mayo, 2023",
		Time:      "10:00 - 11:00",
		Court:     "Pista 1",
		Type:      "individual",
	}
	if _, err := svc.CreateBooking(ctx, req); !errors.Is(err, entities.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}

	req.StudentID = "student-1"
	req.TeacherID = "missing"
	if _, err := svc.CreateBooking(ctx, req); !errors.Is(err, entities.ErrTeacherNotFound) {
		t.Fatalf("expected ErrTeacherNotFound, got %v", err)
	}
}

func TestEventServiceRegistration(t *testing.T) {
	ctx := context.Background()
	f := newFixtures()
	svc := NewEventService(f.events, f.students, logger.NewNop())

	if err := svc.RegisterForEvent(ctx, "event-1", "student-1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.RegisterForEvent(ctx, "event-1", "student-1"); !errors.Is(err, entities.ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}
	if err := svc.RegisterForEvent(ctx, "event-1", "ghost"); !errors.Is(err, entities.ErrStudentNotFound) {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
	if err := svc.RegisterForEvent(ctx, "missing", "student-1"); !errors.Is(err, entities.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}

	if err := svc.UnregisterFromEvent(ctx, "event-1", "student-1"); err != nil {
		t.Fatalf("unregister: %v", err)
	}
}

func TestAuthServiceLoginAndSession(t *testing.T) {
	ctx := context.Background()
	f := newFixtures()
	users := repository.NewUserRepository(f.store, logger.NewNop(), nil)
	svc := NewAuthService(users, f.sessions, testJWTConfig(), logger.NewNop())

	resp, err := svc.Login(ctx, ports.LoginRequest{Email: "hector@padelpro.com", Password: "admin123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" || resp.TokenType != "Bearer" {
		t.Fatalf("bad auth response: %+v", resp)
	}
	if resp.User.PasswordHash != "" {
		t.Fatal("password hash leaked in auth response")
	}

	claims, err := svc.ValidateToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Email != "hector@padelpro.com" || claims.Role != entities.UserRoleAdmin {
		t.Fatalf("wrong claims: %+v", claims)
	}

	session := svc.CurrentSession(ctx)
	if session == nil || session.Email != "hector@padelpro.com" {
		t.Fatalf("session not recorded at login: %+v", session)
	}

	if err := svc.Logout(ctx, claims.UserID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if svc.CurrentSession(ctx) != nil {
		t.Fatal("session survived logout")
	}
}

func TestAuthServiceRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	f := newFixtures()
	users := repository.NewUserRepository(f.store, logger.NewNop(), nil)
	svc := NewAuthService(users, f.sessions, testJWTConfig(), logger.NewNop())

	if _, err := svc.Login(ctx, ports.LoginRequest{Email: "hector@padelpro.com", Password: "wrong"}); !errors.Is(err, entities.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, ports.LoginRequest{Email: "nobody@padelpro.com", Password: "admin123"}); !errors.Is(err, entities.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	if _, err := svc.ValidateToken("not-a-token"); err == nil {
		t.Fatal("garbage token validated")
	}
}

func TestMessageServiceSubmitAndTriage(t *testing.T) {
	ctx := context.Background()
	f := newFixtures()
	svc := NewMessageService(f.messages, logger.NewNop())

	msg, err := svc.Submit(ctx, ports.ContactMessageRequest{
		Name:    "Raúl Ortega",
		Email:   "raul@example.com",
		Subject: "classes",
		Message: "¿Hay clases los domingos?",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if msg.Read || msg.Replied {
		t.Fatalf("new message must start unread and unanswered: %+v", msg)
	}

	if _, err := svc.MarkReplied(ctx, msg.ID); err != nil {
		t.Fatalf("mark replied: %v", err)
	}
	got, err := svc.GetMessage(ctx, msg.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Read || !got.Replied {
		t.Fatalf("reply must imply read: %+v", got)
	}
}

func TestMaintenanceServiceDumpAndReset(t *testing.T) {
	ctx := context.Background()
	f := newFixtures()
	svc := NewMaintenanceService(f.teachers, f.students, f.events, f.bookings, f.messages, f.blogs, f.sessions, logger.NewNop())

	if _, err := f.students.Save(ctx, &entities.Student{Name: "Extra", Email: "extra@example.com", Level: entities.StudentLevelBeginner, Status: entities.StudentStatusPending}); err != nil {
		t.Fatalf("save extra student: %v", err)
	}

	summary := svc.Dump(ctx)
	if summary.Students.Total != 4 {
		t.Fatalf("expected 4 students in dump, got %d", summary.Students.Total)
	}
	if summary.Students.ByStatus["pending"] != 3 {
		t.Fatalf("expected 3 pending in dump, got %d", summary.Students.ByStatus["pending"])
	}
	if summary.Blogs.ByStatus["published"] != 3 {
		t.Fatalf("expected 3 published posts, got %d", summary.Blogs.ByStatus["published"])
	}

	if err := svc.ResetAll(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	// After the reset the collections reseed on next read.
	summary = svc.Dump(ctx)
	if summary.Students.Total != 3 {
		t.Fatalf("expected seed students after reset, got %d", summary.Students.Total)
	}
}
