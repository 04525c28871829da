package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/padelpro/academy/internal/domain/entities"
	"github.com/padelpro/academy/internal/infrastructure/kvstore"
	"github.com/padelpro/academy/internal/infrastructure/logger"
)

func newTestStore() kvstore.Store {
	return kvstore.NewMemoryStore()
}

func TestTeacherRepositorySeedsOnFirstLoad(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	repo := NewTeacherRepository(store, logger.NewNop(), nil)

	teachers := repo.GetAll(ctx)
	if len(teachers) != 2 {
		t.Fatalf("expected 2 seeded teachers, got %d", len(teachers))
	}

	// The seed must be written back, not rebuilt on every read.
	if _, err := store.Get(ctx, KeyTeachers); err != nil {
		t.Fatalf("seed was not persisted: %v", err)
	}

	// A record saved after seeding has to survive the next load.
	saved, err := repo.Save(ctx, &entities.Teacher{Name: "Luis Torres"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID == "" || saved.CreatedAt == "" {
		t.Fatal("save must assign id and createdAt")
	}
	if got := len(repo.GetAll(ctx)); got != 3 {
		t.Fatalf("expected 3 teachers after save, got %d", got)
	}
}

func TestTeacherRepositoryUpsertKeepsPosition(t *testing.T) {
	ctx := context.Background()
	repo := NewTeacherRepository(newTestStore(), logger.NewNop(), nil)

	first := repo.GetAll(ctx)[0]
	first.Bio = "actualizado"
	if _, err := repo.Save(ctx, &first); err != nil {
		t.Fatalf("save: %v", err)
	}

	teachers := repo.GetAll(ctx)
	if teachers[0].ID != first.ID {
		t.Fatalf("updated teacher moved from position 0 to elsewhere")
	}
	if teachers[0].Bio != "actualizado" {
		t.Fatalf("update not applied, bio = %q", teachers[0].Bio)
	}
}

func TestTeacherRepositoryDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewTeacherRepository(newTestStore(), logger.NewNop(), nil)

	removed, err := repo.Delete(ctx, "teacher-1")
	if err != nil || !removed {
		t.Fatalf("first delete: removed=%v err=%v", removed, err)
	}
	removed, err = repo.Delete(ctx, "teacher-1")
	if err != nil {
		t.Fatalf("second delete errored: %v", err)
	}
	if removed {
		t.Fatal("second delete of the same id reported removed=true")
	}
	if repo.GetByID(ctx, "teacher-1") != nil {
		t.Fatal("deleted teacher still readable")
	}
}

func TestStudentRepositoryStatusFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository(newTestStore(), logger.NewNop(), nil)

	pending := repo.GetPending(ctx)
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending students in seed, got %d", len(pending))
	}
	approved := repo.GetApproved(ctx)
	if len(approved) != 1 {
		t.Fatalf("expected 1 approved student in seed, got %d", len(approved))
	}

	if _, err := repo.UpdateStatus(ctx, pending[0].ID, entities.StudentStatusApproved); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if got := len(repo.GetApproved(ctx)); got != 2 {
		t.Fatalf("expected 2 approved after decision, got %d", got)
	}

	if _, err := repo.UpdateStatus(ctx, "missing", entities.StudentStatusApproved); err == nil {
		t.Fatal("expected error updating status of unknown student")
	}
}

func TestStudentRepositoryLegacyRecordsCountAsApproved(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	// A record written before the moderation workflow has no status field.
	legacy := `[{"id":"old-1","name":"Sin Estado","email":"old@example.com","level":"beginner","createdAt":"2022-01-01T00:00:00Z"}]`
	if err := store.Set(ctx, KeyStudents, []byte(legacy)); err != nil {
		t.Fatalf("seed legacy record: %v", err)
	}

	repo := NewStudentRepository(store, logger.NewNop(), nil)
	approved := repo.GetApproved(ctx)
	if len(approved) != 1 || approved[0].ID != "old-1" {
		t.Fatalf("legacy record not treated as approved: %+v", approved)
	}
	if len(repo.GetPending(ctx)) != 0 {
		t.Fatal("legacy record must not show up as pending")
	}

	changed, err := repo.Normalize(ctx)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if changed != 1 {
		t.Fatalf("expected 1 normalized record, got %d", changed)
	}
	if got := repo.GetByID(ctx, "old-1"); got.Status != entities.StudentStatusApproved {
		t.Fatalf("status after normalize = %q", got.Status)
	}

	changed, err = repo.Normalize(ctx)
	if err != nil || changed != 0 {
		t.Fatalf("second normalize should be a no-op, changed=%d err=%v", changed, err)
	}
}

func TestStudentRepositoryGetByEmailIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository(newTestStore(), logger.NewNop(), nil)

	if repo.GetByEmail(ctx, "  PEDRO@example.com ") == nil {
		t.Fatal("lookup with different casing and padding failed")
	}
	if repo.GetByEmail(ctx, "nobody@example.com") != nil {
		t.Fatal("unknown email returned a student")
	}
}

func TestEventRepositoryRegisterOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(newTestStore(), logger.NewNop(), nil)

	added, err := repo.Register(ctx, "event-1", "student-1")
	if err != nil || !added {
		t.Fatalf("first register: added=%v err=%v", added, err)
	}
	added, err = repo.Register(ctx, "event-1", "student-1")
	if err != nil {
		t.Fatalf("repeat register errored: %v", err)
	}
	if added {
		t.Fatal("repeat register reported added=true")
	}

	event := repo.GetByID(ctx, "event-1")
	if len(event.Registrations) != 1 {
		t.Fatalf("expected 1 registration, got %v", event.Registrations)
	}

	if _, err := repo.Register(ctx, "missing", "student-1"); err == nil {
		t.Fatal("expected error registering for unknown event")
	}
}

func TestEventRepositoryUnregister(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(newTestStore(), logger.NewNop(), nil)

	if _, err := repo.Register(ctx, "event-2", "student-2"); err != nil {
		t.Fatalf("register: %v", err)
	}
	removed, err := repo.Unregister(ctx, "event-2", "student-2")
	if err != nil || !removed {
		t.Fatalf("unregister: removed=%v err=%v", removed, err)
	}
	removed, err = repo.Unregister(ctx, "event-2", "student-2")
	if err != nil || removed {
		t.Fatalf("repeat unregister: removed=%v err=%v", removed, err)
	}
}

func TestBookingRepositoryReadsLegacyRecords(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	// Shape written by the first hosted deployment: userId and a free-text
	// teacher name, no court, no type.
	legacy := `[{"id":"kv-1","userId":"student-9","teacher":"Carlos Rodríguez","date":"2023-05-20","time":"09:00","status":"pending","createdAt":"2023-05-01T00:00:00Z"}]`
	if err := store.Set(ctx, KeyBookings, []byte(legacy)); err != nil {
		t.Fatalf("seed legacy record: %v", err)
	}

	repo := NewBookingRepository(store, logger.NewNop(), nil)
	booking := repo.GetByID(ctx, "kv-1")
	if booking == nil {
		t.Fatal("legacy booking not readable")
	}
	if booking.StudentID != "student-9" {
		t.Fatalf("userId not folded into studentId: %+v", booking)
	}
	if booking.TeacherName != "Carlos Rodríguez" {
		t.Fatalf("teacher not folded into teacherName: %+v", booking)
	}
	if booking.Type != entities.BookingTypeIndividual {
		t.Fatalf("missing type should default to individual, got %q", booking.Type)
	}

	// A status change rewrites the record in the canonical shape.
	if _, err := repo.UpdateStatus(ctx, "kv-1", entities.BookingStatusConfirmed); err != nil {
		t.Fatalf("update status: %v", err)
	}
	raw, err := store.Get(ctx, KeyBookings)
	if err != nil {
		t.Fatalf("read raw bookings: %v", err)
	}
	if strings.Contains(string(raw), `"userId"`) {
		t.Fatalf("legacy field survived rewrite: %s", raw)
	}
	if !strings.Contains(string(raw), `"studentId":"student-9"`) {
		t.Fatalf("canonical field missing after rewrite: %s", raw)
	}
}

func TestBookingRepositoryQueries(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepository(newTestStore(), logger.NewNop(), nil)

	if got := repo.GetByDate(ctx, "15 de Mayo, 2023"); len(got) != 1 {
		t.Fatalf("GetByDate: expected 1, got %d", len(got))
	}
	if got := repo.GetByStudentID(ctx, "student-2"); len(got) != 1 {
		t.Fatalf("GetByStudentID: expected 1, got %d", len(got))
	}
	if got := repo.GetByTeacherID(ctx, "teacher-1"); len(got) != 1 {
		t.Fatalf("GetByTeacherID: expected 1, got %d", len(got))
	}

	saved, err := repo.Save(ctx, &entities.Booking{
		StudentID: "student-1",
		TeacherID: "teacher-1",
		Date:      "17 de Mayo, 2023",
		Time:      "11:00 - 12:00",
		Court:     "Pista 3",
		Type:      entities.BookingTypeIndividual,
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.Status != entities.BookingStatusPending {
		t.Fatalf("new booking should default to pending, got %q", saved.Status)
	}
}

func TestMessageRepositoryFlagsNeverGoBack(t *testing.T) {
	ctx := context.Background()
	repo := NewMessageRepository(newTestStore(), logger.NewNop(), nil)

	if got := len(repo.GetUnread(ctx)); got != 1 {
		t.Fatalf("expected 1 unread seed message, got %d", got)
	}

	msg, err := repo.MarkReplied(ctx, "message-2")
	if err != nil {
		t.Fatalf("mark replied: %v", err)
	}
	if !msg.Read || !msg.Replied {
		t.Fatalf("replying must also mark read: %+v", msg)
	}

	// Marking read again must not clear the replied flag.
	msg, err = repo.MarkRead(ctx, "message-2")
	if err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if !msg.Replied {
		t.Fatal("replied flag lost after MarkRead")
	}

	if _, err := repo.MarkRead(ctx, "missing"); err == nil {
		t.Fatal("expected error for unknown message")
	}
}

func TestBlogRepositoryPublishedFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewBlogRepository(newTestStore(), logger.NewNop(), nil)

	draft, err := repo.Save(ctx, &entities.BlogPost{Title: "Borrador", Published: false})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	published := repo.GetPublished(ctx)
	for _, post := range published {
		if post.ID == draft.ID {
			t.Fatal("draft leaked into published list")
		}
	}
	if len(published) != 3 {
		t.Fatalf("expected 3 published seed posts, got %d", len(published))
	}
}

func TestUserRepositoryPersistsPasswordHash(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()

	repo := NewUserRepository(store, logger.NewNop(), nil)
	if repo.GetByEmail(ctx, "hector@padelpro.com") == nil {
		t.Fatal("seed admin missing")
	}

	// The hash is hidden from entity JSON, so it only survives if the
	// storage record carries it explicitly.
	reopened := NewUserRepository(store, logger.NewNop(), nil)
	user := reopened.GetByEmail(ctx, "admin@padelpro.com")
	if user == nil {
		t.Fatal("seed admin missing after reopen")
	}
	if user.PasswordHash == "" {
		t.Fatal("password hash lost in storage roundtrip")
	}
}

func TestSessionRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(newTestStore(), logger.NewNop())

	if repo.Get(ctx) != nil {
		t.Fatal("expected no session before login")
	}

	session := &entities.Session{
		UserID:   "admin-1",
		Email:    "hector@padelpro.com",
		Role:     entities.UserRoleAdmin,
		IssuedAt: entities.Now(),
	}
	if err := repo.Put(ctx, session); err != nil {
		t.Fatalf("put: %v", err)
	}
	if got := repo.Get(ctx); got == nil || got.UserID != "admin-1" {
		t.Fatalf("session not readable after put: %+v", got)
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if repo.Get(ctx) != nil {
		t.Fatal("session survived clear")
	}
}

func TestRepositoriesOnRedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := kvstore.NewRedisStore(mr.Addr(), "", 0)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	repo := NewTeacherRepository(store, logger.NewNop(), nil)

	if got := len(repo.GetAll(ctx)); got != 2 {
		t.Fatalf("expected 2 seeded teachers on redis, got %d", got)
	}
	if !mr.Exists(KeyTeachers) {
		t.Fatal("seed not written to redis")
	}

	saved, err := repo.Save(ctx, &entities.Teacher{Name: "Marta Ruiz"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if repo.GetByID(ctx, saved.ID) == nil {
		t.Fatal("saved teacher not readable from redis")
	}

	removed, err := repo.Delete(ctx, saved.ID)
	if err != nil || !removed {
		t.Fatalf("delete: removed=%v err=%v", removed, err)
	}
}
