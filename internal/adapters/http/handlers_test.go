package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/padelpro/academy/internal/adapters/repository"
	"github.com/padelpro/academy/internal/application/services"
	"github.com/padelpro/academy/internal/domain/entities"
	"github.com/padelpro/academy/internal/infrastructure/config"
	"github.com/padelpro/academy/internal/infrastructure/kvstore"
	"github.com/padelpro/academy/internal/infrastructure/logger"
)

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

type handlerEnv struct {
	echo     *echo.Echo
	store    kvstore.Store
	auth     *AuthHandler
	teachers *TeacherHandler
	students *StudentHandler
	events   *EventHandler
	bookings *BookingHandler
	messages *MessageHandler
	blogs    *BlogHandler
	debug    *DebugHandler
}

func newHandlerEnv() *handlerEnv {
	store := kvstore.NewMemoryStore()
	log := logger.NewNop()

	teacherRepo := repository.NewTeacherRepository(store, log, nil)
	studentRepo := repository.NewStudentRepository(store, log, nil)
	eventRepo := repository.NewEventRepository(store, log, nil)
	bookingRepo := repository.NewBookingRepository(store, log, nil)
	messageRepo := repository.NewMessageRepository(store, log, nil)
	blogRepo := repository.NewBlogRepository(store, log, nil)
	userRepo := repository.NewUserRepository(store, log, nil)
	sessionRepo := repository.NewSessionRepository(store, log)

	jwtCfg := config.JWTConfig{Secret: "test-secret", ExpiresIn: time.Hour, Issuer: "padelpro-test"}

	authService := services.NewAuthService(userRepo, sessionRepo, jwtCfg, log)
	teacherService := services.NewTeacherService(teacherRepo, log)
	studentService := services.NewStudentService(studentRepo, log)
	eventService := services.NewEventService(eventRepo, studentRepo, log)
	bookingService := services.NewBookingService(bookingRepo, studentRepo, teacherRepo, log)
	messageService := services.NewMessageService(messageRepo, log)
	blogService := services.NewBlogService(blogRepo, log)
	maintenanceService := services.NewMaintenanceService(teacherRepo, studentRepo, eventRepo, bookingRepo, messageRepo, blogRepo, sessionRepo, log)

	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}

	return &handlerEnv{
		echo:     e,
		store:    store,
		auth:     NewAuthHandler(authService, log),
		teachers: NewTeacherHandler(teacherService, log),
		students: NewStudentHandler(studentService, log),
		events:   NewEventHandler(eventService, log),
		bookings: NewBookingHandler(bookingService, log),
		messages: NewMessageHandler(messageService, log),
		blogs:    NewBlogHandler(blogService, log),
		debug:    NewDebugHandler(maintenanceService, log),
	}
}

func (env *handlerEnv) request(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return env.echo.NewContext(req, rec), rec
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		t.Fatal("expected an HTTP error")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	return he.Code
}

func TestStudentRegisterEndpoint(t *testing.T) {
	env := newHandlerEnv()

	c, rec := env.request(http.MethodPost, "/api/v1/students/register",
		`{"name":"Lucía Fernández","email":"lucia@example.com","phone":"645678901","level":"beginner"}`)
	if err := env.students.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var student entities.Student
	if err := json.Unmarshal(rec.Body.Bytes(), &student); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if student.Status != entities.StudentStatusPending {
		t.Fatalf("registered status = %q, want pending", student.Status)
	}
}

func TestStudentRegisterValidation(t *testing.T) {
	env := newHandlerEnv()

	// Missing level and a malformed email.
	c, _ := env.request(http.MethodPost, "/api/v1/students/register",
		`{"name":"X","email":"not-an-email","phone":"1"}`)
	if code := httpStatus(t, env.students.Register(c)); code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", code)
	}

	// Duplicate of a seed email.
	c, _ = env.request(http.MethodPost, "/api/v1/students/register",
		`{"name":"Otro","email":"pedro@example.com","phone":"1","level":"beginner"}`)
	if code := httpStatus(t, env.students.Register(c)); code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", code)
	}
}

func TestStudentStatusEndpoint(t *testing.T) {
	env := newHandlerEnv()

	c, rec := env.request(http.MethodPut, "/", `{"status":"approved"}`)
	c.SetParamNames("id")
	c.SetParamValues("student-2")
	if err := env.students.UpdateStatus(c); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	c, _ = env.request(http.MethodPut, "/", `{"status":"pending"}`)
	c.SetParamNames("id")
	c.SetParamValues("student-3")
	if code := httpStatus(t, env.students.UpdateStatus(c)); code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for non-decision", code)
	}
}

func TestBookingEndpointConflict(t *testing.T) {
	env := newHandlerEnv()

	body := `{"studentId":"student-1","teacherId":"teacher-1","date":"20 de Mayo, 2023","time":"10:00 - 11:00","court":"Pista 1","type":"individual"}`

	c, rec := env.request(http.MethodPost, "/api/v1/bookings", body)
	if err := env.bookings.CreateBooking(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	c, _ = env.request(http.MethodPost, "/api/v1/bookings", body)
	if code := httpStatus(t, env.bookings.CreateBooking(c)); code != http.StatusConflict {
		t.Fatalf("status = %d, want 409 for taken slot", code)
	}
}

func TestTeacherEndpointNotFound(t *testing.T) {
	env := newHandlerEnv()

	c, _ := env.request(http.MethodGet, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")
	if code := httpStatus(t, env.teachers.GetTeacher(c)); code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", code)
	}
}

func TestEventRegistrationEndpoint(t *testing.T) {
	env := newHandlerEnv()

	c, rec := env.request(http.MethodPost, "/", `{"studentId":"student-1"}`)
	c.SetParamNames("id")
	c.SetParamValues("event-1")
	if err := env.events.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	c, _ = env.request(http.MethodPost, "/", `{"studentId":"student-1"}`)
	c.SetParamNames("id")
	c.SetParamValues("event-1")
	if code := httpStatus(t, env.events.Register(c)); code != http.StatusConflict {
		t.Fatalf("status = %d, want 409 for repeat registration", code)
	}
}

func TestAuthEndpoints(t *testing.T) {
	env := newHandlerEnv()

	c, rec := env.request(http.MethodPost, "/api/v1/auth/login",
		`{"email":"hector@padelpro.com","password":"admin123"}`)
	if err := env.auth.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "access_token") {
		t.Fatalf("no access token in response: %s", rec.Body.String())
	}

	c, _ = env.request(http.MethodPost, "/api/v1/auth/login",
		`{"email":"hector@padelpro.com","password":"nope"}`)
	if code := httpStatus(t, env.auth.Login(c)); code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", code)
	}

	// Me reflects the session written by the successful login above.
	c, rec = env.request(http.MethodGet, "/api/v1/auth/me", "")
	if err := env.auth.Me(c); err != nil {
		t.Fatalf("me: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "hector@padelpro.com") {
		t.Fatalf("session missing from response: %s", rec.Body.String())
	}
}

func TestMessageEndpoints(t *testing.T) {
	env := newHandlerEnv()

	c, rec := env.request(http.MethodPost, "/api/v1/messages",
		`{"name":"Raúl","email":"raul@example.com","subject":"info","message":"Hola"}`)
	if err := env.messages.Submit(c); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var msg entities.ContactMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &msg); err != nil {
		t.Fatalf("decode: %v", err)
	}

	c, rec = env.request(http.MethodPut, "/", "")
	c.SetParamNames("id")
	c.SetParamValues(msg.ID)
	if err := env.messages.MarkReplied(c); err != nil {
		t.Fatalf("mark replied: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"replied":true`) {
		t.Fatalf("replied flag missing: %s", rec.Body.String())
	}
}

func TestDebugEndpoints(t *testing.T) {
	env := newHandlerEnv()

	c, rec := env.request(http.MethodGet, "/api/v1/admin/debug", "")
	if err := env.debug.Dump(c); err != nil {
		t.Fatalf("dump: %v", err)
	}

	var summary map[string]struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if summary["teachers"].Total != 2 || summary["students"].Total != 3 {
		t.Fatalf("unexpected seed counts: %s", rec.Body.String())
	}

	c, _ = env.request(http.MethodPost, "/api/v1/admin/reset", "")
	if err := env.debug.Reset(c); err != nil {
		t.Fatalf("reset: %v", err)
	}
}

func TestBlogEndpointsHideDrafts(t *testing.T) {
	env := newHandlerEnv()

	c, rec := env.request(http.MethodPost, "/api/v1/blogs", `{"title":"Borrador","published":false}`)
	if err := env.blogs.CreatePost(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	c, rec = env.request(http.MethodGet, "/api/v1/blogs", "")
	if err := env.blogs.ListPublished(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	if strings.Contains(rec.Body.String(), "Borrador") {
		t.Fatalf("draft leaked into published list")
	}
}
