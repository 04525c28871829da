package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padelpro/academy/internal/application/services"
	"github.com/padelpro/academy/internal/domain/entities"
	"github.com/padelpro/academy/internal/infrastructure/logger"
)

// Handlers for the public site catalog: coaching staff, events and blog.

// TeacherHandler handles coaching staff requests
type TeacherHandler struct {
	teacherService *services.TeacherService
	logger         *logger.Logger
}

// NewTeacherHandler creates a new teacher handler
func NewTeacherHandler(teacherService *services.TeacherService, logger *logger.Logger) *TeacherHandler {
	return &TeacherHandler{
		teacherService: teacherService,
		logger:         logger,
	}
}

// ListTeachers returns the coaching staff
func (h *TeacherHandler) ListTeachers(c echo.Context) error {
	return c.JSON(http.StatusOK, h.teacherService.ListTeachers(c.Request().Context()))
}

// GetTeacher returns one teacher profile
func (h *TeacherHandler) GetTeacher(c echo.Context) error {
	teacher, err := h.teacherService.GetTeacher(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, teacher)
}

// CreateTeacher adds a teacher to the staff
func (h *TeacherHandler) CreateTeacher(c echo.Context) error {
	var teacher entities.Teacher
	if err := c.Bind(&teacher); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	teacher.ID = ""

	saved, err := h.teacherService.SaveTeacher(c.Request().Context(), &teacher)
	if err != nil {
		h.logger.Error("Create teacher failed", "error", err)
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, saved)
}

// UpdateTeacher updates a teacher profile
func (h *TeacherHandler) UpdateTeacher(c echo.Context) error {
	id := c.Param("id")
	if _, err := h.teacherService.GetTeacher(c.Request().Context(), id); err != nil {
		return domainError(err)
	}

	var teacher entities.Teacher
	if err := c.Bind(&teacher); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	teacher.ID = id

	saved, err := h.teacherService.SaveTeacher(c.Request().Context(), &teacher)
	if err != nil {
		h.logger.Error("Update teacher failed", "error", err, "teacher_id", id)
		return domainError(err)
	}
	return c.JSON(http.StatusOK, saved)
}

// DeleteTeacher removes a teacher
func (h *TeacherHandler) DeleteTeacher(c echo.Context) error {
	if err := h.teacherService.DeleteTeacher(c.Request().Context(), c.Param("id")); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Teacher deleted"})
}

// EventHandler handles tournament and clinic requests
type EventHandler struct {
	eventService *services.EventService
	logger       *logger.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService *services.EventService, logger *logger.Logger) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		logger:       logger,
	}
}

// ListEvents returns every event
func (h *EventHandler) ListEvents(c echo.Context) error {
	return c.JSON(http.StatusOK, h.eventService.ListEvents(c.Request().Context()))
}

// GetEvent returns one event
func (h *EventHandler) GetEvent(c echo.Context) error {
	event, err := h.eventService.GetEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, event)
}

// CreateEvent adds an event
func (h *EventHandler) CreateEvent(c echo.Context) error {
	var event entities.Event
	if err := c.Bind(&event); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	event.ID = ""

	saved, err := h.eventService.SaveEvent(c.Request().Context(), &event)
	if err != nil {
		h.logger.Error("Create event failed", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, saved)
}

// UpdateEvent updates an event
func (h *EventHandler) UpdateEvent(c echo.Context) error {
	id := c.Param("id")
	existing, err := h.eventService.GetEvent(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}

	var event entities.Event
	if err := c.Bind(&event); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	event.ID = id
	// Registrations are managed through their own endpoints.
	event.Registrations = existing.Registrations

	saved, err := h.eventService.SaveEvent(c.Request().Context(), &event)
	if err != nil {
		h.logger.Error("Update event failed", "error", err, "event_id", id)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, saved)
}

// Register signs a student up for an event
func (h *EventHandler) Register(c echo.Context) error {
	var req EventRegistrationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.eventService.RegisterForEvent(c.Request().Context(), c.Param("id"), req.StudentID); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Registered for event"})
}

// Unregister removes a student from an event
func (h *EventHandler) Unregister(c echo.Context) error {
	if err := h.eventService.UnregisterFromEvent(c.Request().Context(), c.Param("id"), c.Param("studentId")); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Registration removed"})
}

// DeleteEvent removes an event
func (h *EventHandler) DeleteEvent(c echo.Context) error {
	if err := h.eventService.DeleteEvent(c.Request().Context(), c.Param("id")); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Event deleted"})
}

// BlogHandler handles blog requests
type BlogHandler struct {
	blogService *services.BlogService
	logger      *logger.Logger
}

// NewBlogHandler creates a new blog handler
func NewBlogHandler(blogService *services.BlogService, logger *logger.Logger) *BlogHandler {
	return &BlogHandler{
		blogService: blogService,
		logger:      logger,
	}
}

// ListPublished returns published articles for the public site
func (h *BlogHandler) ListPublished(c echo.Context) error {
	return c.JSON(http.StatusOK, h.blogService.ListPublished(c.Request().Context()))
}

// ListAll returns every article including drafts
func (h *BlogHandler) ListAll(c echo.Context) error {
	return c.JSON(http.StatusOK, h.blogService.ListAll(c.Request().Context()))
}

// GetPost returns one article
func (h *BlogHandler) GetPost(c echo.Context) error {
	post, err := h.blogService.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// CreatePost adds an article
func (h *BlogHandler) CreatePost(c echo.Context) error {
	var post entities.BlogPost
	if err := c.Bind(&post); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	post.ID = ""

	saved, err := h.blogService.SavePost(c.Request().Context(), &post)
	if err != nil {
		h.logger.Error("Create post failed", "error", err)
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, saved)
}

// UpdatePost updates an article
func (h *BlogHandler) UpdatePost(c echo.Context) error {
	id := c.Param("id")
	if _, err := h.blogService.GetPost(c.Request().Context(), id); err != nil {
		return domainError(err)
	}

	var post entities.BlogPost
	if err := c.Bind(&post); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	post.ID = id

	saved, err := h.blogService.SavePost(c.Request().Context(), &post)
	if err != nil {
		h.logger.Error("Update post failed", "error", err, "post_id", id)
		return domainError(err)
	}
	return c.JSON(http.StatusOK, saved)
}

// DeletePost removes an article
func (h *BlogHandler) DeletePost(c echo.Context) error {
	if err := h.blogService.DeletePost(c.Request().Context(), c.Param("id")); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Post deleted"})
}
