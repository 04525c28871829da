package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padelpro/academy/internal/application/services"
	"github.com/padelpro/academy/internal/domain/entities"
	"github.com/padelpro/academy/internal/infrastructure/logger"
	"github.com/padelpro/academy/internal/ports"
)

// Handlers for registrations, court bookings and contact messages.

// StudentHandler handles registration requests
type StudentHandler struct {
	studentService *services.StudentService
	logger         *logger.Logger
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(studentService *services.StudentService, logger *logger.Logger) *StudentHandler {
	return &StudentHandler{
		studentService: studentService,
		logger:         logger,
	}
}

// Register files a registration from the public form
func (h *StudentHandler) Register(c echo.Context) error {
	var req ports.RegisterStudentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	student, err := h.studentService.Register(c.Request().Context(), req)
	if err != nil {
		h.logger.Warn("Registration failed", "error", err, "email", req.Email)
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, student)
}

// ListStudents returns every registration
func (h *StudentHandler) ListStudents(c echo.Context) error {
	return c.JSON(http.StatusOK, h.studentService.ListStudents(c.Request().Context()))
}

// ListPending returns registrations waiting for a decision
func (h *StudentHandler) ListPending(c echo.Context) error {
	return c.JSON(http.StatusOK, h.studentService.ListPending(c.Request().Context()))
}

// ListApproved returns accepted registrations
func (h *StudentHandler) ListApproved(c echo.Context) error {
	return c.JSON(http.StatusOK, h.studentService.ListApproved(c.Request().Context()))
}

// GetStudent returns one registration
func (h *StudentHandler) GetStudent(c echo.Context) error {
	student, err := h.studentService.GetStudent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, student)
}

// UpdateStudent updates a registration from the back office
func (h *StudentHandler) UpdateStudent(c echo.Context) error {
	id := c.Param("id")
	if _, err := h.studentService.GetStudent(c.Request().Context(), id); err != nil {
		return domainError(err)
	}

	var student entities.Student
	if err := c.Bind(&student); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	student.ID = id

	saved, err := h.studentService.SaveStudent(c.Request().Context(), &student)
	if err != nil {
		h.logger.Error("Update student failed", "error", err, "student_id", id)
		return domainError(err)
	}
	return c.JSON(http.StatusOK, saved)
}

// UpdateStatus applies an admin decision to a registration
func (h *StudentHandler) UpdateStatus(c echo.Context) error {
	var req StatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	student, err := h.studentService.Decide(c.Request().Context(), c.Param("id"), entities.StudentStatus(req.Status))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, student)
}

// DeleteStudent removes a registration
func (h *StudentHandler) DeleteStudent(c echo.Context) error {
	if err := h.studentService.DeleteStudent(c.Request().Context(), c.Param("id")); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Student deleted"})
}

// BookingHandler handles court reservation requests
type BookingHandler struct {
	bookingService *services.BookingService
	logger         *logger.Logger
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *services.BookingService, logger *logger.Logger) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		logger:         logger,
	}
}

// CreateBooking reserves a court slot
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req ports.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	booking, err := h.bookingService.CreateBooking(c.Request().Context(), req)
	if err != nil {
		h.logger.Warn("Booking rejected", "error", err, "court", req.Court, "date", req.Date, "time", req.Time)
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, booking)
}

// ListBookings returns reservations, optionally filtered by query params
func (h *BookingHandler) ListBookings(c echo.Context) error {
	ctx := c.Request().Context()

	if date := c.QueryParam("date"); date != "" {
		return c.JSON(http.StatusOK, h.bookingService.ListByDate(ctx, date))
	}
	if studentID := c.QueryParam("studentId"); studentID != "" {
		return c.JSON(http.StatusOK, h.bookingService.ListByStudent(ctx, studentID))
	}
	if teacherID := c.QueryParam("teacherId"); teacherID != "" {
		return c.JSON(http.StatusOK, h.bookingService.ListByTeacher(ctx, teacherID))
	}
	return c.JSON(http.StatusOK, h.bookingService.ListBookings(ctx))
}

// GetBooking returns one reservation
func (h *BookingHandler) GetBooking(c echo.Context) error {
	booking, err := h.bookingService.GetBooking(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, booking)
}

// Confirm marks a reservation confirmed
func (h *BookingHandler) Confirm(c echo.Context) error {
	booking, err := h.bookingService.Confirm(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, booking)
}

// Cancel cancels a reservation and frees its slot
func (h *BookingHandler) Cancel(c echo.Context) error {
	booking, err := h.bookingService.Cancel(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, booking)
}

// DeleteBooking removes a reservation
func (h *BookingHandler) DeleteBooking(c echo.Context) error {
	if err := h.bookingService.DeleteBooking(c.Request().Context(), c.Param("id")); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Booking deleted"})
}

// MessageHandler handles contact form requests
type MessageHandler struct {
	messageService *services.MessageService
	logger         *logger.Logger
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messageService *services.MessageService, logger *logger.Logger) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		logger:         logger,
	}
}

// Submit files a message from the public contact form
func (h *MessageHandler) Submit(c echo.Context) error {
	var req ports.ContactMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	message, err := h.messageService.Submit(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Message submit failed", "error", err)
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, message)
}

// ListMessages returns every message
func (h *MessageHandler) ListMessages(c echo.Context) error {
	if c.QueryParam("unread") == "true" {
		return c.JSON(http.StatusOK, h.messageService.ListUnread(c.Request().Context()))
	}
	return c.JSON(http.StatusOK, h.messageService.ListMessages(c.Request().Context()))
}

// GetMessage returns one message
func (h *MessageHandler) GetMessage(c echo.Context) error {
	message, err := h.messageService.GetMessage(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, message)
}

// MarkRead records that the message was opened
func (h *MessageHandler) MarkRead(c echo.Context) error {
	message, err := h.messageService.MarkRead(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, message)
}

// MarkReplied records that the message was answered
func (h *MessageHandler) MarkReplied(c echo.Context) error {
	message, err := h.messageService.MarkReplied(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, message)
}

// DeleteMessage removes a message
func (h *MessageHandler) DeleteMessage(c echo.Context) error {
	if err := h.messageService.DeleteMessage(c.Request().Context(), c.Param("id")); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Message deleted"})
}
