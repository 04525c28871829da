package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padelpro/academy/internal/application/services"
	"github.com/padelpro/academy/internal/domain/entities"
	"github.com/padelpro/academy/internal/infrastructure/logger"
	"github.com/padelpro/academy/internal/ports"
)

// AuthHandler handles back-office authentication requests
type AuthHandler struct {
	authService *services.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login handles admin login
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		h.logger.Warn("Login failed", "error", err, "email", req.Email)
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	return c.JSON(http.StatusOK, response)
}

// Logout clears the current session
func (h *AuthHandler) Logout(c echo.Context) error {
	userID := getUserIDFromContext(c)

	if err := h.authService.Logout(c.Request().Context(), userID); err != nil {
		h.logger.Error("Logout failed", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Logout failed")
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

// Me returns the signed-in session
func (h *AuthHandler) Me(c echo.Context) error {
	session := h.authService.CurrentSession(c.Request().Context())
	if session == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not signed in")
	}
	return c.JSON(http.StatusOK, session)
}

// DebugHandler exposes the admin maintenance tools
type DebugHandler struct {
	maintenanceService *services.MaintenanceService
	logger             *logger.Logger
}

// NewDebugHandler creates a new debug handler
func NewDebugHandler(maintenanceService *services.MaintenanceService, logger *logger.Logger) *DebugHandler {
	return &DebugHandler{
		maintenanceService: maintenanceService,
		logger:             logger,
	}
}

// Dump returns per-collection record counts
func (h *DebugHandler) Dump(c echo.Context) error {
	return c.JSON(http.StatusOK, h.maintenanceService.Dump(c.Request().Context()))
}

// Reset wipes every collection back to seed data
func (h *DebugHandler) Reset(c echo.Context) error {
	userID := getUserIDFromContext(c)
	h.logger.Warn("Admin requested full reset", "user_id", userID)

	if err := h.maintenanceService.ResetAll(c.Request().Context()); err != nil {
		h.logger.Error("Reset failed", "error", err, "user_id", userID)
		return echo.NewHTTPError(http.StatusInternalServerError, "Reset failed")
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "All collections reset"})
}

// Utility functions and helper types

func getUserIDFromContext(c echo.Context) string {
	if user, ok := c.Get("user").(string); ok {
		return user
	}
	return ""
}

// domainError maps service errors onto HTTP status codes.
func domainError(err error) error {
	switch {
	case errors.Is(err, entities.ErrTeacherNotFound),
		errors.Is(err, entities.ErrStudentNotFound),
		errors.Is(err, entities.ErrEventNotFound),
		errors.Is(err, entities.ErrBookingNotFound),
		errors.Is(err, entities.ErrMessageNotFound),
		errors.Is(err, entities.ErrBlogPostNotFound),
		errors.Is(err, entities.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, entities.ErrEmailTaken),
		errors.Is(err, entities.ErrCourtUnavailable),
		errors.Is(err, entities.ErrAlreadyRegistered):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, entities.ErrInvalidStatus):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, entities.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}

// Request/Response types

type MessageResponse struct {
	Message string `json:"message"`
}

type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

type EventRegistrationRequest struct {
	StudentID string `json:"studentId" validate:"required"`
}
