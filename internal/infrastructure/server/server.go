package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	httpHandlers "github.com/padelpro/academy/internal/adapters/http"
	"github.com/padelpro/academy/internal/adapters/repository"
	"github.com/padelpro/academy/internal/application/services"
	"github.com/padelpro/academy/internal/domain/entities"
	"github.com/padelpro/academy/internal/infrastructure/config"
	"github.com/padelpro/academy/internal/infrastructure/kvstore"
	"github.com/padelpro/academy/internal/infrastructure/logger"
)

// Server represents the HTTP server
type Server struct {
	echo   *echo.Echo
	config *config.Config
	logger *logger.Logger
	store  kvstore.Store
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance
func New(cfg *config.Config, store kvstore.Store, notifier *kvstore.Notifier, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	// Set custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true

	// Custom error handler
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	// Initialize repositories
	teacherRepo := repository.NewTeacherRepository(store, appLogger, notifier)
	studentRepo := repository.NewStudentRepository(store, appLogger, notifier)
	eventRepo := repository.NewEventRepository(store, appLogger, notifier)
	bookingRepo := repository.NewBookingRepository(store, appLogger, notifier)
	messageRepo := repository.NewMessageRepository(store, appLogger, notifier)
	blogRepo := repository.NewBlogRepository(store, appLogger, notifier)
	userRepo := repository.NewUserRepository(store, appLogger, notifier)
	sessionRepo := repository.NewSessionRepository(store, appLogger)

	// Records written before the moderation workflow carry no status;
	// stamp them once at startup.
	if changed, err := studentRepo.Normalize(context.Background()); err != nil {
		appLogger.Warn("Student status normalization failed", "error", err)
	} else if changed > 0 {
		appLogger.Info("Normalized legacy student records", "count", changed)
	}

	// Initialize services
	authService := services.NewAuthService(userRepo, sessionRepo, cfg.JWT, appLogger)
	teacherService := services.NewTeacherService(teacherRepo, appLogger)
	studentService := services.NewStudentService(studentRepo, appLogger)
	eventService := services.NewEventService(eventRepo, studentRepo, appLogger)
	bookingService := services.NewBookingService(bookingRepo, studentRepo, teacherRepo, appLogger)
	messageService := services.NewMessageService(messageRepo, appLogger)
	blogService := services.NewBlogService(blogRepo, appLogger)
	maintenanceService := services.NewMaintenanceService(teacherRepo, studentRepo, eventRepo, bookingRepo, messageRepo, blogRepo, sessionRepo, appLogger)

	// Initialize handlers
	authHandler := httpHandlers.NewAuthHandler(authService, appLogger)
	teacherHandler := httpHandlers.NewTeacherHandler(teacherService, appLogger)
	studentHandler := httpHandlers.NewStudentHandler(studentService, appLogger)
	eventHandler := httpHandlers.NewEventHandler(eventService, appLogger)
	bookingHandler := httpHandlers.NewBookingHandler(bookingService, appLogger)
	messageHandler := httpHandlers.NewMessageHandler(messageService, appLogger)
	blogHandler := httpHandlers.NewBlogHandler(blogService, appLogger)
	debugHandler := httpHandlers.NewDebugHandler(maintenanceService, appLogger)

	server := &Server{
		echo:   e,
		config: cfg,
		logger: appLogger,
		store:  store,
	}

	// Setup middleware
	server.setupMiddleware()

	// Setup routes
	server.setupRoutes(routeHandlers{
		auth:     authHandler,
		teachers: teacherHandler,
		students: studentHandler,
		events:   eventHandler,
		bookings: bookingHandler,
		messages: messageHandler,
		blogs:    blogHandler,
		debug:    debugHandler,
	}, authService)

	// Setup metrics
	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	return server, nil
}

type routeHandlers struct {
	auth     *httpHandlers.AuthHandler
	teachers *httpHandlers.TeacherHandler
	students *httpHandlers.StudentHandler
	events   *httpHandlers.EventHandler
	bookings *httpHandlers.BookingHandler
	messages *httpHandlers.MessageHandler
	blogs    *httpHandlers.BlogHandler
	debug    *httpHandlers.DebugHandler
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.echo.Use(middleware.Recover())

	// Logger middleware
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", values.Method,
				"uri", values.URI,
				"status", values.Status,
				"latency_ms", float64(values.Latency.Nanoseconds()) / 1000000,
				"remote_ip", values.RemoteIP,
				"user_agent", values.UserAgent,
			}

			if values.Error != nil {
				fields = append(fields, "error", values.Error.Error())
				s.logger.Errorw("HTTP request failed", fields...)
			} else {
				s.logger.Infow("HTTP request", fields...)
			}

			return nil
		},
	}))

	// CORS middleware
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: []string{echo.GET, echo.HEAD, echo.PUT, echo.PATCH, echo.POST, echo.DELETE},
	}))

	// Rate limiting middleware
	s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{Rate: rate.Limit(s.config.Security.RateLimitRequests), Burst: s.config.Security.RateLimitRequests, ExpiresIn: s.config.Security.RateLimitWindow},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, map[string]string{"message": "rate limit exceeded"})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, map[string]string{"message": "rate limit exceeded"})
		},
	}))

	// Security headers
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
	}))

	// Request ID middleware
	s.echo.Use(middleware.RequestID())

	// Timeout middleware
	s.echo.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: 30 * time.Second,
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(h routeHandlers, authService *services.AuthService) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	requireAuth := s.authMiddleware(authService)
	requireAdmin := s.requireRole("admin")

	// Auth routes
	authGroup := v1.Group("/auth")
	authGroup.POST("/login", h.auth.Login)
	authGroup.POST("/logout", h.auth.Logout, requireAuth)
	authGroup.GET("/me", h.auth.Me, requireAuth)

	// Coaching staff: public reads, admin writes
	teacherGroup := v1.Group("/teachers")
	teacherGroup.GET("", h.teachers.ListTeachers)
	teacherGroup.GET("/:id", h.teachers.GetTeacher)
	teacherGroup.POST("", h.teachers.CreateTeacher, requireAuth, requireAdmin)
	teacherGroup.PUT("/:id", h.teachers.UpdateTeacher, requireAuth, requireAdmin)
	teacherGroup.DELETE("/:id", h.teachers.DeleteTeacher, requireAuth, requireAdmin)

	// Registrations: the form is public, moderation is admin-only
	studentGroup := v1.Group("/students")
	studentGroup.POST("/register", h.students.Register)
	studentGroup.GET("", h.students.ListStudents, requireAuth, requireAdmin)
	studentGroup.GET("/pending", h.students.ListPending, requireAuth, requireAdmin)
	studentGroup.GET("/approved", h.students.ListApproved, requireAuth, requireAdmin)
	studentGroup.GET("/:id", h.students.GetStudent, requireAuth, requireAdmin)
	studentGroup.PUT("/:id", h.students.UpdateStudent, requireAuth, requireAdmin)
	studentGroup.PUT("/:id/status", h.students.UpdateStatus, requireAuth, requireAdmin)
	studentGroup.DELETE("/:id", h.students.DeleteStudent, requireAuth, requireAdmin)

	// Events: public reads and registration, admin writes
	eventGroup := v1.Group("/events")
	eventGroup.GET("", h.events.ListEvents)
	eventGroup.GET("/:id", h.events.GetEvent)
	eventGroup.POST("/:id/registrations", h.events.Register)
	eventGroup.DELETE("/:id/registrations/:studentId", h.events.Unregister, requireAuth, requireAdmin)
	eventGroup.POST("", h.events.CreateEvent, requireAuth, requireAdmin)
	eventGroup.PUT("/:id", h.events.UpdateEvent, requireAuth, requireAdmin)
	eventGroup.DELETE("/:id", h.events.DeleteEvent, requireAuth, requireAdmin)

	// Bookings: anyone can request a slot, management is admin-only
	bookingGroup := v1.Group("/bookings")
	bookingGroup.POST("", h.bookings.CreateBooking)
	bookingGroup.GET("", h.bookings.ListBookings, requireAuth, requireAdmin)
	bookingGroup.GET("/:id", h.bookings.GetBooking, requireAuth, requireAdmin)
	bookingGroup.PUT("/:id/confirm", h.bookings.Confirm, requireAuth, requireAdmin)
	bookingGroup.PUT("/:id/cancel", h.bookings.Cancel, requireAuth, requireAdmin)
	bookingGroup.DELETE("/:id", h.bookings.DeleteBooking, requireAuth, requireAdmin)

	// Contact messages: the form is public, triage is admin-only
	messageGroup := v1.Group("/messages")
	messageGroup.POST("", h.messages.Submit)
	messageGroup.GET("", h.messages.ListMessages, requireAuth, requireAdmin)
	messageGroup.GET("/:id", h.messages.GetMessage, requireAuth, requireAdmin)
	messageGroup.PUT("/:id/read", h.messages.MarkRead, requireAuth, requireAdmin)
	messageGroup.PUT("/:id/replied", h.messages.MarkReplied, requireAuth, requireAdmin)
	messageGroup.DELETE("/:id", h.messages.DeleteMessage, requireAuth, requireAdmin)

	// Blog: published articles are public, drafts and writes are admin-only
	blogGroup := v1.Group("/blogs")
	blogGroup.GET("", h.blogs.ListPublished)
	blogGroup.GET("/:id", h.blogs.GetPost)
	blogGroup.GET("/all", h.blogs.ListAll, requireAuth, requireAdmin)
	blogGroup.POST("", h.blogs.CreatePost, requireAuth, requireAdmin)
	blogGroup.PUT("/:id", h.blogs.UpdatePost, requireAuth, requireAdmin)
	blogGroup.DELETE("/:id", h.blogs.DeletePost, requireAuth, requireAdmin)

	// Admin maintenance tools
	adminGroup := v1.Group("/admin", requireAuth, requireAdmin)
	adminGroup.GET("/debug", h.debug.Dump)
	adminGroup.POST("/reset", h.debug.Reset)
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	registry.MustRegister(requestsTotal, requestDuration)

	// Custom metrics middleware
	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start)
			status := c.Response().Status

			requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(duration.Seconds())

			return err
		}
	})

	// Metrics endpoint
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	s.echo.GET("/metrics", echo.WrapHandler(metricsHandler))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// readinessCheck reports store reachability. The service still serves seed
// data when the store is down, so a failed ping degrades readiness without
// taking the process out of rotation by itself.
func (s *Server) readinessCheck(c echo.Context) error {
	if err := s.store.Ping(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "degraded",
			"reason": "store_unreachable",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Info("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// customErrorHandler handles HTTP errors
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  interface{}
		)

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			msg = he.Message
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		} else if e, ok := err.(*validator.ValidationErrors); ok {
			code = http.StatusBadRequest
			msg = map[string]string{"message": "validation failed", "details": e.Error()}
		} else {
			msg = map[string]string{"message": http.StatusText(code)}
		}

		if code == http.StatusInternalServerError {
			logger.Error("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		if !c.Response().Committed {
			if c.Request().Method == echo.HEAD {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, msg)
			}
			if err != nil {
				logger.Error("Error sending response", "error", err)
			}
		}
	}
}

// authMiddleware validates JWT tokens
func (s *Server) authMiddleware(authService *services.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
			}

			claims, err := authService.ValidateToken(parts[1])
			if err != nil {
				s.logger.Warn("Invalid token", "error", err, "ip", c.RealIP())
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			c.Set("user", claims.UserID)
			c.Set("user_email", claims.Email)
			c.Set("user_role", claims.Role)

			return next(c)
		}
	}
}

// requireRole middleware checks if user has required role
func (s *Server) requireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userRole := c.Get("user_role")
			if userRole == nil {
				return echo.NewHTTPError(http.StatusForbidden, "Role information not found")
			}

			role := string(userRole.(entities.UserRole))
			for _, requiredRole := range roles {
				if role == requiredRole {
					return next(c)
				}
			}

			userID, _ := c.Get("user").(string)
			s.logger.LogSecurityEvent("insufficient_permissions",
				userID,
				c.RealIP(),
				map[string]interface{}{
					"required_roles": roles,
					"user_role":      role,
					"endpoint":       c.Request().URL.Path,
				})

			return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
		}
	}
}
