package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/padelpro/academy/internal/adapters/repository"
	"github.com/padelpro/academy/internal/application/services"
	"github.com/padelpro/academy/internal/domain/entities"
	"github.com/padelpro/academy/internal/infrastructure/config"
	"github.com/padelpro/academy/internal/infrastructure/kvstore"
	"github.com/padelpro/academy/internal/infrastructure/logger"
	"github.com/padelpro/academy/internal/infrastructure/server"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the PadelPro Academy API server",
		Long:  "Start the API server with all configured routes and middleware",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewUserCommand creates the back-office account management command
func NewUserCommand() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Back-office account commands",
		Long:  "Create and manage accounts that can sign in to the back office",
	}

	createUserCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new back-office account",
		Run: func(cmd *cobra.Command, args []string) {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			name, _ := cmd.Flags().GetString("name")
			role, _ := cmd.Flags().GetString("role")

			if email == "" || password == "" {
				log.Fatal("Email and password are required")
			}

			createUser(email, password, name, role)
		},
	}

	createUserCmd.Flags().String("email", "", "Account email (required)")
	createUserCmd.Flags().String("password", "", "Account password (required)")
	createUserCmd.Flags().String("name", "", "Display name")
	createUserCmd.Flags().String("role", "admin", "Account role (admin, teacher, student)")

	userCmd.AddCommand(createUserCmd)
	return userCmd
}

// NewDataCommand creates the data maintenance command with subcommands
func NewDataCommand() *cobra.Command {
	dataCmd := &cobra.Command{
		Use:   "data",
		Short: "Collection maintenance commands",
		Long:  "Inspect and reset the stored collections",
	}

	dataCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Print per-collection record counts",
		Run: func(cmd *cobra.Command, args []string) {
			dumpData()
		},
	})

	dataCmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Drop every collection so the next read reseeds it",
		Run: func(cmd *cobra.Command, args []string) {
			resetData()
		},
	})

	return dataCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print PadelPro Academy version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("PadelPro Academy v1.0.0")
		},
	}
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	store, err := newStore(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to store", "error", err)
	}
	defer store.Close()

	notifier := kvstore.NewNotifier()

	srv, err := server.New(cfg, store, notifier, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize server", "error", err)
	}

	appLogger.Info("Starting PadelPro Academy API server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
		"redis", cfg.Redis.Enabled(),
	)

	go func() {
		if err := srv.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
			appLogger.Error("Server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Shutdown failed", "error", err)
	}
}

func createUser(email, password, name, role string) {
	store, appLogger := mustConnect()
	defer store.Close()
	defer appLogger.Sync()

	userRole := entities.UserRole(role)
	if !userRole.IsValid() {
		log.Fatalf("Unknown role %q", role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(store, appLogger, nil)
	if users.GetByEmail(ctx, email) != nil {
		log.Fatalf("Account %s already exists", email)
	}

	user, err := users.Save(ctx, &entities.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         userRole,
	})
	if err != nil {
		log.Fatalf("Failed to create account: %v", err)
	}

	fmt.Printf("Created %s account %s (%s)\n", user.Role, user.Email, user.ID)
}

func dumpData() {
	store, appLogger := mustConnect()
	defer store.Close()
	defer appLogger.Sync()

	ctx := context.Background()
	maintenance := services.NewMaintenanceService(
		repository.NewTeacherRepository(store, appLogger, nil),
		repository.NewStudentRepository(store, appLogger, nil),
		repository.NewEventRepository(store, appLogger, nil),
		repository.NewBookingRepository(store, appLogger, nil),
		repository.NewMessageRepository(store, appLogger, nil),
		repository.NewBlogRepository(store, appLogger, nil),
		repository.NewSessionRepository(store, appLogger),
		appLogger,
	)

	out, err := json.MarshalIndent(maintenance.Dump(ctx), "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode dump: %v", err)
	}
	fmt.Println(string(out))
}

func resetData() {
	store, appLogger := mustConnect()
	defer store.Close()
	defer appLogger.Sync()

	ctx := context.Background()
	if err := store.Delete(ctx, append([]string{repository.KeySession}, repository.CollectionKeys...)...); err != nil {
		log.Fatalf("Failed to reset collections: %v", err)
	}

	fmt.Println("All collections reset; next read reseeds them")
}

func mustConnect() (kvstore.Store, *logger.Logger) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	store, err := newStore(cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to connect to store: %v", err)
	}

	return store, appLogger
}

func newLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(logger.Config{
		Level:  cfg.Logger.Level,
		Format: cfg.Logger.Format,
		Output: cfg.Logger.Output,
	})
}

// newStore picks the backend: Redis when a host is configured, otherwise the
// in-memory store so a bare checkout runs with zero setup.
func newStore(cfg *config.Config, appLogger *logger.Logger) (kvstore.Store, error) {
	if cfg.Redis.Enabled() {
		return kvstore.NewRedisStore(cfg.Redis.GetAddr(), cfg.Redis.Password, cfg.Redis.DB)
	}

	appLogger.Warn("No Redis host configured, using in-memory store; data will not survive a restart")
	return kvstore.NewMemoryStore(), nil
}
