package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/padelpro/academy/internal/domain/entities"
	"github.com/padelpro/academy/internal/infrastructure/config"
	"github.com/padelpro/academy/internal/infrastructure/logger"
	"github.com/padelpro/academy/internal/ports"
)

// tokenClaims is the JWT payload for back-office access tokens
type tokenClaims struct {
	UserID string            `json:"user_id"`
	Email  string            `json:"email"`
	Role   entities.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// AuthService handles back-office authentication
type AuthService struct {
	userRepo    ports.UserRepository
	sessionRepo ports.SessionRepository
	jwtConfig   config.JWTConfig
	logger      *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo ports.UserRepository, sessionRepo ports.SessionRepository, jwtConfig config.JWTConfig, logger *logger.Logger) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtConfig:   jwtConfig,
		logger:      logger,
	}
}

// Login verifies credentials, records the current-user session and returns
// an access token.
func (s *AuthService) Login(ctx context.Context, req ports.LoginRequest) (*ports.AuthResponse, error) {
	user := s.userRepo.GetByEmail(ctx, req.Email)
	if user == nil {
		s.logger.Warn("Login attempt with unknown email", "email", req.Email)
		return nil, entities.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login attempt with invalid password", "email", req.Email, "user_id", user.ID)
		return nil, entities.ErrInvalidCredentials
	}

	now := time.Now()
	expiresAt := now.Add(s.jwtConfig.ExpiresIn)

	// The session record replaces any previous login; only login writes it
	// and only logout removes it.
	session := &entities.Session{
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		IssuedAt:  now.UTC().Format(time.RFC3339),
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	}
	if err := s.sessionRepo.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to record session: %w", err)
	}

	accessToken, err := s.generateAccessToken(user, now, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	s.logger.Info("User logged in", "user_id", user.ID, "email", user.Email)

	// Never hand the hash back out
	user.PasswordHash = ""

	return &ports.AuthResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwtConfig.ExpiresIn.Seconds()),
		User:        user,
	}, nil
}

// Logout clears the current-user session.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.sessionRepo.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.logger.Info("User logged out", "user_id", userID)
	return nil
}

// CurrentSession returns the signed-in user record, or nil. An expired
// session counts as signed out.
func (s *AuthService) CurrentSession(ctx context.Context) *entities.Session {
	session := s.sessionRepo.Get(ctx)
	if session == nil {
		return nil
	}
	if expires, err := time.Parse(time.RFC3339, session.ExpiresAt); err == nil && time.Now().After(expires) {
		return nil
	}
	return session
}

// ValidateToken parses and verifies an access token.
func (s *AuthService) ValidateToken(tokenString string) (*ports.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return &ports.Claims{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

func (s *AuthService) generateAccessToken(user *entities.User, issuedAt, expiresAt time.Time) (string, error) {
	claims := &tokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			Issuer:    s.jwtConfig.Issuer,
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtConfig.Secret))
}
