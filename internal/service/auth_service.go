package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/student-service/internal/auth"
	"github.com/spec-kit/student-service/internal/config"
	"github.com/spec-kit/student-service/internal/domain"
	"github.com/spec-kit/student-service/internal/events"
	"github.com/spec-kit/student-service/internal/repository"
	apperrors "github.com/spec-kit/student-service/pkg/util"
)

// ErrDuplicateUser is returned when registering an email that already
// has an account.
var ErrDuplicateUser = apperrors.NewConflict("email already registered")

// ErrInvalidCredentials is returned for every login failure. Unknown
// email and wrong password deliberately share this value so responses
// cannot be used to enumerate accounts.
var ErrInvalidCredentials = apperrors.NewUnauthorized("invalid credentials")

// AuthResult bundles the outcome of a successful register or login.
type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// AuthService coordinates registration and login flows. It holds no
// per-session state; a token's signature and expiry are the only record
// that a login happened.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// NewAuthService builds the service with explicit collaborators.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, dispatcher events.Dispatcher, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTLMillis),
		dispatcher: dispatcher,
		logger:     logger,
		bcryptCost: cfg.BcryptCost,
	}
}

// Register creates a new account with role STUDENT and issues a token
// for it. An existing email fails with ErrDuplicateUser and leaves the
// stored account untouched.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateUser
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleStudent,
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	token, exp, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewEvent(events.EventUserRegistered, user.Email, events.UserRegisteredPayload{
		UserID: user.ID,
		Name:   user.Name,
		Role:   user.Role,
	}))

	return &AuthResult{User: user, Token: token, ExpiresAt: exp}, nil
}

// Login verifies credentials and issues a fresh token. Previously issued
// tokens stay valid; they are independent artifacts. The failure cause
// (unknown email vs wrong password) is visible only in debug logs, never
// in the returned error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			s.logger.Debug("login attempt for unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		s.logger.Warn("stored password hash is undecodable", zap.String("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}
	if !ok {
		s.logger.Debug("login attempt with wrong password")
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewEvent(events.EventUserLoggedIn, user.Email, events.UserLoggedInPayload{
		UserID: user.ID,
	}))

	return &AuthResult{User: user, Token: token, ExpiresAt: exp}, nil
}

// Logout is a non-revoking no-op. Tokens are stateless, so there is no
// server-side session to tear down; a logged-out token stays valid until
// its expiry elapses. Clients discard their copy.
func (s *AuthService) Logout(_ context.Context) error {
	return nil
}

// TokenManager exposes the underlying token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event publish failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
