package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/sakif/your-yoda/internal/apperror"
	"github.com/sakif/your-yoda/internal/auth"
	"github.com/sakif/your-yoda/internal/model"
	"github.com/sakif/your-yoda/internal/repository"
)

const (
	MaxNameLength     = 100
	MinPasswordLength = 6
)

// AuthService registers and signs in users and issues their bearer tokens.
//
//	AuthHandler (HTTP) → AuthService → UserRepository
//	                   ↘ TokenService (JWT), PasswordService (bcrypt)
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// AuthResult bundles the user record and the issued token so the handler can
// answer in one step.
type AuthResult struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// Register creates an account and signs it in. A taken email is a validation
// error on field "email", not a conflict: the client treats it as bad input.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, apperror.ValidationFailed("name", "name is required")
	}
	if len(name) > MaxNameLength {
		return nil, apperror.ValidationFailed("name",
			fmt.Sprintf("name must be %d characters or less", MaxNameLength))
	}
	if email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperror.ValidationFailed("email", "email is not a valid address")
	}
	if len(password) < MinPasswordLength {
		return nil, apperror.ValidationFailed("password",
			fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, apperror.ValidationFailed("password",
			fmt.Sprintf("password must be %d bytes or fewer", auth.MaxPasswordBytes))
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, apperror.ValidationFailed("email", "email is already registered")
		}
		return nil, fmt.Errorf("service/auth: creating user: %w", err)
	}

	s.logger.Info("user registered", slog.String("userID", user.ID))

	return s.issue(user)
}

// Login checks an email/password pair. Unknown emails and wrong passwords get
// the same apperror.Unauthorized so callers can't probe for accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperror.ValidationFailed("email", "email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, invalidCredentials()
		}
		return nil, fmt.Errorf("service/auth: looking up user: %w", err)
	}

	// GitHub-only accounts have no hash and can't sign in with a password.
	if user.PasswordHash == "" {
		return nil, invalidCredentials()
	}
	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			s.logger.Error("password verification failed",
				slog.String("userID", user.ID),
				slog.String("error", err.Error()),
			)
		}
		return nil, invalidCredentials()
	}

	s.logger.Info("user logged in", slog.String("userID", user.ID))

	return s.issue(user)
}

// LoginWithGitHub signs in a GitHub user, creating an account on first visit.
// Accounts are matched by handle, so a GitHub user whose public email is
// already registered signs into that account.
func (s *AuthService) LoginWithGitHub(ctx context.Context, gh *auth.GitHubUser) (*AuthResult, error) {
	if gh == nil {
		return nil, fmt.Errorf("service/auth: GitHub user must not be nil")
	}

	handle := gh.Handle()

	user, err := s.users.GetByEmail(ctx, handle)
	switch {
	case err == nil:
	case errors.Is(err, apperror.ErrNotFound):
		user = &model.User{
			Name:     gh.DisplayName(),
			Email:    handle,
			GitHubID: gh.ID,
		}
		if err := s.users.Create(ctx, user); err != nil {
			if !errors.Is(err, apperror.ErrConflict) {
				return nil, fmt.Errorf("service/auth: creating GitHub user %d: %w", gh.ID, err)
			}
			// Lost a race with a concurrent callback for the same account.
			if user, err = s.users.GetByEmail(ctx, handle); err != nil {
				return nil, fmt.Errorf("service/auth: reloading GitHub user %d: %w", gh.ID, err)
			}
		} else {
			s.logger.Info("user registered via GitHub",
				slog.String("userID", user.ID),
				slog.String("login", gh.Login),
			)
		}
	default:
		return nil, fmt.Errorf("service/auth: looking up GitHub user %d: %w", gh.ID, err)
	}

	return s.issue(user)
}

// GetUserByID returns the user for the given ID. Used by /auth/me.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, apperror.ValidationFailed("id", "user ID is required")
	}
	return s.users.GetByID(ctx, id)
}

// Verify checks a bearer token and returns the identity it carries.
func (s *AuthService) Verify(token string) (auth.Identity, error) {
	id, err := s.tokens.Validate(token)
	if err != nil {
		return auth.Identity{}, fmt.Errorf("service/auth: %w", err)
	}
	return id, nil
}

func (s *AuthService) issue(user *model.User) (*AuthResult, error) {
	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %s: %w", user.ID, err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

func invalidCredentials() *apperror.AppError {
	return apperror.Unauthorized("invalid email or password")
}
