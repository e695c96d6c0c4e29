package authservice

import (
	"context"
	"errors"
	"strings"

	"github.com/mcavalcanti/billquest/internal/domain"
	"go.uber.org/zap"
)

// UsersAPI is the users collection of the remote service.
type UsersAPI interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, user domain.User) (*domain.User, error)
}

// SessionStore persists the signed-in email across app starts.
type SessionStore interface {
	Save(email string) error
	Load() (string, error)
	Clear() error
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrMissingFields      = errors.New("email and password are required")
)

type Service struct {
	api     UsersAPI
	session SessionStore
}

func New(api UsersAPI, session SessionStore) *Service {
	return &Service{
		api:     api,
		session: session,
	}
}

// Login scans the users collection for an email+password match and persists
// the email as the session identity.
//
// The upstream service stores and compares passwords in plaintext and its
// collections are readable by any client. Kept for compatibility with that
// backend; do not reuse this flow against a real user store.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	users, err := s.api.ListUsers(ctx)
	if err != nil {
		zap.L().Error("failed to list users", zap.Error(err))
		return nil, err
	}

	for _, user := range users {
		if strings.EqualFold(user.Email, email) && user.Password == password {
			if err := s.session.Save(user.Email); err != nil {
				zap.L().Error("failed to persist session", zap.Error(err))
				return nil, err
			}
			zap.L().Info("user logged in", zap.String("email", user.Email))
			return &user, nil
		}
	}

	zap.L().Info("login rejected", zap.String("email", email))
	return nil, ErrInvalidCredentials
}

func (s *Service) Register(ctx context.Context, user domain.User) (*domain.User, error) {
	if user.Email == "" || user.Password == "" {
		return nil, ErrMissingFields
	}

	users, err := s.api.ListUsers(ctx)
	if err != nil {
		zap.L().Error("failed to list users", zap.Error(err))
		return nil, err
	}
	for _, existing := range users {
		if strings.EqualFold(existing.Email, user.Email) {
			zap.L().Info("email already registered", zap.String("email", user.Email))
			return nil, ErrEmailTaken
		}
	}

	created, err := s.api.CreateUser(ctx, user)
	if err != nil {
		zap.L().Error("failed to create user", zap.Error(err))
		return nil, err
	}

	zap.L().Info("user registered", zap.String("email", created.Email))
	return created, nil
}

// Current returns the persisted session email, empty when logged out.
func (s *Service) Current() (string, error) {
	return s.session.Load()
}

func (s *Service) Logout() error {
	if err := s.session.Clear(); err != nil {
		zap.L().Error("failed to clear session", zap.Error(err))
		return err
	}
	zap.L().Info("user logged out")
	return nil
}
