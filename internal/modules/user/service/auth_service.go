package service

import (
	"context"
	"errors"
	"fmt"

	userRepo "anoa.com/collegejournal/internal/modules/user/repository"
	"anoa.com/collegejournal/pkg/apperror"
	pkgdto "anoa.com/collegejournal/pkg/dto"
	"anoa.com/collegejournal/pkg/session"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	// Login verifies credentials and opens a session. The returned string is
	// the opaque session id for the cookie.
	Login(ctx context.Context, username, password string) (*pkgdto.UserResponse, string, error)
	Logout(ctx context.Context, sessionID string) error
}

type authService struct {
	userRepo userRepo.UserRepository
	sessions session.Store
}

func NewAuthService(users userRepo.UserRepository, sessions session.Store) AuthService {
	return &authService{userRepo: users, sessions: sessions}
}

func (s *authService) Login(ctx context.Context, username, password string) (*pkgdto.UserResponse, string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same message as a bad password so usernames cannot be probed.
			return nil, "", fmt.Errorf("invalid credentials: %w", apperror.ErrUnauthorized)
		}
		return nil, "", fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("invalid credentials: %w", apperror.ErrUnauthorized)
	}

	sid, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create session: %w", err)
	}

	zap.L().Info("user logged in", zap.String("username", user.Username))

	resp := pkgdto.NewUserResponse(*user)
	return &resp, sid, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Destroy(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}
