package service

import (
	"context"
	"errors"
	"fmt"

	"anoa.com/collegejournal/internal/entity"
	articleRepo "anoa.com/collegejournal/internal/modules/article/repository"
	"anoa.com/collegejournal/internal/modules/user/dto"
	userRepo "anoa.com/collegejournal/internal/modules/user/repository"
	"anoa.com/collegejournal/pkg/apperror"
	pkgdto "anoa.com/collegejournal/pkg/dto"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*pkgdto.UserResponse, error)
	GetAllUsers(ctx context.Context) ([]pkgdto.UserResponse, error)
	GetPublicUsers(ctx context.Context) ([]pkgdto.PublicUserResponse, error)
	GetUserByUsername(ctx context.Context, username string) (*pkgdto.PublicUserResponse, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*pkgdto.UserResponse, error)
	UpdateUserRole(ctx context.Context, id uuid.UUID, role string) (*pkgdto.UserResponse, error)
	DeleteUser(ctx context.Context, actor *entity.User, id uuid.UUID) error
}

type userService struct {
	userRepo    userRepo.UserRepository
	articleRepo articleRepo.ArticleRepository
}

func NewUserService(users userRepo.UserRepository, articles articleRepo.ArticleRepository) UserService {
	return &userService{userRepo: users, articleRepo: articles}
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*pkgdto.UserResponse, error) {
	if _, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("username %q already taken: %w", req.Username, apperror.ErrBadRequest)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = entity.RoleRedacteur
	}

	user := &entity.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		DisplayName:  req.DisplayName,
		Role:         role,
		Bio:          req.Bio,
		AvatarURL:    req.AvatarURL,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	resp := pkgdto.NewUserResponse(*user)
	return &resp, nil
}

func (s *userService) GetAllUsers(ctx context.Context) ([]pkgdto.UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	out := make([]pkgdto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, pkgdto.NewUserResponse(*u))
	}
	return out, nil
}

// GetPublicUsers lists everyone with their published article count, for the
// public author directory.
func (s *userService) GetPublicUsers(ctx context.Context) ([]pkgdto.PublicUserResponse, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	counts, err := s.articleRepo.CountPublishedByAuthor(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count articles: %w", err)
	}

	out := make([]pkgdto.PublicUserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, pkgdto.PublicUserResponse{
			UserResponse: pkgdto.NewUserResponse(*u),
			ArticleCount: counts[u.ID],
		})
	}
	return out, nil
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*pkgdto.PublicUserResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %q: %w", username, apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	counts, err := s.articleRepo.CountPublishedByAuthor(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count articles: %w", err)
	}

	return &pkgdto.PublicUserResponse{
		UserResponse: pkgdto.NewUserResponse(*user),
		ArticleCount: counts[user.ID],
	}, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*pkgdto.UserResponse, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	resp := pkgdto.NewUserResponse(*user)
	return &resp, nil
}

func (s *userService) UpdateUserRole(ctx context.Context, id uuid.UUID, role string) (*pkgdto.UserResponse, error) {
	if !entity.ValidRole(role) {
		return nil, fmt.Errorf("invalid role %q: %w", role, apperror.ErrInvalidInput)
	}

	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user role: %w", err)
	}

	resp := pkgdto.NewUserResponse(*user)
	return &resp, nil
}

func (s *userService) DeleteUser(ctx context.Context, actor *entity.User, id uuid.UUID) error {
	if actor.ID == id {
		return fmt.Errorf("cannot delete your own account: %w", apperror.ErrBadRequest)
	}

	if _, err := s.findUser(ctx, id); err != nil {
		return err
	}

	// Authored articles, comments and messages go with the account via the
	// cascade constraints.
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *userService) findUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", id, apperror.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}
