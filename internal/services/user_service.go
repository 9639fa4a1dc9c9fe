package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apierrors "github.com/yukikurage/project-board-api/internal/errors"
	"github.com/yukikurage/project-board-api/internal/models"
	"github.com/yukikurage/project-board-api/internal/repository"
	"gorm.io/gorm"
)

// UserService exposes direct user management outside the login flows.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput represents input for creating a user. Password is optional.
type CreateUserInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName *string
	AvatarURL   *string
}

// CreateUser inserts a user, hashing the password when one is supplied.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	user := &models.User{
		Username:    strings.TrimSpace(input.Username),
		Email:       strings.TrimSpace(input.Email),
		DisplayName: input.DisplayName,
		AvatarURL:   input.AvatarURL,
	}
	if input.Password != "" {
		hash, err := hashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = &hash
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, translateCreateUserError(err)
	}
	return user, nil
}

// AddPoints adjusts the user's points by delta and returns the new total.
func (s *UserService) AddPoints(ctx context.Context, userID uint64, delta int) (int, error) {
	points, err := s.userRepo.AddPoints(ctx, userID, delta)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, apierrors.Internal("Failed to update points", fmt.Errorf("failed to add points: %w", err))
	}
	return points, nil
}
