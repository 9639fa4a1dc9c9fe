package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/project-board-api/internal/constants"
	apierrors "github.com/yukikurage/project-board-api/internal/errors"
	"github.com/yukikurage/project-board-api/internal/models"
	"github.com/yukikurage/project-board-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = apierrors.New(apierrors.KindUnauthorized, apierrors.ErrCodeInvalidCredentials, "Incorrect email or password")
	ErrWrongAuthMethod    = apierrors.New(apierrors.KindUnauthorized, apierrors.ErrCodeWrongAuthMethod, "This account uses Google authentication")
	ErrEmailTaken         = apierrors.New(apierrors.KindConflict, apierrors.ErrCodeDuplicateEmail, "Email already in use")
	ErrExternalIDTaken    = apierrors.New(apierrors.KindConflict, apierrors.ErrCodeDuplicateExternalID, "External account already linked to another user")
	ErrUserNotFound       = apierrors.New(apierrors.KindNotFound, apierrors.ErrCodeNotFound, "User not found")
	ErrUsernameTooShort   = apierrors.New(apierrors.KindValidation, apierrors.ErrCodeInvalidInput, fmt.Sprintf("Username must be at least %d characters", constants.MinUsernameLength))
	ErrPasswordTooShort   = apierrors.New(apierrors.KindValidation, apierrors.ErrCodeInvalidInput, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
)

// AuthService verifies local credentials and registers password accounts.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// RegisterInput represents the required information to create a password account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register creates a user with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if len(username) < constants.MinUsernameLength {
		return nil, ErrUsernameTooShort
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: &hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, translateCreateUserError(err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies an email and password pair. A missing account and a wrong
// password both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, apierrors.Internal("Failed to log in", fmt.Errorf("failed to find user: %w", err))
	}

	if !user.HasPassword() {
		return nil, ErrWrongAuthMethod
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, apierrors.Internal("Failed to load user", fmt.Errorf("failed to find user: %w", err))
	}

	return user, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), constants.BcryptCost)
	if err != nil {
		return "", apierrors.Internal("Failed to hash password", err)
	}
	return string(hash), nil
}

func translateCreateUserError(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		return ErrEmailTaken
	case errors.Is(err, repository.ErrDuplicateExternalID):
		return ErrExternalIDTaken
	default:
		return apierrors.Internal("Failed to create user", err)
	}
}
