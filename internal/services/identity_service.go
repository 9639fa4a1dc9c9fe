package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/yukikurage/project-board-api/internal/constants"
	apierrors "github.com/yukikurage/project-board-api/internal/errors"
	"github.com/yukikurage/project-board-api/internal/models"
	"github.com/yukikurage/project-board-api/internal/oauth"
	"github.com/yukikurage/project-board-api/internal/repository"
	"gorm.io/gorm"
)

var ErrProfileIncomplete = apierrors.New(apierrors.KindUnauthorized, apierrors.ErrCodeProfileIncomplete, "No email found in external profile")

var whitespace = regexp.MustCompile(`\s+`)

// IdentityService resolves external identities to local users.
type IdentityService struct {
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewIdentityService creates a new IdentityService.
func NewIdentityService(userRepo repository.UserRepository) *IdentityService {
	return &IdentityService{
		userRepo: userRepo,
		now:      time.Now,
	}
}

// Resolve returns the user for profile. A known external id wins; otherwise an
// account sharing the profile's first email is linked; otherwise a new account
// is created.
func (s *IdentityService) Resolve(ctx context.Context, profile oauth.Profile) (*models.User, error) {
	user, err := s.userRepo.FindByExternalID(ctx, profile.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierrors.Internal("Failed to resolve account", fmt.Errorf("failed to find user by external id: %w", err))
	}

	email := firstEmail(profile.Emails)
	if email == "" {
		return nil, ErrProfileIncomplete
	}

	user, err = s.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return s.link(ctx, user, profile.ID)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, apierrors.Internal("Failed to resolve account", fmt.Errorf("failed to find user by email: %w", err))
	}

	externalID := profile.ID
	user = &models.User{
		Username:   s.usernameFor(profile.DisplayName),
		Email:      email,
		ExternalID: &externalID,
	}
	if profile.DisplayName != "" {
		name := profile.DisplayName
		user.DisplayName = &name
	}
	if profile.AvatarURL != "" {
		avatar := profile.AvatarURL
		user.AvatarURL = &avatar
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateExternalID) {
			// A concurrent first login for the same identity won the insert.
			if existing, findErr := s.userRepo.FindByExternalID(ctx, profile.ID); findErr == nil {
				return existing, nil
			}
		}
		return nil, translateCreateUserError(err)
	}

	return user, nil
}

func (s *IdentityService) link(ctx context.Context, user *models.User, externalID string) (*models.User, error) {
	if err := s.userRepo.LinkExternalID(ctx, user.ID, externalID); err != nil {
		if errors.Is(err, repository.ErrDuplicateExternalID) {
			return nil, ErrExternalIDTaken
		}
		return nil, apierrors.Internal("Failed to link account", fmt.Errorf("failed to link external id: %w", err))
	}
	user.ExternalID = &externalID
	return user, nil
}

// usernameFor derives a username from a display name: whitespace runs become
// underscores and the result is lower-cased.
func (s *IdentityService) usernameFor(displayName string) string {
	username := strings.ToLower(whitespace.ReplaceAllString(displayName, "_"))
	if username == "" {
		return fmt.Sprintf("%s%d", constants.PlaceholderUsernamePrefix, s.now().UnixMilli())
	}
	return username
}

func firstEmail(emails []string) string {
	for _, e := range emails {
		if e = strings.TrimSpace(e); e != "" {
			return e
		}
	}
	return ""
}
