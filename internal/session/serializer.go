// Package session maps authenticated users to the request session and back.
// Only the user id is stored in the session.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-board-api/internal/constants"
	apierrors "github.com/yukikurage/project-board-api/internal/errors"
	"github.com/yukikurage/project-board-api/internal/models"
	"gorm.io/gorm"
)

var (
	ErrNoSession          = apierrors.New(apierrors.KindUnauthorized, apierrors.ErrCodeUnauthorized, "Not authenticated")
	ErrSessionUserMissing = apierrors.New(apierrors.KindUnauthorized, apierrors.ErrCodeSessionUserMissing, "Session user no longer exists")
)

// UserFinder loads users by id.
type UserFinder interface {
	FindByID(ctx context.Context, id uint64) (*models.User, error)
}

// Serializer stores and resolves the session user.
type Serializer struct {
	users UserFinder
}

// NewSerializer creates a new Serializer.
func NewSerializer(users UserFinder) *Serializer {
	return &Serializer{users: users}
}

// Serialize starts a session for user, replacing any previous session values.
func (s *Serializer) Serialize(c *gin.Context, user *models.User) error {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Set(constants.ContextKeyUserID, user.ID)
	if err := sess.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Deserialize resolves the session to its user. A session whose user no longer
// exists is cleared and reported as ErrSessionUserMissing.
func (s *Serializer) Deserialize(c *gin.Context) (*models.User, error) {
	sess := sessions.Default(c)
	userID, ok := toUserID(sess.Get(constants.ContextKeyUserID))
	if !ok {
		return nil, ErrNoSession
	}

	user, err := s.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if clearErr := s.Clear(c); clearErr != nil {
				return nil, apierrors.Internal("Failed to clear session", clearErr)
			}
			return nil, ErrSessionUserMissing
		}
		return nil, apierrors.Internal("Failed to load session user", err)
	}
	return user, nil
}

// Clear ends the session.
func (s *Serializer) Clear(c *gin.Context) error {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := sess.Save(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// SaveState records the OAuth state issued for the current login attempt.
func SaveState(c *gin.Context, state string) error {
	sess := sessions.Default(c)
	sess.Set(constants.SessionKeyState, state)
	return sess.Save()
}

// ConsumeState returns the stored OAuth state and removes it from the session.
func ConsumeState(c *gin.Context) (string, error) {
	sess := sessions.Default(c)
	state, _ := sess.Get(constants.SessionKeyState).(string)
	sess.Delete(constants.SessionKeyState)
	if err := sess.Save(); err != nil {
		return "", err
	}
	return state, nil
}

func toUserID(v interface{}) (uint64, bool) {
	switch id := v.(type) {
	case uint64:
		return id, true
	case uint:
		return uint64(id), true
	case int:
		if id < 0 {
			return 0, false
		}
		return uint64(id), true
	case int64:
		if id < 0 {
			return 0, false
		}
		return uint64(id), true
	case float64:
		if id < 0 {
			return 0, false
		}
		return uint64(id), true
	default:
		return 0, false
	}
}
