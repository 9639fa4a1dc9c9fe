package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-board-api/internal/constants"
	apierrors "github.com/yukikurage/project-board-api/internal/errors"
	"github.com/yukikurage/project-board-api/internal/models"
	"github.com/yukikurage/project-board-api/internal/session"
	"go.uber.org/zap"
)

// RequireAuth resolves the session user and aborts with 401 when there is none
func RequireAuth(serializer *session.Serializer) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := serializer.Deserialize(c)
		if err != nil {
			if apierrors.KindOf(err) == apierrors.KindInternal {
				Logger(c).Error("failed to resolve session user", zap.Error(err))
			}
			apierrors.Respond(c, err)
			c.Abort()
			return
		}

		// Store the user in context for easy access in handlers
		c.Set(constants.ContextKeyUser, user)
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	id, ok := userID.(uint64)
	return id, ok
}

// GetUser retrieves the current user from context
func GetUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}

	user, ok := v.(*models.User)
	return user, ok
}
