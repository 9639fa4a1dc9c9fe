package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-board-api/internal/constants"
	apierrors "github.com/yukikurage/project-board-api/internal/errors"
	"github.com/yukikurage/project-board-api/internal/models"
	"github.com/yukikurage/project-board-api/internal/services"
	"github.com/yukikurage/project-board-api/internal/utils"
	"go.uber.org/zap"
)

// LoadProject resolves the :id parameter to a project and stores it in context
func LoadProject(projects *services.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, ok := utils.ParseIDParam(c, "id")
		if !ok {
			apierrors.BadRequest(c, "Invalid project ID")
			c.Abort()
			return
		}

		project, err := projects.GetProject(c.Request.Context(), projectID)
		if err != nil {
			if apierrors.KindOf(err) == apierrors.KindInternal {
				Logger(c).Error("failed to load project", zap.Uint64("project_id", projectID), zap.Error(err))
			}
			apierrors.Respond(c, err)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyProject, project)
		c.Next()
	}
}

// GetProject retrieves the project stored by LoadProject
func GetProject(c *gin.Context) (*models.Project, bool) {
	v, exists := c.Get(constants.ContextKeyProject)
	if !exists {
		return nil, false
	}

	project, ok := v.(*models.Project)
	return project, ok
}
