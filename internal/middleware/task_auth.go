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

// LoadTask resolves the :id parameter to a task and stores it in context
func LoadTask(tasks *services.TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, ok := utils.ParseIDParam(c, "id")
		if !ok {
			apierrors.BadRequest(c, "Invalid task ID")
			c.Abort()
			return
		}

		task, err := tasks.GetTask(c.Request.Context(), taskID)
		if err != nil {
			if apierrors.KindOf(err) == apierrors.KindInternal {
				Logger(c).Error("failed to load task", zap.Uint64("task_id", taskID), zap.Error(err))
			}
			apierrors.Respond(c, err)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTask, task)
		c.Next()
	}
}

// GetTask retrieves the task stored by LoadTask
func GetTask(c *gin.Context) (*models.Task, bool) {
	v, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		return nil, false
	}

	task, ok := v.(*models.Task)
	return task, ok
}
