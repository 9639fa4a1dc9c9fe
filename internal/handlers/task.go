package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-board-api/internal/dto"
	apierrors "github.com/yukikurage/project-board-api/internal/errors"
	"github.com/yukikurage/project-board-api/internal/middleware"
	"github.com/yukikurage/project-board-api/internal/models"
	"github.com/yukikurage/project-board-api/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask creates a task. A status in the body is accepted but new tasks
// always start as todo.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		ProjectID   uint64            `json:"projectId" binding:"required"`
		Title       string            `json:"title" binding:"required"`
		Description *string           `json:"description"`
		AssigneeID  *uint64           `json:"assigneeId"`
		Deadline    *time.Time        `json:"deadline"`
		Status      models.TaskStatus `json:"status"`
	}

	var req CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), services.CreateTaskInput{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		AssigneeID:  req.AssigneeID,
		Deadline:    req.Deadline,
		Status:      req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// ListProjectTasks returns the tasks of the project loaded by middleware.LoadProject
func (h *TaskHandler) ListProjectTasks(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.NotFound(c, "Project not found")
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), project.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns the task loaded by middleware.LoadTask
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.NotFound(c, "Task not found")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateStatus moves a task to another workflow state
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	type UpdateStatusRequest struct {
		Status models.TaskStatus `json:"status" binding:"required,taskstatus"`
	}

	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.NotFound(c, "Task not found")
		return
	}

	var req UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.taskService.UpdateStatus(c.Request.Context(), task.ID, req.Status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// AssignTask sets the task's assignee
func (h *TaskHandler) AssignTask(c *gin.Context) {
	type AssignTaskRequest struct {
		UserID uint64 `json:"userId" binding:"required"`
	}

	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.NotFound(c, "Task not found")
		return
	}

	var req AssignTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.taskService.AssignTask(c.Request.Context(), task.ID, req.UserID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// GenerateTasks drafts tasks for the project from free text using AI
func (h *TaskHandler) GenerateTasks(c *gin.Context) {
	type GenerateTasksRequest struct {
		Text string `json:"text" binding:"required"`
	}

	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.NotFound(c, "Project not found")
		return
	}

	var req GenerateTasksRequest
	if !bindJSON(c, &req) {
		return
	}

	drafts, err := h.taskService.DraftTasks(c.Request.Context(), project, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDraftsResponse(drafts))
}
