package dto

import (
	"time"

	"github.com/yukikurage/project-board-api/internal/models"
	"github.com/yukikurage/project-board-api/internal/services"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64            `json:"id"`
	ProjectID   uint64            `json:"projectId"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	AssigneeID  *uint64           `json:"assigneeId"`
	Status      models.TaskStatus `json:"status"`
	Deadline    *time.Time        `json:"deadline"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// TaskDraftDTO represents an unsaved task suggestion
type TaskDraftDTO struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline"`
}

// TaskDraftsResponse wraps generated suggestions
type TaskDraftsResponse struct {
	Tasks []TaskDraftDTO `json:"tasks"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		ProjectID:   task.ProjectID,
		Title:       task.Title,
		Description: task.Description,
		AssigneeID:  task.AssigneeID,
		Status:      task.Status,
		Deadline:    task.Deadline,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToTaskDTOs converts a slice of Task models
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	result := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		result = append(result, ToTaskDTO(t))
	}
	return result
}

// ToTaskDraftsResponse converts generated drafts
func ToTaskDraftsResponse(drafts []services.TaskDraft) TaskDraftsResponse {
	tasks := make([]TaskDraftDTO, 0, len(drafts))
	for _, d := range drafts {
		tasks = append(tasks, TaskDraftDTO{
			Title:       d.Title,
			Description: d.Description,
			Deadline:    d.Deadline,
		})
	}
	return TaskDraftsResponse{Tasks: tasks}
}
