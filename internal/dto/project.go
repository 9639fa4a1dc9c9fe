package dto

import (
	"time"

	"github.com/yukikurage/project-board-api/internal/models"
	"github.com/yukikurage/project-board-api/internal/services"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64     `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	CreatorID   uint64     `json:"creatorId"`
	Deadline    *time.Time `json:"deadline"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// ProjectMemberDTO represents a membership in API responses
type ProjectMemberDTO struct {
	ID        uint64             `json:"id"`
	ProjectID uint64             `json:"projectId"`
	UserID    uint64             `json:"userId"`
	Role      models.ProjectRole `json:"role"`
	JoinedAt  time.Time          `json:"joinedAt"`
}

// ProgressDTO represents task completion for a project
type ProgressDTO struct {
	Total     int                       `json:"total"`
	Completed int                       `json:"completed"`
	Percent   float64                   `json:"percent"`
	ByStatus  map[models.TaskStatus]int `json:"byStatus"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		CreatorID:   project.CreatorID,
		Deadline:    project.Deadline,
		CreatedAt:   project.CreatedAt,
	}
}

// ToProjectDTOs converts a slice of Project models
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	result := make([]ProjectDTO, 0, len(projects))
	for _, p := range projects {
		result = append(result, ToProjectDTO(p))
	}
	return result
}

// ToProjectMemberDTOs converts a slice of ProjectMember models
func ToProjectMemberDTOs(members []models.ProjectMember) []ProjectMemberDTO {
	result := make([]ProjectMemberDTO, 0, len(members))
	for _, m := range members {
		result = append(result, ProjectMemberDTO{
			ID:        m.ID,
			ProjectID: m.ProjectID,
			UserID:    m.UserID,
			Role:      m.Role,
			JoinedAt:  m.JoinedAt,
		})
	}
	return result
}

// ToProgressDTO converts a computed Progress
func ToProgressDTO(p services.Progress) ProgressDTO {
	return ProgressDTO{
		Total:     p.Total,
		Completed: p.Completed,
		Percent:   p.Percent,
		ByStatus:  p.ByStatus,
	}
}
