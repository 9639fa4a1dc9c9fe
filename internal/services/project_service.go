package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apierrors "github.com/yukikurage/project-board-api/internal/errors"
	"github.com/yukikurage/project-board-api/internal/models"
	"github.com/yukikurage/project-board-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound     = apierrors.New(apierrors.KindNotFound, apierrors.ErrCodeNotFound, "Project not found")
	ErrProjectNameRequired = apierrors.New(apierrors.KindValidation, apierrors.ErrCodeInvalidInput, "Project name is required")
)

// ProjectService handles project and membership business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	userRepo    repository.UserRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository, userRepo repository.UserRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		userRepo:    userRepo,
	}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Name        string
	Description *string
	Deadline    *time.Time
	CreatorID   uint64
}

// Progress summarizes task completion for a project
type Progress struct {
	Total     int
	Completed int
	Percent   float64
	ByStatus  map[models.TaskStatus]int
}

// CreateProject creates a project owned by its creator
func (s *ProjectService) CreateProject(ctx context.Context, input CreateProjectInput) (*models.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrProjectNameRequired
	}

	project := &models.Project{
		Name:        name,
		Description: input.Description,
		Deadline:    input.Deadline,
		CreatorID:   input.CreatorID,
	}
	if err := s.projectRepo.CreateWithOwner(ctx, project); err != nil {
		return nil, apierrors.Internal("Failed to create project", err)
	}

	return project, nil
}

// ListProjects returns every project the user is a member of
func (s *ProjectService) ListProjects(ctx context.Context, userID uint64) ([]models.Project, error) {
	projects, err := s.projectRepo.ListByMember(ctx, userID)
	if err != nil {
		return nil, apierrors.Internal("Failed to fetch projects", fmt.Errorf("failed to list projects: %w", err))
	}
	return projects, nil
}

// GetProject returns a project by ID
func (s *ProjectService) GetProject(ctx context.Context, projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, apierrors.Internal("Failed to fetch project", fmt.Errorf("failed to find project: %w", err))
	}
	return project, nil
}

// ListMembers returns the memberships of a project
func (s *ProjectService) ListMembers(ctx context.Context, projectID uint64) ([]models.ProjectMember, error) {
	members, err := s.projectRepo.ListMembers(ctx, projectID)
	if err != nil {
		return nil, apierrors.Internal("Failed to fetch members", fmt.Errorf("failed to list members: %w", err))
	}
	return members, nil
}

// AddMember grants userID a role in the project. Adding an existing member
// keeps the existing membership.
func (s *ProjectService) AddMember(ctx context.Context, projectID, userID uint64, role models.ProjectRole) error {
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return err
	}
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return apierrors.Internal("Failed to add member", fmt.Errorf("failed to find user: %w", err))
	}

	member := &models.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
	}
	if err := s.projectRepo.AddMember(ctx, member); err != nil {
		return apierrors.Internal("Failed to add member", err)
	}
	return nil
}

// Progress computes completion over the project's tasks. A project without
// tasks reports 0%.
func (s *ProjectService) Progress(ctx context.Context, projectID uint64) (*Progress, error) {
	tasks, err := s.taskRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, apierrors.Internal("Failed to compute progress", fmt.Errorf("failed to list tasks: %w", err))
	}

	progress := &Progress{
		Total:    len(tasks),
		ByStatus: make(map[models.TaskStatus]int, len(models.TaskStatuses)),
	}
	for _, status := range models.TaskStatuses {
		progress.ByStatus[status] = 0
	}
	for _, task := range tasks {
		progress.ByStatus[task.Status]++
		if task.Status == models.TaskStatusDone {
			progress.Completed++
		}
	}
	if progress.Total > 0 {
		progress.Percent = float64(progress.Completed) / float64(progress.Total) * 100
	}

	return progress, nil
}
