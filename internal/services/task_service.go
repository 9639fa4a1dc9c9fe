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
	ErrTaskNotFound           = apierrors.New(apierrors.KindNotFound, apierrors.ErrCodeNotFound, "Task not found")
	ErrTitleRequired          = apierrors.New(apierrors.KindValidation, apierrors.ErrCodeInvalidInput, "Title is required")
	ErrInvalidTaskStatus      = apierrors.New(apierrors.KindValidation, apierrors.ErrCodeInvalidInput, "Invalid status")
	ErrAIServiceNotConfigured = apierrors.New(apierrors.KindUnavailable, apierrors.ErrCodeServiceUnavailable, "AI service is not configured")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	drafter     TaskDrafter
}

// NewTaskService creates a new TaskService. drafter may be nil.
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, userRepo repository.UserRepository, drafter TaskDrafter) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		drafter:     drafter,
	}
}

// CreateTaskInput represents input for creating a task. Any caller-supplied
// status is ignored; new tasks start as todo.
type CreateTaskInput struct {
	ProjectID   uint64
	Title       string
	Description *string
	AssigneeID  *uint64
	Deadline    *time.Time
	Status      models.TaskStatus
}

// CreateTask creates a task in an existing project
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	if err := s.ensureProject(ctx, input.ProjectID); err != nil {
		return nil, err
	}
	if input.AssigneeID != nil {
		if err := s.ensureUser(ctx, *input.AssigneeID); err != nil {
			return nil, err
		}
	}

	task := &models.Task{
		ProjectID:   input.ProjectID,
		Title:       title,
		Description: input.Description,
		AssigneeID:  input.AssigneeID,
		Deadline:    input.Deadline,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, apierrors.Internal("Failed to create task", fmt.Errorf("failed to create task: %w", err))
	}

	return task, nil
}

// ListTasks returns the tasks of a project
func (s *TaskService) ListTasks(ctx context.Context, projectID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, apierrors.Internal("Failed to fetch tasks", fmt.Errorf("failed to list tasks: %w", err))
	}
	return tasks, nil
}

// GetTask returns a task by ID
func (s *TaskService) GetTask(ctx context.Context, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, apierrors.Internal("Failed to fetch task", fmt.Errorf("failed to find task: %w", err))
	}
	return task, nil
}

// UpdateStatus moves a task to another workflow state
func (s *TaskService) UpdateStatus(ctx context.Context, taskID uint64, status models.TaskStatus) error {
	if !status.Valid() {
		return ErrInvalidTaskStatus
	}
	return s.translateUpdateError(s.taskRepo.UpdateStatus(ctx, taskID, status), "Failed to update status")
}

// AssignTask sets the task's assignee. Project membership is not required.
func (s *TaskService) AssignTask(ctx context.Context, taskID, userID uint64) error {
	if err := s.ensureUser(ctx, userID); err != nil {
		return err
	}
	return s.translateUpdateError(s.taskRepo.Assign(ctx, taskID, userID), "Failed to assign task")
}

// DraftTasks suggests tasks for the project from free text without saving them
func (s *TaskService) DraftTasks(ctx context.Context, project *models.Project, text string) ([]TaskDraft, error) {
	if s.drafter == nil {
		return nil, ErrAIServiceNotConfigured
	}

	drafts, err := s.drafter.DraftTasks(ctx, project.Name, text)
	if err != nil {
		return nil, apierrors.Internal("Failed to generate tasks", err)
	}
	if drafts == nil {
		drafts = []TaskDraft{}
	}
	return drafts, nil
}

func (s *TaskService) ensureProject(ctx context.Context, projectID uint64) error {
	if _, err := s.projectRepo.FindByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return apierrors.Internal("Failed to fetch project", fmt.Errorf("failed to find project: %w", err))
	}
	return nil
}

func (s *TaskService) ensureUser(ctx context.Context, userID uint64) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return apierrors.Internal("Failed to fetch user", fmt.Errorf("failed to find user: %w", err))
	}
	return nil
}

func (s *TaskService) translateUpdateError(err error, message string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrTaskNotFound
	default:
		return apierrors.Internal(message, err)
	}
}
