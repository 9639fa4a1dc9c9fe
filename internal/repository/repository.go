package repository

import (
	"context"

	"github.com/yukikurage/project-board-api/internal/models"
)

// UserRepository defines the credential store
type UserRepository interface {
	// Create inserts a user. It fails with ErrDuplicateEmail or
	// ErrDuplicateExternalID when a unique attribute is already taken.
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByExternalID finds a user by linked external identity
	FindByExternalID(ctx context.Context, externalID string) (*models.User, error)

	// LinkExternalID attaches an external identity to an existing user
	LinkExternalID(ctx context.Context, userID uint64, externalID string) error

	// AddPoints adds delta to the user's points and returns the new total
	AddPoints(ctx context.Context, userID uint64, delta int) (int, error)
}

// ProjectRepository defines the interface for project and membership data access
type ProjectRepository interface {
	// CreateWithOwner inserts the project and its owner membership in one transaction
	CreateWithOwner(ctx context.Context, project *models.Project) error

	// FindByID finds a project by ID
	FindByID(ctx context.Context, id uint64) (*models.Project, error)

	// ListByMember lists every project the user holds a membership in
	ListByMember(ctx context.Context, userID uint64) ([]models.Project, error)

	// AddMember adds a membership; an existing (project, user) pair is left untouched
	AddMember(ctx context.Context, member *models.ProjectMember) error

	// ListMembers lists all members of a project
	ListMembers(ctx context.Context, projectID uint64) ([]models.ProjectMember, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create inserts a task with status todo
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id uint64) (*models.Task, error)

	// ListByProject lists the tasks of a project
	ListByProject(ctx context.Context, projectID uint64) ([]models.Task, error)

	// UpdateStatus writes status as given
	UpdateStatus(ctx context.Context, taskID uint64, status models.TaskStatus) error

	// Assign sets the task's assignee
	Assign(ctx context.Context, taskID, userID uint64) error
}
