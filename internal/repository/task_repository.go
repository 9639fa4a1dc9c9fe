package repository

import (
	"context"

	"github.com/yukikurage/project-board-api/internal/database"
	"github.com/yukikurage/project-board-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task. The status is always todo on creation.
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	task.Status = models.TaskStatusTodo
	return r.db.WithContext(ctx).Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByProject lists the tasks of a project
func (r *GormTaskRepository) ListByProject(ctx context.Context, projectID uint64) ([]models.Task, error) {
	tasks := []models.Task{}
	if err := r.db.WithContext(ctx).
		Scopes(database.InProject(projectID)).
		Order("tasks.id ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateStatus writes the status without checking it against the workflow states
func (r *GormTaskRepository) UpdateStatus(ctx context.Context, taskID uint64, status models.TaskStatus) error {
	return r.updateColumn(ctx, taskID, "status", status)
}

// Assign sets the task's assignee. Membership in the task's project is not checked.
func (r *GormTaskRepository) Assign(ctx context.Context, taskID, userID uint64) error {
	return r.updateColumn(ctx, taskID, "assignee_id", userID)
}

func (r *GormTaskRepository) updateColumn(ctx context.Context, taskID uint64, column string, value interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ?", taskID).
		Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
