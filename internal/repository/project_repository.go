package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/project-board-api/internal/database"
	"github.com/yukikurage/project-board-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrCreateProject is returned when inserting the project row fails.
	ErrCreateProject = errors.New("project repository: create project failed")
	// ErrCreateProjectMember is returned when inserting the owner membership fails.
	ErrCreateProjectMember = errors.New("project repository: create owner membership failed")
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// CreateWithOwner creates the project and the creator's owner membership atomically.
func (r *GormProjectRepository) CreateWithOwner(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateProject, err)
		}

		owner := &models.ProjectMember{
			ProjectID: project.ID,
			UserID:    project.CreatorID,
			Role:      models.RoleOwner,
		}
		if err := tx.Create(owner).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateProjectMember, err)
		}

		return nil
	})
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(ctx context.Context, id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// ListByMember lists all projects the user is a member of
func (r *GormProjectRepository) ListByMember(ctx context.Context, userID uint64) ([]models.Project, error) {
	projects := []models.Project{}
	if err := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Select("projects.*").
		Scopes(database.MemberOf(userID)).
		Order("projects.id ASC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// AddMember adds a member to a project
func (r *GormProjectRepository) AddMember(ctx context.Context, member *models.ProjectMember) error {
	if member.Role == "" {
		member.Role = models.RoleMember
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(member).Error
}

// ListMembers lists all members of a project
func (r *GormProjectRepository) ListMembers(ctx context.Context, projectID uint64) ([]models.ProjectMember, error) {
	members := []models.ProjectMember{}
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("id ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}
