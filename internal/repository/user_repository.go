package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/project-board-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrDuplicateEmail is returned when another user already owns the email.
	ErrDuplicateEmail = errors.New("user repository: email already exists")
	// ErrDuplicateExternalID is returned when another user already owns the external identity.
	ErrDuplicateExternalID = errors.New("user repository: external id already exists")
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := exists(tx.Model(&models.User{}).Where("email = ?", user.Email))
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateEmail
		}

		if user.ExternalID != nil {
			taken, err := exists(tx.Model(&models.User{}).Where("external_id = ?", *user.ExternalID))
			if err != nil {
				return err
			}
			if taken {
				return ErrDuplicateExternalID
			}
		}

		return tx.Create(user).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost a race with a concurrent insert; report which key collided.
		if taken, _ := exists(r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", user.Email)); taken {
			return ErrDuplicateEmail
		}
		return ErrDuplicateExternalID
	}
	return err
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByExternalID finds a user by linked external identity
func (r *GormUserRepository) FindByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// LinkExternalID attaches an external identity to an existing user
func (r *GormUserRepository) LinkExternalID(ctx context.Context, userID uint64, externalID string) error {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("external_id", externalID)
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return ErrDuplicateExternalID
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AddPoints adds delta to the user's points. No floor is enforced.
func (r *GormUserRepository) AddPoints(ctx context.Context, userID uint64, delta int) (int, error) {
	var points int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("points", gorm.Expr("points + ?", delta))
		if result.Error != nil {
			return fmt.Errorf("failed to update points: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			Select("points").
			Scan(&points).Error
	})
	return points, err
}

func exists(query *gorm.DB) (bool, error) {
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
