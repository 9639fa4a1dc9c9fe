package dto

import (
	"time"

	"github.com/yukikurage/project-board-api/internal/models"
)

// UserDTO represents a user in authentication responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ProfileDTO represents the signed-in user
type ProfileDTO struct {
	ID          uint64  `json:"id"`
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	DisplayName *string `json:"displayName"`
	AvatarURL   *string `json:"avatarUrl"`
}

// UserDetailDTO represents a user created through the user API
type UserDetailDTO struct {
	ID          uint64    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	DisplayName *string   `json:"displayName"`
	AvatarURL   *string   `json:"avatarUrl"`
	Points      int       `json:"points"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UserResponse wraps a user payload
type UserResponse[T any] struct {
	User T `json:"user"`
}

// PointsResponse reports a user's points after an update
type PointsResponse struct {
	UserID uint64 `json:"userId"`
	Points int    `json:"points"`
}

// SuccessResponse acknowledges an operation without a payload
type SuccessResponse struct {
	Success bool `json:"success"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

// ToProfileDTO converts a User model to ProfileDTO
func ToProfileDTO(user models.User) ProfileDTO {
	return ProfileDTO{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		AvatarURL:   user.AvatarURL,
	}
}

// ToUserDetailDTO converts a User model to UserDetailDTO
func ToUserDetailDTO(user models.User) UserDetailDTO {
	return UserDetailDTO{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		AvatarURL:   user.AvatarURL,
		Points:      user.Points,
		CreatedAt:   user.CreatedAt,
	}
}
