package models

import (
	"time"
)

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(255);not null" json:"username"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash *string   `gorm:"type:varchar(255)" json:"-"`
	ExternalID   *string   `gorm:"type:varchar(255);uniqueIndex" json:"-"`
	DisplayName  *string   `gorm:"type:varchar(255)" json:"displayName"`
	AvatarURL    *string   `gorm:"type:text" json:"avatarUrl"`
	Points       int       `gorm:"not null;default:0" json:"points"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Relations
	Memberships []ProjectMember `gorm:"foreignKey:UserID" json:"-"`
}

// HasPassword reports whether the account can log in with local credentials.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// HasExternalIdentity reports whether an external identity is linked to the account.
func (u *User) HasExternalIdentity() bool {
	return u.ExternalID != nil && *u.ExternalID != ""
}
