package models

import "time"

type ProjectRole string

const (
	RoleOwner  ProjectRole = "owner"
	RoleMember ProjectRole = "member"
)

// ProjectMember grants a user a role within a project. A user holds at most
// one membership per project.
type ProjectMember struct {
	ID        uint64      `gorm:"primarykey" json:"id"`
	ProjectID uint64      `gorm:"not null;uniqueIndex:idx_project_members_project_user" json:"projectId"`
	UserID    uint64      `gorm:"not null;uniqueIndex:idx_project_members_project_user;index" json:"userId"`
	Role      ProjectRole `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	JoinedAt  time.Time   `gorm:"autoCreateTime" json:"joinedAt"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
	User    User    `gorm:"foreignKey:UserID" json:"-"`
}
