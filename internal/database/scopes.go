package database

import (
	"gorm.io/gorm"
)

// MemberOf restricts a projects query to projects where userID holds any membership.
func MemberOf(userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("INNER JOIN project_members ON project_members.project_id = projects.id").
			Where("project_members.user_id = ?", userID)
	}
}

// InProject restricts a tasks query to a single project.
func InProject(projectID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tasks.project_id = ?", projectID)
	}
}
