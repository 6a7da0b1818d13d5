package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// AdminRoleTitle is the role title granting access to admin routes
const AdminRoleTitle = "admin"

// Role represents a user role
type Role struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Role model
func (Role) TableName() string {
	return "roles"
}

// IsAdmin returns true if the role title is "admin", compared case-insensitively
func (r *Role) IsAdmin() bool {
	return strings.EqualFold(r.Title, AdminRoleTitle)
}
