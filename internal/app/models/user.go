package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`
	Email       string     `json:"email" db:"email" example:"admin@talent-management.com"`
	Password    string     `json:"-" db:"password"`
	Name        string     `json:"name" db:"name" example:"管理者"`
	Role        RoleType   `json:"role" db:"role" example:"ADMIN"`
	Department  *string    `json:"department,omitempty" db:"department" example:"人事部"` // required for DEPARTMENT users
	IsActive    bool       `json:"isActive" db:"is_active" example:"true"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// DepartmentName returns the department or an empty string.
func (u *User) DepartmentName() string {
	if u == nil || u.Department == nil {
		return ""
	}
	return *u.Department
}
