package models

import "time"

// User represents a login account (administrator or student).
type User struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Email     string     `json:"email" gorm:"uniqueIndex;not null" validate:"required,email"`
	Password  string     `json:"-" gorm:"not null"`
	FirstName string     `json:"first_name" gorm:"not null"`
	LastName  string     `json:"last_name" gorm:"not null"`
	IsActive  bool       `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" gorm:"index"`

	Roles []*Role `json:"roles,omitempty" gorm:"many2many:user_roles"`
}

// Role represents a named permission group.
type Role struct {
	ID   string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

// UserRole links a user to a role.
type UserRole struct {
	UserID string `json:"user_id" gorm:"primaryKey;type:uuid"`
	RoleID string `json:"role_id" gorm:"primaryKey;type:uuid"`
}

// StudentProfile links a student login account to its student record.
type StudentProfile struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID    string    `json:"user_id" gorm:"uniqueIndex;not null;type:uuid"`
	StudentID string    `json:"student_id" gorm:"uniqueIndex;not null;type:uuid"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
