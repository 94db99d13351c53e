package models

import "time"

// AcademicYear is a marker row for a "YYYY-YYYY+1" period label. Progression
// ensures a marker exists for every year it moves a student into.
type AcademicYear struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	IsCurrent bool      `json:"is_current" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
