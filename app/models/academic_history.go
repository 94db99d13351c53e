package models

import "time"

// AcademicHistoryEntry is the append-only record of one student period.
// Entries are created once per period transition and never updated or deleted.
type AcademicHistoryEntry struct {
	ID               string       `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	StudentID        string       `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	AcademicYear     string       `json:"academic_year" gorm:"not null;index"`
	StudyYear        int          `json:"study_year" gorm:"not null"`
	Program          Program      `json:"program" gorm:"not null;type:varchar(30)"`
	Specialty        *string      `json:"specialty,omitempty"`
	Status           PeriodStatus `json:"status" gorm:"not null;type:varchar(20)"`
	PassedToNextYear bool         `json:"passed_to_next_year" gorm:"default:false"`
	CreatedAt        time.Time    `json:"created_at" gorm:"autoCreateTime"`

	Student *Student `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
}
