package models

import "time"

// Attestation represents a generated enrollment attestation. The student
// identity fields are snapshot copies taken at generation time so that a later
// download reproduces the document exactly as it was issued, even if the
// student record has since changed.
type Attestation struct {
	ID           string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	StudentID    string     `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Number       string     `json:"number" gorm:"uniqueIndex;not null" validate:"required"`
	AcademicYear string     `json:"academic_year" gorm:"not null"`
	StudyYear    int        `json:"study_year" gorm:"not null"`
	Program      Program    `json:"program" gorm:"not null;type:varchar(30)"`
	Specialty    *string    `json:"specialty,omitempty"`
	FirstName    string     `json:"first_name" gorm:"not null"`
	LastName     string     `json:"last_name" gorm:"not null"`
	Reference    string     `json:"reference" gorm:"not null"`
	BirthDate    CustomDate `json:"birth_date" gorm:"type:date"`
	BirthPlace   string     `json:"birth_place"`
	Nationality  string     `json:"nationality"`
	GenerateDate time.Time  `json:"generate_date" gorm:"not null"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`

	Student *Student `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
}
