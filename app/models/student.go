package models

import "time"

// Student represents a registered student of the school.
type Student struct {
	ID             string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Reference      string        `json:"reference" gorm:"uniqueIndex;not null" validate:"required"`
	FirstName      string        `json:"first_name" gorm:"not null" validate:"required"`
	LastName       string        `json:"last_name" gorm:"not null" validate:"required"`
	Gender         *Gender       `json:"gender,omitempty" gorm:"type:varchar(10)"`
	BirthDate      CustomDate    `json:"birth_date" gorm:"not null;type:date" validate:"required"`
	BirthPlace     string        `json:"birth_place"`
	BirthCountry   string        `json:"birth_country"`
	Nationality    string        `json:"nationality" gorm:"not null" validate:"required"`
	IDDocType      string        `json:"id_doc_type" gorm:"type:varchar(30)"`
	IDDocNumber    string        `json:"id_doc_number"`
	Email          string        `json:"email" gorm:"uniqueIndex;not null" validate:"required,email"`
	Phone          string        `json:"phone"`
	AddressStreet  string        `json:"address_street"`
	AddressCity    string        `json:"address_city"`
	AddressPostal  string        `json:"address_postal"`
	AddressCountry string        `json:"address_country"`
	Program        Program       `json:"program" gorm:"not null;index;type:varchar(30)" validate:"required"`
	StudyYear      int           `json:"study_year" gorm:"not null" validate:"required,gte=1"`
	Specialty      *string       `json:"specialty,omitempty"`
	AcademicYear   string        `json:"academic_year" gorm:"not null;index" validate:"required"`
	Status         StudentStatus `json:"status" gorm:"not null;default:'active';index;type:varchar(20)"`
	CreatedAt      time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt      *time.Time    `json:"deleted_at,omitempty" gorm:"index"`

	Payments []*Payment              `json:"payments,omitempty" gorm:"foreignKey:StudentID;references:ID"`
	History  []*AcademicHistoryEntry `json:"history,omitempty" gorm:"foreignKey:StudentID;references:ID"`
}

// Gender defines the possible gender values for a student.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
	Other  Gender = "other"
)

// FullName returns the display name used on generated documents.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
