package models

import "time"

// Invoice represents a generated invoice tied to a single payment. Uniqueness
// of non-duplicate invoices per payment is enforced by a partial unique index,
// not by a prior existence check.
type Invoice struct {
	ID           string      `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	StudentID    string      `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	PaymentID    string      `json:"payment_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Number       string      `json:"number" gorm:"not null;index" validate:"required"`
	Amount       float64     `json:"amount" gorm:"not null;type:decimal(10,2)" validate:"required,gt=0"`
	Type         PaymentType `json:"type" gorm:"not null;type:varchar(30)"`
	AcademicYear *string     `json:"academic_year,omitempty"`
	StudyYear    *int        `json:"study_year,omitempty"`
	GenerateDate time.Time   `json:"generate_date" gorm:"not null"`
	CreatedAt    time.Time   `json:"created_at" gorm:"autoCreateTime"`

	Student *Student `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
	Payment *Payment `json:"payment,omitempty" gorm:"foreignKey:PaymentID;references:ID"`
}
