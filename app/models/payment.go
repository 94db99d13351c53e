package models

import "time"

// Payment represents a charge owed by a student. The stored status only ever
// holds pending, paid or refunded; partially_paid and overdue are derived from
// the installments and due date at read time.
type Payment struct {
	ID           string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	StudentID    string        `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Type         PaymentType   `json:"type" gorm:"not null;index;type:varchar(30)" validate:"required"`
	Amount       float64       `json:"amount" gorm:"not null;type:decimal(10,2)" validate:"required,gt=0"`
	Currency     string        `json:"currency" gorm:"not null;default:'EUR'"`
	Status       PaymentStatus `json:"status" gorm:"not null;default:'pending';index;type:varchar(20)"`
	DueDate      CustomDate    `json:"due_date" gorm:"not null;type:date" validate:"required"`
	AcademicYear *string       `json:"academic_year,omitempty" gorm:"index"`
	StudyYear    *int          `json:"study_year,omitempty"`
	PaidAt       *time.Time    `json:"paid_at,omitempty"`
	Notes        string        `json:"notes"`
	CreatedAt    time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt    *time.Time    `json:"deleted_at,omitempty" gorm:"index"`

	Student      *Student       `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
	Installments []*Installment `json:"installments,omitempty" gorm:"foreignKey:PaymentID;references:ID"`
}

// TotalPaid sums the loaded installments.
func (p *Payment) TotalPaid() float64 {
	var total float64
	for _, inst := range p.Installments {
		total += inst.Amount
	}
	return total
}
