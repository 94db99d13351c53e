package models

import "time"

// Installment represents a partial payment applied toward a Payment's amount.
type Installment struct {
	ID        string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	PaymentID string        `json:"payment_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Amount    float64       `json:"amount" gorm:"not null;type:decimal(10,2)" validate:"required,gt=0"`
	PaidDate  CustomDate    `json:"paid_date" gorm:"not null;type:date" validate:"required"`
	Method    PaymentMethod `json:"method" gorm:"not null;type:varchar(20)" validate:"required"`
	Reference string        `json:"reference"`
	CreatedAt time.Time     `json:"created_at" gorm:"autoCreateTime"`

	Payment *Payment `json:"payment,omitempty" gorm:"foreignKey:PaymentID;references:ID"`
}
