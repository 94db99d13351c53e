package models

import "time"

// CreditNote represents a refund confirmation reversing a prior invoice.
type CreditNote struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	InvoiceID string     `json:"invoice_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Number    string     `json:"number" gorm:"not null;index" validate:"required"`
	Amount    float64    `json:"amount" gorm:"not null;type:decimal(10,2)" validate:"required,gt=0"`
	Reason    string     `json:"reason" gorm:"not null" validate:"required"`
	Date      CustomDate `json:"date" gorm:"not null;type:date"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`

	Invoice *Invoice `json:"invoice,omitempty" gorm:"foreignKey:InvoiceID;references:ID"`
}
