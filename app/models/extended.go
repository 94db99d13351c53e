package models

import "time"

// PaymentWithDetails extends a Payment with the joined student display fields
// and the derived figures the list views need.
type PaymentWithDetails struct {
	Payment
	StudentName     string        `json:"student_name"`
	StudentRef      string        `json:"student_reference"`
	TotalPaid       float64       `json:"total_paid"`
	Remaining       float64       `json:"remaining"`
	EffectiveStatus PaymentStatus `json:"effective_status"`
}

// DashboardStats aggregates the figures shown on the admin dashboard.
type DashboardStats struct {
	TotalStudents    int     `json:"total_students"`
	ActiveStudents   int     `json:"active_students"`
	ArchivedStudents int     `json:"archived_students"`
	TotalOutstanding float64 `json:"total_outstanding"`
	CollectedMonth   float64 `json:"collected_month"`
	OverdueCount     int     `json:"overdue_count"`
}

// PaymentSummary is the view model for the HTML payment-summary document.
type PaymentSummary struct {
	Student     *Student              `json:"student"`
	Payments    []*PaymentWithDetails `json:"payments"`
	TotalDue    float64               `json:"total_due"`
	TotalPaid   float64               `json:"total_paid"`
	GeneratedAt time.Time             `json:"generated_at"`
}
