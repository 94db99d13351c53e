package models

// Program defines the study programs offered by the school.
type Program string

const (
	ProgramBBA     Program = "bba"
	ProgramMBA     Program = "mba"
	ProgramMBAComp Program = "mba_complementary"
)

// StudentStatus defines the possible status values for a student.
type StudentStatus string

const (
	StudentActive    StudentStatus = "active"
	StudentInactive  StudentStatus = "inactive"
	StudentSuspended StudentStatus = "suspended"
	StudentArchived  StudentStatus = "archived"
)

// PaymentType defines the kind of charge owed by a student.
type PaymentType string

const (
	PaymentRegistrationFee PaymentType = "registration_fee"
	PaymentTuition         PaymentType = "tuition"
	PaymentShippingFee     PaymentType = "shipping_fee"
	PaymentDuplicate       PaymentType = "duplicate"
)

// PaymentStatus defines the status of a payment. Pending, Paid and Refunded
// are stored; PartiallyPaid and Overdue only exist as derived values.
type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "pending"
	PaymentPaid          PaymentStatus = "paid"
	PaymentRefunded      PaymentStatus = "refunded"
	PaymentPartiallyPaid PaymentStatus = "partially_paid"
	PaymentOverdue       PaymentStatus = "overdue"
)

// PeriodStatus defines the status of one academic period in a student's history.
type PeriodStatus string

const (
	PeriodInProgress PeriodStatus = "in_progress"
	PeriodPassed     PeriodStatus = "passed"
	PeriodRepeating  PeriodStatus = "repeating"
)

// PaymentMethod defines how an installment was settled.
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "cash"
	MethodTransfer PaymentMethod = "transfer"
	MethodCard     PaymentMethod = "card"
)
