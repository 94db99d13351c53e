package academics

import (
	"errors"
	"time"

	"github.com/habab6/ipec-campus-connect-sub000/app/models"
)

// ErrExceedsBalance is returned when an installment would overrun the
// remaining balance of its payment.
var ErrExceedsBalance = errors.New("installment exceeds remaining balance")

// EffectiveStatus derives the status of a payment from its stored status, its
// installments and the due date. Paid and refunded stored states pass through
// unchanged; otherwise the installment total decides between paid,
// partially_paid, pending and overdue.
func EffectiveStatus(p *models.Payment, now time.Time) models.PaymentStatus {
	if p.Status == models.PaymentPaid || p.Status == models.PaymentRefunded {
		return p.Status
	}

	paid := p.TotalPaid()
	switch {
	case paid >= p.Amount:
		return models.PaymentPaid
	case paid > 0:
		return models.PaymentPartiallyPaid
	case now.After(p.DueDate.Time) && !p.DueDate.Time.IsZero():
		return models.PaymentOverdue
	default:
		return models.PaymentPending
	}
}

// Remaining returns the balance still owed on a payment.
func Remaining(p *models.Payment) float64 {
	r := p.Amount - p.TotalPaid()
	if r < 0 {
		return 0
	}
	return r
}

// ValidateInstallment checks that an installment amount fits the remaining
// balance before anything is written.
func ValidateInstallment(p *models.Payment, amount float64) error {
	if amount <= 0 {
		return errors.New("installment amount must be positive")
	}
	if p.Status == models.PaymentRefunded {
		return errors.New("cannot add installment to a refunded payment")
	}
	if amount > Remaining(p) {
		return ErrExceedsBalance
	}
	return nil
}

// CompletesBalance reports whether adding amount settles the payment in full.
func CompletesBalance(p *models.Payment, amount float64) bool {
	return p.TotalPaid()+amount >= p.Amount
}
