package payments

import (
	"testing"
	"time"

	"github.com/habab6/ipec-campus-connect-sub000/app/models"
)

func paymentRow(amount float64, status models.PaymentStatus, due time.Time, paid float64) *models.PaymentWithDetails {
	p := &models.PaymentWithDetails{}
	p.Amount = amount
	p.Status = status
	p.DueDate = models.CustomDate{Time: due}
	if paid > 0 {
		p.Installments = []*models.Installment{{Amount: paid}}
	}
	return p
}

func TestFilterByEffectiveStatus(t *testing.T) {
	now := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, -1, 0)
	future := now.AddDate(0, 1, 0)

	rows := []*models.PaymentWithDetails{
		paymentRow(100, models.PaymentPending, past, 0),    // overdue
		paymentRow(200, models.PaymentPaid, past, 200),     // paid (stored)
		paymentRow(300, models.PaymentPending, past, 0),    // overdue
		paymentRow(400, models.PaymentPending, future, 50), // partially paid
		paymentRow(500, models.PaymentPending, past, 0),    // overdue
	}

	overdue := filterByEffectiveStatus(rows, "overdue", now)
	if len(overdue) != 3 {
		t.Fatalf("expected 3 overdue rows, got %d", len(overdue))
	}
	for _, p := range overdue {
		if p.EffectiveStatus != models.PaymentOverdue {
			t.Errorf("row %.0f: expected overdue, got %s", p.Amount, p.EffectiveStatus)
		}
	}

	if got := filterByEffectiveStatus(rows, "partially_paid", now); len(got) != 1 || got[0].Amount != 400 {
		t.Errorf("partially_paid filter returned wrong rows: %v", got)
	}

	if got := filterByEffectiveStatus(rows, "", now); len(got) != len(rows) {
		t.Errorf("empty filter should keep all rows, got %d", len(got))
	}
}

// A paginated, status-filtered listing must page over the filtered set: rows
// matching the filter never disappear because they sat outside the first
// fetch window.
func TestStatusFilterPaginatesFilteredSet(t *testing.T) {
	now := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, -1, 0)

	rows := []*models.PaymentWithDetails{
		paymentRow(100, models.PaymentPending, past, 0),
		paymentRow(200, models.PaymentPaid, past, 200),
		paymentRow(300, models.PaymentPending, past, 0),
		paymentRow(400, models.PaymentPaid, past, 400),
		paymentRow(500, models.PaymentPending, past, 0),
	}

	filtered := filterByEffectiveStatus(rows, "overdue", now)

	var seen []float64
	for offset := 0; ; offset += 2 {
		page := paginatePayments(filtered, 2, offset)
		if len(page) == 0 {
			break
		}
		for _, p := range page {
			seen = append(seen, p.Amount)
		}
	}

	want := []float64{100, 300, 500}
	if len(seen) != len(want) {
		t.Fatalf("paging dropped rows: got %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("page order: got %v, want %v", seen, want)
			break
		}
	}
}

func TestPaginatePaymentsBounds(t *testing.T) {
	rows := []*models.PaymentWithDetails{
		paymentRow(100, models.PaymentPending, time.Now(), 0),
	}

	if got := paginatePayments(rows, 0, 0); len(got) != 1 {
		t.Error("limit 0 should return everything")
	}
	if got := paginatePayments(rows, 10, 5); got != nil {
		t.Error("offset past the end should return an empty page")
	}
}
