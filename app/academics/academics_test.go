package academics

import (
	"errors"
	"testing"
	"time"

	"github.com/habab6/ipec-campus-connect-sub000/app/models"
)

func TestStudyYearOptions(t *testing.T) {
	cases := []struct {
		program models.Program
		want    []int
	}{
		{models.ProgramBBA, []int{1, 2, 3}},
		{models.ProgramMBA, []int{1, 2}},
		{models.ProgramMBAComp, []int{1}},
	}

	for _, c := range cases {
		got := StudyYearOptions(c.program)
		if len(got) != len(c.want) {
			t.Fatalf("%s: expected %d options, got %d", c.program, len(c.want), len(got))
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("%s: option %d: expected %d, got %d", c.program, i, c.want[i], got[i])
			}
		}
	}
}

func TestNextAcademicYear(t *testing.T) {
	got, err := NextAcademicYear("2024-2025")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2025-2026" {
		t.Errorf("expected 2025-2026, got %s", got)
	}

	for _, bad := range []string{"2024", "2024-2026", "abcd-efgh", ""} {
		if _, err := NextAcademicYear(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestNextPeriod(t *testing.T) {
	cases := []struct {
		program     models.Program
		year        int
		wantProgram models.Program
		wantYear    int
	}{
		{models.ProgramBBA, 1, models.ProgramBBA, 2},
		{models.ProgramBBA, 2, models.ProgramBBA, 3},
		{models.ProgramBBA, 3, models.ProgramMBA, 1},
		{models.ProgramMBA, 1, models.ProgramMBA, 2},
		{models.ProgramMBA, 2, models.ProgramMBAComp, 1},
	}

	for _, c := range cases {
		p, y, err := NextPeriod(c.program, c.year)
		if err != nil {
			t.Fatalf("%s year %d: unexpected error: %v", c.program, c.year, err)
		}
		if p != c.wantProgram || y != c.wantYear {
			t.Errorf("%s year %d: expected (%s, %d), got (%s, %d)",
				c.program, c.year, c.wantProgram, c.wantYear, p, y)
		}
	}
}

func TestNextPeriodDeadEnd(t *testing.T) {
	_, _, err := NextPeriod(models.ProgramMBAComp, 1)
	if !errors.Is(err, ErrNoFurtherPromotion) {
		t.Fatalf("expected ErrNoFurtherPromotion, got %v", err)
	}
}

func TestNextPeriodOutOfRange(t *testing.T) {
	if _, _, err := NextPeriod(models.ProgramBBA, 4); err == nil {
		t.Error("expected error for BBA year 4")
	}
	if _, _, err := NextPeriod(models.ProgramMBA, 0); err == nil {
		t.Error("expected error for MBA year 0")
	}
}

func paymentWith(amount float64, installments ...float64) *models.Payment {
	p := &models.Payment{
		Amount:  amount,
		Status:  models.PaymentPending,
		DueDate: models.CustomDate{Time: time.Now().AddDate(0, 1, 0)},
	}
	for _, a := range installments {
		p.Installments = append(p.Installments, &models.Installment{Amount: a})
	}
	return p
}

func TestEffectiveStatus(t *testing.T) {
	now := time.Now()

	if got := EffectiveStatus(paymentWith(3000), now); got != models.PaymentPending {
		t.Errorf("no installments before due date: expected pending, got %s", got)
	}
	if got := EffectiveStatus(paymentWith(3000, 1000), now); got != models.PaymentPartiallyPaid {
		t.Errorf("partial cover: expected partially_paid, got %s", got)
	}
	if got := EffectiveStatus(paymentWith(3000, 1000, 2000), now); got != models.PaymentPaid {
		t.Errorf("full cover: expected paid, got %s", got)
	}

	overdue := paymentWith(3000)
	overdue.DueDate = models.CustomDate{Time: now.AddDate(0, 0, -1)}
	if got := EffectiveStatus(overdue, now); got != models.PaymentOverdue {
		t.Errorf("past due: expected overdue, got %s", got)
	}

	refunded := paymentWith(3000, 3000)
	refunded.Status = models.PaymentRefunded
	if got := EffectiveStatus(refunded, now); got != models.PaymentRefunded {
		t.Errorf("refunded passes through: got %s", got)
	}
}

func TestValidateInstallment(t *testing.T) {
	p := paymentWith(3000, 1000)

	if err := ValidateInstallment(p, 2000); err != nil {
		t.Errorf("exact remaining should pass: %v", err)
	}
	if err := ValidateInstallment(p, 2000.01); !errors.Is(err, ErrExceedsBalance) {
		t.Errorf("expected ErrExceedsBalance, got %v", err)
	}
	if err := ValidateInstallment(p, 0); err == nil {
		t.Error("expected error for zero amount")
	}

	refunded := paymentWith(3000)
	refunded.Status = models.PaymentRefunded
	if err := ValidateInstallment(refunded, 100); err == nil {
		t.Error("expected error for refunded payment")
	}
}

func TestCompletesBalance(t *testing.T) {
	p := paymentWith(3000, 1000)
	if CompletesBalance(p, 1999) {
		t.Error("1999 should not complete a 3000 payment with 1000 paid")
	}
	if !CompletesBalance(p, 2000) {
		t.Error("2000 should complete a 3000 payment with 1000 paid")
	}
}

func TestTuitionDueDate(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	due := TuitionDueDate(now)
	if due.Year() != 2024 || due.Month() != time.December || due.Day() != 31 {
		t.Errorf("expected 2024-12-31, got %s", due.Format("2006-01-02"))
	}
}
