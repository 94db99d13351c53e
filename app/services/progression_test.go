package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/habab6/ipec-campus-connect-sub000/app/academics"
	"github.com/habab6/ipec-campus-connect-sub000/app/models"
)

func testStudent() *models.Student {
	return &models.Student{
		ID:           "11111111-1111-1111-1111-111111111111",
		Reference:    "IP24-0001",
		FirstName:    "Jean",
		LastName:     "Dupont",
		BirthDate:    models.CustomDate{Time: time.Date(2000, 5, 4, 0, 0, 0, 0, time.UTC)},
		BirthPlace:   "Lyon",
		Nationality:  "French",
		Email:        "jean.dupont@example.com",
		Program:      models.ProgramBBA,
		StudyYear:    1,
		AcademicYear: "2024-2025",
		Status:       models.StudentActive,
	}
}

func TestBuildTransitionPromote(t *testing.T) {
	now := time.Date(2025, time.June, 30, 12, 0, 0, 0, time.UTC)
	s := testStudent()

	tr, err := BuildTransition(s, TransitionPromote, 0, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tr.ClosedPeriod.Status != models.PeriodPassed || !tr.ClosedPeriod.PassedToNextYear {
		t.Error("closed period should be passed with passedToNextYear set")
	}
	if tr.ClosedPeriod.AcademicYear != "2024-2025" || tr.ClosedPeriod.StudyYear != 1 {
		t.Errorf("closed period should record the ended period, got %s year %d",
			tr.ClosedPeriod.AcademicYear, tr.ClosedPeriod.StudyYear)
	}

	if tr.Student.Program != models.ProgramBBA || tr.Student.StudyYear != 2 {
		t.Errorf("expected BBA year 2, got %s year %d", tr.Student.Program, tr.Student.StudyYear)
	}
	if tr.Student.AcademicYear != "2025-2026" {
		t.Errorf("expected 2025-2026, got %s", tr.Student.AcademicYear)
	}

	if tr.OpenedPeriod.Status != models.PeriodInProgress || tr.OpenedPeriod.AcademicYear != "2025-2026" {
		t.Error("opened period should be in_progress for the new year")
	}

	if tr.Tuition.Type != models.PaymentTuition {
		t.Errorf("expected tuition charge, got %s", tr.Tuition.Type)
	}
	if tr.Tuition.Amount != academics.TuitionAmount(models.ProgramBBA) {
		t.Errorf("tuition amount should follow the program table, got %.2f", tr.Tuition.Amount)
	}
	if due := tr.Tuition.DueDate.Time; due.Year() != 2025 || due.Month() != time.December || due.Day() != 31 {
		t.Errorf("tuition due date should be 2025-12-31, got %s", due.Format("2006-01-02"))
	}

	if tr.Attestation.Number != "ATT-IP24-0001-2B" {
		t.Errorf("unexpected attestation number %s", tr.Attestation.Number)
	}
	if tr.Attestation.FirstName != "Jean" || tr.Attestation.Nationality != "French" {
		t.Error("attestation should snapshot identity fields")
	}
}

func TestBuildTransitionCrossProgram(t *testing.T) {
	now := time.Now()
	s := testStudent()
	s.Program = models.ProgramBBA
	s.StudyYear = 3

	tr, err := BuildTransition(s, TransitionPromote, 0, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Student.Program != models.ProgramMBA || tr.Student.StudyYear != 1 {
		t.Errorf("expected MBA year 1, got %s year %d", tr.Student.Program, tr.Student.StudyYear)
	}
	if tr.Tuition.Amount != academics.TuitionAmount(models.ProgramMBA) {
		t.Error("tuition should be charged for the new program")
	}
}

func TestBuildTransitionDeadEnd(t *testing.T) {
	s := testStudent()
	s.Program = models.ProgramMBAComp
	s.StudyYear = 1

	_, err := BuildTransition(s, TransitionPromote, 0, time.Now())
	if !errors.Is(err, academics.ErrNoFurtherPromotion) {
		t.Fatalf("expected ErrNoFurtherPromotion, got %v", err)
	}
}

func TestBuildTransitionRepeat(t *testing.T) {
	s := testStudent()
	s.Program = models.ProgramMBA
	s.StudyYear = 2

	tr, err := BuildTransition(s, TransitionRepeat, 0, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Student.Program != models.ProgramMBA || tr.Student.StudyYear != 2 {
		t.Error("repeat must not change program or study year")
	}
	if tr.Student.AcademicYear != "2025-2026" {
		t.Errorf("repeat must advance the academic year, got %s", tr.Student.AcademicYear)
	}
	if tr.ClosedPeriod.Status != models.PeriodRepeating || tr.ClosedPeriod.PassedToNextYear {
		t.Error("closed period should be repeating without passedToNextYear")
	}
}

// countByPrefix mirrors the attestation-number lookup: a number belongs to a
// prefix when it equals the prefix or continues it with a re-issue suffix.
func countByPrefix(issued []string, prefix string) int {
	count := 0
	for _, number := range issued {
		if number == prefix || strings.HasPrefix(number, prefix+"-") {
			count++
		}
	}
	return count
}

func TestBuildTransitionRepeatAfterPromote(t *testing.T) {
	now := time.Date(2025, time.June, 30, 12, 0, 0, 0, time.UTC)
	s := testStudent()
	var issued []string

	// Promote BBA 1 into BBA 2: first number on the (2, BBA) prefix.
	prefix := AttestationNumberPrefix(s.Reference, 2, models.ProgramBBA)
	tr, err := BuildTransition(s, TransitionPromote, countByPrefix(issued, prefix), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Attestation.Number != "ATT-IP24-0001-2B" {
		t.Fatalf("unexpected promote number %s", tr.Attestation.Number)
	}
	issued = append(issued, tr.Attestation.Number)

	// Repeating BBA 2 keeps the (study year, program) pair; the number
	// sequence must continue, not restart, or the unique constraint on
	// attestation numbers would reject the whole transition.
	repeated := *tr.Student
	prefix = AttestationNumberPrefix(repeated.Reference, repeated.StudyYear, repeated.Program)
	tr2, err := BuildTransition(&repeated, TransitionRepeat, countByPrefix(issued, prefix), now.AddDate(1, 0, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr2.Attestation.Number == tr.Attestation.Number {
		t.Fatalf("repeat reused attestation number %s", tr2.Attestation.Number)
	}
	if tr2.Attestation.Number != "ATT-IP24-0001-2B-2" {
		t.Errorf("expected continued sequence ATT-IP24-0001-2B-2, got %s", tr2.Attestation.Number)
	}
}

func TestBuildTransitionArchived(t *testing.T) {
	s := testStudent()
	s.Status = models.StudentArchived
	if _, err := BuildTransition(s, TransitionPromote, 0, time.Now()); err == nil {
		t.Error("expected error for archived student")
	}
}

func TestBuildRegistration(t *testing.T) {
	now := time.Date(2024, time.September, 2, 10, 0, 0, 0, time.UTC)
	s := testStudent()

	history, charges := BuildRegistration(s, now)

	if history.Status != models.PeriodInProgress || history.AcademicYear != "2024-2025" {
		t.Error("registration should open an in_progress period for the current year")
	}
	if len(charges) != 2 {
		t.Fatalf("expected 2 charges, got %d", len(charges))
	}

	reg, tuition := charges[0], charges[1]
	if reg.Type != models.PaymentRegistrationFee || reg.Amount != academics.RegistrationFee {
		t.Errorf("unexpected registration charge: %s %.2f", reg.Type, reg.Amount)
	}
	if due := reg.DueDate.Time; !due.Equal(now.AddDate(0, 0, 14)) {
		t.Errorf("registration fee should be due in 14 days, got %s", due.Format("2006-01-02"))
	}

	if tuition.Type != models.PaymentTuition {
		t.Errorf("expected tuition charge, got %s", tuition.Type)
	}
	if due := tuition.DueDate.Time; due.Year() != 2024 || due.Month() != time.December || due.Day() != 31 {
		t.Errorf("tuition should be due 2024-12-31, got %s", due.Format("2006-01-02"))
	}
}
