package services

import (
	"fmt"
	"time"

	"github.com/habab6/ipec-campus-connect-sub000/app/academics"
	"github.com/habab6/ipec-campus-connect-sub000/app/database"
	"github.com/habab6/ipec-campus-connect-sub000/app/models"
)

// TransitionKind selects between the two period transitions a student can take.
type TransitionKind string

const (
	TransitionPromote TransitionKind = "promote"
	TransitionRepeat  TransitionKind = "repeat"
)

// BuildTransition computes every row a promote or repeat writes: the closing
// history entry for the period that just ended, the student's new (program,
// study year, academic year), the opening In-Progress entry, the tuition
// charge for the new period and the attestation snapshot. attestationSeq is
// the count of attestation numbers already issued on the target period's
// number prefix (see AttestationNumberPrefix).
// Nothing is persisted here; database.ApplyTransition commits the whole set
// atomically.
func BuildTransition(s *models.Student, kind TransitionKind, attestationSeq int, now time.Time) (*database.PeriodTransition, error) {
	if s.Status == models.StudentArchived {
		return nil, fmt.Errorf("student %s is archived", s.Reference)
	}

	nextYear, err := academics.NextAcademicYear(s.AcademicYear)
	if err != nil {
		return nil, err
	}

	closed := &models.AcademicHistoryEntry{
		StudentID:    s.ID,
		AcademicYear: s.AcademicYear,
		StudyYear:    s.StudyYear,
		Program:      s.Program,
		Specialty:    s.Specialty,
	}

	nextProgram := s.Program
	nextStudyYear := s.StudyYear
	switch kind {
	case TransitionPromote:
		nextProgram, nextStudyYear, err = academics.NextPeriod(s.Program, s.StudyYear)
		if err != nil {
			return nil, err
		}
		closed.Status = models.PeriodPassed
		closed.PassedToNextYear = true
	case TransitionRepeat:
		closed.Status = models.PeriodRepeating
	default:
		return nil, fmt.Errorf("unknown transition %q", kind)
	}

	updated := *s
	updated.Program = nextProgram
	updated.StudyYear = nextStudyYear
	updated.AcademicYear = nextYear

	opened := &models.AcademicHistoryEntry{
		StudentID:    s.ID,
		AcademicYear: nextYear,
		StudyYear:    nextStudyYear,
		Program:      nextProgram,
		Specialty:    s.Specialty,
		Status:       models.PeriodInProgress,
	}

	tuition := &models.Payment{
		StudentID:    s.ID,
		Type:         models.PaymentTuition,
		Amount:       academics.TuitionAmount(nextProgram),
		DueDate:      models.CustomDate{Time: academics.TuitionDueDate(now)},
		AcademicYear: &nextYear,
		StudyYear:    &nextStudyYear,
		Notes:        fmt.Sprintf("Minerval %s, %s year %d", nextYear, academics.Label(nextProgram), nextStudyYear),
	}

	attestation := &models.Attestation{
		StudentID:    s.ID,
		Number:       AttestationNumber(s.Reference, nextStudyYear, nextProgram, attestationSeq),
		AcademicYear: nextYear,
		StudyYear:    nextStudyYear,
		Program:      nextProgram,
		Specialty:    s.Specialty,
		FirstName:    s.FirstName,
		LastName:     s.LastName,
		Reference:    s.Reference,
		BirthDate:    s.BirthDate,
		BirthPlace:   s.BirthPlace,
		Nationality:  s.Nationality,
		GenerateDate: now,
	}

	return &database.PeriodTransition{
		Student:      &updated,
		ClosedPeriod: closed,
		OpenedPeriod: opened,
		Tuition:      tuition,
		Attestation:  attestation,
	}, nil
}

// BuildRegistration prepares the rows created when a student registers: the
// opening In-Progress history entry, the registration fee due two weeks out
// and the first tuition charge due at the calendar cutoff.
func BuildRegistration(s *models.Student, now time.Time) (*models.AcademicHistoryEntry, []*models.Payment) {
	history := &models.AcademicHistoryEntry{
		StudentID:    s.ID,
		AcademicYear: s.AcademicYear,
		StudyYear:    s.StudyYear,
		Program:      s.Program,
		Specialty:    s.Specialty,
		Status:       models.PeriodInProgress,
	}

	year := s.AcademicYear
	studyYear := s.StudyYear

	registration := &models.Payment{
		Type:         models.PaymentRegistrationFee,
		Amount:       academics.RegistrationFee,
		DueDate:      models.CustomDate{Time: now.AddDate(0, 0, academics.RegistrationFeeDueDays)},
		AcademicYear: &year,
		StudyYear:    &studyYear,
		Notes:        "Registration fee",
	}

	tuition := &models.Payment{
		Type:         models.PaymentTuition,
		Amount:       academics.TuitionAmount(s.Program),
		DueDate:      models.CustomDate{Time: academics.TuitionDueDate(now)},
		AcademicYear: &year,
		StudyYear:    &studyYear,
		Notes:        fmt.Sprintf("Minerval %s, %s year %d", year, academics.Label(s.Program), studyYear),
	}

	return history, []*models.Payment{registration, tuition}
}
