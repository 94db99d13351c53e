package database

import (
	"database/sql"
	"fmt"

	"github.com/habab6/ipec-campus-connect-sub000/app/models"
)

func insertHistoryTx(tx *sql.Tx, entry *models.AcademicHistoryEntry) error {
	err := tx.QueryRow(
		`INSERT INTO academic_history (student_id, academic_year, study_year,
			program, specialty, status, passed_to_next_year)
		 VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id, created_at`,
		entry.StudentID, entry.AcademicYear, entry.StudyYear, entry.Program,
		entry.Specialty, entry.Status, entry.PassedToNextYear,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %v", err)
	}
	return nil
}

func ensureAcademicYearTx(tx *sql.Tx, name string) error {
	_, err := tx.Exec(
		`INSERT INTO academic_years (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`,
		name)
	if err != nil {
		return fmt.Errorf("failed to ensure academic year %s: %v", name, err)
	}
	return nil
}

func GetStudentHistory(db *sql.DB, studentID string) ([]*models.AcademicHistoryEntry, error) {
	rows, err := db.Query(
		`SELECT id, student_id, academic_year, study_year, program, specialty,
			status, passed_to_next_year, created_at
		 FROM academic_history WHERE student_id = $1 ORDER BY created_at`,
		studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.AcademicHistoryEntry
	for rows.Next() {
		e := &models.AcademicHistoryEntry{}
		if err := rows.Scan(&e.ID, &e.StudentID, &e.AcademicYear, &e.StudyYear,
			&e.Program, &e.Specialty, &e.Status, &e.PassedToNextYear, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func GetAcademicYears(db *sql.DB) ([]*models.AcademicYear, error) {
	rows, err := db.Query(
		`SELECT id, name, is_current, created_at FROM academic_years ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var years []*models.AcademicYear
	for rows.Next() {
		y := &models.AcademicYear{}
		if err := rows.Scan(&y.ID, &y.Name, &y.IsCurrent, &y.CreatedAt); err != nil {
			return nil, err
		}
		years = append(years, y)
	}
	return years, nil
}

// PeriodTransition carries every row a promote/repeat writes. ApplyTransition
// commits them atomically so a failed step can never leave the student half
// moved between periods.
type PeriodTransition struct {
	Student      *models.Student
	ClosedPeriod *models.AcademicHistoryEntry
	OpenedPeriod *models.AcademicHistoryEntry
	Tuition      *models.Payment
	Attestation  *models.Attestation
}

func ApplyTransition(db *sql.DB, t *PeriodTransition) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertHistoryTx(tx, t.ClosedPeriod); err != nil {
		return err
	}

	s := t.Student
	_, err = tx.Exec(
		`UPDATE students SET program = $1, study_year = $2, academic_year = $3, updated_at = NOW()
		 WHERE id = $4 AND deleted_at IS NULL`,
		s.Program, s.StudyYear, s.AcademicYear, s.ID)
	if err != nil {
		return fmt.Errorf("failed to update student period: %v", err)
	}

	if err := insertHistoryTx(tx, t.OpenedPeriod); err != nil {
		return err
	}

	if err := ensureAcademicYearTx(tx, s.AcademicYear); err != nil {
		return err
	}

	if err := insertPaymentTx(tx, t.Tuition); err != nil {
		return err
	}

	if err := insertAttestationTx(tx, t.Attestation); err != nil {
		return err
	}

	return tx.Commit()
}
