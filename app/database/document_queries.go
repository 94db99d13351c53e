package database

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/habab6/ipec-campus-connect-sub000/app/models"
)

const attestationColumns = `id, student_id, number, academic_year, study_year, program,
	specialty, first_name, last_name, reference, birth_date, birth_place,
	nationality, generate_date, created_at`

func scanAttestation(row interface{ Scan(...interface{}) error }) (*models.Attestation, error) {
	a := &models.Attestation{}
	var birthPlace, nationality *string
	err := row.Scan(
		&a.ID, &a.StudentID, &a.Number, &a.AcademicYear, &a.StudyYear,
		&a.Program, &a.Specialty, &a.FirstName, &a.LastName, &a.Reference,
		&a.BirthDate, &birthPlace, &nationality, &a.GenerateDate, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if birthPlace != nil {
		a.BirthPlace = *birthPlace
	}
	if nationality != nil {
		a.Nationality = *nationality
	}
	return a, nil
}

func insertAttestationTx(tx *sql.Tx, a *models.Attestation) error {
	err := tx.QueryRow(
		`INSERT INTO attestations (student_id, number, academic_year, study_year,
			program, specialty, first_name, last_name, reference, birth_date,
			birth_place, nationality, generate_date)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		 RETURNING id, created_at`,
		a.StudentID, a.Number, a.AcademicYear, a.StudyYear, a.Program,
		a.Specialty, a.FirstName, a.LastName, a.Reference, a.BirthDate,
		a.BirthPlace, a.Nationality, a.GenerateDate,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert attestation: %v", err)
	}
	return nil
}

func CreateAttestation(db *sql.DB, a *models.Attestation) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertAttestationTx(tx, a); err != nil {
		return err
	}
	return tx.Commit()
}

func GetAttestationByID(db *sql.DB, attestationID string) (*models.Attestation, error) {
	query := `SELECT ` + attestationColumns + ` FROM attestations WHERE id = $1`
	return scanAttestation(db.QueryRow(query, attestationID))
}

func GetAttestations(db *sql.DB) ([]*models.Attestation, error) {
	rows, err := db.Query(
		`SELECT ` + attestationColumns + ` FROM attestations ORDER BY generate_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attestations []*models.Attestation
	for rows.Next() {
		a, err := scanAttestation(rows)
		if err != nil {
			return nil, err
		}
		attestations = append(attestations, a)
	}
	return attestations, nil
}

func GetStudentAttestations(db *sql.DB, studentID string) ([]*models.Attestation, error) {
	rows, err := db.Query(
		`SELECT `+attestationColumns+` FROM attestations WHERE student_id = $1 ORDER BY generate_date DESC`,
		studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attestations []*models.Attestation
	for rows.Next() {
		a, err := scanAttestation(rows)
		if err != nil {
			return nil, err
		}
		attestations = append(attestations, a)
	}
	return attestations, nil
}

// CountAttestationsByNumber counts the attestations already issued on a number
// prefix: the prefix itself plus its re-issue suffixes. An exact match on the
// prefix is required before the dash so that e.g. a 1M prefix does not absorb
// 1MC numbers.
func CountAttestationsByNumber(db *sql.DB, prefix string) (int, error) {
	var count int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM attestations WHERE number = $1 OR number LIKE $1 || '-%'`,
		prefix).Scan(&count)
	return count, err
}

const invoiceColumns = `id, student_id, payment_id, number, amount, type,
	academic_year, study_year, generate_date, created_at`

func scanInvoice(row interface{ Scan(...interface{}) error }) (*models.Invoice, error) {
	inv := &models.Invoice{}
	err := row.Scan(
		&inv.ID, &inv.StudentID, &inv.PaymentID, &inv.Number, &inv.Amount,
		&inv.Type, &inv.AcademicYear, &inv.StudyYear, &inv.GenerateDate,
		&inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// CreateInvoice inserts an invoice row. The partial unique index on payment_id
// is the duplicate guard: a unique violation means another request already
// created the invoice, so the existing row is fetched and returned instead.
// The bool reports whether the row was created by this call.
func CreateInvoice(db *sql.DB, inv *models.Invoice) (bool, error) {
	err := db.QueryRow(
		`INSERT INTO invoices (student_id, payment_id, number, amount, type,
			academic_year, study_year, generate_date)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING id, created_at`,
		inv.StudentID, inv.PaymentID, inv.Number, inv.Amount, inv.Type,
		inv.AcademicYear, inv.StudyYear, inv.GenerateDate,
	).Scan(&inv.ID, &inv.CreatedAt)
	if err == nil {
		return true, nil
	}

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		existing, fetchErr := GetInvoiceByPaymentID(db, inv.PaymentID)
		if fetchErr != nil {
			return false, fetchErr
		}
		*inv = *existing
		return false, nil
	}
	return false, fmt.Errorf("failed to insert invoice: %v", err)
}

func GetInvoiceByID(db *sql.DB, invoiceID string) (*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	return scanInvoice(db.QueryRow(query, invoiceID))
}

func GetInvoiceByPaymentID(db *sql.DB, paymentID string) (*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices
		WHERE payment_id = $1 AND type <> 'duplicate'
		ORDER BY created_at LIMIT 1`
	return scanInvoice(db.QueryRow(query, paymentID))
}

func GetStudentInvoices(db *sql.DB, studentID string) ([]*models.Invoice, error) {
	rows, err := db.Query(
		`SELECT `+invoiceColumns+` FROM invoices WHERE student_id = $1 ORDER BY generate_date DESC`,
		studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

func GetCreditNoteByID(db *sql.DB, creditNoteID string) (*models.CreditNote, error) {
	note := &models.CreditNote{}
	err := db.QueryRow(
		`SELECT id, invoice_id, number, amount, reason, date, created_at
		 FROM credit_notes WHERE id = $1`, creditNoteID,
	).Scan(&note.ID, &note.InvoiceID, &note.Number, &note.Amount, &note.Reason,
		&note.Date, &note.CreatedAt)
	if err != nil {
		return nil, err
	}
	return note, nil
}

func GetCreditNoteByInvoiceID(db *sql.DB, invoiceID string) (*models.CreditNote, error) {
	note := &models.CreditNote{}
	err := db.QueryRow(
		`SELECT id, invoice_id, number, amount, reason, date, created_at
		 FROM credit_notes WHERE invoice_id = $1 ORDER BY created_at LIMIT 1`, invoiceID,
	).Scan(&note.ID, &note.InvoiceID, &note.Number, &note.Amount, &note.Reason,
		&note.Date, &note.CreatedAt)
	if err != nil {
		return nil, err
	}
	return note, nil
}
