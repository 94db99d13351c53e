package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/habab6/ipec-campus-connect-sub000/app/models"
)

// PaymentFilters represents filtering options for payments
type PaymentFilters struct {
	StudentID    string
	Type         string
	AcademicYear string
	Limit        int
	Offset       int
}

const paymentColumns = `id, student_id, type, amount, currency, status, due_date,
	academic_year, study_year, paid_at, notes, created_at, updated_at`

func scanPayment(row interface{ Scan(...interface{}) error }) (*models.Payment, error) {
	p := &models.Payment{}
	var notes *string
	err := row.Scan(
		&p.ID, &p.StudentID, &p.Type, &p.Amount, &p.Currency, &p.Status,
		&p.DueDate, &p.AcademicYear, &p.StudyYear, &p.PaidAt, &notes,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if notes != nil {
		p.Notes = *notes
	}
	return p, nil
}

func insertPaymentTx(tx *sql.Tx, p *models.Payment) error {
	if p.Currency == "" {
		p.Currency = "EUR"
	}
	if p.Status == "" {
		p.Status = models.PaymentPending
	}
	err := tx.QueryRow(
		`INSERT INTO payments (student_id, type, amount, currency, status, due_date,
			academic_year, study_year, notes)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 RETURNING id, created_at, updated_at`,
		p.StudentID, p.Type, p.Amount, p.Currency, p.Status, p.DueDate,
		p.AcademicYear, p.StudyYear, p.Notes,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %v", err)
	}
	return nil
}

func CreatePayment(db *sql.DB, p *models.Payment) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertPaymentTx(tx, p); err != nil {
		return err
	}
	return tx.Commit()
}

func GetPaymentByID(db *sql.DB, paymentID string) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1 AND deleted_at IS NULL`
	p, err := scanPayment(db.QueryRow(query, paymentID))
	if err != nil {
		return nil, err
	}

	installments, err := GetInstallments(db, p.ID)
	if err != nil {
		return nil, err
	}
	p.Installments = installments
	return p, nil
}

// GetPaymentsWithDetails returns payments joined with student display fields.
// Installments are loaded per payment so that callers can derive the effective
// status.
func GetPaymentsWithDetails(db *sql.DB, filters PaymentFilters) ([]*models.PaymentWithDetails, error) {
	baseQuery := `SELECT p.id, p.student_id, p.type, p.amount, p.currency, p.status,
			p.due_date, p.academic_year, p.study_year, p.paid_at, p.notes,
			p.created_at, p.updated_at,
			s.first_name, s.last_name, s.reference
		FROM payments p
		JOIN students s ON p.student_id = s.id
		WHERE p.deleted_at IS NULL AND s.deleted_at IS NULL`

	var conditions []string
	var args []interface{}
	argIndex := 1

	if filters.StudentID != "" {
		conditions = append(conditions, fmt.Sprintf("p.student_id = $%d", argIndex))
		args = append(args, filters.StudentID)
		argIndex++
	}
	if filters.Type != "" {
		conditions = append(conditions, fmt.Sprintf("p.type = $%d", argIndex))
		args = append(args, filters.Type)
		argIndex++
	}
	if filters.AcademicYear != "" {
		conditions = append(conditions, fmt.Sprintf("p.academic_year = $%d", argIndex))
		args = append(args, filters.AcademicYear)
		argIndex++
	}
	if len(conditions) > 0 {
		baseQuery += " AND " + strings.Join(conditions, " AND ")
	}

	baseQuery += " ORDER BY p.created_at DESC"
	if filters.Limit > 0 {
		baseQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
		args = append(args, filters.Limit, filters.Offset)
	}

	rows, err := db.Query(baseQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.PaymentWithDetails
	for rows.Next() {
		d := &models.PaymentWithDetails{}
		var notes *string
		var firstName, lastName string
		err := rows.Scan(
			&d.ID, &d.StudentID, &d.Type, &d.Amount, &d.Currency, &d.Status,
			&d.DueDate, &d.AcademicYear, &d.StudyYear, &d.PaidAt, &notes,
			&d.CreatedAt, &d.UpdatedAt,
			&firstName, &lastName, &d.StudentRef,
		)
		if err != nil {
			return nil, err
		}
		if notes != nil {
			d.Notes = *notes
		}
		d.StudentName = firstName + " " + lastName
		payments = append(payments, d)
	}

	for _, p := range payments {
		installments, err := GetInstallments(db, p.ID)
		if err != nil {
			return nil, err
		}
		p.Installments = installments
	}
	return payments, nil
}

func UpdatePayment(db *sql.DB, p *models.Payment) error {
	_, err := db.Exec(
		`UPDATE payments SET type = $1, amount = $2, due_date = $3,
			academic_year = $4, study_year = $5, notes = $6, updated_at = NOW()
		 WHERE id = $7 AND deleted_at IS NULL`,
		p.Type, p.Amount, p.DueDate, p.AcademicYear, p.StudyYear, p.Notes, p.ID)
	return err
}

func SoftDeletePayment(db *sql.DB, paymentID string) error {
	_, err := db.Exec(
		`UPDATE payments SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`,
		paymentID)
	return err
}

func GetInstallments(db *sql.DB, paymentID string) ([]*models.Installment, error) {
	rows, err := db.Query(
		`SELECT id, payment_id, amount, paid_date, method, reference, created_at
		 FROM installments WHERE payment_id = $1 ORDER BY paid_date, created_at`,
		paymentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var installments []*models.Installment
	for rows.Next() {
		inst := &models.Installment{}
		var ref *string
		if err := rows.Scan(&inst.ID, &inst.PaymentID, &inst.Amount, &inst.PaidDate,
			&inst.Method, &ref, &inst.CreatedAt); err != nil {
			return nil, err
		}
		if ref != nil {
			inst.Reference = *ref
		}
		installments = append(installments, inst)
	}
	return installments, nil
}

// AddInstallment records a partial payment. When the installment settles the
// remaining balance the parent payment's stored status is flipped to paid in
// the same transaction.
func AddInstallment(db *sql.DB, inst *models.Installment, completes bool) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRow(
		`INSERT INTO installments (payment_id, amount, paid_date, method, reference)
		 VALUES ($1,$2,$3,$4,$5) RETURNING id, created_at`,
		inst.PaymentID, inst.Amount, inst.PaidDate, inst.Method, inst.Reference,
	).Scan(&inst.ID, &inst.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert installment: %v", err)
	}

	if completes {
		_, err = tx.Exec(
			`UPDATE payments SET status = $1, paid_at = NOW(), updated_at = NOW() WHERE id = $2`,
			models.PaymentPaid, inst.PaymentID)
		if err != nil {
			return fmt.Errorf("failed to mark payment paid: %v", err)
		}
	}

	return tx.Commit()
}

// RefundPayment marks the payment refunded and records the credit note in one
// transaction.
func RefundPayment(db *sql.DB, paymentID string, note *models.CreditNote) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`UPDATE payments SET status = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL`,
		models.PaymentRefunded, paymentID)
	if err != nil {
		return fmt.Errorf("failed to mark payment refunded: %v", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	if note.Date.Time.IsZero() {
		note.Date = models.CustomDate{Time: time.Now()}
	}
	err = tx.QueryRow(
		`INSERT INTO credit_notes (invoice_id, number, amount, reason, date)
		 VALUES ($1,$2,$3,$4,$5) RETURNING id, created_at`,
		note.InvoiceID, note.Number, note.Amount, note.Reason, note.Date,
	).Scan(&note.ID, &note.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert credit note: %v", err)
	}

	return tx.Commit()
}
