package database

import (
	"database/sql"

	"github.com/habab6/ipec-campus-connect-sub000/app/models"
)

// GetDashboardStats aggregates the figures for the admin dashboard. Paid
// amounts come from installments plus payments marked paid without recorded
// installments; outstanding is what remains on non-refunded charges.
func GetDashboardStats(db *sql.DB) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	err := db.QueryRow(`
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'active'),
			COUNT(*) FILTER (WHERE status = 'archived')
		FROM students WHERE deleted_at IS NULL
	`).Scan(&stats.TotalStudents, &stats.ActiveStudents, &stats.ArchivedStudents)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`
		SELECT COALESCE(SUM(p.amount - paid.total), 0),
			COUNT(*) FILTER (WHERE p.due_date < NOW() AND paid.total = 0)
		FROM payments p
		LEFT JOIN LATERAL (
			SELECT COALESCE(SUM(i.amount), 0) AS total
			FROM installments i WHERE i.payment_id = p.id
		) paid ON true
		WHERE p.deleted_at IS NULL
			AND p.status NOT IN ('paid', 'refunded')
			AND p.amount > paid.total
	`).Scan(&stats.TotalOutstanding, &stats.OverdueCount)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`
		SELECT COALESCE(SUM(i.amount), 0)
		FROM installments i
		WHERE date_trunc('month', i.paid_date) = date_trunc('month', NOW())
	`).Scan(&stats.CollectedMonth)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
