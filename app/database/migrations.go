package database

import (
	"database/sql"
	"log"
)

// RunMigrations bootstraps the schema and applies necessary updates.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS roles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(50) UNIQUE NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS user_roles (
			user_id UUID NOT NULL REFERENCES users(id),
			role_id UUID NOT NULL REFERENCES roles(id),
			PRIMARY KEY (user_id, role_id)
		)`,

		`CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			reference VARCHAR(20) UNIQUE NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			gender VARCHAR(10),
			birth_date DATE NOT NULL,
			birth_place VARCHAR(120),
			birth_country VARCHAR(120),
			nationality VARCHAR(120) NOT NULL,
			id_doc_type VARCHAR(30),
			id_doc_number VARCHAR(60),
			email VARCHAR(255) UNIQUE NOT NULL,
			phone VARCHAR(40),
			address_street VARCHAR(200),
			address_city VARCHAR(120),
			address_postal VARCHAR(20),
			address_country VARCHAR(120),
			program VARCHAR(30) NOT NULL,
			study_year INT NOT NULL,
			specialty VARCHAR(120),
			academic_year VARCHAR(9) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'active',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS student_profiles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID UNIQUE NOT NULL REFERENCES users(id),
			student_id UUID UNIQUE NOT NULL REFERENCES students(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS academic_years (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(9) UNIQUE NOT NULL,
			is_current BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS academic_history (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id),
			academic_year VARCHAR(9) NOT NULL,
			study_year INT NOT NULL,
			program VARCHAR(30) NOT NULL,
			specialty VARCHAR(120),
			status VARCHAR(20) NOT NULL,
			passed_to_next_year BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS payments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id),
			type VARCHAR(30) NOT NULL,
			amount DECIMAL(10,2) NOT NULL,
			currency VARCHAR(3) NOT NULL DEFAULT 'EUR',
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			due_date DATE NOT NULL,
			academic_year VARCHAR(9),
			study_year INT,
			paid_at TIMESTAMPTZ,
			notes TEXT DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS installments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			payment_id UUID NOT NULL REFERENCES payments(id),
			amount DECIMAL(10,2) NOT NULL,
			paid_date DATE NOT NULL,
			method VARCHAR(20) NOT NULL,
			reference VARCHAR(100) DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS attestations (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id),
			number VARCHAR(50) UNIQUE NOT NULL,
			academic_year VARCHAR(9) NOT NULL,
			study_year INT NOT NULL,
			program VARCHAR(30) NOT NULL,
			specialty VARCHAR(120),
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			reference VARCHAR(20) NOT NULL,
			birth_date DATE,
			birth_place VARCHAR(120),
			nationality VARCHAR(120),
			generate_date TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS invoices (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id),
			payment_id UUID NOT NULL REFERENCES payments(id),
			number VARCHAR(50) NOT NULL,
			amount DECIMAL(10,2) NOT NULL,
			type VARCHAR(30) NOT NULL,
			academic_year VARCHAR(9),
			study_year INT,
			generate_date TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		// At most one non-duplicate invoice per payment, enforced by the store
		// rather than a racy check-then-create.
		`CREATE UNIQUE INDEX IF NOT EXISTS invoices_payment_unique
			ON invoices (payment_id) WHERE type <> 'duplicate'`,

		`CREATE TABLE IF NOT EXISTS credit_notes (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			invoice_id UUID NOT NULL REFERENCES invoices(id),
			number VARCHAR(50) NOT NULL,
			amount DECIMAL(10,2) NOT NULL,
			reason TEXT NOT NULL,
			date DATE NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`INSERT INTO roles (name) VALUES ('admin') ON CONFLICT (name) DO NOTHING`,
		`INSERT INTO roles (name) VALUES ('student') ON CONFLICT (name) DO NOTHING`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Migration statement failed: %v", err)
			return err
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
