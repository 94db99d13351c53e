package database

import (
	"database/sql"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/habab6/ipec-campus-connect-sub000/app/models"
)

// StudentFilters represents filtering options for students
type StudentFilters struct {
	Search       string
	Status       string
	Program      string
	AcademicYear string
	SortBy       string
	SortOrder    string
	Limit        int
	Offset       int
}

// hashPassword hashes a password using bcrypt
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, first_name, last_name, is_active, created_at, updated_at
			  FROM users WHERE email = $1 AND is_active = true`

	err := db.QueryRow(query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName,
		&user.LastName, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserByID(db *sql.DB, userID string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, first_name, last_name, is_active, created_at, updated_at
			  FROM users WHERE id = $1 AND is_active = true`

	err := db.QueryRow(query, userID).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName,
		&user.LastName, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserRoles(db *sql.DB, userID string) ([]*models.Role, error) {
	query := `
		SELECT r.id, r.name
		FROM roles r
		JOIN user_roles ur ON r.id = ur.role_id
		WHERE ur.user_id = $1
	`
	rows, err := db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []*models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		roles = append(roles, &role)
	}
	return roles, nil
}

func insertUserWithRoleTx(tx *sql.Tx, user *models.User, roleName string) error {
	hashed, err := hashPassword(user.Password)
	if err != nil {
		return err
	}

	err = tx.QueryRow(
		`INSERT INTO users (email, password, first_name, last_name)
		 VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		user.Email, hashed, user.FirstName, user.LastName,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert user: %v", err)
	}

	var roleID string
	if err := tx.QueryRow(`SELECT id FROM roles WHERE name = $1`, roleName).Scan(&roleID); err != nil {
		return fmt.Errorf("role %s not found: %v", roleName, err)
	}

	if _, err := tx.Exec(`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`, user.ID, roleID); err != nil {
		return fmt.Errorf("failed to attach role: %v", err)
	}

	return nil
}

// CreateUserWithRole creates a login account and attaches the named role in
// one transaction. The plain-text password is hashed here.
func CreateUserWithRole(db *sql.DB, user *models.User, roleName string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertUserWithRoleTx(tx, user, roleName); err != nil {
		return err
	}
	return tx.Commit()
}

// CreateStudentAccount creates a student login (user + student role) and links
// the profile to the student record in one transaction, so a failed profile
// insert cannot leave an orphaned user behind.
func CreateStudentAccount(db *sql.DB, user *models.User, studentID string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertUserWithRoleTx(tx, user, "student"); err != nil {
		return err
	}

	if _, err := tx.Exec(
		`INSERT INTO student_profiles (user_id, student_id) VALUES ($1, $2)`,
		user.ID, studentID); err != nil {
		return fmt.Errorf("failed to link profile: %v", err)
	}

	return tx.Commit()
}

const studentColumns = `id, reference, first_name, last_name, gender, birth_date, birth_place,
	birth_country, nationality, id_doc_type, id_doc_number, email, phone,
	address_street, address_city, address_postal, address_country,
	program, study_year, specialty, academic_year, status, created_at, updated_at`

func scanStudent(row interface{ Scan(...interface{}) error }) (*models.Student, error) {
	s := &models.Student{}
	var gender, birthPlace, birthCountry, idDocType, idDocNumber *string
	var phone, street, city, postal, country *string

	err := row.Scan(
		&s.ID, &s.Reference, &s.FirstName, &s.LastName, &gender, &s.BirthDate,
		&birthPlace, &birthCountry, &s.Nationality, &idDocType, &idDocNumber,
		&s.Email, &phone, &street, &city, &postal, &country,
		&s.Program, &s.StudyYear, &s.Specialty, &s.AcademicYear, &s.Status,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if gender != nil {
		g := models.Gender(*gender)
		s.Gender = &g
	}
	if birthPlace != nil {
		s.BirthPlace = *birthPlace
	}
	if birthCountry != nil {
		s.BirthCountry = *birthCountry
	}
	if idDocType != nil {
		s.IDDocType = *idDocType
	}
	if idDocNumber != nil {
		s.IDDocNumber = *idDocNumber
	}
	if phone != nil {
		s.Phone = *phone
	}
	if street != nil {
		s.AddressStreet = *street
	}
	if city != nil {
		s.AddressCity = *city
	}
	if postal != nil {
		s.AddressPostal = *postal
	}
	if country != nil {
		s.AddressCountry = *country
	}
	return s, nil
}

func GetStudentByID(db *sql.DB, studentID string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1 AND deleted_at IS NULL`
	return scanStudent(db.QueryRow(query, studentID))
}

func GetStudentByReference(db *sql.DB, reference string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE reference = $1 AND deleted_at IS NULL`
	return scanStudent(db.QueryRow(query, reference))
}

func GetStudentByEmail(db *sql.DB, email string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE email = $1 AND deleted_at IS NULL`
	return scanStudent(db.QueryRow(query, email))
}

// GetStudentsWithFilters returns a student page plus the unpaginated count.
func GetStudentsWithFilters(db *sql.DB, filters StudentFilters) ([]*models.Student, int, error) {
	baseWhere := `WHERE deleted_at IS NULL`
	var conditions []string
	var args []interface{}
	argIndex := 1

	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			`(LOWER(first_name) LIKE $%d OR LOWER(last_name) LIKE $%d OR LOWER(reference) LIKE $%d)`,
			argIndex, argIndex, argIndex))
		args = append(args, "%"+strings.ToLower(filters.Search)+"%")
		argIndex++
	}
	if filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, filters.Status)
		argIndex++
	}
	if filters.Program != "" {
		conditions = append(conditions, fmt.Sprintf("program = $%d", argIndex))
		args = append(args, filters.Program)
		argIndex++
	}
	if filters.AcademicYear != "" {
		conditions = append(conditions, fmt.Sprintf("academic_year = $%d", argIndex))
		args = append(args, filters.AcademicYear)
		argIndex++
	}

	where := baseWhere
	if len(conditions) > 0 {
		where += " AND " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := db.QueryRow(`SELECT COUNT(*) FROM students `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sortBy := "created_at"
	switch filters.SortBy {
	case "last_name", "reference", "academic_year", "created_at":
		sortBy = filters.SortBy
	}
	order := "DESC"
	if strings.EqualFold(filters.SortOrder, "asc") {
		order = "ASC"
	}

	query := `SELECT ` + studentColumns + ` FROM students ` + where +
		fmt.Sprintf(" ORDER BY %s %s", sortBy, order)
	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
		args = append(args, filters.Limit, filters.Offset)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, 0, err
		}
		students = append(students, s)
	}
	return students, total, nil
}

func UpdateStudent(db *sql.DB, s *models.Student) error {
	query := `UPDATE students SET
			first_name = $1, last_name = $2, gender = $3, birth_date = $4,
			birth_place = $5, birth_country = $6, nationality = $7,
			id_doc_type = $8, id_doc_number = $9, email = $10, phone = $11,
			address_street = $12, address_city = $13, address_postal = $14,
			address_country = $15, program = $16, study_year = $17,
			specialty = $18, academic_year = $19, status = $20, updated_at = NOW()
		WHERE id = $21 AND deleted_at IS NULL`

	_, err := db.Exec(query,
		s.FirstName, s.LastName, s.Gender, s.BirthDate, s.BirthPlace,
		s.BirthCountry, s.Nationality, s.IDDocType, s.IDDocNumber, s.Email,
		s.Phone, s.AddressStreet, s.AddressCity, s.AddressPostal,
		s.AddressCountry, s.Program, s.StudyYear, s.Specialty, s.AcademicYear,
		s.Status, s.ID,
	)
	return err
}

func UpdateStudentStatus(db *sql.DB, studentID string, status models.StudentStatus) error {
	_, err := db.Exec(
		`UPDATE students SET status = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL`,
		status, studentID)
	return err
}

func SoftDeleteStudent(db *sql.DB, studentID string) error {
	_, err := db.Exec(
		`UPDATE students SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`,
		studentID)
	return err
}

// NextStudentSequence returns the next per-registration-year sequence used to
// build student references.
func NextStudentSequence(db *sql.DB, yearPrefix string) (int, error) {
	var count int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM students WHERE reference LIKE $1`,
		yearPrefix+"%").Scan(&count)
	if err != nil {
		return 0, err
	}
	return count + 1, nil
}

// CreateStudentWithCharges inserts a student, the opening In-Progress history
// entry and the initial charges in one transaction so registration never
// half-applies.
func CreateStudentWithCharges(db *sql.DB, s *models.Student, history *models.AcademicHistoryEntry, charges []*models.Payment) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRow(
		`INSERT INTO students (reference, first_name, last_name, gender, birth_date,
			birth_place, birth_country, nationality, id_doc_type, id_doc_number,
			email, phone, address_street, address_city, address_postal,
			address_country, program, study_year, specialty, academic_year, status)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
		 RETURNING id, created_at, updated_at`,
		s.Reference, s.FirstName, s.LastName, s.Gender, s.BirthDate,
		s.BirthPlace, s.BirthCountry, s.Nationality, s.IDDocType, s.IDDocNumber,
		s.Email, s.Phone, s.AddressStreet, s.AddressCity, s.AddressPostal,
		s.AddressCountry, s.Program, s.StudyYear, s.Specialty, s.AcademicYear, s.Status,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert student: %v", err)
	}

	history.StudentID = s.ID
	if err := insertHistoryTx(tx, history); err != nil {
		return err
	}

	if err := ensureAcademicYearTx(tx, s.AcademicYear); err != nil {
		return err
	}

	for _, charge := range charges {
		charge.StudentID = s.ID
		if err := insertPaymentTx(tx, charge); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func HasStudentProfile(db *sql.DB, studentID string) (bool, error) {
	var exists bool
	err := db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM student_profiles WHERE student_id = $1)`,
		studentID).Scan(&exists)
	return exists, err
}

// GetStudentsStats returns counts by status for the students page.
func GetStudentsStats(db *sql.DB) (map[string]int, error) {
	rows, err := db.Query(
		`SELECT status, COUNT(*) FROM students WHERE deleted_at IS NULL GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := map[string]int{"total": 0}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
		stats["total"] += count
	}
	return stats, nil
}
