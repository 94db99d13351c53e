package database

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/habab6/ipec-campus-connect-sub000/app/models"
)

// accountScript records, in order, every driver event triggered by an
// account-creation call so tests can assert the transaction boundary.
type accountScript struct {
	events      []string
	failProfile bool
}

type scriptDriver struct{ s *accountScript }

func (d scriptDriver) Open(string) (driver.Conn, error) { return &scriptConn{s: d.s}, nil }

type scriptConn struct{ s *accountScript }

func (c *scriptConn) Prepare(query string) (driver.Stmt, error) {
	return &scriptStmt{s: c.s, query: query}, nil
}
func (c *scriptConn) Close() error { return nil }
func (c *scriptConn) Begin() (driver.Tx, error) {
	c.s.events = append(c.s.events, "begin")
	return &scriptTx{s: c.s}, nil
}

type scriptTx struct{ s *accountScript }

func (t *scriptTx) Commit() error {
	t.s.events = append(t.s.events, "commit")
	return nil
}
func (t *scriptTx) Rollback() error {
	t.s.events = append(t.s.events, "rollback")
	return nil
}

type scriptStmt struct {
	s     *accountScript
	query string
}

func (st *scriptStmt) Close() error  { return nil }
func (st *scriptStmt) NumInput() int { return -1 }

func (st *scriptStmt) Exec(args []driver.Value) (driver.Result, error) {
	switch {
	case strings.HasPrefix(st.query, "INSERT INTO user_roles"):
		st.s.events = append(st.s.events, "user_roles")
	case strings.HasPrefix(st.query, "INSERT INTO student_profiles"):
		if st.s.failProfile {
			return nil, errors.New("student_profiles insert rejected")
		}
		st.s.events = append(st.s.events, "student_profiles")
	default:
		return nil, fmt.Errorf("unexpected exec: %s", st.query)
	}
	return driver.RowsAffected(1), nil
}

func (st *scriptStmt) Query(args []driver.Value) (driver.Rows, error) {
	switch {
	case strings.HasPrefix(st.query, "INSERT INTO users"):
		st.s.events = append(st.s.events, "users")
		return &scriptRows{
			cols: []string{"id", "created_at"},
			rows: [][]driver.Value{{"user-1", time.Now()}},
		}, nil
	case strings.HasPrefix(st.query, "SELECT id FROM roles"):
		st.s.events = append(st.s.events, "roles")
		return &scriptRows{cols: []string{"id"}, rows: [][]driver.Value{{"role-1"}}}, nil
	}
	return nil, fmt.Errorf("unexpected query: %s", st.query)
}

type scriptRows struct {
	cols []string
	rows [][]driver.Value
	pos  int
}

func (r *scriptRows) Columns() []string { return r.cols }
func (r *scriptRows) Close() error      { return nil }
func (r *scriptRows) Next(dest []driver.Value) error {
	if r.pos >= len(r.rows) {
		return io.EOF
	}
	copy(dest, r.rows[r.pos])
	r.pos++
	return nil
}

var scriptSeq int64

func openScriptDB(t *testing.T, s *accountScript) *sql.DB {
	t.Helper()
	name := fmt.Sprintf("account-script-%d", atomic.AddInt64(&scriptSeq, 1))
	sql.Register(name, scriptDriver{s: s})
	db, err := sql.Open(name, "")
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newAccountUser() *models.User {
	return &models.User{
		Email:     "john.smith@example.com",
		Password:  "s3cret-pass",
		FirstName: "John",
		LastName:  "Smith",
	}
}

func TestCreateStudentAccountSingleTransaction(t *testing.T) {
	s := &accountScript{}
	db := openScriptDB(t, s)

	user := newAccountUser()
	if err := CreateStudentAccount(db, user, "student-1"); err != nil {
		t.Fatalf("CreateStudentAccount: %v", err)
	}

	want := []string{"begin", "users", "roles", "user_roles", "student_profiles", "commit"}
	if !reflect.DeepEqual(s.events, want) {
		t.Errorf("events = %v, want %v", s.events, want)
	}
	if user.ID != "user-1" {
		t.Errorf("user.ID = %q, want %q", user.ID, "user-1")
	}
}

func TestCreateStudentAccountRollsBackOnProfileFailure(t *testing.T) {
	s := &accountScript{failProfile: true}
	db := openScriptDB(t, s)

	if err := CreateStudentAccount(db, newAccountUser(), "student-1"); err == nil {
		t.Fatal("expected an error when the profile insert fails")
	}

	// The user insert must not survive a failed profile link.
	want := []string{"begin", "users", "roles", "user_roles", "rollback"}
	if !reflect.DeepEqual(s.events, want) {
		t.Errorf("events = %v, want %v", s.events, want)
	}
}
