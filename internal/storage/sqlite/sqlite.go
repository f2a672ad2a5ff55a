// Package sqlite implements storage.Storage on a single SQLite file.
//
// The schema lives in migrations/ and is applied with golang-migrate when
// the database is opened, so a fresh file and an old one end up at the
// same version.
package sqlite

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aanand-mishra/student-manager/internal/config"
	"github.com/aanand-mishra/student-manager/internal/storage"
	"github.com/aanand-mishra/student-manager/internal/types"
	"github.com/golang-migrate/migrate/v4"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	// Registers the "sqlite3" driver with database/sql.
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLite is the SQLite-backed storage.Storage.
type SQLite struct {
	Db *sql.DB
}

var _ storage.Storage = (*SQLite)(nil)

// New opens (creating if needed) the database at cfg.StoragePath and
// migrates it to the latest schema.
func New(cfg *config.Config) (*SQLite, error) {
	if dir := filepath.Dir(cfg.StoragePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite.New: create dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}
	// SQLite allows one writer at a time.
	db.SetMaxOpenConns(1)

	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Close releases the database file.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// migrateUp applies every pending migration. The migrate instance is not
// closed: closing it would close db as well.
func migrateUp(db *sql.DB) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("migrate source: %w", err)
	}
	driver, err := sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
	if err != nil {
		return fmt.Errorf("migrate driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("migrate init: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// ── students ────────────────────────────────────────────────────────────────

func (s *SQLite) CreateStudent(student types.Student) (int64, error) {
	stmt, err := s.Db.Prepare(
		"INSERT INTO students (name, email, phone, address) VALUES (?, ?, ?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(student.Name, student.Email, student.Phone, student.Address)
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateStudent: last insert id: %w", err)
	}
	return lastID, nil
}

func (s *SQLite) GetStudentByID(id int64) (types.Student, error) {
	stmt, err := s.Db.Prepare(
		"SELECT id, name, email, phone, address FROM students WHERE id = ? LIMIT 1",
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("GetStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	var student types.Student
	err = stmt.QueryRow(id).Scan(
		&student.ID,
		&student.Name,
		&student.Email,
		&student.Phone,
		&student.Address,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Student{}, fmt.Errorf("no student found with id %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return types.Student{}, fmt.Errorf("GetStudentByID: scan: %w", err)
	}
	return student, nil
}

func (s *SQLite) GetStudentsPage(page, size int) ([]types.Student, int, error) {
	var total int
	if err := s.Db.QueryRow("SELECT COUNT(*) FROM students").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("GetStudentsPage: count: %w", err)
	}

	stmt, err := s.Db.Prepare(
		"SELECT id, name, email, phone, address FROM students ORDER BY id LIMIT ? OFFSET ?",
	)
	if err != nil {
		return nil, 0, fmt.Errorf("GetStudentsPage: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query(size, page*size)
	if err != nil {
		return nil, 0, fmt.Errorf("GetStudentsPage: query: %w", err)
	}
	defer rows.Close()

	students := make([]types.Student, 0, size)
	for rows.Next() {
		var student types.Student
		if err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.Email,
			&student.Phone,
			&student.Address,
		); err != nil {
			return nil, 0, fmt.Errorf("GetStudentsPage: scan row: %w", err)
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("GetStudentsPage: rows iteration: %w", err)
	}

	return students, total, nil
}

func (s *SQLite) UpdateStudentByID(id int64, student types.Student) (types.Student, error) {
	stmt, err := s.Db.Prepare(
		"UPDATE students SET name = ?, email = ?, phone = ?, address = ? WHERE id = ?",
	)
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(student.Name, student.Email, student.Phone, student.Address, id)
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: exec: %w", err)
	}
	if err := expectRow(result, "student", id); err != nil {
		return types.Student{}, err
	}

	return s.GetStudentByID(id)
}

func (s *SQLite) DeleteStudentByID(id int64) error {
	return s.deleteByID("DELETE FROM students WHERE id = ?", "student", id)
}

// ── eleves ──────────────────────────────────────────────────────────────────

func (s *SQLite) ListEleves() ([]types.Eleve, error) {
	rows, err := s.Db.Query("SELECT id, nom, prenom, date_naissance FROM eleves ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("ListEleves: query: %w", err)
	}
	defer rows.Close()

	eleves := make([]types.Eleve, 0)
	for rows.Next() {
		var e types.Eleve
		if err := rows.Scan(&e.ID, &e.Nom, &e.Prenom, &e.DateNaissance); err != nil {
			return nil, fmt.Errorf("ListEleves: scan row: %w", err)
		}
		eleves = append(eleves, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListEleves: rows iteration: %w", err)
	}
	return eleves, nil
}

func (s *SQLite) SaveEleve(e types.Eleve) (types.Eleve, error) {
	if e.ID == 0 {
		result, err := s.Db.Exec(
			"INSERT INTO eleves (nom, prenom, date_naissance) VALUES (?, ?, ?)",
			e.Nom, e.Prenom, e.DateNaissance,
		)
		if err != nil {
			return types.Eleve{}, fmt.Errorf("SaveEleve: insert: %w", err)
		}
		if e.ID, err = result.LastInsertId(); err != nil {
			return types.Eleve{}, fmt.Errorf("SaveEleve: last insert id: %w", err)
		}
		return e, nil
	}

	result, err := s.Db.Exec(
		"UPDATE eleves SET nom = ?, prenom = ?, date_naissance = ? WHERE id = ?",
		e.Nom, e.Prenom, e.DateNaissance, e.ID,
	)
	if err != nil {
		return types.Eleve{}, fmt.Errorf("SaveEleve: update: %w", err)
	}
	if err := expectRow(result, "eleve", e.ID); err != nil {
		return types.Eleve{}, err
	}
	return e, nil
}

func (s *SQLite) DeleteEleve(id int64) error {
	return s.deleteByID("DELETE FROM eleves WHERE id = ?", "eleve", id)
}

func (s *SQLite) deleteByID(query, kind string, id int64) error {
	stmt, err := s.Db.Prepare(query)
	if err != nil {
		return fmt.Errorf("delete %s: prepare: %w", kind, err)
	}
	defer stmt.Close()

	result, err := stmt.Exec(id)
	if err != nil {
		return fmt.Errorf("delete %s: exec: %w", kind, err)
	}
	return expectRow(result, kind, id)
}

// expectRow turns "0 rows affected" into storage.ErrNotFound.
func expectRow(result sql.Result, kind string, id int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %d: rows affected: %w", kind, id, err)
	}
	if n == 0 {
		return fmt.Errorf("no %s found with id %d: %w", kind, id, storage.ErrNotFound)
	}
	return nil
}
