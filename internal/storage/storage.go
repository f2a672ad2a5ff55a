// Package storage defines the contract the development backend's
// handlers depend on. Handlers never see the concrete database; tests pass
// an in-memory fake instead.
package storage

import (
	"errors"

	"github.com/aanand-mishra/student-manager/internal/types"
)

// ErrNotFound is returned, wrapped, when no record has the requested id.
var ErrNotFound = errors.New("storage: record not found")

// Storage holds both record families: students for the paged resource,
// eleves for the flat endpoints.
type Storage interface {
	// CreateStudent inserts student, ignoring its ID, and returns the
	// generated id.
	CreateStudent(student types.Student) (int64, error)

	GetStudentByID(id int64) (types.Student, error)

	// GetStudentsPage returns the 0-based page of students ordered by id,
	// and the total number of students.
	GetStudentsPage(page, size int) ([]types.Student, int, error)

	// UpdateStudentByID replaces every field of an existing student and
	// returns the stored record.
	UpdateStudentByID(id int64, student types.Student) (types.Student, error)

	DeleteStudentByID(id int64) error

	// ListEleves returns every eleve ordered by id, never nil.
	ListEleves() ([]types.Eleve, error)

	// SaveEleve inserts e when e.ID is zero and replaces the stored record
	// otherwise. It returns the stored record.
	SaveEleve(e types.Eleve) (types.Eleve, error)

	DeleteEleve(id int64) error
}
