package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/aanand-mishra/student-manager/internal/config"
	"github.com/aanand-mishra/student-manager/internal/storage"
	"github.com/aanand-mishra/student-manager/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *SQLite {
	t.Helper()
	cfg := &config.Config{StoragePath: filepath.Join(t.TempDir(), "data", "test.db")}
	db, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStudentsRoundTrip(t *testing.T) {
	db := openTestDB(t)

	id, err := db.CreateStudent(types.Student{ID: 99, Name: "Rakesh", Email: "r@test.com", Phone: "1", Address: "A"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, id, "id is generated, not taken from the input")

	got, err := db.GetStudentByID(id)
	require.NoError(t, err)
	assert.Equal(t, types.Student{ID: 1, Name: "Rakesh", Email: "r@test.com", Phone: "1", Address: "A"}, got)

	updated, err := db.UpdateStudentByID(id, types.Student{Name: "Rakesh K", Email: "rk@test.com", Phone: "2", Address: "B"})
	require.NoError(t, err)
	assert.Equal(t, "Rakesh K", updated.Name)
	assert.EqualValues(t, 1, updated.ID)

	require.NoError(t, db.DeleteStudentByID(id))
	_, err = db.GetStudentByID(id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStudentsNotFound(t *testing.T) {
	db := openTestDB(t)

	_, err := db.GetStudentByID(42)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = db.UpdateStudentByID(42, types.Student{Name: "x", Email: "x", Phone: "x", Address: "x"})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.ErrorIs(t, db.DeleteStudentByID(42), storage.ErrNotFound)
}

func TestStudentsPage(t *testing.T) {
	db := openTestDB(t)
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		_, err := db.CreateStudent(types.Student{Name: name, Email: name, Phone: name, Address: name})
		require.NoError(t, err)
	}

	tests := []struct {
		name       string
		page, size int
		want       []string
	}{
		{"Should return the first page", 0, 2, []string{"A", "B"}},
		{"Should return a middle page", 1, 2, []string{"C", "D"}},
		{"Should return a short last page", 2, 2, []string{"E"}},
		{"Should return nothing past the end", 3, 2, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			students, total, err := db.GetStudentsPage(tt.page, tt.size)
			require.NoError(t, err)
			assert.Equal(t, 5, total)

			names := []string{}
			for _, s := range students {
				names = append(names, s.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestEleves(t *testing.T) {
	db := openTestDB(t)

	list, err := db.ListEleves()
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	saved, err := db.SaveEleve(types.Eleve{Nom: "Doe", Prenom: "John", DateNaissance: "2000-01-01"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, saved.ID)

	saved.Prenom = "Johnny"
	_, err = db.SaveEleve(saved)
	require.NoError(t, err)

	list, err = db.ListEleves()
	require.NoError(t, err)
	assert.Equal(t, []types.Eleve{{ID: 1, Nom: "Doe", Prenom: "Johnny", DateNaissance: "2000-01-01"}}, list)

	_, err = db.SaveEleve(types.Eleve{ID: 7, Nom: "x", Prenom: "y", DateNaissance: "2000-01-01"})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, db.DeleteEleve(1))
	assert.ErrorIs(t, db.DeleteEleve(1), storage.ErrNotFound)
}

func TestReopenKeepsData(t *testing.T) {
	cfg := &config.Config{StoragePath: filepath.Join(t.TempDir(), "test.db")}

	db, err := New(cfg)
	require.NoError(t, err)
	_, err = db.SaveEleve(types.Eleve{Nom: "Doe", Prenom: "John", DateNaissance: "2000-01-01"})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = New(cfg)
	require.NoError(t, err, "migrations are already applied")
	defer db.Close()

	list, err := db.ListEleves()
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
