package student

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aanand-mishra/student-manager/internal/storage"
	"github.com/aanand-mishra/student-manager/internal/types"
	"github.com/aanand-mishra/student-manager/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStorage keeps students in a slice; eleve methods are unused here.
type fakeStorage struct {
	storage.Storage
	students []types.Student
	nextID   int64
	err      error
}

func (f *fakeStorage) CreateStudent(s types.Student) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.nextID++
	s.ID = f.nextID
	f.students = append(f.students, s)
	return s.ID, nil
}

func (f *fakeStorage) find(id int64) int {
	for i, s := range f.students {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (f *fakeStorage) GetStudentByID(id int64) (types.Student, error) {
	if f.err != nil {
		return types.Student{}, f.err
	}
	i := f.find(id)
	if i < 0 {
		return types.Student{}, fmt.Errorf("student %d: %w", id, storage.ErrNotFound)
	}
	return f.students[i], nil
}

func (f *fakeStorage) GetStudentsPage(page, size int) ([]types.Student, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	lo := min(page*size, len(f.students))
	hi := min(lo+size, len(f.students))
	return f.students[lo:hi], len(f.students), nil
}

func (f *fakeStorage) UpdateStudentByID(id int64, s types.Student) (types.Student, error) {
	i := f.find(id)
	if i < 0 {
		return types.Student{}, fmt.Errorf("student %d: %w", id, storage.ErrNotFound)
	}
	s.ID = id
	f.students[i] = s
	return s, nil
}

func (f *fakeStorage) DeleteStudentByID(id int64) error {
	i := f.find(id)
	if i < 0 {
		return fmt.Errorf("student %d: %w", id, storage.ErrNotFound)
	}
	f.students = append(f.students[:i], f.students[i+1:]...)
	return nil
}

func newRouter(s storage.Storage) *http.ServeMux {
	router := http.NewServeMux()
	router.HandleFunc("POST /api/students", New(s))
	router.HandleFunc("GET /api/students", GetList(s))
	router.HandleFunc("GET /api/students/{id}", GetByID(s))
	router.HandleFunc("PUT /api/students/{id}", Update(s))
	router.HandleFunc("DELETE /api/students/{id}", Delete(s))
	return router
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rec
}

func seeded(n int) *fakeStorage {
	f := &fakeStorage{}
	for i := 0; i < n; i++ {
		name := string(rune('A' + i))
		f.CreateStudent(types.Student{Name: name, Email: name + "@test.com", Phone: "1", Address: "x"})
	}
	return f
}

func TestNew(t *testing.T) {
	t.Run("Should create a student", func(t *testing.T) {
		f := &fakeStorage{}
		rec := serve(newRouter(f), http.MethodPost, "/api/students",
			`{"name":"Rakesh","email":"r@test.com","phone":"555","address":"1 Main St"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		var got types.Student
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.EqualValues(t, 1, got.ID)
		assert.Equal(t, "Rakesh", got.Name)
		assert.Len(t, f.students, 1)
	})

	t.Run("Should reject an empty body", func(t *testing.T) {
		rec := serve(newRouter(&fakeStorage{}), http.MethodPost, "/api/students", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "request body is empty")
	})

	t.Run("Should list every missing field", func(t *testing.T) {
		f := &fakeStorage{}
		rec := serve(newRouter(f), http.MethodPost, "/api/students", `{"name":"Rakesh"}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var got response.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, response.StatusError, got.Status)
		assert.Equal(t, "field Email is required, field Phone is required, field Address is required", got.Error)
		assert.Empty(t, f.students)
	})

	t.Run("Should answer 500 when storage fails", func(t *testing.T) {
		f := &fakeStorage{err: errors.New("disk full")}
		rec := serve(newRouter(f), http.MethodPost, "/api/students",
			`{"name":"a","email":"b","phone":"c","address":"d"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "disk full")
	})
}

func TestGetByID(t *testing.T) {
	router := newRouter(seeded(2))

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"Should return an existing student", "/api/students/2", http.StatusOK},
		{"Should answer 404 for an unknown id", "/api/students/9", http.StatusNotFound},
		{"Should answer 400 for a non-numeric id", "/api/students/abc", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(router, http.MethodGet, tt.target, "")
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestGetList(t *testing.T) {
	router := newRouter(seeded(5))

	t.Run("Should wrap a page in the HAL envelope", func(t *testing.T) {
		rec := serve(router, http.MethodGet, "/api/students?page=1&size=2", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var got types.HALPage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.NotNil(t, got.Embedded)
		require.Len(t, got.Embedded.Students, 2)
		assert.Equal(t, "C", got.Embedded.Students[0].Name)
		assert.Equal(t, types.PageMeta{Size: 2, TotalElements: 5, TotalPages: 3, Number: 1}, got.Page)
	})

	t.Run("Should omit _embedded past the last page", func(t *testing.T) {
		rec := serve(router, http.MethodGet, "/api/students?page=7&size=2", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "_embedded")
	})

	t.Run("Should use the default page size", func(t *testing.T) {
		rec := serve(router, http.MethodGet, "/api/students", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var got types.HALPage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, DefaultPageSize, got.Page.Size)
		assert.Equal(t, 1, got.Page.TotalPages)
		assert.Len(t, got.Embedded.Students, 5)
	})

	t.Run("Should reject a page whose offset overflows", func(t *testing.T) {
		target := fmt.Sprintf("/api/students?page=%d&size=2", math.MaxInt/2+1)
		rec := serve(router, http.MethodGet, target, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid page")
	})

	t.Run("Should accept the last addressable page", func(t *testing.T) {
		target := fmt.Sprintf("/api/students?page=%d&size=2", math.MaxInt/2)
		rec := serve(router, http.MethodGet, target, "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "_embedded")
	})

	t.Run("Should reject a bad size", func(t *testing.T) {
		rec := serve(router, http.MethodGet, "/api/students?size=0", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdate(t *testing.T) {
	f := seeded(1)
	router := newRouter(f)

	t.Run("Should replace every field", func(t *testing.T) {
		rec := serve(router, http.MethodPut, "/api/students/1",
			`{"id":5,"name":"Z","email":"z@test.com","phone":"9","address":"y"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, types.Student{ID: 1, Name: "Z", Email: "z@test.com", Phone: "9", Address: "y"}, f.students[0])
	})

	t.Run("Should answer 404 for an unknown id", func(t *testing.T) {
		rec := serve(router, http.MethodPut, "/api/students/9",
			`{"name":"Z","email":"z@test.com","phone":"9","address":"y"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDelete(t *testing.T) {
	f := seeded(2)
	router := newRouter(f)

	rec := serve(router, http.MethodDelete, "/api/students/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"deleted"}`, rec.Body.String())
	assert.Len(t, f.students, 1)

	rec = serve(router, http.MethodDelete, "/api/students/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
