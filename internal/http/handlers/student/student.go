// Package student serves the paged /api/students resource.
//
// Every handler is built by a factory that closes over the storage, so
// routes are registered as:
//
//	router.HandleFunc("POST /api/students", student.New(storage))
package student

import (
	"fmt"
	"log/slog"
	"math"
	"net/http"

	"github.com/aanand-mishra/student-manager/internal/storage"
	"github.com/aanand-mishra/student-manager/internal/types"
	"github.com/aanand-mishra/student-manager/internal/utils/request"
	"github.com/aanand-mishra/student-manager/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// Paging defaults for GET /api/students.
const (
	DefaultPageSize = 20
	MaxPageSize     = 1000
)

var validate = validator.New()

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/students.
//
//	{ "name": "Rakesh", "email": "r@test.com", "phone": "555", "address": "1 Main St" }
//
// 201 with the stored student, id included. 400 for an empty or malformed
// body or a blank field.
// ─────────────────────────────────────────────────────────────────────────────
func New(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		var student types.Student
		if err := request.DecodeJSON(r, &student); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		if !response.Validate(w, validate, student) {
			return
		}

		lastID, err := storage.CreateStudent(student)
		if err != nil {
			slog.Error("error creating student", slog.String("error", err.Error()))
			response.StorageError(w, err)
			return
		}

		slog.Info("student created", slog.Int64("id", lastID))
		student.ID = lastID
		response.WriteJSON(w, http.StatusCreated, student)
	}
}

// GetByID handles GET /api/students/{id}.
func GetByID(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.PathID(r)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		slog.Info("getting a student", slog.Int64("id", id))

		student, err := storage.GetStudentByID(id)
		if err != nil {
			slog.Error("error getting student",
				slog.Int64("id", id),
				slog.String("error", err.Error()))
			response.StorageError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/students?page={n}&size={s}.
//
// page is 0-based (default 0), size defaults to DefaultPageSize. The body
// is the HAL paging envelope:
//
//	{ "_embedded": { "students": [ ... ] },
//	  "page": { "size": 2, "totalElements": 5, "totalPages": 3, "number": 1 } }
//
// A page past the end has no _embedded object.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := request.IntQuery(r, "page", 0, 0)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		size, err := request.IntQuery(r, "size", DefaultPageSize, 1)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		size = min(size, MaxPageSize)
		if page > math.MaxInt/size {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(fmt.Errorf("invalid page: must be at most %d", math.MaxInt/size)))
			return
		}

		slog.Info("getting students", slog.Int("page", page), slog.Int("size", size))

		students, total, err := storage.GetStudentsPage(page, size)
		if err != nil {
			slog.Error("error getting students", slog.String("error", err.Error()))
			response.StorageError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, halPage(students, page, size, total))
	}
}

// Update handles PUT /api/students/{id}. Every field is replaced; the id
// in the body, if any, is ignored.
func Update(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.PathID(r)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		slog.Info("updating a student", slog.Int64("id", id))

		var student types.Student
		if err := request.DecodeJSON(r, &student); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		if !response.Validate(w, validate, student) {
			return
		}

		updated, err := storage.UpdateStudentByID(id, student)
		if err != nil {
			slog.Error("error updating student",
				slog.Int64("id", id),
				slog.String("error", err.Error()))
			response.StorageError(w, err)
			return
		}

		slog.Info("student updated", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// Delete handles DELETE /api/students/{id}.
func Delete(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.PathID(r)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		slog.Info("deleting a student", slog.Int64("id", id))

		if err := storage.DeleteStudentByID(id); err != nil {
			slog.Error("error deleting student",
				slog.Int64("id", id),
				slog.String("error", err.Error()))
			response.StorageError(w, err)
			return
		}

		slog.Info("student deleted", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func halPage(students []types.Student, page, size, total int) types.HALPage {
	env := types.HALPage{
		Page: types.PageMeta{
			Size:          size,
			TotalElements: total,
			TotalPages:    (total + size - 1) / size,
			Number:        page,
		},
	}
	if len(students) > 0 {
		env.Embedded = &types.HALEmbedded{Students: students}
	}
	return env
}
