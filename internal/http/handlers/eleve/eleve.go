// Package eleve serves the flat endpoints:
//
//	GET    /api/all         every eleve, as a JSON array
//	POST   /api/save        insert (no id) or replace (with id)
//	DELETE /api/delete/{id}
package eleve

import (
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/student-manager/internal/storage"
	"github.com/aanand-mishra/student-manager/internal/types"
	"github.com/aanand-mishra/student-manager/internal/utils/request"
	"github.com/aanand-mishra/student-manager/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// GetAll handles GET /api/all. No records is an empty array, not null.
func GetAll(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all eleves")

		eleves, err := storage.ListEleves()
		if err != nil {
			slog.Error("error getting eleves", slog.String("error", err.Error()))
			response.StorageError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, eleves)
	}
}

// Save handles POST /api/save. The stored record is echoed back: 201
// after an insert, 200 after a replace, 404 when the id is unknown.
func Save(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var e types.Eleve
		if err := request.DecodeJSON(r, &e); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		if !response.Validate(w, validate, e) {
			return
		}
		e.DateNaissance = types.DateOnly(e.DateNaissance)

		status := http.StatusOK
		if e.ID == 0 {
			status = http.StatusCreated
		}
		slog.Info("saving an eleve", slog.Int64("id", e.ID))

		saved, err := storage.SaveEleve(e)
		if err != nil {
			slog.Error("error saving eleve",
				slog.Int64("id", e.ID),
				slog.String("error", err.Error()))
			response.StorageError(w, err)
			return
		}

		slog.Info("eleve saved", slog.Int64("id", saved.ID))
		response.WriteJSON(w, status, saved)
	}
}

// Delete handles DELETE /api/delete/{id}.
func Delete(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := request.PathID(r)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		slog.Info("deleting an eleve", slog.Int64("id", id))

		if err := storage.DeleteEleve(id); err != nil {
			slog.Error("error deleting eleve",
				slog.Int64("id", id),
				slog.String("error", err.Error()))
			response.StorageError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
