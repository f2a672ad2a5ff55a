// Package response writes the backend's JSON responses. Success bodies
// are whatever the handler returns; errors always use the Response
// envelope:
//
//	{ "status": "error", "error": "field Name is required" }
package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aanand-mishra/student-manager/internal/storage"
	"github.com/go-playground/validator/v10"
)

// Response is the error envelope.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// StatusError is the status of every error envelope.
const StatusError = "error"

// WriteJSON sets the content type, writes status and encodes data.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps err into the error envelope.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ValidationError turns validator field errors into one readable
// sentence, e.g. "field Name is required, field Phone is required".
func ValidationError(errs validator.ValidationErrors) Response {
	var errMessages []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(errMessages, ", "),
	}
}

// StorageError writes a storage failure: 404 for a missing record, 500
// for anything else.
func StorageError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, storage.ErrNotFound) {
		status = http.StatusNotFound
	}
	WriteJSON(w, status, GeneralError(err))
}

// Validate runs the validate tags of v and, on failure, writes a 400 and
// returns false.
func Validate(w http.ResponseWriter, validate *validator.Validate, v any) bool {
	err := validate.Struct(v)
	if err == nil {
		return true
	}
	var validateErrs validator.ValidationErrors
	if errors.As(err, &validateErrs) {
		WriteJSON(w, http.StatusBadRequest, ValidationError(validateErrs))
	} else {
		WriteJSON(w, http.StatusBadRequest, GeneralError(err))
	}
	return false
}
