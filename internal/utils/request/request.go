// Package request holds the decoding steps every handler starts with.
package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

var (
	ErrEmptyBody = errors.New("request body is empty")
	ErrInvalidID = errors.New("invalid id: must be an integer")
)

// DecodeJSON reads the JSON body of r into v. An empty body yields
// ErrEmptyBody.
func DecodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return ErrEmptyBody
	}
	if err != nil {
		return fmt.Errorf("malformed body: %w", err)
	}
	return nil
}

// PathID parses the {id} path segment.
func PathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, ErrInvalidID
	}
	return id, nil
}

// IntQuery returns the query parameter name as an int, def when it is
// absent, and an error when it is not a number or below lowest.
func IntQuery(r *http.Request, name string, def, lowest int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < lowest {
		return 0, fmt.Errorf("invalid %s: must be an integer >= %d", name, lowest)
	}
	return n, nil
}
