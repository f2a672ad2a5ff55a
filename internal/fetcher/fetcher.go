// Package fetcher talks to the students backend. There is one API
// implementation per endpoint family: FlatAPI for /api/all, /api/save and
// /api/delete/{id}; ResourceAPI for the paged /api/students resource.
//
// Every request sends and accepts JSON. No authentication header is
// attached. Failures come back as *RequestError.
package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aanand-mishra/student-manager/internal/types"
)

// DefaultBaseURL is used when no override is configured.
const DefaultBaseURL = "http://localhost:8080"

const (
	jsonContentType = "application/json"
	maxErrorBody    = 512
)

// API is the set of calls the list view makes against a backend.
type API[T types.Record] interface {
	// List returns one page. Backends without paging ignore page and size
	// and return everything they have.
	List(ctx context.Context, page, size int) (types.Page[T], error)
	Create(ctx context.Context, record T) error
	// Update replaces the whole record identified by record.Key().
	Update(ctx context.Context, record T) error
	Delete(ctx context.Context, id int64) error
}

// ResolveBaseURL returns override with trailing slashes removed, or
// DefaultBaseURL when override is empty.
func ResolveBaseURL(override string) string {
	base := strings.TrimSpace(override)
	if base == "" {
		base = DefaultBaseURL
	}
	return strings.TrimRight(base, "/")
}

type client struct {
	baseURL string
	http    *http.Client
}

func newClient(baseURL string, hc *http.Client) client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return client{baseURL: ResolveBaseURL(baseURL), http: hc}
}

// do sends one request and returns the body of a 2xx response.
func (c client) do(ctx context.Context, op Op, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%s: encode body: %w", op, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", jsonContentType)
	if payload != nil {
		req.Header.Set("Content-Type", jsonContentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RequestError{Op: op, Kind: ErrNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &RequestError{
			Op:         op,
			Kind:       ErrHTTPStatus,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Op: op, Kind: ErrNetwork, Err: err}
	}
	return data, nil
}

func decodeError(op Op, err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &RequestError{Op: op, Kind: ErrDecode, Err: err}
	}
	return fmt.Errorf("%s: decode: %w", op, err)
}
