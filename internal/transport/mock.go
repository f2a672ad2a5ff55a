package transport

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
)

// ErrNoResponderFound is returned by MockTransport when no responder is
// registered for the request's method and URL.
var ErrNoResponderFound = errors.New("no responder found")

// MockTransport is an http.RoundTripper that never touches the network.
// Requests are answered by responders registered per method and URL; an
// unknown request fails the way an unreachable host would.
type MockTransport struct {
	mu         sync.Mutex
	responders map[string]Responder
	calls      map[string]int
}

// NewMockTransport creates an empty MockTransport.
func NewMockTransport() *MockTransport {
	return &MockTransport{
		responders: map[string]Responder{},
		calls:      map[string]int{},
	}
}

// RoundTripKey is the lookup key for a method and URL.
func RoundTripKey(method, url string) string {
	return fmt.Sprintf("%s %s", method, url)
}

// RoundTrip implements http.RoundTripper.
func (m *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	key := RoundTripKey(req.Method, req.URL.String())

	m.mu.Lock()
	r, ok := m.responders[key]
	m.calls[key]++
	m.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoResponderFound, key)
	}
	return r(req)
}

// RegisterResponder answers every request matching method and url with r.
func (m *MockTransport) RegisterResponder(method, url string, r Responder) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responders[RoundTripKey(method, url)] = r
}

// Calls reports how many requests were made for method and url, whether
// or not a responder was registered.
func (m *MockTransport) Calls(method, url string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[RoundTripKey(method, url)]
}

// TotalCalls reports the number of requests seen.
func (m *MockTransport) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		n += c
	}
	return n
}

// StringResponder always answers with status and body.
func StringResponder(status int, body string) Responder {
	return func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(bytes.NewBufferString(body)),
			// Must be set to non-nil value or it panics
			Header:  make(http.Header),
			Request: req,
		}, nil
	}
}
