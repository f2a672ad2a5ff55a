// Package transport builds the HTTP client the fetcher talks through: a
// plain *http.Client whose RoundTripper runs every request through a
// middleware chain before it reaches the wire.
package transport

import (
	"net"
	"net/http"
	"runtime"
	"time"
)

// Responder receives an HTTP request and returns its response.
type Responder func(*http.Request) (*http.Response, error)

// MiddlewareFunc wraps the next Responder in the chain.
type MiddlewareFunc func(next Responder) Responder

// Client is an http.RoundTripper that applies middleware around a base
// transport. HTTP is the *http.Client to hand to callers.
type Client struct {
	base       Responder
	middleware []MiddlewareFunc
	HTTP       *http.Client
}

// New creates a Client over rt. A nil rt selects a pooled transport with
// http.DefaultTransport's settings; timeout bounds each whole request.
func New(rt http.RoundTripper, timeout time.Duration) *Client {
	if rt == nil {
		rt = PooledTransport()
	}
	c := &Client{base: rt.RoundTrip}
	c.HTTP = &http.Client{
		Transport: c,
		Timeout:   timeout,
	}
	return c
}

// Use appends middleware. The first one added runs outermost.
func (c *Client) Use(middleware ...MiddlewareFunc) {
	c.middleware = append(c.middleware, middleware...)
}

// RoundTrip implements http.RoundTripper.
func (c *Client) RoundTrip(req *http.Request) (*http.Response, error) {
	h := c.base
	for i := len(c.middleware) - 1; i >= 0; i-- {
		h = c.middleware[i](h)
	}
	return h(req)
}

// PooledTransport returns a new http.Transport with values similar to
// http.DefaultTransport. It is meant to be reused for the same host.
func PooledTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
		MaxIdleConnsPerHost:   runtime.GOMAXPROCS(0) + 1,
	}
}
