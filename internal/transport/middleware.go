package transport

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries a per-request correlation id. The development
// backend logs it back.
const RequestIDHeader = "X-Request-Id"

// UserAgent sets the User-Agent header to "app/version".
func UserAgent(app, version string) MiddlewareFunc {
	userAgent := fmt.Sprintf("%s/%s", app, version)
	return func(next Responder) Responder {
		return func(req *http.Request) (*http.Response, error) {
			req.Header.Set("User-Agent", userAgent)
			return next(req)
		}
	}
}

// RequestID stamps every request with a fresh UUID unless the caller set
// one already.
func RequestID() MiddlewareFunc {
	return func(next Responder) Responder {
		return func(req *http.Request) (*http.Response, error) {
			if req.Header.Get(RequestIDHeader) == "" {
				req.Header.Set(RequestIDHeader, uuid.NewString())
			}
			return next(req)
		}
	}
}

// Logging writes one debug record per request and a warning when the
// call does not complete.
func Logging(log *slog.Logger) MiddlewareFunc {
	return func(next Responder) Responder {
		return func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next(req)

			attrs := []any{
				slog.String("method", req.Method),
				slog.String("url", req.URL.String()),
				slog.String("request_id", req.Header.Get(RequestIDHeader)),
				slog.Duration("elapsed", time.Since(start)),
			}
			if err != nil {
				log.Warn("request failed", append(attrs, slog.String("error", err.Error()))...)
				return nil, err
			}
			log.Debug("request done", append(attrs, slog.Int("status", resp.StatusCode))...)
			return resp, nil
		}
	}
}
