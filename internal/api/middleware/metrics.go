package middleware

import (
	"net/http"
	"sync/atomic"
)

// Metrics counts requests and error responses.
type Metrics struct {
	requests atomic.Int64
	errors   atomic.Int64
}

func (m *Metrics) Requests() int64 { return m.requests.Load() }

// Errors counts 4xx and 5xx responses.
func (m *Metrics) Errors() int64 { return m.errors.Load() }

func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.requests.Add(1)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		if rw.statusCode >= 400 {
			m.errors.Add(1)
		}
	})
}
