package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	httputil "busline/pkg/http"
)

// deadlineWriter lets exactly one side produce the response: the handler,
// or the timeout branch. Writes from a handler that lost the race return
// http.ErrHandlerTimeout and never reach the client.
type deadlineWriter struct {
	http.ResponseWriter
	mu      sync.Mutex
	expired bool
	started bool
}

func (w *deadlineWriter) WriteHeader(code int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.expired || w.started {
		return
	}
	w.started = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *deadlineWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.expired {
		return 0, http.ErrHandlerTimeout
	}
	w.started = true
	return w.ResponseWriter.Write(b)
}

// expire claims the response for the timeout branch. It reports false when
// the handler already started writing, in which case the partial response
// stands and no timeout body may be appended.
func (w *deadlineWriter) expire() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return false
	}
	w.expired = true
	return true
}

// RequestTimeout bounds each request: the wrapped handler runs with a
// deadline context, and once it passes the client gets a 503.
func RequestTimeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			dw := &deadlineWriter{ResponseWriter: w}

			done := make(chan struct{})
			go func() {
				next.ServeHTTP(dw, r.WithContext(ctx))
				close(done)
			}()

			select {
			case <-done:
			case <-ctx.Done():
				if dw.expire() {
					_ = httputil.WriteJSON(w, http.StatusServiceUnavailable, httputil.ErrorResponse{
						Error: "Request timeout",
					})
				}
			}
		})
	}
}
