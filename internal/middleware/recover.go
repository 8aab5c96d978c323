package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/fyzahq/fyza/internal/ctxkeys"
)

// Recover turns a handler panic into a 500 response. When the handler had
// already started its response, the panic is only logged.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			ctxkeys.Logger(r.Context()).Error("handler panic",
				"panic", rec,
				"method", r.Method,
				"path", r.URL.Path,
				"response_started", rw.written,
				"stack", string(debug.Stack()),
			)
			if rw.written {
				return
			}
			writeDetail(rw, http.StatusInternalServerError, "Internal server error")
		}()

		next.ServeHTTP(rw, r)
	})
}
