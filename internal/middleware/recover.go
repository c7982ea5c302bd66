package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"granrah.cl/granrah-web/internal/observability"
)

// Recover turns a handler panic into a 500 and logs it with the request logger.
// http.ErrAbortHandler is re-panicked so net/http can abort the connection.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			observability.FromContext(r.Context()).Error("handler panic",
				zap.Any("panic", rec),
				zap.String("path", r.URL.Path),
				zap.Stack("stack"),
			)
			writeError(w, r, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		}()
		next.ServeHTTP(w, r)
	})
}
