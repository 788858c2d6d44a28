package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"paymaster/internal/transport/http/api"
)

// Recoverer converts an unexpected panic anywhere below into a whole-request
// failure. No partial payroll output is ever written on such a failure.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic: %v\n%s", rec, debug.Stack())
				api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", GetRequestID(r.Context()))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
