package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/logging"
)

// PanicRecovery turns a handler panic into a 500. Details are logged, never
// sent to the client.
func PanicRecovery(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					logger.Error("panic in handler",
						logging.String("method", r.Method),
						logging.Path(r.URL.Path),
						logging.RequestID(GetRequestID(r)),
						logging.String("panic", fmt.Sprint(err)),
						logging.String("stack", string(debug.Stack())))

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte(`{"error":"Internal Server Error","message":"internal server error","code":500}` + "\n"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
