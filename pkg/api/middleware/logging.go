package middleware

import (
	"net/http"
	"time"

	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/logging"
)

// Logging logs one structured line per request, tagged with the request ID
// when RequestID runs earlier in the chain.
func Logging(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)

			fields := []logging.Field{
				logging.String("method", r.Method),
				logging.Path(r.URL.Path),
				logging.Status(sw.statusCode),
				logging.Latency(time.Since(start)),
			}
			if id := GetRequestID(r); id != "" {
				fields = append(fields, logging.RequestID(id))
			}

			switch {
			case sw.statusCode >= 500:
				logger.Error("request", fields...)
			case sw.statusCode >= 400:
				logger.Warn("request", fields...)
			default:
				logger.Debug("request", fields...)
			}
		})
	}
}
