package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/alegom05/CLOUD-ALEJANDRO/pkg/metrics"
)

// Metrics records request count, latency, size and in-flight gauge in reg.
// Requests are labelled by route pattern, not raw path.
func Metrics(reg *metrics.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if reg == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reg.HTTPRequestsInFlight.Inc()
			defer reg.HTTPRequestsInFlight.Dec()

			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)

			route := routeLabel(r)
			reg.RecordHTTPRequest(r.Method, route, strconv.Itoa(sw.statusCode), time.Since(start))
			reg.HTTPResponseSizeBytes.WithLabelValues(r.Method, route).Observe(float64(sw.bytesWritten))
		})
	}
}
