package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/nnamm/go-workout-tracker/internal/metrics"

	log "github.com/sirupsen/logrus"
)

func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(respWriter http.ResponseWriter, req *http.Request) {
			defer func() {
				if r := recover(); r != nil {
					log.Errorf("http: panic serving %s: %v\n%s", req.URL.Path, r, debug.Stack())
					if metricsManager != nil {
						metricsManager.CounterHandleRequestPanic.Inc()
					}
					respWriter.Header().Set("Content-Type", "application/json")
					respWriter.WriteHeader(http.StatusInternalServerError)
					_, _ = respWriter.Write([]byte(`{"error":"Internal Server Error"}`))
				}
			}()

			// handler call
			next.ServeHTTP(respWriter, req)
		})
	}
}
