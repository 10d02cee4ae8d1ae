package router

import (
	"net/http"
	"time"

	"github.com/shindelr/Session-Logger-API/cmd/api/controllers/session"
	"github.com/shindelr/Session-Logger-API/pkg/application"
	traits "github.com/shindelr/Session-Logger-API/pkg/traits/controller-traits"

	"github.com/julienschmidt/httprouter"
	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func Api(app *application.Application) http.Handler {
	mux := httprouter.New()

	// Session ingestion
	mux.POST("/api/v1/sessions", session.Create(app))
	mux.POST("/api/v1/sessions/submit", session.Submit(app))

	// Operational endpoints
	mux.GET("/healthz", healthz())
	mux.Handler(http.MethodGet, "/metrics", promhttp.Handler())

	return withRequestID(mux)
}

func healthz() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		traits.WriteResponse(w, map[string]string{"status": "healthy"})
	}
}

// withRequestID tags every request with a ULID for log correlation.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := ulid.Make().String()
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		next.ServeHTTP(w, r)

		zap.S().Debugf("[%s] %s %s (%s)", requestID, r.Method, r.URL.Path, time.Since(start))
	})
}
