package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"meetsched/internal/platform/metrics"
	"meetsched/internal/platform/middleware"
)

// NewRouter wires all public endpoints under /api plus the operational
// endpoints. Handlers stay thin; business logic lives in the services.
func NewRouter(logger *slog.Logger, m *metrics.Metrics, persons *PersonHandler, meetings *MeetingHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.ContentTypeJSON)
	r.Use(middleware.Latency(m))

	r.Route("/api", func(api chi.Router) {
		persons.Register(api)
		meetings.Register(api)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
