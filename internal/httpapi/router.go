package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router wraps http.ServeMux with request logging.
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Router{mux: http.NewServeMux(), logger: logger}
	r.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	RequestLogger(r.logger, r.mux).ServeHTTP(w, req)
}

// RegisterLogbookRoutes mounts the logbook API.
func (r *Router) RegisterLogbookRoutes(h *LogbookHandler) {
	r.Handle("GET /api/logbook/pdf", h.GetPDF)
	r.Handle("GET /api/logbook/stats/work-hours", h.GetWorkHourStats)
	r.Handle("GET /api/logbook/stats/distance", h.GetDistanceStats)
	r.Handle("DELETE /api/logbook/entries/{id}", h.DeleteEntry)
}
