package http

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewServer создает роутер API с middleware для request-id, логирования и CORS.
func NewServer(log *slog.Logger, h *Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/news", h.getNews)
	if h.archive != nil {
		mux.HandleFunc("/api/news/archive", h.getArchive)
	}
	mux.HandleFunc("/api/health", h.healthCheck)
	mux.Handle("/metrics", promhttp.Handler())

	var handler http.Handler = mux
	handler = loggingMiddleware(log)(handler)
	handler = requestIDMiddleware()(handler)
	handler = corsMiddleware()(handler)
	return handler
}
