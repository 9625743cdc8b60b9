package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"tamilnews/internal/domain"
	"tamilnews/internal/usecase"
)

type snapshotProvider interface {
	Snapshot() usecase.Snapshot
}

type archiveGetter interface {
	GetArchive(ctx context.Context, limit int) ([]domain.Article, error)
}

// Handler содержит обработчики HTTP API и их зависимости.
type Handler struct {
	log     *slog.Logger
	news    snapshotProvider
	archive archiveGetter
}

// NewHandler создает обработчики API. archive может быть nil, тогда
// эндпоинт архива не регистрируется.
func NewHandler(log *slog.Logger, news snapshotProvider, archive archiveGetter) *Handler {
	return &Handler{
		log:     log.With(slog.String("component", "http")),
		news:    news,
		archive: archive,
	}
}

// getNews - хендлер для эндпоинта GET /api/news
func (h *Handler) getNews(w http.ResponseWriter, r *http.Request) {
	const op = "transport.http/getNews"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", getRequestID(r.Context())),
	)
	if r.Method != http.MethodGet {
		log.Warn("method not allowed", slog.String("method", r.Method))
		respondWithError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	limit, ok := parseLimit(r)
	if !ok {
		log.Warn("invalid limit parameter", slog.String("limit", r.URL.Query().Get("limit")))
		respondWithError(w, http.StatusBadRequest, "Invalid 'limit' parameter")
		return
	}

	snap := h.news.Snapshot()
	if snap.Articles == nil {
		snap.Articles = []domain.Article{}
	}
	if limit > 0 && len(snap.Articles) > limit {
		snap.Articles = snap.Articles[:limit]
	}
	respondWithJSON(w, http.StatusOK, snap)
}

// getArchive - хендлер для эндпоинта GET /api/news/archive
func (h *Handler) getArchive(w http.ResponseWriter, r *http.Request) {
	const op = "transport.http/getArchive"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", getRequestID(r.Context())),
	)
	if r.Method != http.MethodGet {
		log.Warn("method not allowed", slog.String("method", r.Method))
		respondWithError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	limit, ok := parseLimit(r)
	if !ok {
		log.Warn("invalid limit parameter", slog.String("limit", r.URL.Query().Get("limit")))
		respondWithError(w, http.StatusBadRequest, "Invalid 'limit' parameter")
		return
	}

	articles, err := h.archive.GetArchive(r.Context(), limit)
	if err != nil {
		log.Error("Failed to get archived articles", slog.Any("error", err))
		respondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if articles == nil {
		articles = []domain.Article{}
	}
	respondWithJSON(w, http.StatusOK, articles)
}

// healthCheck - хендлер для проверки состояния сервиса
func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// parseLimit возвращает 0, если параметр не задан.
func parseLimit(r *http.Request) (int, bool) {
	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		return 0, false
	}
	return limit, true
}

// Вспомогательные функции для ответов
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
