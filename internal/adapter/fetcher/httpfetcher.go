package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const defaultUserAgent = "tamilnews/1.0"

// HTTPFetcher загружает RSS-ленту одним GET-запросом.
// Любой ответ вне диапазона 2xx считается ошибкой.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	log       *slog.Logger
}

// Option настраивает HTTPFetcher.
type Option func(*HTTPFetcher)

// WithTimeout задает общий таймаут HTTP-клиента.
func WithTimeout(d time.Duration) Option {
	return func(f *HTTPFetcher) {
		if d > 0 {
			f.client = &http.Client{Timeout: d, Transport: f.client.Transport}
		}
	}
}

// WithUserAgent задает заголовок User-Agent.
func WithUserAgent(ua string) Option {
	return func(f *HTTPFetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithHTTPClient подменяет HTTP-клиент, например в тестах.
func WithHTTPClient(c *http.Client) Option {
	return func(f *HTTPFetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// NewHTTPFetcher создает новый экземпляр HTTPFetcher.
func NewHTTPFetcher(log *slog.Logger, opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		client:    &http.Client{Timeout: 30 * time.Second},
		userAgent: defaultUserAgent,
		log:       log.With(slog.String("component", "fetcher")),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch выполняет HTTP-запрос и возвращает тело ответа как io.ReadCloser,
// которое должно быть закрыто после использования.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	log := f.log.With(slog.String("url", url))
	log.Info("Fetching URL")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Error("Failed to create HTTP request", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create request for url %s: %w", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.8")
	resp, err := f.client.Do(req)
	if err != nil {
		log.Error("HTTP request failed", slog.Any("error", err))
		return nil, fmt.Errorf("failed to fetch url %s: %w", url, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		log.Error("Unexpected status code", slog.Int("status_code", resp.StatusCode))
		return nil, fmt.Errorf("unexpected status code: %d for url %s", resp.StatusCode, url)
	}
	log.Debug("Successfully fetched URL", slog.Int("status_code", resp.StatusCode))
	return resp.Body, nil
}
