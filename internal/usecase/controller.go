package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"tamilnews/internal/domain"
	"tamilnews/internal/metrics"
)

// State описывает жизненный цикл списка новостей.
type State string

const (
	StateInit      State = "init"
	StateLoading   State = "loading"
	StatePopulated State = "populated"
	StateFailed    State = "failed"
)

// ErrFetchOrParse объединяет сетевые ошибки, ответы вне 2xx и ошибки разбора ленты.
var ErrFetchOrParse = errors.New("fetch or parse failure")

// Snapshot неизменяемая копия состояния контроллера для отображения.
type Snapshot struct {
	State     State            `json:"state"`
	Loading   bool             `json:"loading"`
	UpdatedAt time.Time        `json:"updatedAt"`
	Articles  []domain.Article `json:"articles"`
	Error     string           `json:"-"`
}

// NewsController владеет списком новостей и признаком загрузки.
// Обновления выполняются по одному: параллельный Refresh ждет завершения текущего.
type NewsController struct {
	fetcher  FeedFetcher
	parser   FeedParser
	enricher Enricher
	archive  ArticleArchive
	feedURL  string
	log      *slog.Logger

	refreshMu sync.Mutex

	mu        sync.RWMutex
	state     State
	articles  []domain.Article
	updatedAt time.Time
	lastErr   error
}

// ControllerOption настраивает NewsController.
type ControllerOption func(*NewsController)

// WithArchive подключает архив статей. Ошибки архива не влияют на состояние контроллера.
func WithArchive(a ArticleArchive) ControllerOption {
	return func(c *NewsController) { c.archive = a }
}

// NewNewsController создает контроллер в состоянии StateInit.
func NewNewsController(
	fetcher FeedFetcher,
	parser FeedParser,
	enricher Enricher,
	feedURL string,
	log *slog.Logger,
	opts ...ControllerOption,
) *NewsController {
	c := &NewsController{
		fetcher:  fetcher,
		parser:   parser,
		enricher: enricher,
		feedURL:  feedURL,
		log:      log.With(slog.String("component", "controller")),
		state:    StateInit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Refresh загружает, разбирает и обогащает ленту и полностью заменяет список новостей.
// При ошибке список очищается, состояние становится StateFailed, а ошибка,
// обернутая в ErrFetchOrParse, возвращается вызывающему только для информации.
func (c *NewsController) Refresh(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	start := time.Now()
	c.setState(StateLoading)
	log := c.log.With(slog.String("op", "refresh"), slog.String("url", c.feedURL))
	log.Info("Refresh started")

	articles, err := c.load(ctx, log)
	duration := time.Since(start)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrFetchOrParse, err)
		c.mu.Lock()
		c.state = StateFailed
		c.articles = nil
		c.lastErr = err
		c.mu.Unlock()
		metrics.RecordRefresh(metrics.OutcomeFailure, duration.Seconds(), 0)
		log.Error("Error fetching news", slog.Any("error", err))
		return err
	}

	c.mu.Lock()
	c.state = StatePopulated
	c.articles = articles
	c.updatedAt = time.Now()
	c.lastErr = nil
	c.mu.Unlock()

	metrics.RecordRefresh(metrics.OutcomeSuccess, duration.Seconds(), len(articles))
	for _, a := range articles {
		metrics.RecordPublisher(a.Publisher, c.enricher.KnownPublisher(a.Publisher))
	}
	log.Info("Refresh completed",
		slog.Int("count", len(articles)),
		slog.Duration("duration", duration),
	)

	if c.archive != nil {
		saved, err := c.archive.SaveArticles(ctx, articles)
		if err != nil {
			log.Error("Archive save failed", slog.String("stage", "archive"), slog.Any("error", err))
		} else {
			log.Debug("Articles archived", slog.Int("saved", saved))
		}
	}
	return nil
}

func (c *NewsController) load(ctx context.Context, log *slog.Logger) ([]domain.Article, error) {
	reader, err := c.fetcher.Fetch(ctx, c.feedURL)
	if err != nil {
		log.Error("Feed fetch failed", slog.String("stage", "fetch"), slog.Any("error", err))
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	defer reader.Close()

	feed, err := c.parser.Parse(ctx, reader)
	if err != nil {
		log.Error("Feed parsing failed", slog.String("stage", "parse"), slog.Any("error", err))
		return nil, fmt.Errorf("parse failed: %w", err)
	}
	log.Debug("Feed parsed", slog.String("stage", "parse"), slog.Int("items_parsed", len(feed.Items)))

	return c.enricher.Enrich(feed.Items), nil
}

func (c *NewsController) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Snapshot возвращает копию текущего состояния.
func (c *NewsController) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	articles := make([]domain.Article, len(c.articles))
	copy(articles, c.articles)
	s := Snapshot{
		State:     c.state,
		Loading:   c.state == StateLoading,
		UpdatedAt: c.updatedAt,
		Articles:  articles,
	}
	if c.lastErr != nil {
		s.Error = c.lastErr.Error()
	}
	return s
}

// State возвращает текущее состояние.
func (c *NewsController) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Articles возвращает копию списка новостей.
func (c *NewsController) Articles() []domain.Article {
	return c.Snapshot().Articles
}
