package usecase

import (
	"context"
	"io"

	"tamilnews/internal/domain"
)

// FeedFetcher определяет интерфейс для загрузки ленты из внешнего источника.
// Возвращает io.ReadCloser, который должен быть закрыт после использования.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

// FeedParser определяет интерфейс для разбора ленты в доменную модель.
type FeedParser interface {
	Parse(ctx context.Context, reader io.Reader) (*domain.Feed, error)
}

// Enricher превращает элементы ленты в статьи, сохраняя количество и порядок.
// KnownPublisher отделяет издателей каталога от названий, пришедших из ленты.
type Enricher interface {
	Enrich(items []domain.RawItem) []domain.Article
	KnownPublisher(publisher string) bool
}

// ArticleArchive сохраняет успешно загруженные статьи.
// Возвращает количество сохраненных статей.
type ArticleArchive interface {
	SaveArticles(ctx context.Context, articles []domain.Article) (int, error)
}
