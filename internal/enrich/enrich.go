package enrich

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"tamilnews/internal/domain"
)

const (
	// InvalidDate подставляется вместо даты публикации, которую не удалось разобрать.
	InvalidDate = "Invalid Date"
	dateLayout  = "Mon Jan 02 2006"
)

var publishedFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	time.RFC850,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 2 Jan 2006 15:04 -0700",
	"Mon, 2 Jan 2006 15:04 MST",
	"2 Jan 2006 15:04:05 -0700",
	"2 Jan 2006 15:04:05 MST",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Pipeline обогащает элементы ленты издателем, логотипом и изображением.
// Pipeline не хранит изменяемого состояния и безопасен для конкурентного использования.
type Pipeline struct {
	catalog     *Catalog
	placeholder string
	loc         *time.Location
	log         *slog.Logger
}

// Option настраивает Pipeline.
type Option func(*Pipeline)

// WithLocation задает часовой пояс, в котором форматируется дата публикации.
func WithLocation(loc *time.Location) Option {
	return func(p *Pipeline) {
		if loc != nil {
			p.loc = loc
		}
	}
}

// WithPlaceholderImage задает изображение по умолчанию.
func WithPlaceholderImage(url string) Option {
	return func(p *Pipeline) {
		if url != "" {
			p.placeholder = url
		}
	}
}

// WithLogger задает логгер для предупреждений о некорректных элементах.
func WithLogger(log *slog.Logger) Option {
	return func(p *Pipeline) {
		if log != nil {
			p.log = log
		}
	}
}

// New создает Pipeline поверх каталога издателей. Если catalog равен nil,
// используется встроенный каталог.
func New(catalog *Catalog, opts ...Option) *Pipeline {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	p := &Pipeline{
		catalog:     catalog,
		placeholder: DefaultPlaceholderImage,
		loc:         time.UTC,
		log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ExtractImage возвращает src первого изображения в содержимом
// или изображение-заглушку, если изображения нет.
func (p *Pipeline) ExtractImage(content string) string {
	if src, ok := firstImageSrc(content); ok {
		return src
	}
	return p.placeholder
}

// ExtractPublisher возвращает первый по приоритету каталога фрагмент имени издателя,
// который встречается в заголовке. Позиция в заголовке не учитывается.
func (p *Pipeline) ExtractPublisher(title string) string {
	for _, name := range p.catalog.names {
		if strings.Contains(title, name) {
			return name
		}
	}
	return UnknownPublisher
}

// ResolvePublisherImage возвращает логотип издателя, для неизвестных имен логотип "Unknown".
func (p *Pipeline) ResolvePublisherImage(publisher string) string {
	return p.catalog.Logo(publisher)
}

// KnownPublisher сообщает, входит ли издатель в каталог Pipeline.
func (p *Pipeline) KnownPublisher(publisher string) bool {
	return p.catalog.Known(publisher)
}

// FormatPubDate разбирает строку даты публикации и форматирует ее как календарную дату.
// Используется для элементов, дату которых не разобрал парсер ленты.
func (p *Pipeline) FormatPubDate(published string) string {
	s := strings.TrimSpace(published)
	if s == "" {
		return InvalidDate
	}
	for _, layout := range publishedFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return p.FormatTime(t)
		}
	}
	return InvalidDate
}

// FormatTime форматирует уже разобранную дату в часовом поясе Pipeline.
func (p *Pipeline) FormatTime(t time.Time) string {
	return t.In(p.loc).Format(dateLayout)
}

func (p *Pipeline) pubDate(raw domain.RawItem) string {
	if raw.PublishedAt != nil && !raw.PublishedAt.IsZero() {
		return p.FormatTime(*raw.PublishedAt)
	}
	return p.FormatPubDate(raw.Published)
}

// EnrichItem строит Article из одного элемента ленты.
func (p *Pipeline) EnrichItem(raw domain.RawItem) domain.Article {
	publisher := raw.Publisher
	if publisher == "" {
		publisher = p.ExtractPublisher(raw.Title)
	}
	link := raw.FirstLink()
	if link == "" {
		p.log.Warn("feed item has no links",
			slog.String("component", "enrich"),
			slog.String("item_title", raw.Title),
		)
	}
	return domain.Article{
		Title:          raw.Title,
		Link:           link,
		PubDate:        p.pubDate(raw),
		Description:    raw.Description,
		ImageURL:       p.ExtractImage(raw.Content),
		Publisher:      publisher,
		PublisherImage: p.ResolvePublisherImage(publisher),
	}
}

// Enrich обогащает элементы, сохраняя их количество и порядок.
func (p *Pipeline) Enrich(items []domain.RawItem) []domain.Article {
	articles := make([]domain.Article, 0, len(items))
	for _, item := range items {
		articles = append(articles, p.EnrichItem(item))
	}
	return articles
}
