package parser

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"tamilnews/internal/domain"

	"github.com/mmcdole/gofeed"
)

// FeedParser разбирает RSS, Atom и JSON Feed с помощью gofeed
// и приводит элементы к domain.RawItem.
type FeedParser struct {
	parser *gofeed.Parser
	log    *slog.Logger
}

// NewFeedParser создает парсер с настройками gofeed по умолчанию.
func NewFeedParser(log *slog.Logger) *FeedParser {
	return &FeedParser{
		parser: gofeed.NewParser(),
		log:    log.With(slog.String("component", "parser")),
	}
}

// Parse реализует метод интерфейса FeedParser.
func (p *FeedParser) Parse(ctx context.Context, reader io.Reader) (*domain.Feed, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	parsed, err := p.parser.Parse(reader)
	if err != nil {
		p.log.Error("Error decoding feed", slog.Any("error", err))
		return nil, fmt.Errorf("failed to decode feed: %w", err)
	}
	feed := domain.Feed{
		Title:       parsed.Title,
		Link:        parsed.Link,
		Description: parsed.Description,
		Items:       make([]domain.RawItem, 0, len(parsed.Items)),
	}
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		feed.Items = append(feed.Items, toRawItem(item))
	}
	p.log.Debug("Feed decoded",
		slog.String("feed_type", parsed.FeedType),
		slog.Int("items_parsed", len(feed.Items)),
	)
	return &feed, nil
}

func toRawItem(item *gofeed.Item) domain.RawItem {
	published := item.Published
	if strings.TrimSpace(published) == "" {
		published = item.Updated
	}
	publishedAt := item.PublishedParsed
	if publishedAt == nil {
		publishedAt = item.UpdatedParsed
	}
	return domain.RawItem{
		Title:       item.Title,
		Links:       itemLinks(item),
		Published:   published,
		PublishedAt: publishedAt,
		Description: item.Description,
		Content:     item.Content,
		Publisher:   itemPublisher(item),
	}
}

// itemPublisher возвращает издателя из dc:publisher, если лента его указывает.
func itemPublisher(item *gofeed.Item) string {
	if item.DublinCoreExt == nil {
		return ""
	}
	for _, p := range item.DublinCoreExt.Publisher {
		if p = strings.TrimSpace(p); p != "" {
			return p
		}
	}
	return ""
}

// itemLinks собирает ссылки элемента без пустых значений.
// Если список ссылок пуст, используется item.Link.
func itemLinks(item *gofeed.Item) []domain.Link {
	links := make([]domain.Link, 0, len(item.Links)+1)
	for _, l := range item.Links {
		if l = strings.TrimSpace(l); l != "" {
			links = append(links, domain.Link{URL: l})
		}
	}
	if len(links) == 0 {
		if l := strings.TrimSpace(item.Link); l != "" {
			links = append(links, domain.Link{URL: l})
		}
	}
	return links
}
