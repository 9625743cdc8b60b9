package enrich

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"tamilnews/internal/adapter/parser"
	"tamilnews/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeline_ExtractImage(t *testing.T) {
	p := New(nil)
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"simple tag", `<img src="http://img/1.jpg">`, "http://img/1.jpg"},
		{"attributes before src", `<p>text</p><img alt="x" class="thumb" src="https://cdn.example.com/a.png" width="10">`, "https://cdn.example.com/a.png"},
		{"first of many", `<img src="http://a/1.jpg"><img src="http://a/2.jpg">`, "http://a/1.jpg"},
		{"single quotes", `<img src='http://a/q.jpg'>`, "http://a/q.jpg"},
		{"skips empty src", `<img src=""><img src="http://a/3.jpg">`, "http://a/3.jpg"},
		{"empty content", "", DefaultPlaceholderImage},
		{"whitespace content", "   \n", DefaultPlaceholderImage},
		{"no image", `<a href="http://x">link</a><p>no image</p>`, DefaultPlaceholderImage},
		{"img without src", `<img alt="none">`, DefaultPlaceholderImage},
		{"not validated", `<img src="not a url">`, "not a url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.ExtractImage(tt.content))
		})
	}
}

func TestPipeline_ExtractImage_CustomPlaceholder(t *testing.T) {
	p := New(nil, WithPlaceholderImage("http://placeholder/x.png"))
	assert.Equal(t, "http://placeholder/x.png", p.ExtractImage(""))
}

func TestPipeline_ExtractPublisher(t *testing.T) {
	p := New(nil)
	tests := []struct {
		title string
		want  string
	}{
		{"நக்கீரன் விசேட தகவல்", "நக்கீரன்"},
		{"முதல்வர் அறிவிப்பு - தினமணி", "தினமணி"},
		{"மழை எச்சரிக்கை - Vikatan", "Vikatan"},
		{"Budget 2024 - Hindustan Times Tamil", "Hindustan"},
		{"தேர்தல் செய்தி - The Hindu Tamil", "Hindu"},
		{"Cricket score - News18 தமிழ்", "News18"},
		{"சாதாரண தலைப்பு", UnknownPublisher},
		{"", UnknownPublisher},
		{"lowercase bbc does not match", UnknownPublisher},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, p.ExtractPublisher(tt.title))
		})
	}
}

func TestPipeline_ExtractPublisher_PriorityOverPosition(t *testing.T) {
	p := New(nil)
	// "Dinamalar" appears first in the title but "BBC" precedes it in the catalog.
	assert.Equal(t, "BBC", p.ExtractPublisher("Dinamalar quotes BBC report"))
	// "Indian" precedes "Hindu" in position but not in priority.
	assert.Equal(t, "Hindu", p.ExtractPublisher("Indian Express and The Hindu"))
}

func TestPipeline_ExtractPublisher_InjectedCatalog(t *testing.T) {
	catalog, err := NewCatalog([]Publisher{
		{Name: "Beta", Logo: "http://logo/beta"},
		{Name: "Alpha", Logo: "http://logo/alpha"},
	}, "http://logo/unknown")
	require.NoError(t, err)
	p := New(catalog)

	assert.Equal(t, "Beta", p.ExtractPublisher("Alpha and Beta"))
	assert.Equal(t, UnknownPublisher, p.ExtractPublisher("நக்கீரன்"))
	assert.Equal(t, "http://logo/alpha", p.ResolvePublisherImage("Alpha"))
	assert.Equal(t, "http://logo/unknown", p.ResolvePublisherImage(UnknownPublisher))
}

func TestPipeline_ResolvePublisherImage_Total(t *testing.T) {
	p := New(nil)
	for _, pub := range DefaultPublishers() {
		assert.Equal(t, pub.Logo, p.ResolvePublisherImage(pub.Name), pub.Name)
	}
	assert.Equal(t, DefaultUnknownLogo(), p.ResolvePublisherImage(UnknownPublisher))
	for _, name := range []string{"", "Reuters", "hindu", "நக்கீ"} {
		got := p.ResolvePublisherImage(name)
		assert.NotEmpty(t, got)
		assert.Equal(t, DefaultUnknownLogo(), got, name)
	}
}

func TestPipeline_FormatPubDate(t *testing.T) {
	p := New(nil)
	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-01T00:00:00Z", "Mon Jan 01 2024"},
		{"Mon, 01 Jan 2024 08:00:00 GMT", "Mon Jan 01 2024"},
		{"Tue, 05 Mar 2024 23:30:00 +0000", "Tue Mar 05 2024"},
		{"2024-02-29", "Thu Feb 29 2024"},
		{"01 Jan 2024 08:00:00 GMT", "Mon Jan 01 2024"},
		{"Mon, 1 Jan 2024 08:00 GMT", "Mon Jan 01 2024"},
		{"Monday, 01-Jan-24 08:00:00 GMT", "Mon Jan 01 2024"},
		{"2024-01-01T00:00:00+0530", "Sun Dec 31 2023"},
		{"", InvalidDate},
		{"yesterday", InvalidDate},
		{"2024-13-45T00:00:00Z", InvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, p.FormatPubDate(tt.in))
		})
	}
}

func TestPipeline_FormatPubDate_Location(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	p := New(nil, WithLocation(ist))
	assert.Equal(t, "Mon Jan 01 2024", p.FormatPubDate("2023-12-31T20:00:00Z"))
}

func TestPipeline_EnrichItem_PrefersParsedTime(t *testing.T) {
	p := New(nil, WithLocation(time.FixedZone("IST", 5*3600+1800)))
	at := time.Date(2023, 12, 31, 20, 0, 0, 0, time.UTC)

	got := p.EnrichItem(domain.RawItem{Title: "t", Published: "unparseable text", PublishedAt: &at})

	assert.Equal(t, "Mon Jan 01 2024", got.PubDate)
}

func TestPipeline_EnrichItem_KnownPublisher(t *testing.T) {
	p := New(nil)
	raw := domain.RawItem{
		Title:       "நக்கீரன் விசேட தகவல்",
		Links:       []domain.Link{{URL: "http://x/1"}},
		Published:   "2024-01-01T00:00:00Z",
		Description: "<b>desc</b>",
		Content:     `<img src="http://img/1.jpg">`,
	}

	got := p.EnrichItem(raw)

	assert.Equal(t, domain.Article{
		Title:          "நக்கீரன் விசேட தகவல்",
		Link:           "http://x/1",
		PubDate:        "Mon Jan 01 2024",
		Description:    "<b>desc</b>",
		ImageURL:       "http://img/1.jpg",
		Publisher:      "நக்கீரன்",
		PublisherImage: "https://github.com/user-attachments/assets/40a13f23-d2e1-4f83-a042-4472da15aa2e",
	}, got)
}

func TestPipeline_EnrichItem_Fallbacks(t *testing.T) {
	p := New(nil)
	raw := domain.RawItem{
		Title:     "சாதாரண செய்தி",
		Links:     []domain.Link{{URL: "http://x/2"}},
		Published: "not a date",
		Content:   "",
	}

	got := p.EnrichItem(raw)

	assert.Equal(t, DefaultPlaceholderImage, got.ImageURL)
	assert.Equal(t, UnknownPublisher, got.Publisher)
	assert.Equal(t, DefaultUnknownLogo(), got.PublisherImage)
	assert.Equal(t, InvalidDate, got.PubDate)
}

func TestPipeline_EnrichItem_ExplicitPublisher(t *testing.T) {
	p := New(nil)
	got := p.EnrichItem(domain.RawItem{Title: "BBC report", Publisher: "Vikatan"})
	assert.Equal(t, "Vikatan", got.Publisher)
	assert.Equal(t, p.ResolvePublisherImage("Vikatan"), got.PublisherImage)

	got = p.EnrichItem(domain.RawItem{Title: "BBC report", Publisher: "Some Outlet"})
	assert.Equal(t, "Some Outlet", got.Publisher)
	assert.Equal(t, DefaultUnknownLogo(), got.PublisherImage)
}

func TestPipeline_EnrichItem_NoLinks(t *testing.T) {
	p := New(nil)
	got := p.EnrichItem(domain.RawItem{Title: "no links"})
	assert.Empty(t, got.Link)
	assert.NotEmpty(t, got.ImageURL)
	assert.NotEmpty(t, got.PublisherImage)
}

func TestPipeline_Enrich_PreservesLengthAndOrder(t *testing.T) {
	p := New(nil)
	items := make([]domain.RawItem, 0, 25)
	for i := 0; i < 25; i++ {
		items = append(items, domain.RawItem{
			Title: fmt.Sprintf("item %d", i),
			Links: []domain.Link{{URL: fmt.Sprintf("http://x/%d", i)}},
		})
	}

	articles := p.Enrich(items)

	require.Len(t, articles, len(items))
	for i, a := range articles {
		assert.Equal(t, items[i].Title, a.Title)
		assert.Equal(t, items[i].Links[0].URL, a.Link)
	}
	assert.Empty(t, p.Enrich(nil))
}

func TestPipeline_PubDateFromParsedFeed(t *testing.T) {
	feedParser := parser.NewFeedParser(slog.New(slog.NewTextHandler(io.Discard, nil)))
	p := New(nil)
	tests := []struct {
		pubDate string
		want    string
	}{
		{"Mon, 01 Jan 2024 08:00:00 GMT", "Mon Jan 01 2024"},
		{"01 Jan 2024 08:00:00 GMT", "Mon Jan 01 2024"},
		{"Mon, 1 Jan 2024 08:00 GMT", "Mon Jan 01 2024"},
		{"Monday, 01-Jan-24 08:00:00 GMT", "Mon Jan 01 2024"},
		{"2024-01-01T00:00:00+0530", "Sun Dec 31 2023"},
		{"not a date", InvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.pubDate, func(t *testing.T) {
			rss := fmt.Sprintf(`<rss version="2.0"><channel><title>T</title>
<item><title>t</title><link>http://x/1</link><pubDate>%s</pubDate></item>
</channel></rss>`, tt.pubDate)

			feed, err := feedParser.Parse(context.Background(), strings.NewReader(rss))
			require.NoError(t, err)
			require.Len(t, feed.Items, 1)

			assert.Equal(t, tt.want, p.Enrich(feed.Items)[0].PubDate)
		})
	}
}

func TestPipeline_KnownPublisher(t *testing.T) {
	p := New(nil)

	assert.True(t, p.KnownPublisher("நக்கீரன்"))
	assert.True(t, p.KnownPublisher(UnknownPublisher))
	assert.False(t, p.KnownPublisher("Outlet From Feed"))
}
