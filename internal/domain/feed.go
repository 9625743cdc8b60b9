package domain

import "time"

// Link представляет одну ссылку элемента ленты.
type Link struct {
	URL string
}

// RawItem представляет элемент ленты в том виде, в котором его вернул парсер,
// до обогащения издателем и изображениями.
// PublishedAt заполняется, если парсер смог разобрать дату публикации;
// Published хранит исходную строку.
type RawItem struct {
	Title       string
	Links       []Link
	Published   string
	PublishedAt *time.Time
	Description string
	Content     string
	Publisher   string
}

// Feed представляет разобранную ленту с элементами в порядке документа.
type Feed struct {
	Title       string
	Link        string
	Description string
	Items       []RawItem
}

// Article представляет новость, готовую к отображению.
// После создания значение не изменяется.
type Article struct {
	Title          string `json:"title"`
	Link           string `json:"link"`
	PubDate        string `json:"pubDate"`
	Description    string `json:"description"`
	ImageURL       string `json:"imageUrl"`
	Publisher      string `json:"publisher"`
	PublisherImage string `json:"publisherImage"`
}

// FirstLink возвращает URL первой ссылки или пустую строку, если ссылок нет.
func (r RawItem) FirstLink() string {
	if len(r.Links) == 0 {
		return ""
	}
	return r.Links[0].URL
}
