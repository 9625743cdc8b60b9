package enrich

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultPlaceholderImage подставляется, когда в содержимом нет изображения.
const DefaultPlaceholderImage = "https://via.placeholder.com/150"

// firstImageSrc разбирает HTML-фрагмент и возвращает src первого <img> с непустым src.
func firstImageSrc(content string) (string, bool) {
	if strings.TrimSpace(content) == "" {
		return "", false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return "", false
	}
	var src string
	doc.Find("img[src]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr("src")
		v = strings.TrimSpace(v)
		if v == "" {
			return true
		}
		src = v
		return false
	})
	return src, src != ""
}
