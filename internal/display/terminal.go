// Package display форматирует статьи для вывода в терминал.
package display

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"tamilnews/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

const (
	separator            = " • "
	defaultDescriptionLn = 160
	EmptyFeedMessage     = "No news to display.\n"
)

// TerminalFormatter форматирует статьи для терминала.
type TerminalFormatter struct {
	descriptionLen int
}

// NewTerminalFormatter создает форматтер. descriptionLen <= 0 означает длину по умолчанию.
func NewTerminalFormatter(descriptionLen int) *TerminalFormatter {
	if descriptionLen <= 0 {
		descriptionLen = defaultDescriptionLn
	}
	return &TerminalFormatter{descriptionLen: descriptionLen}
}

// FormatArticle форматирует одну статью с порядковым номером, который принимает команда open.
func (f *TerminalFormatter) FormatArticle(index int, a domain.Article) string {
	lines := []string{
		fmt.Sprintf("%d. [%s] %s", index, a.Publisher, a.Title),
		"  " + a.PubDate,
	}
	if text := f.TruncateText(PlainText(a.Description), f.descriptionLen); text != "" {
		lines = append(lines, "  "+text)
	}
	if a.Link != "" {
		lines = append(lines, "  "+a.Link)
	}
	lines = append(lines, "  image: "+a.ImageURL+separator+"logo: "+a.PublisherImage)
	return strings.Join(lines, "\n") + "\n"
}

// FormatFeed форматирует список статей, нумеруя их с единицы.
func (f *TerminalFormatter) FormatFeed(articles []domain.Article) string {
	if len(articles) == 0 {
		return EmptyFeedMessage
	}
	formatted := make([]string, 0, len(articles))
	for i, a := range articles {
		formatted = append(formatted, f.FormatArticle(i+1, a))
	}
	return strings.Join(formatted, "\n")
}

// PlainText убирает HTML-разметку из описания.
func PlainText(html string) string {
	if !strings.Contains(html, "<") {
		return strings.TrimSpace(html)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// TruncateText обрезает текст до maxLen символов, добавляя "...".
func (f *TerminalFormatter) TruncateText(text string, maxLen int) string {
	if utf8.RuneCountInString(text) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return "..."
	}
	runes := []rune(text)
	return string(runes[:maxLen-3]) + "..."
}
