// Package htmltext reduces an HTML page to a title and a short plain-text excerpt.
package htmltext

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	TitlePlaceholder = "No title"
	// MaxTextRunes bounds Document.Text.
	MaxTextRunes = 1000
)

type Document struct {
	Title string
	Text  string
}

// Parse never fails; unparseable input yields an empty Text and the
// placeholder title.
func Parse(html string) Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Document{Title: TitlePlaceholder}
	}

	title := collapseSpace(doc.Find("title").First().Text())
	if title == "" {
		title = TitlePlaceholder
	}

	root := doc.Find("body").First()
	if root.Length() == 0 {
		root = doc.Selection
	}
	root.Find("script, style, noscript, template").Remove()

	return Document{
		Title: title,
		Text:  Excerpt(collapseSpace(root.Text()), MaxTextRunes),
	}
}

// Excerpt returns at most n runes of s.
func Excerpt(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
