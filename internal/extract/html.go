package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DescriptionText flattens a storefront HTML description to plain text.
// Malformed markup falls back to the raw string so extraction still runs.
func DescriptionText(html string) string {
	if !strings.Contains(html, "<") {
		return strings.TrimSpace(html)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}
	return strings.TrimSpace(strings.Join(strings.Fields(doc.Text()), " "))
}
