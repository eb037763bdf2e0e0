package source

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// stripHTML reduces an HTML fragment to its text content. On parse failure
// the input is returned unchanged.
func stripHTML(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	return strings.TrimSpace(doc.Text())
}
