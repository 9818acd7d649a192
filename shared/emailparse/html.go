package emailparse

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TextFromHTML extracts the visible text of an HTML mail body so the label
// patterns can run over it. Script and style contents are dropped.
func TextFromHTML(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML body: %w", err)
	}

	doc.Find("script, style").Remove()

	return doc.Text(), nil
}
