package normalize

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// parsePDF extracts text page by page, labeling each page and joining pages
// with a visible separator. A page that cannot be extracted yields a
// placeholder line rather than failing the whole document.
func parsePDF(raw []byte) (out string) {
	// The pdf library panics on some malformed cross-reference tables;
	// recover into the same placeholder used for open failures.
	defer func() {
		if r := recover(); r != nil {
			out = fmt.Sprintf("[Error parsing PDF: %v]", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return fmt.Sprintf("[Error parsing PDF: %v]", err)
	}

	var pages []string
	for n := 1; n <= reader.NumPage(); n++ {
		page := reader.Page(n)
		if page.V.IsNull() {
			pages = append(pages, fmt.Sprintf("[Page %d - Could not extract text]", n))
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, fmt.Sprintf("[Page %d - Could not extract text]", n))
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		pages = append(pages, fmt.Sprintf("[Page %d]\n%s", n, text))
	}

	if len(pages) == 0 {
		return "[PDF file contains no extractable text]"
	}
	return strings.Join(pages, "\n\n---\n\n")
}
