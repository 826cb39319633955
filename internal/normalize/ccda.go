package normalize

import (
	"regexp"
	"strings"

	"github.com/beevik/etree"
)

var tagRe = regexp.MustCompile(`<[^>]+>`)

// parseCCDA renders a CCDA/CDA (or any XML) document as indented text. When
// the document is not well-formed XML, all tags are stripped instead so the
// request still yields usable text.
func parseCCDA(content string) string {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(content); err != nil || doc.Root() == nil {
		return stripTags(content)
	}
	lines := renderElement(doc.Root(), 0)
	return strings.Join(lines, "\n")
}

func renderElement(el *etree.Element, indent int) []string {
	pad := strings.Repeat("  ", indent)
	tag := humanize(strings.ReplaceAll(el.Tag, "_", " "))

	var lines []string
	text := strings.TrimSpace(el.Text())

	var attrs []string
	for _, a := range el.Attr {
		if strings.TrimSpace(a.Value) == "" {
			continue
		}
		attrs = append(attrs, a.Key+"="+a.Value)
	}

	switch {
	case len(attrs) > 0:
		lines = append(lines, pad+tag+" ("+strings.Join(attrs, ", ")+"):")
	case text != "":
		lines = append(lines, pad+tag+": "+text)
	default:
		lines = append(lines, pad+tag+":")
	}

	for _, child := range el.ChildElements() {
		lines = append(lines, renderElement(child, indent+1)...)
	}

	if tail := strings.TrimSpace(el.Tail()); tail != "" {
		lines = append(lines, pad+tail)
	}
	return lines
}

func stripTags(content string) string {
	text := tagRe.ReplaceAllString(content, " ")
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return content
	}
	return text
}
