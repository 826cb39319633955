package extract

import (
	"regexp"
	"time"
)

// dateRe recognizes year-first and day/month-first numeric dates. Dot-joined
// year-first dates are accepted too (common on Indian lab reports).
var dateRe = regexp.MustCompile(`(\d{4}[-/.]\d{1,2}[-/.]\d{1,2})|(\d{1,2}[-/]\d{1,2}[-/]\d{4})`)

// dateLayouts are tried in order; the first successful parse wins, which
// fixes the MM/DD vs DD/MM tie-break explicitly.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"2006/01/02",
	"02-01-2006",
	"2006.01.02",
}

// normalizeDate parses s against the known layouts and renders it as
// YYYY-MM-DD. There is no partial output: either the full date parses or the
// call reports failure.
func normalizeDate(s string) (string, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}

// findDate returns the first parseable date on the line.
func findDate(line string) (string, bool) {
	for _, m := range dateRe.FindAllString(line, -1) {
		if d, ok := normalizeDate(m); ok {
			return d, true
		}
	}
	return "", false
}
