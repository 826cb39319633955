// Package normalize turns heterogeneous clinical documents (HL7v2, FHIR/EHR
// JSON, CCDA/CDA XML, PDF, plain text) into a single flat text rendering
// suitable for downstream entity extraction. Parsing never fails the caller:
// undecodable or malformed input degrades to a placeholder line or raw text.
package normalize

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"clinparse/internal/util"
)

// Parse detects the document format of raw by extension, then by content, and
// returns its normalized text rendering.
func Parse(filename string, raw []byte) string {
	ext := strings.ToLower(filepath.Ext(filename))

	if ext == ".pdf" {
		return util.SanitizeText(parsePDF(raw))
	}

	text, ok := decodeText(raw)
	if !ok {
		return fmt.Sprintf("[Binary file - cannot parse: %s]", filepath.Base(filename))
	}

	switch ext {
	case ".hl7", ".hl7v2", ".hl7v3":
		return util.SanitizeText(parseHL7(text))
	case ".json", ".ehr", ".fhir":
		trimmed := strings.TrimSpace(text)
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			return util.SanitizeText(parseEHRJSON(text))
		}
		return util.SanitizeText(text)
	case ".xml", ".ccda", ".cda":
		return util.SanitizeText(parseCCDA(text))
	case ".txt", ".text":
		return util.SanitizeText(text)
	}

	return util.SanitizeText(sniff(text))
}

// sniff guesses the format of an unknown-extension document from its leading
// bytes: HL7 framing, JSON that actually parses, XML, else raw text.
func sniff(text string) string {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "MSH|") {
		return parseHL7(text)
	}
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		if parsed, ok := tryParseEHRJSON(text); ok {
			return parsed
		}
	}
	if strings.HasPrefix(trimmed, "<") {
		return parseCCDA(text)
	}
	return text
}

// decodeText decodes raw as UTF-8, falling back to Latin-1. Content that is
// neither valid UTF-8 nor plausibly text (embedded NUL bytes) is rejected.
func decodeText(raw []byte) (string, bool) {
	if utf8.Valid(raw) {
		return string(raw), true
	}
	if bytes.IndexByte(raw, 0) >= 0 {
		return "", false
	}
	r := make([]rune, len(raw))
	for i, b := range raw {
		r[i] = rune(b)
	}
	return string(r), true
}

// humanize converts snake_case or kebab-case identifiers into Title Case
// words ("blood_pressure" -> "Blood Pressure").
func humanize(key string) string {
	key = strings.ReplaceAll(key, "_", " ")
	key = strings.ReplaceAll(key, "-", " ")
	words := strings.Fields(key)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	r := []rune(strings.ToLower(w))
	r[0] = []rune(strings.ToUpper(string(r[0])))[0]
	return string(r)
}
