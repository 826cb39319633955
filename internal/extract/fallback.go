package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"clinparse/internal/models"
)

// NeedsFallback reports whether pattern matching came up empty enough to
// justify asking a model: no name, no age, and no gender at all.
func NeedsFallback(rec models.PatientRecord) bool {
	return rec.Name == nil && rec.Age == nil && rec.Gender == nil
}

// BoundedSample returns a model-sized excerpt of a document, keeping the
// head where demographics usually live plus the tail for report footers.
func BoundedSample(cfg Config, content string) string {
	if len(content) <= cfg.FallbackSampleHead+cfg.FallbackSampleTail {
		return content
	}
	// Back off byte offsets that land inside a multi-byte rune, so units
	// like µL or °F near the cut never produce invalid UTF-8.
	head := cfg.FallbackSampleHead
	for head > 0 && !utf8.RuneStart(content[head]) {
		head--
	}
	tail := len(content) - cfg.FallbackSampleTail
	for tail < len(content) && !utf8.RuneStart(content[tail]) {
		tail++
	}
	return content[:head] + "\n...\n" + content[tail:]
}

// BuildDemographicsPrompt asks for a strict JSON object with null for
// anything not literally stated, so the response can be re-validated
// instead of trusted.
func BuildDemographicsPrompt(sample string) string {
	return fmt.Sprintf(`Extract patient demographics from the medical document below.

Respond with ONLY a JSON object in exactly this shape:
{"name": string or null, "age": number or null, "date_of_birth": "YYYY-MM-DD" or null, "gender": "Male" or "Female" or null}

Rules:
- Use null for any field not explicitly stated in the document.
- Never guess or infer a value.
- The name must be the patient's name, not a physician or facility.

Document:
%s`, sample)
}

var (
	codeFenceRe   = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
	isoDateOnlyRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ParseDemographicsResponse validates a model reply field by field. Any
// field that fails validation is dropped rather than failing the whole
// response; a reply that is not JSON at all is an error.
func ParseDemographicsResponse(text string) (models.PatientRecord, error) {
	var rec models.PatientRecord

	if m := codeFenceRe.FindStringSubmatch(text); m != nil {
		text = m[1]
	}
	text = strings.TrimSpace(text)

	var raw struct {
		Name        any `json:"name"`
		Age         any `json:"age"`
		DateOfBirth any `json:"date_of_birth"`
		Gender      any `json:"gender"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return rec, fmt.Errorf("demographics response is not JSON: %w", err)
	}

	if name, ok := raw.Name.(string); ok {
		name = strings.Join(strings.Fields(name), " ")
		if len(name) >= 3 && len(name) <= 60 && strings.Contains(name, " ") && nameCharsRe.MatchString(name) {
			rec.Name = &name
		}
	}
	if age, ok := coerceInt(raw.Age); ok && age > 0 && age < 150 {
		rec.Age = &age
	}
	if dob, ok := raw.DateOfBirth.(string); ok && isoDateOnlyRe.MatchString(dob) {
		rec.DateOfBirth = &dob
	}
	if g, ok := raw.Gender.(string); ok {
		switch strings.ToLower(strings.TrimSpace(g)) {
		case "male", "m":
			male := "Male"
			rec.Gender = &male
		case "female", "f":
			female := "Female"
			rec.Gender = &female
		}
	}
	return rec, nil
}

func coerceInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i, true
		}
	}
	return 0, false
}
