package normalize

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Metadata keys carrying no clinical content; skipped during the walk.
var metadataKeys = map[string]struct{}{
	"id":           {},
	"meta":         {},
	"extension":    {},
	"text":         {},
	"resourcetype": {},
}

// parseEHRJSON renders a FHIR/EHR JSON document as indented plain text,
// humanizing keys and skipping pure-metadata fields. Invalid JSON passes
// through untouched.
func parseEHRJSON(content string) string {
	parsed, ok := tryParseEHRJSON(content)
	if !ok {
		return content
	}
	return parsed
}

func tryParseEHRJSON(content string) (string, bool) {
	var data any
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return "", false
	}
	lines := renderJSONValue(data, 0)
	return strings.Join(lines, "\n"), true
}

func renderJSONValue(v any, indent int) []string {
	pad := strings.Repeat("  ", indent)
	var lines []string

	switch val := v.(type) {
	case map[string]any:
		// Map order is randomized in Go; sort keys for a stable rendering.
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if _, skip := metadataKeys[strings.ToLower(k)]; skip {
				continue
			}
			child := val[k]
			switch child.(type) {
			case map[string]any, []any:
				if k != "" {
					lines = append(lines, pad+humanize(k)+":")
					lines = append(lines, renderJSONValue(child, indent+1)...)
				}
			default:
				if s := formatScalar(child); s != "" {
					lines = append(lines, pad+humanize(k)+": "+s)
				}
			}
		}
	case []any:
		for _, item := range val {
			switch item.(type) {
			case map[string]any, []any:
				lines = append(lines, renderJSONValue(item, indent)...)
			default:
				if s := formatScalar(item); s != "" {
					lines = append(lines, pad+"- "+s)
				}
			}
		}
	default:
		if s := formatScalar(val); s != "" {
			lines = append(lines, pad+s)
		}
	}
	return lines
}

func formatScalar(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case bool:
		return strconv.FormatBool(val)
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1e15 {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	default:
		return ""
	}
}
