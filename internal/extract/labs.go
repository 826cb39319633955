package extract

import (
	"regexp"
	"strconv"
	"strings"

	"clinparse/internal/models"
)

// Lab strategies, applied in order with the union deduplicated afterwards:
//  1. HL7 OBX segments (name/value/units positionally).
//  2. Inline "name value units range" on one line.
//  3. Test name on its own line, optional method line, value line below.
//  4. Colon-separated "Test Name: value units (range)".
var (
	obxSegmentRe = regexp.MustCompile(`OBX\|.*?\|.*?\|(.*?)\|(.*?)\|(.*?)\|`)

	inlineLabRe = regexp.MustCompile(`([A-Za-z][A-Za-z\s\(\)\-/]+?)\s+(\d+\.?\d*)\s+([a-zA-Z/%\^]+/?[a-zA-Z0-9]*)\s+(\d+\.?\d*\s*[-–]\s*\d+\.?\d*)`)

	valueRangeRe = regexp.MustCompile(`(\d+\.?\d*)\s+([a-zA-Z/%\^]+/?[a-zA-Z0-9]*)\s+(\d+\.?\d*\s*[-–]\s*\d+\.?\d*)`)

	colonLabRe = regexp.MustCompile(`([A-Za-z][A-Za-z\s\(\)\-]+?):\s*(\d+\.?\d*)\s*([a-zA-Z/%\^]+/?[a-zA-Z0-9]*)?\s*(?:\(([^)]+)\)|(\d+\.?\d*\s*-\s*\d+\.?\d*))`)

	methodSuffixRe  = regexp.MustCompile(`(?i)\s*\(Method:.*?\)\s*$`)
	methodParenRe   = regexp.MustCompile(`(?i)\s*\([^)]*(?:method|assay|technique)[^)]*\)\s*$`)
	trailingParenRe = regexp.MustCompile(`\s*\(([^)]+)\)\s*$`)
	danglingParenRe = regexp.MustCompile(`\s*([A-Za-z]+)\)\s*$`)

	labNoiseRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^\(?method:`),
		regexp.MustCompile(`(?i)method\)$`),
		regexp.MustCompile(`(?i)calculated\)$`),
		regexp.MustCompile(`(?i)impedence\)$`),
		regexp.MustCompile(`(?i)microscopy\)$`),
		regexp.MustCompile(`(?i)^page\s+\d+`),
		regexp.MustCompile(`^\*\*\*`),
		regexp.MustCompile(`(?i)^itdose`),
	}
)

// Labs extracts lab results with values, units, and reference ranges.
func Labs(cfg Config, content, sourceFile string) []models.LabResult {
	var labs []models.LabResult
	labs = append(labs, obxLabs(content, sourceFile)...)
	labs = append(labs, inlineLabs(content, sourceFile)...)
	labs = append(labs, multiLineLabs(cfg, content, sourceFile)...)
	labs = append(labs, colonLabs(content, sourceFile)...)
	return cleanLabs(cfg, labs)
}

func obxLabs(content, sourceFile string) []models.LabResult {
	var labs []models.LabResult
	for _, m := range obxSegmentRe.FindAllStringSubmatch(content, -1) {
		name := strings.TrimSpace(m[1])
		value := strings.TrimSpace(m[2])
		units := strings.TrimSpace(m[3])
		if name == "" {
			name = "Unknown"
		}
		labs = append(labs, models.LabResult{
			TestName:       name,
			Value:          value,
			Units:          units,
			ReferenceRange: models.NotSpecified,
			IsAbnormal:     false,
			SourceFile:     sourceFile,
			SourceText:     "OBX|" + m[1] + "|" + m[2] + "|" + m[3],
		})
	}
	return labs
}

func inlineLabs(content, sourceFile string) []models.LabResult {
	var labs []models.LabResult
	for _, m := range inlineLabRe.FindAllStringSubmatch(content, -1) {
		name := strings.Join(strings.Fields(m[1]), " ")
		if strings.Contains(strings.ToLower(name), "method:") {
			continue
		}
		name = methodSuffixRe.ReplaceAllString(name, "")
		value := strings.TrimSpace(m[2])
		refRange := strings.TrimSpace(m[4])
		labs = append(labs, models.LabResult{
			TestName:       name,
			Value:          value,
			Units:          strings.TrimSpace(m[3]),
			ReferenceRange: refRange,
			IsAbnormal:     isAbnormal(value, refRange),
			SourceFile:     sourceFile,
			SourceText:     strings.TrimSpace(m[0]),
		})
	}
	return labs
}

// multiLineLabs handles the report layout where the test name sits on its
// own line, optionally followed by a "(Method: ...)" line, with the value,
// units, and range on the line below.
func multiLineLabs(cfg Config, content, sourceFile string) []models.LabResult {
	lines := strings.Split(content, "\n")
	var labs []models.LabResult

	for i := 0; i+2 < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		next := strings.TrimSpace(lines[i+1])
		afterNext := strings.TrimSpace(lines[i+2])

		lower := strings.ToLower(line)
		if strings.HasPrefix(lower, "(method:") || strings.Contains(lower, "method:") {
			continue
		}
		if !isTestNameLine(cfg, line) {
			continue
		}

		valueLine := next
		if nextLower := strings.ToLower(next); strings.HasPrefix(nextLower, "(method:") || strings.Contains(nextLower, "method:") {
			valueLine = afterNext
		}

		m := valueRangeRe.FindStringSubmatch(valueLine)
		if m == nil {
			continue
		}
		value := m[1]
		refRange := m[3]
		labs = append(labs, models.LabResult{
			TestName:       strings.Join(strings.Fields(line), " "),
			Value:          value,
			Units:          m[2],
			ReferenceRange: refRange,
			IsAbnormal:     isAbnormal(value, refRange),
			SourceFile:     sourceFile,
			SourceText:     line + "\n" + valueLine,
		})
	}
	return labs
}

func isTestNameLine(cfg Config, line string) bool {
	if line == "" || len(line) >= 100 {
		return false
	}
	lower := strings.ToLower(line)
	if strings.HasPrefix(lower, "(method:") || strings.HasPrefix(lower, "page") || strings.HasPrefix(line, "***") {
		return false
	}
	first := rune(line[0])
	return containsAny(lower, cfg.TestNameKeywords) || (first >= 'A' && first <= 'Z')
}

func colonLabs(content, sourceFile string) []models.LabResult {
	var labs []models.LabResult
	for _, m := range colonLabRe.FindAllStringSubmatch(content, -1) {
		refRange := strings.TrimSpace(m[4])
		if refRange == "" {
			refRange = strings.TrimSpace(m[5])
		}
		value := strings.TrimSpace(m[2])
		abnormal := false
		out := models.LabResult{
			TestName:   strings.TrimSpace(m[1]),
			Value:      value,
			Units:      strings.TrimSpace(m[3]),
			SourceFile: sourceFile,
			SourceText: strings.TrimSpace(m[0]),
		}
		if refRange != "" {
			abnormal = isAbnormal(value, refRange)
			out.ReferenceRange = refRange
		} else {
			out.ReferenceRange = models.NotSpecified
		}
		out.IsAbnormal = abnormal
		labs = append(labs, out)
	}
	return labs
}

// isAbnormal compares a numeric value against a two-sided numeric range.
// Anything non-numeric or one-sided yields false: absence of evidence is
// never reported as abnormal.
func isAbnormal(value, refRange string) bool {
	bounds := numberTokenRe.FindAllString(refRange, -1)
	if len(bounds) < 2 {
		return false
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return false
	}
	lo, err := strconv.ParseFloat(bounds[0], 64)
	if err != nil {
		return false
	}
	hi, err := strconv.ParseFloat(bounds[1], 64)
	if err != nil {
		return false
	}
	return v < lo || v > hi
}

// cleanLabs strips residual method annotations from test names, drops known
// noise lines, and deduplicates by (test name, value, source file).
func cleanLabs(cfg Config, labs []models.LabResult) []models.LabResult {
	seen := make(map[string]struct{}, len(labs))
	out := make([]models.LabResult, 0, len(labs))

	for _, lab := range labs {
		name := strings.TrimSpace(lab.TestName)
		name = methodParenRe.ReplaceAllString(name, "")
		name = stripMethodParen(cfg, name)
		name = strings.TrimSpace(name)

		if len(name) < 2 || matchesAnyRe(name, labNoiseRes) {
			continue
		}

		lab.TestName = name
		key := strings.ToLower(name) + "\x00" + lab.Value + "\x00" + lab.SourceFile
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, lab)
	}
	return out
}

// stripMethodParen removes a trailing parenthetical (balanced or dangling)
// when its content is a known assay/method name.
func stripMethodParen(cfg Config, name string) string {
	if m := trailingParenRe.FindStringSubmatch(name); m != nil {
		if containsAny(strings.ToLower(m[1]), cfg.MethodNames) {
			return strings.TrimSpace(trailingParenRe.ReplaceAllString(name, ""))
		}
		return name
	}
	if m := danglingParenRe.FindStringSubmatch(name); m != nil {
		if containsAny(strings.ToLower(m[1]), cfg.MethodNames) {
			return strings.TrimSpace(danglingParenRe.ReplaceAllString(name, ""))
		}
	}
	return name
}

func matchesAnyRe(s string, res []*regexp.Regexp) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
