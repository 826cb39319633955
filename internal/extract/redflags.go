package extract

import (
	"strings"

	"clinparse/internal/models"
)

// RedFlags scans for critical findings, allergy mentions, and abnormal
// results. The first matching keyword on a line wins and names the flag
// type; severity is high only for critical or urgent lines.
func RedFlags(cfg Config, content, sourceFile string) []models.RedFlag {
	var flags []models.RedFlag
	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		for _, kw := range cfg.RedFlagKeywords {
			if !strings.Contains(lower, kw) {
				continue
			}
			severity := "medium"
			if strings.Contains(lower, "critical") || strings.Contains(lower, "urgent") {
				severity = "high"
			}
			flags = append(flags, models.RedFlag{
				Type:        flagType(kw),
				Description: line,
				Severity:    severity,
				SourceFile:  sourceFile,
				SourceText:  line,
			})
			break
		}
	}
	return flags
}

// flagType turns a matched keyword into a display label, e.g.
// "critical:" becomes "Critical" and "adverse event" becomes
// "Adverse Event".
func flagType(keyword string) string {
	keyword = strings.TrimSuffix(keyword, ":")
	words := strings.Fields(keyword)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
