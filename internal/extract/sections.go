package extract

import (
	"strings"

	"clinparse/internal/models"
)

// Sections reports, for each standard clinical section, whether the
// document covers it: two or more keyword hits mean present, exactly one
// means partial, none means not mentioned.
func Sections(cfg Config, content string) map[string]string {
	lower := strings.ToLower(content)
	out := make(map[string]string, len(SectionNames))
	for _, section := range SectionNames {
		hits := 0
		for _, kw := range cfg.SectionKeywords[section] {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		switch {
		case hits >= 2:
			out[section] = models.SectionPresent
		case hits == 1:
			out[section] = models.SectionPartial
		default:
			out[section] = models.SectionNotMentioned
		}
	}
	return out
}
