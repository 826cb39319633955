package extract

import (
	"regexp"
	"strings"

	"clinparse/internal/models"
)

var numberTokenRe = regexp.MustCompile(`\d+\.?\d*`)

// Events scans line by line for admissions, procedures, labs, and visits.
// A "current date" persists across lines until a newer date is seen, so an
// undated event inherits the date of the report section it sits in. One line
// may emit several event types.
func Events(cfg Config, content, sourceFile string) []models.ClinicalEvent {
	var events []models.ClinicalEvent
	currentDate := ""

	for _, line := range strings.Split(content, "\n") {
		if d, ok := findDate(line); ok {
			currentDate = d
		}

		trimmed := strings.TrimSpace(line)
		if len(trimmed) < 3 {
			continue
		}
		lower := strings.ToLower(line)
		date := currentDate
		if date == "" {
			date = models.NotSpecified
		}

		if containsAny(lower, cfg.AdmissionKeywords) {
			events = append(events, newEvent("admission", date, trimmed, sourceFile))
		}
		if containsAny(lower, cfg.ProcedureKeywords) {
			events = append(events, newEvent("procedure", date, trimmed, sourceFile))
		}
		if containsAny(lower, cfg.LabKeywords) {
			// Casual mentions of "lab" without a value are not results.
			hasValue := numberTokenRe.MatchString(line)
			if hasValue || strings.Contains(lower, "result") || strings.Contains(lower, "test") {
				events = append(events, newEvent("lab", date, trimmed, sourceFile))
			}
		}
		if containsAny(lower, cfg.VisitKeywords) {
			events = append(events, newEvent("visit", date, trimmed, sourceFile))
		}
	}

	// Paged reports carrying panel vocabulary get one synthetic lab event
	// even without a keyword hit; recall over precision for lab detection.
	contentLower := strings.ToLower(content)
	if strings.Contains(contentLower, "page") && containsAny(contentLower, cfg.LabPanelKeywords) {
		date := currentDate
		if date == "" {
			date = models.NotSpecified
		}
		events = append(events, models.ClinicalEvent{
			Type:        "lab",
			Date:        date,
			Description: "Laboratory test results",
			SourceFile:  sourceFile,
			SourceText:  "Laboratory report",
		})
	}

	return events
}

func newEvent(eventType, date, text, sourceFile string) models.ClinicalEvent {
	return models.ClinicalEvent{
		Type:        eventType,
		Date:        date,
		Description: text,
		SourceFile:  sourceFile,
		SourceText:  text,
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
