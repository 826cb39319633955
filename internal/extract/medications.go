package extract

import (
	"regexp"
	"strings"

	"clinparse/internal/models"
)

var (
	rxaSegmentRe = regexp.MustCompile(`RXA\|.*?\|.*?\|.*?\|(.*?)\|`)
	medPrefixRe  = regexp.MustCompile(`(?i)^(medication|drug|prescription|rx)[:\s]*`)
	capitalRunRe = regexp.MustCompile(`[A-Z][a-zA-Z]*(?:\s+[A-Z][a-zA-Z]*)*`)
)

// Medications extracts medication names from RXA segments and keyword lines.
// Start dates come from the nearest preceding document date, or a short
// forward scan when none has been seen yet.
func Medications(cfg Config, content, sourceFile string) []models.Medication {
	var meds []models.Medication

	for _, m := range rxaSegmentRe.FindAllStringSubmatch(content, -1) {
		name := strings.TrimSpace(m[1])
		if name == "" {
			continue
		}
		meds = append(meds, models.Medication{
			Name:       name,
			StartDate:  models.NotSpecified,
			EndDate:    models.NotSpecified,
			SourceFile: sourceFile,
			SourceText: strings.TrimSpace(m[0]),
		})
	}

	lines := strings.Split(content, "\n")
	currentDate := ""
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if d, ok := findDate(line); ok {
			currentDate = d
		}
		lower := strings.ToLower(line)
		if !containsAny(lower, cfg.MedicationKeywords) {
			continue
		}

		name := medicationName(line)
		if len(name) <= 2 {
			continue
		}

		startDate := currentDate
		if startDate == "" {
			for j := i + 1; j < len(lines) && j <= i+4; j++ {
				if d, ok := findDate(lines[j]); ok {
					startDate = d
					break
				}
			}
		}
		if startDate == "" {
			startDate = models.NotSpecified
		}

		meds = append(meds, models.Medication{
			Name:       name,
			StartDate:  startDate,
			EndDate:    models.NotSpecified,
			SourceFile: sourceFile,
			SourceText: line,
		})
	}

	return dedupMedications(meds)
}

// medicationName pulls the drug name out of a matched line. A colon form
// ("Medication: Aspirin 81mg") takes the text after the colon, otherwise
// the first run of capitalized words is used.
func medicationName(line string) string {
	var name string
	if idx := strings.Index(line, ":"); idx >= 0 {
		name = strings.TrimSpace(line[idx+1:])
	} else {
		words := strings.Fields(line)
		if len(words) > 5 {
			words = words[:5]
		}
		if m := capitalRunRe.FindString(strings.Join(words, " ")); m != "" {
			name = m
		} else {
			name = strings.Join(words, " ")
		}
	}
	return strings.TrimSpace(medPrefixRe.ReplaceAllString(name, ""))
}

func dedupMedications(meds []models.Medication) []models.Medication {
	seen := make(map[string]struct{}, len(meds))
	out := make([]models.Medication, 0, len(meds))
	for _, med := range meds {
		key := strings.ToLower(med.Name) + "\x00" + med.SourceFile
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, med)
	}
	return out
}
