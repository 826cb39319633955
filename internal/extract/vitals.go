package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	bpRe   = regexp.MustCompile(`(?i)(?:blood pressure|bp)\s*[:=]?\s*(\d{2,3})\s*/\s*(\d{2,3})`)
	hrRe   = regexp.MustCompile(`(?i)(?:heart rate|pulse|hr)\s*[:=]?\s*(\d{2,3})`)
	tempRe = regexp.MustCompile(`(?i)(?:temperature|temp)\s*[:=]?\s*(\d{2,3}(?:\.\d+)?)`)
	rrRe   = regexp.MustCompile(`(?i)(?:respiratory rate|resp rate|rr)\s*[:=]?\s*(\d{1,2})`)
	spo2Re = regexp.MustCompile(`(?i)(?:oxygen saturation|o2 sat|spo2)\s*[:=]?\s*(\d{2,3})\s*%?`)
)

// Vitals scans line by line for vital signs, keeping only physiologically
// plausible readings. Lines that look like lab panel rows are skipped so a
// reference range never masquerades as a blood pressure.
func Vitals(cfg Config, content string) map[string]string {
	vitals := make(map[string]string)
	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if containsAny(strings.ToLower(line), cfg.VitalSuppressTokens) {
			continue
		}

		if _, ok := vitals["blood_pressure"]; !ok {
			if m := bpRe.FindStringSubmatch(line); m != nil {
				sys, _ := strconv.Atoi(m[1])
				dia, _ := strconv.Atoi(m[2])
				if sys >= 60 && sys <= 260 && dia >= 30 && dia <= 160 {
					vitals["blood_pressure"] = m[1] + "/" + m[2]
				}
			}
		}
		if _, ok := vitals["heart_rate"]; !ok {
			if m := hrRe.FindStringSubmatch(line); m != nil {
				if n, _ := strconv.Atoi(m[1]); n >= 30 && n <= 200 {
					vitals["heart_rate"] = m[1]
				}
			}
		}
		if _, ok := vitals["temperature"]; !ok {
			if m := tempRe.FindStringSubmatch(line); m != nil {
				if f, err := strconv.ParseFloat(m[1], 64); err == nil && f >= 90 && f <= 110 {
					vitals["temperature"] = m[1]
				}
			}
		}
		if _, ok := vitals["respiratory_rate"]; !ok {
			if m := rrRe.FindStringSubmatch(line); m != nil {
				if n, _ := strconv.Atoi(m[1]); n >= 5 && n <= 60 {
					vitals["respiratory_rate"] = m[1]
				}
			}
		}
		if _, ok := vitals["oxygen_saturation"]; !ok {
			if m := spo2Re.FindStringSubmatch(line); m != nil {
				if n, _ := strconv.Atoi(m[1]); n >= 70 && n <= 100 {
					vitals["oxygen_saturation"] = m[1] + "%"
				}
			}
		}
	}
	return vitals
}
