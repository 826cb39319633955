package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"clinparse/internal/models"
)

var (
	nameLineRe   = regexp.MustCompile(`(?i)(?:patient\s*name|^name)\s*[:=]\s*(.*)`)
	pidNameRe    = regexp.MustCompile(`(?is)\[Patient Identification.*?Patient Name:\s*([A-Za-z\s\^]+)`)
	bareNameRe   = regexp.MustCompile(`^[A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,3}$`)
	nameCharsRe  = regexp.MustCompile(`^[A-Za-z][A-Za-z\s.'\-]*$`)
	ageLabelRe   = regexp.MustCompile(`(?i)\bage\s*[:=]?\s*(\d{1,3})`)
	ageSuffixRe  = regexp.MustCompile(`(?i)\b(\d{1,3})\s*(?:-?\s*years?\s*-?\s*old|y/?o\b|yrs?\b)`)
	dobISORe     = regexp.MustCompile(`(?i)(?:date of birth|birth date|dob)\s*[:=]?\s*(\d{4}-\d{1,2}-\d{1,2})`)
	dobSlashRe   = regexp.MustCompile(`(?i)(?:date of birth|birth date|dob)\s*[:=]?\s*(\d{1,2}/\d{1,2}/\d{4})`)
	dobCompactRe = regexp.MustCompile(`(?i)(?:date of birth|birth date|dob)\s*[:=]?\s*(\d{8})`)
	dobPIDRe     = regexp.MustCompile(`(?i)pid(?:\|[^|\n]*){6}\|(\d{8})`)
	genderRe     = regexp.MustCompile(`(?i)\b(?:sex|gender)\s*[:=]?\s*(male|female|m|f)\b`)
	patientIDRe  = regexp.MustCompile(`(?i)(?:patient\s*id|medical record number|mrn)\s*[:=]\s*([A-Za-z0-9\-\^]+)`)
	addressRe    = regexp.MustCompile(`(?i)\baddress\s*[:=]\s*(.+)`)
	phoneRe      = regexp.MustCompile(`(?i)(?:phone|telephone|tel|contact)\s*[:=]?\s*(\+?[\d][\d\s\-().]{6,18}[\d)])`)
	emailRe      = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
)

// Patient extracts demographics from a single normalized document. Fields
// that never match stay nil so that absence survives the cross-file merge
// and can trigger the model fallback.
func Patient(cfg Config, content string) models.PatientRecord {
	var rec models.PatientRecord
	lines := strings.Split(content, "\n")

	rec.Name = extractName(cfg, lines, content)
	rec.Age = extractAge(cfg, content)
	rec.DateOfBirth = extractDOB(content)
	rec.Gender = extractGender(content)
	rec.PatientID = extractPatientID(content)
	rec.Address = extractAddress(content)
	rec.Phone = extractPhone(content)
	rec.Email = extractEmail(content)
	rec.VitalSigns = Vitals(cfg, content)
	return rec
}

func extractName(cfg Config, lines []string, content string) *string {
	limit := cfg.MaxNameScanLines
	if limit > len(lines) {
		limit = len(lines)
	}

	for i := 0; i < limit; i++ {
		line := strings.TrimSpace(lines[i])
		m := nameLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		candidate := strings.TrimSpace(m[1])
		if candidate == "" && i+1 < len(lines) {
			candidate = strings.TrimSpace(lines[i+1])
		}
		if name, ok := cleanName(cfg, candidate); ok {
			return &name
		}
	}

	// A line of bare capitalized words near the top, as in letterheads.
	bareLimit := 30
	if bareLimit > len(lines) {
		bareLimit = len(lines)
	}
	for i := 0; i < bareLimit; i++ {
		line := strings.TrimSpace(lines[i])
		if !bareNameRe.MatchString(line) {
			continue
		}
		if name, ok := cleanName(cfg, line); ok {
			return &name
		}
	}

	if m := pidNameRe.FindStringSubmatch(content); m != nil {
		if name, ok := cleanName(cfg, m[1]); ok {
			return &name
		}
	}
	return nil
}

// cleanName normalizes HL7 caret separators and whitespace, then rejects
// candidates that look like report headers rather than person names.
func cleanName(cfg Config, candidate string) (string, bool) {
	candidate = strings.ReplaceAll(candidate, "^", " ")
	candidate = strings.Join(strings.Fields(candidate), " ")
	if len(candidate) < 3 || len(candidate) > 60 {
		return "", false
	}
	if !nameCharsRe.MatchString(candidate) {
		return "", false
	}
	if containsAny(strings.ToLower(candidate), cfg.NameStoplist) {
		return "", false
	}
	return candidate, true
}

func extractAge(cfg Config, content string) *int {
	for _, re := range []*regexp.Regexp{ageLabelRe, ageSuffixRe} {
		for _, loc := range re.FindAllStringSubmatchIndex(content, -1) {
			value := content[loc[2]:loc[3]]
			if ageSuppressed(cfg, content, loc[2], loc[3]) {
				continue
			}
			n, err := strconv.Atoi(value)
			if err != nil || n < 2 || n > 120 {
				continue
			}
			return &n
		}
	}
	return nil
}

// ageSuppressed rejects numbers that sit inside lab values, ranges, or
// identifiers rather than an age statement.
func ageSuppressed(cfg Config, content string, start, end int) bool {
	if end < len(content) {
		switch content[end] {
		case '/', '-', ':', '%', '.':
			return true
		}
	}
	lo := start - 40
	if lo < 0 {
		lo = 0
	}
	hi := end + 40
	if hi > len(content) {
		hi = len(content)
	}
	return containsAny(strings.ToLower(content[lo:hi]), cfg.AgeSuppressTokens)
}

func extractDOB(content string) *string {
	if m := dobISORe.FindStringSubmatch(content); m != nil {
		if t, err := time.Parse("2006-1-2", m[1]); err == nil {
			s := t.Format("2006-01-02")
			return &s
		}
	}
	if m := dobSlashRe.FindStringSubmatch(content); m != nil {
		if t, err := time.Parse("01/02/2006", m[1]); err == nil {
			s := t.Format("2006-01-02")
			return &s
		}
	}
	for _, re := range []*regexp.Regexp{dobCompactRe, dobPIDRe} {
		if m := re.FindStringSubmatch(content); m != nil {
			if t, err := time.Parse("20060102", m[1]); err == nil {
				s := t.Format("2006-01-02")
				return &s
			}
		}
	}
	return nil
}

func extractGender(content string) *string {
	m := genderRe.FindStringSubmatch(content)
	if m == nil {
		return nil
	}
	var g string
	switch strings.ToLower(m[1]) {
	case "m", "male":
		g = "Male"
	case "f", "female":
		g = "Female"
	default:
		return nil
	}
	return &g
}

func extractPatientID(content string) *string {
	m := patientIDRe.FindStringSubmatch(content)
	if m == nil {
		return nil
	}
	id := strings.Trim(m[1], "-^")
	if id == "" {
		return nil
	}
	return &id
}

func extractAddress(content string) *string {
	m := addressRe.FindStringSubmatch(content)
	if m == nil {
		return nil
	}
	addr := strings.TrimSpace(m[1])
	addr = strings.Join(strings.Fields(strings.ReplaceAll(addr, "^", " ")), " ")
	if len(addr) <= 5 {
		return nil
	}
	if len(addr) > 200 {
		addr = addr[:200]
	}
	return &addr
}

func extractPhone(content string) *string {
	m := phoneRe.FindStringSubmatch(content)
	if m == nil {
		return nil
	}
	phone := strings.TrimSpace(m[1])
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < 7 {
		return nil
	}
	return &phone
}

func extractEmail(content string) *string {
	m := emailRe.FindString(content)
	if m == "" {
		return nil
	}
	return &m
}

// MergePatients folds per-file records in the given order, first non-nil
// value winning per field. Vital signs union, earlier files winning on
// key conflicts. Deterministic for a deterministic input order.
func MergePatients(records []models.PatientRecord) models.PatientRecord {
	var merged models.PatientRecord
	for _, rec := range records {
		if merged.Name == nil {
			merged.Name = rec.Name
		}
		if merged.Age == nil {
			merged.Age = rec.Age
		}
		if merged.DateOfBirth == nil {
			merged.DateOfBirth = rec.DateOfBirth
		}
		if merged.Gender == nil {
			merged.Gender = rec.Gender
		}
		if merged.PatientID == nil {
			merged.PatientID = rec.PatientID
		}
		if merged.Address == nil {
			merged.Address = rec.Address
		}
		if merged.Phone == nil {
			merged.Phone = rec.Phone
		}
		if merged.Email == nil {
			merged.Email = rec.Email
		}
		for k, v := range rec.VitalSigns {
			if merged.VitalSigns == nil {
				merged.VitalSigns = make(map[string]string)
			}
			if _, ok := merged.VitalSigns[k]; !ok {
				merged.VitalSigns[k] = v
			}
		}
	}
	return merged
}
