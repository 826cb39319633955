package models

// NotSpecified marks a field that is absent from the source document, as
// opposed to one that failed to parse.
const NotSpecified = "Not specified"

type ClinicalEvent struct {
	Type        string `json:"type"`
	Date        string `json:"date"`
	Description string `json:"description"`
	SourceFile  string `json:"source_file"`
	SourceText  string `json:"source_text"`
}

type LabResult struct {
	TestName       string `json:"test_name"`
	Value          string `json:"value"`
	Units          string `json:"units"`
	ReferenceRange string `json:"reference_range"`
	IsAbnormal     bool   `json:"is_abnormal"`
	SourceFile     string `json:"source_file"`
	SourceText     string `json:"source_text"`
}

type Medication struct {
	Name       string `json:"name"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	SourceFile string `json:"source_file"`
	SourceText string `json:"source_text"`
}

type RedFlag struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	SourceFile  string `json:"source_file"`
	SourceText  string `json:"source_text"`
}

// Section completeness values.
const (
	SectionPresent      = "present"
	SectionPartial      = "partial"
	SectionNotMentioned = "not_mentioned"
)

type Summary struct {
	TotalEvents      int `json:"total_events"`
	TotalLabs        int `json:"total_labs"`
	AbnormalLabs     int `json:"abnormal_labs"`
	TotalMedications int `json:"total_medications"`
	TotalRedFlags    int `json:"total_red_flags"`
}

// ClinicalData is the merged multi-file extraction result. Sections maps
// filename to a per-section completeness map.
type ClinicalData struct {
	Events      []ClinicalEvent              `json:"events"`
	Labs        []LabResult                  `json:"labs"`
	Medications []Medication                 `json:"medications"`
	RedFlags    []RedFlag                    `json:"red_flags"`
	Sections    map[string]map[string]string `json:"sections"`
	PatientData PatientRecord                `json:"patient_data"`
	Summary     Summary                      `json:"summary"`
}

// PatientRecord holds demographics merged across all files. Nil pointers mean
// the field was never found in any source document.
type PatientRecord struct {
	Name        *string           `json:"name"`
	Age         *int              `json:"age"`
	DateOfBirth *string           `json:"date_of_birth"`
	Gender      *string           `json:"gender"`
	PatientID   *string           `json:"patient_id"`
	Address     *string           `json:"address"`
	Phone       *string           `json:"phone"`
	Email       *string           `json:"email"`
	VitalSigns  map[string]string `json:"vital_signs"`
}
