// Package extract pulls structured clinical entities out of normalized
// document text. Every extractor works only from what is literally present:
// a pattern miss is reported as a nil field or the "Not specified" sentinel,
// never as an invented value.
package extract

// Config carries the keyword vocabularies and scan bounds the extractors
// match against. The lists are hand-tuned against real report corpora and
// deliberately configurable; Default() is the reference tuning.
type Config struct {
	AdmissionKeywords []string
	ProcedureKeywords []string
	LabKeywords       []string
	VisitKeywords     []string

	// LabPanelKeywords trigger the synthetic per-file lab event when panel
	// vocabulary appears in a paged report.
	LabPanelKeywords []string

	MedicationKeywords []string
	RedFlagKeywords    []string

	// TestNameKeywords qualify a bare line as a lab test name for the
	// multi-line lab strategy.
	TestNameKeywords []string
	// MethodNames are assay/method terms stripped from test-name suffixes.
	MethodNames []string

	SectionKeywords map[string][]string

	// NameStoplist disqualifies capitalized lines from being read as a
	// patient name (report headers, hospital banners and the like).
	NameStoplist []string
	// AgeSuppressTokens reject an age candidate whose surrounding context
	// looks like a lab value, range, or identifier instead.
	AgeSuppressTokens []string
	// VitalSuppressTokens reject vital-sign candidates sitting inside lab
	// panels.
	VitalSuppressTokens []string

	MaxNameScanLines   int
	FallbackSampleHead int
	FallbackSampleTail int
}

// SectionNames is the fixed set of clinical sections scored for
// completeness, in reporting order.
var SectionNames = []string{
	"demographics",
	"chief_complaint",
	"history_of_present_illness",
	"past_medical_history",
	"medications",
	"allergies",
	"vital_signs",
	"physical_examination",
	"laboratory_results",
	"assessment",
	"plan",
}

func Default() Config {
	return Config{
		AdmissionKeywords: []string{"admission", "admitted", "hospitalization", "admit", "discharge"},
		ProcedureKeywords: []string{"procedure", "surgery", "operation", "surgical", "performed", "biopsy", "endoscopy"},
		LabKeywords:       []string{"lab", "laboratory", "test", "result", "obx", "observation", "blood test", "cbc", "complete blood count"},
		VisitKeywords:     []string{"visit", "appointment", "encounter", "consultation", "examination", "exam"},

		LabPanelKeywords: []string{"cbc", "complete blood", "haemoglobin", "glucose", "creatinine"},

		MedicationKeywords: []string{
			"medication", "medications", "medication:", "drug", "drugs", "prescription",
			"prescribed", "rx", "rxo", "rxa", "taking", "currently on", "on medication",
			"tablet", "capsule", "injection", "dose", "mg", "ml",
		},
		RedFlagKeywords: []string{
			"critical", "critical:", "urgent", "urgent:",
			"alert", "alert:", "warning", "warning:",
			"adverse event", "adverse reaction", "adverse",
			"allergy", "allergy:", "allergic reaction",
			"contraindication", "contraindicated",
		},

		TestNameKeywords: []string{
			"haemoglobin", "hemoglobin", "hb", "wbc", "rbc", "platelet", "glucose",
			"creatinine", "cholesterol", "triglyceride", "bilirubin", "alt", "ast",
			"alkaline", "phosphatase", "sodium", "potassium", "calcium", "magnesium",
			"neutrophil", "lymphocyte", "monocyte", "eosinophil", "basophil", "mcv",
			"mch", "mchc", "rdw", "hct", "hematocrit", "esr", "sedimentation", "mpv",
			"pct", "p-lcr", "pdw", "absolute", "count", "differential", "morphology",
		},
		MethodNames: []string{
			"hexokinase", "uricase", "clia", "direct", "diazo", "ifcc", "kinetic",
			"pnpp-amp", "bromocresol", "bcg", "cynmeth", "calculated", "impedence",
			"microscopy", "sarcosine", "oxidase",
		},

		SectionKeywords: map[string][]string{
			"demographics":               {"patient id", "patient name", "date of birth", "age", "sex", "gender", "pid"},
			"chief_complaint":            {"chief complaint", "cc", "presenting complaint"},
			"history_of_present_illness": {"history of present illness", "hpi", "present illness"},
			"past_medical_history":       {"past medical history", "pmh", "medical history", "past history"},
			"medications":                {"medication", "medications", "drug", "rx", "prescription"},
			"allergies":                  {"allergy", "allergies", "allergic", "adverse reaction"},
			"vital_signs":                {"vital", "vitals", "blood pressure", "bp", "temperature", "temp", "heart rate", "hr"},
			"physical_examination":       {"physical exam", "physical examination", "pe", "examination"},
			"laboratory_results":         {"lab", "laboratory", "test results", "obx", "laboratory results"},
			"assessment":                 {"assessment", "diagnosis", "diagnoses", "impression"},
			"plan":                       {"plan", "treatment plan", "management", "recommendations"},
		},

		NameStoplist: []string{"report", "laboratory", "hospital", "clinic", "page", "date", "time"},
		AgeSuppressTokens: []string{
			"g/dl", "mg/dl", "meq/l", "mmhg", "µl", "/ul", "%", "range", "reference", "normal",
		},
		VitalSuppressTokens: []string{
			"g/dl", "mg/dl", "meq/l", "µl", "/ul", "range", "reference",
		},

		MaxNameScanLines:   200,
		FallbackSampleHead: 3000,
		FallbackSampleTail: 1000,
	}
}
