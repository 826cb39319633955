// Package refdata carries static clinical reference data: normal ranges for
// common lab tests and vital signs, with sex-specific variants and synonym
// sets for name matching. Tables are never mutated at runtime and are safe
// for concurrent use.
package refdata

import "strings"

// NotAvailable is returned in place of a range when no table entry matches.
const NotAvailable = "Reference range not available"

// Reference is one lab or vital entry. Male/Female override Normal when the
// patient's sex is known.
type Reference struct {
	Normal string `json:"normal"`
	Units  string `json:"units"`
	Male   string `json:"male,omitempty"`
	Female string `json:"female,omitempty"`
}

var labRanges = map[string]Reference{
	"hemoglobin":           {Normal: "12.0-17.5", Units: "g/dL", Male: "13.5-17.5", Female: "12.0-15.5"},
	"hematocrit":           {Normal: "36-52", Units: "%", Male: "40-52", Female: "36-48"},
	"rbc":                  {Normal: "4.5-6.0", Units: "million/µL", Male: "4.5-6.0", Female: "4.0-5.5"},
	"wbc":                  {Normal: "4,000-11,000", Units: "cells/µL"},
	"platelets":            {Normal: "150,000-450,000", Units: "platelets/µL"},
	"glucose":              {Normal: "70-100", Units: "mg/dL"},
	"creatinine":           {Normal: "0.6-1.2", Units: "mg/dL", Male: "0.7-1.3", Female: "0.6-1.1"},
	"bun":                  {Normal: "7-20", Units: "mg/dL"},
	"sodium":               {Normal: "136-145", Units: "mEq/L"},
	"potassium":            {Normal: "3.5-5.0", Units: "mEq/L"},
	"chloride":             {Normal: "98-107", Units: "mEq/L"},
	"co2":                  {Normal: "22-28", Units: "mEq/L"},
	"calcium":              {Normal: "8.5-10.5", Units: "mg/dL"},
	"total_protein":        {Normal: "6.0-8.3", Units: "g/dL"},
	"albumin":              {Normal: "3.5-5.0", Units: "g/dL"},
	"ast":                  {Normal: "10-40", Units: "U/L"},
	"alt":                  {Normal: "10-40", Units: "U/L"},
	"alkaline_phosphatase": {Normal: "44-147", Units: "U/L"},
	"total_bilirubin":      {Normal: "0.3-1.2", Units: "mg/dL"},
	"direct_bilirubin":     {Normal: "0.0-0.3", Units: "mg/dL"},
	"ldh":                  {Normal: "140-280", Units: "U/L"},
	"troponin":             {Normal: "<0.04", Units: "ng/mL"},
	"ck_mb":                {Normal: "<5", Units: "ng/mL"},
	"pt":                   {Normal: "11-13", Units: "seconds"},
	"inr":                  {Normal: "0.9-1.1", Units: ""},
	"aptt":                 {Normal: "25-35", Units: "seconds"},
	"tsh":                  {Normal: "0.4-4.0", Units: "mIU/L"},
	"t4":                   {Normal: "5.0-12.0", Units: "µg/dL"},
	"t3":                   {Normal: "100-200", Units: "ng/dL"},
	"cholesterol":          {Normal: "<200", Units: "mg/dL"},
	"ldl":                  {Normal: "<100", Units: "mg/dL"},
	"hdl":                  {Normal: ">40", Units: "mg/dL", Male: ">40", Female: ">50"},
	"triglycerides":        {Normal: "<150", Units: "mg/dL"},
	"hba1c":                {Normal: "<5.7", Units: "%"},
	"psa":                  {Normal: "<4.0", Units: "ng/mL"},
}

// labSynonyms maps canonical test keys to the name fragments commonly seen
// on reports. Matching is by fragment containment in the queried name.
var labSynonyms = map[string][]string{
	"rbc":        {"rbc", "red blood cell", "red blood cell count", "erythrocyte count"},
	"wbc":        {"wbc", "white blood cell", "white blood cell count", "leukocyte count"},
	"hemoglobin": {"hemoglobin", "haemoglobin", "hgb", "hb"},
	"hematocrit": {"hematocrit", "haematocrit", "hct"},
	"glucose":    {"glucose", "blood glucose", "blood sugar", "glu"},
	"creatinine": {"creatinine", "creat", "scr"},
	"bun":        {"bun", "blood urea nitrogen", "urea nitrogen"},
	"sodium":     {"sodium", "na"},
	"potassium":  {"potassium", "k"},
	"chloride":   {"chloride", "cl"},
	"co2":        {"co2", "carbon dioxide", "bicarbonate", "hco3"},
	"calcium":    {"calcium", "ca"},
	"ast":        {"ast", "sgot", "aspartate aminotransferase"},
	"alt":        {"alt", "sgpt", "alanine aminotransferase"},
	"troponin":   {"troponin", "troponin i", "troponin t"},
	"tsh":        {"tsh", "thyroid stimulating hormone"},
	"hba1c":      {"hba1c", "hemoglobin a1c", "glycated hemoglobin"},
}

// synonymOrder fixes the lookup order across the synonym table; short
// fragments like "k" and "ca" can match more than one name, and map
// iteration order would make the winner random.
var synonymOrder = []string{
	"rbc", "wbc", "hemoglobin", "hematocrit", "glucose", "creatinine", "bun",
	"sodium", "potassium", "chloride", "co2", "calcium", "ast", "alt",
	"troponin", "tsh", "hba1c",
}

var vitalRanges = map[string]Reference{
	"blood_pressure_systolic":  {Normal: "90-120", Units: "mmHg"},
	"blood_pressure_diastolic": {Normal: "60-80", Units: "mmHg"},
	"heart_rate":               {Normal: "60-100", Units: "bpm"},
	"respiratory_rate":         {Normal: "12-20", Units: "breaths/min"},
	"temperature":              {Normal: "97.8-99.1", Units: "°F"},
	"oxygen_saturation":        {Normal: "95-100", Units: "%"},
	"bmi":                      {Normal: "18.5-24.9", Units: "kg/m²"},
}

var vitalAliases = map[string]string{
	"bp":               "blood_pressure_systolic",
	"blood pressure":   "blood_pressure_systolic",
	"systolic":         "blood_pressure_systolic",
	"diastolic":        "blood_pressure_diastolic",
	"hr":               "heart_rate",
	"heart rate":       "heart_rate",
	"pulse":            "heart_rate",
	"rr":               "respiratory_rate",
	"respiratory rate": "respiratory_rate",
	"temp":             "temperature",
	"temperature":      "temperature",
	"spo2":             "oxygen_saturation",
	"oxygen":           "oxygen_saturation",
	"o2 sat":           "oxygen_saturation",
}

// LabReference resolves a lab test name, first by exact canonical key and
// then by synonym containment, applying the sex-specific variant when gender
// is Male or Female. The second return is false on a miss.
func LabReference(name, gender string) (Reference, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if ref, ok := labRanges[key]; ok {
		return applyGender(ref, gender), true
	}
	for _, canonical := range synonymOrder {
		for _, frag := range labSynonyms[canonical] {
			if strings.Contains(key, frag) {
				if ref, ok := labRanges[canonical]; ok {
					return applyGender(ref, gender), true
				}
			}
		}
	}
	return Reference{Normal: NotAvailable}, false
}

// VitalReference resolves a vital-sign name via the alias table.
func VitalReference(name string) (Reference, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := vitalAliases[key]; ok {
		key = canonical
	} else {
		key = strings.ReplaceAll(key, " ", "_")
	}
	if ref, ok := vitalRanges[key]; ok {
		return ref, true
	}
	return Reference{Normal: NotAvailable}, false
}

func applyGender(ref Reference, gender string) Reference {
	switch strings.ToLower(strings.TrimSpace(gender)) {
	case "male", "m":
		if ref.Male != "" {
			ref.Normal = ref.Male
		}
	case "female", "f":
		if ref.Female != "" {
			ref.Normal = ref.Female
		}
	}
	return ref
}
