package extract

import (
	"testing"

	"clinparse/internal/models"
)

func strp(s string) *string { return &s }

func TestPatientNameAndAge(t *testing.T) {
	content := "Patient Name: Alice Smith\nAge: 45\nGender: Female\n"
	rec := Patient(Default(), content)

	if rec.Name == nil || *rec.Name != "Alice Smith" {
		t.Fatalf("name = %v", rec.Name)
	}
	if rec.Age == nil || *rec.Age != 45 {
		t.Fatalf("age = %v", rec.Age)
	}
	if rec.Gender == nil || *rec.Gender != "Female" {
		t.Fatalf("gender = %v", rec.Gender)
	}
}

func TestPatientPageNumberNotAge(t *testing.T) {
	content := "Page 3 of 10\nHemoglobin 14.2 g/dL 13-17\n"
	rec := Patient(Default(), content)

	if rec.Age != nil {
		t.Fatalf("page number must not populate age, got %d", *rec.Age)
	}
}

func TestPatientAgeRange(t *testing.T) {
	for _, tc := range []struct {
		content string
		want    bool
	}{
		{"Age: 1\n", false},
		{"Age: 2\n", true},
		{"Age: 120\n", true},
		{"Age: 121\n", false},
		{"Age: 450\n", false},
	} {
		rec := Patient(Default(), tc.content)
		if got := rec.Age != nil; got != tc.want {
			t.Errorf("%q: age accepted = %v, want %v", tc.content, got, tc.want)
		}
	}
}

func TestPatientAgeSuppressedNearLabUnits(t *testing.T) {
	content := "Reference range 40 - 50 mg/dL\n"
	rec := Patient(Default(), content)

	if rec.Age != nil {
		t.Fatalf("lab range must not populate age, got %d", *rec.Age)
	}
}

func TestPatientHL7Fields(t *testing.T) {
	content := "[Patient Identification (PID)]\n" +
		"  Patient ID: MRN-001\n" +
		"  Patient Name: Smith^Alice\n" +
		"  Date of Birth: 19800115\n" +
		"  Gender: F\n"
	rec := Patient(Default(), content)

	if rec.Name == nil || *rec.Name != "Smith Alice" {
		t.Fatalf("name = %v", rec.Name)
	}
	if rec.PatientID == nil || *rec.PatientID != "MRN-001" {
		t.Fatalf("patient id = %v", rec.PatientID)
	}
	if rec.DateOfBirth == nil || *rec.DateOfBirth != "1980-01-15" {
		t.Fatalf("dob = %v", rec.DateOfBirth)
	}
	if rec.Gender == nil || *rec.Gender != "Female" {
		t.Fatalf("gender = %v", rec.Gender)
	}
}

func TestPatientContactFields(t *testing.T) {
	content := "Address: 12 Harbor Lane, Springfield\nPhone: 555-123-4567\nEmail: alice@example.org\n"
	rec := Patient(Default(), content)

	if rec.Address == nil || *rec.Address != "12 Harbor Lane, Springfield" {
		t.Fatalf("address = %v", rec.Address)
	}
	if rec.Phone == nil || *rec.Phone != "555-123-4567" {
		t.Fatalf("phone = %v", rec.Phone)
	}
	if rec.Email == nil || *rec.Email != "alice@example.org" {
		t.Fatalf("email = %v", rec.Email)
	}
}

func TestPatientVitals(t *testing.T) {
	content := "Vitals: BP 120/80, HR 72\nTemp: 98.6\nSpO2: 97%\n"
	rec := Patient(Default(), content)

	if rec.VitalSigns["blood_pressure"] != "120/80" {
		t.Fatalf("bp = %q", rec.VitalSigns["blood_pressure"])
	}
	if rec.VitalSigns["heart_rate"] != "72" {
		t.Fatalf("hr = %q", rec.VitalSigns["heart_rate"])
	}
	if rec.VitalSigns["temperature"] != "98.6" {
		t.Fatalf("temp = %q", rec.VitalSigns["temperature"])
	}
	if rec.VitalSigns["oxygen_saturation"] != "97%" {
		t.Fatalf("spo2 = %q", rec.VitalSigns["oxygen_saturation"])
	}
}

func TestPatientVitalsImplausibleDiscarded(t *testing.T) {
	content := "HR 250\nTemp: 150\nBP 400/300\nSpO2: 40%\nRR 90\n"
	vitals := Vitals(Default(), content)

	if len(vitals) != 0 {
		t.Fatalf("implausible readings must be dropped, got %v", vitals)
	}
}

func TestPatientVitalsLabRowSuppressed(t *testing.T) {
	content := "HR 72 reference range 60-100\nHb 14.0 g/dL\nTemp: 98.6\n"
	vitals := Vitals(Default(), content)

	if _, ok := vitals["heart_rate"]; ok {
		t.Fatalf("lab-row line must not yield a heart rate, got %v", vitals)
	}
	if vitals["temperature"] != "98.6" {
		t.Fatalf("temp = %q", vitals["temperature"])
	}
}

func TestMergePatientsFirstWins(t *testing.T) {
	a := models.PatientRecord{Name: strp("Jane Doe"), VitalSigns: map[string]string{"heart_rate": "70"}}
	b := models.PatientRecord{Name: strp("John Roe"), Gender: strp("Male"), VitalSigns: map[string]string{"heart_rate": "90", "temperature": "99.1"}}

	merged := MergePatients([]models.PatientRecord{a, b})
	if merged.Name == nil || *merged.Name != "Jane Doe" {
		t.Fatalf("first non-nil name must win, got %v", merged.Name)
	}
	if merged.Gender == nil || *merged.Gender != "Male" {
		t.Fatalf("later files must fill missing fields, got %v", merged.Gender)
	}
	if merged.VitalSigns["heart_rate"] != "70" {
		t.Fatalf("earlier vitals must not be overwritten, got %q", merged.VitalSigns["heart_rate"])
	}
	if merged.VitalSigns["temperature"] != "99.1" {
		t.Fatalf("vitals must union, got %q", merged.VitalSigns["temperature"])
	}
}
