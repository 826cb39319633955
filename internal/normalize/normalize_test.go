package normalize

import (
	"strings"
	"testing"
)

const sampleHL7 = "MSH|^~\\&|LAB|HOSP|EMR|CLINIC|20240105||ORU^R01|MSG001|P|2.5\n" +
	"PID|1||PT-100||Doe^Jane||19850315|F|||12 Main St\n" +
	"OBX|1|NM|Glucose||95|mg/dL|70-100|H||F\n" +
	"ZZZ|custom|fields|here\n"

func TestParseHL7ByExtension(t *testing.T) {
	out := Parse("report.hl7", []byte(sampleHL7))
	for _, want := range []string{
		"[Patient Identification (PID)]",
		"Patient ID: PT-100",
		"Patient Name: Doe^Jane",
		"Date of Birth: 19850315",
		"Sex: F",
		"Address: 12 Main St",
		"[Observation/Result (OBX)]",
		"Observation: Glucose",
		"Value: 95 mg/dL",
		"Abnormal Flag: H",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestParseHL7UnknownSegmentStillEmitted(t *testing.T) {
	out := Parse("report.hl7", []byte(sampleHL7))
	if !strings.Contains(out, "[ZZZ (ZZZ)]") {
		t.Fatalf("unknown segment dropped:\n%s", out)
	}
	if !strings.Contains(out, "Data: custom | fields | here") {
		t.Fatalf("unknown segment fields dropped:\n%s", out)
	}
}

func TestParseHL7BySniffing(t *testing.T) {
	out := Parse("message.dat", []byte(sampleHL7))
	if !strings.Contains(out, "[Message Header (MSH)]") {
		t.Fatalf("MSH| content not sniffed as HL7:\n%s", out)
	}
}

func TestParseJSONHumanizesKeys(t *testing.T) {
	in := `{"resourceType":"Patient","birth_date":"1985-03-15","name":{"family-name":"Doe"},"id":"x1"}`
	out := Parse("record.fhir", []byte(in))
	if strings.Contains(out, "Patient") && strings.Contains(out, "Resource") {
		t.Fatalf("resourceType metadata key not skipped:\n%s", out)
	}
	if !strings.Contains(out, "Birth Date: 1985-03-15") {
		t.Fatalf("snake_case key not humanized:\n%s", out)
	}
	if !strings.Contains(out, "Family Name: Doe") {
		t.Fatalf("nested kebab-case key not rendered:\n%s", out)
	}
}

func TestParseJSONBadContentPassesThrough(t *testing.T) {
	in := "not json at all"
	out := Parse("record.json", []byte(in))
	if out != in {
		t.Fatalf("expected raw passthrough, got %q", out)
	}
}

func TestParseJSONScalarList(t *testing.T) {
	out := Parse("record.json", []byte(`{"allergies":["penicillin","latex"]}`))
	if !strings.Contains(out, "- penicillin") || !strings.Contains(out, "- latex") {
		t.Fatalf("scalar list items not rendered:\n%s", out)
	}
}

func TestParseXMLWalk(t *testing.T) {
	in := `<ClinicalDocument xmlns="urn:hl7-org:v3"><patient_name>Jane Doe</patient_name><code value="34133-9"/></ClinicalDocument>`
	out := Parse("doc.ccda", []byte(in))
	if !strings.Contains(out, "Patient Name: Jane Doe") {
		t.Fatalf("element text not rendered:\n%s", out)
	}
	if !strings.Contains(out, "Code (value=34133-9):") {
		t.Fatalf("attributes not rendered:\n%s", out)
	}
}

func TestParseXMLFallbackStripsTags(t *testing.T) {
	in := "<section><title>Vitals</title><content>BP 120/80</content>"
	out := Parse("doc.xml", []byte(in))
	if strings.Contains(out, "<") {
		t.Fatalf("tags not stripped from malformed XML: %q", out)
	}
	if !strings.Contains(out, "BP 120/80") {
		t.Fatalf("text content lost: %q", out)
	}
}

func TestParseTxtPassthrough(t *testing.T) {
	out := Parse("note.txt", []byte("Patient admitted on 2024-01-05."))
	if out != "Patient admitted on 2024-01-05." {
		t.Fatalf("unexpected txt rendering: %q", out)
	}
}

func TestParseBinaryMarker(t *testing.T) {
	raw := []byte{0xff, 0xfe, 0x00, 0x01, 0x00, 0x02}
	out := Parse("scan.bin", raw)
	if out != "[Binary file - cannot parse: scan.bin]" {
		t.Fatalf("unexpected binary marker: %q", out)
	}
}

func TestParseLatin1Fallback(t *testing.T) {
	// 0xe9 is e-acute in Latin-1 and invalid as a standalone UTF-8 byte.
	out := Parse("note.txt", []byte{'c', 'a', 'f', 0xe9})
	if out != "café" {
		t.Fatalf("unexpected latin-1 decode: %q", out)
	}
}

func TestParsePDFInvalidBytes(t *testing.T) {
	out := Parse("report.pdf", []byte("definitely not a pdf"))
	if !strings.HasPrefix(out, "[Error parsing PDF:") && out != "[PDF file contains no extractable text]" {
		t.Fatalf("expected PDF placeholder, got %q", out)
	}
}

func TestSniffJSON(t *testing.T) {
	out := Parse("payload", []byte(`{"chief_complaint":"chest pain"}`))
	if !strings.Contains(out, "Chief Complaint: chest pain") {
		t.Fatalf("JSON content not sniffed: %q", out)
	}
}

func TestSniffJSONInvalidFallsBack(t *testing.T) {
	in := "{not valid json"
	if out := Parse("payload", []byte(in)); out != in {
		t.Fatalf("invalid JSON should pass through raw, got %q", out)
	}
}
