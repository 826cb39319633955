package extract

import (
	"strings"
	"testing"
	"unicode/utf8"

	"clinparse/internal/models"
)

func TestNeedsFallback(t *testing.T) {
	if !NeedsFallback(models.PatientRecord{}) {
		t.Fatal("empty record must trigger fallback")
	}
	name := "Alice Smith"
	if NeedsFallback(models.PatientRecord{Name: &name}) {
		t.Fatal("a found name must suppress fallback")
	}
	age := 45
	if NeedsFallback(models.PatientRecord{Age: &age}) {
		t.Fatal("a found age must suppress fallback")
	}
}

func TestBoundedSample(t *testing.T) {
	cfg := Default()
	short := "short document"
	if got := BoundedSample(cfg, short); got != short {
		t.Fatalf("short content must pass through, got %q", got)
	}

	long := strings.Repeat("a", cfg.FallbackSampleHead) + strings.Repeat("b", 5000) + strings.Repeat("c", cfg.FallbackSampleTail)
	sample := BoundedSample(cfg, long)
	if !strings.HasPrefix(sample, "aaa") || !strings.HasSuffix(sample, "ccc") {
		t.Fatal("sample must keep head and tail")
	}
	if strings.Contains(sample, "b") {
		t.Fatal("middle must be elided")
	}
}

func TestBoundedSampleRuneBoundaries(t *testing.T) {
	cfg := Default()
	cfg.FallbackSampleHead = 5
	cfg.FallbackSampleTail = 5

	// Two-byte runes put both cut offsets mid-rune.
	content := strings.Repeat("µ", 40)
	sample := BoundedSample(cfg, content)

	if !utf8.ValidString(sample) {
		t.Fatalf("sample contains invalid UTF-8: %q", sample)
	}
	if !strings.Contains(sample, "\n...\n") {
		t.Fatal("long content must be elided")
	}
}

func TestParseDemographicsResponse(t *testing.T) {
	rec, err := ParseDemographicsResponse(`{"name": "Alice Smith", "age": 45, "date_of_birth": "1980-01-15", "gender": "female"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Name == nil || *rec.Name != "Alice Smith" {
		t.Fatalf("name = %v", rec.Name)
	}
	if rec.Age == nil || *rec.Age != 45 {
		t.Fatalf("age = %v", rec.Age)
	}
	if rec.DateOfBirth == nil || *rec.DateOfBirth != "1980-01-15" {
		t.Fatalf("dob = %v", rec.DateOfBirth)
	}
	if rec.Gender == nil || *rec.Gender != "Female" {
		t.Fatalf("gender = %v", rec.Gender)
	}
}

func TestParseDemographicsResponseCodeFence(t *testing.T) {
	rec, err := ParseDemographicsResponse("```json\n{\"name\": \"Bob Jones\", \"age\": null, \"date_of_birth\": null, \"gender\": null}\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Name == nil || *rec.Name != "Bob Jones" {
		t.Fatalf("name = %v", rec.Name)
	}
	if rec.Age != nil || rec.Gender != nil {
		t.Fatalf("null fields must stay nil: %+v", rec)
	}
}

func TestParseDemographicsResponseRejectsBadFields(t *testing.T) {
	rec, err := ParseDemographicsResponse(`{"name": "X", "age": 900, "date_of_birth": "Jan 15 1980", "gender": "unknown"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Name != nil || rec.Age != nil || rec.DateOfBirth != nil || rec.Gender != nil {
		t.Fatalf("invalid fields must be dropped: %+v", rec)
	}
}

func TestParseDemographicsResponseNotJSON(t *testing.T) {
	if _, err := ParseDemographicsResponse("I could not find any demographics."); err == nil {
		t.Fatal("prose reply must be an error")
	}
}
