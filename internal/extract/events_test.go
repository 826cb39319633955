package extract

import (
	"testing"

	"clinparse/internal/models"
)

func TestEventsAdmission(t *testing.T) {
	content := "2024-03-01\nPatient admitted with chest pain\n"
	events := Events(Default(), content, "note.txt")

	if len(events) != 1 {
		t.Fatalf("expected one event, got %+v", events)
	}
	if events[0].Type != "admission" {
		t.Fatalf("type = %q", events[0].Type)
	}
	if events[0].Date != "2024-03-01" {
		t.Fatalf("date = %q", events[0].Date)
	}
	if events[0].SourceFile != "note.txt" {
		t.Fatalf("source = %q", events[0].SourceFile)
	}
}

func TestEventsDateFormats(t *testing.T) {
	for _, tc := range []struct {
		line string
		want string
	}{
		{"Admitted on 2024-03-01", "2024-03-01"},
		{"Admitted on 03/01/2024", "2024-03-01"},
		{"Admitted on 2024/03/01", "2024-03-01"},
	} {
		events := Events(Default(), tc.line+"\n", "note.txt")
		if len(events) != 1 || events[0].Date != tc.want {
			t.Fatalf("%q: got %+v", tc.line, events)
		}
	}
}

func TestEventsUndatedUsesSentinel(t *testing.T) {
	events := Events(Default(), "Patient admitted overnight\n", "note.txt")
	if len(events) != 1 || events[0].Date != models.NotSpecified {
		t.Fatalf("undated event must use sentinel, got %+v", events)
	}
}

func TestEventsLabLineNeedsValue(t *testing.T) {
	events := Events(Default(), "laboratory workup pending\n", "note.txt")
	for _, ev := range events {
		if ev.Type == "lab" {
			t.Fatalf("lab line without values must not yield a lab event: %+v", ev)
		}
	}

	events = Events(Default(), "laboratory glucose was 95\n", "note.txt")
	found := false
	for _, ev := range events {
		if ev.Type == "lab" {
			found = true
		}
	}
	if !found {
		t.Fatalf("lab line with a value must yield a lab event: %+v", events)
	}
}

func TestEventsSyntheticLabPanel(t *testing.T) {
	content := "Page 1 of 2\nCOMPLETE BLOOD COUNT\nHemoglobin 14.2 g/dL 13-17\n"
	events := Events(Default(), content, "cbc.pdf")

	found := false
	for _, ev := range events {
		if ev.Description == "Laboratory test results" {
			found = true
		}
	}
	if !found {
		t.Fatalf("paged panel report must yield the synthetic lab event: %+v", events)
	}
}

func TestNormalizeDateRejectsPartial(t *testing.T) {
	if got, ok := normalizeDate("2024-13-40"); ok {
		t.Fatalf("invalid date must not normalize, got %q", got)
	}
	if got, ok := normalizeDate("2024-03-01"); !ok || got != "2024-03-01" {
		t.Fatalf("got %q", got)
	}
}
