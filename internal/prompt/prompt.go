// Package prompt builds the model-facing text for question answering over
// extracted documents. All prompts pin the model to the supplied sources.
package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"clinparse/internal/models"
)

// FormatDocuments renders normalized files as labeled source blocks so a
// model answer can cite where a fact came from.
func FormatDocuments(files map[string]string, order []string) string {
	blocks := make([]string, 0, len(order)+1)
	if len(order) > 1 {
		blocks = append(blocks, fmt.Sprintf("The following %d documents belong to one patient. Treat them as a single record.", len(order)))
	}
	for _, name := range order {
		content, ok := files[name]
		if !ok {
			continue
		}
		blocks = append(blocks, fmt.Sprintf("[Source: %s]\n%s", name, content))
	}
	return strings.Join(blocks, "\n\n---\n\n")
}

// FormatPatientSummary renders extracted demographics as a prompt preamble.
// Missing fields read "Not found in files" so the model never fills gaps.
func FormatPatientSummary(rec models.PatientRecord) string {
	return strings.Join([]string{
		"Patient name: " + orNotFound(rec.Name),
		"Age: " + orNotFoundInt(rec.Age),
		"Gender: " + orNotFound(rec.Gender),
		"Date of birth: " + orNotFound(rec.DateOfBirth),
	}, "\n")
}

func orNotFound(s *string) string {
	if s == nil {
		return "Not found in files"
	}
	return *s
}

func orNotFoundInt(n *int) string {
	if n == nil {
		return "Not found in files"
	}
	return strconv.Itoa(*n)
}

// BuildAnswerPrompt produces a grounded question-answering prompt over the
// formatted documents, prefixed with the extracted demographics.
func BuildAnswerPrompt(documents, patientSummary, question string) string {
	return fmt.Sprintf(`You are answering a question about a patient's medical documents.

Extracted demographics:
%s

Rules:
- Answer only from the documents below.
- If the answer is not in the documents, reply exactly: Not found in files.
- Quote values (doses, dates, lab results) verbatim.
- Name the source file for every fact you state.

Documents:
%s

Question: %s`, patientSummary, documents, question)
}
