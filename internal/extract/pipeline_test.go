package extract

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"clinparse/internal/models"
	"clinparse/internal/providers"
)

func testPipeline(p providers.CompletionProvider) *Pipeline {
	return NewPipeline(Default(), Options{Logger: zerolog.Nop(), Provider: p})
}

func TestPipelineOBXRoundTrip(t *testing.T) {
	files := map[string]string{
		"visit.hl7": "MSH|^~\\&|LAB|HOSP\nOBX|1|NM|Glucose|95|mg/dL|70-100|H||F\n",
	}
	data, err := testPipeline(nil).ExtractClinicalData(context.Background(), files)
	require.NoError(t, err)

	var glucose *models.LabResult
	for i := range data.Labs {
		if data.Labs[i].TestName == "Glucose" {
			glucose = &data.Labs[i]
		}
	}
	require.NotNil(t, glucose, "glucose must survive the round trip")
	require.Equal(t, "95", glucose.Value)
	require.Equal(t, "mg/dL", glucose.Units)
	require.Equal(t, "visit.hl7", glucose.SourceFile)
	require.False(t, glucose.IsAbnormal, "segment results carry no extracted range")
	require.NotEqual(t, "", glucose.ReferenceRange, "standards table must fill the missing range")
}

func TestPipelineMergeDeterministic(t *testing.T) {
	files := map[string]string{
		"b_later.txt": "Patient Name: John Roe\nGender: Male\n",
		"a_first.txt": "Patient Name: Jane Doe\n",
	}
	p := testPipeline(nil)

	first, err := p.ExtractPatientData(context.Background(), files)
	require.NoError(t, err)
	require.NotNil(t, first.Name)
	require.Equal(t, "Jane Doe", *first.Name, "sorted filename order decides conflicts")
	require.NotNil(t, first.Gender)
	require.Equal(t, "Male", *first.Gender, "later files fill gaps")

	for i := 0; i < 5; i++ {
		again, err := p.ExtractPatientData(context.Background(), files)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestPipelineSummaryCounts(t *testing.T) {
	files := map[string]string{
		"note.txt": "Admitted on 2024-03-01 for chest pain\n" +
			"Medication: Aspirin 81mg\n" +
			"CRITICAL: Potassium 7.2 mmol/L 3.5-5.0\n",
	}
	data, err := testPipeline(nil).ExtractClinicalData(context.Background(), files)
	require.NoError(t, err)

	require.Equal(t, len(data.Events), data.Summary.TotalEvents)
	require.Equal(t, len(data.Labs), data.Summary.TotalLabs)
	require.Equal(t, len(data.Medications), data.Summary.TotalMedications)
	require.Equal(t, len(data.RedFlags), data.Summary.TotalRedFlags)

	abnormal := 0
	for _, lab := range data.Labs {
		if lab.IsAbnormal {
			abnormal++
		}
	}
	require.Equal(t, abnormal, data.Summary.AbnormalLabs)
	require.GreaterOrEqual(t, data.Summary.TotalRedFlags, 1)
	require.Contains(t, data.Sections, "note.txt")
}

func TestPipelineNoFallbackWhenPatternsHit(t *testing.T) {
	calls := 0
	fake := completionFunc(func(ctx context.Context, req providers.CompletionRequest) (providers.CompletionResponse, providers.ProviderInfo, error) {
		calls++
		return providers.CompletionResponse{Text: `{"name": "Wrong Person", "age": 99, "date_of_birth": null, "gender": null}`}, providers.ProviderInfo{Name: "fake"}, nil
	})
	files := map[string]string{"a.txt": "Patient Name: Alice Smith\nAge: 45\n"}

	rec, err := testPipeline(fake).ExtractPatientData(context.Background(), files)
	require.NoError(t, err)
	require.Equal(t, 0, calls, "fallback must not run when patterns succeed")
	require.NotNil(t, rec.Name)
	require.Equal(t, "Alice Smith", *rec.Name)
	require.NotNil(t, rec.Age)
	require.Equal(t, 45, *rec.Age)
}

func TestPipelineFallbackFillsEmptyRecord(t *testing.T) {
	fake := completionFunc(func(ctx context.Context, req providers.CompletionRequest) (providers.CompletionResponse, providers.ProviderInfo, error) {
		return providers.CompletionResponse{Text: `{"name": "Maria Garcia", "age": 62, "date_of_birth": "1962-04-20", "gender": "Female"}`}, providers.ProviderInfo{Name: "fake"}, nil
	})
	files := map[string]string{"scan.txt": "illegible scan output with no demographics\n"}

	rec, err := testPipeline(fake).ExtractPatientData(context.Background(), files)
	require.NoError(t, err)
	require.NotNil(t, rec.Name)
	require.Equal(t, "Maria Garcia", *rec.Name)
	require.NotNil(t, rec.Age)
	require.Equal(t, 62, *rec.Age)
	require.NotNil(t, rec.DateOfBirth)
	require.Equal(t, "1962-04-20", *rec.DateOfBirth)
}

func TestPipelineFallbackMockStaysEmpty(t *testing.T) {
	files := map[string]string{"scan.txt": "illegible scan output with no demographics\n"}

	rec, err := testPipeline(providers.NewMockProvider()).ExtractPatientData(context.Background(), files)
	require.NoError(t, err)
	require.Nil(t, rec.Name)
	require.Nil(t, rec.Age)
	require.Nil(t, rec.Gender)
}

type completionFunc func(ctx context.Context, req providers.CompletionRequest) (providers.CompletionResponse, providers.ProviderInfo, error)

func (f completionFunc) Complete(ctx context.Context, req providers.CompletionRequest) (providers.CompletionResponse, providers.ProviderInfo, error) {
	return f(ctx, req)
}
