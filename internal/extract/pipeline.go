package extract

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"clinparse/internal/models"
	"clinparse/internal/providers"
	"clinparse/internal/refdata"
	"clinparse/internal/storage"
	"clinparse/internal/util"
)

// Pipeline runs per-file extraction concurrently and merges the results in
// sorted filename order, so the same input set always produces the same
// output.
type Pipeline struct {
	cfg             Config
	log             zerolog.Logger
	provider        providers.CompletionProvider
	audit           *storage.FallbackAuditRepo
	workers         int
	fallbackTimeout time.Duration
}

type Options struct {
	Logger zerolog.Logger
	// Provider answers demographics fallback calls; nil disables fallback.
	Provider providers.CompletionProvider
	// Audit records fallback calls when set.
	Audit           *storage.FallbackAuditRepo
	Workers         int
	FallbackTimeout time.Duration
}

func NewPipeline(cfg Config, opts Options) *Pipeline {
	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}
	timeout := opts.FallbackTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Pipeline{
		cfg:             cfg,
		log:             opts.Logger,
		provider:        opts.Provider,
		audit:           opts.Audit,
		workers:         workers,
		fallbackTimeout: timeout,
	}
}

type fileResult struct {
	events   []models.ClinicalEvent
	labs     []models.LabResult
	meds     []models.Medication
	flags    []models.RedFlag
	sections map[string]string
	patient  models.PatientRecord
}

func (p *Pipeline) extractFiles(ctx context.Context, files map[string]string) ([]string, []fileResult, error) {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]fileResult, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			content := files[name]
			res := fileResult{
				events:   Events(p.cfg, content, name),
				labs:     Labs(p.cfg, content, name),
				meds:     Medications(p.cfg, content, name),
				flags:    RedFlags(p.cfg, content, name),
				sections: Sections(p.cfg, content),
				patient:  Patient(p.cfg, content),
			}
			if NeedsFallback(res.patient) && p.provider != nil {
				res.patient = p.fallbackDemographics(gctx, name, content, res.patient)
			}
			results[i] = res
			p.log.Debug().
				Str("file", name).
				Int("events", len(res.events)).
				Int("labs", len(res.labs)).
				Int("medications", len(res.meds)).
				Int("red_flags", len(res.flags)).
				Msg("file extracted")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return names, results, nil
}

// fallbackDemographics asks the configured model for demographics when the
// patterns found nothing, re-validating every returned field before use.
func (p *Pipeline) fallbackDemographics(ctx context.Context, name, content string, rec models.PatientRecord) models.PatientRecord {
	callCtx, cancel := context.WithTimeout(ctx, p.fallbackTimeout)
	defer cancel()

	req := providers.CompletionRequest{
		Operation: "extract_demographics",
		Prompt:    BuildDemographicsPrompt(BoundedSample(p.cfg, content)),
	}
	resp, info, err := p.provider.Complete(callCtx, req)

	var parsed models.PatientRecord
	if err == nil {
		parsed, err = ParseDemographicsResponse(resp.Text)
	}
	p.auditFallback(name, content, info, err)
	if err != nil {
		p.log.Warn().Err(err).Str("file", name).Str("provider", info.Name).Msg("demographics fallback failed")
		return rec
	}

	if rec.Name == nil {
		rec.Name = parsed.Name
	}
	if rec.Age == nil {
		rec.Age = parsed.Age
	}
	if rec.DateOfBirth == nil {
		rec.DateOfBirth = parsed.DateOfBirth
	}
	if rec.Gender == nil {
		rec.Gender = parsed.Gender
	}
	return rec
}

func (p *Pipeline) auditFallback(name, content string, info providers.ProviderInfo, callErr error) {
	if p.audit == nil {
		return
	}
	status := "ok"
	errType := ""
	if callErr != nil {
		status = "error"
		errType = string(providers.ClassifyError(callErr))
	}
	rec := storage.FallbackCallRecord{
		CallID:       uuid.NewString(),
		SourceFile:   name,
		DocumentID:   util.SHA256Hex([]byte(content)),
		ProviderName: info.Name,
		Model:        info.Model,
		Status:       status,
		ErrorType:    errType,
	}
	auditCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.audit.Insert(auditCtx, rec); err != nil {
		p.log.Warn().Err(err).Str("file", name).Msg("fallback audit insert failed")
	}
}

// ExtractClinicalData runs the full extraction over a set of normalized
// files keyed by filename and merges everything into one ClinicalData.
func (p *Pipeline) ExtractClinicalData(ctx context.Context, files map[string]string) (models.ClinicalData, error) {
	names, results, err := p.extractFiles(ctx, files)
	if err != nil {
		return models.ClinicalData{}, err
	}

	data := models.ClinicalData{Sections: make(map[string]map[string]string, len(names))}
	records := make([]models.PatientRecord, 0, len(names))
	for i, name := range names {
		res := results[i]
		data.Events = append(data.Events, res.events...)
		data.Labs = append(data.Labs, res.labs...)
		data.Medications = append(data.Medications, res.meds...)
		data.RedFlags = append(data.RedFlags, res.flags...)
		data.Sections[name] = res.sections
		records = append(records, res.patient)
	}
	data.PatientData = MergePatients(records)

	sort.SliceStable(data.Events, func(i, j int) bool { return data.Events[i].Date < data.Events[j].Date })
	sort.SliceStable(data.Medications, func(i, j int) bool { return data.Medications[i].StartDate < data.Medications[j].StartDate })

	p.enrichLabs(data.Labs, data.PatientData.Gender)

	data.Summary = models.Summary{
		TotalEvents:      len(data.Events),
		TotalLabs:        len(data.Labs),
		TotalMedications: len(data.Medications),
		TotalRedFlags:    len(data.RedFlags),
	}
	for _, lab := range data.Labs {
		if lab.IsAbnormal {
			data.Summary.AbnormalLabs++
		}
	}

	p.log.Info().
		Int("files", len(names)).
		Int("events", data.Summary.TotalEvents).
		Int("labs", data.Summary.TotalLabs).
		Int("medications", data.Summary.TotalMedications).
		Int("red_flags", data.Summary.TotalRedFlags).
		Msg("clinical extraction complete")
	return data, nil
}

// enrichLabs fills missing reference ranges and units from the built-in
// standards table. Extracted values are never overwritten.
func (p *Pipeline) enrichLabs(labs []models.LabResult, gender *string) {
	g := ""
	if gender != nil {
		g = *gender
	}
	for i := range labs {
		if labs[i].ReferenceRange != "" && labs[i].ReferenceRange != models.NotSpecified {
			continue
		}
		ref, ok := refdata.LabReference(labs[i].TestName, g)
		if !ok {
			continue
		}
		labs[i].ReferenceRange = ref.Normal
		if labs[i].Units == "" && ref.Units != refdata.NotAvailable {
			labs[i].Units = ref.Units
		}
	}
}

// ExtractPatientData runs only the demographics side of the pipeline.
func (p *Pipeline) ExtractPatientData(ctx context.Context, files map[string]string) (models.PatientRecord, error) {
	_, results, err := p.extractFiles(ctx, files)
	if err != nil {
		return models.PatientRecord{}, err
	}
	records := make([]models.PatientRecord, 0, len(results))
	for _, res := range results {
		records = append(records, res.patient)
	}
	return MergePatients(records), nil
}
