package main

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"clinparse/internal/config"
	"clinparse/internal/extract"
	"clinparse/internal/models"
	"clinparse/internal/normalize"
	"clinparse/internal/prompt"
	"clinparse/internal/providers"
	"clinparse/internal/storage"
	"clinparse/internal/util"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()

	log := newLogger(cfg)
	ctx := context.Background()

	manager, err := providers.NewManager(cfg.LLMProviders)
	if err != nil {
		log.Fatal().Err(err).Msg("provider setup failed")
	}

	var audit *storage.FallbackAuditRepo
	if cfg.PostgresURL != "" {
		db, err := storage.NewDB(ctx, cfg.PostgresURL)
		if err != nil {
			log.Fatal().Err(err).Msg("postgres connection failed")
		}
		defer db.Close()
		audit = storage.NewFallbackAuditRepo(db)
	}

	files, err := loadDocuments(log, cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("document loading failed")
	}
	if len(files) == 0 {
		log.Fatal().Str("dir", cfg.DataDir).Msg("no readable documents found")
	}

	pipeline := extract.NewPipeline(extract.Default(), extract.Options{
		Logger:          log,
		Provider:        fallbackProvider(manager),
		Audit:           audit,
		Workers:         cfg.Workers,
		FallbackTimeout: time.Duration(cfg.FallbackTimeoutSecs) * time.Second,
	})

	patient, err := pipeline.ExtractPatientData(ctx, files)
	if err != nil {
		log.Fatal().Err(err).Msg("patient extraction failed")
	}
	clinical, err := pipeline.ExtractClinicalData(ctx, files)
	if err != nil {
		log.Fatal().Err(err).Msg("clinical extraction failed")
	}

	if err := util.EnsureDir(cfg.OutDir); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.OutDir).Msg("output dir setup failed")
	}
	if err := util.WriteJSONAtomic(filepath.Join(cfg.OutDir, "patient.json"), patient); err != nil {
		log.Fatal().Err(err).Msg("writing patient.json failed")
	}
	if err := util.WriteJSONAtomic(filepath.Join(cfg.OutDir, "clinical.json"), clinical); err != nil {
		log.Fatal().Err(err).Msg("writing clinical.json failed")
	}
	log.Info().Str("out", cfg.OutDir).Int("files", len(files)).Msg("extraction artifacts written")

	if cfg.Question != "" {
		answerQuestion(ctx, log, cfg, files, patient, fallbackProvider(manager))
	}
}

// answerQuestion runs one grounded question over the loaded documents and
// writes the reply next to the extraction artifacts.
func answerQuestion(ctx context.Context, log zerolog.Logger, cfg config.Config, files map[string]string, patient models.PatientRecord, provider providers.CompletionProvider) {
	order := make([]string, 0, len(files))
	for name := range files {
		order = append(order, name)
	}
	sort.Strings(order)

	req := providers.CompletionRequest{
		Operation: "answer_question",
		Prompt: prompt.BuildAnswerPrompt(
			prompt.FormatDocuments(files, order),
			prompt.FormatPatientSummary(patient),
			cfg.Question,
		),
	}
	callCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.FallbackTimeoutSecs)*time.Second)
	defer cancel()
	resp, info, err := provider.Complete(callCtx, req)
	if err != nil {
		log.Error().Err(err).Str("provider", info.Name).Msg("question answering failed")
		return
	}
	answer := map[string]string{
		"question": cfg.Question,
		"answer":   resp.Text,
		"provider": info.Name,
		"model":    info.Model,
	}
	if err := util.WriteJSONAtomic(filepath.Join(cfg.OutDir, "answer.json"), answer); err != nil {
		log.Error().Err(err).Msg("writing answer.json failed")
		return
	}
	log.Info().Str("provider", info.Name).Msg("answer written")
}

func newLogger(cfg config.Config) zerolog.Logger {
	if cfg.PrettyLog {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// fallbackProvider picks the first non-mock provider when one is
// configured, otherwise the mock keeps the pipeline runnable offline.
func fallbackProvider(m *providers.Manager) providers.CompletionProvider {
	order := m.PreferredOrder()
	if len(order) == 0 {
		return m.First()
	}
	p, _ := m.ByIndex(order[0])
	return p
}

// loadDocuments reads every regular file in dir in sorted name order and
// normalizes it to plain text. Unreadable or empty files are skipped with
// a warning rather than failing the whole run.
func loadDocuments(log zerolog.Logger, dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	files := make(map[string]string, len(names))
	for _, name := range names {
		raw, err := os.ReadFile(util.SafeJoin(dir, name))
		if err != nil {
			log.Warn().Err(err).Str("file", name).Msg("skipping unreadable file")
			continue
		}
		text := normalize.Parse(name, raw)
		if strings.TrimSpace(text) == "" {
			log.Warn().Str("file", name).Msg("skipping empty document")
			continue
		}
		files[name] = text
	}
	return files, nil
}
