package config

import (
	"os"
	"strconv"
)

type Config struct {
	DataDir             string
	OutDir              string
	LLMProviders        string
	FallbackTimeoutSecs int
	Workers             int
	PostgresURL         string
	PrettyLog           bool
	// Question, when set, asks the configured provider one grounded
	// question over the loaded documents after extraction.
	Question string
}

func Load() Config {
	return Config{
		DataDir:             getenv("CLINPARSE_DATA_DIR", "./data"),
		OutDir:              getenv("CLINPARSE_OUT_DIR", "./out"),
		LLMProviders:        getenv("CLINPARSE_LLM_PROVIDERS", "mock"),
		FallbackTimeoutSecs: getenvInt("CLINPARSE_FALLBACK_TIMEOUT_SECONDS", 30),
		Workers:             getenvInt("CLINPARSE_WORKERS", 4),
		PostgresURL:         getenv("CLINPARSE_POSTGRES_URL", ""),
		PrettyLog:           getenvBool("CLINPARSE_PRETTY_LOG", false),
		Question:            getenv("CLINPARSE_QUESTION", ""),
	}
}

func getenv(k, fallback string) string {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	return v
}

func getenvInt(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvBool(k string, fallback bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
