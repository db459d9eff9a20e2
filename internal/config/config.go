// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load layers file/env on top.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DatasetPath locates the reference name table (CSV with header).
	DatasetPath string `koanf:"dataset_path"`

	// DBPath locates the SQLite username database.
	DBPath string `koanf:"db_path"`

	// TopK sets the per-column top-k count used during resolution.
	TopK int `koanf:"top_k"`

	// CacheSize bounds the matcher's memoization cache.
	CacheSize int `koanf:"cache_size"`

	// ResolveMethod names the similarity metric used by resolution:
	// levenshtein, damerau_levenshtein, or jaro_winkler.
	ResolveMethod string `koanf:"resolve_method"`

	// MinCandidates and MaxCandidates bound the generated candidate set.
	MinCandidates int `koanf:"min_candidates"`
	MaxCandidates int `koanf:"max_candidates"`

	// SuggestionCount sets how many usernames a suggestion returns.
	SuggestionCount int `koanf:"suggestion_count"`

	// LLMBaseURL points at an OpenAI-compatible endpoint; empty uses the
	// SDK default. LLMModel names the chat model.
	LLMBaseURL string `koanf:"llm_base_url"`
	LLMModel   string `koanf:"llm_model"`

	// WorkerCount sets the number of batch pipeline workers.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the in-memory batch job queue.
	QueueSize int `koanf:"queue_size"`

	// DedupeSize bounds the batch job id tracker.
	DedupeSize int `koanf:"dedupe_size"`

	// SeedUsernames sets how many usernames a fresh database is seeded with.
	SeedUsernames int `koanf:"seed_usernames"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":9080",
		DatasetPath:     "data/names.csv",
		DBPath:          "usernames.db",
		TopK:            3,
		CacheSize:       1024,
		ResolveMethod:   "levenshtein",
		MinCandidates:   10,
		MaxCandidates:   12,
		SuggestionCount: 3,
		LLMModel:        "gpt-4.1-nano",
		WorkerCount:     runtime.NumCPU() * 2,
		QueueSize:       10_000,
		DedupeSize:      50_000,
		SeedUsernames:   200,
	}
}
