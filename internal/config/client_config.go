package config

import (
	"flag"
	"time"
)

// ClientConfig holds settings of the watcher CLI. Flags override environment
// variables.
type ClientConfig struct {
	// BaseURL of the translation server.
	// Env: CLIENT_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// APIKey exchanged for a bearer token when the server requires
	// authentication on the jobs API. Empty means no authentication.
	// Env: CLIENT_API_KEY
	APIKey string `env:"API_KEY"`

	// JobID selects the job to watch. Empty watches the server's legacy
	// startup job via GET /status.
	// Env: CLIENT_JOB_ID
	JobID string `env:"JOB_ID"`

	// Create submits a new translation job and watches it instead of
	// attaching to an existing one. Mutually exclusive with JobID.
	// Env: CLIENT_CREATE
	Create bool `env:"CREATE"`

	// SourceLanguage and TargetLanguage annotate the submitted job when
	// Create is set.
	// Env: CLIENT_SOURCE_LANGUAGE, CLIENT_TARGET_LANGUAGE
	SourceLanguage string `env:"SOURCE_LANGUAGE"`
	TargetLanguage string `env:"TARGET_LANGUAGE"`

	// RequestTimeout bounds each individual HTTP request.
	// Env: CLIENT_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// GetClientConfig assembles the watcher CLI configuration from environment
// variables and command-line flags.
func GetClientConfig() (*ClientConfig, error) {
	cfg := &ClientConfig{}
	if err := parseEnvPrefixed(cfg, "CLIENT_"); err != nil {
		return nil, err
	}

	var baseURL, apiKey, jobID, sourceLang, targetLang string
	var create bool
	var requestTimeout time.Duration

	flag.StringVar(&baseURL, "s", "", "Translation server base URL")
	flag.StringVar(&apiKey, "api-key", "", "API key for the jobs API")
	flag.StringVar(&jobID, "job", "", "Job ID to watch (empty watches the startup job)")
	flag.BoolVar(&create, "create", false, "Submit a new job and watch it")
	flag.StringVar(&sourceLang, "source", "", "Source language of the submitted job")
	flag.StringVar(&targetLang, "target", "", "Target language of the submitted job")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Per-request timeout")
	flag.Parse()

	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if apiKey != "" {
		cfg.APIKey = apiKey
	}
	if jobID != "" {
		cfg.JobID = jobID
	}
	if create {
		cfg.Create = true
	}
	if sourceLang != "" {
		cfg.SourceLanguage = sourceLang
	}
	if targetLang != "" {
		cfg.TargetLanguage = targetLang
	}
	if requestTimeout > 0 {
		cfg.RequestTimeout = requestTimeout
	}

	return cfg, cfg.validate()
}

// validate rejects conflicting watch-target settings.
func (cfg *ClientConfig) validate() error {
	if cfg.Create && cfg.JobID != "" {
		return ErrInvalidClientConfigs
	}
	return nil
}
