package config

import "time"

// Defaults applied to the merged configuration when the corresponding values
// are absent from every source. HTTPAddress keeps the port the published
// client library expects.
const (
	defaultHTTPAddress    = "localhost:5000"
	defaultMinDuration    = "5s"
	defaultMaxDuration    = "30s"
	defaultRunnerInterval = "500ms"
	defaultBatchSize      = 64
	defaultTokenDuration  = "1h"
	defaultTokenIssuer    = "voxlate"
	defaultRedisChannel   = "translation:jobs"
	defaultBrokerQueue    = "translation.jobs"
)

// applyDefaults fills zero-valued fields of the merged config.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.Jobs.MinDuration == 0 {
		cfg.Jobs.MinDuration = mustDuration(defaultMinDuration)
	}
	if cfg.Jobs.MaxDuration == 0 {
		cfg.Jobs.MaxDuration = mustDuration(defaultMaxDuration)
	}
	if cfg.Workers.RunnerInterval == 0 {
		cfg.Workers.RunnerInterval = mustDuration(defaultRunnerInterval)
	}
	if cfg.Workers.BatchSize == 0 {
		cfg.Workers.BatchSize = defaultBatchSize
	}
	if cfg.Auth.TokenDuration == 0 {
		cfg.Auth.TokenDuration = mustDuration(defaultTokenDuration)
	}
	if cfg.Auth.TokenIssuer == "" {
		cfg.Auth.TokenIssuer = defaultTokenIssuer
	}
	if cfg.Storage.Redis.Channel == "" {
		cfg.Storage.Redis.Channel = defaultRedisChannel
	}
	if cfg.Broker.Queue == "" {
		cfg.Broker.Queue = defaultBrokerQueue
	}
}

// mustDuration parses a compile-time constant duration literal.
func mustDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		panic(err)
	}
	return d
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Jobs.ErrorRate < 0 || cfg.Jobs.ErrorRate > 1 {
		return ErrInvalidJobsConfigs
	}

	if cfg.Jobs.MinDuration > cfg.Jobs.MaxDuration {
		return ErrInvalidJobsConfigs
	}

	if cfg.Workers.BatchSize <= 0 || cfg.Workers.RunnerInterval <= 0 {
		return ErrInvalidWorkersConfigs
	}

	if cfg.Storage.DB.DSN != "" && cfg.Storage.DB.SQLitePath != "" {
		return ErrInvalidStorageConfigs
	}

	// auth is all-or-nothing: enabling it requires both keys
	if (cfg.Auth.APIKey == "") != (cfg.Auth.TokenSignKey == "") {
		return ErrInvalidAuthConfigs
	}

	return nil
}
