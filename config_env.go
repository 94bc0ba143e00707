package goGuard

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// envConfig mirrors the tunable subset of [Config] for environment loading.
// Key material is intentionally excluded; supply it in code.
type envConfig struct {
	StorageKeyPrefix string        `envconfig:"STORAGE_KEY_PREFIX"`
	StoragePageEnd   uint64        `envconfig:"STORAGE_PAGE_END"`
	TokenMethod      string        `envconfig:"TOKEN_METHOD"`
	TokenTTL         time.Duration `envconfig:"TOKEN_TTL"`
	TokenIssuer      string        `envconfig:"TOKEN_ISSUER"`
	AuditEnabled     *bool         `envconfig:"AUDIT_ENABLED"`
	AuditBufferSize  int           `envconfig:"AUDIT_BUFFER_SIZE"`
	AuditDropIfFull  *bool         `envconfig:"AUDIT_DROP_IF_FULL"`
	MetricsEnabled   *bool         `envconfig:"METRICS_ENABLED"`
	MetricsLatency   *bool         `envconfig:"METRICS_LATENCY_HISTOGRAMS"`
	BuildVersion     uint64        `envconfig:"BUILD_VERSION"`
}

// ConfigFromEnv returns [DefaultConfig] overridden by GOGUARD_* environment
// variables (GOGUARD_STORAGE_KEY_PREFIX, GOGUARD_TOKEN_TTL, ...).
func ConfigFromEnv() (Config, error) {
	cfg := defaultConfig()

	var env envConfig
	if err := envconfig.Process("goguard", &env); err != nil {
		return Config{}, err
	}

	if env.StorageKeyPrefix != "" {
		cfg.Storage.KeyPrefix = env.StorageKeyPrefix
	}
	if env.StoragePageEnd != 0 {
		cfg.Storage.PageEnd = env.StoragePageEnd
	}
	if env.TokenMethod != "" {
		cfg.Token.SigningMethod = env.TokenMethod
	}
	if env.TokenTTL != 0 {
		cfg.Token.TTL = env.TokenTTL
	}
	if env.TokenIssuer != "" {
		cfg.Token.Issuer = env.TokenIssuer
	}
	if env.AuditEnabled != nil {
		cfg.Audit.Enabled = *env.AuditEnabled
	}
	if env.AuditBufferSize != 0 {
		cfg.Audit.BufferSize = env.AuditBufferSize
	}
	if env.AuditDropIfFull != nil {
		cfg.Audit.DropIfFull = *env.AuditDropIfFull
	}
	if env.MetricsEnabled != nil {
		cfg.Metrics.Enabled = *env.MetricsEnabled
	}
	if env.MetricsLatency != nil {
		cfg.Metrics.EnableLatencyHistograms = *env.MetricsLatency
	}
	if env.BuildVersion != 0 {
		cfg.Lifecycle.BuildVersion = env.BuildVersion
	}

	return cfg, cfg.Validate()
}
