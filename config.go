package goGuard

import (
	"errors"
	"strings"
	"time"
)

// Config defines a public type used by goGuard APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Storage   StorageConfig
	Token     TokenConfig
	Audit     AuditConfig
	Metrics   MetricsConfig
	Lifecycle LifecycleConfig
}

/*
====================================
STORAGE CONFIG
====================================
*/

// StorageConfig defines a public type used by goGuard APIs.
//
// StorageConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type StorageConfig struct {
	// KeyPrefix namespaces every durable slot ("<prefix>:cell:access", ...).
	KeyPrefix string
	// PageEnd is the configured storage-page boundary recorded in the global
	// flags record at first boot. It is bookkeeping only; the engine never
	// enforces it.
	PageEnd uint64
}

/*
====================================
TOKEN CONFIG
====================================
*/

// TokenConfig defines a public type used by goGuard APIs.
//
// TokenConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TokenConfig struct {
	SigningMethod string // "hs256" (default) or "ed25519"
	PrivateKey    []byte
	PublicKey     []byte
	TTL           time.Duration
	Issuer        string
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig defines a public type used by goGuard APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by goGuard APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
LIFECYCLE CONFIG
====================================
*/

// LifecycleConfig defines a public type used by goGuard APIs.
//
// LifecycleConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type LifecycleConfig struct {
	// BuildVersion identifies the running build in the lifecycle record. It
	// is recorded as-is on init and on every OnUpgrade.
	BuildVersion uint64
}

func defaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			KeyPrefix: "goguard",
			PageEnd:   64,
		},
		Token: TokenConfig{
			SigningMethod: "hs256",
			TTL:           15 * time.Minute,
		},
		Audit: AuditConfig{
			Enabled:    true,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// DefaultConfig returns the library defaults. Callers mutate the copy and
// pass it to [Builder.WithConfig].
func DefaultConfig() Config {
	return defaultConfig()
}

// Validate checks the configuration for values the engine cannot operate
// with. It is called by [Builder.Build].
func (c Config) Validate() error {
	if strings.TrimSpace(c.Storage.KeyPrefix) == "" {
		return errors.New("storage key prefix required")
	}
	if strings.ContainsAny(c.Storage.KeyPrefix, " \t\n") {
		return errors.New("storage key prefix must not contain whitespace")
	}
	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return errors.New("audit buffer size must not be negative")
	}
	switch c.Token.SigningMethod {
	case "", "hs256", "ed25519":
	default:
		return errors.New("unsupported token signing method")
	}
	if c.Token.TTL < 0 {
		return errors.New("token TTL must not be negative")
	}
	return nil
}

func cloneConfig(c Config) Config {
	out := c
	out.Token.PrivateKey = append([]byte(nil), c.Token.PrivateKey...)
	out.Token.PublicKey = append([]byte(nil), c.Token.PublicKey...)
	return out
}
