package goGuard

import (
	"context"
	"errors"
	"time"

	"github.com/MrEthical07/goGuard/store"
	"github.com/MrEthical07/goGuard/token"
	"github.com/redis/go-redis/v9"
)

// Builder defines a public type used by goGuard APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	redis  *redis.Client
	memory bool

	owner     Identity
	auditSink AuditSink

	built bool
}

// New returns a Builder seeded with [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the builder's configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis selects the Redis storage backend.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithMemoryStorage selects the in-process storage backend. State does not
// survive the process; intended for tests and ephemeral embeds.
func (b *Builder) WithMemoryStorage() *Builder {
	b.memory = true
	return b
}

// WithOwner sets the identity seeded as owner (and sole admin) on first
// boot. Ignored when the access record already exists in storage.
func (b *Builder) WithOwner(owner Identity) *Builder {
	b.owner = owner
	return b
}

// WithAuditSink sets the sink audit events are dispatched to.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled toggles metric collection.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles the guarded-section latency histogram.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build wires the engine and runs the ordered initialization sequence:
// global flags, then access control, then lifecycle, then the audit
// dispatcher. The order is load-bearing and must not change.
//
// On a fresh store the identity from [Builder.WithOwner] is seeded as owner
// and sole admin. On an already-initialized store the owner option is
// ignored, so a restart can never resurrect renounced ownership.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	b.built = true

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.redis == nil && !b.memory {
		return nil, errors.New("redis client required (or WithMemoryStorage)")
	}

	engine := &Engine{
		config:  cfg,
		metrics: NewMetrics(cfg.Metrics),
	}

	// Token manager only exists when key material is supplied; the engine
	// itself never requires one.
	if len(cfg.Token.PrivateKey) > 0 || len(cfg.Token.PublicKey) > 0 {
		method := cfg.Token.SigningMethod
		if method == "" {
			method = "hs256"
		}
		tm, err := token.NewManager(token.Config{
			SigningMethod: token.SigningMethod(method),
			PrivateKey:    cfg.Token.PrivateKey,
			PublicKey:     cfg.Token.PublicKey,
			TTL:           cfg.Token.TTL,
			Issuer:        cfg.Token.Issuer,
		})
		if err != nil {
			return nil, err
		}
		engine.tokens = tm
	}

	if b.memory {
		engine.accessCell = store.NewMemoryCell()
		engine.flagsCell = store.NewMemoryCell()
		engine.lifecycleCell = store.NewMemoryCell()
		engine.rolesMap = store.NewMemoryMap()
		engine.guardMap = store.NewMemoryMap()
	} else {
		prefix := cfg.Storage.KeyPrefix
		engine.accessCell = store.NewRedisCell(b.redis, prefix, "access")
		engine.flagsCell = store.NewRedisCell(b.redis, prefix, "flags")
		engine.lifecycleCell = store.NewRedisCell(b.redis, prefix, "lifecycle")
		engine.rolesMap = store.NewRedisMap(b.redis, prefix, "roles")
		engine.guardMap = store.NewRedisMap(b.redis, prefix, "reentrancy")
	}

	ctx := context.Background()

	if err := engine.initFlags(ctx); err != nil {
		return nil, err
	}
	if err := engine.initAccess(ctx, b.owner); err != nil {
		return nil, err
	}
	if err := engine.initLifecycle(ctx); err != nil {
		return nil, err
	}

	engine.audit = newAuditDispatcher(cfg.Audit, b.auditSink)
	if err := engine.markAuditInitialized(ctx); err != nil {
		engine.Close()
		return nil, err
	}

	return engine, nil
}

func (e *Engine) initFlags(ctx context.Context) error {
	_, ok, err := e.flagsCell.Get(ctx)
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	if ok {
		return nil
	}

	return e.commitFlags(ctx, &globalFlags{
		StoragePageEnd: e.config.Storage.PageEnd,
	})
}

func (e *Engine) initAccess(ctx context.Context, owner Identity) error {
	_, ok, err := e.accessCell.Get(ctx)
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	if ok {
		// Never re-seed: ownership state in storage is authoritative.
		return nil
	}

	if owner.IsZero() {
		return errors.New("initial owner required on first boot")
	}
	if owner.IsAnonymous() {
		return ErrAnonymousIdentity
	}

	return e.commitAccess(ctx, &accessRecord{
		Owner:  owner,
		Admins: []Identity{owner},
	})
}

func (e *Engine) initLifecycle(ctx context.Context) error {
	_, ok, err := e.lifecycleCell.Get(ctx)
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	if ok {
		return nil
	}

	return e.commitLifecycle(ctx, &Lifecycle{
		LastUpgraded: time.Now().UnixNano(),
		BuildVersion: e.config.Lifecycle.BuildVersion,
	})
}

func (e *Engine) markAuditInitialized(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	flags, err := e.loadFlags(ctx)
	if err != nil {
		return err
	}
	if flags.AuditInitialized {
		return nil
	}

	flags.AuditInitialized = true
	return e.commitFlags(ctx, flags)
}
