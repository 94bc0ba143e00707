package goGuard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MrEthical07/goGuard/rolebits"
	"github.com/MrEthical07/goGuard/store"
	"github.com/MrEthical07/goGuard/token"
)

// Engine defines a public type used by goGuard APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config Config

	// mu serializes every read-modify-write commit on the durable records.
	// Nothing may block between loading a record and committing its
	// mutation except the commit write itself.
	mu sync.Mutex

	accessCell    store.Cell
	flagsCell     store.Cell
	lifecycleCell store.Cell
	rolesMap      store.Map
	guardMap      store.Map

	audit   *auditDispatcher
	metrics *Metrics
	tokens  *token.Manager
}

// Close releases the engine's background resources. It drains and stops the
// audit dispatcher; durable state is left untouched.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// TokenManager returns the identity-token manager built from the Token
// configuration, for use with middleware.Caller. It is nil when no key
// material was configured.
func (e *Engine) TokenManager() *token.Manager {
	if e == nil {
		return nil
	}
	return e.tokens
}

// AuditDropped returns the number of audit events dropped under dispatcher
// backpressure.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot returns a point-in-time copy of all engine counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

// StoragePageEnd returns the storage-page boundary recorded at first boot.
// The value is set through configuration and shall remain constant across
// versions.
func (e *Engine) StoragePageEnd(ctx context.Context) (uint64, error) {
	flags, err := e.loadFlags(ctx)
	if err != nil {
		return 0, err
	}
	return flags.StoragePageEnd, nil
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

func (e *Engine) metricObserve(id MetricID, d time.Duration) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Observe(id, d)
}

/*
====================================
DURABLE RECORD ACCESS
====================================
*/

func (e *Engine) loadAccess(ctx context.Context) (*accessRecord, error) {
	data, ok, err := e.accessCell.Get(ctx)
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	if !ok {
		return nil, ErrEngineNotReady
	}

	var rec accessRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode access record: %w", err)
	}
	return &rec, nil
}

func (e *Engine) commitAccess(ctx context.Context, rec *accessRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode access record: %w", err)
	}
	if err := e.accessCell.Set(ctx, data); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (e *Engine) loadFlags(ctx context.Context) (*globalFlags, error) {
	data, ok, err := e.flagsCell.Get(ctx)
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	if !ok {
		return nil, ErrEngineNotReady
	}

	var flags globalFlags
	if err := json.Unmarshal(data, &flags); err != nil {
		return nil, fmt.Errorf("decode flags record: %w", err)
	}
	return &flags, nil
}

func (e *Engine) commitFlags(ctx context.Context, flags *globalFlags) error {
	data, err := json.Marshal(flags)
	if err != nil {
		return fmt.Errorf("encode flags record: %w", err)
	}
	if err := e.flagsCell.Set(ctx, data); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (e *Engine) loadLifecycle(ctx context.Context) (*Lifecycle, error) {
	data, ok, err := e.lifecycleCell.Get(ctx)
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	if !ok {
		return nil, ErrEngineNotReady
	}

	var rec Lifecycle
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode lifecycle record: %w", err)
	}
	return &rec, nil
}

func (e *Engine) commitLifecycle(ctx context.Context, rec *Lifecycle) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode lifecycle record: %w", err)
	}
	if err := e.lifecycleCell.Set(ctx, data); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

// maskOf returns the persisted role mask for an identity. Absence of an
// entry is equivalent to the empty mask.
func (e *Engine) maskOf(ctx context.Context, id Identity) (rolebits.Mask, error) {
	data, ok, err := e.rolesMap.Get(ctx, string(id))
	if err != nil {
		return 0, errors.Join(ErrStoreUnavailable, err)
	}
	if !ok {
		return 0, nil
	}

	mask, err := rolebits.DecodeMask(data)
	if err != nil {
		return 0, fmt.Errorf("decode role mask for %q: %w", id, err)
	}
	return mask, nil
}

func (e *Engine) commitMask(ctx context.Context, id Identity, mask rolebits.Mask) error {
	if err := e.rolesMap.Insert(ctx, string(id), rolebits.EncodeMask(mask)); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}
