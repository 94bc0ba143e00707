package goGuard

import (
	"context"
	"time"
)

// Version returns the durable lifecycle record.
func (e *Engine) Version(ctx context.Context) (Lifecycle, error) {
	rec, err := e.loadLifecycle(ctx)
	if err != nil {
		return Lifecycle{}, err
	}
	return *rec, nil
}

// VersionText returns the lifecycle record rendered as a single line, e.g.
// "v0.1.15,build_v24,schema_v3,1712345678.000000000".
func (e *Engine) VersionText(ctx context.Context) (string, error) {
	rec, err := e.loadLifecycle(ctx)
	if err != nil {
		return "", err
	}
	return rec.String(), nil
}

// OnUpgrade records a deployment in the lifecycle record. Call it once from
// the post-upgrade hook of the embedding service. The patch version always
// advances unless a minor or major bump supersedes it; a minor bump resets
// patch, a major bump resets minor and patch. schemaBump increments the
// stored-schema version independently.
func (e *Engine) OnUpgrade(ctx context.Context, schemaBump, majorBump, minorBump bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, err := e.loadLifecycle(ctx)
	if err != nil {
		return err
	}

	if schemaBump {
		rec.SchemaVersion++
	}
	rec.VersionPatch++
	if minorBump {
		rec.VersionMinor++
		rec.VersionPatch = 0
	}
	if majorBump {
		rec.VersionMajor++
		rec.VersionMinor = 0
		rec.VersionPatch = 0
	}
	rec.LastUpgraded = time.Now().UnixNano()
	rec.BuildVersion = e.config.Lifecycle.BuildVersion

	if err := e.commitLifecycle(ctx, rec); err != nil {
		e.emitAudit(ctx, auditEventUpgrade, false, CallerFromContext(ctx), err, nil)
		return err
	}

	e.emitAudit(ctx, auditEventUpgrade, true, CallerFromContext(ctx), nil, func() map[string]string {
		return map[string]string{"version": rec.String()}
	})
	return nil
}
