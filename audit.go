package goGuard

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	auditEventOwnershipTransfer  = "ownership_transfer"
	auditEventOwnershipAccepted  = "ownership_accepted"
	auditEventOwnershipRenounced = "ownership_renounced"
	auditEventAdminGrant         = "admin_grant"
	auditEventAdminRevoke        = "admin_revoke"
	auditEventAdminRenounce      = "admin_renounce"
	auditEventRolesGrant         = "roles_grant"
	auditEventRolesRevoke        = "roles_revoke"
	auditEventRoleAdminsSet      = "role_admins_set"
	auditEventRoleAdminsRevoke   = "role_admins_revoke"
	auditEventPause              = "pause"
	auditEventResume             = "resume"
	auditEventReentrancyBlocked  = "reentrancy_blocked"
	auditEventGuardReleaseFailed = "guard_release_failed"
	auditEventUpgrade            = "upgrade"
)

// AuditEvent records one guard-engine operation for external consumption.
type AuditEvent struct {
	EventID   string            `json:"event_id"`
	Timestamp time.Time         `json:"timestamp"`
	EventType string            `json:"event_type"`
	Caller    string            `json:"caller,omitempty"`
	Target    string            `json:"target,omitempty"`
	Success   bool              `json:"success"`
	Error     string            `json:"error,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// AuditSink receives audit events from the dispatcher goroutine.
type AuditSink interface {
	Emit(ctx context.Context, event AuditEvent)
}

// NoOpSink discards all events.
type NoOpSink struct{}

// Emit describes the emit operation and its observable behavior.
func (NoOpSink) Emit(context.Context, AuditEvent) {}

// ChannelSink forwards events to a channel for in-process consumers.
type ChannelSink struct {
	events chan AuditEvent
}

// NewChannelSink creates a ChannelSink with the given buffer.
func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{
		events: make(chan AuditEvent, buffer),
	}
}

// Emit describes the emit operation and its observable behavior.
func (s *ChannelSink) Emit(ctx context.Context, event AuditEvent) {
	select {
	case s.events <- event:
	case <-ctx.Done():
	}
}

// Events returns the receive side of the sink.
func (s *ChannelSink) Events() <-chan AuditEvent {
	return s.events
}

// JSONWriterSink writes one JSON object per line to an io.Writer.
type JSONWriterSink struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewJSONWriterSink creates a JSONWriterSink over w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return &JSONWriterSink{
		writer: w,
	}
}

// Emit describes the emit operation and its observable behavior.
func (s *JSONWriterSink) Emit(ctx context.Context, event AuditEvent) {
	if s == nil || s.writer == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = s.writer.Write(data)
	_, _ = s.writer.Write([]byte("\n"))
}

// emitAudit assembles and dispatches one event. metadataFn is only invoked
// when auditing is enabled.
func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	target Identity,
	opErr error,
	metadataFn func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	event := AuditEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		Caller:    string(CallerFromContext(ctx)),
		Target:    string(target),
		Success:   success,
	}
	if opErr != nil {
		event.Error = opErr.Error()
	}
	if metadataFn != nil {
		event.Metadata = metadataFn()
	}

	e.audit.Emit(ctx, event)
}
