// Package audit records committed writes in the audit_logs table.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
)

// Action represents the type of audit action.
type Action string

// Action constants for audit logging.
const (
	ActionCreate       Action = "CREATE"
	ActionUpdate       Action = "UPDATE"
	ActionDelete       Action = "DELETE"
	ActionStatusChange Action = "STATUS_CHANGE"
)

var actions = map[shared.Action]Action{
	shared.ActionCreated:       ActionCreate,
	shared.ActionUpdated:       ActionUpdate,
	shared.ActionDeleted:       ActionDelete,
	shared.ActionStatusChanged: ActionStatusChange,
}

// tableNames maps entity names to the tables they are stored in.
var tableNames = map[string]string{
	"UomStatus": "uom_status",
	"Uom":       "uom",
}

// LogEntry represents an audit log entry.
type LogEntry struct {
	ID          uuid.UUID
	TableName   string
	RecordID    int64
	Action      Action
	OldData     map[string]any
	NewData     map[string]any
	Changes     map[string]any
	PerformedBy string
	PerformedAt time.Time
	RequestID   string
	IPAddress   string
	UserAgent   string
}

// Logger defines the interface for audit logging.
type Logger interface {
	// Log records an audit entry.
	Log(ctx context.Context, entry *LogEntry) error
}

// EntryFromChange builds the audit entry for a committed change, taking the
// request metadata from ctx.
func EntryFromChange(ctx context.Context, change shared.Change) *LogEntry {
	table, ok := tableNames[change.Entity]
	if !ok {
		table = change.Entity
	}
	action, ok := actions[change.Action]
	if !ok {
		action = Action(change.Action)
	}

	oldData := ToJSON(change.Before)
	newData := ToJSON(change.After)

	return &LogEntry{
		TableName:   table,
		RecordID:    change.RecordID,
		Action:      action,
		OldData:     oldData,
		NewData:     newData,
		Changes:     ComputeChanges(oldData, newData),
		PerformedBy: GetPerformer(ctx),
		RequestID:   GetRequestID(ctx),
		IPAddress:   GetIPAddress(ctx),
		UserAgent:   GetUserAgent(ctx),
	}
}

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	ipAddressKey contextKey = "ip_address"
	userAgentKey contextKey = "user_agent"
	performerKey contextKey = "performer"
)

// WithRequestContext adds request context to the context.
func WithRequestContext(ctx context.Context, requestID, ipAddress, userAgent string) context.Context {
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	ctx = context.WithValue(ctx, ipAddressKey, ipAddress)
	ctx = context.WithValue(ctx, userAgentKey, userAgent)
	return ctx
}

// WithPerformer adds the performer (user) to the context.
func WithPerformer(ctx context.Context, performer string) context.Context {
	return context.WithValue(ctx, performerKey, performer)
}

func stringValue(ctx context.Context, key contextKey) string {
	s, _ := ctx.Value(key).(string)
	return s
}

// GetRequestID retrieves the request ID from context.
func GetRequestID(ctx context.Context) string { return stringValue(ctx, requestIDKey) }

// GetIPAddress retrieves the IP address from context.
func GetIPAddress(ctx context.Context) string { return stringValue(ctx, ipAddressKey) }

// GetUserAgent retrieves the user agent from context.
func GetUserAgent(ctx context.Context) string { return stringValue(ctx, userAgentKey) }

// GetPerformer retrieves the performer from context, "system" when unset.
func GetPerformer(ctx context.Context) string {
	if s := stringValue(ctx, performerKey); s != "" {
		return s
	}
	return "system"
}

// ToJSON converts a snapshot to a JSON object map. It returns nil for nil input.
func ToJSON(data any) map[string]any {
	if data == nil {
		return nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil
	}

	var result map[string]any
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil
	}
	return result
}

// ComputeChanges returns {"field": {"old": x, "new": y}} for every field that
// differs. It is nil unless both sides are present.
func ComputeChanges(oldData, newData map[string]any) map[string]any {
	if oldData == nil || newData == nil {
		return nil
	}

	changes := make(map[string]any)
	for key, newVal := range newData {
		oldVal, exists := oldData[key]
		if !exists || !jsonEqual(oldVal, newVal) {
			changes[key] = map[string]any{
				"old": oldVal,
				"new": newVal,
			}
		}
	}
	for key, oldVal := range oldData {
		if _, exists := newData[key]; !exists {
			changes[key] = map[string]any{"old": oldVal, "new": nil}
		}
	}

	return changes
}

func jsonEqual(a, b any) bool {
	aBytes, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bBytes, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return string(aBytes) == string(bBytes)
}
