package shared

import (
	"context"
)

// Transactor runs fn inside one database transaction. Repository calls made
// with the context passed to fn join that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Action names a committed write.
type Action string

// Actions reported to change listeners.
const (
	ActionCreated       Action = "created"
	ActionUpdated       Action = "updated"
	ActionDeleted       Action = "deleted"
	ActionStatusChanged Action = "status_changed"
)

// Change describes a committed write. Before and After are snapshots of the
// record; Before is nil on create and After is nil on delete.
type Change struct {
	Entity   string
	RecordID int64
	Action   Action
	Before   any
	After    any
}

// ChangeListener is notified after a write commits. Listeners handle their own
// failures; a committed write is never rolled back by a listener.
type ChangeListener interface {
	OnChange(ctx context.Context, change Change)
}

// ChangeListeners fans a change out to every listener in order.
type ChangeListeners []ChangeListener

// OnChange implements ChangeListener.
func (l ChangeListeners) OnChange(ctx context.Context, change Change) {
	for _, listener := range l {
		if listener != nil {
			listener.OnChange(ctx, change)
		}
	}
}
