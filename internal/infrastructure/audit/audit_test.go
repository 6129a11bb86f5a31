package audit_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uom"
	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uomstatus"
	"github.com/mutugading/goapps-backend/services/uom/internal/infrastructure/audit"
)

func TestEntryFromChange_Update(t *testing.T) {
	ctx := audit.WithRequestContext(context.Background(), "req-1", "10.0.0.1", "curl/8")
	ctx = audit.WithPerformer(ctx, "alice")

	before := uomstatus.ReconstructStatus(3, "Active", "", true).Snapshot()
	after := uomstatus.ReconstructStatus(3, "Active", "", false).Snapshot()

	entry := audit.EntryFromChange(ctx, shared.Change{
		Entity:   uomstatus.EntityName,
		RecordID: 3,
		Action:   shared.ActionStatusChanged,
		Before:   before,
		After:    after,
	})

	assert.Equal(t, "uom_status", entry.TableName)
	assert.Equal(t, int64(3), entry.RecordID)
	assert.Equal(t, audit.ActionStatusChange, entry.Action)
	assert.Equal(t, "alice", entry.PerformedBy)
	assert.Equal(t, "req-1", entry.RequestID)
	assert.Equal(t, "10.0.0.1", entry.IPAddress)
	assert.Equal(t, "curl/8", entry.UserAgent)
	require.Len(t, entry.Changes, 1)
	assert.Equal(t, map[string]any{"old": true, "new": false}, entry.Changes["isUsable"])
}

func TestEntryFromChange_Create(t *testing.T) {
	snap := uom.ReconstructUOM(9, "Gram", "", decimal.RequireFromString("0.001"), 1).Snapshot()

	entry := audit.EntryFromChange(context.Background(), shared.Change{
		Entity:   uom.EntityName,
		RecordID: 9,
		Action:   shared.ActionCreated,
		After:    snap,
	})

	assert.Equal(t, "uom", entry.TableName)
	assert.Equal(t, audit.ActionCreate, entry.Action)
	assert.Equal(t, "system", entry.PerformedBy)
	assert.Nil(t, entry.OldData)
	assert.Nil(t, entry.Changes)
	assert.Equal(t, "Gram", entry.NewData["name"])
}

func TestComputeChanges(t *testing.T) {
	oldData := map[string]any{"name": "Kg", "description": "mass"}
	newData := map[string]any{"name": "Kilogram"}

	changes := audit.ComputeChanges(oldData, newData)

	assert.Equal(t, map[string]any{"old": "Kg", "new": "Kilogram"}, changes["name"])
	assert.Equal(t, map[string]any{"old": "mass", "new": nil}, changes["description"])
	assert.Nil(t, audit.ComputeChanges(nil, newData))
}
