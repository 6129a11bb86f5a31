package uomstatus

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uomstatus"
)

// ChangeUsabilityCommand represents the change usability command.
type ChangeUsabilityCommand struct {
	ID       int64
	IsUsable bool
}

// ChangeUsabilityHandler is the only path that mutates the usability flag.
type ChangeUsabilityHandler struct {
	repo     uomstatus.Repository
	tx       shared.Transactor
	listener shared.ChangeListener
}

// NewChangeUsabilityHandler creates a new ChangeUsabilityHandler.
func NewChangeUsabilityHandler(repo uomstatus.Repository, tx shared.Transactor, listener shared.ChangeListener) *ChangeUsabilityHandler {
	return &ChangeUsabilityHandler{repo: repo, tx: tx, listener: listenerOrNoop(listener)}
}

// Handle sets the usability flag. Setting the current value again is a no-op
// that still succeeds.
func (h *ChangeUsabilityHandler) Handle(ctx context.Context, cmd ChangeUsabilityCommand) error {
	var (
		entity *uomstatus.Status
		before uomstatus.Snapshot
	)

	err := h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		entity, err = h.repo.GetByID(ctx, cmd.ID)
		if err != nil {
			return err
		}
		before = entity.Snapshot()

		entity.ChangeUsability(cmd.IsUsable)
		return h.repo.Update(ctx, entity)
	})
	if err != nil {
		return normalize(err, "change-usability")
	}

	log.Info().
		Int64("id", cmd.ID).
		Bool("from", before.IsUsable).
		Bool("to", cmd.IsUsable).
		Msg("UomStatus usability changed")
	h.listener.OnChange(ctx, shared.Change{
		Entity:   uomstatus.EntityName,
		RecordID: cmd.ID,
		Action:   shared.ActionStatusChanged,
		Before:   before,
		After:    entity.Snapshot(),
	})

	return nil
}
