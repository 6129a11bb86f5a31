package uom

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uom"
)

// DeleteCommand represents the delete UOM command.
type DeleteCommand struct {
	ID int64
}

// DeleteHandler handles the DeleteUOM command.
type DeleteHandler struct {
	repo     uom.Repository
	tx       shared.Transactor
	listener shared.ChangeListener
}

// NewDeleteHandler creates a new DeleteHandler.
func NewDeleteHandler(repo uom.Repository, tx shared.Transactor, listener shared.ChangeListener) *DeleteHandler {
	return &DeleteHandler{repo: repo, tx: tx, listener: listenerOrNoop(listener)}
}

// Handle executes the delete UOM command.
func (h *DeleteHandler) Handle(ctx context.Context, cmd DeleteCommand) error {
	var before uom.Snapshot

	err := h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		entity, err := h.repo.GetByID(ctx, cmd.ID)
		if err != nil {
			return err
		}
		before = entity.Snapshot()

		return h.repo.Delete(ctx, cmd.ID)
	})
	if err != nil {
		return normalize(err, "delete")
	}

	log.Info().Int64("id", cmd.ID).Msg("Uom deleted")
	h.listener.OnChange(ctx, shared.Change{
		Entity:   uom.EntityName,
		RecordID: cmd.ID,
		Action:   shared.ActionDeleted,
		Before:   before,
	})

	return nil
}
