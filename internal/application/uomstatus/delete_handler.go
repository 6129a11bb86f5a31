package uomstatus

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uomstatus"
)

// DeleteCommand represents the delete Status command.
type DeleteCommand struct {
	ID int64
}

// DeleteHandler handles the DeleteStatus command.
type DeleteHandler struct {
	repo     uomstatus.Repository
	tx       shared.Transactor
	listener shared.ChangeListener
}

// NewDeleteHandler creates a new DeleteHandler.
func NewDeleteHandler(repo uomstatus.Repository, tx shared.Transactor, listener shared.ChangeListener) *DeleteHandler {
	return &DeleteHandler{repo: repo, tx: tx, listener: listenerOrNoop(listener)}
}

// Handle deletes the Status. A Status still referenced by a UOM fails with the
// storage error wrapped as unexpected.
func (h *DeleteHandler) Handle(ctx context.Context, cmd DeleteCommand) error {
	var before uomstatus.Snapshot

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

	log.Info().Int64("id", cmd.ID).Msg("UomStatus deleted")
	h.listener.OnChange(ctx, shared.Change{
		Entity:   uomstatus.EntityName,
		RecordID: cmd.ID,
		Action:   shared.ActionDeleted,
		Before:   before,
	})

	return nil
}
