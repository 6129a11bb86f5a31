package uom

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uom"
)

// ChangeStatusCommand points a UOM at another Status.
type ChangeStatusCommand struct {
	ID          int64
	NewStatusID int64
}

// ChangeStatusHandler handles the ChangeStatus command.
type ChangeStatusHandler struct {
	repo     uom.Repository
	statuses StatusChecker
	tx       shared.Transactor
	listener shared.ChangeListener
}

// NewChangeStatusHandler creates a new ChangeStatusHandler.
func NewChangeStatusHandler(repo uom.Repository, statuses StatusChecker, tx shared.Transactor, listener shared.ChangeListener) *ChangeStatusHandler {
	return &ChangeStatusHandler{repo: repo, statuses: statuses, tx: tx, listener: listenerOrNoop(listener)}
}

// Handle executes the change status command.
func (h *ChangeStatusHandler) Handle(ctx context.Context, cmd ChangeStatusCommand) error {
	var (
		entity *uom.UOM
		before uom.Snapshot
	)

	err := h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		entity, err = h.repo.GetByID(ctx, cmd.ID)
		if err != nil {
			return err
		}
		before = entity.Snapshot()

		if err := requireStatus(ctx, h.statuses, cmd.NewStatusID); err != nil {
			return err
		}
		if err := entity.ChangeStatus(cmd.NewStatusID); err != nil {
			return err
		}
		return h.repo.Update(ctx, entity)
	})
	if err != nil {
		return normalize(err, "change-status")
	}

	log.Info().Int64("id", cmd.ID).Int64("uom_status_id", cmd.NewStatusID).Msg("Uom status changed")
	h.listener.OnChange(ctx, shared.Change{
		Entity:   uom.EntityName,
		RecordID: cmd.ID,
		Action:   shared.ActionStatusChanged,
		Before:   before,
		After:    entity.Snapshot(),
	})

	return nil
}
