package uom

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uom"
)

// UpdateCommand represents the update UOM command. Nil fields are left as they
// are. The Status reference changes only through ChangeStatusHandler.
type UpdateCommand struct {
	ID               int64
	Name             *string
	Description      *string
	ConversionFactor *uom.ConversionFactor
}

// UpdateHandler handles the UpdateUOM command.
type UpdateHandler struct {
	repo     uom.Repository
	statuses StatusChecker
	tx       shared.Transactor
	listener shared.ChangeListener
}

// NewUpdateHandler creates a new UpdateHandler.
func NewUpdateHandler(repo uom.Repository, statuses StatusChecker, tx shared.Transactor, listener shared.ChangeListener) *UpdateHandler {
	return &UpdateHandler{repo: repo, statuses: statuses, tx: tx, listener: listenerOrNoop(listener)}
}

// Handle loads the UOM, applies the changes and saves it in one transaction.
func (h *UpdateHandler) Handle(ctx context.Context, cmd UpdateCommand) (*uom.UOM, error) {
	var (
		entity *uom.UOM
		before uom.Snapshot
	)

	err := h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		// 1. Load
		var err error
		entity, err = h.repo.GetByID(ctx, cmd.ID)
		if err != nil {
			return err
		}
		before = entity.Snapshot()

		// 2. A rename that only changes letter case keeps the record's own name
		if cmd.Name != nil && !strings.EqualFold(*cmd.Name, entity.Name()) {
			taken, err := h.repo.ExistsByNameIgnoreCase(ctx, *cmd.Name)
			if err != nil {
				return err
			}
			if taken {
				log.Warn().Int64("id", cmd.ID).Str("name", *cmd.Name).Msg("Uom name already exists")
				return uom.NameTaken(*cmd.Name)
			}
		}

		// 3. The kept Status must still exist
		if err := requireStatus(ctx, h.statuses, entity.StatusID()); err != nil {
			return err
		}

		// 4. Mutate and save
		if err := entity.Update(cmd.Name, cmd.Description, cmd.ConversionFactor); err != nil {
			return err
		}
		return h.repo.Update(ctx, entity)
	})
	if err != nil {
		return nil, normalize(err, "update")
	}

	log.Info().Int64("id", entity.ID()).Msg("Uom updated")
	h.listener.OnChange(ctx, shared.Change{
		Entity:   uom.EntityName,
		RecordID: entity.ID(),
		Action:   shared.ActionUpdated,
		Before:   before,
		After:    entity.Snapshot(),
	})

	return entity, nil
}
