package uomstatus

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uomstatus"
)

// UpdateCommand represents the update Status command. Nil fields are left as
// they are. Usability changes go through ChangeUsabilityHandler.
type UpdateCommand struct {
	ID          int64
	Name        *string
	Description *string
}

// UpdateHandler handles the UpdateStatus command.
type UpdateHandler struct {
	repo     uomstatus.Repository
	tx       shared.Transactor
	listener shared.ChangeListener
}

// NewUpdateHandler creates a new UpdateHandler.
func NewUpdateHandler(repo uomstatus.Repository, tx shared.Transactor, listener shared.ChangeListener) *UpdateHandler {
	return &UpdateHandler{repo: repo, tx: tx, listener: listenerOrNoop(listener)}
}

// Handle loads the Status, applies the changes and saves it in one transaction.
func (h *UpdateHandler) Handle(ctx context.Context, cmd UpdateCommand) (*uomstatus.Status, error) {
	var (
		entity *uomstatus.Status
		before uomstatus.Snapshot
	)

	err := h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		// 1. Load
		var err error
		entity, err = h.repo.GetByID(ctx, cmd.ID)
		if err != nil {
			return err
		}
		before = entity.Snapshot()

		// 2. Check name change against other records
		if cmd.Name != nil && *cmd.Name != entity.Name() {
			taken, err := h.repo.ExistsByName(ctx, *cmd.Name)
			if err != nil {
				return err
			}
			if taken {
				log.Warn().Int64("id", cmd.ID).Str("name", *cmd.Name).Msg("UomStatus name already exists")
				return uomstatus.NameTaken(*cmd.Name)
			}
		}

		// 3. Mutate
		if err := entity.Update(cmd.Name, cmd.Description); err != nil {
			return err
		}

		// 4. Save
		return h.repo.Update(ctx, entity)
	})
	if err != nil {
		return nil, normalize(err, "update")
	}

	log.Info().Int64("id", entity.ID()).Msg("UomStatus updated")
	h.listener.OnChange(ctx, shared.Change{
		Entity:   uomstatus.EntityName,
		RecordID: entity.ID(),
		Action:   shared.ActionUpdated,
		Before:   before,
		After:    entity.Snapshot(),
	})

	return entity, nil
}
