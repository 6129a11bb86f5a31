package uom

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uom"
)

// CreateCommand represents the create UOM command.
type CreateCommand struct {
	Name             string
	Description      string
	ConversionFactor uom.ConversionFactor
	StatusID         int64
}

// CreateHandler handles the CreateUOM command.
type CreateHandler struct {
	repo     uom.Repository
	statuses StatusChecker
	tx       shared.Transactor
	listener shared.ChangeListener
}

// NewCreateHandler creates a new CreateHandler.
func NewCreateHandler(repo uom.Repository, statuses StatusChecker, tx shared.Transactor, listener shared.ChangeListener) *CreateHandler {
	return &CreateHandler{repo: repo, statuses: statuses, tx: tx, listener: listenerOrNoop(listener)}
}

// Handle executes the create UOM command.
func (h *CreateHandler) Handle(ctx context.Context, cmd CreateCommand) (*uom.UOM, error) {
	// 1. Validate and build the entity
	entity, err := uom.NewUOM(cmd.Name, cmd.Description, cmd.ConversionFactor, cmd.StatusID)
	if err != nil {
		return nil, err
	}

	// 2. Check name, resolve status and persist in one transaction
	var created *uom.UOM
	err = h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		taken, err := h.repo.ExistsByNameIgnoreCase(ctx, entity.Name())
		if err != nil {
			return err
		}
		if taken {
			log.Warn().Str("name", entity.Name()).Msg("Uom name already exists")
			return uom.NameTaken(entity.Name())
		}

		if err := requireStatus(ctx, h.statuses, entity.StatusID()); err != nil {
			return err
		}

		created, err = h.repo.Create(ctx, entity)
		return err
	})
	if err != nil {
		return nil, normalize(err, "create")
	}

	log.Info().Int64("id", created.ID()).Str("name", created.Name()).Msg("Uom created")
	h.listener.OnChange(ctx, shared.Change{
		Entity:   uom.EntityName,
		RecordID: created.ID(),
		Action:   shared.ActionCreated,
		After:    created.Snapshot(),
	})

	return created, nil
}
