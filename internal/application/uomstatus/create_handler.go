package uomstatus

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uomstatus"
)

// CreateCommand represents the create Status command.
type CreateCommand struct {
	Name        string
	Description string
	// IsUsable defaults to true when nil.
	IsUsable *bool
}

// CreateHandler handles the CreateStatus command.
type CreateHandler struct {
	repo     uomstatus.Repository
	tx       shared.Transactor
	listener shared.ChangeListener
}

// NewCreateHandler creates a new CreateHandler.
func NewCreateHandler(repo uomstatus.Repository, tx shared.Transactor, listener shared.ChangeListener) *CreateHandler {
	return &CreateHandler{repo: repo, tx: tx, listener: listenerOrNoop(listener)}
}

// Handle executes the create Status command.
func (h *CreateHandler) Handle(ctx context.Context, cmd CreateCommand) (*uomstatus.Status, error) {
	isUsable := true
	if cmd.IsUsable != nil {
		isUsable = *cmd.IsUsable
	}

	// 1. Validate and build the entity
	entity, err := uomstatus.NewStatus(cmd.Name, cmd.Description, isUsable)
	if err != nil {
		return nil, err
	}

	// 2. Check the name and persist in one transaction
	var created *uomstatus.Status
	err = h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		taken, err := h.repo.ExistsByName(ctx, entity.Name())
		if err != nil {
			return err
		}
		if taken {
			log.Warn().Str("name", entity.Name()).Msg("UomStatus name already exists")
			return uomstatus.NameTaken(entity.Name())
		}

		created, err = h.repo.Create(ctx, entity)
		return err
	})
	if err != nil {
		return nil, normalize(err, "create")
	}

	log.Info().Int64("id", created.ID()).Str("name", created.Name()).Msg("UomStatus created")
	h.listener.OnChange(ctx, shared.Change{
		Entity:   uomstatus.EntityName,
		RecordID: created.ID(),
		Action:   shared.ActionCreated,
		After:    created.Snapshot(),
	})

	return created, nil
}

// normalize logs persistence failures and maps them to the unexpected kind.
func normalize(err error, operation string) error {
	err = shared.Normalize(err)
	if shared.KindOf(err) == shared.KindUnexpected {
		log.Error().Err(err).Str("entity", uomstatus.EntityName).Str("operation", operation).Msg("Persistence failure")
	}
	return err
}
