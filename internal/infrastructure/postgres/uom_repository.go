package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uom"
	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uomstatus"
)

// UOMRepository implements uom.Repository using PostgreSQL. Name matching
// ignores case and is backed by a unique index on LOWER(name).
type UOMRepository struct {
	db *DB
}

// NewUOMRepository creates a new UOMRepository instance.
func NewUOMRepository(db *DB) *UOMRepository {
	return &UOMRepository{db: db}
}

// Verify interface implementation at compile time.
var _ uom.Repository = (*UOMRepository)(nil)

var uomSortColumns = map[string]string{
	"id":                     "id",
	"name":                   "name",
	"description":            "description",
	"conversionFactorToBase": "conversion_factor_to_base",
	"uomStatusId":            "uom_status_id",
}

const uomColumns = `id, name, description, conversion_factor_to_base, uom_status_id`

// Create persists a new UOM and returns it with its assigned id.
func (r *UOMRepository) Create(ctx context.Context, entity *uom.UOM) (*uom.UOM, error) {
	query := `
		INSERT INTO uom (name, description, conversion_factor_to_base, uom_status_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.conn(ctx).QueryRowContext(ctx, query,
		entity.Name(),
		nullString(entity.Description()),
		entity.ConversionFactor().Decimal(),
		entity.StatusID(),
	).Scan(&id)
	if err != nil {
		return nil, r.writeError(err, entity, "create")
	}

	return uom.ReconstructUOM(id, entity.Name(), entity.Description(), entity.ConversionFactor().Decimal(), entity.StatusID()), nil
}

// GetByID retrieves a UOM by its id.
func (r *UOMRepository) GetByID(ctx context.Context, id int64) (*uom.UOM, error) {
	query := `SELECT ` + uomColumns + ` FROM uom WHERE id = $1`

	entity, err := scanUOM(r.db.conn(ctx).QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, uom.NotFound(id)
	}
	return entity, err
}

// GetByName retrieves a UOM by name, ignoring case.
func (r *UOMRepository) GetByName(ctx context.Context, name string) (*uom.UOM, error) {
	query := `SELECT ` + uomColumns + ` FROM uom WHERE LOWER(name) = LOWER($1)`

	entity, err := scanUOM(r.db.conn(ctx).QueryRowContext(ctx, query, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, uom.NotFoundByName(name)
	}
	return entity, err
}

// Update persists name, description, conversion factor and status reference.
func (r *UOMRepository) Update(ctx context.Context, entity *uom.UOM) error {
	query := `
		UPDATE uom SET
			name = $2,
			description = $3,
			conversion_factor_to_base = $4,
			uom_status_id = $5
		WHERE id = $1
	`

	result, err := r.db.conn(ctx).ExecContext(ctx, query,
		entity.ID(),
		entity.Name(),
		nullString(entity.Description()),
		entity.ConversionFactor().Decimal(),
		entity.StatusID(),
	)
	if err != nil {
		return r.writeError(err, entity, "update")
	}

	return requireAffected(result, uom.NotFound(entity.ID()))
}

// Delete removes a UOM by id.
func (r *UOMRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.conn(ctx).ExecContext(ctx, `DELETE FROM uom WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete uom: %w", err)
	}

	return requireAffected(result, uom.NotFound(id))
}

// List retrieves UOMs with name search, status filter and pagination.
func (r *UOMRepository) List(ctx context.Context, filter uom.ListFilter) ([]*uom.UOM, int64, error) {
	baseQuery, args := uomWhere(filter.Name, filter.StatusID)

	var total int64
	if err := r.db.conn(ctx).QueryRowContext(ctx, `SELECT COUNT(*)`+baseQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count uoms: %w", err)
	}

	clause, pageArgs := pageClause(filter.Page, uomSortColumns, len(args)+1)
	rows, err := r.db.conn(ctx).QueryContext(ctx, `SELECT `+uomColumns+baseQuery+clause, append(args, pageArgs...)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list uoms: %w", err)
	}
	defer closeRows(rows)

	uoms, err := collectUOMs(rows)
	if err != nil {
		return nil, 0, err
	}
	return uoms, total, nil
}

// ListAll retrieves every UOM matching the export filter, ordered by name.
func (r *UOMRepository) ListAll(ctx context.Context, filter uom.ExportFilter) ([]*uom.UOM, error) {
	baseQuery, args := uomWhere(filter.Name, filter.StatusID)

	rows, err := r.db.conn(ctx).QueryContext(ctx, `SELECT `+uomColumns+baseQuery+` ORDER BY name ASC, id ASC`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list all uoms: %w", err)
	}
	defer closeRows(rows)

	return collectUOMs(rows)
}

// ExistsByID checks if a UOM with the given id exists.
func (r *UOMRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM uom WHERE id = $1)`
	if err := r.db.conn(ctx).QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check uom existence: %w", err)
	}
	return exists, nil
}

// ExistsByNameIgnoreCase checks for a name match, ignoring case.
func (r *UOMRepository) ExistsByNameIgnoreCase(ctx context.Context, name string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM uom WHERE LOWER(name) = LOWER($1))`
	if err := r.db.conn(ctx).QueryRowContext(ctx, query, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check uom name: %w", err)
	}
	return exists, nil
}

// =============================================================================
// Helper functions
// =============================================================================

// writeError maps constraint violations raised by insert and update.
func (r *UOMRepository) writeError(err error, entity *uom.UOM, operation string) error {
	switch {
	case isUniqueViolation(err):
		return uom.NameTaken(entity.Name())
	case isForeignKeyViolation(err):
		return uomstatus.NotFound(entity.StatusID())
	default:
		return fmt.Errorf("failed to %s uom: %w", operation, err)
	}
}

func uomWhere(name *string, statusID *int64) (string, []any) {
	query := ` FROM uom WHERE 1=1`
	args := []any{}

	if name != nil {
		args = append(args, containsPattern(*name))
		query += fmt.Sprintf(` AND name ILIKE $%d`, len(args))
	}
	if statusID != nil {
		args = append(args, *statusID)
		query += fmt.Sprintf(` AND uom_status_id = $%d`, len(args))
	}
	return query, args
}

func scanUOM(row rowScanner) (*uom.UOM, error) {
	var (
		id          int64
		name        string
		description sql.NullString
		factor      decimal.Decimal
		statusID    int64
	)
	if err := row.Scan(&id, &name, &description, &factor, &statusID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan uom: %w", err)
	}
	return uom.ReconstructUOM(id, name, description.String, factor, statusID), nil
}

func collectUOMs(rows *sql.Rows) ([]*uom.UOM, error) {
	uoms := []*uom.UOM{}
	for rows.Next() {
		entity, err := scanUOM(rows)
		if err != nil {
			return nil, err
		}
		uoms = append(uoms, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating uom rows: %w", err)
	}
	return uoms, nil
}
