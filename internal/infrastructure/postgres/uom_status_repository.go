package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uomstatus"
)

// UOMStatusRepository implements uomstatus.Repository using PostgreSQL.
// Name matching is exact and case-sensitive.
type UOMStatusRepository struct {
	db *DB
}

// NewUOMStatusRepository creates a new UOMStatusRepository instance.
func NewUOMStatusRepository(db *DB) *UOMStatusRepository {
	return &UOMStatusRepository{db: db}
}

// Verify interface implementation at compile time.
var _ uomstatus.Repository = (*UOMStatusRepository)(nil)

var statusSortColumns = map[string]string{
	"id":          "id",
	"name":        "name",
	"description": "description",
	"isUsable":    "is_usable",
}

const statusColumns = `id, name, description, is_usable`

// Create persists a new Status and returns it with its assigned id.
func (r *UOMStatusRepository) Create(ctx context.Context, entity *uomstatus.Status) (*uomstatus.Status, error) {
	query := `
		INSERT INTO uom_status (name, description, is_usable)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	err := r.db.conn(ctx).QueryRowContext(ctx, query,
		entity.Name(),
		nullString(entity.Description()),
		entity.IsUsable(),
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, uomstatus.NameTaken(entity.Name())
		}
		return nil, fmt.Errorf("failed to create uom status: %w", err)
	}

	return uomstatus.ReconstructStatus(id, entity.Name(), entity.Description(), entity.IsUsable()), nil
}

// GetByID retrieves a Status by its id.
func (r *UOMStatusRepository) GetByID(ctx context.Context, id int64) (*uomstatus.Status, error) {
	query := `SELECT ` + statusColumns + ` FROM uom_status WHERE id = $1`

	entity, err := scanStatus(r.db.conn(ctx).QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, uomstatus.NotFound(id)
	}
	return entity, err
}

// Update persists name, description and usability of an existing Status.
func (r *UOMStatusRepository) Update(ctx context.Context, entity *uomstatus.Status) error {
	query := `
		UPDATE uom_status SET
			name = $2,
			description = $3,
			is_usable = $4
		WHERE id = $1
	`

	result, err := r.db.conn(ctx).ExecContext(ctx, query,
		entity.ID(),
		entity.Name(),
		nullString(entity.Description()),
		entity.IsUsable(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return uomstatus.NameTaken(entity.Name())
		}
		return fmt.Errorf("failed to update uom status: %w", err)
	}

	return requireAffected(result, uomstatus.NotFound(entity.ID()))
}

// Delete removes a Status by id. A Status still referenced by a UOM fails
// with the driver's foreign key error.
func (r *UOMStatusRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.conn(ctx).ExecContext(ctx, `DELETE FROM uom_status WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("uom status %d is still referenced: %w", id, err)
		}
		return fmt.Errorf("failed to delete uom status: %w", err)
	}

	return requireAffected(result, uomstatus.NotFound(id))
}

// List retrieves Statuses with name search, usability filter and pagination.
func (r *UOMStatusRepository) List(ctx context.Context, filter uomstatus.ListFilter) ([]*uomstatus.Status, int64, error) {
	baseQuery := ` FROM uom_status WHERE 1=1`
	args := []any{}
	argIndex := 1

	if filter.Name != nil {
		baseQuery += fmt.Sprintf(` AND name ILIKE $%d`, argIndex)
		args = append(args, containsPattern(*filter.Name))
		argIndex++
	}

	if filter.IsUsable != nil {
		baseQuery += fmt.Sprintf(` AND is_usable = $%d`, argIndex)
		args = append(args, *filter.IsUsable)
		argIndex++
	}

	var total int64
	if err := r.db.conn(ctx).QueryRowContext(ctx, `SELECT COUNT(*)`+baseQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count uom statuses: %w", err)
	}

	clause, pageArgs := pageClause(filter.Page, statusSortColumns, argIndex)
	rows, err := r.db.conn(ctx).QueryContext(ctx, `SELECT `+statusColumns+baseQuery+clause, append(args, pageArgs...)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list uom statuses: %w", err)
	}
	defer closeRows(rows)

	statuses, err := collectStatuses(rows)
	if err != nil {
		return nil, 0, err
	}
	return statuses, total, nil
}

// ListAll retrieves every Status ordered by name.
func (r *UOMStatusRepository) ListAll(ctx context.Context) ([]*uomstatus.Status, error) {
	rows, err := r.db.conn(ctx).QueryContext(ctx, `SELECT `+statusColumns+` FROM uom_status ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list all uom statuses: %w", err)
	}
	defer closeRows(rows)

	return collectStatuses(rows)
}

// ExistsByID checks if a Status with the given id exists.
func (r *UOMStatusRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM uom_status WHERE id = $1)`
	if err := r.db.conn(ctx).QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check uom status existence: %w", err)
	}
	return exists, nil
}

// ExistsByName checks for an exact, case-sensitive name match.
func (r *UOMStatusRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM uom_status WHERE name = $1)`
	if err := r.db.conn(ctx).QueryRowContext(ctx, query, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check uom status name: %w", err)
	}
	return exists, nil
}

// =============================================================================
// Helper functions
// =============================================================================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStatus(row rowScanner) (*uomstatus.Status, error) {
	var (
		id          int64
		name        string
		description sql.NullString
		isUsable    bool
	)
	if err := row.Scan(&id, &name, &description, &isUsable); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan uom status: %w", err)
	}
	return uomstatus.ReconstructStatus(id, name, description.String, isUsable), nil
}

func collectStatuses(rows *sql.Rows) ([]*uomstatus.Status, error) {
	statuses := []*uomstatus.Status{}
	for rows.Next() {
		entity, err := scanStatus(rows)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating uom status rows: %w", err)
	}
	return statuses, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func requireAffected(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}
