package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
)

// SQLSTATE codes the repositories translate.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// isUniqueViolation checks if the error is a PostgreSQL unique violation.
func isUniqueViolation(err error) bool {
	return sqlState(err) == uniqueViolation
}

// isForeignKeyViolation checks if the error is a PostgreSQL foreign key violation.
func isForeignKeyViolation(err error) bool {
	return sqlState(err) == foreignKeyViolation
}

// pageClause renders ORDER BY, LIMIT and OFFSET for page. columns maps sort
// properties to column names; id is appended as a tiebreaker.
func pageClause(page shared.PageRequest, columns map[string]string, argIndex int) (string, []any) {
	column, ok := columns[page.Sort.Property]
	if !ok {
		column = columns["name"]
	}
	direction := "ASC"
	if page.Sort.Direction == shared.SortDesc {
		direction = "DESC"
	}

	clause := fmt.Sprintf(" ORDER BY %s %s", column, direction)
	if column != "id" {
		clause += ", id ASC"
	}
	clause += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	return clause, []any{page.Size, page.Offset()}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern returns an ILIKE pattern matching term as a literal substring.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

func closeRows(rows interface{ Close() error }) {
	_ = rows.Close()
}
