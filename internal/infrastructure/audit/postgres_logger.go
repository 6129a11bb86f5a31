package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/uom/internal/infrastructure/postgres"
)

// PostgresLogger implements Logger using PostgreSQL. It is also a
// shared.ChangeListener that records every committed write.
type PostgresLogger struct {
	db *postgres.DB
}

var (
	_ Logger                = (*PostgresLogger)(nil)
	_ shared.ChangeListener = (*PostgresLogger)(nil)
)

// NewPostgresLogger creates a new PostgreSQL audit logger.
func NewPostgresLogger(db *postgres.DB) *PostgresLogger {
	return &PostgresLogger{db: db}
}

// OnChange writes the audit row for change. Failures are logged only.
func (l *PostgresLogger) OnChange(ctx context.Context, change shared.Change) {
	entry := EntryFromChange(ctx, change)
	if err := l.Log(context.WithoutCancel(ctx), entry); err != nil {
		log.Error().Err(err).
			Str("table", entry.TableName).
			Int64("record_id", entry.RecordID).
			Str("action", string(entry.Action)).
			Msg("Failed to write audit log")
	}
}

// Log records an audit entry.
func (l *PostgresLogger) Log(ctx context.Context, entry *LogEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.PerformedAt.IsZero() {
		entry.PerformedAt = time.Now()
	}

	query := `
		INSERT INTO audit_logs (
			id, table_name, record_id, action,
			old_data, new_data, changes,
			performed_by, performed_at,
			request_id, ip_address, user_agent
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := l.db.ExecContext(ctx, query,
		entry.ID,
		entry.TableName,
		entry.RecordID,
		string(entry.Action),
		nullableJSON(entry.OldData),
		nullableJSON(entry.NewData),
		nullableJSON(entry.Changes),
		entry.PerformedBy,
		entry.PerformedAt,
		nullableString(entry.RequestID),
		nullableString(entry.IPAddress),
		nullableString(entry.UserAgent),
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}

	return nil
}

func nullableJSON(data map[string]any) any {
	if data == nil {
		return nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil
	}
	return raw
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
