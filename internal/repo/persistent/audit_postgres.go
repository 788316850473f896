package persistent

import (
	"context"
	"fmt"

	"github.com/andreyxaxa/Scan-Checkin/internal/entity"
	"github.com/andreyxaxa/Scan-Checkin/pkg/postgres"
)

const (
	// Table
	checkinsTable = "checkins"

	// Columns
	processedAtColumn     = "processed_at"
	deviceIDColumn        = "device_id"
	ticketIDColumn        = "ticket_id"
	statusColumn          = "status"
	attendeeNameColumn    = "attendee_name"
	attendeeCompanyColumn = "attendee_company"
	detailColumn          = "detail"
)

const _createCheckinsTable = `CREATE TABLE IF NOT EXISTS checkins (
	id               BIGSERIAL PRIMARY KEY,
	processed_at     TIMESTAMPTZ NOT NULL,
	device_id        TEXT NOT NULL,
	ticket_id        TEXT NOT NULL,
	status           TEXT NOT NULL,
	attendee_name    TEXT NOT NULL DEFAULT '',
	attendee_company TEXT NOT NULL DEFAULT '',
	detail           TEXT NOT NULL DEFAULT ''
)`

type AuditPostgresRepo struct {
	*postgres.Postgres
}

func NewAuditPostgresRepo(pg *postgres.Postgres) *AuditPostgresRepo {
	return &AuditPostgresRepo{pg}
}

func (r *AuditPostgresRepo) Migrate(ctx context.Context) error {
	_, err := r.GetExecutor(ctx).Exec(ctx, _createCheckinsTable)
	if err != nil {
		return fmt.Errorf("AuditPostgresRepo - Migrate - executor.Exec: %w", err)
	}

	return nil
}

func (r *AuditPostgresRepo) Append(ctx context.Context, record entity.AuditRecord) error {
	sql, args, err := insertAuditSQL(r.Postgres, record)
	if err != nil {
		return fmt.Errorf("AuditPostgresRepo - Append - insertAuditSQL: %w", err)
	}

	executor := r.GetExecutor(ctx)

	_, err = executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("AuditPostgresRepo - Append - executor.Exec: %w", err)
	}

	return nil
}

func insertAuditSQL(pg *postgres.Postgres, record entity.AuditRecord) (string, []any, error) {
	return pg.Builder.
		Insert(checkinsTable).
		Columns(
			processedAtColumn,
			deviceIDColumn,
			ticketIDColumn,
			statusColumn,
			attendeeNameColumn,
			attendeeCompanyColumn,
			detailColumn,
		).
		Values(
			record.Timestamp.UTC(),
			record.DeviceID,
			record.TicketID,
			string(record.Status),
			record.AttendeeName,
			record.AttendeeCompany,
			record.Detail,
		).ToSql()
}
