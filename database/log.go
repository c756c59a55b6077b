package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

type LogEntryRow struct {
	ID        int64
	Timestamp time.Time
	Level     int
	Message   string
	Attrs     string
}

// LogQuery selects the tail of the log.
type LogQuery struct {
	MinLevel slog.Level
	Since    time.Time // Zero for no lower bound
	Limit    int       // Newest entries to return, at least 1
}

func (d *Database) SaveLogEntry(ctx context.Context, r LogEntryRow) error {
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now()
	}
	if _, err := d.write.ExecContext(ctx,
		`INSERT INTO log (ts_ms, level, message, attrs) VALUES (?, ?, ?, ?)`,
		r.Timestamp.UnixMilli(), r.Level, r.Message, r.Attrs); err != nil {
		return fmt.Errorf("saving log entry: %w", err)
	}
	return nil
}

// TailLog returns the newest q.Limit entries matching q, oldest first, the
// way they are printed by --log-entries.
func (d *Database) TailLog(ctx context.Context, q LogQuery) ([]LogEntryRow, error) {
	limit := max(q.Limit, 1)
	var sinceMs int64
	if !q.Since.IsZero() {
		sinceMs = q.Since.UnixMilli()
	}

	rows, err := d.read.QueryContext(ctx, `
		SELECT id, ts_ms, level, message, attrs FROM (
			SELECT id, ts_ms, level, message, attrs
			FROM log
			WHERE level >= ? AND ts_ms >= ?
			ORDER BY id DESC
			LIMIT ?
		) ORDER BY id`,
		int(q.MinLevel), sinceMs, limit)
	if err != nil {
		return nil, fmt.Errorf("querying log: %w", err)
	}
	defer rows.Close()

	entries := make([]LogEntryRow, 0, limit)
	for rows.Next() {
		var r LogEntryRow
		var tsMs int64
		if err := rows.Scan(&r.ID, &tsMs, &r.Level, &r.Message, &r.Attrs); err != nil {
			return nil, fmt.Errorf("scanning log row: %w", err)
		}
		r.Timestamp = time.UnixMilli(tsMs)
		entries = append(entries, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading log rows: %w", err)
	}
	return entries, nil
}

// PurgeLog deletes everything but the newest keep entries and returns the
// number of deleted rows. keep <= 0 disables the limit.
func (d *Database) PurgeLog(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}
	res, err := d.write.ExecContext(ctx, `
		DELETE FROM log
		WHERE id < (SELECT min(id) FROM (SELECT id FROM log ORDER BY id DESC LIMIT ?))`, keep)
	if err != nil {
		return 0, fmt.Errorf("purging log: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purging log: %w", err)
	}
	if n > 0 {
		d.logger.Debug("purged log", slog.Int64("deleted", n), slog.Int("kept", keep))
	}
	return n, nil
}
