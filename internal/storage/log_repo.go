package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// ActivityLogCap bounds the log to the most recent entries.
const ActivityLogCap = 100

type LogRepo struct {
	db *sql.DB
}

func NewLogRepo(db *sql.DB) *LogRepo {
	return &LogRepo{db: db}
}

// Append inserts an entry and trims everything beyond the cap.
func (r *LogRepo) Append(ctx context.Context, e ActivityEntry) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		return r.AppendTx(ctx, tx, e)
	})
}

func (r *LogRepo) AppendTx(ctx context.Context, tx *sql.Tx, e ActivityEntry) error {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO activity_log (id, activity, type, exp_change, gold_change, health_change)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.ID, e.Activity, e.Type, e.ExpChange, e.GoldChange, e.HealthChange); err != nil {
		return fmt.Errorf("activity insert: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM activity_log WHERE id NOT IN (
			SELECT id FROM activity_log ORDER BY created_at DESC, id DESC LIMIT ?
		)
	`, ActivityLogCap); err != nil {
		return fmt.Errorf("activity trim: %w", err)
	}
	return nil
}

func (r *LogRepo) List(ctx context.Context, limit int) ([]ActivityEntry, error) {
	if limit <= 0 || limit > ActivityLogCap {
		limit = ActivityLogCap
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, activity, type, exp_change, gold_change, health_change, created_at
		FROM activity_log ORDER BY created_at DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("activity list: %w", err)
	}
	defer rows.Close()

	var out []ActivityEntry
	for rows.Next() {
		var e ActivityEntry
		if err := rows.Scan(&e.ID, &e.Activity, &e.Type, &e.ExpChange, &e.GoldChange, &e.HealthChange, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("activity scan: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("activity rows: %w", err)
	}
	return out, nil
}

func (r *LogRepo) DeleteAll(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM activity_log`); err != nil {
		return fmt.Errorf("activity delete all: %w", err)
	}
	return nil
}
