package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// Well-known meta keys.
const (
	MetaShopDate     = "shop_date"
	MetaLastPunish   = "last_punish_day"
	MetaActiveTheme  = "active_theme"
	MetaThemesPrefix = "theme_owned:"
)

type MetaRepo struct {
	db *sql.DB
}

func NewMetaRepo(db *sql.DB) *MetaRepo {
	return &MetaRepo{db: db}
}

// Get returns "" for a missing key.
func (r *MetaRepo) Get(ctx context.Context, key string) (string, error) {
	row := r.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, key)
	var v string
	if err := row.Scan(&v); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("meta get: %w", err)
	}
	return v, nil
}

func (r *MetaRepo) Set(ctx context.Context, key, value string) error {
	return setMeta(ctx, r.db, key, value)
}

func (r *MetaRepo) SetTx(ctx context.Context, tx *sql.Tx, key, value string) error {
	return setMeta(ctx, tx, key, value)
}

func setMeta(ctx context.Context, q execer, key, value string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("meta set: %w", err)
	}
	return nil
}

func (r *MetaRepo) ListPrefix(ctx context.Context, prefix string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key FROM meta WHERE key LIKE ? || '%' ORDER BY key ASC`, prefix)
	if err != nil {
		return nil, fmt.Errorf("meta list: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("meta scan: %w", err)
		}
		out = append(out, k[len(prefix):])
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("meta rows: %w", err)
	}
	return out, nil
}

func (r *MetaRepo) Delete(ctx context.Context, tx *sql.Tx, key string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM meta WHERE key = ?`, key); err != nil {
		return fmt.Errorf("meta delete: %w", err)
	}
	return nil
}
