package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type BossRepo struct {
	db *sql.DB
}

func NewBossRepo(db *sql.DB) *BossRepo {
	return &BossRepo{db: db}
}

func (r *BossRepo) GetByDay(ctx context.Context, day string) (*Boss, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT day, name, health, max_health, attack, defense, reward_gold, reward_exp, status, reward_claimed
		FROM bosses WHERE day = ?
	`, day)
	var b Boss
	var claimed int
	if err := row.Scan(&b.Day, &b.Name, &b.Health, &b.MaxHealth, &b.Attack, &b.Defense, &b.RewardGold, &b.RewardExp, &b.Status, &claimed); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("boss get: %w", err)
	}
	b.RewardClaimed = claimed != 0
	return &b, nil
}

// Replace discards any stored boss and installs the given instance.
// Yesterday's half-dead boss is never carried over.
func (r *BossRepo) Replace(ctx context.Context, b *Boss) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM bosses`); err != nil {
			return fmt.Errorf("boss clear: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO bosses (day, name, health, max_health, attack, defense, reward_gold, reward_exp, status, reward_claimed)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, b.Day, b.Name, b.Health, b.MaxHealth, b.Attack, b.Defense, b.RewardGold, b.RewardExp, b.Status, boolToInt(b.RewardClaimed)); err != nil {
			return fmt.Errorf("boss insert: %w", err)
		}
		return nil
	})
}

func (r *BossRepo) Update(ctx context.Context, b *Boss) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE bosses SET health = ?, status = ?, reward_claimed = ? WHERE day = ?
	`, b.Health, b.Status, boolToInt(b.RewardClaimed), b.Day)
	if err != nil {
		return fmt.Errorf("boss update: %w", err)
	}
	return nil
}

func (r *BossRepo) DeleteAll(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM bosses`); err != nil {
		return fmt.Errorf("boss delete all: %w", err)
	}
	return nil
}
