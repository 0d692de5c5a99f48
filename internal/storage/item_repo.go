package storage

import (
	"context"
	"database/sql"
	"fmt"
)

const (
	OwnerShop      = "shop"
	OwnerInventory = "inventory"
)

type ItemRepo struct {
	db *sql.DB
}

func NewItemRepo(db *sql.DB) *ItemRepo {
	return &ItemRepo{db: db}
}

const itemColumns = `id, owner, name, icon, category, slot, price, damage, exp_bonus, gold_bonus, health_bonus, crit_chance, is_consumable, current_uses, is_equipped, acquired_at`

func scanItem(row interface{ Scan(...any) error }) (*Item, error) {
	var it Item
	var consumable, equipped int
	var icon sql.NullString
	err := row.Scan(&it.ID, &it.Owner, &it.Name, &icon, &it.Category, &it.Slot, &it.Price, &it.Damage, &it.ExpBonus, &it.GoldBonus, &it.HealthBonus, &it.CritChance, &consumable, &it.CurrentUses, &equipped, &it.AcquiredAt)
	if err != nil {
		return nil, err
	}
	it.Icon = icon.String
	it.IsConsumable = consumable != 0
	it.IsEquipped = equipped != 0
	return &it, nil
}

func (r *ItemRepo) Insert(ctx context.Context, it Item) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO items (id, owner, name, icon, category, slot, price, damage, exp_bonus, gold_bonus, health_bonus, crit_chance, is_consumable, current_uses, is_equipped)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, it.ID, it.Owner, it.Name, it.Icon, it.Category, it.Slot, it.Price, it.Damage, it.ExpBonus, it.GoldBonus, it.HealthBonus, it.CritChance, boolToInt(it.IsConsumable), it.CurrentUses, boolToInt(it.IsEquipped))
	if err != nil {
		return fmt.Errorf("item insert: %w", err)
	}
	return nil
}

func (r *ItemRepo) Get(ctx context.Context, id string) (*Item, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	it, err := scanItem(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("item get: %w", err)
	}
	return it, nil
}

func (r *ItemRepo) ListByOwner(ctx context.Context, owner string) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+itemColumns+` FROM items WHERE owner = ? ORDER BY acquired_at ASC, id ASC`, owner)
	if err != nil {
		return nil, fmt.Errorf("item list: %w", err)
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("item scan: %w", err)
		}
		out = append(out, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("item rows: %w", err)
	}
	return out, nil
}

func (r *ItemRepo) CountByOwner(ctx context.Context, owner string) (int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items WHERE owner = ?`, owner)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("item count: %w", err)
	}
	return n, nil
}

// ReplaceShop swaps today's shop selection atomically.
func (r *ItemRepo) ReplaceShop(ctx context.Context, items []Item) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE owner = ?`, OwnerShop); err != nil {
			return fmt.Errorf("shop clear: %w", err)
		}
		for _, it := range items {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO items (id, owner, name, icon, category, slot, price, damage, exp_bonus, gold_bonus, health_bonus, crit_chance, is_consumable, current_uses, is_equipped)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0)
			`, it.ID, OwnerShop, it.Name, it.Icon, it.Category, it.Slot, it.Price, it.Damage, it.ExpBonus, it.GoldBonus, it.HealthBonus, it.CritChance, boolToInt(it.IsConsumable), it.CurrentUses); err != nil {
				return fmt.Errorf("shop insert: %w", err)
			}
		}
		return nil
	})
}

func (r *ItemRepo) SetEquipped(ctx context.Context, id string, equipped bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE items SET is_equipped = ? WHERE id = ?`, boolToInt(equipped), id)
	if err != nil {
		return fmt.Errorf("item equip update: %w", err)
	}
	return nil
}

func (r *ItemRepo) SetUses(ctx context.Context, id string, uses int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE items SET current_uses = ? WHERE id = ?`, uses, id)
	if err != nil {
		return fmt.Errorf("item uses update: %w", err)
	}
	return nil
}

func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("item delete: %w", err)
	}
	return nil
}

func (r *ItemRepo) DeleteInventory(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE owner = ?`, OwnerInventory); err != nil {
		return fmt.Errorf("inventory delete: %w", err)
	}
	return nil
}
