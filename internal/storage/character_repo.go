package storage

import (
	"context"
	"database/sql"
	"fmt"
)

const MainCharacterKey = "main_user"

type CharacterRepo struct {
	db *sql.DB
}

func NewCharacterRepo(db *sql.DB) *CharacterRepo {
	return &CharacterRepo{db: db}
}

func (r *CharacterRepo) Get(ctx context.Context, key string) (*Character, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT key, level, current_exp, total_exp, gold, health, max_health, rank, difficulty, active_pet_id
		FROM character WHERE key = ?
	`, key)

	var c Character
	if err := row.Scan(&c.Key, &c.Level, &c.CurrentExp, &c.TotalExp, &c.Gold, &c.Health, &c.MaxHealth, &c.Rank, &c.Difficulty, &c.ActivePetID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("character get: %w", err)
	}
	return &c, nil
}

func (r *CharacterRepo) GetOrCreateMain(ctx context.Context) (*Character, error) {
	c, err := r.Get(ctx, MainCharacterKey)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}

	if _, err := r.db.ExecContext(ctx, `INSERT INTO character (key) VALUES (?)`, MainCharacterKey); err != nil {
		return nil, fmt.Errorf("character insert: %w", err)
	}
	return r.Get(ctx, MainCharacterKey)
}

func (r *CharacterRepo) Update(ctx context.Context, c *Character) error {
	return updateCharacter(ctx, r.db, c)
}

func (r *CharacterRepo) UpdateTx(ctx context.Context, tx *sql.Tx, c *Character) error {
	return updateCharacter(ctx, tx, c)
}

func updateCharacter(ctx context.Context, q execer, c *Character) error {
	_, err := q.ExecContext(ctx, `
		UPDATE character
		SET level = ?, current_exp = ?, total_exp = ?, gold = ?, health = ?, max_health = ?, rank = ?, difficulty = ?, active_pet_id = ?
		WHERE key = ?
	`, c.Level, c.CurrentExp, c.TotalExp, c.Gold, c.Health, c.MaxHealth, c.Rank, c.Difficulty, c.ActivePetID, c.Key)
	if err != nil {
		return fmt.Errorf("character update: %w", err)
	}
	return nil
}

// AddCategoryXP accumulates experience into a per-category bucket.
func (r *CharacterRepo) AddCategoryXP(ctx context.Context, key, category string, xp int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO category_xp (character_key, category, xp) VALUES (?, ?, ?)
		ON CONFLICT(character_key, category) DO UPDATE SET xp = xp + excluded.xp
	`, key, category, xp)
	if err != nil {
		return fmt.Errorf("category xp add: %w", err)
	}
	return nil
}

func (r *CharacterRepo) CategoryXP(ctx context.Context, key string) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT category, xp FROM category_xp WHERE character_key = ?`, key)
	if err != nil {
		return nil, fmt.Errorf("category xp list: %w", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var cat string
		var xp int
		if err := rows.Scan(&cat, &xp); err != nil {
			return nil, fmt.Errorf("category xp scan: %w", err)
		}
		out[cat] = xp
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("category xp rows: %w", err)
	}
	return out, nil
}

// ResetProgress zeroes progression state while keeping the row. Max health
// returns to the baseline and difficulty is set to the given value.
func (r *CharacterRepo) ResetProgress(ctx context.Context, tx *sql.Tx, key string, baseHealth, difficulty int) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE character
		SET level = 1, current_exp = 0, total_exp = 0, gold = 0,
		    health = ?, max_health = ?, rank = 'E', difficulty = ?
		WHERE key = ?
	`, baseHealth, baseHealth, difficulty, key)
	if err != nil {
		return fmt.Errorf("character reset: %w", err)
	}
	return nil
}

func (r *CharacterRepo) ClearCategoryXP(ctx context.Context, tx *sql.Tx, key string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM category_xp WHERE character_key = ?`, key); err != nil {
		return fmt.Errorf("category xp clear: %w", err)
	}
	return nil
}
