package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type PetRepo struct {
	db *sql.DB
}

func NewPetRepo(db *sql.DB) *PetRepo {
	return &PetRepo{db: db}
}

func (r *PetRepo) Insert(ctx context.Context, p Pet) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (type, name, icon, element, level, current_exp, max_exp, bonus_type, bonus_value, hunger, evolution_stage)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.Type, p.Name, p.Icon, p.Element, p.Level, p.CurrentExp, p.MaxExp, p.BonusType, p.BonusValue, p.Hunger, p.EvolutionStage)
	if err != nil {
		return 0, fmt.Errorf("pet insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("pet last insert id: %w", err)
	}
	return id, nil
}

func (r *PetRepo) Get(ctx context.Context, id int64) (*Pet, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, type, name, icon, element, level, current_exp, max_exp, bonus_type, bonus_value, hunger, evolution_stage, created_at
		FROM pets WHERE id = ?
	`, id)
	var p Pet
	if err := row.Scan(&p.ID, &p.Type, &p.Name, &p.Icon, &p.Element, &p.Level, &p.CurrentExp, &p.MaxExp, &p.BonusType, &p.BonusValue, &p.Hunger, &p.EvolutionStage, &p.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("pet get: %w", err)
	}
	return &p, nil
}

func (r *PetRepo) List(ctx context.Context) ([]Pet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, type, name, icon, element, level, current_exp, max_exp, bonus_type, bonus_value, hunger, evolution_stage, created_at
		FROM pets ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("pet list: %w", err)
	}
	defer rows.Close()

	var out []Pet
	for rows.Next() {
		var p Pet
		if err := rows.Scan(&p.ID, &p.Type, &p.Name, &p.Icon, &p.Element, &p.Level, &p.CurrentExp, &p.MaxExp, &p.BonusType, &p.BonusValue, &p.Hunger, &p.EvolutionStage, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("pet scan: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pet rows: %w", err)
	}
	return out, nil
}

func (r *PetRepo) Update(ctx context.Context, p *Pet) error {
	return updatePet(ctx, r.db, p)
}

func (r *PetRepo) UpdateTx(ctx context.Context, tx *sql.Tx, p *Pet) error {
	return updatePet(ctx, tx, p)
}

func updatePet(ctx context.Context, q execer, p *Pet) error {
	_, err := q.ExecContext(ctx, `
		UPDATE pets SET level = ?, current_exp = ?, max_exp = ?, bonus_value = ?, hunger = ?, evolution_stage = ? WHERE id = ?
	`, p.Level, p.CurrentExp, p.MaxExp, p.BonusValue, p.Hunger, p.EvolutionStage, p.ID)
	if err != nil {
		return fmt.Errorf("pet update: %w", err)
	}
	return nil
}
