package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type SkillRepo struct {
	db *sql.DB
}

func NewSkillRepo(db *sql.DB) *SkillRepo {
	return &SkillRepo{db: db}
}

func (r *SkillRepo) Insert(ctx context.Context, name, category string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO skills (name, category) VALUES (?, ?)`, name, category)
	if err != nil {
		return 0, fmt.Errorf("skill insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("skill last insert id: %w", err)
	}
	return id, nil
}

func (r *SkillRepo) Get(ctx context.Context, id int64) (*Skill, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, category, level, current_exp FROM skills WHERE id = ?`, id)
	var s Skill
	if err := row.Scan(&s.ID, &s.Name, &s.Category, &s.Level, &s.CurrentExp); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("skill get: %w", err)
	}
	return &s, nil
}

func (r *SkillRepo) List(ctx context.Context) ([]Skill, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, category, level, current_exp FROM skills ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("skill list: %w", err)
	}
	defer rows.Close()

	var out []Skill
	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.Level, &s.CurrentExp); err != nil {
			return nil, fmt.Errorf("skill scan: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("skill rows: %w", err)
	}
	return out, nil
}

func (r *SkillRepo) Update(ctx context.Context, s *Skill) error {
	_, err := r.db.ExecContext(ctx, `UPDATE skills SET level = ?, current_exp = ? WHERE id = ?`, s.Level, s.CurrentExp, s.ID)
	if err != nil {
		return fmt.Errorf("skill update: %w", err)
	}
	return nil
}

func (r *SkillRepo) ResetProgress(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `UPDATE skills SET level = 1, current_exp = 0`); err != nil {
		return fmt.Errorf("skill reset: %w", err)
	}
	return nil
}
