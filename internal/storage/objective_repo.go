package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type ObjectiveRepo struct {
	db *sql.DB
}

func NewObjectiveRepo(db *sql.DB) *ObjectiveRepo {
	return &ObjectiveRepo{db: db}
}

type ObjectiveInsert struct {
	Title       string
	Description *string
	IsMain      bool
}

func (r *ObjectiveRepo) Insert(ctx context.Context, in ObjectiveInsert) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO objectives (title, description, is_main) VALUES (?, ?, ?)
	`, in.Title, in.Description, boolToInt(in.IsMain))
	if err != nil {
		return 0, fmt.Errorf("objective insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("objective last insert id: %w", err)
	}
	return id, nil
}

func (r *ObjectiveRepo) Get(ctx context.Context, id int64) (*Objective, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, description, progress, status, is_main, created_at, completed_at
		FROM objectives WHERE id = ?
	`, id)
	var o Objective
	var isMain int
	if err := row.Scan(&o.ID, &o.Title, &o.Description, &o.Progress, &o.Status, &isMain, &o.CreatedAt, &o.CompletedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("objective get: %w", err)
	}
	o.IsMain = isMain != 0
	return &o, nil
}

func (r *ObjectiveRepo) List(ctx context.Context) ([]Objective, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, progress, status, is_main, created_at, completed_at
		FROM objectives ORDER BY is_main DESC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("objective list: %w", err)
	}
	defer rows.Close()

	var out []Objective
	for rows.Next() {
		var o Objective
		var isMain int
		if err := rows.Scan(&o.ID, &o.Title, &o.Description, &o.Progress, &o.Status, &isMain, &o.CreatedAt, &o.CompletedAt); err != nil {
			return nil, fmt.Errorf("objective scan: %w", err)
		}
		o.IsMain = isMain != 0
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("objective rows: %w", err)
	}
	return out, nil
}

func (r *ObjectiveRepo) UpdateProgress(ctx context.Context, id int64, progress int, status string, completedAt *time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE objectives SET progress = ?, status = ?, completed_at = ? WHERE id = ?
	`, progress, status, completedAt, id)
	if err != nil {
		return fmt.Errorf("objective update: %w", err)
	}
	return nil
}

func (r *ObjectiveRepo) ResetProgress(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `
		UPDATE objectives SET progress = 0, status = 'active', completed_at = NULL
	`); err != nil {
		return fmt.Errorf("objective reset: %w", err)
	}
	return nil
}
