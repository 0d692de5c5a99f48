package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type QuestRepo struct {
	db *sql.DB
}

func NewQuestRepo(db *sql.DB) *QuestRepo {
	return &QuestRepo{db: db}
}

const questColumns = `id, day, type, title, target_type, category, target_value, current_value, reward_gold, reward_exp, reward_item, status`

func scanQuest(row interface{ Scan(...any) error }) (*Quest, error) {
	var q Quest
	err := row.Scan(&q.ID, &q.Day, &q.Type, &q.Title, &q.TargetType, &q.Category, &q.TargetValue, &q.CurrentValue, &q.RewardGold, &q.RewardExp, &q.RewardItem, &q.Status)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestRepo) Insert(ctx context.Context, q Quest) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO quests (day, type, title, target_type, category, target_value, current_value, reward_gold, reward_exp, reward_item, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, q.Day, q.Type, q.Title, q.TargetType, q.Category, q.TargetValue, q.CurrentValue, q.RewardGold, q.RewardExp, q.RewardItem, q.Status)
	if err != nil {
		return 0, fmt.Errorf("quest insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("quest last insert id: %w", err)
	}
	return id, nil
}

func (r *QuestRepo) Get(ctx context.Context, id int64) (*Quest, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+questColumns+` FROM quests WHERE id = ?`, id)
	q, err := scanQuest(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("quest get: %w", err)
	}
	return q, nil
}

func (r *QuestRepo) List(ctx context.Context) ([]Quest, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+questColumns+` FROM quests ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("quest list: %w", err)
	}
	defer rows.Close()
	return collectQuests(rows)
}

func (r *QuestRepo) ListByTypeAndDay(ctx context.Context, questType, day string) ([]Quest, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+questColumns+` FROM quests WHERE type = ? AND day = ? ORDER BY id ASC`, questType, day)
	if err != nil {
		return nil, fmt.Errorf("quest list by day: %w", err)
	}
	defer rows.Close()
	return collectQuests(rows)
}

func (r *QuestRepo) ListActive(ctx context.Context) ([]Quest, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+questColumns+` FROM quests WHERE status = 'active' ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("quest list active: %w", err)
	}
	defer rows.Close()
	return collectQuests(rows)
}

func collectQuests(rows *sql.Rows) ([]Quest, error) {
	var out []Quest
	for rows.Next() {
		q, err := scanQuest(rows)
		if err != nil {
			return nil, fmt.Errorf("quest scan: %w", err)
		}
		out = append(out, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("quest rows: %w", err)
	}
	return out, nil
}

func (r *QuestRepo) Update(ctx context.Context, q *Quest) error {
	_, err := r.db.ExecContext(ctx, `UPDATE quests SET current_value = ?, status = ? WHERE id = ?`, q.CurrentValue, q.Status, q.ID)
	if err != nil {
		return fmt.Errorf("quest update: %w", err)
	}
	return nil
}

func (r *QuestRepo) DeleteByType(ctx context.Context, questType string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM quests WHERE type = ?`, questType); err != nil {
		return fmt.Errorf("quest delete by type: %w", err)
	}
	return nil
}

func (r *QuestRepo) DeleteAll(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM quests`); err != nil {
		return fmt.Errorf("quest delete all: %w", err)
	}
	return nil
}
