package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type HabitRepo struct {
	db *sql.DB
}

func NewHabitRepo(db *sql.DB) *HabitRepo {
	return &HabitRepo{db: db}
}

type GoodHabitInsert struct {
	Title      string
	Category   string
	ExpReward  int
	GoldReward int
	IsDaily    bool
}

func (r *HabitRepo) InsertGood(ctx context.Context, in GoodHabitInsert) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO good_habits (title, category, exp_reward, gold_reward, is_daily)
		VALUES (?, ?, ?, ?, ?)
	`, in.Title, in.Category, in.ExpReward, in.GoldReward, boolToInt(in.IsDaily))
	if err != nil {
		return 0, fmt.Errorf("good habit insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("good habit last insert id: %w", err)
	}
	return id, nil
}

func (r *HabitRepo) GetGood(ctx context.Context, id int64) (*GoodHabit, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, category, exp_reward, gold_reward, streak, best_streak, is_daily, created_at
		FROM good_habits WHERE id = ?
	`, id)
	var h GoodHabit
	var isDaily int
	if err := row.Scan(&h.ID, &h.Title, &h.Category, &h.ExpReward, &h.GoldReward, &h.Streak, &h.BestStreak, &isDaily, &h.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("good habit get: %w", err)
	}
	h.IsDaily = isDaily != 0
	return &h, nil
}

func (r *HabitRepo) ListGood(ctx context.Context) ([]GoodHabit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, category, exp_reward, gold_reward, streak, best_streak, is_daily, created_at
		FROM good_habits ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("good habit list: %w", err)
	}
	defer rows.Close()

	var out []GoodHabit
	for rows.Next() {
		var h GoodHabit
		var isDaily int
		if err := rows.Scan(&h.ID, &h.Title, &h.Category, &h.ExpReward, &h.GoldReward, &h.Streak, &h.BestStreak, &isDaily, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("good habit scan: %w", err)
		}
		h.IsDaily = isDaily != 0
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("good habit rows: %w", err)
	}
	return out, nil
}

func (r *HabitRepo) UpdateGoodStreak(ctx context.Context, id int64, streak, bestStreak int) error {
	return updateGoodStreak(ctx, r.db, id, streak, bestStreak)
}

func (r *HabitRepo) UpdateGoodStreakTx(ctx context.Context, tx *sql.Tx, id int64, streak, bestStreak int) error {
	return updateGoodStreak(ctx, tx, id, streak, bestStreak)
}

func updateGoodStreak(ctx context.Context, q execer, id int64, streak, bestStreak int) error {
	_, err := q.ExecContext(ctx, `UPDATE good_habits SET streak = ?, best_streak = ? WHERE id = ?`, streak, bestStreak, id)
	if err != nil {
		return fmt.Errorf("good habit streak update: %w", err)
	}
	return nil
}

func (r *HabitRepo) DeleteGood(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM good_habits WHERE id = ?`, id); err != nil {
		return fmt.Errorf("good habit delete: %w", err)
	}
	return nil
}

type BadHabitInsert struct {
	Title         string
	HealthPenalty int
	ExpPenalty    int
}

func (r *HabitRepo) InsertBad(ctx context.Context, in BadHabitInsert) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO bad_habits (title, health_penalty, exp_penalty)
		VALUES (?, ?, ?)
	`, in.Title, in.HealthPenalty, in.ExpPenalty)
	if err != nil {
		return 0, fmt.Errorf("bad habit insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("bad habit last insert id: %w", err)
	}
	return id, nil
}

func (r *HabitRepo) GetBad(ctx context.Context, id int64) (*BadHabit, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, health_penalty, exp_penalty, days_clean, total_falls, monthly_falls, created_at
		FROM bad_habits WHERE id = ?
	`, id)
	var h BadHabit
	if err := row.Scan(&h.ID, &h.Title, &h.HealthPenalty, &h.ExpPenalty, &h.DaysClean, &h.TotalFalls, &h.MonthlyFalls, &h.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("bad habit get: %w", err)
	}
	return &h, nil
}

func (r *HabitRepo) ListBad(ctx context.Context) ([]BadHabit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, health_penalty, exp_penalty, days_clean, total_falls, monthly_falls, created_at
		FROM bad_habits ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("bad habit list: %w", err)
	}
	defer rows.Close()

	var out []BadHabit
	for rows.Next() {
		var h BadHabit
		if err := rows.Scan(&h.ID, &h.Title, &h.HealthPenalty, &h.ExpPenalty, &h.DaysClean, &h.TotalFalls, &h.MonthlyFalls, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("bad habit scan: %w", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("bad habit rows: %w", err)
	}
	return out, nil
}

func (r *HabitRepo) UpdateBad(ctx context.Context, h *BadHabit) error {
	return updateBadHabit(ctx, r.db, h)
}

func (r *HabitRepo) UpdateBadTx(ctx context.Context, tx *sql.Tx, h *BadHabit) error {
	return updateBadHabit(ctx, tx, h)
}

func updateBadHabit(ctx context.Context, q execer, h *BadHabit) error {
	_, err := q.ExecContext(ctx, `
		UPDATE bad_habits SET days_clean = ?, total_falls = ?, monthly_falls = ? WHERE id = ?
	`, h.DaysClean, h.TotalFalls, h.MonthlyFalls, h.ID)
	if err != nil {
		return fmt.Errorf("bad habit update: %w", err)
	}
	return nil
}

func (r *HabitRepo) ResetMonthlyFalls(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `UPDATE bad_habits SET monthly_falls = 0`); err != nil {
		return fmt.Errorf("monthly falls reset: %w", err)
	}
	return nil
}

func (r *HabitRepo) ResetProgress(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `UPDATE good_habits SET streak = 0, best_streak = 0`); err != nil {
		return fmt.Errorf("good habit reset: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE bad_habits SET days_clean = 0, total_falls = 0, monthly_falls = 0`); err != nil {
		return fmt.Errorf("bad habit reset: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

type CheckRepo struct {
	db *sql.DB
}

func NewCheckRepo(db *sql.DB) *CheckRepo {
	return &CheckRepo{db: db}
}

// Insert records one check per (habit, type, day). A duplicate insert for the
// same day reports alreadyExists = true and leaves the stored row untouched.
func (r *CheckRepo) Insert(ctx context.Context, habitID int64, habitType, day string) (alreadyExists bool, err error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO daily_checks (habit_id, habit_type, day)
		VALUES (?, ?, ?)
		ON CONFLICT(habit_id, habit_type, day) DO NOTHING
	`, habitID, habitType, day)
	if err != nil {
		return false, fmt.Errorf("check insert: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("check rows affected: %w", err)
	}
	return n == 0, nil
}

func (r *CheckRepo) Exists(ctx context.Context, habitID int64, habitType, day string) (bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM daily_checks
		WHERE habit_id = ? AND habit_type = ? AND day = ? AND completed = 1
	`, habitID, habitType, day)
	var n int
	if err := row.Scan(&n); err != nil {
		return false, fmt.Errorf("check exists: %w", err)
	}
	return n > 0, nil
}

func (r *CheckRepo) DeleteAll(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM daily_checks`); err != nil {
		return fmt.Errorf("check delete all: %w", err)
	}
	return nil
}
