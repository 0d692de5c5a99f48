package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS character (
			key TEXT PRIMARY KEY,
			level INTEGER DEFAULT 1,
			current_exp INTEGER DEFAULT 0,
			total_exp INTEGER DEFAULT 0,
			gold INTEGER DEFAULT 0,
			health INTEGER DEFAULT 1000,
			max_health INTEGER DEFAULT 1000,
			rank TEXT DEFAULT 'E',
			difficulty INTEGER DEFAULT 1,
			active_pet_id INTEGER NULL
		);`,
		`CREATE TABLE IF NOT EXISTS category_xp (
			character_key TEXT NOT NULL,
			category TEXT NOT NULL,
			xp INTEGER DEFAULT 0,
			PRIMARY KEY (character_key, category)
		);`,
		`CREATE TABLE IF NOT EXISTS good_habits (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			category TEXT NOT NULL,
			exp_reward INTEGER DEFAULT 20,
			gold_reward INTEGER DEFAULT 10,
			streak INTEGER DEFAULT 0,
			best_streak INTEGER DEFAULT 0,
			is_daily INTEGER DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS bad_habits (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			health_penalty INTEGER DEFAULT 50,
			exp_penalty INTEGER DEFAULT 20,
			days_clean INTEGER DEFAULT 0,
			total_falls INTEGER DEFAULT 0,
			monthly_falls INTEGER DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS objectives (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			description TEXT,
			progress INTEGER DEFAULT 0,
			status TEXT DEFAULT 'active',
			is_main INTEGER DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			completed_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS skills (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			level INTEGER DEFAULT 1,
			current_exp INTEGER DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS items (
			id TEXT PRIMARY KEY,
			owner TEXT NOT NULL,
			name TEXT NOT NULL,
			icon TEXT,
			category TEXT NOT NULL,
			slot TEXT NULL,
			price INTEGER DEFAULT 0,
			damage INTEGER DEFAULT 0,
			exp_bonus REAL DEFAULT 0,
			gold_bonus REAL DEFAULT 0,
			health_bonus INTEGER DEFAULT 0,
			crit_chance REAL DEFAULT 0,
			is_consumable INTEGER DEFAULT 0,
			current_uses INTEGER DEFAULT 0,
			is_equipped INTEGER DEFAULT 0,
			acquired_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS bosses (
			day TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			health INTEGER NOT NULL,
			max_health INTEGER NOT NULL,
			attack INTEGER NOT NULL,
			defense INTEGER NOT NULL,
			reward_gold INTEGER NOT NULL,
			reward_exp INTEGER NOT NULL,
			status TEXT DEFAULT 'alive',
			reward_claimed INTEGER DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS quests (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			day TEXT NOT NULL,
			type TEXT NOT NULL,
			title TEXT NOT NULL,
			target_type TEXT NOT NULL,
			category TEXT NULL,
			target_value INTEGER NOT NULL,
			current_value INTEGER DEFAULT 0,
			reward_gold INTEGER DEFAULT 0,
			reward_exp INTEGER DEFAULT 0,
			reward_item TEXT NULL,
			status TEXT DEFAULT 'active'
		);`,
		`CREATE TABLE IF NOT EXISTS pets (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			type TEXT NOT NULL,
			name TEXT NOT NULL,
			icon TEXT,
			element TEXT,
			level INTEGER DEFAULT 1,
			current_exp INTEGER DEFAULT 0,
			max_exp INTEGER DEFAULT 100,
			bonus_type TEXT NOT NULL,
			bonus_value REAL NOT NULL,
			hunger INTEGER DEFAULT 100,
			evolution_stage INTEGER DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS activity_log (
			id TEXT PRIMARY KEY,
			activity TEXT NOT NULL,
			type TEXT NOT NULL,
			exp_change INTEGER DEFAULT 0,
			gold_change INTEGER DEFAULT 0,
			health_change INTEGER DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS daily_checks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			habit_id INTEGER NOT NULL,
			habit_type TEXT NOT NULL,
			day TEXT NOT NULL,
			completed INTEGER DEFAULT 1,
			UNIQUE (habit_id, habit_type, day)
		);`,
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_items_owner ON items(owner);`,
		`CREATE INDEX IF NOT EXISTS idx_quests_day_type ON quests(day, type);`,
		`CREATE INDEX IF NOT EXISTS idx_checks_day ON daily_checks(day);`,
		`CREATE INDEX IF NOT EXISTS idx_activity_created ON activity_log(created_at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
