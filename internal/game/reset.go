package game

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/Popilynx/SistemaLevelUp-sub000/internal/storage"
)

// DifficultyMultiplier scales punishment with the stored difficulty counter.
func DifficultyMultiplier(difficulty int) float64 {
	if difficulty < 1 {
		difficulty = 1
	}
	return 1 + float64(difficulty-1)*0.5
}

// Daily pet hunger decay.
const petHungerDecay = 15

type DailyResetResult struct {
	Processed     bool
	MissedHabits  []string
	HealthLost    int
	ExpLost       int
	Died          bool
	NewDifficulty int
}

// RunDailyReset applies the once-per-day punishment pass: every daily habit
// that existed as of yesterday and went unchecked resets its streak and adds
// to an accumulated penalty, applied to the character in one hit. Dropping to
// zero health kills the character and restarts the game one difficulty up.
func (s *Service) RunDailyReset(ctx context.Context) (*DailyResetResult, error) {
	today := s.today()
	stamp, err := s.meta.Get(ctx, storage.MetaLastPunish)
	if err != nil {
		return nil, err
	}
	if stamp == today {
		return &DailyResetResult{}, nil
	}

	res := &DailyResetResult{Processed: true}

	// First run ever: nothing to punish yet.
	if stamp == "" {
		if err := s.meta.Set(ctx, storage.MetaLastPunish, today); err != nil {
			return nil, err
		}
		return res, nil
	}

	c, err := s.getCharacter(ctx)
	if err != nil {
		return nil, err
	}
	mult := DifficultyMultiplier(c.Difficulty)
	yesterday := s.yesterday()

	goodHabits, err := s.habits.ListGood(ctx)
	if err != nil {
		return nil, err
	}
	var missed []*storage.GoodHabit
	healthPenalty, expPenalty := 0, 0
	for i := range goodHabits {
		h := &goodHabits[i]
		if !h.IsDaily {
			continue
		}
		if h.CreatedAt.Format(DayFormat) > yesterday {
			continue
		}
		done, err := s.checks.Exists(ctx, h.ID, HabitTypeGood, yesterday)
		if err != nil {
			return nil, err
		}
		if done {
			continue
		}
		missed = append(missed, h)
		healthPenalty += int(float64(DefaultFallHealth) * mult)
		expPenalty += int(float64(DefaultFallExp) * mult)
		res.MissedHabits = append(res.MissedHabits, h.Title)
	}

	// A fall-free day extends each clean streak.
	badHabits, err := s.habits.ListBad(ctx)
	if err != nil {
		return nil, err
	}
	var clean []*storage.BadHabit
	for i := range badHabits {
		h := &badHabits[i]
		if h.CreatedAt.Format(DayFormat) > yesterday {
			continue
		}
		fell, err := s.checks.Exists(ctx, h.ID, HabitTypeBad, yesterday)
		if err != nil {
			return nil, err
		}
		if fell {
			continue
		}
		h.DaysClean++
		clean = append(clean, h)
	}

	pet, err := s.ActivePet(ctx)
	if err != nil {
		return nil, err
	}
	if pet != nil {
		pet.Hunger -= petHungerDecay
		if pet.Hunger < 0 {
			pet.Hunger = 0
		}
	}

	// Punishment drains current exp and health only, so no level math applies.
	if healthPenalty > 0 || expPenalty > 0 {
		c.CurrentExp -= expPenalty
		if c.CurrentExp < 0 {
			c.CurrentExp = 0
		}
		c.Health -= healthPenalty
		if c.Health < 0 {
			c.Health = 0
		}
		res.HealthLost = healthPenalty
		res.ExpLost = expPenalty
	}

	// All writes land together with the day stamp: a failed pass leaves the
	// day unstamped and is retried in full on the next run.
	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		for _, h := range missed {
			if err := s.habits.UpdateGoodStreakTx(ctx, tx, h.ID, 0, h.BestStreak); err != nil {
				return err
			}
		}
		for _, h := range clean {
			if err := s.habits.UpdateBadTx(ctx, tx, h); err != nil {
				return err
			}
		}
		if healthPenalty > 0 || expPenalty > 0 {
			if err := s.characters.UpdateTx(ctx, tx, c); err != nil {
				return err
			}
			if err := s.logs.AppendTx(ctx, tx, storage.ActivityEntry{
				ID:           uuid.NewString(),
				Activity:     fmt.Sprintf("Missed %d daily habits", len(res.MissedHabits)),
				Type:         "punishment",
				ExpChange:    -expPenalty,
				HealthChange: -healthPenalty,
			}); err != nil {
				return err
			}
		}
		if s.now().Day() == 1 {
			if err := s.habits.ResetMonthlyFalls(ctx, tx); err != nil {
				return err
			}
		}
		if pet != nil {
			if err := s.pets.UpdateTx(ctx, tx, pet); err != nil {
				return err
			}
		}
		return s.meta.SetTx(ctx, tx, storage.MetaLastPunish, today)
	})
	if err != nil {
		return nil, fmt.Errorf("daily reset: %w", err)
	}

	if c.Health <= 0 {
		newDifficulty := c.Difficulty + 1
		if err := s.FullReset(ctx, newDifficulty); err != nil {
			return nil, err
		}
		res.Died = true
		res.NewDifficulty = newDifficulty
		s.bus.Publish(CharacterDied{NewDifficulty: newDifficulty})
	}

	s.bus.Publish(Changed{Scope: ScopeAll})
	return res, nil
}

// FullReset wipes progression state while preserving habit, objective, and
// skill definitions. The boss is discarded and regenerated on next read.
func (s *Service) FullReset(ctx context.Context, difficulty int) error {
	if difficulty < 1 {
		difficulty = 1
	}
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.characters.ResetProgress(ctx, tx, storage.MainCharacterKey, BaselineMaxHealth, difficulty); err != nil {
			return err
		}
		if err := s.characters.ClearCategoryXP(ctx, tx, storage.MainCharacterKey); err != nil {
			return err
		}
		if err := s.items.DeleteInventory(ctx, tx); err != nil {
			return err
		}
		if err := s.habits.ResetProgress(ctx, tx); err != nil {
			return err
		}
		if err := s.skills.ResetProgress(ctx, tx); err != nil {
			return err
		}
		if err := s.objectives.ResetProgress(ctx, tx); err != nil {
			return err
		}
		if err := s.checks.DeleteAll(ctx, tx); err != nil {
			return err
		}
		if err := s.logs.DeleteAll(ctx, tx); err != nil {
			return err
		}
		if err := s.bosses.DeleteAll(ctx, tx); err != nil {
			return err
		}
		if err := s.quests.DeleteAll(ctx, tx); err != nil {
			return err
		}
		// A new run rerolls the shop and re-stamps the punishment pass.
		if err := s.meta.Delete(ctx, tx, storage.MetaShopDate); err != nil {
			return err
		}
		if err := s.meta.Delete(ctx, tx, storage.MetaLastPunish); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("full reset: %w", err)
	}
	s.bus.Publish(Changed{Scope: ScopeAll})
	return nil
}
