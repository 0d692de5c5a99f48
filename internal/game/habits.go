package game

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Popilynx/SistemaLevelUp-sub000/internal/storage"
)

type CreateGoodHabitInput struct {
	Title      string
	Category   Category
	ExpReward  int
	GoldReward int
	IsDaily    bool
}

// Default habit rewards and bad-habit penalties.
const (
	DefaultHabitExp   = 20
	DefaultHabitGold  = 10
	DefaultFallHealth = 50
	DefaultFallExp    = 20
)

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", errors.New("title is required")
	}
	return t, nil
}

func (s *Service) CreateGoodHabit(ctx context.Context, in CreateGoodHabitInput) (int64, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return 0, err
	}
	cat := in.Category
	if !cat.IsValid() {
		cat = DefaultCategory
	}
	if in.ExpReward <= 0 {
		in.ExpReward = DefaultHabitExp
	}
	if in.GoldReward <= 0 {
		in.GoldReward = DefaultHabitGold
	}

	id, err := s.habits.InsertGood(ctx, storage.GoodHabitInsert{
		Title:      title,
		Category:   string(cat),
		ExpReward:  in.ExpReward,
		GoldReward: in.GoldReward,
		IsDaily:    in.IsDaily,
	})
	if err != nil {
		return 0, err
	}
	s.bus.Publish(Changed{Scope: ScopeHabits})
	return id, nil
}

type CreateBadHabitInput struct {
	Title         string
	HealthPenalty int
	ExpPenalty    int
}

func (s *Service) CreateBadHabit(ctx context.Context, in CreateBadHabitInput) (int64, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return 0, err
	}
	if in.HealthPenalty <= 0 {
		in.HealthPenalty = DefaultFallHealth
	}
	if in.ExpPenalty <= 0 {
		in.ExpPenalty = DefaultFallExp
	}

	id, err := s.habits.InsertBad(ctx, storage.BadHabitInsert{
		Title:         title,
		HealthPenalty: in.HealthPenalty,
		ExpPenalty:    in.ExpPenalty,
	})
	if err != nil {
		return 0, err
	}
	s.bus.Publish(Changed{Scope: ScopeHabits})
	return id, nil
}

type HabitResult struct {
	HabitID      int64
	Title        string
	Streak       int
	BestStreak   int
	ExpGranted   int
	GoldGranted  int
	LevelsGained int
	NewLevel     int
}

// CompleteGoodHabit records today's check, advances the streak, and grants
// the scaled reward. A second completion on the same day is rejected.
func (s *Service) CompleteGoodHabit(ctx context.Context, id int64) (*HabitResult, error) {
	h, err := s.habits.GetGood(ctx, id)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, fmt.Errorf("habit %d not found", id)
	}

	exists, err := s.checks.Insert(ctx, id, HabitTypeGood, s.today())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyDone
	}

	h.Streak++
	if h.Streak > h.BestStreak {
		h.BestStreak = h.Streak
	}
	if err := s.habits.UpdateGoodStreak(ctx, h.ID, h.Streak, h.BestStreak); err != nil {
		return nil, err
	}

	exp, gold, err := s.scaleReward(ctx, h.ExpReward, h.GoldReward)
	if err != nil {
		return nil, err
	}

	c, err := s.getCharacter(ctx)
	if err != nil {
		return nil, err
	}
	res, err := s.applyReward(ctx, c, Reward{
		Exp:      exp,
		Gold:     gold,
		Category: Category(h.Category),
		Source:   "habit",
		FeedPet:  true,
	})
	if err != nil {
		return nil, err
	}

	if err := s.UpdateQuestProgress(ctx, TargetHabitsCompleted, 1, h.Category); err != nil {
		return nil, err
	}

	s.logActivity(ctx, "Completed habit: "+h.Title, "habit", exp, gold, 0)
	s.bus.Publish(Changed{Scope: ScopeHabits})

	return &HabitResult{
		HabitID:      h.ID,
		Title:        h.Title,
		Streak:       h.Streak,
		BestStreak:   h.BestStreak,
		ExpGranted:   exp,
		GoldGranted:  gold,
		LevelsGained: res.LevelsGained,
		NewLevel:     res.NewLevel,
	}, nil
}

// FailGoodHabit is an explicit miss: the streak resets, nothing else changes.
func (s *Service) FailGoodHabit(ctx context.Context, id int64) error {
	h, err := s.habits.GetGood(ctx, id)
	if err != nil {
		return err
	}
	if h == nil {
		return fmt.Errorf("habit %d not found", id)
	}
	if h.Streak == 0 {
		return nil
	}
	if err := s.habits.UpdateGoodStreak(ctx, h.ID, 0, h.BestStreak); err != nil {
		return err
	}
	s.logActivity(ctx, "Broke streak: "+h.Title, "habit", 0, 0, 0)
	s.bus.Publish(Changed{Scope: ScopeHabits})
	return nil
}

type FallResult struct {
	HabitID    int64
	Title      string
	HealthLost int
	ExpLost    int
	TotalFalls int
}

// RecordFall registers a bad-habit relapse: the clean streak resets, fall
// counters advance, and the penalties hit the character (clamped at zero).
func (s *Service) RecordFall(ctx context.Context, id int64) (*FallResult, error) {
	h, err := s.habits.GetBad(ctx, id)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, fmt.Errorf("bad habit %d not found", id)
	}

	h.DaysClean = 0
	h.TotalFalls++
	h.MonthlyFalls++
	if err := s.habits.UpdateBad(ctx, h); err != nil {
		return nil, err
	}

	if _, err := s.checks.Insert(ctx, id, HabitTypeBad, s.today()); err != nil {
		return nil, err
	}

	c, err := s.getCharacter(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.applyReward(ctx, c, Reward{
		Exp:    -h.ExpPenalty,
		Health: -h.HealthPenalty,
		Source: "fall",
	}); err != nil {
		return nil, err
	}

	s.logActivity(ctx, "Fell: "+h.Title, "fall", -h.ExpPenalty, 0, -h.HealthPenalty)
	s.bus.Publish(Changed{Scope: ScopeHabits})

	return &FallResult{
		HabitID:    h.ID,
		Title:      h.Title,
		HealthLost: h.HealthPenalty,
		ExpLost:    h.ExpPenalty,
		TotalFalls: h.TotalFalls,
	}, nil
}
