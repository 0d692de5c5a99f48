package game

import (
	"context"
	"fmt"

	"github.com/Popilynx/SistemaLevelUp-sub000/internal/storage"
)

// Objective completion rewards; main objectives pay double.
const (
	ObjectiveRewardExp  = 150
	ObjectiveRewardGold = 75
)

type CreateObjectiveInput struct {
	Title       string
	Description string
	IsMain      bool
}

func (s *Service) CreateObjective(ctx context.Context, in CreateObjectiveInput) (int64, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return 0, err
	}
	var desc *string
	if in.Description != "" {
		desc = &in.Description
	}
	id, err := s.objectives.Insert(ctx, storage.ObjectiveInsert{Title: title, Description: desc, IsMain: in.IsMain})
	if err != nil {
		return 0, err
	}
	s.bus.Publish(Changed{Scope: ScopeObjectives})
	return id, nil
}

type ObjectiveResult struct {
	ObjectiveID  int64
	Progress     int
	Status       string
	ExpGranted   int
	GoldGranted  int
	LevelsGained int
}

// UpdateObjectiveProgress moves an active objective forward. Progress is
// clamped to [0,100]; hitting 100 completes the objective and grants the
// completion reward. Completed and cancelled objectives are immutable.
func (s *Service) UpdateObjectiveProgress(ctx context.Context, id int64, progress int) (*ObjectiveResult, error) {
	o, err := s.objectives.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("objective %d not found", id)
	}
	if o.Status != ObjectiveActive {
		return nil, ClaimError{What: "objective", Status: o.Status}
	}

	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	if progress < o.Progress {
		progress = o.Progress
	}

	res := &ObjectiveResult{ObjectiveID: o.ID, Progress: progress, Status: o.Status}
	if progress >= 100 {
		now := s.now()
		if err := s.objectives.UpdateProgress(ctx, o.ID, 100, ObjectiveCompleted, &now); err != nil {
			return nil, err
		}
		res.Status = ObjectiveCompleted

		exp, gold := ObjectiveRewardExp, ObjectiveRewardGold
		if o.IsMain {
			exp *= 2
			gold *= 2
		}
		c, err := s.getCharacter(ctx)
		if err != nil {
			return nil, err
		}
		reward, err := s.applyReward(ctx, c, Reward{Exp: exp, Gold: gold, Source: "objective"})
		if err != nil {
			return nil, err
		}
		res.ExpGranted = exp
		res.GoldGranted = gold
		res.LevelsGained = reward.LevelsGained
		s.logActivity(ctx, "Completed objective: "+o.Title, "objective", exp, gold, 0)
	} else {
		if err := s.objectives.UpdateProgress(ctx, o.ID, progress, ObjectiveActive, nil); err != nil {
			return nil, err
		}
	}

	s.bus.Publish(Changed{Scope: ScopeObjectives})
	return res, nil
}

// CancelObjective is allowed from the active state only.
func (s *Service) CancelObjective(ctx context.Context, id int64) error {
	o, err := s.objectives.Get(ctx, id)
	if err != nil {
		return err
	}
	if o == nil {
		return fmt.Errorf("objective %d not found", id)
	}
	if o.Status != ObjectiveActive {
		return ClaimError{What: "objective", Status: o.Status}
	}
	if err := s.objectives.UpdateProgress(ctx, o.ID, o.Progress, ObjectiveCancelled, nil); err != nil {
		return err
	}
	s.bus.Publish(Changed{Scope: ScopeObjectives})
	return nil
}

func (s *Service) CreateSkill(ctx context.Context, name string, category Category) (int64, error) {
	n, err := normalizeTitle(name)
	if err != nil {
		return 0, err
	}
	if !category.IsValid() {
		category = DefaultCategory
	}
	id, err := s.skills.Insert(ctx, n, string(category))
	if err != nil {
		return 0, err
	}
	s.bus.Publish(Changed{Scope: ScopeSkills})
	return id, nil
}

type TrainResult struct {
	SkillID      int64
	Name         string
	Level        int
	CurrentExp   int
	LevelsGained int
}

// TrainSkill adds experience to a skill, advancing through the static
// per-level thresholds up to the level cap.
func (s *Service) TrainSkill(ctx context.Context, id int64, exp int) (*TrainResult, error) {
	if exp <= 0 {
		return nil, fmt.Errorf("training exp must be positive")
	}
	sk, err := s.skills.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sk == nil {
		return nil, fmt.Errorf("skill %d not found", id)
	}

	sk.CurrentExp += exp
	levels := 0
	for sk.Level < SkillMaxLevel {
		need, ok := SkillLevelThresholds[sk.Level]
		if !ok || sk.CurrentExp < need {
			break
		}
		sk.CurrentExp -= need
		sk.Level++
		levels++
	}
	if err := s.skills.Update(ctx, sk); err != nil {
		return nil, err
	}

	if err := s.UpdateQuestProgress(ctx, TargetSkillTrained, 1, sk.Category); err != nil {
		return nil, err
	}

	if levels > 0 {
		s.logActivity(ctx, fmt.Sprintf("Skill %s reached level %d", sk.Name, sk.Level), "skill", 0, 0, 0)
	}
	s.bus.Publish(Changed{Scope: ScopeSkills})

	return &TrainResult{
		SkillID:      sk.ID,
		Name:         sk.Name,
		Level:        sk.Level,
		CurrentExp:   sk.CurrentExp,
		LevelsGained: levels,
	}, nil
}
