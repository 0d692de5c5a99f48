package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Popilynx/SistemaLevelUp-sub000/internal/storage"
)

func TestObjectiveProgressMonotoneAndCompletes(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	mainCharacter(t, svc)
	id, err := svc.CreateObjective(ctx, CreateObjectiveInput{Title: "Ship the project"})
	if err != nil {
		t.Fatalf("CreateObjective: %v", err)
	}

	res, err := svc.UpdateObjectiveProgress(ctx, id, 60)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if res.Progress != 60 || res.Status != ObjectiveActive {
		t.Fatalf("progress=%d status=%s, want 60/active", res.Progress, res.Status)
	}

	// Progress never moves backwards.
	res, err = svc.UpdateObjectiveProgress(ctx, id, 30)
	if err != nil {
		t.Fatalf("regress: %v", err)
	}
	if res.Progress != 60 {
		t.Fatalf("progress=%d after regress attempt, want 60", res.Progress)
	}

	// Overshoot clamps at 100 and completes with the standard reward.
	res, err = svc.UpdateObjectiveProgress(ctx, id, 150)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if res.Status != ObjectiveCompleted {
		t.Fatalf("status=%s, want completed", res.Status)
	}
	if res.ExpGranted != ObjectiveRewardExp || res.GoldGranted != ObjectiveRewardGold {
		t.Fatalf("reward exp=%d gold=%d, want %d/%d", res.ExpGranted, res.GoldGranted, ObjectiveRewardExp, ObjectiveRewardGold)
	}

	// Completed objectives are immutable.
	var ce ClaimError
	if _, err := svc.UpdateObjectiveProgress(ctx, id, 100); !errors.As(err, &ce) {
		t.Fatalf("update after completion err=%v, want ClaimError", err)
	}
	if err := svc.CancelObjective(ctx, id); !errors.As(err, &ce) {
		t.Fatalf("cancel after completion err=%v, want ClaimError", err)
	}
}

func TestMainObjectivePaysDouble(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	mainCharacter(t, svc)
	id, err := svc.CreateObjective(ctx, CreateObjectiveInput{Title: "Become a polyglot", IsMain: true})
	if err != nil {
		t.Fatalf("CreateObjective: %v", err)
	}
	res, err := svc.UpdateObjectiveProgress(ctx, id, 100)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if res.ExpGranted != 2*ObjectiveRewardExp || res.GoldGranted != 2*ObjectiveRewardGold {
		t.Fatalf("reward exp=%d gold=%d, want doubled", res.ExpGranted, res.GoldGranted)
	}
}

func TestCancelObjective(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	id, err := svc.CreateObjective(ctx, CreateObjectiveInput{Title: "Maybe later"})
	if err != nil {
		t.Fatalf("CreateObjective: %v", err)
	}
	if err := svc.CancelObjective(ctx, id); err != nil {
		t.Fatalf("CancelObjective: %v", err)
	}

	o, err := svc.ObjectiveRepo().Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if o.Status != ObjectiveCancelled {
		t.Fatalf("status=%s, want cancelled", o.Status)
	}

	var ce ClaimError
	if _, err := svc.UpdateObjectiveProgress(ctx, id, 10); !errors.As(err, &ce) {
		t.Fatalf("progress on cancelled err=%v, want ClaimError", err)
	}
}

func TestTrainSkillThresholds(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	id, err := svc.CreateSkill(ctx, "Guitar", CategoryCreative)
	if err != nil {
		t.Fatalf("CreateSkill: %v", err)
	}

	res, err := svc.TrainSkill(ctx, id, 99)
	if err != nil {
		t.Fatalf("TrainSkill: %v", err)
	}
	if res.Level != 1 || res.CurrentExp != 99 {
		t.Fatalf("level=%d exp=%d, want 1/99", res.Level, res.CurrentExp)
	}

	res, err = svc.TrainSkill(ctx, id, 1)
	if err != nil {
		t.Fatalf("TrainSkill: %v", err)
	}
	if res.Level != 2 || res.CurrentExp != 0 || res.LevelsGained != 1 {
		t.Fatalf("level=%d exp=%d gained=%d, want 2/0/1", res.Level, res.CurrentExp, res.LevelsGained)
	}

	// A single large session can cross several thresholds, capping at 5.
	res, err = svc.TrainSkill(ctx, id, 250+500+1000+1)
	if err != nil {
		t.Fatalf("TrainSkill: %v", err)
	}
	if res.Level != SkillMaxLevel || res.LevelsGained != 3 {
		t.Fatalf("level=%d gained=%d, want %d/3", res.Level, res.LevelsGained, SkillMaxLevel)
	}

	// The cap is terminal.
	res, err = svc.TrainSkill(ctx, id, 100000)
	if err != nil {
		t.Fatalf("TrainSkill: %v", err)
	}
	if res.Level != SkillMaxLevel || res.LevelsGained != 0 {
		t.Fatalf("level=%d gained=%d at cap, want %d/0", res.Level, res.LevelsGained, SkillMaxLevel)
	}

	if _, err := svc.TrainSkill(ctx, id, 0); err == nil {
		t.Fatalf("expected error for non-positive training exp")
	}
}

func TestTrainSkillAdvancesQuests(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	setDay(svc, time.Date(2030, 3, 10, 9, 0, 0, 0, time.UTC))

	id, err := svc.CreateSkill(ctx, "Running", CategoryFitness)
	if err != nil {
		t.Fatalf("CreateSkill: %v", err)
	}
	questID := insertQuest(t, svc, storage.Quest{
		Day: "2030-03-10", Type: QuestTypeDaily, Title: "Train a skill",
		TargetType: TargetSkillTrained, TargetValue: 1, RewardGold: 30, RewardExp: 60,
		Status: QuestActive,
	})

	if _, err := svc.TrainSkill(ctx, id, 10); err != nil {
		t.Fatalf("TrainSkill: %v", err)
	}
	q, _ := svc.QuestRepo().Get(ctx, questID)
	if q.Status != QuestCompleted {
		t.Fatalf("quest status=%s after training, want completed", q.Status)
	}
}
