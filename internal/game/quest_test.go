package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Popilynx/SistemaLevelUp-sub000/internal/storage"
)

func TestGenerateDailyQuestsIdempotent(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	setDay(svc, time.Date(2030, 3, 10, 9, 0, 0, 0, time.UTC))

	first, err := svc.GenerateDailyQuests(ctx)
	if err != nil {
		t.Fatalf("GenerateDailyQuests: %v", err)
	}
	if len(first) != DailyQuestCount {
		t.Fatalf("quest count=%d, want %d", len(first), DailyQuestCount)
	}

	second, err := svc.GenerateDailyQuests(ctx)
	if err != nil {
		t.Fatalf("GenerateDailyQuests again: %v", err)
	}
	if len(second) != DailyQuestCount {
		t.Fatalf("second count=%d, want %d", len(second), DailyQuestCount)
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("same-day regeneration replaced quests: %v vs %v", first, second)
		}
	}

	// A new day purges the old set and deals a fresh one.
	setDay(svc, time.Date(2030, 3, 11, 9, 0, 0, 0, time.UTC))
	next, err := svc.GenerateDailyQuests(ctx)
	if err != nil {
		t.Fatalf("next-day GenerateDailyQuests: %v", err)
	}
	all, err := svc.QuestRepo().List(ctx)
	if err != nil {
		t.Fatalf("list quests: %v", err)
	}
	if len(all) != len(next) {
		t.Fatalf("stale daily quests kept: %d stored, %d current", len(all), len(next))
	}
	for _, q := range next {
		if q.Day != "2030-03-11" {
			t.Fatalf("quest day=%s, want 2030-03-11", q.Day)
		}
	}
}

func insertQuest(t *testing.T, svc *Service, q storage.Quest) int64 {
	t.Helper()
	id, err := svc.QuestRepo().Insert(context.Background(), q)
	if err != nil {
		t.Fatalf("insert quest: %v", err)
	}
	return id
}

func TestQuestProgressClampsAndCompletes(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	setDay(svc, time.Date(2030, 3, 10, 9, 0, 0, 0, time.UTC))

	id := insertQuest(t, svc, storage.Quest{
		Day: "2030-03-10", Type: QuestTypeDaily, Title: "Deal 50 boss damage",
		TargetType: TargetBossDamage, TargetValue: 50, RewardGold: 80, RewardExp: 150,
		Status: QuestActive,
	})

	if err := svc.UpdateQuestProgress(ctx, TargetBossDamage, 30, ""); err != nil {
		t.Fatalf("progress: %v", err)
	}
	q, _ := svc.QuestRepo().Get(ctx, id)
	if q.CurrentValue != 30 || q.Status != QuestActive {
		t.Fatalf("value=%d status=%s, want 30/active", q.CurrentValue, q.Status)
	}

	// Overshoot clamps at the target and flips to completed.
	if err := svc.UpdateQuestProgress(ctx, TargetBossDamage, 40, ""); err != nil {
		t.Fatalf("progress: %v", err)
	}
	q, _ = svc.QuestRepo().Get(ctx, id)
	if q.CurrentValue != 50 || q.Status != QuestCompleted {
		t.Fatalf("value=%d status=%s, want 50/completed", q.CurrentValue, q.Status)
	}

	// Completed quests accumulate no further progress.
	if err := svc.UpdateQuestProgress(ctx, TargetBossDamage, 10, ""); err != nil {
		t.Fatalf("progress: %v", err)
	}
	q, _ = svc.QuestRepo().Get(ctx, id)
	if q.CurrentValue != 50 {
		t.Fatalf("value=%d after completion, want 50", q.CurrentValue)
	}
}

func TestQuestCategoryFilter(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	setDay(svc, time.Date(2030, 3, 10, 9, 0, 0, 0, time.UTC))

	fitness := string(CategoryFitness)
	id := insertQuest(t, svc, storage.Quest{
		Day: "2030-03-10", Type: QuestTypeDaily, Title: "Break a sweat",
		TargetType: TargetHabitsCompleted, Category: &fitness, TargetValue: 1,
		RewardGold: 40, RewardExp: 80, Status: QuestActive,
	})

	if err := svc.UpdateQuestProgress(ctx, TargetHabitsCompleted, 1, "mind"); err != nil {
		t.Fatalf("progress: %v", err)
	}
	q, _ := svc.QuestRepo().Get(ctx, id)
	if q.CurrentValue != 0 {
		t.Fatalf("mismatched category advanced the quest")
	}

	// Matching is case-insensitive.
	if err := svc.UpdateQuestProgress(ctx, TargetHabitsCompleted, 1, "Fitness"); err != nil {
		t.Fatalf("progress: %v", err)
	}
	q, _ = svc.QuestRepo().Get(ctx, id)
	if q.CurrentValue != 1 || q.Status != QuestCompleted {
		t.Fatalf("value=%d status=%s, want 1/completed", q.CurrentValue, q.Status)
	}
}

func TestClaimQuestRewardLifecycle(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	setDay(svc, time.Date(2030, 3, 10, 9, 0, 0, 0, time.UTC))

	mainCharacter(t, svc)
	potion := "perm_health_potion"
	id := insertQuest(t, svc, storage.Quest{
		Day: "2030-03-10", Type: QuestTypeDaily, Title: "Gain 200 experience",
		TargetType: TargetExpEarned, TargetValue: 200, RewardGold: 70, RewardExp: 0,
		RewardItem: &potion, Status: QuestActive,
	})

	// Active quests cannot be claimed.
	var ce ClaimError
	if _, err := svc.ClaimQuestReward(ctx, id); !errors.As(err, &ce) {
		t.Fatalf("claim active quest err=%v, want ClaimError", err)
	}

	if _, err := svc.ApplyReward(ctx, Reward{Exp: 200, Source: "test"}); err != nil {
		t.Fatalf("grant exp: %v", err)
	}
	res, err := svc.ClaimQuestReward(ctx, id)
	if err != nil {
		t.Fatalf("ClaimQuestReward: %v", err)
	}
	if res.Gold != 70 || res.ItemGranted == nil {
		t.Fatalf("claim=%+v, want 70 gold and an item", res)
	}
	if res.ItemGranted.Owner != storage.OwnerInventory {
		t.Fatalf("item owner=%s, want inventory", res.ItemGranted.Owner)
	}

	// Reclaiming pays nothing.
	res, err = svc.ClaimQuestReward(ctx, id)
	if err != nil {
		t.Fatalf("reclaim: %v", err)
	}
	if res != nil {
		t.Fatalf("reclaim paid again: %+v", res)
	}
	items, err := svc.ItemRepo().ListByOwner(ctx, storage.OwnerInventory)
	if err != nil {
		t.Fatalf("list inventory: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("inventory=%d items after double claim, want 1", len(items))
	}
}

func TestHabitCompletionAdvancesQuests(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	setDay(svc, time.Date(2030, 3, 10, 9, 0, 0, 0, time.UTC))

	mainCharacter(t, svc)
	questID := insertQuest(t, svc, storage.Quest{
		Day: "2030-03-10", Type: QuestTypeDaily, Title: "Complete 3 habits",
		TargetType: TargetHabitsCompleted, TargetValue: 3, RewardGold: 60, RewardExp: 120,
		Status: QuestActive,
	})

	habitID, err := svc.CreateGoodHabit(ctx, CreateGoodHabitInput{Title: "Run", Category: CategoryFitness})
	if err != nil {
		t.Fatalf("CreateGoodHabit: %v", err)
	}
	if _, err := svc.CompleteGoodHabit(ctx, habitID); err != nil {
		t.Fatalf("CompleteGoodHabit: %v", err)
	}

	q, _ := svc.QuestRepo().Get(ctx, questID)
	if q.CurrentValue != 1 {
		t.Fatalf("quest value=%d after habit completion, want 1", q.CurrentValue)
	}
}
