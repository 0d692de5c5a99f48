package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Popilynx/SistemaLevelUp-sub000/internal/storage"
)

func TestUpdatePetXPLevelsAndGrowth(t *testing.T) {
	p := &storage.Pet{Level: 1, CurrentExp: 0, MaxExp: PetBaseMaxExp, BonusValue: 0.10}

	levels := UpdatePetXP(p, 250)
	// 250 -> level 2 (cost 100, ceiling 120), level 3 (cost 120, ceiling 144).
	if levels != 2 || p.Level != 3 || p.CurrentExp != 30 || p.MaxExp != 144 {
		t.Fatalf("levels=%d level=%d exp=%d max=%d, want 2/3/30/144", levels, p.Level, p.CurrentExp, p.MaxExp)
	}
	// Bonus compounds 1.05x per level, rounded to 3 decimals.
	if p.BonusValue != 0.110 {
		t.Fatalf("bonus=%.3f, want 0.110", p.BonusValue)
	}
}

func TestUpdatePetXPCapsAtMaxLevel(t *testing.T) {
	p := &storage.Pet{Level: PetMaxLevel - 1, CurrentExp: 0, MaxExp: 100, BonusValue: 1}

	UpdatePetXP(p, 1_000_000)
	if p.Level != PetMaxLevel {
		t.Fatalf("level=%d, want cap %d", p.Level, PetMaxLevel)
	}
	// Surplus experience parks on the capped pet.
	if p.CurrentExp == 0 {
		t.Fatalf("surplus exp discarded at cap")
	}
}

func TestPetEvolutionStages(t *testing.T) {
	p := &storage.Pet{Level: 1, MaxExp: PetBaseMaxExp, EvolutionStage: 1}

	for p.Level < 10 {
		UpdatePetXP(p, p.MaxExp)
	}
	if p.EvolutionStage != 2 {
		t.Fatalf("stage=%d at level %d, want 2", p.EvolutionStage, p.Level)
	}
	for p.Level < 30 {
		UpdatePetXP(p, p.MaxExp)
	}
	if p.EvolutionStage != 3 {
		t.Fatalf("stage=%d at level %d, want 3", p.EvolutionStage, p.Level)
	}
}

func TestGetPetBonusHungerAndType(t *testing.T) {
	p := &storage.Pet{BonusType: BonusExp, BonusValue: 0.10, Hunger: 100}

	if got := GetPetBonus(p, BonusExp); got != 0.10 {
		t.Fatalf("bonus=%.2f, want 0.10", got)
	}
	if got := GetPetBonus(p, BonusGold); got != 0 {
		t.Fatalf("mismatched type bonus=%.2f, want 0", got)
	}

	p.Hunger = 19
	if got := GetPetBonus(p, BonusExp); got != 0.05 {
		t.Fatalf("hungry bonus=%.2f, want 0.05", got)
	}
	if got := GetPetBonus(nil, BonusExp); got != 0 {
		t.Fatalf("nil pet bonus=%.2f, want 0", got)
	}
}

func TestAdoptPetBecomesActive(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := svc.AdoptPet(ctx, "gryphon"); err == nil {
		t.Fatalf("expected error for unknown pet type")
	}

	p, err := svc.AdoptPet(ctx, "owl")
	if err != nil {
		t.Fatalf("AdoptPet: %v", err)
	}
	if p.Level != 1 || p.Hunger != 100 || p.MaxExp != PetBaseMaxExp {
		t.Fatalf("fresh pet %+v, want level 1, full hunger", p)
	}

	active, err := svc.ActivePet(ctx)
	if err != nil {
		t.Fatalf("ActivePet: %v", err)
	}
	if active == nil || active.ID != p.ID {
		t.Fatalf("adopted pet not active")
	}
}

func TestActivePetSharesHabitExp(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	setDay(svc, time.Date(2030, 3, 10, 9, 0, 0, 0, time.UTC))

	pet, err := svc.AdoptPet(ctx, "owl")
	if err != nil {
		t.Fatalf("AdoptPet: %v", err)
	}

	id, err := svc.CreateGoodHabit(ctx, CreateGoodHabitInput{Title: "Read"})
	if err != nil {
		t.Fatalf("CreateGoodHabit: %v", err)
	}
	res, err := svc.CompleteGoodHabit(ctx, id)
	if err != nil {
		t.Fatalf("CompleteGoodHabit: %v", err)
	}
	// The owl's +10% exp bonus scales the habit reward.
	if res.ExpGranted != 22 {
		t.Fatalf("exp=%d, want 22 (20 * 1.10)", res.ExpGranted)
	}

	p, err := svc.PetRepo().Get(ctx, pet.ID)
	if err != nil {
		t.Fatalf("get pet: %v", err)
	}
	// The pet receives 20% of the granted exp, floored.
	if p.CurrentExp != CalculatePetExpGain(res.ExpGranted) {
		t.Fatalf("pet exp=%d, want %d", p.CurrentExp, CalculatePetExpGain(res.ExpGranted))
	}
}

func TestSwitchAndFeedActivePet(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	if err := svc.FeedActivePet(ctx); !errors.Is(err, ErrNoActivePet) {
		t.Fatalf("feed without pet err=%v, want ErrNoActivePet", err)
	}

	first, err := svc.AdoptPet(ctx, "wolf")
	if err != nil {
		t.Fatalf("adopt wolf: %v", err)
	}
	second, err := svc.AdoptPet(ctx, "cat")
	if err != nil {
		t.Fatalf("adopt cat: %v", err)
	}

	// The latest adoption took the active slot; switch back.
	active, _ := svc.ActivePet(ctx)
	if active.ID != second.ID {
		t.Fatalf("active=%d, want %d", active.ID, second.ID)
	}
	if err := svc.SetActivePet(ctx, first.ID); err != nil {
		t.Fatalf("SetActivePet: %v", err)
	}
	active, _ = svc.ActivePet(ctx)
	if active.ID != first.ID {
		t.Fatalf("active=%d after switch, want %d", active.ID, first.ID)
	}

	// Feeding costs gold; an empty purse buys no meal.
	active.Hunger = 10
	if err := svc.PetRepo().Update(ctx, active); err != nil {
		t.Fatalf("update: %v", err)
	}
	var broke NotEnoughGoldError
	if err := svc.FeedActivePet(ctx); !errors.As(err, &broke) {
		t.Fatalf("feed with 0 gold err=%v, want NotEnoughGoldError", err)
	}
	hungry, _ := svc.PetRepo().Get(ctx, first.ID)
	if hungry.Hunger != 10 {
		t.Fatalf("hunger=%d after refused meal, want 10", hungry.Hunger)
	}

	c := mainCharacter(t, svc)
	c.Gold = 50
	if err := svc.CharacterRepo().Update(ctx, c); err != nil {
		t.Fatalf("fund character: %v", err)
	}
	if err := svc.FeedActivePet(ctx); err != nil {
		t.Fatalf("FeedActivePet: %v", err)
	}
	fed, _ := svc.PetRepo().Get(ctx, first.ID)
	if fed.Hunger != 100 {
		t.Fatalf("hunger=%d after feeding, want 100", fed.Hunger)
	}
	c = mainCharacter(t, svc)
	if c.Gold != 50-PetFeedCost {
		t.Fatalf("gold=%d after feeding, want %d", c.Gold, 50-PetFeedCost)
	}
}

func TestPetFoodItemFeedsWithoutCharge(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	p, err := svc.AdoptPet(ctx, "owl")
	if err != nil {
		t.Fatalf("adopt: %v", err)
	}
	p.Hunger = 5
	if err := svc.PetRepo().Update(ctx, p); err != nil {
		t.Fatalf("update: %v", err)
	}

	food := storage.Item{
		ID: "meal-1", Owner: storage.OwnerInventory, Name: "Pet Food", Icon: "🍖",
		Category: ItemConsumable, IsConsumable: true, CurrentUses: 1,
	}
	if err := svc.ItemRepo().Insert(ctx, food); err != nil {
		t.Fatalf("insert food: %v", err)
	}

	res, err := svc.UseConsumable(ctx, food.ID)
	if err != nil {
		t.Fatalf("UseConsumable: %v", err)
	}
	if !res.PetFed {
		t.Fatalf("pet food did not feed the pet")
	}
	fed, _ := svc.PetRepo().Get(ctx, p.ID)
	if fed.Hunger != 100 {
		t.Fatalf("hunger=%d, want 100", fed.Hunger)
	}
	c := mainCharacter(t, svc)
	if c.Gold != 0 {
		t.Fatalf("gold=%d after item feed, want 0 spent from 0", c.Gold)
	}
}

func TestFormatPetBonusByType(t *testing.T) {
	if got := FormatPetBonus(BonusExp, 0.10); got != "+10.0% exp" {
		t.Fatalf("exp bonus rendered %q", got)
	}
	if got := FormatPetBonus(BonusGold, 0.105); got != "+10.5% gold" {
		t.Fatalf("gold bonus rendered %q", got)
	}
	// Flat bonuses are points, not percentages.
	if got := FormatPetBonus(BonusDamage, 5); got != "+5 damage" {
		t.Fatalf("damage bonus rendered %q", got)
	}
	if got := FormatPetBonus(BonusHealth, 50); got != "+50 health" {
		t.Fatalf("health bonus rendered %q", got)
	}
}
