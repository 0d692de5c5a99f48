package game

import (
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/Popilynx/SistemaLevelUp-sub000/internal/storage"
)

func newTestService(t *testing.T) (*Service, func()) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	svc := NewService(db)
	svc.rng = rand.New(rand.NewSource(1))
	cleanup := func() {
		_ = db.Close()
	}
	return svc, cleanup
}

func setDay(svc *Service, day time.Time) {
	svc.SetClock(func() time.Time { return day })
}

func mainCharacter(t *testing.T, svc *Service) *storage.Character {
	t.Helper()
	c, err := svc.CharacterRepo().GetOrCreateMain(context.Background())
	if err != nil {
		t.Fatalf("get character: %v", err)
	}
	return c
}

func TestExpRequirementBoundaries(t *testing.T) {
	if got := ExpRequiredForLevel(1); got != 500 {
		t.Fatalf("ExpRequiredForLevel(1)=%d, want 500", got)
	}
	if got := ExpRequiredForLevel(3); got != 1500 {
		t.Fatalf("ExpRequiredForLevel(3)=%d, want 1500", got)
	}
	// Out-of-range levels clamp to the level-1 requirement.
	if got := ExpRequiredForLevel(0); got != 500 {
		t.Fatalf("ExpRequiredForLevel(0)=%d, want 500", got)
	}
}

func TestRankBoundaries(t *testing.T) {
	cases := []struct {
		level int
		want  string
	}{
		{1, "E"}, {10, "E"}, {11, "D"}, {20, "D"},
		{21, "C"}, {40, "C"}, {41, "B"}, {70, "B"}, {71, "A"},
	}
	for _, c := range cases {
		if got := RankForLevel(c.level); got != c.want {
			t.Fatalf("RankForLevel(%d)=%q, want %q", c.level, got, c.want)
		}
	}
}

func TestLevelUpNormalization(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	mainCharacter(t, svc)
	res, err := svc.ApplyReward(ctx, Reward{Exp: 600, Source: "test"})
	if err != nil {
		t.Fatalf("ApplyReward: %v", err)
	}
	if res.LevelsGained != 1 || res.NewLevel != 2 {
		t.Fatalf("levels=%d newLevel=%d, want 1/2", res.LevelsGained, res.NewLevel)
	}

	c := mainCharacter(t, svc)
	if c.Level != 2 || c.CurrentExp != 100 {
		t.Fatalf("level=%d exp=%d, want 2/100", c.Level, c.CurrentExp)
	}
	if c.MaxHealth != 1100 || c.Health != 1100 {
		t.Fatalf("maxHealth=%d health=%d, want 1100/1100", c.MaxHealth, c.Health)
	}
	if c.TotalExp != 600 {
		t.Fatalf("totalExp=%d, want 600", c.TotalExp)
	}
}

func TestMultiLevelGrantGrowsHealthPerLevel(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	mainCharacter(t, svc)
	// 500 + 1000 + 100 crosses two thresholds in one grant.
	res, err := svc.ApplyReward(ctx, Reward{Exp: 1600, Source: "test"})
	if err != nil {
		t.Fatalf("ApplyReward: %v", err)
	}
	if res.LevelsGained != 2 || res.NewLevel != 3 {
		t.Fatalf("levels=%d newLevel=%d, want 2/3", res.LevelsGained, res.NewLevel)
	}

	c := mainCharacter(t, svc)
	if c.CurrentExp != 100 {
		t.Fatalf("currentExp=%d, want 100", c.CurrentExp)
	}
	if c.MaxHealth != 1000+2*HealthPerLevel {
		t.Fatalf("maxHealth=%d, want %d", c.MaxHealth, 1000+2*HealthPerLevel)
	}
}

func TestPenaltyDrainsCurrentExpOnly(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	mainCharacter(t, svc)
	if _, err := svc.ApplyReward(ctx, Reward{Exp: 600, Source: "test"}); err != nil {
		t.Fatalf("grant: %v", err)
	}
	if _, err := svc.ApplyReward(ctx, Reward{Exp: -300, Source: "test"}); err != nil {
		t.Fatalf("penalty: %v", err)
	}

	c := mainCharacter(t, svc)
	if c.CurrentExp != 0 {
		t.Fatalf("currentExp=%d, want 0 (clamped)", c.CurrentExp)
	}
	if c.TotalExp != 600 {
		t.Fatalf("totalExp=%d, want 600 (never shrinks)", c.TotalExp)
	}
	if c.Level != 2 {
		t.Fatalf("level=%d, want 2 (never revoked)", c.Level)
	}
}

func TestLevelUpEventPublished(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	var got []Event
	svc.Events().Subscribe(func(e Event) { got = append(got, e) })

	mainCharacter(t, svc)
	if _, err := svc.ApplyReward(ctx, Reward{Exp: 500, Source: "test"}); err != nil {
		t.Fatalf("ApplyReward: %v", err)
	}

	found := false
	for _, e := range got {
		if lu, ok := e.(LevelUp); ok {
			found = true
			if lu.Gained != 1 || lu.NewLevel != 2 {
				t.Fatalf("LevelUp{%d,%d}, want {1,2}", lu.Gained, lu.NewLevel)
			}
		}
	}
	if !found {
		t.Fatalf("no LevelUp event among %d events", len(got))
	}
}

func TestCompleteGoodHabitOncePerDay(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	setDay(svc, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	id, err := svc.CreateGoodHabit(ctx, CreateGoodHabitInput{Title: "Morning run", Category: CategoryFitness})
	if err != nil {
		t.Fatalf("CreateGoodHabit: %v", err)
	}

	res, err := svc.CompleteGoodHabit(ctx, id)
	if err != nil {
		t.Fatalf("CompleteGoodHabit: %v", err)
	}
	if res.Streak != 1 || res.ExpGranted != DefaultHabitExp || res.GoldGranted != DefaultHabitGold {
		t.Fatalf("streak=%d exp=%d gold=%d, want 1/%d/%d", res.Streak, res.ExpGranted, res.GoldGranted, DefaultHabitExp, DefaultHabitGold)
	}

	if _, err := svc.CompleteGoodHabit(ctx, id); !errors.Is(err, ErrAlreadyDone) {
		t.Fatalf("second completion err=%v, want ErrAlreadyDone", err)
	}

	// A new day allows another completion and extends the streak.
	setDay(svc, time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC))
	res, err = svc.CompleteGoodHabit(ctx, id)
	if err != nil {
		t.Fatalf("next-day completion: %v", err)
	}
	if res.Streak != 2 {
		t.Fatalf("streak=%d, want 2", res.Streak)
	}
}

func TestRecordFallAppliesPenalties(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	mainCharacter(t, svc)
	id, err := svc.CreateBadHabit(ctx, CreateBadHabitInput{Title: "Junk food"})
	if err != nil {
		t.Fatalf("CreateBadHabit: %v", err)
	}

	res, err := svc.RecordFall(ctx, id)
	if err != nil {
		t.Fatalf("RecordFall: %v", err)
	}
	if res.HealthLost != DefaultFallHealth || res.ExpLost != DefaultFallExp || res.TotalFalls != 1 {
		t.Fatalf("fall=%+v, want defaults and 1 total fall", res)
	}

	c := mainCharacter(t, svc)
	if c.Health != 1000-DefaultFallHealth {
		t.Fatalf("health=%d, want %d", c.Health, 1000-DefaultFallHealth)
	}

	h, err := svc.HabitRepo().GetBad(ctx, id)
	if err != nil {
		t.Fatalf("GetBad: %v", err)
	}
	if h.DaysClean != 0 || h.MonthlyFalls != 1 {
		t.Fatalf("daysClean=%d monthlyFalls=%d, want 0/1", h.DaysClean, h.MonthlyFalls)
	}
}

func TestToggleEquipSlotExclusivity(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	weapon := func(id, name string, dmg int) storage.Item {
		return storage.Item{
			ID: id, Owner: storage.OwnerInventory, Name: name,
			Category: ItemEquipment, Slot: strPtr(SlotWeapon), Damage: dmg,
		}
	}
	if err := svc.ItemRepo().Insert(ctx, weapon("w1", "Sword", 5)); err != nil {
		t.Fatalf("insert w1: %v", err)
	}
	if err := svc.ItemRepo().Insert(ctx, weapon("w2", "Axe", 8)); err != nil {
		t.Fatalf("insert w2: %v", err)
	}

	if _, err := svc.ToggleEquip(ctx, "w1"); err != nil {
		t.Fatalf("equip w1: %v", err)
	}
	if _, err := svc.ToggleEquip(ctx, "w2"); err != nil {
		t.Fatalf("equip w2: %v", err)
	}

	w1, _ := svc.ItemRepo().Get(ctx, "w1")
	w2, _ := svc.ItemRepo().Get(ctx, "w2")
	if w1.IsEquipped {
		t.Fatalf("w1 still equipped after w2 took the slot")
	}
	if !w2.IsEquipped {
		t.Fatalf("w2 not equipped")
	}

	st, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.Damage != 8 {
		t.Fatalf("damage=%d, want 8 (only the equipped weapon counts)", st.Damage)
	}

	// Toggling the equipped item unequips it.
	if _, err := svc.ToggleEquip(ctx, "w2"); err != nil {
		t.Fatalf("unequip w2: %v", err)
	}
	w2, _ = svc.ItemRepo().Get(ctx, "w2")
	if w2.IsEquipped {
		t.Fatalf("w2 still equipped after toggle")
	}
}

func TestToggleEquipRejectsSlotless(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	if err := svc.ItemRepo().Insert(ctx, storage.Item{
		ID: "potion", Owner: storage.OwnerInventory, Name: "Health Potion",
		Category: ItemConsumable, IsConsumable: true, CurrentUses: 1, HealthBonus: 200,
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	_, err := svc.ToggleEquip(ctx, "potion")
	var ne ErrNotEquippable
	if !errors.As(err, &ne) {
		t.Fatalf("err=%v, want ErrNotEquippable", err)
	}
}

func TestUseConsumableHealsAndExpires(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	mainCharacter(t, svc)
	if _, err := svc.ApplyReward(ctx, Reward{Health: -500, Source: "test"}); err != nil {
		t.Fatalf("damage: %v", err)
	}
	if err := svc.ItemRepo().Insert(ctx, storage.Item{
		ID: "potion", Owner: storage.OwnerInventory, Name: "Health Potion",
		Category: ItemConsumable, IsConsumable: true, CurrentUses: 1, HealthBonus: 200,
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	res, err := svc.UseConsumable(ctx, "potion")
	if err != nil {
		t.Fatalf("UseConsumable: %v", err)
	}
	if res.HealthRestored != 200 || res.UsesLeft != 0 {
		t.Fatalf("restored=%d usesLeft=%d, want 200/0", res.HealthRestored, res.UsesLeft)
	}

	c := mainCharacter(t, svc)
	if c.Health != 700 {
		t.Fatalf("health=%d, want 700", c.Health)
	}

	it, err := svc.ItemRepo().Get(ctx, "potion")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if it != nil {
		t.Fatalf("exhausted consumable still in inventory")
	}
}

func TestHealingNeverOvershootsMax(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	mainCharacter(t, svc)
	if _, err := svc.ApplyReward(ctx, Reward{Health: -50, Source: "test"}); err != nil {
		t.Fatalf("damage: %v", err)
	}
	if err := svc.ItemRepo().Insert(ctx, storage.Item{
		ID: "big", Owner: storage.OwnerInventory, Name: "Greater Potion",
		Category: ItemConsumable, IsConsumable: true, CurrentUses: 1, HealthBonus: 500,
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	res, err := svc.UseConsumable(ctx, "big")
	if err != nil {
		t.Fatalf("UseConsumable: %v", err)
	}
	if res.HealthRestored != 50 {
		t.Fatalf("restored=%d, want 50 (clamped at max)", res.HealthRestored)
	}
	if c := mainCharacter(t, svc); c.Health != c.MaxHealth {
		t.Fatalf("health=%d max=%d, want full", c.Health, c.MaxHealth)
	}
}

func TestBoostScrollSpendsChargePerReward(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	setDay(svc, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	mainCharacter(t, svc)
	if err := svc.ItemRepo().Insert(ctx, storage.Item{
		ID: "scroll", Owner: storage.OwnerInventory, Name: "Scroll of Insight",
		Category: ItemBoost, ExpBonus: 0.25, CurrentUses: 1,
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	id, err := svc.CreateGoodHabit(ctx, CreateGoodHabitInput{Title: "Read"})
	if err != nil {
		t.Fatalf("CreateGoodHabit: %v", err)
	}
	res, err := svc.CompleteGoodHabit(ctx, id)
	if err != nil {
		t.Fatalf("CompleteGoodHabit: %v", err)
	}
	if res.ExpGranted != 25 {
		t.Fatalf("exp=%d, want 25 (20 * 1.25)", res.ExpGranted)
	}

	it, err := svc.ItemRepo().Get(ctx, "scroll")
	if err != nil {
		t.Fatalf("get scroll: %v", err)
	}
	if it != nil {
		t.Fatalf("spent scroll still in inventory")
	}

	// With the scroll gone the next reward is unscaled.
	id2, err := svc.CreateGoodHabit(ctx, CreateGoodHabitInput{Title: "Write"})
	if err != nil {
		t.Fatalf("CreateGoodHabit: %v", err)
	}
	res, err = svc.CompleteGoodHabit(ctx, id2)
	if err != nil {
		t.Fatalf("CompleteGoodHabit: %v", err)
	}
	if res.ExpGranted != DefaultHabitExp {
		t.Fatalf("exp=%d, want %d", res.ExpGranted, DefaultHabitExp)
	}
}

func TestEquippedAccessoryScalesRewards(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	setDay(svc, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	mainCharacter(t, svc)
	if err := svc.ItemRepo().Insert(ctx, storage.Item{
		ID: "ring", Owner: storage.OwnerInventory, Name: "Scholar's Ring",
		Category: ItemEquipment, Slot: strPtr(SlotAccessory), ExpBonus: 0.10,
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := svc.ToggleEquip(ctx, "ring"); err != nil {
		t.Fatalf("equip: %v", err)
	}

	id, err := svc.CreateGoodHabit(ctx, CreateGoodHabitInput{Title: "Study"})
	if err != nil {
		t.Fatalf("CreateGoodHabit: %v", err)
	}
	res, err := svc.CompleteGoodHabit(ctx, id)
	if err != nil {
		t.Fatalf("CompleteGoodHabit: %v", err)
	}
	if res.ExpGranted != 22 {
		t.Fatalf("exp=%d, want 22 (20 * 1.10)", res.ExpGranted)
	}

	// Equipment never loses charges.
	it, _ := svc.ItemRepo().Get(ctx, "ring")
	if it == nil || !it.IsEquipped {
		t.Fatalf("ring missing or unequipped after reward")
	}
}
