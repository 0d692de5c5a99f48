package game

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/Popilynx/SistemaLevelUp-sub000/internal/storage"
)

func TestDealDamageSoakAndFloor(t *testing.T) {
	b := &storage.Boss{Health: 10, MaxHealth: 100, Defense: 5, Status: BossAlive}

	applied, killed := DealDamage(b, 12)
	if applied != 7 || killed || b.Health != 3 {
		t.Fatalf("applied=%d killed=%v health=%d, want 7/false/3", applied, killed, b.Health)
	}

	// Defense can never soak a hit below 1.
	applied, killed = DealDamage(b, 3)
	if applied != 1 || killed || b.Health != 2 {
		t.Fatalf("applied=%d killed=%v health=%d, want 1/false/2", applied, killed, b.Health)
	}

	// Overkill caps at remaining health and flips the status once.
	applied, killed = DealDamage(b, 50)
	if applied != 2 || !killed || b.Health != 0 || b.Status != BossDefeated {
		t.Fatalf("applied=%d killed=%v health=%d status=%s, want 2/true/0/defeated", applied, killed, b.Health, b.Status)
	}

	// Defeat is one-way: further hits do nothing.
	applied, killed = DealDamage(b, 100)
	if applied != 0 || killed || b.Health != 0 {
		t.Fatalf("applied=%d killed=%v health=%d, want 0/false/0 on a dead boss", applied, killed, b.Health)
	}
}

func TestCalculateBossDamageBounds(t *testing.T) {
	b := &storage.Boss{Attack: 20}
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		dmg := CalculateBossDamage(b, 5, rng)
		if dmg < 12 || dmg > 18 {
			t.Fatalf("counter damage %d outside [12,18] for base 15", dmg)
		}
	}

	// Player defense floors the base at 1, never negates the hit.
	for i := 0; i < 100; i++ {
		dmg := CalculateBossDamage(b, 100, rng)
		if dmg < 1 || dmg > 2 {
			t.Fatalf("counter damage %d outside [1,2] for floored base", dmg)
		}
	}
}

func TestBossScalesWithLevelAndDifficulty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	b := newDailyBoss("2026-03-10", 2, 1, rng)
	if b.MaxHealth != 200 || b.Attack != 14 || b.Defense != 6 {
		t.Fatalf("level-2 boss hp=%d atk=%d def=%d, want 200/14/6", b.MaxHealth, b.Attack, b.Defense)
	}
	if b.RewardGold != 100 || b.RewardExp != 400 {
		t.Fatalf("rewards gold=%d exp=%d, want 100/400", b.RewardGold, b.RewardExp)
	}

	harder := newDailyBoss("2026-03-10", 2, 2, rng)
	if harder.MaxHealth != 300 || harder.Attack != 21 {
		t.Fatalf("difficulty-2 boss hp=%d atk=%d, want 300/21", harder.MaxHealth, harder.Attack)
	}
	// Defense and rewards do not scale with difficulty.
	if harder.Defense != b.Defense || harder.RewardGold != b.RewardGold {
		t.Fatalf("difficulty changed defense or rewards")
	}
}

func TestDailyBossStableWithinDay(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	setDay(svc, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	b1, err := svc.DailyBoss(ctx)
	if err != nil {
		t.Fatalf("DailyBoss: %v", err)
	}
	b2, err := svc.DailyBoss(ctx)
	if err != nil {
		t.Fatalf("DailyBoss again: %v", err)
	}
	if b1.Day != b2.Day || b1.Name != b2.Name || b1.MaxHealth != b2.MaxHealth {
		t.Fatalf("same-day boss changed: %+v vs %+v", b1, b2)
	}

	// A wounded boss from yesterday is discarded, not carried over.
	b1.Health = 1
	if err := svc.BossRepo().Update(ctx, b1); err != nil {
		t.Fatalf("update: %v", err)
	}
	setDay(svc, time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC))
	b3, err := svc.DailyBoss(ctx)
	if err != nil {
		t.Fatalf("next-day DailyBoss: %v", err)
	}
	if b3.Day != "2026-03-11" || b3.Health != b3.MaxHealth {
		t.Fatalf("next-day boss day=%s health=%d/%d, want fresh full-health boss", b3.Day, b3.Health, b3.MaxHealth)
	}
}

func TestAttackBossExchange(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	setDay(svc, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	mainCharacter(t, svc)
	b, err := svc.DailyBoss(ctx)
	if err != nil {
		t.Fatalf("DailyBoss: %v", err)
	}

	res, err := svc.AttackBoss(ctx)
	if err != nil {
		t.Fatalf("AttackBoss: %v", err)
	}
	// Bare-handed attack is base damage minus the level-1 boss's defense 5.
	if res.DamageDealt != BasePlayerDamage-5 {
		t.Fatalf("damage=%d, want %d", res.DamageDealt, BasePlayerDamage-5)
	}
	if res.BossDefeated {
		t.Fatalf("boss defeated after one bare-handed hit")
	}
	if res.CounterDamage < 1 {
		t.Fatalf("surviving boss did not counter")
	}
	if res.PlayerHealth != 1000-res.CounterDamage {
		t.Fatalf("playerHealth=%d, want %d", res.PlayerHealth, 1000-res.CounterDamage)
	}

	// A killing blow draws no counter.
	b, err = svc.DailyBoss(ctx)
	if err != nil {
		t.Fatalf("DailyBoss: %v", err)
	}
	b.Health = 3
	if err := svc.BossRepo().Update(ctx, b); err != nil {
		t.Fatalf("update: %v", err)
	}
	res, err = svc.AttackBoss(ctx)
	if err != nil {
		t.Fatalf("killing AttackBoss: %v", err)
	}
	if !res.BossDefeated || res.CounterDamage != 0 {
		t.Fatalf("defeated=%v counter=%d, want true/0", res.BossDefeated, res.CounterDamage)
	}

	// Attacking a corpse is an error.
	if _, err := svc.AttackBoss(ctx); err == nil {
		t.Fatalf("expected error attacking a defeated boss")
	}
}

func TestClaimBossRewardOnce(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	setDay(svc, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	mainCharacter(t, svc)
	if _, err := svc.ClaimBossReward(ctx); !errors.Is(err, ErrBossAlive) {
		t.Fatalf("claim on live boss err=%v, want ErrBossAlive", err)
	}

	b, err := svc.DailyBoss(ctx)
	if err != nil {
		t.Fatalf("DailyBoss: %v", err)
	}
	b.Health = 1
	if err := svc.BossRepo().Update(ctx, b); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := svc.AttackBoss(ctx); err != nil {
		t.Fatalf("AttackBoss: %v", err)
	}

	res, err := svc.ClaimBossReward(ctx)
	if err != nil {
		t.Fatalf("ClaimBossReward: %v", err)
	}
	if res == nil || res.Gold != b.RewardGold || res.Exp != b.RewardExp {
		t.Fatalf("claim=%+v, want gold=%d exp=%d", res, b.RewardGold, b.RewardExp)
	}

	c := mainCharacter(t, svc)
	if c.Gold != b.RewardGold {
		t.Fatalf("gold=%d, want %d", c.Gold, b.RewardGold)
	}

	// Claimed is terminal: the second claim is a nil no-op and pays nothing.
	res, err = svc.ClaimBossReward(ctx)
	if err != nil {
		t.Fatalf("second claim: %v", err)
	}
	if res != nil {
		t.Fatalf("second claim paid again: %+v", res)
	}
	if c := mainCharacter(t, svc); c.Gold != b.RewardGold {
		t.Fatalf("gold=%d after double claim, want %d", c.Gold, b.RewardGold)
	}
}

func TestPetHealthBonusSoaksCounter(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	setDay(svc, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))

	mainCharacter(t, svc)
	b, err := svc.DailyBoss(ctx)
	if err != nil {
		t.Fatalf("DailyBoss: %v", err)
	}
	b.Attack = 6
	b.Health = 500
	b.MaxHealth = 500
	if err := svc.BossRepo().Update(ctx, b); err != nil {
		t.Fatalf("update: %v", err)
	}

	// Without a companion the counter keeps most of its bite.
	res, err := svc.AttackBoss(ctx)
	if err != nil {
		t.Fatalf("AttackBoss: %v", err)
	}
	if res.CounterDamage < 5 {
		t.Fatalf("unsoaked counter=%d, want >= 5", res.CounterDamage)
	}

	// The phoenix's +50 health soaks counters like 50 points of armor.
	if _, err := svc.AdoptPet(ctx, "phoenix"); err != nil {
		t.Fatalf("adopt phoenix: %v", err)
	}
	res, err = svc.AttackBoss(ctx)
	if err != nil {
		t.Fatalf("AttackBoss with phoenix: %v", err)
	}
	if res.CounterDamage != 1 {
		t.Fatalf("soaked counter=%d, want 1", res.CounterDamage)
	}
}
