package game

import (
	"context"
	"math"
	"math/rand"

	"github.com/Popilynx/SistemaLevelUp-sub000/internal/storage"
)

// Player base damage before equipment and pet bonuses.
const BasePlayerDamage = 10

// DealDamage applies an attack to a boss: the boss's defense soaks damage
// down to a minimum of 1, health floors at zero, and reaching zero flips the
// status to defeated exactly once.
func DealDamage(b *storage.Boss, amount int) (applied int, killed bool) {
	applied = amount - b.Defense
	if applied < 1 {
		applied = 1
	}
	if applied > b.Health {
		applied = b.Health
	}
	b.Health -= applied
	if b.Health <= 0 && b.Status == BossAlive {
		b.Health = 0
		b.Status = BossDefeated
		killed = true
	}
	return applied, killed
}

// CalculateBossDamage is the boss counter-attack: soak by the player's
// defense, minimum 1, scaled by a uniform factor in [0.8, 1.2].
func CalculateBossDamage(b *storage.Boss, playerDefense int, rng *rand.Rand) int {
	base := b.Attack - playerDefense
	if base < 1 {
		base = 1
	}
	factor := 0.8 + rng.Float64()*0.4
	return int(math.Round(float64(base) * factor))
}

func newDailyBoss(day string, level, difficulty int, rng *rand.Rand) *storage.Boss {
	if level < 1 {
		level = 1
	}
	if difficulty < 1 {
		difficulty = 1
	}
	mult := 1 + 0.5*float64(difficulty-1)

	maxHealth := int(float64(100+50*level) * mult)
	return &storage.Boss{
		Day:        day,
		Name:       bossNames[rng.Intn(len(bossNames))],
		Health:     maxHealth,
		MaxHealth:  maxHealth,
		Attack:     int(float64(10+2*level) * mult),
		Defense:    5 + level/2,
		RewardGold: 50 + 25*level,
		RewardExp:  200 + 100*level,
		Status:     BossAlive,
	}
}

// DailyBoss returns today's boss, deriving a fresh instance when none exists
// or the stored one belongs to a previous day. A half-dead boss from
// yesterday is discarded, never carried over.
func (s *Service) DailyBoss(ctx context.Context) (*storage.Boss, error) {
	day := s.today()
	b, err := s.bosses.GetByDay(ctx, day)
	if err != nil {
		return nil, err
	}
	if b != nil {
		return b, nil
	}

	c, err := s.getCharacter(ctx)
	if err != nil {
		return nil, err
	}
	b = newDailyBoss(day, c.Level, c.Difficulty, s.rng)
	if err := s.bosses.Replace(ctx, b); err != nil {
		return nil, err
	}
	s.bus.Publish(Changed{Scope: ScopeBoss})
	return b, nil
}

type AttackResult struct {
	DamageDealt   int
	Critical      bool
	BossHealth    int
	BossDefeated  bool
	CounterDamage int
	PlayerHealth  int
}

// AttackBoss performs one exchange: the player strikes, and a surviving boss
// counter-attacks.
func (s *Service) AttackBoss(ctx context.Context) (*AttackResult, error) {
	b, err := s.DailyBoss(ctx)
	if err != nil {
		return nil, err
	}
	if b.Status == BossDefeated {
		return nil, ClaimError{What: "boss fight", Status: BossDefeated}
	}

	st, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}
	pet, err := s.ActivePet(ctx)
	if err != nil {
		return nil, err
	}
	attack := BasePlayerDamage + st.Damage + int(GetPetBonus(pet, BonusDamage))

	crit := s.rng.Float64() < st.CritChance
	if crit {
		attack *= 2
	}

	applied, killed := DealDamage(b, attack)
	if err := s.bosses.Update(ctx, b); err != nil {
		return nil, err
	}
	if err := s.UpdateQuestProgress(ctx, TargetBossDamage, applied, ""); err != nil {
		return nil, err
	}

	res := &AttackResult{
		DamageDealt:  applied,
		Critical:     crit,
		BossHealth:   b.Health,
		BossDefeated: killed,
	}

	c, err := s.getCharacter(ctx)
	if err != nil {
		return nil, err
	}
	if !killed {
		// Armor and pet health bonuses double as damage soak.
		healthBonus := st.HealthBonus + int(GetPetBonus(pet, BonusHealth))
		counter := CalculateBossDamage(b, healthBonus/10, s.rng)
		c.Health -= counter
		if c.Health < 0 {
			c.Health = 0
		}
		if err := s.characters.Update(ctx, c); err != nil {
			return nil, err
		}
		res.CounterDamage = counter
		s.logActivity(ctx, "Fought "+b.Name, "combat", 0, 0, -counter)
	} else {
		s.logActivity(ctx, "Defeated "+b.Name, "combat", 0, 0, 0)
	}
	res.PlayerHealth = c.Health

	s.bus.Publish(Changed{Scope: ScopeBoss})
	return res, nil
}

type BossRewardResult struct {
	Gold         int
	Exp          int
	LevelsGained int
	NewLevel     int
}

// ClaimBossReward grants the day's boss reward once. Claiming an already
// claimed boss is a nil no-op; claiming a live boss is an error.
func (s *Service) ClaimBossReward(ctx context.Context) (*BossRewardResult, error) {
	b, err := s.DailyBoss(ctx)
	if err != nil {
		return nil, err
	}
	if b.Status != BossDefeated {
		return nil, ErrBossAlive
	}
	if b.RewardClaimed {
		return nil, nil
	}

	exp, gold, err := s.scaleReward(ctx, b.RewardExp, b.RewardGold)
	if err != nil {
		return nil, err
	}
	c, err := s.getCharacter(ctx)
	if err != nil {
		return nil, err
	}
	res, err := s.applyReward(ctx, c, Reward{Exp: exp, Gold: gold, Source: "boss"})
	if err != nil {
		return nil, err
	}

	b.RewardClaimed = true
	if err := s.bosses.Update(ctx, b); err != nil {
		return nil, err
	}

	s.logActivity(ctx, "Claimed reward from "+b.Name, "combat", exp, gold, 0)
	s.bus.Publish(Changed{Scope: ScopeBoss})

	return &BossRewardResult{
		Gold:         gold,
		Exp:          exp,
		LevelsGained: res.LevelsGained,
		NewLevel:     res.NewLevel,
	}, nil
}
