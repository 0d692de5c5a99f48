package game

import (
	"context"
	"math"

	"github.com/Popilynx/SistemaLevelUp-sub000/internal/storage"
)

// ExpPerLevel is the per-level experience requirement multiplier:
// requirement(level) = level * ExpPerLevel.
const ExpPerLevel = 500

// HealthPerLevel is the max-health gain per level.
const HealthPerLevel = 100

// BaselineMaxHealth is the starting (and post-reset) max health.
const BaselineMaxHealth = 1000

// PetExpShare routes a fraction of every habit experience grant to the
// active pet.
const PetExpShare = 0.2

// ExpRequiredForLevel returns the current-level experience needed to advance
// past the given level.
func ExpRequiredForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return level * ExpPerLevel
}

// Reward is a single grant of progression currency.
type Reward struct {
	Exp      int
	Gold     int
	Health   int
	Category Category
	Source   string
	// FeedPet routes PetExpShare of Exp to the active pet. Habit rewards
	// set this; boss/quest rewards do not.
	FeedPet bool
}

type RewardResult struct {
	ExpGranted   int
	GoldGranted  int
	LevelsGained int
	NewLevel     int
	NewRank      string
}

// ApplyReward grants a reward to the stored character, running leveling
// normalization. Returns nil without error when no character exists.
func (s *Service) ApplyReward(ctx context.Context, r Reward) (*RewardResult, error) {
	c, err := s.characters.Get(ctx, storage.MainCharacterKey)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	return s.applyReward(ctx, c, r)
}

func (s *Service) applyReward(ctx context.Context, c *storage.Character, r Reward) (*RewardResult, error) {
	// Penalties drain current experience only; the lifetime total stands.
	c.CurrentExp += r.Exp
	if c.CurrentExp < 0 {
		c.CurrentExp = 0
	}
	if r.Exp > 0 {
		c.TotalExp += r.Exp
	}
	c.Gold += r.Gold
	if c.Gold < 0 {
		c.Gold = 0
	}
	c.Health += r.Health
	if c.Health > c.MaxHealth {
		c.Health = c.MaxHealth
	}
	if c.Health < 0 {
		c.Health = 0
	}

	// Leveling normalization: a single large grant may span several levels.
	levels := 0
	for c.CurrentExp >= ExpRequiredForLevel(c.Level) {
		c.CurrentExp -= ExpRequiredForLevel(c.Level)
		c.Level++
		c.MaxHealth += HealthPerLevel
		c.Health = c.MaxHealth
		levels++
	}
	c.Rank = RankForLevel(c.Level)

	if err := s.characters.Update(ctx, c); err != nil {
		return nil, err
	}
	if r.Exp > 0 && r.Category != "" {
		if err := s.characters.AddCategoryXP(ctx, c.Key, string(r.Category), r.Exp); err != nil {
			return nil, err
		}
	}

	if r.FeedPet && r.Exp > 0 && c.ActivePetID != nil {
		if err := s.grantPetExp(ctx, *c.ActivePetID, CalculatePetExpGain(r.Exp)); err != nil {
			return nil, err
		}
	}

	if r.Gold > 0 {
		if err := s.UpdateQuestProgress(ctx, TargetGoldEarned, r.Gold, ""); err != nil {
			return nil, err
		}
	}
	if r.Exp > 0 {
		if err := s.UpdateQuestProgress(ctx, TargetExpEarned, r.Exp, ""); err != nil {
			return nil, err
		}
	}

	s.bus.Publish(Changed{Scope: ScopeCharacter})
	if levels > 0 {
		s.bus.Publish(LevelUp{Gained: levels, NewLevel: c.Level})
	}

	return &RewardResult{
		ExpGranted:   r.Exp,
		GoldGranted:  r.Gold,
		LevelsGained: levels,
		NewLevel:     c.Level,
		NewRank:      c.Rank,
	}, nil
}

// Stats are the combat/economy bonuses derived from equipped items.
type Stats struct {
	Damage      int
	ExpBonus    float64
	GoldBonus   float64
	HealthBonus int
	CritChance  float64
}

// CalculateStats sums the bonuses of equipped inventory items.
// Unequipped items contribute nothing.
func CalculateStats(items []storage.Item) Stats {
	var st Stats
	for _, it := range items {
		if !it.IsEquipped {
			continue
		}
		st.Damage += it.Damage
		st.ExpBonus += it.ExpBonus
		st.GoldBonus += it.GoldBonus
		st.HealthBonus += it.HealthBonus
		st.CritChance += it.CritChance
	}
	return st
}

// Stats loads the inventory and derives equipped stats.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	items, err := s.items.ListByOwner(ctx, storage.OwnerInventory)
	if err != nil {
		return Stats{}, err
	}
	return CalculateStats(items), nil
}

// ToggleEquip flips the equip state of one inventory item. Equipping into an
// occupied slot unequips the previous occupant first, so at most one item per
// slot is ever equipped.
func (s *Service) ToggleEquip(ctx context.Context, itemID string) (*storage.Item, error) {
	it, err := s.items.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it == nil || it.Owner != storage.OwnerInventory {
		return nil, ErrItemNotFound
	}
	if it.Slot == nil {
		return nil, ErrNotEquippable{Name: it.Name}
	}

	if it.IsEquipped {
		if err := s.items.SetEquipped(ctx, it.ID, false); err != nil {
			return nil, err
		}
		it.IsEquipped = false
		s.bus.Publish(Changed{Scope: ScopeCharacter})
		return it, nil
	}

	inventory, err := s.items.ListByOwner(ctx, storage.OwnerInventory)
	if err != nil {
		return nil, err
	}
	for _, other := range inventory {
		if other.ID == it.ID || !other.IsEquipped || other.Slot == nil {
			continue
		}
		if *other.Slot == *it.Slot {
			if err := s.items.SetEquipped(ctx, other.ID, false); err != nil {
				return nil, err
			}
		}
	}
	if err := s.items.SetEquipped(ctx, it.ID, true); err != nil {
		return nil, err
	}
	it.IsEquipped = true
	s.bus.Publish(Changed{Scope: ScopeCharacter})
	return it, nil
}

type UseResult struct {
	HealthRestored int
	PetFed         bool
	UsesLeft       int
}

// UseConsumable spends one use of a consumable: items with a health bonus
// heal the character, the rest are pet food. Exhausted items leave the
// inventory.
func (s *Service) UseConsumable(ctx context.Context, itemID string) (*UseResult, error) {
	it, err := s.items.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it == nil || it.Owner != storage.OwnerInventory {
		return nil, ErrItemNotFound
	}
	if !it.IsConsumable || it.CurrentUses <= 0 {
		return nil, ErrNotConsumable
	}

	res := &UseResult{}
	if it.HealthBonus > 0 {
		c, err := s.getCharacter(ctx)
		if err != nil {
			return nil, err
		}
		before := c.Health
		c.Health += it.HealthBonus
		if c.Health > c.MaxHealth {
			c.Health = c.MaxHealth
		}
		if err := s.characters.Update(ctx, c); err != nil {
			return nil, err
		}
		res.HealthRestored = c.Health - before
		s.logActivity(ctx, "Used "+it.Name, "item", 0, 0, res.HealthRestored)
	} else {
		// Pet food from the inventory feeds without the gold surcharge.
		p, err := s.ActivePet(ctx)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, ErrNoActivePet
		}
		if err := s.feedPet(ctx, p); err != nil {
			return nil, err
		}
		res.PetFed = true
		s.logActivity(ctx, "Fed pet with "+it.Name, "pet", 0, 0, 0)
	}

	it.CurrentUses--
	res.UsesLeft = it.CurrentUses
	if it.CurrentUses <= 0 {
		if err := s.items.Delete(ctx, it.ID); err != nil {
			return nil, err
		}
	} else {
		if err := s.items.SetUses(ctx, it.ID, it.CurrentUses); err != nil {
			return nil, err
		}
	}
	s.bus.Publish(Changed{Scope: ScopeCharacter})
	return res, nil
}

// scaleReward applies equipped exp/gold bonuses, charged boost items, and any
// matching pet bonus. Each boost item in the inventory spends one charge per
// scaled reward and disappears when spent.
func (s *Service) scaleReward(ctx context.Context, baseExp, baseGold int) (int, int, error) {
	items, err := s.items.ListByOwner(ctx, storage.OwnerInventory)
	if err != nil {
		return 0, 0, err
	}
	st := CalculateStats(items)
	expBonus, goldBonus := st.ExpBonus, st.GoldBonus

	var spent []storage.Item
	for _, it := range items {
		if it.Category == ItemBoost && it.CurrentUses > 0 {
			expBonus += it.ExpBonus
			goldBonus += it.GoldBonus
			spent = append(spent, it)
		}
	}

	if pet, err := s.ActivePet(ctx); err != nil {
		return 0, 0, err
	} else if pet != nil {
		expBonus += GetPetBonus(pet, BonusExp)
		goldBonus += GetPetBonus(pet, BonusGold)
	}

	for _, it := range spent {
		if it.CurrentUses <= 1 {
			if err := s.items.Delete(ctx, it.ID); err != nil {
				return 0, 0, err
			}
		} else if err := s.items.SetUses(ctx, it.ID, it.CurrentUses-1); err != nil {
			return 0, 0, err
		}
	}

	exp := int(math.Round(float64(baseExp) * (1 + expBonus)))
	gold := int(math.Round(float64(baseGold) * (1 + goldBonus)))
	return exp, gold, nil
}
