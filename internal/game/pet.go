package game

import (
	"context"
	"fmt"
	"math"

	"github.com/Popilynx/SistemaLevelUp-sub000/internal/storage"
)

const (
	PetMaxLevel       = 50
	PetBaseMaxExp     = 100
	petExpGrowth      = 1.2
	petBonusGrowth    = 1.05
	petHungryBelow    = 20
	petEvolutionFirst = 10
	petEvolutionFinal = 30
)

// CalculatePetExpGain is the pet's cut of a habit experience grant.
func CalculatePetExpGain(habitExp int) int {
	return int(math.Floor(float64(habitExp) * PetExpShare))
}

// UpdatePetXP accumulates experience on a pet, leveling it up while the
// ceiling is crossed: each level grows the ceiling by 1.2x and the bonus by
// 1.05x (rounded to 3 decimals). Levels cap at 50; the evolution stage
// advances at levels 10 and 30.
func UpdatePetXP(p *storage.Pet, gain int) (levels int) {
	if gain <= 0 {
		return 0
	}
	p.CurrentExp += gain
	for p.CurrentExp >= p.MaxExp && p.Level < PetMaxLevel {
		p.CurrentExp -= p.MaxExp
		p.Level++
		p.MaxExp = int(math.Round(float64(p.MaxExp) * petExpGrowth))
		p.BonusValue = math.Round(p.BonusValue*petBonusGrowth*1000) / 1000
		levels++

		switch p.Level {
		case petEvolutionFirst:
			p.EvolutionStage = 2
		case petEvolutionFinal:
			p.EvolutionStage = 3
		}
	}
	return levels
}

// FormatPetBonus renders a bonus for display. Exp and gold bonuses are
// fractions of the reward; damage and health bonuses are flat points.
func FormatPetBonus(bonusType string, value float64) string {
	switch bonusType {
	case BonusExp, BonusGold:
		return fmt.Sprintf("+%.1f%% %s", value*100, bonusType)
	default:
		return fmt.Sprintf("+%.0f %s", value, bonusType)
	}
}

// GetPetBonus returns the pet's bonus value when its bonus type matches the
// requested one; a hungry pet (hunger < 20) contributes half.
func GetPetBonus(p *storage.Pet, bonusType string) float64 {
	if p == nil || p.BonusType != bonusType {
		return 0
	}
	if p.Hunger < petHungryBelow {
		return p.BonusValue / 2
	}
	return p.BonusValue
}

// AdoptPet creates a companion from a fixed template and makes it active.
func (s *Service) AdoptPet(ctx context.Context, petType string) (*storage.Pet, error) {
	tmpl := PetTemplateByType(petType)
	if tmpl == nil {
		return nil, fmt.Errorf("unknown pet type: %q", petType)
	}

	pet := storage.Pet{
		Type:           tmpl.Type,
		Name:           tmpl.Name,
		Icon:           tmpl.Icon,
		Element:        tmpl.Element,
		Level:          1,
		CurrentExp:     0,
		MaxExp:         PetBaseMaxExp,
		BonusType:      tmpl.BonusType,
		BonusValue:     tmpl.BonusValue,
		Hunger:         100,
		EvolutionStage: 1,
	}
	id, err := s.pets.Insert(ctx, pet)
	if err != nil {
		return nil, err
	}
	pet.ID = id

	c, err := s.getCharacter(ctx)
	if err != nil {
		return nil, err
	}
	c.ActivePetID = &id
	if err := s.characters.Update(ctx, c); err != nil {
		return nil, err
	}

	s.logActivity(ctx, "Adopted "+pet.Name, "pet", 0, 0, 0)
	s.bus.Publish(Changed{Scope: ScopePets})
	return &pet, nil
}

// ActivePet returns the character's active pet, or nil when none is set.
func (s *Service) ActivePet(ctx context.Context) (*storage.Pet, error) {
	c, err := s.characters.Get(ctx, storage.MainCharacterKey)
	if err != nil {
		return nil, err
	}
	if c == nil || c.ActivePetID == nil {
		return nil, nil
	}
	return s.pets.Get(ctx, *c.ActivePetID)
}

// SetActivePet switches which companion is active.
func (s *Service) SetActivePet(ctx context.Context, petID int64) error {
	p, err := s.pets.Get(ctx, petID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrNoActivePet
	}
	c, err := s.getCharacter(ctx)
	if err != nil {
		return err
	}
	c.ActivePetID = &p.ID
	if err := s.characters.Update(ctx, c); err != nil {
		return err
	}
	s.bus.Publish(Changed{Scope: ScopePets})
	return nil
}

// PetFeedCost is the gold price of a meal bought directly, matching the
// shop's pet food.
const PetFeedCost = 30

// FeedActivePet buys a meal for the active pet, restoring hunger to full.
// Feeding through a pet food item from the inventory is free instead.
func (s *Service) FeedActivePet(ctx context.Context) error {
	p, err := s.ActivePet(ctx)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrNoActivePet
	}
	c, err := s.getCharacter(ctx)
	if err != nil {
		return err
	}
	if c.Gold < PetFeedCost {
		return NotEnoughGoldError{Price: PetFeedCost, Gold: c.Gold}
	}
	c.Gold -= PetFeedCost
	if err := s.characters.Update(ctx, c); err != nil {
		return err
	}
	if err := s.feedPet(ctx, p); err != nil {
		return err
	}
	s.logActivity(ctx, "Fed "+p.Name, "pet", 0, -PetFeedCost, 0)
	return nil
}

func (s *Service) feedPet(ctx context.Context, p *storage.Pet) error {
	p.Hunger = 100
	if err := s.pets.Update(ctx, p); err != nil {
		return err
	}
	s.bus.Publish(Changed{Scope: ScopePets})
	return nil
}

func (s *Service) grantPetExp(ctx context.Context, petID int64, gain int) error {
	if gain <= 0 {
		return nil
	}
	p, err := s.pets.Get(ctx, petID)
	if err != nil {
		return err
	}
	if p == nil {
		return nil
	}
	if UpdatePetXP(p, gain) > 0 {
		s.logActivity(ctx, fmt.Sprintf("%s reached level %d", p.Name, p.Level), "pet", 0, 0, 0)
	}
	if err := s.pets.Update(ctx, p); err != nil {
		return err
	}
	s.bus.Publish(Changed{Scope: ScopePets})
	return nil
}
