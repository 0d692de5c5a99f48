package game

import "strings"

type Category string

const (
	CategoryFitness  Category = "fitness"
	CategoryMind     Category = "mind"
	CategoryWork     Category = "work"
	CategoryCreative Category = "creative"
	CategorySocial   Category = "social"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryFitness, CategoryMind, CategoryWork, CategoryCreative, CategorySocial:
		return true
	default:
		return false
	}
}

// DefaultCategory is used when user input is missing/invalid.
const DefaultCategory Category = CategoryMind

// ParseCategory parses user input to a Category.
func ParseCategory(input string) Category {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "fitness", "fit", "body":
		return CategoryFitness
	case "mind", "study", "learn":
		return CategoryMind
	case "work", "career", "finance":
		return CategoryWork
	case "creative", "art":
		return CategoryCreative
	case "social", "people":
		return CategorySocial
	default:
		return DefaultCategory
	}
}

// Equipment slots. At most one equipped item per slot at any time.
const (
	SlotWeapon    = "weapon"
	SlotArmor     = "armor"
	SlotAccessory = "accessory"
)

// Item categories.
const (
	ItemEquipment  = "equipment"
	ItemBoost      = "boost"
	ItemConsumable = "consumable"
	ItemCosmetic   = "cosmetic"
)

// Bonus types shared by items and pets.
const (
	BonusExp    = "exp"
	BonusGold   = "gold"
	BonusDamage = "damage"
	BonusHealth = "health"
)

// Boss statuses.
const (
	BossAlive    = "alive"
	BossDefeated = "defeated"
)

// Quest statuses and types.
const (
	QuestActive    = "active"
	QuestCompleted = "completed"
	QuestClaimed   = "claimed"

	QuestTypeDaily  = "daily"
	QuestTypeWeekly = "weekly"
)

// Quest target types.
const (
	TargetHabitsCompleted = "habits_completed"
	TargetGoldEarned      = "gold_earned"
	TargetBossDamage      = "boss_damage"
	TargetSkillTrained    = "skill_trained"
	TargetExpEarned       = "exp_earned"
)

// Objective statuses.
const (
	ObjectiveActive    = "active"
	ObjectiveCompleted = "completed"
	ObjectiveCancelled = "cancelled"
)

// Habit types used by daily checks.
const (
	HabitTypeGood = "good"
	HabitTypeBad  = "bad"
)

// Rank tiers derived from absolute level.
func RankForLevel(level int) string {
	switch {
	case level <= 10:
		return "E"
	case level <= 20:
		return "D"
	case level <= 40:
		return "C"
	case level <= 70:
		return "B"
	default:
		return "A"
	}
}
