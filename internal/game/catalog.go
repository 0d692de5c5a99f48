package game

import "github.com/Popilynx/SistemaLevelUp-sub000/internal/storage"

func strPtr(s string) *string { return &s }

// PermanentItems are always on sale regardless of the daily rotation.
func PermanentItems() []storage.Item {
	return []storage.Item{
		{
			ID: "perm_health_potion", Name: "Health Potion", Icon: "🧪",
			Category: ItemConsumable, Price: 50, HealthBonus: 200,
			IsConsumable: true, CurrentUses: 1,
		},
		{
			ID: "perm_greater_potion", Name: "Greater Health Potion", Icon: "⚗️",
			Category: ItemConsumable, Price: 120, HealthBonus: 500,
			IsConsumable: true, CurrentUses: 1,
		},
		{
			ID: "perm_pet_food", Name: "Pet Food", Icon: "🍖",
			Category: ItemConsumable, Price: 30, IsConsumable: true, CurrentUses: 1,
		},
	}
}

// RotatingItemPool is the static pool the daily shop selection draws from.
func RotatingItemPool() []storage.Item {
	return []storage.Item{
		{ID: "pool_wooden_sword", Name: "Wooden Sword", Icon: "🗡️", Category: ItemEquipment, Slot: strPtr(SlotWeapon), Price: 100, Damage: 5},
		{ID: "pool_iron_sword", Name: "Iron Sword", Icon: "⚔️", Category: ItemEquipment, Slot: strPtr(SlotWeapon), Price: 300, Damage: 15},
		{ID: "pool_flame_blade", Name: "Flame Blade", Icon: "🔥", Category: ItemEquipment, Slot: strPtr(SlotWeapon), Price: 800, Damage: 35, CritChance: 0.05},
		{ID: "pool_leather_armor", Name: "Leather Armor", Icon: "🦺", Category: ItemEquipment, Slot: strPtr(SlotArmor), Price: 150, HealthBonus: 100},
		{ID: "pool_iron_armor", Name: "Iron Armor", Icon: "🛡️", Category: ItemEquipment, Slot: strPtr(SlotArmor), Price: 450, HealthBonus: 300},
		{ID: "pool_scholar_ring", Name: "Scholar's Ring", Icon: "💍", Category: ItemEquipment, Slot: strPtr(SlotAccessory), Price: 400, ExpBonus: 0.10},
		{ID: "pool_merchant_amulet", Name: "Merchant's Amulet", Icon: "📿", Category: ItemEquipment, Slot: strPtr(SlotAccessory), Price: 400, GoldBonus: 0.10},
		{ID: "pool_lucky_charm", Name: "Lucky Charm", Icon: "🍀", Category: ItemEquipment, Slot: strPtr(SlotAccessory), Price: 600, CritChance: 0.10},
		// Boost charges are spent one per rewarded habit while held.
		{ID: "pool_exp_scroll", Name: "Scroll of Insight", Icon: "📜", Category: ItemBoost, Price: 200, ExpBonus: 0.25, CurrentUses: 3},
		{ID: "pool_gold_scroll", Name: "Scroll of Fortune", Icon: "🪙", Category: ItemBoost, Price: 200, GoldBonus: 0.25, CurrentUses: 3},
	}
}

// PetTemplate is a fixed companion archetype keyed by type.
type PetTemplate struct {
	Type       string
	Name       string
	Icon       string
	Element    string
	BonusType  string
	BonusValue float64
}

func PetTemplates() []PetTemplate {
	return []PetTemplate{
		{Type: "dragon", Name: "Ember", Icon: "🐉", Element: "fire", BonusType: BonusDamage, BonusValue: 5},
		{Type: "wolf", Name: "Fang", Icon: "🐺", Element: "earth", BonusType: BonusGold, BonusValue: 0.10},
		{Type: "owl", Name: "Sage", Icon: "🦉", Element: "air", BonusType: BonusExp, BonusValue: 0.10},
		{Type: "phoenix", Name: "Cinder", Icon: "🐦‍🔥", Element: "fire", BonusType: BonusHealth, BonusValue: 50},
		{Type: "cat", Name: "Mochi", Icon: "🐈", Element: "shadow", BonusType: BonusGold, BonusValue: 0.08},
	}
}

func PetTemplateByType(petType string) *PetTemplate {
	for _, t := range PetTemplates() {
		if t.Type == petType {
			return &t
		}
	}
	return nil
}

// QuestTemplate describes a daily quest blueprint.
type QuestTemplate struct {
	Title       string
	TargetType  string
	Category    *string
	TargetValue int
	RewardGold  int
	RewardExp   int
	RewardItem  *string
}

func QuestTemplates() []QuestTemplate {
	return []QuestTemplate{
		{Title: "Complete 3 habits", TargetType: TargetHabitsCompleted, TargetValue: 3, RewardGold: 60, RewardExp: 120},
		{Title: "Break a sweat", TargetType: TargetHabitsCompleted, Category: strPtr(string(CategoryFitness)), TargetValue: 1, RewardGold: 40, RewardExp: 80},
		{Title: "Earn 100 gold", TargetType: TargetGoldEarned, TargetValue: 100, RewardGold: 50, RewardExp: 100},
		{Title: "Deal 50 boss damage", TargetType: TargetBossDamage, TargetValue: 50, RewardGold: 80, RewardExp: 150},
		{Title: "Train a skill", TargetType: TargetSkillTrained, TargetValue: 1, RewardGold: 30, RewardExp: 60},
		{Title: "Gain 200 experience", TargetType: TargetExpEarned, TargetValue: 200, RewardGold: 70, RewardExp: 0, RewardItem: strPtr("perm_health_potion")},
	}
}

// DailyQuestCount is how many daily quests are active at once.
const DailyQuestCount = 2

var bossNames = []string{
	"Sloth Demon", "Procrastination Wraith", "Doubt Golem",
	"Chaos Imp", "Burnout Hydra", "Distraction Specter", "Inertia Titan",
}

// SkillLevelThresholds maps a skill level to the XP needed to advance from it.
// Skills cap at level 5.
var SkillLevelThresholds = map[int]int{
	1: 100,
	2: 250,
	3: 500,
	4: 1000,
}

const SkillMaxLevel = 5

// Themes purchasable from the shop (cosmetic only).
type ThemeDef struct {
	Code  string
	Name  string
	Price int
}

func ThemeCatalog() []ThemeDef {
	return []ThemeDef{
		{Code: "default", Name: "Default", Price: 0},
		{Code: "dark", Name: "Midnight", Price: 200},
		{Code: "forest", Name: "Forest", Price: 350},
		{Code: "inferno", Name: "Inferno", Price: 500},
	}
}
