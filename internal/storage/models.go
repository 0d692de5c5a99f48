package storage

import "time"

type Character struct {
	Key         string
	Level       int
	CurrentExp  int
	TotalExp    int
	Gold        int
	Health      int
	MaxHealth   int
	Rank        string
	Difficulty  int
	ActivePetID *int64
}

type GoodHabit struct {
	ID         int64
	Title      string
	Category   string
	ExpReward  int
	GoldReward int
	Streak     int
	BestStreak int
	IsDaily    bool
	CreatedAt  time.Time
}

type BadHabit struct {
	ID            int64
	Title         string
	HealthPenalty int
	ExpPenalty    int
	DaysClean     int
	TotalFalls    int
	MonthlyFalls  int
	CreatedAt     time.Time
}

type Objective struct {
	ID          int64
	Title       string
	Description *string
	Progress    int
	Status      string
	IsMain      bool
	CreatedAt   time.Time
	CompletedAt *time.Time
}

type Skill struct {
	ID         int64
	Name       string
	Category   string
	Level      int
	CurrentExp int
}

// Item is both a shop offer (Owner = "shop") and an inventory instance
// (Owner = "inventory"). Purchasing clones a shop row under a fresh ID.
type Item struct {
	ID           string
	Owner        string
	Name         string
	Icon         string
	Category     string
	Slot         *string
	Price        int
	Damage       int
	ExpBonus     float64
	GoldBonus    float64
	HealthBonus  int
	CritChance   float64
	IsConsumable bool
	CurrentUses  int
	IsEquipped   bool
	AcquiredAt   time.Time
}

type Boss struct {
	Day           string
	Name          string
	Health        int
	MaxHealth     int
	Attack        int
	Defense       int
	RewardGold    int
	RewardExp     int
	Status        string
	RewardClaimed bool
}

type Quest struct {
	ID           int64
	Day          string
	Type         string
	Title        string
	TargetType   string
	Category     *string
	TargetValue  int
	CurrentValue int
	RewardGold   int
	RewardExp    int
	RewardItem   *string
	Status       string
}

type Pet struct {
	ID             int64
	Type           string
	Name           string
	Icon           string
	Element        string
	Level          int
	CurrentExp     int
	MaxExp         int
	BonusType      string
	BonusValue     float64
	Hunger         int
	EvolutionStage int
	CreatedAt      time.Time
}

type ActivityEntry struct {
	ID           string
	Activity     string
	Type         string
	ExpChange    int
	GoldChange   int
	HealthChange int
	CreatedAt    time.Time
}

type DailyCheck struct {
	ID        int64
	HabitID   int64
	HabitType string
	Day       string
	Completed bool
}
