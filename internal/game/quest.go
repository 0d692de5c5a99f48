package game

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Popilynx/SistemaLevelUp-sub000/internal/storage"
)

// GenerateDailyQuests instantiates today's daily quests. Idempotent per
// calendar day: a second call on the same day changes nothing; a call on a
// new day purges all prior daily quests first.
func (s *Service) GenerateDailyQuests(ctx context.Context) ([]storage.Quest, error) {
	day := s.today()
	existing, err := s.quests.ListByTypeAndDay(ctx, QuestTypeDaily, day)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing, nil
	}

	if err := s.quests.DeleteByType(ctx, QuestTypeDaily); err != nil {
		return nil, err
	}

	templates := QuestTemplates()
	s.rng.Shuffle(len(templates), func(i, j int) { templates[i], templates[j] = templates[j], templates[i] })
	n := DailyQuestCount
	if n > len(templates) {
		n = len(templates)
	}

	for _, t := range templates[:n] {
		q := storage.Quest{
			Day:         day,
			Type:        QuestTypeDaily,
			Title:       t.Title,
			TargetType:  t.TargetType,
			Category:    t.Category,
			TargetValue: t.TargetValue,
			RewardGold:  t.RewardGold,
			RewardExp:   t.RewardExp,
			RewardItem:  t.RewardItem,
			Status:      QuestActive,
		}
		if _, err := s.quests.Insert(ctx, q); err != nil {
			return nil, err
		}
	}

	s.bus.Publish(Changed{Scope: ScopeQuests})
	return s.quests.ListByTypeAndDay(ctx, QuestTypeDaily, day)
}

// UpdateQuestProgress accumulates progress on every active quest matching the
// target type (and the optional category filter, case-insensitively). Values
// clamp at the target and flip the quest to completed on reaching it.
func (s *Service) UpdateQuestProgress(ctx context.Context, targetType string, amount int, category string) error {
	if amount <= 0 {
		return nil
	}
	active, err := s.quests.ListActive(ctx)
	if err != nil {
		return err
	}

	changed := false
	for i := range active {
		q := &active[i]
		if q.TargetType != targetType {
			continue
		}
		if q.Category != nil && !strings.EqualFold(*q.Category, category) {
			continue
		}

		q.CurrentValue += amount
		if q.CurrentValue >= q.TargetValue {
			q.CurrentValue = q.TargetValue
			q.Status = QuestCompleted
		}
		if err := s.quests.Update(ctx, q); err != nil {
			return err
		}
		changed = true
	}

	if changed {
		s.bus.Publish(Changed{Scope: ScopeQuests})
	}
	return nil
}

type QuestRewardResult struct {
	Gold         int
	Exp          int
	ItemGranted  *storage.Item
	LevelsGained int
	NewLevel     int
}

// ClaimQuestReward grants a completed quest's reward and marks it claimed.
// Claimed is terminal: reclaiming is a nil no-op.
func (s *Service) ClaimQuestReward(ctx context.Context, questID int64) (*QuestRewardResult, error) {
	q, err := s.quests.Get(ctx, questID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrItemNotFound
	}
	switch q.Status {
	case QuestClaimed:
		return nil, nil
	case QuestCompleted:
	default:
		return nil, ClaimError{What: "quest", Status: q.Status}
	}

	c, err := s.getCharacter(ctx)
	if err != nil {
		return nil, err
	}
	res, err := s.applyReward(ctx, c, Reward{Exp: q.RewardExp, Gold: q.RewardGold, Source: "quest"})
	if err != nil {
		return nil, err
	}

	out := &QuestRewardResult{
		Gold:         q.RewardGold,
		Exp:          q.RewardExp,
		LevelsGained: res.LevelsGained,
		NewLevel:     res.NewLevel,
	}

	if q.RewardItem != nil {
		if tmpl := findCatalogItem(*q.RewardItem); tmpl != nil {
			granted := *tmpl
			granted.ID = uuid.NewString()
			granted.Owner = storage.OwnerInventory
			granted.IsEquipped = false
			if err := s.items.Insert(ctx, granted); err != nil {
				return nil, err
			}
			out.ItemGranted = &granted
		}
	}

	q.Status = QuestClaimed
	if err := s.quests.Update(ctx, q); err != nil {
		return nil, err
	}

	s.logActivity(ctx, "Claimed quest: "+q.Title, "quest", q.RewardExp, q.RewardGold, 0)
	s.bus.Publish(Changed{Scope: ScopeQuests})
	return out, nil
}

func findCatalogItem(id string) *storage.Item {
	for _, it := range PermanentItems() {
		if it.ID == id {
			return &it
		}
	}
	for _, it := range RotatingItemPool() {
		if it.ID == id {
			return &it
		}
	}
	return nil
}
