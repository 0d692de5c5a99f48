package game

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Popilynx/SistemaLevelUp-sub000/internal/storage"
)

// RotationSize is how many pool items join the permanent stock each day.
const RotationSize = 4

// shopFloor guards against a truncated selection: fewer stored items than
// the permanent stock forces a reroll.
var shopFloor = len(PermanentItems())

// DailyShop returns today's selection, rerolling it when the stored shop
// date is stale or the stock dropped below the sanity floor.
func (s *Service) DailyShop(ctx context.Context) ([]storage.Item, error) {
	day := s.today()
	stamp, err := s.meta.Get(ctx, storage.MetaShopDate)
	if err != nil {
		return nil, err
	}
	count, err := s.items.CountByOwner(ctx, storage.OwnerShop)
	if err != nil {
		return nil, err
	}
	if stamp == day && count >= shopFloor {
		return s.items.ListByOwner(ctx, storage.OwnerShop)
	}

	selection := PermanentItems()
	pool := RotatingItemPool()
	s.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	n := RotationSize
	if n > len(pool) {
		n = len(pool)
	}
	selection = append(selection, pool[:n]...)

	if err := s.items.ReplaceShop(ctx, selection); err != nil {
		return nil, err
	}
	if err := s.meta.Set(ctx, storage.MetaShopDate, day); err != nil {
		return nil, err
	}
	s.bus.Publish(Changed{Scope: ScopeShop})
	return s.items.ListByOwner(ctx, storage.OwnerShop)
}

// TimeUntilReset reports the time remaining until the next local midnight.
// Pure display helper; it never mutates state.
func (s *Service) TimeUntilReset() time.Duration {
	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return midnight.Sub(now)
}

type PurchaseResult struct {
	Item     storage.Item
	GoldLeft int
}

// Purchase deducts gold and clones the shop item into the inventory under a
// fresh unique ID. Consumables arrive with their initial use count.
func (s *Service) Purchase(ctx context.Context, shopItemID string) (*PurchaseResult, error) {
	offer, err := s.items.Get(ctx, shopItemID)
	if err != nil {
		return nil, err
	}
	if offer == nil || offer.Owner != storage.OwnerShop {
		return nil, ErrItemNotFound
	}

	c, err := s.getCharacter(ctx)
	if err != nil {
		return nil, err
	}
	if c.Gold < offer.Price {
		return nil, NotEnoughGoldError{Price: offer.Price, Gold: c.Gold}
	}

	c.Gold -= offer.Price
	if err := s.characters.Update(ctx, c); err != nil {
		return nil, err
	}

	bought := *offer
	bought.ID = uuid.NewString()
	bought.Owner = storage.OwnerInventory
	bought.IsEquipped = false
	if err := s.items.Insert(ctx, bought); err != nil {
		return nil, err
	}

	s.logActivity(ctx, "Bought "+bought.Name, "shop", 0, -offer.Price, 0)
	s.bus.Publish(Changed{Scope: ScopeCharacter})

	return &PurchaseResult{Item: bought, GoldLeft: c.Gold}, nil
}

// OwnedThemes lists purchased theme codes (the default is always owned).
func (s *Service) OwnedThemes(ctx context.Context) ([]string, error) {
	owned, err := s.meta.ListPrefix(ctx, storage.MetaThemesPrefix)
	if err != nil {
		return nil, err
	}
	return append([]string{"default"}, owned...), nil
}

func (s *Service) ActiveTheme(ctx context.Context) (string, error) {
	t, err := s.meta.Get(ctx, storage.MetaActiveTheme)
	if err != nil {
		return "", err
	}
	if t == "" {
		t = "default"
	}
	return t, nil
}

// BuyTheme purchases a cosmetic theme. Already-owned themes are free to
// re-select with UseTheme.
func (s *Service) BuyTheme(ctx context.Context, code string) error {
	var def *ThemeDef
	for _, t := range ThemeCatalog() {
		if t.Code == code {
			def = &t
			break
		}
	}
	if def == nil {
		return ErrItemNotFound
	}

	owned, err := s.OwnedThemes(ctx)
	if err != nil {
		return err
	}
	for _, o := range owned {
		if o == code {
			return nil
		}
	}

	c, err := s.getCharacter(ctx)
	if err != nil {
		return err
	}
	if c.Gold < def.Price {
		return NotEnoughGoldError{Price: def.Price, Gold: c.Gold}
	}
	c.Gold -= def.Price
	if err := s.characters.Update(ctx, c); err != nil {
		return err
	}
	if err := s.meta.Set(ctx, storage.MetaThemesPrefix+code, "1"); err != nil {
		return err
	}
	s.logActivity(ctx, "Bought theme "+def.Name, "shop", 0, -def.Price, 0)
	s.bus.Publish(Changed{Scope: ScopeCharacter})
	return nil
}

func (s *Service) UseTheme(ctx context.Context, code string) error {
	owned, err := s.OwnedThemes(ctx)
	if err != nil {
		return err
	}
	for _, o := range owned {
		if o == code {
			return s.meta.Set(ctx, storage.MetaActiveTheme, code)
		}
	}
	return ErrItemNotFound
}
