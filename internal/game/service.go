package game

import (
	"context"
	"database/sql"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/Popilynx/SistemaLevelUp-sub000/internal/storage"
)

// DayFormat buckets timestamps into local calendar days.
const DayFormat = "2006-01-02"

type Service struct {
	db         *sql.DB
	characters *storage.CharacterRepo
	habits     *storage.HabitRepo
	checks     *storage.CheckRepo
	objectives *storage.ObjectiveRepo
	skills     *storage.SkillRepo
	items      *storage.ItemRepo
	bosses     *storage.BossRepo
	quests     *storage.QuestRepo
	pets       *storage.PetRepo
	logs       *storage.LogRepo
	meta       *storage.MetaRepo

	bus *Bus

	// now and rng are swappable for deterministic tests.
	now func() time.Time
	rng *rand.Rand
}

func NewService(db *sql.DB) *Service {
	return &Service{
		db:         db,
		characters: storage.NewCharacterRepo(db),
		habits:     storage.NewHabitRepo(db),
		checks:     storage.NewCheckRepo(db),
		objectives: storage.NewObjectiveRepo(db),
		skills:     storage.NewSkillRepo(db),
		items:      storage.NewItemRepo(db),
		bosses:     storage.NewBossRepo(db),
		quests:     storage.NewQuestRepo(db),
		pets:       storage.NewPetRepo(db),
		logs:       storage.NewLogRepo(db),
		meta:       storage.NewMetaRepo(db),
		bus:        NewBus(),
		now:        time.Now,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Service) CharacterRepo() *storage.CharacterRepo { return s.characters }
func (s *Service) HabitRepo() *storage.HabitRepo         { return s.habits }
func (s *Service) CheckRepo() *storage.CheckRepo         { return s.checks }
func (s *Service) ObjectiveRepo() *storage.ObjectiveRepo { return s.objectives }
func (s *Service) SkillRepo() *storage.SkillRepo         { return s.skills }
func (s *Service) ItemRepo() *storage.ItemRepo           { return s.items }
func (s *Service) BossRepo() *storage.BossRepo           { return s.bosses }
func (s *Service) QuestRepo() *storage.QuestRepo         { return s.quests }
func (s *Service) PetRepo() *storage.PetRepo             { return s.pets }
func (s *Service) LogRepo() *storage.LogRepo             { return s.logs }

func (s *Service) Events() *Bus { return s.bus }

// SetClock overrides the wall clock (tests and the daemon's catch-up pass).
func (s *Service) SetClock(now func() time.Time) { s.now = now }

func (s *Service) today() string     { return s.now().Format(DayFormat) }
func (s *Service) yesterday() string { return s.now().AddDate(0, 0, -1).Format(DayFormat) }

func (s *Service) getCharacter(ctx context.Context) (*storage.Character, error) {
	return s.characters.GetOrCreateMain(ctx)
}

func (s *Service) logActivity(ctx context.Context, activity, kind string, expCh, goldCh, healthCh int) {
	// Log failures never abort a game operation.
	_ = s.logs.Append(ctx, storage.ActivityEntry{
		ID:           uuid.NewString(),
		Activity:     activity,
		Type:         kind,
		ExpChange:    expCh,
		GoldChange:   goldCh,
		HealthChange: healthCh,
	})
}
