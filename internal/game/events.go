package game

import "sync"

// Scope names what part of game state changed.
type Scope string

const (
	ScopeCharacter  Scope = "character"
	ScopeHabits     Scope = "habits"
	ScopeObjectives Scope = "objectives"
	ScopeSkills     Scope = "skills"
	ScopeShop       Scope = "shop"
	ScopeBoss       Scope = "boss"
	ScopeQuests     Scope = "quests"
	ScopePets       Scope = "pets"
	ScopeAll        Scope = "all"
)

// Changed is published after any successful state mutation.
type Changed struct {
	Scope Scope
}

// LevelUp is published when a reward crosses one or more level thresholds.
// Gained is the number of levels crossed in a single grant.
type LevelUp struct {
	Gained   int
	NewLevel int
}

// CharacterDied is published when accumulated penalties drop health to zero
// and the game resets at a higher difficulty.
type CharacterDied struct {
	NewDifficulty int
}

type Event any

// Bus is a tiny in-process observer registry. Subscribers run synchronously
// on the publishing goroutine.
type Bus struct {
	mu   sync.Mutex
	subs []func(Event)
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Subscribe(fn func(Event)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, fn)
}

func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	subs := make([]func(Event), len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, fn := range subs {
		fn(e)
	}
}
