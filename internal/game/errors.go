package game

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCharacter is returned when an operation needs a character record
	// that does not exist yet.
	ErrNoCharacter = errors.New("no character")

	ErrBossAlive     = errors.New("boss is still alive")
	ErrAlreadyDone   = errors.New("already completed today")
	ErrNoActivePet   = errors.New("no active pet")
	ErrItemNotFound  = errors.New("item not found")
	ErrNotConsumable = errors.New("item is not consumable")
)

// ErrNotEquippable reports an equip attempt on a slotless item.
type ErrNotEquippable struct {
	Name string
}

func (e ErrNotEquippable) Error() string {
	return fmt.Sprintf("%s cannot be equipped", e.Name)
}

// NotEnoughGoldError reports a purchase the character cannot afford.
type NotEnoughGoldError struct {
	Price int
	Gold  int
}

func (e NotEnoughGoldError) Error() string {
	return fmt.Sprintf("not enough gold: price %d, have %d", e.Price, e.Gold)
}

// ClaimError reports a reward claim in an invalid state.
type ClaimError struct {
	What   string
	Status string
}

func (e ClaimError) Error() string {
	return fmt.Sprintf("cannot claim %s reward (status=%s)", e.What, e.Status)
}
