package storage

import (
	"context"
	"time"

	apperrors "github.com/louisbranch/advancement/internal/platform/errors"
	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart"
	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart/cards"
)

// ErrNotFound indicates a requested persistence record is missing.
// Callers use this to differentiate between legitimate "no such entity" states
// and data corruption failures.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// CharacterSummary is the listing view of a stored character.
type CharacterSummary struct {
	ID        string
	Name      string
	ClassID   string
	Level     int
	UpdatedAt time.Time
}

// CharacterStore persists whole characters. Get returns the character with
// its advancement history attached.
type CharacterStore interface {
	PutCharacter(ctx context.Context, c daggerheart.Character) error
	GetCharacter(ctx context.Context, id string) (daggerheart.Character, error)
	ListCharacters(ctx context.Context) ([]CharacterSummary, error)
	DeleteCharacter(ctx context.Context, id string) error
}

// AdvancementStore persists level changes atomically with the character.
type AdvancementStore interface {
	// CommitLevelUp stores c and appends record to its history.
	CommitLevelUp(ctx context.Context, c daggerheart.Character, record daggerheart.AdvancementRecord) error
	// CommitDelevel stores c and drops every history record above c.Level.
	CommitDelevel(ctx context.Context, c daggerheart.Character) error
	ListAdvancementRecords(ctx context.Context, characterID string) ([]daggerheart.AdvancementRecord, error)
}

// ContentStore persists the domain card catalog.
type ContentStore interface {
	PutDomainCard(ctx context.Context, card cards.Card) error
	GetDomainCard(ctx context.Context, id string) (cards.Card, error)
	ListDomainCards(ctx context.Context) ([]cards.Card, error)
	DeleteDomainCard(ctx context.Context, id string) error
}

// Store is the full persistence surface used by the application service.
type Store interface {
	CharacterStore
	AdvancementStore
	ContentStore
	Close() error
}
