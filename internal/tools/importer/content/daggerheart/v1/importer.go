package catalogimporter

import (
	"context"
	"fmt"

	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart/cards"
	"github.com/louisbranch/advancement/internal/services/game/storage"
)

func upsertCards(ctx context.Context, store storage.ContentStore, items []cards.Card) error {
	if store == nil {
		return fmt.Errorf("content store is required")
	}
	for _, card := range items {
		if err := store.PutDomainCard(ctx, card); err != nil {
			return fmt.Errorf("put domain card %s: %w", card.ID, err)
		}
	}
	return nil
}
