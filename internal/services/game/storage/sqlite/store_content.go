package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart/cards"
	"github.com/louisbranch/advancement/internal/services/game/storage"
)

// PutDomainCard inserts or updates a domain card catalog entry.
func (s *Store) PutDomainCard(ctx context.Context, card cards.Card) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(card.ID) == "" {
		return fmt.Errorf("domain card id is required")
	}
	if strings.TrimSpace(card.Domain) == "" {
		return fmt.Errorf("domain card domain is required")
	}

	now := toMillis(s.now())
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO domain_cards (id, name, description, type, domain, level, recall_cost, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    name = excluded.name,
    description = excluded.description,
    type = excluded.type,
    domain = excluded.domain,
    level = excluded.level,
    recall_cost = excluded.recall_cost,
    updated_at = excluded.updated_at`,
		card.ID, card.Name, card.Description, card.Type, card.Domain, card.Level, card.RecallCost, now, now,
	)
	if err != nil {
		return fmt.Errorf("put domain card: %w", err)
	}
	return nil
}

// GetDomainCard retrieves a domain card catalog entry.
func (s *Store) GetDomainCard(ctx context.Context, id string) (cards.Card, error) {
	if err := s.ready(ctx); err != nil {
		return cards.Card{}, err
	}
	if strings.TrimSpace(id) == "" {
		return cards.Card{}, fmt.Errorf("domain card id is required")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, name, description, type, domain, level, recall_cost FROM domain_cards WHERE id = ?`, id)
	card, err := scanCard(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cards.Card{}, storage.ErrNotFound
		}
		return cards.Card{}, fmt.Errorf("get domain card: %w", err)
	}
	return card, nil
}

// ListDomainCards lists the catalog ordered by domain, level and name.
func (s *Store) ListDomainCards(ctx context.Context) ([]cards.Card, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, name, description, type, domain, level, recall_cost FROM domain_cards ORDER BY domain, level, name`)
	if err != nil {
		return nil, fmt.Errorf("list domain cards: %w", err)
	}
	defer rows.Close()

	out := []cards.Card{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan domain card: %w", err)
		}
		out = append(out, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list domain cards: %w", err)
	}
	return out, nil
}

// DeleteDomainCard removes a domain card catalog entry.
func (s *Store) DeleteDomainCard(ctx context.Context, id string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM domain_cards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete domain card: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCard(row scanner) (cards.Card, error) {
	var card cards.Card
	err := row.Scan(&card.ID, &card.Name, &card.Description, &card.Type, &card.Domain, &card.Level, &card.RecallCost)
	return card, err
}
