package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart"
	"github.com/louisbranch/advancement/internal/services/game/storage"
)

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// PutCharacter inserts or replaces a character. History is not written here;
// it changes only through CommitLevelUp and CommitDelevel.
func (s *Store) PutCharacter(ctx context.Context, c daggerheart.Character) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	return s.putCharacter(ctx, s.sqlDB, c)
}

func (s *Store) putCharacter(ctx context.Context, exec execer, c daggerheart.Character) error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("character id is required")
	}
	stored := c.Clone()
	stored.History = nil
	payload, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encode character: %w", err)
	}
	now := toMillis(s.now())
	_, err = exec.ExecContext(ctx, `
INSERT INTO characters (id, name, class_id, level, payload, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    name = excluded.name,
    class_id = excluded.class_id,
    level = excluded.level,
    payload = excluded.payload,
    updated_at = excluded.updated_at`,
		c.ID, c.Name, c.ClassID, c.Level, string(payload), now, now,
	)
	if err != nil {
		return fmt.Errorf("put character: %w", err)
	}
	return nil
}

// GetCharacter loads a character with its advancement history.
func (s *Store) GetCharacter(ctx context.Context, id string) (daggerheart.Character, error) {
	if err := s.ready(ctx); err != nil {
		return daggerheart.Character{}, err
	}
	if strings.TrimSpace(id) == "" {
		return daggerheart.Character{}, fmt.Errorf("character id is required")
	}

	var payload string
	err := s.sqlDB.QueryRowContext(ctx, `SELECT payload FROM characters WHERE id = ?`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return daggerheart.Character{}, storage.ErrNotFound
		}
		return daggerheart.Character{}, fmt.Errorf("get character: %w", err)
	}
	var c daggerheart.Character
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		return daggerheart.Character{}, fmt.Errorf("decode character %s: %w", id, err)
	}

	records, err := s.ListAdvancementRecords(ctx, id)
	if err != nil {
		return daggerheart.Character{}, err
	}
	c.History = make(map[int]daggerheart.AdvancementRecord, len(records))
	for _, record := range records {
		c.History[record.Level] = record
	}
	return c, nil
}

// ListCharacters lists stored characters ordered by name.
func (s *Store) ListCharacters(ctx context.Context) ([]storage.CharacterSummary, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT id, name, class_id, level, updated_at FROM characters ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}
	defer rows.Close()

	summaries := []storage.CharacterSummary{}
	for rows.Next() {
		var summary storage.CharacterSummary
		var updatedAt int64
		if err := rows.Scan(&summary.ID, &summary.Name, &summary.ClassID, &summary.Level, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan character: %w", err)
		}
		summary.UpdatedAt = fromMillis(updatedAt)
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}
	return summaries, nil
}

// DeleteCharacter removes a character and its history.
func (s *Store) DeleteCharacter(ctx context.Context, id string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM characters WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete character: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// CommitLevelUp stores c and its new record in one transaction.
func (s *Store) CommitLevelUp(ctx context.Context, c daggerheart.Character, record daggerheart.AdvancementRecord) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if record.Level != c.Level {
		return fmt.Errorf("record level %d does not match character level %d", record.Level, c.Level)
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode advancement record: %w", err)
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := s.putCharacter(ctx, tx, c); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO advancement_records (character_id, level, payload, committed_at)
VALUES (?, ?, ?, ?)`,
			c.ID, record.Level, string(payload), toMillis(record.CommittedAt),
		); err != nil {
			return fmt.Errorf("insert advancement record: %w", err)
		}
		return nil
	})
}

// CommitDelevel stores c and removes history above c.Level in one
// transaction.
func (s *Store) CommitDelevel(ctx context.Context, c daggerheart.Character) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := s.putCharacter(ctx, tx, c); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM advancement_records WHERE character_id = ? AND level > ?`, c.ID, c.Level,
		); err != nil {
			return fmt.Errorf("trim advancement records: %w", err)
		}
		return nil
	})
}

// ListAdvancementRecords returns a character's records in level order.
func (s *Store) ListAdvancementRecords(ctx context.Context, characterID string) ([]daggerheart.AdvancementRecord, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT payload FROM advancement_records WHERE character_id = ? ORDER BY level`, characterID)
	if err != nil {
		return nil, fmt.Errorf("list advancement records: %w", err)
	}
	defer rows.Close()

	records := []daggerheart.AdvancementRecord{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan advancement record: %w", err)
		}
		var record daggerheart.AdvancementRecord
		if err := json.Unmarshal([]byte(payload), &record); err != nil {
			return nil, fmt.Errorf("decode advancement record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list advancement records: %w", err)
	}
	return records, nil
}
