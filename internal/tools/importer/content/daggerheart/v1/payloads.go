package catalogimporter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/louisbranch/advancement/internal/platform/errors"
	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart"
	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart/cards"
)

// domainCardFiles are tried in order; the first present file is used.
var domainCardFiles = []string{"domain_cards.yaml", "domain_cards.yml", "domain_cards.json"}

// domainCardPayload is the envelope of a domain card file. Items are raw
// card-like maps so top-level and data-nested fields are both accepted.
type domainCardPayload struct {
	SystemID      string           `yaml:"system_id"`
	SystemVersion string           `yaml:"system_version"`
	Source        string           `yaml:"source"`
	Locale        string           `yaml:"locale"`
	Items         []map[string]any `yaml:"items"`
}

type localeCatalog struct {
	Locale string
	Cards  []cards.Card
}

func readLocaleCatalog(dir, locale string) (localeCatalog, error) {
	payload, err := readDomainCards(dir)
	if err != nil {
		return localeCatalog{}, err
	}
	if payload == nil {
		return localeCatalog{Locale: locale}, nil
	}
	if err := validateEnvelope(locale, payload); err != nil {
		return localeCatalog{}, err
	}

	catalog := localeCatalog{Locale: locale}
	seen := make(map[string]bool, len(payload.Items))
	for i, item := range payload.Items {
		card := cards.Normalize(cards.Record(item))
		if err := validateCard(card); err != nil {
			return localeCatalog{}, fmt.Errorf("item %d: %w", i, err)
		}
		if seen[card.ID] {
			return localeCatalog{}, invalidCard(card.ID, "duplicate card id")
		}
		seen[card.ID] = true
		catalog.Cards = append(catalog.Cards, card)
	}
	return catalog, nil
}

func readDomainCards(dir string) (*domainCardPayload, error) {
	for _, name := range domainCardFiles {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		var payload domainCardPayload
		if err := yaml.Unmarshal(data, &payload); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return &payload, nil
	}
	return nil, nil
}

func validateEnvelope(locale string, payload *domainCardPayload) error {
	if payload.SystemID != defaultSystemID {
		return fmt.Errorf("unsupported system id %s", payload.SystemID)
	}
	if payload.SystemVersion != defaultSystemVer {
		return fmt.Errorf("unsupported system version %s", payload.SystemVersion)
	}
	if strings.TrimSpace(payload.Source) == "" {
		return fmt.Errorf("source is required")
	}
	if payload.Locale != locale {
		return fmt.Errorf("locale mismatch: %s", payload.Locale)
	}
	return nil
}

func validateCard(card cards.Card) error {
	if strings.TrimSpace(card.ID) == "" {
		return invalidCard(card.Name, "domain card id is required")
	}
	if strings.TrimSpace(card.Domain) == "" {
		return invalidCard(card.ID, "domain is required")
	}
	if card.Level < daggerheart.LevelMin || card.Level > daggerheart.LevelMax {
		return invalidCard(card.ID, fmt.Sprintf("level %d must be in range %d..%d", card.Level, daggerheart.LevelMin, daggerheart.LevelMax))
	}
	if card.RecallCost < 0 {
		return invalidCard(card.ID, "recall cost must not be negative")
	}
	return nil
}

func invalidCard(id, reason string) error {
	return apperrors.WithMetadata(apperrors.CodeContentInvalidCard,
		fmt.Sprintf("card %s: %s", id, reason), map[string]string{"Card": id})
}

// validateTranslation requires a translated catalog to describe only base
// cards, without changing their rules fields.
func validateTranslation(base, translated localeCatalog) error {
	for _, card := range translated.Cards {
		original, ok := cards.Find(base.Cards, card.ID)
		if !ok {
			return invalidCard(card.ID, "not present in base locale")
		}
		if !strings.EqualFold(original.Domain, card.Domain) || original.Level != card.Level || original.RecallCost != card.RecallCost {
			return invalidCard(card.ID, "rules fields differ from base locale")
		}
	}
	return nil
}
