package cards

import (
	"strings"

	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart/content/filter"
)

// Card is the canonical card shape used past the loading boundary.
type Card struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Domain      string `json:"domain" yaml:"domain"`
	Level       int    `json:"level" yaml:"level"`
	RecallCost  int    `json:"recall_cost" yaml:"recall_cost"`
}

// Normalize reads a record through the accessors into a Card.
func Normalize(r Record) Card {
	return Card{
		ID:          ID(r),
		Name:        Name(r),
		Description: Description(r),
		Type:        Type(r),
		Domain:      Domain(r),
		Level:       Level(r),
		RecallCost:  RecallCost(r),
	}
}

// NormalizeAll normalizes every record, skipping nil ones.
func NormalizeAll(records []Record) []Card {
	out := make([]Card, 0, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		out = append(out, Normalize(r))
	}
	return out
}

// IsCardInDomain compares the card domain with domain, ignoring case and
// surrounding space. An empty domain never matches.
func IsCardInDomain(card *Card, domain string) bool {
	if card == nil {
		return false
	}
	want := strings.TrimSpace(domain)
	if want == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(card.Domain), want)
}

// IsCardAvailableAtLevel reports whether the card level is at most level.
func IsCardAvailableAtLevel(card *Card, level int) bool {
	return card != nil && card.Level <= level
}

// FilterCardsByDomainAndLevel keeps cards in any of domains that are
// available at level. Level 0 or no domains yields an empty list.
func FilterCardsByDomainAndLevel(cards []Card, domains []string, level int) []Card {
	out := []Card{}
	if level <= 0 || len(domains) == 0 {
		return out
	}
	for i := range cards {
		card := &cards[i]
		if !IsCardAvailableAtLevel(card, level) {
			continue
		}
		for _, domain := range domains {
			if IsCardInDomain(card, domain) {
				out = append(out, *card)
				break
			}
		}
	}
	return out
}

// Find returns the card with id.
func Find(cards []Card, id string) (Card, bool) {
	for _, card := range cards {
		if card.ID == id {
			return card, true
		}
	}
	return Card{}, false
}

// Fields are the card fields available to Query filters.
var Fields = filter.Fields{
	"id":          filter.FieldString,
	"name":        filter.FieldString,
	"type":        filter.FieldString,
	"domain":      filter.FieldString,
	"level":       filter.FieldInt,
	"recall_cost": filter.FieldInt,
}

// Query returns the cards matching an AIP-160 filter such as
// `domain = "blade" AND level <= 3`.
func Query(cards []Card, expression string) ([]Card, error) {
	program, err := filter.Compile(expression, Fields)
	if err != nil {
		return nil, err
	}
	out := []Card{}
	for _, card := range cards {
		ok, err := program.Match(card.resolve)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, card)
		}
	}
	return out, nil
}

func (c Card) resolve(name string) (any, bool) {
	switch name {
	case "id":
		return c.ID, true
	case "name":
		return c.Name, true
	case "type":
		return c.Type, true
	case "domain":
		return c.Domain, true
	case "level":
		return c.Level, true
	case "recall_cost":
		return c.RecallCost, true
	}
	return nil, false
}
