package levelup

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/advancement/internal/platform/errors"
	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart"
	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart/cards"
)

// Exchange swaps an owned domain card for the newly chosen one.
type Exchange struct {
	Enabled bool   `json:"enabled"`
	CardID  string `json:"card_id,omitempty"`
}

// Transaction is a full proposed level-up.
type Transaction struct {
	NewLevel           int      `json:"new_level,omitempty"`
	Advancements       []string `json:"advancements"`
	Traits             []string `json:"traits,omitempty"`
	Experiences        []int    `json:"experiences,omitempty"`
	DomainCardID       string   `json:"domain_card_id,omitempty"`
	BonusDomainCardIDs []string `json:"bonus_domain_card_ids,omitempty"`
	Exchange           Exchange `json:"exchange,omitempty"`
	MulticlassClassID  string   `json:"multiclass_class_id,omitempty"`
	MulticlassDomain   string   `json:"multiclass_domain,omitempty"`
	NewExperienceName  string   `json:"new_experience_name,omitempty"`
}

// ValidateNewLevel requires current < next <= 10 and next >= 1. Each
// violated bound yields its own error.
func ValidateNewLevel(current, next int) []ValidationError {
	var errs []ValidationError
	meta := map[string]string{"NewLevel": strconv.Itoa(next), "CurrentLevel": strconv.Itoa(current)}
	if next <= current {
		errs = append(errs, invalid(FieldNewLevel, apperrors.CodeLevelUpLevelNotHigher, meta,
			"New level %d must be greater than current level %d", next, current))
	}
	if next < daggerheart.LevelMin {
		errs = append(errs, invalid(FieldNewLevel, apperrors.CodeLevelUpLevelBelowMin, meta,
			"New level must be at least %d", daggerheart.LevelMin))
	}
	if next > daggerheart.LevelMax {
		errs = append(errs, invalid(FieldNewLevel, apperrors.CodeLevelUpLevelAboveMax, meta,
			"New level cannot exceed %d", daggerheart.LevelMax))
	}
	return errs
}

// ValidateAdvancementSelections checks the selected ids spend exactly
// SlotBudget slots and respect subclass and multiclass restrictions for the
// tier of newLevel. Ids may repeat.
func ValidateAdvancementSelections(c *daggerheart.Character, selected []string, newLevel int) []ValidationError {
	if len(selected) == 0 {
		return []ValidationError{invalid(FieldAdvancements, apperrors.CodeLevelUpNoAdvancements, nil,
			"Select advancements to spend your %d slots", SlotBudget)}
	}
	if c == nil {
		c = &daggerheart.Character{}
	}

	var errs []ValidationError
	total := 0
	reported := map[string]bool{}
	for _, id := range selected {
		option, ok := Lookup(id)
		if !ok {
			if !reported[id] {
				errs = append(errs, invalid(FieldAdvancements, apperrors.CodeLevelUpUnknownAdvancement,
					map[string]string{"Advancement": id}, "Unknown advancement %s", id))
				reported[id] = true
			}
			continue
		}
		total += option.Cost
		if option.MinLevel > 0 && newLevel < option.MinLevel && !reported[id] {
			errs = append(errs, invalid(FieldAdvancements, apperrors.CodeLevelUpAdvancementMinLevel,
				map[string]string{"Advancement": option.Name, "MinLevel": strconv.Itoa(option.MinLevel)},
				"%s requires level %d or higher", option.Name, option.MinLevel))
			reported[id] = true
		}
	}
	if total != SlotBudget {
		errs = append(errs, invalid(FieldAdvancements, apperrors.CodeLevelUpSlotBudget,
			map[string]string{"Total": strconv.Itoa(total), "Budget": strconv.Itoa(SlotBudget)},
			"Advancements must cost exactly %d slots (selected: %d)", SlotBudget, total))
	}

	tier := TierForLevel(newLevel)
	subclass := count(selected, SubclassCard)
	multiclass := count(selected, Multiclass)
	if subclass > 0 {
		stage := c.SubclassStage
		for i := 0; i < subclass; i++ {
			next, ok := stage.Next()
			if !ok {
				errs = append(errs, invalid(FieldAdvancements, apperrors.CodeLevelUpSubclassMastered, nil,
					"Your subclass is already at mastery"))
				break
			}
			stage = next
		}
		if multiclass > 0 || takenInTier(c, tier, func(r daggerheart.AdvancementRecord) bool { return r.Multiclass != nil }) {
			errs = append(errs, invalid(FieldAdvancements, apperrors.CodeLevelUpSubclassBlocked, nil,
				"A subclass card cannot be taken in a tier where you multiclassed"))
		}
	}
	if multiclass > 0 {
		if c.HasMulticlassed() {
			errs = append(errs, invalid(FieldAdvancements, apperrors.CodeLevelUpAlreadyMulticlassed, nil,
				"You have already multiclassed"))
		}
		if subclass > 0 || takenInTier(c, tier, func(r daggerheart.AdvancementRecord) bool { return r.SubclassAdvanced }) {
			errs = append(errs, invalid(FieldAdvancements, apperrors.CodeLevelUpMulticlassBlocked, nil,
				"Multiclassing is unavailable in a tier where you took a subclass card"))
		}
	}
	return errs
}

func takenInTier(c *daggerheart.Character, tier int, match func(daggerheart.AdvancementRecord) bool) bool {
	for level, record := range c.History {
		if TierForLevel(level) == tier && match(record) {
			return true
		}
	}
	return false
}

// ValidateDomainCardSelection checks a chosen card against the new level,
// the available domains and the cards already owned. Domain membership is
// skipped when domains is empty; callers add any multiclass domain first.
func ValidateDomainCardSelection(card *cards.Card, newLevel int, domains []string, owned []string) []ValidationError {
	if card == nil {
		return []ValidationError{invalid(FieldDomainCard, apperrors.CodeLevelUpCardRequired, nil, "Choose a domain card")}
	}
	var errs []ValidationError
	if card.Level <= 0 {
		errs = append(errs, invalid(FieldDomainCard, apperrors.CodeLevelUpCardLevelInvalid, nil,
			"Card level must be at least 1"))
	} else if card.Level > newLevel {
		errs = append(errs, invalid(FieldDomainCard, apperrors.CodeLevelUpCardLevelTooHigh,
			map[string]string{"CardLevel": strconv.Itoa(card.Level), "Level": strconv.Itoa(newLevel)},
			"Card level %d exceeds character level %d", card.Level, newLevel))
	}
	if len(domains) > 0 && !inAnyDomain(card, domains) {
		errs = append(errs, invalid(FieldDomainCard, apperrors.CodeLevelUpCardDomain,
			map[string]string{"Card": card.Name}, "Card %s is not in one of your domains", card.Name))
	}
	for _, id := range owned {
		if id == card.ID {
			errs = append(errs, invalid(FieldDomainCard, apperrors.CodeLevelUpCardOwned,
				map[string]string{"Card": card.Name}, "You already have card %s", card.Name))
			break
		}
	}
	return errs
}

func inAnyDomain(card *cards.Card, domains []string) bool {
	for _, domain := range domains {
		if cards.IsCardInDomain(card, domain) {
			return true
		}
	}
	return false
}

// ValidateTraitSelection requires exactly two distinct known traits, none
// already marked this tier.
func ValidateTraitSelection(selected []string, marked map[string]bool) []ValidationError {
	return validateTraits(selected, marked, 2)
}

func validateTraits(selected []string, marked map[string]bool, want int) []ValidationError {
	var errs []ValidationError
	if len(selected) != want {
		errs = append(errs, invalid(FieldTraits, apperrors.CodeLevelUpTraitCount,
			map[string]string{"Want": strconv.Itoa(want), "Count": strconv.Itoa(len(selected))},
			"Select exactly %d traits (selected: %d)", want, len(selected)))
	}
	seen := make(map[string]bool, len(selected))
	for _, trait := range selected {
		meta := map[string]string{"Trait": trait}
		switch {
		case !daggerheart.IsTrait(trait):
			errs = append(errs, invalid(FieldTraits, apperrors.CodeLevelUpTraitUnknown, meta, "Unknown trait %s", trait))
		case seen[trait]:
			errs = append(errs, invalid(FieldTraits, apperrors.CodeLevelUpTraitDuplicate, meta,
				"Trait %s is selected more than once", trait))
		case marked[trait]:
			errs = append(errs, invalid(FieldTraits, apperrors.CodeLevelUpTraitMarked, meta,
				"Trait %s was already increased this tier", trait))
		}
		seen[trait] = true
	}
	return errs
}

// ValidateExperienceSelection requires exactly two distinct indices into an
// experience list of the given length.
func ValidateExperienceSelection(selected []int, experienceCount int) []ValidationError {
	return validateExperiences(selected, experienceCount, 2)
}

func validateExperiences(selected []int, experienceCount, want int) []ValidationError {
	var errs []ValidationError
	if len(selected) != want {
		errs = append(errs, invalid(FieldExperiences, apperrors.CodeLevelUpExperienceCount,
			map[string]string{"Want": strconv.Itoa(want), "Count": strconv.Itoa(len(selected))},
			"Select exactly %d experiences (selected: %d)", want, len(selected)))
	}
	seen := make(map[int]bool, len(selected))
	for _, index := range selected {
		meta := map[string]string{"Index": strconv.Itoa(index)}
		switch {
		case index < 0 || index >= experienceCount:
			errs = append(errs, invalid(FieldExperiences, apperrors.CodeLevelUpExperienceRange, meta,
				"Experience %d does not exist", index))
		case seen[index]:
			errs = append(errs, invalid(FieldExperiences, apperrors.CodeLevelUpExperienceDuplicate, meta,
				"Experience %d is selected more than once", index))
		}
		seen[index] = true
	}
	return errs
}

// ValidateDomainExchange checks an enabled exchange names an owned card whose
// level is at least the new card's level.
func ValidateDomainExchange(enabled bool, cardID string, newCard *cards.Card, owned []cards.Card) []ValidationError {
	if !enabled {
		return nil
	}
	if strings.TrimSpace(cardID) == "" {
		return []ValidationError{invalid(FieldDomainExchange, apperrors.CodeLevelUpExchangeCardRequired, nil,
			"Choose the card to exchange")}
	}
	old, ok := cards.Find(owned, cardID)
	if !ok {
		return []ValidationError{invalid(FieldDomainExchange, apperrors.CodeLevelUpExchangeCardNotOwned,
			map[string]string{"Card": cardID}, "You do not have card %s", cardID)}
	}
	if newCard != nil && old.Level < newCard.Level {
		return []ValidationError{invalid(FieldDomainExchange, apperrors.CodeLevelUpExchangeLevelTooHigh,
			map[string]string{"NewLevel": strconv.Itoa(newCard.Level), "OldLevel": strconv.Itoa(old.Level)},
			"The new card (level %d) cannot be higher level than the exchanged card (level %d)", newCard.Level, old.Level)}
	}
	return nil
}

// ValidateVitalSlots requires a positive whole number of slots.
func ValidateVitalSlots(field string, slots float64) []ValidationError {
	if slots > 0 && !math.IsInf(slots, 0) && slots == math.Trunc(slots) {
		return nil
	}
	return []ValidationError{invalid(FieldVitalSlots, apperrors.CodeLevelUpVitalSlotsInvalid,
		map[string]string{"Field": field}, "%s slots must be a positive whole number", field)}
}

// ValidateCompleteLevelUp validates a whole transaction for c. pool is the
// card catalog used to resolve chosen and owned cards.
func ValidateCompleteLevelUp(c *daggerheart.Character, pool []cards.Card, tx Transaction) []ValidationError {
	if c == nil {
		c = &daggerheart.Character{}
	}
	var errs []ValidationError
	errs = append(errs, ValidateNewLevel(c.Level, tx.NewLevel)...)
	errs = append(errs, advancementErrors(c, tx)...)
	errs = append(errs, configurationErrors(c, tx)...)
	errs = append(errs, domainCardErrors(c, pool, tx)...)
	return errs
}

func advancementErrors(c *daggerheart.Character, tx Transaction) []ValidationError {
	errs := ValidateAdvancementSelections(c, tx.Advancements, tx.NewLevel)
	if count(tx.Advancements, Multiclass) > 0 && strings.TrimSpace(tx.MulticlassDomain) == "" {
		errs = append(errs, invalid(FieldAdvancements, apperrors.CodeLevelUpMulticlassDomain, nil,
			"Choose a domain for your multiclass"))
	}
	if n := count(tx.Advancements, AddHP); n > 0 {
		errs = append(errs, ValidateVitalSlots(daggerheart.StatHitPoints, float64(n))...)
	}
	if n := count(tx.Advancements, AddStress); n > 0 {
		errs = append(errs, ValidateVitalSlots(daggerheart.StatStress, float64(n))...)
	}
	return errs
}

// needsConfiguration reports whether trait or experience picks are required.
func needsConfiguration(tx Transaction) bool {
	return count(tx.Advancements, IncreaseTraits) > 0 || count(tx.Advancements, IncreaseExperience) > 0
}

func configurationErrors(c *daggerheart.Character, tx Transaction) []ValidationError {
	var errs []ValidationError
	if n := count(tx.Advancements, IncreaseTraits); n > 0 {
		errs = append(errs, validateTraits(tx.Traits, effectiveMarks(c, tx.NewLevel), 2*n)...)
	}
	if n := count(tx.Advancements, IncreaseExperience); n > 0 {
		errs = append(errs, validateExperiences(tx.Experiences, len(c.Experiences), 2*n)...)
	}
	return errs
}

// effectiveMarks are the marks in force when choosing traits for newLevel.
// Crossing level 5 or 8 on the way to newLevel clears them first.
func effectiveMarks(c *daggerheart.Character, newLevel int) map[string]bool {
	if clearsMarksBetween(c.Level, newLevel) {
		return map[string]bool{}
	}
	return c.MarkedTraits
}

// EligibleDomains returns the character domains plus a multiclass domain chosen
// in this transaction.
func EligibleDomains(c *daggerheart.Character, tx Transaction) []string {
	domains := c.AllDomains()
	if count(tx.Advancements, Multiclass) > 0 && strings.TrimSpace(tx.MulticlassDomain) != "" {
		domains = append(domains, tx.MulticlassDomain)
	}
	return domains
}

func domainCardErrors(c *daggerheart.Character, pool []cards.Card, tx Transaction) []ValidationError {
	domains := EligibleDomains(c, tx)
	required := len(domains) > 0

	var errs []ValidationError
	chosen := []string{}
	check := func(id string) {
		if id == "" {
			if required {
				errs = append(errs, invalid(FieldDomainCard, apperrors.CodeLevelUpCardRequired, nil, "Choose a domain card"))
			}
			return
		}
		card, ok := cards.Find(pool, id)
		if !ok {
			errs = append(errs, invalid(FieldDomainCard, apperrors.CodeLevelUpCardRequired,
				map[string]string{"Card": id}, "Card %s is not in the catalog", id))
			return
		}
		errs = append(errs, ValidateDomainCardSelection(&card, tx.NewLevel, domains, append(append([]string(nil), c.DomainCardIDs...), chosen...))...)
		chosen = append(chosen, id)
	}

	check(tx.DomainCardID)
	bonus := count(tx.Advancements, DomainCard)
	for i := 0; i < bonus; i++ {
		id := ""
		if i < len(tx.BonusDomainCardIDs) {
			id = tx.BonusDomainCardIDs[i]
		}
		check(id)
	}

	if tx.Exchange.Enabled {
		var newCard *cards.Card
		if card, ok := cards.Find(pool, tx.DomainCardID); ok {
			newCard = &card
		}
		errs = append(errs, ValidateDomainExchange(true, tx.Exchange.CardID, newCard, ownedCards(c, pool))...)
	}
	return errs
}

func ownedCards(c *daggerheart.Character, pool []cards.Card) []cards.Card {
	var out []cards.Card
	for _, id := range c.DomainCardIDs {
		if card, ok := cards.Find(pool, id); ok {
			out = append(out, card)
		}
	}
	return out
}

func describe(errs []ValidationError) string {
	parts := make([]string, 0, len(errs))
	for _, err := range errs {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(parts, "; ")
}
