package levelup

import (
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart"
	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart/cards"
	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart/stats"
)

// Step is one stage of a level-up session.
type Step string

const (
	StepTierPreview          Step = "tier_preview"
	StepAdvancementSelection Step = "advancement_selection"
	StepConfiguration        Step = "configuration"
	StepThresholdPreview     Step = "threshold_preview"
	StepDomainCardSelection  Step = "domain_card_selection"
	StepCommit               Step = "commit"
)

var stepOrder = []Step{
	StepTierPreview,
	StepAdvancementSelection,
	StepConfiguration,
	StepThresholdPreview,
	StepDomainCardSelection,
	StepCommit,
}

// CommitResult is the outcome of a committed level-up.
type CommitResult struct {
	Character daggerheart.Character         `json:"character"`
	Record    daggerheart.AdvancementRecord `json:"record"`
}

// Session holds the selections of one in-progress level-up. A session levels
// the character by exactly one level. It is not safe for concurrent use.
type Session struct {
	character daggerheart.Character
	pool      []cards.Card
	tx        Transaction
	step      Step
	committed bool
}

// NewSession starts a level-up of c to the next level. pool is the domain
// card catalog offered during card selection.
func NewSession(c daggerheart.Character, pool []cards.Card) *Session {
	return &Session{
		character: c.Clone(),
		pool:      append([]cards.Card(nil), pool...),
		tx:        Transaction{NewLevel: c.Level + 1},
		step:      StepTierPreview,
	}
}

// Character returns the snapshot the session started from.
func (s *Session) Character() daggerheart.Character {
	return s.character.Clone()
}

// Step returns the current step.
func (s *Session) Step() Step {
	return s.step
}

// Steps returns the steps this session will visit given its current
// selections. Configuration is only present when traits or experiences must
// be chosen.
func (s *Session) Steps() []Step {
	out := make([]Step, 0, len(stepOrder))
	for _, step := range stepOrder {
		if s.active(step) {
			out = append(out, step)
		}
	}
	return out
}

func (s *Session) active(step Step) bool {
	return step != StepConfiguration || needsConfiguration(s.tx)
}

// Errors returns the validation errors blocking the current step.
func (s *Session) Errors() []ValidationError {
	c := &s.character
	switch s.step {
	case StepTierPreview:
		return ValidateNewLevel(c.Level, s.tx.NewLevel)
	case StepAdvancementSelection:
		return advancementErrors(c, s.tx)
	case StepConfiguration:
		return configurationErrors(c, s.tx)
	case StepDomainCardSelection:
		return domainCardErrors(c, s.pool, s.tx)
	case StepCommit:
		return ValidateCompleteLevelUp(c, s.pool, s.tx)
	}
	return nil
}

// CanProceed reports whether the current step validates.
func (s *Session) CanProceed() bool {
	return !s.committed && IsLevelUpValid(s.Errors())
}

// Next advances to the following active step.
func (s *Session) Next() error {
	if s.committed {
		return ErrSessionCommitted
	}
	if !s.CanProceed() {
		return fmt.Errorf("%w: %s", ErrSessionNotReady, describe(s.Errors()))
	}
	next, ok := s.move(1)
	if !ok {
		return ErrSessionNotReady
	}
	s.step = next
	return nil
}

// Back returns to the previous active step, keeping every selection. It
// reports false on the first step or after commit.
func (s *Session) Back() bool {
	if s.committed {
		return false
	}
	prev, ok := s.move(-1)
	if ok {
		s.step = prev
	}
	return ok
}

func (s *Session) move(dir int) (Step, bool) {
	i := 0
	for j, step := range stepOrder {
		if step == s.step {
			i = j
			break
		}
	}
	for j := i + dir; j >= 0 && j < len(stepOrder); j += dir {
		if s.active(stepOrder[j]) {
			return stepOrder[j], true
		}
	}
	return s.step, false
}

// SetAdvancements replaces the selected advancement ids.
func (s *Session) SetAdvancements(ids ...string) {
	s.tx.Advancements = append([]string(nil), ids...)
}

// SetTraits replaces the traits to increase.
func (s *Session) SetTraits(traits ...string) {
	s.tx.Traits = append([]string(nil), traits...)
}

// SetExperiences replaces the experience indices to increase.
func (s *Session) SetExperiences(indices ...int) {
	s.tx.Experiences = append([]int(nil), indices...)
}

// SetDomainCard sets the card gained at this level.
func (s *Session) SetDomainCard(id string) {
	s.tx.DomainCardID = strings.TrimSpace(id)
}

// SetBonusDomainCards sets the cards gained through the domain_card
// advancement.
func (s *Session) SetBonusDomainCards(ids ...string) {
	s.tx.BonusDomainCardIDs = append([]string(nil), ids...)
}

// SetExchange enables or disables trading an owned card for the new one.
func (s *Session) SetExchange(enabled bool, cardID string) {
	s.tx.Exchange = Exchange{Enabled: enabled, CardID: strings.TrimSpace(cardID)}
}

// SetMulticlass records the class and domain chosen for multiclassing.
func (s *Session) SetMulticlass(classID, domain string) {
	s.tx.MulticlassClassID = strings.TrimSpace(classID)
	s.tx.MulticlassDomain = strings.TrimSpace(domain)
}

// SetNewExperienceName names the experience granted by a tier achievement.
func (s *Session) SetNewExperienceName(name string) {
	s.tx.NewExperienceName = name
}

// Transaction returns a copy of the current selections.
func (s *Session) Transaction() Transaction {
	tx := s.tx
	tx.Advancements = append([]string(nil), s.tx.Advancements...)
	tx.Traits = append([]string(nil), s.tx.Traits...)
	tx.Experiences = append([]int(nil), s.tx.Experiences...)
	tx.BonusDomainCardIDs = append([]string(nil), s.tx.BonusDomainCardIDs...)
	return tx
}

// Achievements returns the tier achievements granted by this level-up, one
// per boundary crossed.
func (s *Session) Achievements() []Achievement {
	return AchievementsBetween(s.character.Level, s.tx.NewLevel)
}

// ThresholdPreview returns the pre-level thresholds with major and severe
// raised by one. It is a display value; Commit recomputes thresholds from
// equipment.
func (s *Session) ThresholdPreview() daggerheart.DamageThresholds {
	t := s.character.Thresholds
	t.Major++
	t.Severe++
	return t
}

// AvailableDomainCards returns pool cards in an eligible domain at or below
// the new level.
func (s *Session) AvailableDomainCards() []cards.Card {
	return cards.FilterCardsByDomainAndLevel(s.pool, EligibleDomains(&s.character, s.tx), s.tx.NewLevel)
}

// Commit applies the level-up. It is only allowed from the commit step and
// at most once.
func (s *Session) Commit(now time.Time) (CommitResult, error) {
	if s.committed {
		return CommitResult{}, ErrSessionCommitted
	}
	if s.step != StepCommit {
		return CommitResult{}, ErrSessionNotReady
	}
	result, err := Apply(s.character, s.pool, s.tx, now)
	if err != nil {
		return CommitResult{}, err
	}
	s.committed = true
	return result, nil
}

// Apply validates tx against c and returns the leveled character and the
// record stored under the new level. Derived stats are recomputed.
func Apply(c daggerheart.Character, pool []cards.Card, tx Transaction, now time.Time) (CommitResult, error) {
	if errs := ValidateCompleteLevelUp(&c, pool, tx); len(errs) > 0 {
		return CommitResult{}, fmt.Errorf("%w: %s", ErrInvalidTransaction, describe(errs))
	}

	out := c.Clone()
	if out.MarkedTraits == nil {
		out.MarkedTraits = map[string]bool{}
	}
	record := daggerheart.AdvancementRecord{
		Level:        tx.NewLevel,
		Advancements: append([]string(nil), tx.Advancements...),
		CommittedAt:  now.UTC(),
	}

	// Achievement marks are cleared before this level's traits are marked.
	// The chosen experience name goes to the first boundary crossed.
	name := strings.TrimSpace(tx.NewExperienceName)
	for _, achievement := range AchievementsBetween(c.Level, tx.NewLevel) {
		if name == "" {
			name = DefaultExperienceName
		}
		experience := daggerheart.Experience{Name: name, Value: achievement.ExperienceValue}
		name = ""
		out.Experiences = append(out.Experiences, experience)
		out.Proficiency += achievement.Proficiency
		if achievement.ClearsMarks {
			out.MarkedTraits = map[string]bool{}
		}
		record.Achievements = append(record.Achievements, daggerheart.TierAchievement{
			Level:             achievement.Level,
			Experience:        experience,
			ExperienceIndex:   len(out.Experiences) - 1,
			ProficiencyGained: achievement.Proficiency,
			MarksCleared:      achievement.ClearsMarks,
		})
	}

	if count(tx.Advancements, IncreaseTraits) > 0 {
		for _, trait := range tx.Traits {
			out.Traits = out.Traits.Add(trait, 1)
			out.MarkedTraits[trait] = true
		}
		record.TraitIncrements = append([]string(nil), tx.Traits...)
	}
	if count(tx.Advancements, IncreaseExperience) > 0 {
		for _, index := range tx.Experiences {
			out.Experiences[index].Value++
		}
		record.ExperienceIncrements = append([]int(nil), tx.Experiences...)
	}

	record.HPSlots = count(tx.Advancements, AddHP)
	record.StressSlots = count(tx.Advancements, AddStress)
	record.EvasionGained = count(tx.Advancements, IncreaseEvasion)
	record.ProficiencyGained = count(tx.Advancements, IncreaseProficiency)
	out.Proficiency += record.ProficiencyGained

	if tx.DomainCardID != "" {
		if tx.Exchange.Enabled {
			out.DomainCardIDs = removeCard(out.DomainCardIDs, tx.Exchange.CardID)
			record.Exchange = &daggerheart.CardExchange{Removed: tx.Exchange.CardID, Added: tx.DomainCardID}
		}
		record.DomainCards = append(record.DomainCards, tx.DomainCardID)
	}
	for _, id := range tx.BonusDomainCardIDs {
		if id != "" {
			record.DomainCards = append(record.DomainCards, id)
		}
	}
	out.DomainCardIDs = append(out.DomainCardIDs, record.DomainCards...)

	if count(tx.Advancements, Multiclass) > 0 {
		out.Multiclass = &daggerheart.Multiclass{ClassID: tx.MulticlassClassID, Domain: tx.MulticlassDomain}
		record.Multiclass = &daggerheart.Multiclass{ClassID: tx.MulticlassClassID, Domain: tx.MulticlassDomain}
	}
	for i := 0; i < count(tx.Advancements, SubclassCard); i++ {
		out.SubclassStage, _ = out.SubclassStage.Next()
		record.SubclassAdvanced = true
	}

	out.Level = tx.NewLevel
	if out.History == nil {
		out.History = map[int]daggerheart.AdvancementRecord{}
	}
	out.History[tx.NewLevel] = record

	return CommitResult{Character: stats.Recompute(out), Record: record}, nil
}

func removeCard(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	removed := false
	for _, owned := range ids {
		if owned == id && !removed {
			removed = true
			continue
		}
		out = append(out, owned)
	}
	return out
}
