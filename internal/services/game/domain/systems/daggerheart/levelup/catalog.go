// Package levelup validates and applies Daggerheart level-ups and reverses
// them through the advancement history.
//
// A level-up spends exactly SlotBudget slots on advancements from the catalog.
// Session walks the player through the decision steps and Commit produces the
// immutable AdvancementRecord; Delevel trims records and reverts their
// effects.
package levelup

// Advancement ids.
const (
	IncreaseTraits      = "increase_traits"
	AddHP               = "add_hp"
	AddStress           = "add_stress"
	IncreaseExperience  = "increase_experience"
	DomainCard          = "domain_card"
	IncreaseEvasion     = "increase_evasion"
	SubclassCard        = "subclass_card"
	IncreaseProficiency = "increase_proficiency"
	Multiclass          = "multiclass"
)

// SlotBudget is the exact slot cost every level-up must spend.
const SlotBudget = 2

// Option is a static advancement catalog entry.
type Option struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Cost        int    `json:"cost"`
	MinLevel    int    `json:"min_level,omitempty"`
}

var defaultCatalog = []Option{
	{ID: IncreaseTraits, Name: "Increase Traits", Description: "Gain a +1 bonus to two unmarked character traits and mark them.", Cost: 1},
	{ID: AddHP, Name: "Add Hit Point Slot", Description: "Permanently gain one Hit Point slot.", Cost: 1},
	{ID: AddStress, Name: "Add Stress Slot", Description: "Permanently gain one Stress slot.", Cost: 1},
	{ID: IncreaseExperience, Name: "Increase Experiences", Description: "Permanently gain a +1 bonus to two Experiences.", Cost: 1},
	{ID: DomainCard, Name: "Additional Domain Card", Description: "Choose an additional domain card of your level or lower.", Cost: 1},
	{ID: IncreaseEvasion, Name: "Increase Evasion", Description: "Permanently gain a +1 bonus to your Evasion.", Cost: 1},
	{ID: SubclassCard, Name: "Upgraded Subclass", Description: "Take an upgraded subclass card. Unavailable in a tier where you multiclassed.", Cost: 1},
	{ID: IncreaseProficiency, Name: "Increase Proficiency", Description: "Increase your Proficiency by +1.", Cost: 2},
	{ID: Multiclass, Name: "Multiclass", Description: "Choose an additional class and one of its domains. Unavailable in a tier where you upgraded your subclass.", Cost: 2, MinLevel: 5},
}

// DefaultCatalog returns a copy of the advancement catalog.
func DefaultCatalog() []Option {
	return append([]Option(nil), defaultCatalog...)
}

// Lookup returns the catalog option with id.
func Lookup(id string) (Option, bool) {
	for _, option := range defaultCatalog {
		if option.ID == id {
			return option, true
		}
	}
	return Option{}, false
}

// count returns how many times id appears in selected.
func count(selected []string, id string) int {
	n := 0
	for _, s := range selected {
		if s == id {
			n++
		}
	}
	return n
}
