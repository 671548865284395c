package daggerheart

import "strings"

// Trait identifiers, in sheet order.
const (
	TraitAgility   = "agility"
	TraitStrength  = "strength"
	TraitFinesse   = "finesse"
	TraitInstinct  = "instinct"
	TraitPresence  = "presence"
	TraitKnowledge = "knowledge"
)

// TraitIDs returns the six trait identifiers in sheet order.
func TraitIDs() []string {
	return []string{TraitAgility, TraitStrength, TraitFinesse, TraitInstinct, TraitPresence, TraitKnowledge}
}

// IsTrait reports whether id names one of the six traits.
func IsTrait(id string) bool {
	for _, trait := range TraitIDs() {
		if trait == id {
			return true
		}
	}
	return false
}

// Traits represents the six Daggerheart character traits.
type Traits struct {
	Agility   int `json:"agility"`
	Strength  int `json:"strength"`
	Finesse   int `json:"finesse"`
	Instinct  int `json:"instinct"`
	Presence  int `json:"presence"`
	Knowledge int `json:"knowledge"`
}

// Value returns the score for a trait id.
func (t Traits) Value(id string) (int, bool) {
	if p := t.field(id); p != nil {
		return *p, true
	}
	return 0, false
}

// Add returns a copy with delta applied to the trait. Unknown ids are ignored.
func (t Traits) Add(id string, delta int) Traits {
	if p := t.field(id); p != nil {
		*p += delta
	}
	return t
}

// Map returns the traits keyed by id.
func (t Traits) Map() map[string]int {
	return map[string]int{
		TraitAgility:   t.Agility,
		TraitStrength:  t.Strength,
		TraitFinesse:   t.Finesse,
		TraitInstinct:  t.Instinct,
		TraitPresence:  t.Presence,
		TraitKnowledge: t.Knowledge,
	}
}

func (t *Traits) field(id string) *int {
	switch strings.ToLower(strings.TrimSpace(id)) {
	case TraitAgility:
		return &t.Agility
	case TraitStrength:
		return &t.Strength
	case TraitFinesse:
		return &t.Finesse
	case TraitInstinct:
		return &t.Instinct
	case TraitPresence:
		return &t.Presence
	case TraitKnowledge:
		return &t.Knowledge
	}
	return nil
}

// DamageThresholds are the HP damage boundaries. Minor is always 1.
type DamageThresholds struct {
	Minor  int `json:"minor"`
	Major  int `json:"major"`
	Severe int `json:"severe"`
}

// Vitals holds current and maximum resource tracks.
type Vitals struct {
	HP            int `json:"hp"`
	HPMax         int `json:"hp_max"`
	Stress        int `json:"stress"`
	StressMax     int `json:"stress_max"`
	ArmorSlots    int `json:"armor_slots"`
	ArmorSlotsMax int `json:"armor_slots_max"`
	ArmorScore    int `json:"armor_score"`
}

// Experience is a named situational bonus applied to rolls.
type Experience struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Multiclass records a second class taken through advancement.
type Multiclass struct {
	ClassID string `json:"class_id,omitempty"`
	Domain  string `json:"domain"`
}

// SubclassStage is the progress of the character's subclass cards.
type SubclassStage string

const (
	SubclassFoundation     SubclassStage = "foundation"
	SubclassSpecialization SubclassStage = "specialization"
	SubclassMastery        SubclassStage = "mastery"
)

// Next returns the following stage and false when already at mastery.
func (s SubclassStage) Next() (SubclassStage, bool) {
	switch s {
	case "", SubclassFoundation:
		return SubclassSpecialization, true
	case SubclassSpecialization:
		return SubclassMastery, true
	}
	return s, false
}

// Previous returns the preceding stage, bottoming out at foundation.
func (s SubclassStage) Previous() SubclassStage {
	switch s {
	case SubclassMastery:
		return SubclassSpecialization
	default:
		return SubclassFoundation
	}
}

// Character is the aggregate the rules engine reads and returns.
//
// It is loaded whole by the persistence layer; the engine never builds one
// from scratch and never validates it on its own.
type Character struct {
	ID            string                    `json:"id"`
	Name          string                    `json:"name"`
	ClassID       string                    `json:"class_id"`
	ClassBaseHP   int                       `json:"class_base_hp"`
	ClassEvasion  int                       `json:"class_evasion"`
	Level         int                       `json:"level"`
	Traits        Traits                    `json:"traits"`
	Vitals        Vitals                    `json:"vitals"`
	Thresholds    DamageThresholds          `json:"thresholds"`
	Hope          int                       `json:"hope"`
	Proficiency   int                       `json:"proficiency"`
	Evasion       int                       `json:"evasion"`
	Experiences   []Experience              `json:"experiences,omitempty"`
	Modifiers     map[string][]Modifier     `json:"modifiers,omitempty"`
	Inventory     []InventoryItem           `json:"inventory,omitempty"`
	Domains       []string                  `json:"domains,omitempty"`
	DomainCardIDs []string                  `json:"domain_card_ids,omitempty"`
	MarkedTraits  map[string]bool           `json:"marked_traits,omitempty"`
	Multiclass    *Multiclass               `json:"multiclass,omitempty"`
	SubclassStage SubclassStage             `json:"subclass_stage,omitempty"`
	History       map[int]AdvancementRecord `json:"advancement_history,omitempty"`
}

// EquippedArmor returns the armor item in the armor slot, if any.
func (c *Character) EquippedArmor() *Item {
	return c.equipped(LocationArmor)
}

// PrimaryWeapon returns the item in the primary weapon slot, if any.
func (c *Character) PrimaryWeapon() *Item {
	return c.equipped(LocationPrimaryWeapon)
}

// SecondaryWeapon returns the item in the secondary weapon slot, if any.
func (c *Character) SecondaryWeapon() *Item {
	return c.equipped(LocationSecondaryWeapon)
}

func (c *Character) equipped(location Location) *Item {
	if c == nil {
		return nil
	}
	for i := range c.Inventory {
		if c.Inventory[i].Location == location {
			return &c.Inventory[i].Item
		}
	}
	return nil
}

// AllDomains returns the class domains plus the multiclass domain.
func (c *Character) AllDomains() []string {
	if c == nil {
		return nil
	}
	domains := append([]string(nil), c.Domains...)
	if c.Multiclass != nil && strings.TrimSpace(c.Multiclass.Domain) != "" {
		domains = append(domains, c.Multiclass.Domain)
	}
	return domains
}

// HasDomainCard reports whether the character owns the card.
func (c *Character) HasDomainCard(id string) bool {
	if c == nil {
		return false
	}
	for _, owned := range c.DomainCardIDs {
		if owned == id {
			return true
		}
	}
	return false
}

// HasMulticlassed reports whether a multiclass is recorded on the character
// or anywhere in its history.
func (c *Character) HasMulticlassed() bool {
	if c == nil {
		return false
	}
	if c.Multiclass != nil {
		return true
	}
	for _, record := range c.History {
		if record.Multiclass != nil {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can mutate without aliasing.
func (c Character) Clone() Character {
	out := c
	out.Experiences = append([]Experience(nil), c.Experiences...)
	out.Inventory = append([]InventoryItem(nil), c.Inventory...)
	out.Domains = append([]string(nil), c.Domains...)
	out.DomainCardIDs = append([]string(nil), c.DomainCardIDs...)
	if c.Modifiers != nil {
		out.Modifiers = make(map[string][]Modifier, len(c.Modifiers))
		for stat, mods := range c.Modifiers {
			out.Modifiers[stat] = append([]Modifier(nil), mods...)
		}
	}
	if c.MarkedTraits != nil {
		out.MarkedTraits = make(map[string]bool, len(c.MarkedTraits))
		for trait, marked := range c.MarkedTraits {
			out.MarkedTraits[trait] = marked
		}
	}
	if c.Multiclass != nil {
		multiclass := *c.Multiclass
		out.Multiclass = &multiclass
	}
	if c.History != nil {
		out.History = make(map[int]AdvancementRecord, len(c.History))
		for level, record := range c.History {
			out.History[level] = record
		}
	}
	return out
}
