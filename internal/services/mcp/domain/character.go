package domain

import (
	"github.com/louisbranch/advancement/internal/services/game/domain/systems/daggerheart"
)

// HistoryEntry is the part of an advancement record the tools read.
type HistoryEntry struct {
	Level            int                     `json:"level,omitempty" jsonschema:"level the record was taken at"`
	TraitIncrements  []string                `json:"trait_increments,omitempty" jsonschema:"traits increased at this level"`
	HPSlots          int                     `json:"hp_slots,omitempty" jsonschema:"hit point slots gained"`
	StressSlots      int                     `json:"stress_slots,omitempty" jsonschema:"stress slots gained"`
	EvasionGained    int                     `json:"evasion_gained,omitempty" jsonschema:"evasion gained"`
	Multiclass       *daggerheart.Multiclass `json:"multiclass,omitempty" jsonschema:"multiclass taken at this level"`
	SubclassAdvanced bool                    `json:"subclass_advanced,omitempty" jsonschema:"whether a subclass card was taken"`
}

// CharacterInput is the character sheet accepted by the tools.
type CharacterInput struct {
	ID            string                            `json:"id,omitempty" jsonschema:"character identifier"`
	Name          string                            `json:"name,omitempty" jsonschema:"character name"`
	ClassID       string                            `json:"class_id,omitempty" jsonschema:"class identifier"`
	ClassBaseHP   int                               `json:"class_base_hp" jsonschema:"class starting hit points"`
	ClassEvasion  int                               `json:"class_evasion,omitempty" jsonschema:"class starting evasion"`
	Level         int                               `json:"level,omitempty" jsonschema:"current level (1-10)"`
	Traits        daggerheart.Traits                `json:"traits,omitempty" jsonschema:"trait scores"`
	Vitals        daggerheart.Vitals                `json:"vitals,omitempty" jsonschema:"current vitals"`
	Hope          int                               `json:"hope,omitempty" jsonschema:"current hope"`
	Proficiency   int                               `json:"proficiency,omitempty" jsonschema:"current proficiency"`
	Experiences   []daggerheart.Experience          `json:"experiences,omitempty" jsonschema:"experiences in sheet order"`
	Modifiers     map[string][]daggerheart.Modifier `json:"modifiers,omitempty" jsonschema:"user modifiers keyed by stat"`
	Inventory     []daggerheart.InventoryItem       `json:"inventory,omitempty" jsonschema:"inventory with item locations"`
	Domains       []string                          `json:"domains,omitempty" jsonschema:"class domains"`
	DomainCardIDs []string                          `json:"domain_card_ids,omitempty" jsonschema:"owned domain cards"`
	MarkedTraits  []string                          `json:"marked_traits,omitempty" jsonschema:"traits marked in the current tier"`
	Multiclass    *daggerheart.Multiclass           `json:"multiclass,omitempty" jsonschema:"multiclass, if taken"`
	SubclassStage string                            `json:"subclass_stage,omitempty" jsonschema:"foundation, specialization or mastery"`
	History       []HistoryEntry                    `json:"history,omitempty" jsonschema:"advancement records"`
}

// Character converts the input into the engine aggregate. Missing level and
// proficiency take their defaults.
func (in CharacterInput) Character() daggerheart.Character {
	c := daggerheart.Character{
		ID:            in.ID,
		Name:          in.Name,
		ClassID:       in.ClassID,
		ClassBaseHP:   in.ClassBaseHP,
		ClassEvasion:  in.ClassEvasion,
		Level:         in.Level,
		Traits:        in.Traits,
		Vitals:        in.Vitals,
		Hope:          in.Hope,
		Proficiency:   in.Proficiency,
		Experiences:   in.Experiences,
		Modifiers:     in.Modifiers,
		Inventory:     in.Inventory,
		Domains:       in.Domains,
		DomainCardIDs: in.DomainCardIDs,
		MarkedTraits:  make(map[string]bool, len(in.MarkedTraits)),
		Multiclass:    in.Multiclass,
		SubclassStage: daggerheart.SubclassStage(in.SubclassStage),
		History:       make(map[int]daggerheart.AdvancementRecord, len(in.History)),
	}
	if c.Level < daggerheart.LevelMin {
		c.Level = daggerheart.LevelMin
	}
	if c.Proficiency < daggerheart.ProficiencyDefault {
		c.Proficiency = daggerheart.ProficiencyDefault
	}
	if c.SubclassStage == "" {
		c.SubclassStage = daggerheart.SubclassFoundation
	}
	for _, trait := range in.MarkedTraits {
		c.MarkedTraits[trait] = true
	}
	for _, entry := range in.History {
		c.History[entry.Level] = daggerheart.AdvancementRecord{
			Level:            entry.Level,
			TraitIncrements:  entry.TraitIncrements,
			HPSlots:          entry.HPSlots,
			StressSlots:      entry.StressSlots,
			EvasionGained:    entry.EvasionGained,
			Multiclass:       entry.Multiclass,
			SubclassAdvanced: entry.SubclassAdvanced,
		}
	}
	return c.Clone()
}
