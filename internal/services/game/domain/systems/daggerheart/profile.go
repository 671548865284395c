package daggerheart

import (
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/advancement/internal/platform/errors"
)

// Character defaults and bounds.
const (
	LevelMin = 1
	LevelMax = 10

	TraitDefault = 0
	TraitMin     = -2
	TraitMax     = 4

	HopeMin     = 0
	HopeMax     = 6
	HopeDefault = 2

	StressMaxBase      = 6
	ProficiencyDefault = 1
	EvasionDefault     = 10
	ArmorScoreCap      = 12
)

var (
	// ErrEmptyID indicates the character has no id.
	ErrEmptyID = apperrors.New(apperrors.CodeCharacterEmptyID, "character id is required")
	// ErrEmptyName indicates the character has no name.
	ErrEmptyName = apperrors.New(apperrors.CodeCharacterEmptyName, "character name is required")
	// ErrInvalidLevel indicates level is out of range.
	ErrInvalidLevel = apperrors.New(apperrors.CodeCharacterInvalidLevel, "level must be in range 1..10")
	// ErrInvalidTraitValue indicates a trait value is outside the valid range.
	ErrInvalidTraitValue = apperrors.New(apperrors.CodeCharacterInvalidTrait, "trait values must be in range -2..+4")
	// ErrInvalidHope indicates hope is out of range.
	ErrInvalidHope = apperrors.New(apperrors.CodeCharacterInvalidHope, "hope must be in range 0..6")
	// ErrInvalidClassHP indicates the class base HP is not positive.
	ErrInvalidClassHP = apperrors.New(apperrors.CodeCharacterInvalidClassHP, "class base hp must be at least 1")
	// ErrInvalidLocation indicates an inventory item has an unknown location.
	ErrInvalidLocation = apperrors.New(apperrors.CodeCharacterInvalidLocation, "unknown inventory location")
)

// NewCharacter returns a level 1 character with default tracks. It is used by
// loaders and fixtures; the rules engine itself never constructs characters.
func NewCharacter(id, name, classID string, classBaseHP, classEvasion int, domains ...string) Character {
	return Character{
		ID:           id,
		Name:         name,
		ClassID:      classID,
		ClassBaseHP:  classBaseHP,
		ClassEvasion: classEvasion,
		Level:        LevelMin,
		Vitals: Vitals{
			HP:        classBaseHP,
			HPMax:     classBaseHP,
			StressMax: StressMaxBase,
		},
		Thresholds:    DamageThresholds{Minor: 1, Major: LevelMin, Severe: LevelMin * 2},
		Hope:          HopeDefault,
		Proficiency:   ProficiencyDefault,
		Evasion:       classEvasion,
		Domains:       domains,
		SubclassStage: SubclassFoundation,
		MarkedTraits:  map[string]bool{},
		History:       map[int]AdvancementRecord{},
	}
}

// ValidateTrait validates a single trait value is within range.
func ValidateTrait(name string, value int) error {
	if value < TraitMin || value > TraitMax {
		return apperrors.WithMetadata(
			apperrors.CodeCharacterInvalidTrait,
			fmt.Sprintf("trait %q has value %d, must be in range %d..%d", name, value, TraitMin, TraitMax),
			map[string]string{"Trait": name, "Value": fmt.Sprintf("%d", value)},
		)
	}
	return nil
}

// ValidateTraits validates all trait values in sheet order.
func ValidateTraits(t Traits) error {
	values := t.Map()
	for _, name := range TraitIDs() {
		if err := ValidateTrait(name, values[name]); err != nil {
			return err
		}
	}
	return nil
}

// ValidateLevel validates level is within 1..10.
func ValidateLevel(level int) error {
	if level < LevelMin || level > LevelMax {
		return apperrors.WithMetadata(
			apperrors.CodeCharacterInvalidLevel,
			fmt.Sprintf("level %d must be in range %d..%d", level, LevelMin, LevelMax),
			map[string]string{"Level": fmt.Sprintf("%d", level)},
		)
	}
	return nil
}

// ValidateCharacter checks a loaded character before it is stored.
func ValidateCharacter(c Character) error {
	if strings.TrimSpace(c.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if err := ValidateLevel(c.Level); err != nil {
		return err
	}
	if c.ClassBaseHP < 1 {
		return ErrInvalidClassHP
	}
	if c.Hope < HopeMin || c.Hope > HopeMax {
		return ErrInvalidHope
	}
	for _, entry := range c.Inventory {
		if !entry.Location.Valid() {
			return apperrors.WithMetadata(
				apperrors.CodeCharacterInvalidLocation,
				fmt.Sprintf("item %s has unknown location %q", entry.ID, entry.Location),
				map[string]string{"Item": entry.Item.Name, "Location": string(entry.Location)},
			)
		}
	}
	return ValidateTraits(c.Traits)
}
