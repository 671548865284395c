// Package errors provides structured error handling with i18n support.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"

	// Character profile errors
	CodeCharacterEmptyID         Code = "CHARACTER_EMPTY_ID"
	CodeCharacterEmptyName       Code = "CHARACTER_EMPTY_NAME"
	CodeCharacterInvalidLevel    Code = "CHARACTER_INVALID_LEVEL"
	CodeCharacterInvalidTrait    Code = "CHARACTER_INVALID_TRAIT_VALUE"
	CodeCharacterInvalidHope     Code = "CHARACTER_INVALID_HOPE"
	CodeCharacterInvalidClassHP  Code = "CHARACTER_INVALID_CLASS_HP"
	CodeCharacterInvalidLocation Code = "CHARACTER_INVALID_ITEM_LOCATION"

	// Level-up validation codes (one per validation rule)
	CodeLevelUpLevelNotHigher        Code = "LEVELUP_LEVEL_NOT_HIGHER"
	CodeLevelUpLevelBelowMin         Code = "LEVELUP_LEVEL_BELOW_MIN"
	CodeLevelUpLevelAboveMax         Code = "LEVELUP_LEVEL_ABOVE_MAX"
	CodeLevelUpNoAdvancements        Code = "LEVELUP_NO_ADVANCEMENTS"
	CodeLevelUpSlotBudget            Code = "LEVELUP_SLOT_BUDGET"
	CodeLevelUpUnknownAdvancement    Code = "LEVELUP_UNKNOWN_ADVANCEMENT"
	CodeLevelUpAdvancementMinLevel   Code = "LEVELUP_ADVANCEMENT_MIN_LEVEL"
	CodeLevelUpSubclassMastered      Code = "LEVELUP_SUBCLASS_MASTERED"
	CodeLevelUpSubclassBlocked       Code = "LEVELUP_SUBCLASS_BLOCKED"
	CodeLevelUpAlreadyMulticlassed   Code = "LEVELUP_ALREADY_MULTICLASSED"
	CodeLevelUpMulticlassBlocked     Code = "LEVELUP_MULTICLASS_BLOCKED"
	CodeLevelUpMulticlassDomain      Code = "LEVELUP_MULTICLASS_DOMAIN_REQUIRED"
	CodeLevelUpCardRequired          Code = "LEVELUP_DOMAIN_CARD_REQUIRED"
	CodeLevelUpCardLevelTooHigh      Code = "LEVELUP_DOMAIN_CARD_LEVEL_TOO_HIGH"
	CodeLevelUpCardLevelInvalid      Code = "LEVELUP_DOMAIN_CARD_LEVEL_INVALID"
	CodeLevelUpCardDomain            Code = "LEVELUP_DOMAIN_CARD_DOMAIN"
	CodeLevelUpCardOwned             Code = "LEVELUP_DOMAIN_CARD_OWNED"
	CodeLevelUpTraitCount            Code = "LEVELUP_TRAIT_COUNT"
	CodeLevelUpTraitUnknown          Code = "LEVELUP_TRAIT_UNKNOWN"
	CodeLevelUpTraitMarked           Code = "LEVELUP_TRAIT_MARKED"
	CodeLevelUpTraitDuplicate        Code = "LEVELUP_TRAIT_DUPLICATE"
	CodeLevelUpExperienceCount       Code = "LEVELUP_EXPERIENCE_COUNT"
	CodeLevelUpExperienceRange       Code = "LEVELUP_EXPERIENCE_OUT_OF_RANGE"
	CodeLevelUpExperienceDuplicate   Code = "LEVELUP_EXPERIENCE_DUPLICATE"
	CodeLevelUpExchangeCardRequired  Code = "LEVELUP_EXCHANGE_CARD_REQUIRED"
	CodeLevelUpExchangeCardNotOwned  Code = "LEVELUP_EXCHANGE_CARD_NOT_OWNED"
	CodeLevelUpExchangeLevelTooHigh  Code = "LEVELUP_EXCHANGE_LEVEL_TOO_HIGH"
	CodeLevelUpVitalSlotsInvalid     Code = "LEVELUP_VITAL_SLOTS_INVALID"
	CodeLevelUpSessionNotReady       Code = "LEVELUP_SESSION_NOT_READY"
	CodeLevelUpSessionCommitted      Code = "LEVELUP_SESSION_COMMITTED"
	CodeLevelUpDelevelInvalid        Code = "LEVELUP_DELEVEL_INVALID"
	CodeLevelUpDelevelNotConfirmed   Code = "LEVELUP_DELEVEL_NOT_CONFIRMED"
	CodeLevelUpSessionInProgress     Code = "LEVELUP_SESSION_IN_PROGRESS"
	CodeLevelUpNoActiveSession       Code = "LEVELUP_NO_ACTIVE_SESSION"
	CodeLevelUpInvalidTransaction    Code = "LEVELUP_INVALID_TRANSACTION"
	CodeContentInvalidCard           Code = "CONTENT_INVALID_CARD"
	CodeContentInvalidFilter         Code = "CONTENT_INVALID_FILTER"
	CodeEquipmentUnknownItem         Code = "EQUIPMENT_UNKNOWN_ITEM"
	CodeEquipmentInvalidLocation     Code = "EQUIPMENT_INVALID_LOCATION"
)

// Codes lists every code that must carry a base-locale message.
func Codes() []Code {
	return []Code{
		CodeNotFound,
		CodeCharacterEmptyID,
		CodeCharacterEmptyName,
		CodeCharacterInvalidLevel,
		CodeCharacterInvalidTrait,
		CodeCharacterInvalidHope,
		CodeCharacterInvalidClassHP,
		CodeCharacterInvalidLocation,
		CodeLevelUpLevelNotHigher,
		CodeLevelUpLevelBelowMin,
		CodeLevelUpLevelAboveMax,
		CodeLevelUpNoAdvancements,
		CodeLevelUpSlotBudget,
		CodeLevelUpUnknownAdvancement,
		CodeLevelUpAdvancementMinLevel,
		CodeLevelUpSubclassMastered,
		CodeLevelUpSubclassBlocked,
		CodeLevelUpAlreadyMulticlassed,
		CodeLevelUpMulticlassBlocked,
		CodeLevelUpMulticlassDomain,
		CodeLevelUpCardRequired,
		CodeLevelUpCardLevelTooHigh,
		CodeLevelUpCardLevelInvalid,
		CodeLevelUpCardDomain,
		CodeLevelUpCardOwned,
		CodeLevelUpTraitCount,
		CodeLevelUpTraitUnknown,
		CodeLevelUpTraitMarked,
		CodeLevelUpTraitDuplicate,
		CodeLevelUpExperienceCount,
		CodeLevelUpExperienceRange,
		CodeLevelUpExperienceDuplicate,
		CodeLevelUpExchangeCardRequired,
		CodeLevelUpExchangeCardNotOwned,
		CodeLevelUpExchangeLevelTooHigh,
		CodeLevelUpVitalSlotsInvalid,
		CodeLevelUpSessionNotReady,
		CodeLevelUpSessionCommitted,
		CodeLevelUpDelevelInvalid,
		CodeLevelUpDelevelNotConfirmed,
		CodeLevelUpSessionInProgress,
		CodeLevelUpNoActiveSession,
		CodeLevelUpInvalidTransaction,
		CodeContentInvalidCard,
		CodeContentInvalidFilter,
		CodeEquipmentUnknownItem,
		CodeEquipmentInvalidLocation,
	}
}
