package app

import apperrors "github.com/louisbranch/advancement/internal/platform/errors"

var (
	// ErrNoActiveCharacter indicates no character has been loaded into State.
	ErrNoActiveCharacter = apperrors.New(apperrors.CodeNotFound, "no active character")
	// ErrSessionInProgress indicates a level-up is already open.
	ErrSessionInProgress = apperrors.New(apperrors.CodeLevelUpSessionInProgress, "level-up already in progress")
	// ErrNoActiveSession indicates no level-up is open.
	ErrNoActiveSession = apperrors.New(apperrors.CodeLevelUpNoActiveSession, "no level-up in progress")
	// ErrDelevelNotConfirmed indicates a de-level was requested without confirmation.
	ErrDelevelNotConfirmed = apperrors.New(apperrors.CodeLevelUpDelevelNotConfirmed, "de-level requires confirmation")
	// ErrUnknownItem indicates an inventory id the character does not carry.
	ErrUnknownItem = apperrors.New(apperrors.CodeEquipmentUnknownItem, "item not in inventory")
	// ErrInvalidLocation indicates an unknown equipment location.
	ErrInvalidLocation = apperrors.New(apperrors.CodeEquipmentInvalidLocation, "unknown item location")
)
