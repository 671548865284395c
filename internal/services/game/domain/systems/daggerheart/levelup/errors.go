package levelup

import (
	"fmt"

	apperrors "github.com/louisbranch/advancement/internal/platform/errors"
)

// Field tags used to group validation errors next to their input.
const (
	FieldNewLevel       = "newLevel"
	FieldAdvancements   = "advancements"
	FieldDomainCard     = "domainCard"
	FieldTraits         = "traits"
	FieldExperiences    = "experiences"
	FieldVitalSlots     = "vitalSlots"
	FieldDomainExchange = "domainExchange"
)

// ValidationError is an expected, field-tagged rule violation. Validators
// collect these rather than returning Go errors.
type ValidationError struct {
	Field    string            `json:"field"`
	Code     apperrors.Code    `json:"code"`
	Message  string            `json:"message"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Localize renders the message in locale from the error catalog.
func (e ValidationError) Localize(locale string) string {
	return apperrors.WithMetadata(e.Code, e.Message, e.Metadata).LocalizedMessage(locale)
}

func invalid(field string, code apperrors.Code, metadata map[string]string, format string, args ...any) ValidationError {
	return ValidationError{
		Field:    field,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Metadata: metadata,
	}
}

// IsLevelUpValid reports whether no validation errors were collected.
func IsLevelUpValid(errs []ValidationError) bool {
	return len(errs) == 0
}

// GroupErrorsByField buckets messages by field. Fields without errors are
// absent from the result.
func GroupErrorsByField(errs []ValidationError) map[string][]string {
	out := make(map[string][]string)
	for _, err := range errs {
		out[err.Field] = append(out[err.Field], err.Message)
	}
	return out
}

var (
	// ErrSessionNotReady indicates the current step does not validate.
	ErrSessionNotReady = apperrors.New(apperrors.CodeLevelUpSessionNotReady, "level-up step is incomplete")
	// ErrSessionCommitted indicates the session was already committed.
	ErrSessionCommitted = apperrors.New(apperrors.CodeLevelUpSessionCommitted, "level-up already committed")
	// ErrInvalidTransaction indicates commit was attempted with validation errors.
	ErrInvalidTransaction = apperrors.New(apperrors.CodeLevelUpInvalidTransaction, "level-up transaction is invalid")
	// ErrInvalidDelevel indicates a de-level target outside 1..current-1.
	ErrInvalidDelevel = apperrors.New(apperrors.CodeLevelUpDelevelInvalid, "invalid de-level target")
)
