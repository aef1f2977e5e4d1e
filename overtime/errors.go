package overtime

import "fmt"

// Validation failure codes. Each staged action fails with exactly one of
// these; nothing is mutated on failure.
const (
	CodeEmptyJustification = "empty_justification"
	CodeInvalidTimeRange   = "invalid_time_range"
	CodeOverlap            = "overlap"
	CodeInvalidPeriod      = "invalid_period"
	CodeNotPending         = "not_pending"
)

// ValidationError rejects a single staged action. It is returned as a
// value, recovered locally and surfaced to the submitting user.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErr(code, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// AuthorizationError marks an actor attempting a transition outside their
// role or scope. The intended UI paths never reach it; hitting one is a
// programming-contract violation and the action is rejected outright.
type AuthorizationError struct {
	Actor  string
	Action string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s is not authorized to %s", e.Actor, e.Action)
}

func authorizationErr(actor, action string) *AuthorizationError {
	return &AuthorizationError{Actor: actor, Action: action}
}
