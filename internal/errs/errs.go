package errs

import (
	"errors"
	"fmt"
)

// Kind is the machine-readable error class returned alongside the
// human-readable message in every failure response.
type Kind string

const (
	KindAuthenticationFailed Kind = "authentication_failed"
	KindValidationFailed     Kind = "validation_failed"
	KindInsufficientBalance  Kind = "insufficient_balance"
	KindBetAlreadyActive     Kind = "bet_already_active"
	KindInvalidSeedState     Kind = "invalid_seed_state"
	KindOracleUnavailable    Kind = "oracle_unavailable"
	KindStorageConflict      Kind = "storage_conflict"
	KindNotFound             Kind = "not_found"
	KindInternal             Kind = "internal"
)

// E carries a kind plus an optional wrapped cause.
type E struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *E) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Cause }

func New(kind Kind, msg string) *E {
	return &E{Kind: kind, Message: msg}
}

func Newf(kind Kind, format string, args ...any) *E {
	return &E{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, msg string, cause error) *E {
	return &E{Kind: kind, Message: msg, Cause: cause}
}

// KindOf extracts the kind from any error in the chain, defaulting to
// KindInternal for plain errors.
func KindOf(err error) Kind {
	var e *E
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Message returns the human-readable part without the kind prefix.
func Message(err error) string {
	var e *E
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Retryable reports whether the caller should retry the same request.
// Oracle outages and lost storage races are transient; everything else
// is a terminal rejection.
func Retryable(err error) bool {
	switch KindOf(err) {
	case KindOracleUnavailable, KindStorageConflict:
		return true
	}
	return false
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
