package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"solana-casino-backend/internal/errs"
)

func TestKindOfWrappedChain(t *testing.T) {
	base := errs.New(errs.KindInsufficientBalance, "broke")
	wrapped := fmt.Errorf("placing bet: %w", base)

	if kind := errs.KindOf(wrapped); kind != errs.KindInsufficientBalance {
		t.Errorf("kind %s through plain wrap", kind)
	}
	if !errs.Is(wrapped, errs.KindInsufficientBalance) {
		t.Error("Is should see through fmt.Errorf wrapping")
	}
}

func TestKindOfPlainErrorDefaultsInternal(t *testing.T) {
	if kind := errs.KindOf(errors.New("boom")); kind != errs.KindInternal {
		t.Errorf("plain error mapped to %s", kind)
	}
}

func TestRetryable(t *testing.T) {
	retryable := []errs.Kind{errs.KindOracleUnavailable, errs.KindStorageConflict}
	for _, k := range retryable {
		if !errs.Retryable(errs.New(k, "x")) {
			t.Errorf("%s should be retryable", k)
		}
	}
	terminal := []errs.Kind{
		errs.KindValidationFailed, errs.KindInsufficientBalance,
		errs.KindBetAlreadyActive, errs.KindNotFound, errs.KindInternal,
	}
	for _, k := range terminal {
		if errs.Retryable(errs.New(k, "x")) {
			t.Errorf("%s must not be retryable", k)
		}
	}
}

func TestUnwrapKeepsCause(t *testing.T) {
	cause := errors.New("driver: bad connection")
	err := errs.Wrap(errs.KindInternal, "load balance", cause)
	if !errors.Is(err, cause) {
		t.Error("cause lost in wrap")
	}
	if msg := errs.Message(err); msg != "load balance" {
		t.Errorf("message %q", msg)
	}
}
