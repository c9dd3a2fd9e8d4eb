package handlers

import (
	"net/http"
	"testing"

	"solana-casino-backend/internal/errs"
)

func TestStatusForKinds(t *testing.T) {
	cases := []struct {
		kind errs.Kind
		want int
	}{
		{errs.KindAuthenticationFailed, http.StatusUnauthorized},
		{errs.KindValidationFailed, http.StatusBadRequest},
		{errs.KindInsufficientBalance, http.StatusBadRequest},
		{errs.KindBetAlreadyActive, http.StatusConflict},
		{errs.KindInvalidSeedState, http.StatusConflict},
		{errs.KindStorageConflict, http.StatusConflict},
		{errs.KindNotFound, http.StatusNotFound},
		{errs.KindOracleUnavailable, http.StatusServiceUnavailable},
		{errs.KindInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := statusFor(tc.kind); got != tc.want {
			t.Errorf("%s: status %d, expected %d", tc.kind, got, tc.want)
		}
	}
}
