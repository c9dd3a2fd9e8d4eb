package games_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"solana-casino-backend/internal/games"
	"solana-casino-backend/internal/models"
)

func TestOptionsDirectionMatrix(t *testing.T) {
	strike := decimal.RequireFromString("150.25")

	cases := []struct {
		direction models.OptionDirection
		end       string
		want      models.BetResult
	}{
		{models.DirectionUp, "151.00", models.BetWon},
		{models.DirectionUp, "150.00", models.BetLost},
		{models.DirectionDown, "150.00", models.BetWon},
		{models.DirectionDown, "151.00", models.BetLost},
		// An unmoved price loses for both directions.
		{models.DirectionUp, "150.25", models.BetLost},
		{models.DirectionDown, "150.25", models.BetLost},
	}

	for _, tc := range cases {
		out := games.ResolveOptions(tc.direction, strike, decimal.RequireFromString(tc.end), 1.9)
		if out.Result != tc.want {
			t.Errorf("%s to %s: expected %s, got %s", tc.direction, tc.end, tc.want, out.Result)
		}
		if tc.want == models.BetWon && out.Multiplier.InexactFloat64() != 1.9 {
			t.Errorf("win must pay the configured 1.9x, got %s", out.Multiplier)
		}
		if !decimal.RequireFromString(out.Strike.Price).Equal(decimal.RequireFromString(tc.end)) {
			t.Errorf("strike must record the end price %s, got %s", tc.end, out.Strike.Price)
		}
	}
}

func TestOptionsValidation(t *testing.T) {
	ok := models.Selection{Direction: models.DirectionUp, TimeFrame: 5}
	if err := games.ValidateOptions(ok); err != nil {
		t.Errorf("valid option rejected: %v", err)
	}

	bad := []models.Selection{
		{Direction: "sideways", TimeFrame: 5},
		{Direction: models.DirectionUp, TimeFrame: 0},
		{Direction: models.DirectionDown, TimeFrame: 61},
	}
	for i, sel := range bad {
		if err := games.ValidateOptions(sel); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}
