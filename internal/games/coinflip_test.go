package games_test

import (
	"testing"

	"solana-casino-backend/internal/models"
)

func TestCoinFlipBoundary(t *testing.T) {
	flip := mustGet(t, newRegistry(t), models.GameCoinFlip)

	// Strikes 50 and 51 are the house band: neither side wins there.
	cases := []struct {
		float  float64
		strike int
		side   models.CoinSide
		want   models.BetResult
	}{
		{0.48, 49, models.SideTails, models.BetWon},
		{0.48, 49, models.SideHeads, models.BetLost},
		{0.49, 50, models.SideTails, models.BetLost},
		{0.49, 50, models.SideHeads, models.BetLost},
		{0.50, 51, models.SideTails, models.BetLost},
		{0.50, 51, models.SideHeads, models.BetLost},
		{0.51, 52, models.SideHeads, models.BetWon},
		{0.51, 52, models.SideTails, models.BetLost},
		{0.00, 1, models.SideTails, models.BetWon},
		{0.99, 100, models.SideHeads, models.BetWon},
	}

	for _, tc := range cases {
		out, err := flip.Resolve([]float64{tc.float}, models.Selection{Side: tc.side})
		if err != nil {
			t.Fatal(err)
		}
		if out.Strike.Number != tc.strike {
			t.Errorf("float %v: expected strike %d, got %d", tc.float, tc.strike, out.Strike.Number)
		}
		if out.Result != tc.want {
			t.Errorf("strike %d %s: expected %s, got %s", tc.strike, tc.side, tc.want, out.Result)
		}
		if out.Result == models.BetWon && out.Multiplier.String() != "2" {
			t.Errorf("coinflip win must pay flat 2x, got %s", out.Multiplier)
		}
	}
}

func TestCoinFlipValidation(t *testing.T) {
	flip := mustGet(t, newRegistry(t), models.GameCoinFlip)

	if err := flip.Validate(models.Selection{Side: models.SideHeads}); err != nil {
		t.Errorf("heads should validate: %v", err)
	}
	if err := flip.Validate(models.Selection{Side: "edge"}); err == nil {
		t.Error("invalid side must be rejected")
	}
}
