package games_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"solana-casino-backend/internal/errs"
	"solana-casino-backend/internal/games"
	"solana-casino-backend/internal/models"
)

func newRegistry(t *testing.T) *games.Registry {
	t.Helper()
	return games.NewRegistry(games.DefaultConfig())
}

func mustGet(t *testing.T, reg *games.Registry, game models.GameType) games.Resolver {
	t.Helper()
	res, err := reg.Get(game)
	if err != nil {
		t.Fatalf("no resolver for %s: %v", game, err)
	}
	return res
}

func TestDiceValidation(t *testing.T) {
	dice := mustGet(t, newRegistry(t), models.GameDice)

	cases := []struct {
		name  string
		faces []int
		ok    bool
	}{
		{"one face", []int{3}, true},
		{"five faces", []int{1, 2, 3, 4, 5}, true},
		{"empty", nil, false},
		{"all six", []int{1, 2, 3, 4, 5, 6}, false},
		{"out of range", []int{0, 7}, false},
		{"duplicate", []int{2, 2}, false},
	}
	for _, tc := range cases {
		err := dice.Validate(models.Selection{Faces: tc.faces})
		if tc.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok {
			if err == nil {
				t.Errorf("%s: expected validation error", tc.name)
			} else if errs.KindOf(err) != errs.KindValidationFailed {
				t.Errorf("%s: expected validation kind, got %s", tc.name, errs.KindOf(err))
			}
		}
	}
}

func TestDiceResolve(t *testing.T) {
	dice := mustGet(t, newRegistry(t), models.GameDice)

	// float 0.2 maps to face 2; selection of 3 faces pays 6/3 = 2x
	// before the 1% edge.
	out, err := dice.Resolve([]float64{0.2}, models.Selection{Faces: []int{1, 2, 3}})
	if err != nil {
		t.Fatal(err)
	}
	if out.Strike.Number != 2 {
		t.Errorf("expected strike 2, got %d", out.Strike.Number)
	}
	if out.Result != models.BetWon {
		t.Errorf("strike 2 in {1,2,3} must win")
	}
	want := decimal.NewFromFloat(1.98)
	if !out.Multiplier.Equal(want) {
		t.Errorf("expected multiplier %s, got %s", want, out.Multiplier)
	}

	// Same roll against faces that miss.
	out, err = dice.Resolve([]float64{0.2}, models.Selection{Faces: []int{5, 6}})
	if err != nil {
		t.Fatal(err)
	}
	if out.Result != models.BetLost || !out.Multiplier.IsZero() {
		t.Errorf("strike 2 outside {5,6} must lose with zero multiplier")
	}
}

func TestDiceStrikeRange(t *testing.T) {
	dice := mustGet(t, newRegistry(t), models.GameDice)
	for _, f := range []float64{0, 0.166, 0.5, 0.83, 0.999999} {
		out, err := dice.Resolve([]float64{f}, models.Selection{Faces: []int{1}})
		if err != nil {
			t.Fatal(err)
		}
		if out.Strike.Number < 1 || out.Strike.Number > 6 {
			t.Errorf("float %v produced out-of-range face %d", f, out.Strike.Number)
		}
	}
}
