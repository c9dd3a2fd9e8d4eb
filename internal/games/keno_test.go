package games_test

import (
	"testing"

	"solana-casino-backend/internal/fair"
	"solana-casino-backend/internal/models"
)

func TestKenoValidation(t *testing.T) {
	keno := mustGet(t, newRegistry(t), models.GameKeno)

	valid := models.Selection{Numbers: []int{1, 2, 3}, Risk: models.RiskLow}
	if err := keno.Validate(valid); err != nil {
		t.Errorf("valid selection rejected: %v", err)
	}

	bad := []models.Selection{
		{Numbers: nil, Risk: models.RiskLow},
		{Numbers: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, Risk: models.RiskLow},
		{Numbers: []int{0}, Risk: models.RiskLow},
		{Numbers: []int{41}, Risk: models.RiskLow},
		{Numbers: []int{5, 5}, Risk: models.RiskLow},
		{Numbers: []int{1}, Risk: "extreme"},
	}
	for i, sel := range bad {
		if err := keno.Validate(sel); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestKenoDrawDistinctAndBounded(t *testing.T) {
	keno := mustGet(t, newRegistry(t), models.GameKeno)
	sel := models.Selection{
		Numbers: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		Risk:    models.RiskMedium,
	}

	for nonce := uint64(0); nonce < 50; nonce++ {
		floats := fair.Floats("server-seed-for-keno", "client", nonce, 0, keno.FloatsNeeded(sel))
		out, err := keno.Resolve(floats, sel)
		if err != nil {
			t.Fatal(err)
		}
		if len(out.Strike.Drawn) != 10 {
			t.Fatalf("nonce %d: expected 10 drawn numbers, got %d", nonce, len(out.Strike.Drawn))
		}
		seen := make(map[int]bool)
		for _, n := range out.Strike.Drawn {
			if n < 1 || n > 40 {
				t.Errorf("nonce %d: drawn %d out of 1..40", nonce, n)
			}
			if seen[n] {
				t.Errorf("nonce %d: duplicate drawn number %d", nonce, n)
			}
			seen[n] = true
		}
		if out.Strike.Hits < 0 || out.Strike.Hits > 10 {
			t.Errorf("nonce %d: hits %d outside [0,10]", nonce, out.Strike.Hits)
		}
	}
}

func TestKenoPaytableLookup(t *testing.T) {
	keno := mustGet(t, newRegistry(t), models.GameKeno)

	// Force a full-board hit: pick the exact numbers a known draw
	// produces, then verify the payout is the top table entry.
	sel := models.Selection{Numbers: []int{1, 2, 3}, Risk: models.RiskHigh}
	floats := fair.Floats("paytable-seed", "client", 1, 0, keno.FloatsNeeded(sel))
	out, err := keno.Resolve(floats, sel)
	if err != nil {
		t.Fatal(err)
	}
	sel.Numbers = append([]int(nil), out.Strike.Drawn[:3]...)
	out, err = keno.Resolve(floats, sel)
	if err != nil {
		t.Fatal(err)
	}
	if out.Strike.Hits != 3 {
		t.Fatalf("expected 3 hits, got %d", out.Strike.Hits)
	}
	if out.Result != models.BetWon {
		t.Error("3/3 on high risk must win")
	}
	if out.Multiplier.InexactFloat64() != 81.5 {
		t.Errorf("expected 81.5x for 3/3 high risk, got %s", out.Multiplier)
	}
}

func TestKenoZeroHitsLoses(t *testing.T) {
	keno := mustGet(t, newRegistry(t), models.GameKeno)
	sel := models.Selection{Numbers: []int{7}, Risk: models.RiskHigh}

	floats := fair.Floats("zero-hit-seed", "client", 0, 0, keno.FloatsNeeded(sel))
	out, err := keno.Resolve(floats, sel)
	if err != nil {
		t.Fatal(err)
	}
	if out.Strike.Hits == 0 && out.Result != models.BetLost {
		t.Error("zero hits on high risk must lose")
	}
}
