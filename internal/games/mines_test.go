package games_test

import (
	"testing"

	"solana-casino-backend/internal/fair"
	"solana-casino-backend/internal/games"
	"solana-casino-backend/internal/models"
)

func minesResolver(t *testing.T) *games.Mines {
	t.Helper()
	res := mustGet(t, newRegistry(t), models.GameMines)
	m, ok := res.(*games.Mines)
	if !ok {
		t.Fatal("mines resolver has unexpected type")
	}
	return m
}

func TestMinePositionsDistinct(t *testing.T) {
	for _, count := range []int{1, 3, 10, 24} {
		floats := fair.Floats("mines-seed", "client", uint64(count), 0, count)
		mines := games.MinePositions(floats, count)
		if len(mines) != count {
			t.Fatalf("expected %d mines, got %d", count, len(mines))
		}
		seen := make(map[int]bool)
		for _, pos := range mines {
			if pos < 0 || pos >= games.MinesGridSize {
				t.Errorf("mine position %d out of grid", pos)
			}
			if seen[pos] {
				t.Errorf("duplicate mine position %d", pos)
			}
			seen[pos] = true
		}
	}
}

func TestMinesMultiplierMonotonic(t *testing.T) {
	m := minesResolver(t)

	for _, minesCount := range []int{1, 3, 5, 24} {
		prev := m.MultiplierAfter(0, minesCount)
		maxSafe := games.MinesGridSize - minesCount
		for picks := 1; picks <= maxSafe; picks++ {
			cur := m.MultiplierAfter(picks, minesCount)
			if !cur.GreaterThan(prev) {
				t.Errorf("mines=%d: multiplier not increasing at pick %d (%s -> %s)",
					minesCount, picks, prev, cur)
			}
			prev = cur
		}
	}

	// First pick with 3 mines: 0.99 * 25/22.
	got := m.MultiplierAfter(1, 3).InexactFloat64()
	want := 0.99 * 25.0 / 22.0
	if diff := got - want; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("expected %.6f after first pick, got %.6f", want, got)
	}
}

func TestMinesAutoResolve(t *testing.T) {
	m := minesResolver(t)

	sel := models.Selection{MinesCount: 3}
	floats := fair.Floats("auto-mines", "client", 9, 0, m.FloatsNeeded(sel))
	mines := games.MinePositions(floats, 3)
	isMine := map[int]bool{mines[0]: true, mines[1]: true, mines[2]: true}

	var safe []int
	for pos := 0; pos < games.MinesGridSize && len(safe) < 4; pos++ {
		if !isMine[pos] {
			safe = append(safe, pos)
		}
	}

	// Surviving pick list cashes out at the compounded multiplier.
	sel.Picks = safe
	out, err := m.Resolve(floats, sel)
	if err != nil {
		t.Fatal(err)
	}
	if out.Result != models.BetWon {
		t.Fatal("all-safe pick list must win")
	}
	if !out.Multiplier.Equal(m.MultiplierAfter(4, 3)) {
		t.Errorf("auto mode must use the same compounding as manual: got %s, want %s",
			out.Multiplier, m.MultiplierAfter(4, 3))
	}

	// Hitting a bomb zeroes the round.
	sel.Picks = []int{safe[0], mines[0]}
	out, err = m.Resolve(floats, sel)
	if err != nil {
		t.Fatal(err)
	}
	if out.Result != models.BetLost || !out.Multiplier.IsZero() {
		t.Error("mine hit must lose with zero multiplier")
	}
}

func TestMinesValidation(t *testing.T) {
	m := minesResolver(t)

	if err := m.Validate(models.Selection{MinesCount: 0}); err == nil {
		t.Error("zero mines must be rejected")
	}
	if err := m.Validate(models.Selection{MinesCount: 25}); err == nil {
		t.Error("25 mines leaves no safe tile and must be rejected")
	}
	if err := m.Validate(models.Selection{MinesCount: 24, Picks: []int{0, 1}}); err == nil {
		t.Error("more picks than safe tiles must be rejected")
	}
	if err := m.Validate(models.Selection{MinesCount: 3, Picks: []int{1, 1}}); err == nil {
		t.Error("duplicate picks must be rejected")
	}
	if err := m.Validate(models.Selection{MinesCount: 3, Picks: []int{25}}); err == nil {
		t.Error("pick outside the grid must be rejected")
	}
	if err := m.Validate(models.Selection{MinesCount: 3}); err != nil {
		t.Errorf("manual round with 3 mines should validate: %v", err)
	}
}
