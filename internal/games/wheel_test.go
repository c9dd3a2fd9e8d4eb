package games_test

import (
	"testing"

	"solana-casino-backend/internal/games"
	"solana-casino-backend/internal/models"
)

func TestWheelValidation(t *testing.T) {
	wheel := mustGet(t, newRegistry(t), models.GameWheel)

	for _, segs := range []int{10, 20, 30, 40, 50} {
		if err := wheel.Validate(models.Selection{Segments: segs, Risk: models.RiskLow}); err != nil {
			t.Errorf("segments %d should validate: %v", segs, err)
		}
	}
	for _, segs := range []int{0, 5, 15, 25, 60} {
		if err := wheel.Validate(models.Selection{Segments: segs, Risk: models.RiskLow}); err == nil {
			t.Errorf("segments %d must be rejected", segs)
		}
	}
	if err := wheel.Validate(models.Selection{Segments: 10, Risk: "ultra"}); err == nil {
		t.Error("invalid risk tier must be rejected")
	}
}

func TestWheelStrikeRangeAndPayout(t *testing.T) {
	wheel := mustGet(t, newRegistry(t), models.GameWheel)

	for _, segs := range []int{10, 50} {
		for _, f := range []float64{0, 0.25, 0.5, 0.75, 0.999999} {
			sel := models.Selection{Segments: segs, Risk: models.RiskMedium}
			out, err := wheel.Resolve([]float64{f}, sel)
			if err != nil {
				t.Fatal(err)
			}
			if out.Strike.Segment < 0 || out.Strike.Segment >= segs {
				t.Errorf("segments=%d float=%v: segment %d out of range", segs, f, out.Strike.Segment)
			}
			want := games.SegmentMultiplier(sel.Risk, segs, out.Strike.Segment)
			if want > 0 && out.Multiplier.InexactFloat64() != want {
				t.Errorf("segment %d: expected %vx, got %s", out.Strike.Segment, want, out.Multiplier)
			}
			if want == 0 && out.Result != models.BetLost {
				t.Errorf("zero segment must lose")
			}
		}
	}
}

func TestWheelHighTierScales(t *testing.T) {
	// The single winning slice on the high tier pays proportionally to
	// the wheel size.
	if got := games.SegmentMultiplier(models.RiskHigh, 10, 9); got != 9.9 {
		t.Errorf("expected 9.9 on 10 segments, got %v", got)
	}
	if got := games.SegmentMultiplier(models.RiskHigh, 50, 9); got != 49.5 {
		t.Errorf("expected 49.5 on 50 segments, got %v", got)
	}
	if got := games.SegmentMultiplier(models.RiskHigh, 10, 0); got != 0 {
		t.Errorf("losing slice must pay 0, got %v", got)
	}
}
