package games

import (
	"github.com/shopspring/decimal"

	"solana-casino-backend/internal/errs"
	"solana-casino-backend/internal/models"
)

// Wheel: the draw lands on one of 10/20/30/40/50 segments. Multiplier
// tables repeat every 10 segments; on the high tier the single winning
// segment pays proportionally to the wheel size, so bigger wheels are
// rarer but larger wins.
type Wheel struct {
	cfg Config
}

var wheelSegmentCounts = map[int]bool{10: true, 20: true, 30: true, 40: true, 50: true}

var wheelTables = map[models.RiskTier][]float64{
	models.RiskLow:    {1.5, 1.2, 1.2, 1.2, 0, 1.2, 1.2, 1.2, 1.2, 0},
	models.RiskMedium: {0, 1.9, 0, 1.5, 0, 2, 0, 1.5, 0, 3},
	models.RiskHigh:   {0, 0, 0, 0, 0, 0, 0, 0, 0, 9.9},
}

func (w *Wheel) Game() models.GameType { return models.GameWheel }

func (w *Wheel) Validate(sel models.Selection) error {
	if !wheelSegmentCounts[sel.Segments] {
		return errs.Newf(errs.KindValidationFailed, "wheel segments must be one of 10/20/30/40/50, got %d", sel.Segments)
	}
	if !sel.Risk.Valid() {
		return errs.Newf(errs.KindValidationFailed, "invalid wheel risk tier %q", sel.Risk)
	}
	return nil
}

func (w *Wheel) FloatsNeeded(models.Selection) int { return 1 }

func (w *Wheel) Resolve(floats []float64, sel models.Selection) (models.Outcome, error) {
	if len(floats) < 1 {
		return models.Outcome{}, errs.New(errs.KindInternal, "wheel needs 1 draw")
	}
	segment := int(floats[0] * float64(sel.Segments))
	mult := SegmentMultiplier(sel.Risk, sel.Segments, segment)

	out := models.Outcome{
		Result: models.BetLost,
		Strike: models.Strike{Segment: segment},
	}
	if mult > 0 {
		out.Result = models.BetWon
		out.Multiplier = decimal.NewFromFloat(mult)
	}
	return out, nil
}

// SegmentMultiplier returns the payout multiplier painted on a segment.
// Exported so the verification endpoint can rebuild the wheel a bet was
// settled against.
func SegmentMultiplier(risk models.RiskTier, segments, segment int) float64 {
	table := wheelTables[risk]
	mult := table[segment%len(table)]
	if risk == models.RiskHigh && mult > 0 {
		// 9.9x on a 10-slice wheel scales to 19.8x on 20, and so on:
		// one winning slice regardless of wheel size.
		mult = mult * float64(segments) / 10
	}
	return mult
}
