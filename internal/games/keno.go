package games

import (
	"github.com/shopspring/decimal"

	"solana-casino-backend/internal/errs"
	"solana-casino-backend/internal/models"
)

const (
	kenoPoolSize  = 40
	kenoDrawCount = 10
	kenoMaxPicks  = 10
)

// Keno: the player picks up to 10 numbers out of 1..40, the house draws
// 10 without replacement, payout comes from the risk-tier paytable
// indexed by pick count and hit count.
type Keno struct {
	cfg Config
}

// kenoPaytables[risk][picks-1][hits] = multiplier. Each row already
// includes the house margin, so no extra edge factor is applied here.
var kenoPaytables = map[models.RiskTier][][]float64{
	models.RiskLow: {
		{0.7, 1.85},
		{0, 2.0, 3.8},
		{0, 1.1, 1.38, 26},
		{0, 0, 2.2, 7.9, 90},
		{0, 0, 1.5, 4.2, 13, 300},
		{0, 0, 1.1, 2, 6.2, 100, 700},
		{0, 0, 1.1, 1.6, 3.5, 15, 225, 700},
		{0, 0, 1.1, 1.5, 2, 5.5, 39, 100, 800},
		{0, 0, 1.1, 1.3, 1.7, 2.5, 7.5, 50, 250, 1000},
		{0, 0, 1.1, 1.2, 1.3, 1.8, 3.5, 13, 50, 250, 1000},
	},
	models.RiskMedium: {
		{0.4, 2.75},
		{0, 1.8, 5.1},
		{0, 0, 2.8, 50},
		{0, 0, 1.7, 10, 100},
		{0, 0, 1.4, 4, 14, 390},
		{0, 0, 0, 3, 9, 180, 710},
		{0, 0, 0, 2, 7, 30, 400, 800},
		{0, 0, 0, 2, 4, 11, 67, 400, 900},
		{0, 0, 0, 2, 2.5, 5, 15, 100, 500, 1000},
		{0, 0, 0, 1.6, 2, 4, 7, 26, 100, 500, 1000},
	},
	models.RiskHigh: {
		{0, 3.96},
		{0, 0, 17.1},
		{0, 0, 0, 81.5},
		{0, 0, 0, 10, 259},
		{0, 0, 0, 4.5, 48, 450},
		{0, 0, 0, 0, 11, 350, 710},
		{0, 0, 0, 0, 7, 90, 400, 800},
		{0, 0, 0, 0, 5, 20, 270, 600, 900},
		{0, 0, 0, 0, 4, 11, 56, 500, 800, 1000},
		{0, 0, 0, 0, 3.5, 8, 13, 63, 500, 800, 1000},
	},
}

func (k *Keno) Game() models.GameType { return models.GameKeno }

func (k *Keno) Validate(sel models.Selection) error {
	if len(sel.Numbers) < 1 || len(sel.Numbers) > kenoMaxPicks {
		return errs.Newf(errs.KindValidationFailed, "keno selection must have 1 to %d numbers, got %d", kenoMaxPicks, len(sel.Numbers))
	}
	if hasDuplicates(sel.Numbers) {
		return errs.New(errs.KindValidationFailed, "keno selection contains duplicates")
	}
	for _, n := range sel.Numbers {
		if n < 1 || n > kenoPoolSize {
			return errs.Newf(errs.KindValidationFailed, "keno number %d out of range 1..%d", n, kenoPoolSize)
		}
	}
	if !sel.Risk.Valid() {
		return errs.Newf(errs.KindValidationFailed, "invalid keno risk tier %q", sel.Risk)
	}
	return nil
}

func (k *Keno) FloatsNeeded(models.Selection) int { return kenoDrawCount }

func (k *Keno) Resolve(floats []float64, sel models.Selection) (models.Outcome, error) {
	if len(floats) < kenoDrawCount {
		return models.Outcome{}, errs.Newf(errs.KindInternal, "keno needs %d draws", kenoDrawCount)
	}
	drawn := drawWithoutReplacement(floats, kenoPoolSize, kenoDrawCount)

	picked := make(map[int]struct{}, len(sel.Numbers))
	for _, n := range sel.Numbers {
		picked[n] = struct{}{}
	}
	hits := 0
	for _, d := range drawn {
		if _, ok := picked[d]; ok {
			hits++
		}
	}

	mult := kenoPaytables[sel.Risk][len(sel.Numbers)-1][hits]
	out := models.Outcome{
		Result: models.BetLost,
		Strike: models.Strike{Drawn: drawn, Hits: hits},
	}
	if mult > 0 {
		out.Result = models.BetWon
		out.Multiplier = decimal.NewFromFloat(mult)
	}
	return out, nil
}

// drawWithoutReplacement runs a Fisher-Yates selection over 1..pool using
// one float per drawn number.
func drawWithoutReplacement(floats []float64, pool, count int) []int {
	remaining := make([]int, pool)
	for i := range remaining {
		remaining[i] = i + 1
	}
	drawn := make([]int, 0, count)
	for i := 0; i < count; i++ {
		idx := int(floats[i] * float64(len(remaining)))
		drawn = append(drawn, remaining[idx])
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}
	return drawn
}
