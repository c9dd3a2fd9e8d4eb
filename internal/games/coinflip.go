package games

import (
	"github.com/shopspring/decimal"

	"solana-casino-backend/internal/errs"
	"solana-casino-backend/internal/models"
)

// CoinFlip maps the draw to a strike in 1..100. Heads wins above
// cfg.CoinHeadsOver, tails wins at or below cfg.CoinTailsMax, and the
// band in between loses for both sides. With the defaults (51/49) each
// side wins on 49 of 100 strikes against a flat 2x payout.
type CoinFlip struct {
	cfg Config
}

func (c *CoinFlip) Game() models.GameType { return models.GameCoinFlip }

func (c *CoinFlip) Validate(sel models.Selection) error {
	if sel.Side != models.SideHeads && sel.Side != models.SideTails {
		return errs.Newf(errs.KindValidationFailed, "coinflip side must be heads or tails, got %q", sel.Side)
	}
	return nil
}

func (c *CoinFlip) FloatsNeeded(models.Selection) int { return 1 }

func (c *CoinFlip) Resolve(floats []float64, sel models.Selection) (models.Outcome, error) {
	if len(floats) < 1 {
		return models.Outcome{}, errs.New(errs.KindInternal, "coinflip needs 1 draw")
	}
	strike := int(floats[0]*100) + 1

	won := false
	switch sel.Side {
	case models.SideHeads:
		won = strike > c.cfg.CoinHeadsOver
	case models.SideTails:
		won = strike <= c.cfg.CoinTailsMax
	}

	out := models.Outcome{
		Result: models.BetLost,
		Strike: models.Strike{Number: strike},
	}
	if won {
		out.Result = models.BetWon
		out.Multiplier = decimal.NewFromInt(2)
	}
	return out, nil
}
