package games

import (
	"github.com/shopspring/decimal"

	"solana-casino-backend/internal/errs"
	"solana-casino-backend/internal/models"
)

// Binary options settle against an external price oracle, not the draw
// chain, so they live outside the Resolver registry: the strike price is
// captured at placement and compared to the oracle price after the time
// frame elapses.

func ValidateOptions(sel models.Selection) error {
	if sel.Direction != models.DirectionUp && sel.Direction != models.DirectionDown {
		return errs.Newf(errs.KindValidationFailed, "option direction must be up or down, got %q", sel.Direction)
	}
	if sel.TimeFrame < 1 || sel.TimeFrame > 60 {
		return errs.Newf(errs.KindValidationFailed, "option time frame must be 1..60 minutes, got %d", sel.TimeFrame)
	}
	return nil
}

// ResolveOptions compares the end price against the strike. An unmoved
// price loses for both directions, same as the coin flip's house band.
func ResolveOptions(direction models.OptionDirection, strike, end decimal.Decimal, payout float64) models.Outcome {
	won := false
	switch direction {
	case models.DirectionUp:
		won = end.GreaterThan(strike)
	case models.DirectionDown:
		won = end.LessThan(strike)
	}

	out := models.Outcome{
		Result: models.BetLost,
		Strike: models.Strike{Price: end.String()},
	}
	if won {
		out.Result = models.BetWon
		out.Multiplier = decimal.NewFromFloat(payout)
	}
	return out
}
