package games

import (
	"github.com/shopspring/decimal"

	"solana-casino-backend/internal/errs"
	"solana-casino-backend/internal/models"
)

// Dice: the player picks 1 to 5 of the 6 faces and wins if the rolled
// face is among them. Fair multiplier is 6/k, scaled by the house edge.
type Dice struct {
	cfg Config
}

func (d *Dice) Game() models.GameType { return models.GameDice }

func (d *Dice) Validate(sel models.Selection) error {
	if len(sel.Faces) < 1 || len(sel.Faces) > 5 {
		return errs.Newf(errs.KindValidationFailed, "dice selection must cover 1 to 5 faces, got %d", len(sel.Faces))
	}
	if hasDuplicates(sel.Faces) {
		return errs.New(errs.KindValidationFailed, "dice selection contains duplicate faces")
	}
	for _, f := range sel.Faces {
		if f < 1 || f > 6 {
			return errs.Newf(errs.KindValidationFailed, "dice face %d out of range 1..6", f)
		}
	}
	return nil
}

func (d *Dice) FloatsNeeded(models.Selection) int { return 1 }

func (d *Dice) Resolve(floats []float64, sel models.Selection) (models.Outcome, error) {
	if len(floats) < 1 {
		return models.Outcome{}, errs.New(errs.KindInternal, "dice needs 1 draw")
	}
	strike := int(floats[0]*6) + 1

	out := models.Outcome{
		Result: models.BetLost,
		Strike: models.Strike{Number: strike},
	}
	for _, f := range sel.Faces {
		if f == strike {
			out.Result = models.BetWon
			break
		}
	}
	if out.Result == models.BetWon {
		out.Multiplier = decimal.NewFromInt(6).
			Div(decimal.NewFromInt(int64(len(sel.Faces)))).
			Mul(edgeFactor(d.cfg.HouseEdge))
	}
	return out, nil
}
