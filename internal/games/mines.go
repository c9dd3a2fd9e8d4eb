package games

import (
	"github.com/shopspring/decimal"

	"solana-casino-backend/internal/errs"
	"solana-casino-backend/internal/models"
)

const MinesGridSize = 25

// Mines: minesCount bombs hide in a 5x5 grid. Every safe pick multiplies
// the payout by remaining/(remaining-mines); hitting a bomb ends the
// round at zero. Manual rounds reveal tile by tile; auto mode replays a
// submitted pick list through the same math in one call.
type Mines struct {
	cfg Config
}

func (m *Mines) Game() models.GameType { return models.GameMines }

func (m *Mines) Validate(sel models.Selection) error {
	if sel.MinesCount < 1 || sel.MinesCount > MinesGridSize-1 {
		return errs.Newf(errs.KindValidationFailed, "mines count must be 1..%d, got %d", MinesGridSize-1, sel.MinesCount)
	}
	if len(sel.Picks) > 0 {
		if len(sel.Picks) > MinesGridSize-sel.MinesCount {
			return errs.Newf(errs.KindValidationFailed, "auto picks exceed the %d safe tiles", MinesGridSize-sel.MinesCount)
		}
		if hasDuplicates(sel.Picks) {
			return errs.New(errs.KindValidationFailed, "auto picks contain duplicates")
		}
		for _, p := range sel.Picks {
			if p < 0 || p >= MinesGridSize {
				return errs.Newf(errs.KindValidationFailed, "pick %d out of range 0..%d", p, MinesGridSize-1)
			}
		}
	}
	return nil
}

func (m *Mines) FloatsNeeded(sel models.Selection) int { return sel.MinesCount }

// Resolve handles auto mode only; manual rounds go through the pending
// flow and call MinePositions/MultiplierAfter directly.
func (m *Mines) Resolve(floats []float64, sel models.Selection) (models.Outcome, error) {
	if len(sel.Picks) == 0 {
		return models.Outcome{}, errs.New(errs.KindValidationFailed, "auto mines requires a pick list")
	}
	if len(floats) < sel.MinesCount {
		return models.Outcome{}, errs.Newf(errs.KindInternal, "mines needs %d draws", sel.MinesCount)
	}
	mines := MinePositions(floats, sel.MinesCount)

	isMine := make(map[int]bool, len(mines))
	for _, pos := range mines {
		isMine[pos] = true
	}

	out := models.Outcome{
		Strike: models.Strike{Mines: mines, Picks: sel.Picks},
	}
	for i, pick := range sel.Picks {
		if isMine[pick] {
			out.Result = models.BetLost
			out.Strike.Picks = sel.Picks[:i+1]
			out.Multiplier = decimal.Zero
			return out, nil
		}
	}
	out.Result = models.BetWon
	out.Multiplier = m.MultiplierAfter(len(sel.Picks), sel.MinesCount)
	return out, nil
}

// MinePositions assigns minesCount distinct bomb tiles from the draw
// sequence, one float per assignment.
func MinePositions(floats []float64, minesCount int) []int {
	remaining := make([]int, MinesGridSize)
	for i := range remaining {
		remaining[i] = i
	}
	mines := make([]int, 0, minesCount)
	for i := 0; i < minesCount; i++ {
		idx := int(floats[i] * float64(len(remaining)))
		mines = append(mines, remaining[idx])
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}
	return mines
}

// MultiplierAfter is the cash-out multiplier after safePicks safe
// reveals with minesCount bombs on the board. Strictly increasing in
// safePicks for a fixed bomb count.
func (m *Mines) MultiplierAfter(safePicks, minesCount int) decimal.Decimal {
	mult := edgeFactor(m.cfg.HouseEdge)
	for i := 0; i < safePicks; i++ {
		remaining := int64(MinesGridSize - i)
		safe := remaining - int64(minesCount)
		mult = mult.Mul(decimal.NewFromInt(remaining)).Div(decimal.NewFromInt(safe))
	}
	return mult.Round(8)
}
