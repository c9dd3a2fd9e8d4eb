package services

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"solana-casino-backend/internal/errs"
	"solana-casino-backend/internal/fair"
	"solana-casino-backend/internal/games"
	"solana-casino-backend/internal/metrics"
	"solana-casino-backend/internal/models"
)

// MinesRound is the client view of a mines round. Mine positions are
// included only once the round is settled.
type MinesRound struct {
	BetID      string                 `json:"bet_id"`
	MinesCount int                    `json:"mines_count"`
	Revealed   []int                  `json:"revealed"`
	Multiplier decimal.Decimal        `json:"multiplier"`
	Result     models.BetResult       `json:"result"`
	Mines      []int                  `json:"mines,omitempty"`
	Payout     decimal.Decimal        `json:"payout"`
	Balance    *models.AccountBalance `json:"balance,omitempty"`
}

// OpenMines starts a mines round. With a pick list the whole round is
// played server-side in one settled bet; without one, the stake is
// debited, the bomb layout is derived and hidden, and the round waits
// for reveals.
func (e *Engine) OpenMines(ctx context.Context, wallet, amountStr, tokenMint string, minesCount int, picks []int) (MinesRound, error) {
	sel := models.Selection{MinesCount: minesCount, Picks: picks}
	if len(picks) > 0 {
		bet, balance, err := e.PlaceInstant(ctx, wallet, models.GameMines, amountStr, tokenMint, sel)
		if err != nil {
			return MinesRound{}, err
		}
		strike, err := bet.GetStrike()
		if err != nil {
			return MinesRound{}, errs.Wrap(errs.KindInternal, "decode strike", err)
		}
		payout := decimal.Zero
		if bet.Result == models.BetWon {
			payout = bet.Amount.Mul(bet.Multiplier)
		}
		return MinesRound{
			BetID:      bet.ID,
			MinesCount: minesCount,
			Revealed:   strike.Picks,
			Multiplier: bet.Multiplier,
			Result:     bet.Result,
			Mines:      strike.Mines,
			Payout:     payout,
			Balance:    &balance,
		}, nil
	}

	mines, err := e.minesResolver()
	if err != nil {
		return MinesRound{}, err
	}
	if err := mines.Validate(sel); err != nil {
		return MinesRound{}, err
	}
	amount, err := parseAmount(amountStr)
	if err != nil {
		return MinesRound{}, err
	}

	derive := func(pair models.SeedPair, nonce uint64) ([]byte, error) {
		floats := fair.Floats(pair.ServerSeed, pair.ClientSeed, nonce, 0, minesCount)
		return json.Marshal(models.MinesState{
			MinesCount: minesCount,
			Mines:      games.MinePositions(floats, minesCount),
			Revealed:   []int{},
		})
	}
	p := models.PlaceParams{
		BetID:     models.NewBetID(),
		Wallet:    wallet,
		Game:      models.GameMines,
		TokenMint: tokenMint,
		Amount:    amount,
		Selection: sel,
	}
	bet, balance, err := e.store.OpenPendingBet(ctx, p, derive)
	if err != nil {
		metrics.BetsRejected.WithLabelValues(string(models.GameMines), string(errs.KindOf(err))).Inc()
		return MinesRound{}, err
	}

	e.log.Info("mines round opened",
		zap.String("bet_id", bet.ID),
		zap.String("wallet", wallet),
		zap.Int("mines_count", minesCount),
		zap.Uint64("nonce", bet.Nonce))
	return MinesRound{
		BetID:      bet.ID,
		MinesCount: minesCount,
		Revealed:   []int{},
		Multiplier: mines.MultiplierAfter(0, minesCount),
		Result:     models.BetPending,
		Payout:     decimal.Zero,
		Balance:    &balance,
	}, nil
}

// RevealMines uncovers one tile. A bomb settles the round lost; the
// last safe tile cashes out automatically.
func (e *Engine) RevealMines(ctx context.Context, wallet string, position int) (MinesRound, error) {
	if position < 0 || position >= games.MinesGridSize {
		return MinesRound{}, errs.Newf(errs.KindValidationFailed, "position %d out of range 0..%d", position, games.MinesGridSize-1)
	}
	bet, state, err := e.pendingMines(ctx, wallet)
	if err != nil {
		return MinesRound{}, err
	}
	for _, r := range state.Revealed {
		if r == position {
			return MinesRound{}, errs.Newf(errs.KindValidationFailed, "tile %d already revealed", position)
		}
	}

	for _, m := range state.Mines {
		if m == position {
			state.Revealed = append(state.Revealed, position)
			return e.settleMines(ctx, bet, state, models.BetLost, decimal.Zero)
		}
	}

	state.Revealed = append(state.Revealed, position)
	mines, err := e.minesResolver()
	if err != nil {
		return MinesRound{}, err
	}
	mult := mines.MultiplierAfter(len(state.Revealed), state.MinesCount)

	if len(state.Revealed) == games.MinesGridSize-state.MinesCount {
		// Board cleared.
		return e.settleMines(ctx, bet, state, models.BetWon, mult)
	}

	raw, err := json.Marshal(state)
	if err != nil {
		return MinesRound{}, errs.Wrap(errs.KindInternal, "encode mines state", err)
	}
	// Guarded on the pre-reveal state: if another reveal or a cashout
	// landed in between, this one loses the race instead of clobbering it.
	if err := e.store.UpdatePendingState(ctx, bet.ID, bet.State, raw, mult); err != nil {
		return MinesRound{}, err
	}
	return MinesRound{
		BetID:      bet.ID,
		MinesCount: state.MinesCount,
		Revealed:   state.Revealed,
		Multiplier: mult,
		Result:     models.BetPending,
		Payout:     decimal.Zero,
	}, nil
}

// CashoutMines settles the open round won at the current multiplier.
// At least one tile must be revealed.
func (e *Engine) CashoutMines(ctx context.Context, wallet string) (MinesRound, error) {
	bet, state, err := e.pendingMines(ctx, wallet)
	if err != nil {
		return MinesRound{}, err
	}
	if len(state.Revealed) == 0 {
		return MinesRound{}, errs.New(errs.KindValidationFailed, "reveal at least one tile before cashing out")
	}
	mines, err := e.minesResolver()
	if err != nil {
		return MinesRound{}, err
	}
	mult := mines.MultiplierAfter(len(state.Revealed), state.MinesCount)
	return e.settleMines(ctx, bet, state, models.BetWon, mult)
}

func (e *Engine) pendingMines(ctx context.Context, wallet string) (models.BetRecord, models.MinesState, error) {
	bet, err := e.store.FindPendingBet(ctx, wallet, models.GameMines)
	if err != nil {
		return models.BetRecord{}, models.MinesState{}, err
	}
	var state models.MinesState
	if err := json.Unmarshal(bet.State, &state); err != nil {
		return models.BetRecord{}, models.MinesState{}, errs.Wrap(errs.KindInternal, "decode mines state", err)
	}
	return bet, state, nil
}

func (e *Engine) settleMines(ctx context.Context, bet models.BetRecord, state models.MinesState, result models.BetResult, mult decimal.Decimal) (MinesRound, error) {
	payout := decimal.Zero
	tax := decimal.Zero
	if result == models.BetWon {
		payout = bet.Amount.Mul(mult)
		tax = bet.Amount.Mul(decimal.NewFromFloat(e.registry.Config().HouseEdge))
	}
	settled, balance, err := e.store.SettlePendingBet(ctx, bet.ID, models.Settlement{
		Result:     result,
		Strike:     models.Strike{Mines: state.Mines, Picks: state.Revealed},
		Multiplier: mult,
		Payout:     payout,
		Tax:        tax,
	})
	if err != nil {
		return MinesRound{}, err
	}

	metrics.BetsSettled.WithLabelValues(string(models.GameMines), string(result)).Inc()
	e.log.Info("mines round settled",
		zap.String("bet_id", settled.ID),
		zap.String("wallet", settled.Wallet),
		zap.String("result", string(result)),
		zap.String("multiplier", mult.String()),
		zap.Int("revealed", len(state.Revealed)))
	e.feed.PublishSettled(settled)

	return MinesRound{
		BetID:      settled.ID,
		MinesCount: state.MinesCount,
		Revealed:   state.Revealed,
		Multiplier: mult,
		Result:     result,
		Mines:      state.Mines,
		Payout:     payout,
		Balance:    &balance,
	}, nil
}

func (e *Engine) minesResolver() (*games.Mines, error) {
	resolver, err := e.registry.Get(models.GameMines)
	if err != nil {
		return nil, err
	}
	mines, ok := resolver.(*games.Mines)
	if !ok {
		return nil, errs.New(errs.KindInternal, "mines resolver has unexpected type")
	}
	return mines, nil
}
