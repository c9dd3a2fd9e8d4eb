package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"solana-casino-backend/internal/errs"
	"solana-casino-backend/internal/games"
	"solana-casino-backend/internal/metrics"
	"solana-casino-backend/internal/models"
)

// OptionsPosition is the client view of a binary option.
type OptionsPosition struct {
	BetID       string                 `json:"bet_id"`
	Direction   models.OptionDirection `json:"direction"`
	StrikePrice string                 `json:"strike_price"`
	EndPrice    string                 `json:"end_price,omitempty"`
	TimeFrame   int                    `json:"time_frame"`
	ExpiresAt   int64                  `json:"expires_at"`
	Result      models.BetResult       `json:"result"`
	Payout      decimal.Decimal        `json:"payout"`
	Balance     *models.AccountBalance `json:"balance,omitempty"`
}

// OpenOptions opens a binary option: the oracle price at placement is
// the strike, and the position settles against the price after the
// time frame. No draw and no nonce are involved.
func (e *Engine) OpenOptions(ctx context.Context, wallet, amountStr, tokenMint string, direction models.OptionDirection, timeFrame int) (OptionsPosition, error) {
	sel := models.Selection{Direction: direction, TimeFrame: timeFrame}
	if err := games.ValidateOptions(sel); err != nil {
		return OptionsPosition{}, err
	}
	amount, err := parseAmount(amountStr)
	if err != nil {
		return OptionsPosition{}, err
	}

	strike, err := e.oracle.Price(ctx, e.oracleSymbol)
	if err != nil {
		metrics.BetsRejected.WithLabelValues(string(models.GameOptions), string(errs.KindOf(err))).Inc()
		return OptionsPosition{}, err
	}

	state := models.OptionsState{
		Direction:   direction,
		StrikePrice: strike.String(),
		TimeFrame:   timeFrame,
		ExpiresAt:   time.Now().Add(time.Duration(timeFrame) * time.Minute).UnixMilli(),
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return OptionsPosition{}, errs.Wrap(errs.KindInternal, "encode options state", err)
	}

	p := models.PlaceParams{
		BetID:     models.NewBetID(),
		Wallet:    wallet,
		Game:      models.GameOptions,
		TokenMint: tokenMint,
		Amount:    amount,
		Selection: sel,
		State:     raw,
	}
	bet, balance, err := e.store.OpenPendingBet(ctx, p, nil)
	if err != nil {
		metrics.BetsRejected.WithLabelValues(string(models.GameOptions), string(errs.KindOf(err))).Inc()
		return OptionsPosition{}, err
	}

	e.log.Info("option opened",
		zap.String("bet_id", bet.ID),
		zap.String("wallet", wallet),
		zap.String("direction", string(direction)),
		zap.String("strike", state.StrikePrice),
		zap.Int("time_frame", timeFrame))
	return OptionsPosition{
		BetID:       bet.ID,
		Direction:   direction,
		StrikePrice: state.StrikePrice,
		TimeFrame:   timeFrame,
		ExpiresAt:   state.ExpiresAt,
		Result:      models.BetPending,
		Payout:      decimal.Zero,
		Balance:     &balance,
	}, nil
}

// ResolveOptions settles the caller's expired option against the
// current oracle price. Called by the player; the background sweep
// covers positions nobody comes back for.
func (e *Engine) ResolveOptions(ctx context.Context, wallet string) (OptionsPosition, error) {
	bet, err := e.store.FindPendingBet(ctx, wallet, models.GameOptions)
	if err != nil {
		return OptionsPosition{}, err
	}
	return e.settleOption(ctx, bet, false)
}

// SettleExpiredOptions sweeps expired pending options. Oracle outages
// leave positions pending for the next pass.
func (e *Engine) SettleExpiredOptions(ctx context.Context) (int, error) {
	bets, err := e.store.ExpiredOptionBets(ctx, models.NowMillis(), 100)
	if err != nil {
		return 0, err
	}
	settled := 0
	for _, bet := range bets {
		if _, err := e.settleOption(ctx, bet, true); err != nil {
			if errs.Is(err, errs.KindStorageConflict) {
				continue
			}
			e.log.Warn("expired option sweep failed",
				zap.String("bet_id", bet.ID), zap.Error(err))
			continue
		}
		settled++
	}
	return settled, nil
}

func (e *Engine) settleOption(ctx context.Context, bet models.BetRecord, sweep bool) (OptionsPosition, error) {
	var state models.OptionsState
	if err := json.Unmarshal(bet.State, &state); err != nil {
		return OptionsPosition{}, errs.Wrap(errs.KindInternal, "decode options state", err)
	}
	if models.NowMillis() < state.ExpiresAt {
		return OptionsPosition{}, errs.Newf(errs.KindValidationFailed, "option expires in %dms", state.ExpiresAt-models.NowMillis())
	}
	strike, err := decimal.NewFromString(state.StrikePrice)
	if err != nil {
		return OptionsPosition{}, errs.Wrap(errs.KindInternal, "decode strike price", err)
	}

	// The end price is the first price observed after expiry, not the
	// price at the expiry instant; the background sweep keeps that gap
	// within its tick interval.
	end, err := e.oracle.Price(ctx, e.oracleSymbol)
	if err != nil {
		return OptionsPosition{}, err
	}

	outcome := games.ResolveOptions(state.Direction, strike, end, e.registry.Config().OptionsPayout)
	payout := decimal.Zero
	if outcome.Result == models.BetWon {
		payout = bet.Amount.Mul(outcome.Multiplier)
	}
	settled, balance, err := e.store.SettlePendingBet(ctx, bet.ID, models.Settlement{
		Result:     outcome.Result,
		Strike:     outcome.Strike,
		Multiplier: outcome.Multiplier,
		Payout:     payout,
	})
	if err != nil {
		return OptionsPosition{}, err
	}

	metrics.BetsSettled.WithLabelValues(string(models.GameOptions), string(outcome.Result)).Inc()
	e.log.Info("option settled",
		zap.String("bet_id", settled.ID),
		zap.String("wallet", settled.Wallet),
		zap.String("result", string(outcome.Result)),
		zap.String("strike", state.StrikePrice),
		zap.String("end", end.String()),
		zap.Bool("sweep", sweep))
	e.feed.PublishSettled(settled)

	return OptionsPosition{
		BetID:       settled.ID,
		Direction:   state.Direction,
		StrikePrice: state.StrikePrice,
		EndPrice:    end.String(),
		TimeFrame:   state.TimeFrame,
		ExpiresAt:   state.ExpiresAt,
		Result:      outcome.Result,
		Payout:      payout,
		Balance:     &balance,
	}, nil
}
