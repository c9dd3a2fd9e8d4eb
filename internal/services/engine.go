package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"solana-casino-backend/internal/errs"
	"solana-casino-backend/internal/fair"
	"solana-casino-backend/internal/games"
	"solana-casino-backend/internal/metrics"
	"solana-casino-backend/internal/models"
)

// SettlementStore is the transactional bet/balance surface the engine
// settles against. The MySQL implementation lives in internal/store;
// tests substitute an in-memory one.
type SettlementStore interface {
	PlaceInstantBet(ctx context.Context, p models.PlaceParams, resolve models.ResolveFn) (models.BetRecord, models.AccountBalance, error)
	OpenPendingBet(ctx context.Context, p models.PlaceParams, derive models.DeriveFn) (models.BetRecord, models.AccountBalance, error)
	FindPendingBet(ctx context.Context, wallet string, game models.GameType) (models.BetRecord, error)
	Bet(ctx context.Context, betID string) (models.BetRecord, error)
	UpdatePendingState(ctx context.Context, betID string, prev, state []byte, multiplier decimal.Decimal) error
	SettlePendingBet(ctx context.Context, betID string, st models.Settlement) (models.BetRecord, models.AccountBalance, error)
	ExpiredOptionBets(ctx context.Context, now int64, limit int) ([]models.BetRecord, error)

	Balance(ctx context.Context, wallet, tokenMint string) (models.AccountBalance, error)
	Credit(ctx context.Context, wallet, tokenMint string, amount decimal.Decimal, remark string) (models.AccountBalance, error)
	History(ctx context.Context, wallet string, limit int) ([]models.BetRecord, error)
	ActiveBets(ctx context.Context, wallet string) ([]models.BetRecord, error)
	HouseStats(ctx context.Context) ([]models.HouseStats, error)
	Journal(ctx context.Context, wallet string, limit int) ([]models.JournalEntry, error)
}

// SeedStore manages the seed pair lifecycle.
type SeedStore interface {
	Seeds(ctx context.Context, wallet string) (current, next models.SeedPair, err error)
	PreviousSeeds(ctx context.Context, wallet string, limit int) ([]models.SeedPair, error)
	SetClientSeed(ctx context.Context, wallet, clientSeed string) (models.SeedPair, error)
	RotateSeeds(ctx context.Context, wallet string) (revealed, current models.SeedPair, err error)
}

// Store is what a full backend (one *store.Store) provides.
type Store interface {
	SettlementStore
	SeedStore
}

// Engine is the settlement core: it validates selections, derives draws
// from the wallet's seed pair, and drives the store's transactional
// placement paths. All game math is delegated to the pure resolvers.
type Engine struct {
	store    Store
	registry *games.Registry
	oracle   PriceOracle
	feed     Feed
	log      *zap.Logger

	oracleSymbol string
	faucetMax    decimal.Decimal
}

const placementAttempts = 3

// maxBetAmount is a sanity ceiling, not a bankroll policy.
var maxBetAmount = decimal.New(1, 9)

func NewEngine(store Store, registry *games.Registry, oracle PriceOracle, feed Feed, log *zap.Logger, oracleSymbol string, faucetMax float64) *Engine {
	if feed == nil {
		feed = NopFeed{}
	}
	return &Engine{
		store:        store,
		registry:     registry,
		oracle:       oracle,
		feed:         feed,
		log:          log,
		oracleSymbol: oracleSymbol,
		faucetMax:    decimal.NewFromFloat(faucetMax),
	}
}

// PlaceInstant settles a single-draw bet end to end: coinflip, dice,
// keno, wheel, and auto-mode mines all go through here. Lost nonce
// races are retried; every other failure leaves no trace.
func (e *Engine) PlaceInstant(ctx context.Context, wallet string, game models.GameType, amountStr, tokenMint string, sel models.Selection) (models.BetRecord, models.AccountBalance, error) {
	resolver, err := e.registry.Get(game)
	if err != nil {
		return models.BetRecord{}, models.AccountBalance{}, err
	}
	if err := resolver.Validate(sel); err != nil {
		metrics.BetsRejected.WithLabelValues(string(game), string(errs.KindOf(err))).Inc()
		return models.BetRecord{}, models.AccountBalance{}, err
	}
	amount, err := parseAmount(amountStr)
	if err != nil {
		return models.BetRecord{}, models.AccountBalance{}, err
	}

	p := models.PlaceParams{
		BetID:     models.NewBetID(),
		Wallet:    wallet,
		Game:      game,
		TokenMint: tokenMint,
		Amount:    amount,
		Selection: sel,
		Tax:       amount.Mul(decimal.NewFromFloat(e.registry.Config().HouseEdge)),
	}
	resolve := func(pair models.SeedPair, nonce uint64) (models.Outcome, error) {
		floats := fair.Floats(pair.ServerSeed, pair.ClientSeed, nonce, 0, resolver.FloatsNeeded(sel))
		return resolver.Resolve(floats, sel)
	}

	start := time.Now()
	var (
		bet     models.BetRecord
		balance models.AccountBalance
	)
	for attempt := 1; ; attempt++ {
		bet, balance, err = e.store.PlaceInstantBet(ctx, p, resolve)
		if err == nil || !errs.Is(err, errs.KindStorageConflict) || attempt >= placementAttempts {
			break
		}
		metrics.SettlementRetries.Inc()
		e.log.Debug("placement lost nonce race, retrying",
			zap.String("wallet", wallet), zap.String("game", string(game)), zap.Int("attempt", attempt))
	}
	if err != nil {
		metrics.BetsRejected.WithLabelValues(string(game), string(errs.KindOf(err))).Inc()
		return models.BetRecord{}, models.AccountBalance{}, err
	}

	metrics.SettlementDuration.WithLabelValues(string(game)).Observe(time.Since(start).Seconds())
	metrics.BetsSettled.WithLabelValues(string(game), string(bet.Result)).Inc()
	e.log.Info("bet settled",
		zap.String("bet_id", bet.ID),
		zap.String("wallet", wallet),
		zap.String("game", string(game)),
		zap.String("amount", amount.String()),
		zap.String("result", string(bet.Result)),
		zap.String("multiplier", bet.Multiplier.String()),
		zap.Uint64("nonce", bet.Nonce))
	e.feed.PublishSettled(bet)
	return bet, balance, nil
}

// VerifyResult is the recomputed outcome for a revealed seed pair.
type VerifyResult struct {
	ServerSeedHash string         `json:"server_seed_hash"`
	Outcome        models.Outcome `json:"outcome"`
}

// Verify recomputes a bet outcome from a revealed server seed, so a
// player can check any historical bet offline. Options bets settle
// against the oracle, not the draw chain, and cannot be verified here.
func (e *Engine) Verify(req models.VerifyRequest) (VerifyResult, error) {
	if req.Game == models.GameOptions {
		return VerifyResult{}, errs.New(errs.KindValidationFailed, "options settle against the price feed and have no draw to verify")
	}
	resolver, err := e.registry.Get(req.Game)
	if err != nil {
		return VerifyResult{}, err
	}
	if err := resolver.Validate(req.Selection); err != nil {
		return VerifyResult{}, err
	}
	if req.Game == models.GameMines && len(req.Selection.Picks) == 0 {
		return VerifyResult{}, errs.New(errs.KindValidationFailed, "mines verification requires the pick list")
	}

	floats := fair.Floats(req.ServerSeed, req.ClientSeed, req.Nonce, 0, resolver.FloatsNeeded(req.Selection))
	outcome, err := resolver.Resolve(floats, req.Selection)
	if err != nil {
		return VerifyResult{}, err
	}
	return VerifyResult{
		ServerSeedHash: fair.HashSeed(req.ServerSeed),
		Outcome:        outcome,
	}, nil
}

func (e *Engine) Balance(ctx context.Context, wallet, tokenMint string) (models.AccountBalance, error) {
	return e.store.Balance(ctx, wallet, tokenMint)
}

// Faucet credits play funds, capped per request.
func (e *Engine) Faucet(ctx context.Context, wallet, amountStr, tokenMint string) (models.AccountBalance, error) {
	amount, err := parseAmount(amountStr)
	if err != nil {
		return models.AccountBalance{}, err
	}
	if amount.GreaterThan(e.faucetMax) {
		return models.AccountBalance{}, errs.Newf(errs.KindValidationFailed, "faucet is capped at %s per request", e.faucetMax)
	}
	balance, err := e.store.Credit(ctx, wallet, tokenMint, amount, "faucet")
	if err != nil {
		return models.AccountBalance{}, err
	}
	e.log.Info("faucet credit",
		zap.String("wallet", wallet), zap.String("amount", amount.String()))
	return balance, nil
}

func (e *Engine) History(ctx context.Context, wallet string, limit int) ([]models.BetRecord, error) {
	return e.store.History(ctx, wallet, limit)
}

// ActiveBets lists open rounds with the server-private state stripped.
func (e *Engine) ActiveBets(ctx context.Context, wallet string) ([]models.BetRecord, error) {
	bets, err := e.store.ActiveBets(ctx, wallet)
	if err != nil {
		return nil, err
	}
	for i := range bets {
		bets[i].State = nil
	}
	return bets, nil
}

func (e *Engine) Journal(ctx context.Context, wallet string, limit int) ([]models.JournalEntry, error) {
	return e.store.Journal(ctx, wallet, limit)
}

func (e *Engine) HouseStats(ctx context.Context) ([]models.HouseStats, error) {
	return e.store.HouseStats(ctx)
}

func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errs.Newf(errs.KindValidationFailed, "bad amount %q", s)
	}
	if !amount.IsPositive() {
		return decimal.Zero, errs.New(errs.KindValidationFailed, "amount must be positive")
	}
	if amount.GreaterThan(maxBetAmount) {
		return decimal.Zero, errs.New(errs.KindValidationFailed, "amount exceeds the maximum")
	}
	return amount, nil
}
