package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"solana-casino-backend/internal/errs"
	"solana-casino-backend/internal/models"
	"solana-casino-backend/internal/services"
)

type GameHandler struct {
	engine *services.Engine
	cache  *services.Cache
}

func NewGameHandler(engine *services.Engine, cache *services.Cache) *GameHandler {
	return &GameHandler{engine: engine, cache: cache}
}

// betResponse is the settled-bet payload shared by the instant games.
type betResponse struct {
	Bet     models.BetRecord      `json:"bet"`
	Strike  models.Strike         `json:"strike"`
	Balance models.AccountBalance `json:"balance"`
}

func newBetResponse(bet models.BetRecord, balance models.AccountBalance) (betResponse, error) {
	strike, err := bet.GetStrike()
	if err != nil {
		return betResponse{}, errs.Wrap(errs.KindInternal, "decode strike", err)
	}
	return betResponse{Bet: bet, Strike: strike, Balance: balance}, nil
}

func (h *GameHandler) PlayCoinFlip(c *gin.Context) {
	wallet := c.GetString("wallet")
	var req models.CoinFlipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, errs.Wrap(errs.KindValidationFailed, "invalid request body", err))
		return
	}
	h.placeInstant(c, wallet, models.GameCoinFlip, req.Amount, req.TokenMint,
		models.Selection{Side: req.Side})
}

func (h *GameHandler) PlayDice(c *gin.Context) {
	wallet := c.GetString("wallet")
	var req models.DiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, errs.Wrap(errs.KindValidationFailed, "invalid request body", err))
		return
	}
	h.placeInstant(c, wallet, models.GameDice, req.Amount, req.TokenMint,
		models.Selection{Faces: req.Faces})
}

func (h *GameHandler) PlayKeno(c *gin.Context) {
	wallet := c.GetString("wallet")
	var req models.KenoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, errs.Wrap(errs.KindValidationFailed, "invalid request body", err))
		return
	}
	h.placeInstant(c, wallet, models.GameKeno, req.Amount, req.TokenMint,
		models.Selection{Numbers: req.Numbers, Risk: req.Risk})
}

func (h *GameHandler) PlayWheel(c *gin.Context) {
	wallet := c.GetString("wallet")
	var req models.WheelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, errs.Wrap(errs.KindValidationFailed, "invalid request body", err))
		return
	}
	h.placeInstant(c, wallet, models.GameWheel, req.Amount, req.TokenMint,
		models.Selection{Segments: req.Segments, Risk: req.Risk})
}

func (h *GameHandler) placeInstant(c *gin.Context, wallet string, game models.GameType, amount, tokenMint string, sel models.Selection) {
	h.withIdempotency(c, wallet, func() (any, error) {
		bet, balance, err := h.engine.PlaceInstant(c.Request.Context(), wallet, game, amount, tokenMint, sel)
		if err != nil {
			return nil, err
		}
		return newBetResponse(bet, balance)
	})
}

func (h *GameHandler) OpenMines(c *gin.Context) {
	wallet := c.GetString("wallet")
	var req models.MinesBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, errs.Wrap(errs.KindValidationFailed, "invalid request body", err))
		return
	}
	h.withIdempotency(c, wallet, func() (any, error) {
		return h.engine.OpenMines(c.Request.Context(), wallet, req.Amount, req.TokenMint, req.MinesCount, req.Picks)
	})
}

func (h *GameHandler) RevealMines(c *gin.Context) {
	wallet := c.GetString("wallet")
	var req models.MinesRevealRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Position == nil {
		respondErr(c, errs.New(errs.KindValidationFailed, "position is required"))
		return
	}
	round, err := h.engine.RevealMines(c.Request.Context(), wallet, *req.Position)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, round)
}

func (h *GameHandler) CashoutMines(c *gin.Context) {
	wallet := c.GetString("wallet")
	round, err := h.engine.CashoutMines(c.Request.Context(), wallet)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, round)
}

func (h *GameHandler) OpenOptions(c *gin.Context) {
	wallet := c.GetString("wallet")
	var req models.OptionsBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, errs.Wrap(errs.KindValidationFailed, "invalid request body", err))
		return
	}
	h.withIdempotency(c, wallet, func() (any, error) {
		return h.engine.OpenOptions(c.Request.Context(), wallet, req.Amount, req.TokenMint, req.Direction, req.TimeFrame)
	})
}

func (h *GameHandler) ResolveOptions(c *gin.Context) {
	wallet := c.GetString("wallet")
	pos, err := h.engine.ResolveOptions(c.Request.Context(), wallet)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, pos)
}

func (h *GameHandler) Verify(c *gin.Context) {
	var req models.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, errs.Wrap(errs.KindValidationFailed, "invalid request body", err))
		return
	}
	res, err := h.engine.Verify(req)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, res)
}

func (h *GameHandler) ActiveBets(c *gin.Context) {
	wallet := c.GetString("wallet")
	bets, err := h.engine.ActiveBets(c.Request.Context(), wallet)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, gin.H{"bets": bets})
}

func (h *GameHandler) History(c *gin.Context) {
	wallet := c.GetString("wallet")
	limit := intQuery(c, "limit", 50)
	bets, err := h.engine.History(c.Request.Context(), wallet, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, gin.H{"bets": bets})
}

func (h *GameHandler) HouseStats(c *gin.Context) {
	stats, err := h.engine.HouseStats(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, gin.H{"stats": stats})
}

// withIdempotency replays the cached answer when the client retries
// with the same Idempotency-Key, and refuses concurrent duplicates.
// Requests without the header run unprotected.
func (h *GameHandler) withIdempotency(c *gin.Context, wallet string, fn func() (any, error)) {
	key := c.GetHeader("Idempotency-Key")
	if key == "" || h.cache == nil {
		data, err := fn()
		if err != nil {
			respondErr(c, err)
			return
		}
		respondOK(c, data)
		return
	}

	ctx := c.Request.Context()
	if cached, ok, err := h.cache.IdempotentResult(ctx, wallet, key); err == nil && ok {
		c.Data(http.StatusOK, "application/json", cached)
		return
	}

	token := uuid.New().String()
	acquired, err := h.cache.AcquireIdempotency(ctx, wallet, key, token, services.TTLIdempotencyLock)
	if err != nil {
		respondErr(c, err)
		return
	}
	if !acquired {
		respondErr(c, errs.New(errs.KindStorageConflict, "a request with this idempotency key is in flight"))
		return
	}
	defer h.cache.ReleaseIdempotency(ctx, wallet, key, token)

	data, err := fn()
	if err != nil {
		respondErr(c, err)
		return
	}
	payload, err := json.Marshal(response{Success: true, Data: data})
	if err == nil {
		_ = h.cache.StoreIdempotentResult(ctx, wallet, key, payload, services.TTLIdempotencyResult)
	}
	respondOK(c, data)
}

func intQuery(c *gin.Context, name string, fallback int) int {
	v := c.Query(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
