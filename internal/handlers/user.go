package handlers

import (
	"github.com/gin-gonic/gin"

	"solana-casino-backend/internal/errs"
	"solana-casino-backend/internal/models"
	"solana-casino-backend/internal/services"
)

// UserHandler covers the wallet-facing endpoints outside the games:
// auth, balance, faucet and the journal.
type UserHandler struct {
	engine *services.Engine
	jwt    *services.JWTService
}

func NewUserHandler(engine *services.Engine, jwt *services.JWTService) *UserHandler {
	return &UserHandler{engine: engine, jwt: jwt}
}

type authRequest struct {
	Wallet string `json:"wallet" binding:"required,min=32,max=64"`
}

// Authenticate issues a bearer token for a wallet address. Signature
// verification against the wallet's keypair happens upstream; this
// service only needs a stable identity to settle against.
func (h *UserHandler) Authenticate(c *gin.Context) {
	var req authRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, errs.Wrap(errs.KindValidationFailed, "invalid request body", err))
		return
	}
	token, err := h.jwt.GenerateToken(req.Wallet)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, gin.H{"token": token, "wallet": req.Wallet})
}

func (h *UserHandler) GetBalance(c *gin.Context) {
	wallet := c.GetString("wallet")
	tokenMint := c.Query("token_mint")
	if tokenMint == "" {
		respondErr(c, errs.New(errs.KindValidationFailed, "token_mint is required"))
		return
	}
	balance, err := h.engine.Balance(c.Request.Context(), wallet, tokenMint)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, balance)
}

func (h *UserHandler) Faucet(c *gin.Context) {
	wallet := c.GetString("wallet")
	var req models.FaucetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, errs.Wrap(errs.KindValidationFailed, "invalid request body", err))
		return
	}
	balance, err := h.engine.Faucet(c.Request.Context(), wallet, req.Amount, req.TokenMint)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, balance)
}

func (h *UserHandler) Journal(c *gin.Context) {
	wallet := c.GetString("wallet")
	limit := intQuery(c, "limit", 50)
	entries, err := h.engine.Journal(c.Request.Context(), wallet, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, gin.H{"entries": entries})
}
