package handlers

import (
	"github.com/gin-gonic/gin"

	"solana-casino-backend/internal/errs"
	"solana-casino-backend/internal/models"
	"solana-casino-backend/internal/services"
)

// SeedHandler exposes the provably-fair surface: the current
// commitment, client seed changes, rotation and revealed history.
type SeedHandler struct {
	engine *services.Engine
}

func NewSeedHandler(engine *services.Engine) *SeedHandler {
	return &SeedHandler{engine: engine}
}

func (h *SeedHandler) GetSeeds(c *gin.Context) {
	wallet := c.GetString("wallet")
	current, next, err := h.engine.Seeds(c.Request.Context(), wallet)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, gin.H{
		"current": current.Public(),
		// Only the commitment of the next pair is public before rotation.
		"next": gin.H{"server_seed_hash": next.ServerSeedHash},
	})
}

func (h *SeedHandler) SetClientSeed(c *gin.Context) {
	wallet := c.GetString("wallet")
	var req models.SetClientSeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, errs.Wrap(errs.KindValidationFailed, "invalid request body", err))
		return
	}
	pair, err := h.engine.SetClientSeed(c.Request.Context(), wallet, req.ClientSeed)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, pair.Public())
}

func (h *SeedHandler) Rotate(c *gin.Context) {
	wallet := c.GetString("wallet")
	revealed, current, err := h.engine.RotateSeeds(c.Request.Context(), wallet)
	if err != nil {
		respondErr(c, err)
		return
	}
	respondOK(c, gin.H{
		"revealed": revealed.Public(),
		"current":  current.Public(),
	})
}

func (h *SeedHandler) Previous(c *gin.Context) {
	wallet := c.GetString("wallet")
	limit := intQuery(c, "limit", 10)
	pairs, err := h.engine.PreviousSeeds(c.Request.Context(), wallet, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	out := make([]map[string]any, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, p.Public())
	}
	respondOK(c, gin.H{"seeds": out})
}
