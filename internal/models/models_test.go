package models_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"solana-casino-backend/internal/models"
)

func TestGameTypeValid(t *testing.T) {
	for _, g := range []models.GameType{
		models.GameCoinFlip, models.GameDice, models.GameKeno,
		models.GameWheel, models.GameMines, models.GameOptions,
	} {
		if !g.Valid() {
			t.Errorf("%s should be valid", g)
		}
	}
	if models.GameType("blackjack").Valid() {
		t.Error("unknown game accepted")
	}
}

func TestBetRecordStrikeRoundTrip(t *testing.T) {
	bet := &models.BetRecord{}
	in := models.Strike{Number: 42, Drawn: []int{1, 2, 3}, Hits: 2}
	if err := bet.SetStrike(in); err != nil {
		t.Fatalf("set strike: %v", err)
	}
	out, err := bet.GetStrike()
	if err != nil {
		t.Fatalf("get strike: %v", err)
	}
	if out.Number != 42 || out.Hits != 2 || len(out.Drawn) != 3 {
		t.Errorf("strike mangled: %+v", out)
	}
}

func TestSelectionOmitsEmptyFields(t *testing.T) {
	bet := &models.BetRecord{}
	if err := bet.SetSelection(models.Selection{Side: models.SideHeads}); err != nil {
		t.Fatalf("set selection: %v", err)
	}
	raw := string(bet.Selection)
	if raw != `{"side":"heads"}` {
		t.Errorf("coinflip selection should only carry its own field, got %s", raw)
	}
}

func TestSeedPairPublicHidesServerSeed(t *testing.T) {
	pair := models.SeedPair{
		ID:             1,
		ServerSeed:     "secret",
		ServerSeedHash: "hash",
		Status:         models.SeedCurrent,
	}
	if _, ok := pair.Public()["server_seed"]; ok {
		t.Fatal("current pair leaked its server seed")
	}

	pair.Status = models.SeedPrevious
	pub := pair.Public()
	if pub["server_seed"] != "secret" {
		t.Error("rotated pair must reveal its server seed")
	}
}

func TestJournalRemark(t *testing.T) {
	if got := models.NewJournalRemark(models.GameDice, "payout"); got != "dice payout" {
		t.Errorf("remark %q", got)
	}
}

func TestNewBetIDUnique(t *testing.T) {
	a, b := models.NewBetID(), models.NewBetID()
	if a == b || len(a) != 36 {
		t.Errorf("bad bet ids %q %q", a, b)
	}
}

func TestOutcomeZeroValue(t *testing.T) {
	var out models.Outcome
	if !out.Multiplier.Equal(decimal.Zero) {
		t.Error("zero outcome should carry a zero multiplier")
	}
}
