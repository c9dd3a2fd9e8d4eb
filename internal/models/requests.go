package models

// Request bodies for the settlement endpoints. Amounts travel as decimal
// strings; the engine parses and range-checks them before any state is
// touched.

type CoinFlipRequest struct {
	Amount    string   `json:"amount" binding:"required"`
	TokenMint string   `json:"token_mint" binding:"required"`
	Side      CoinSide `json:"side" binding:"required"`
}

type DiceRequest struct {
	Amount    string `json:"amount" binding:"required"`
	TokenMint string `json:"token_mint" binding:"required"`
	Faces     []int  `json:"faces" binding:"required"`
}

type KenoRequest struct {
	Amount    string   `json:"amount" binding:"required"`
	TokenMint string   `json:"token_mint" binding:"required"`
	Numbers   []int    `json:"numbers" binding:"required"`
	Risk      RiskTier `json:"risk" binding:"required"`
}

type WheelRequest struct {
	Amount    string   `json:"amount" binding:"required"`
	TokenMint string   `json:"token_mint" binding:"required"`
	Segments  int      `json:"segments" binding:"required"`
	Risk      RiskTier `json:"risk" binding:"required"`
}

type MinesBetRequest struct {
	Amount     string `json:"amount" binding:"required"`
	TokenMint  string `json:"token_mint" binding:"required"`
	MinesCount int    `json:"mines_count" binding:"required,min=1,max=24"`
	// Picks switches the round to auto mode: the whole list is played
	// server-side in one call and cashed out if it survives.
	Picks []int `json:"picks,omitempty"`
}

type MinesRevealRequest struct {
	Position *int `json:"position" binding:"required,min=0,max=24"`
}

type OptionsBetRequest struct {
	Amount    string          `json:"amount" binding:"required"`
	TokenMint string          `json:"token_mint" binding:"required"`
	Direction OptionDirection `json:"direction" binding:"required"`
	TimeFrame int             `json:"time_frame" binding:"required,min=1,max=60"`
}

type SetClientSeedRequest struct {
	ClientSeed string `json:"client_seed" binding:"required,min=8,max=64"`
}

type VerifyRequest struct {
	Game       GameType  `json:"game" binding:"required"`
	ServerSeed string    `json:"server_seed" binding:"required"`
	ClientSeed string    `json:"client_seed" binding:"required"`
	Nonce      uint64    `json:"nonce"`
	Selection  Selection `json:"selection"`
}

type FaucetRequest struct {
	Amount    string `json:"amount" binding:"required"`
	TokenMint string `json:"token_mint" binding:"required"`
}
