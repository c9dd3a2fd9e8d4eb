package models

import (
	"github.com/shopspring/decimal"
)

type GameType string

const (
	GameCoinFlip GameType = "coinflip"
	GameDice     GameType = "dice"
	GameKeno     GameType = "keno"
	GameWheel    GameType = "wheel"
	GameMines    GameType = "mines"
	GameOptions  GameType = "options"
)

func (g GameType) Valid() bool {
	switch g {
	case GameCoinFlip, GameDice, GameKeno, GameWheel, GameMines, GameOptions:
		return true
	}
	return false
}

type RiskTier string

const (
	RiskLow    RiskTier = "low"
	RiskMedium RiskTier = "medium"
	RiskHigh   RiskTier = "high"
)

func (r RiskTier) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

type CoinSide string

const (
	SideHeads CoinSide = "heads"
	SideTails CoinSide = "tails"
)

type OptionDirection string

const (
	DirectionUp   OptionDirection = "up"
	DirectionDown OptionDirection = "down"
)

// Selection is the player's choice for a single bet. Only the fields
// relevant to the bet's game are populated; resolvers validate their own
// fields and ignore the rest. The struct is stored as JSON on the bet
// record so settled bets can be re-verified later.
type Selection struct {
	// coinflip
	Side CoinSide `json:"side,omitempty"`
	// dice
	Faces []int `json:"faces,omitempty"`
	// keno
	Numbers []int    `json:"numbers,omitempty"`
	Risk    RiskTier `json:"risk,omitempty"` // keno and wheel
	// wheel
	Segments int `json:"segments,omitempty"`
	// mines
	MinesCount int   `json:"mines_count,omitempty"`
	Picks      []int `json:"picks,omitempty"` // auto mode pick list
	// options
	Direction OptionDirection `json:"direction,omitempty"`
	TimeFrame int             `json:"time_frame,omitempty"` // minutes
}

type BetResult string

const (
	BetPending BetResult = "pending"
	BetWon     BetResult = "won"
	BetLost    BetResult = "lost"
)

// Strike is the resolved random outcome of a bet, shaped per game.
type Strike struct {
	Number  int    `json:"number,omitempty"`  // coinflip 1..100, dice 1..6
	Segment int    `json:"segment,omitempty"` // wheel
	Drawn   []int  `json:"drawn,omitempty"`   // keno drawn numbers
	Hits    int    `json:"hits,omitempty"`    // keno matched count
	Mines   []int  `json:"mines,omitempty"`   // mines bomb positions (revealed at settle)
	Picks   []int  `json:"picks,omitempty"`   // mines picks that were played
	Price   string `json:"price,omitempty"`   // options end price
}

// Outcome is what a resolver produces from draws plus a selection.
type Outcome struct {
	Result     BetResult
	Strike     Strike
	Multiplier decimal.Decimal
}
