package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

func NewBetID() string {
	return uuid.New().String()
}

func NewJournalRemark(game GameType, phase string) string {
	return fmt.Sprintf("%s %s", game, phase)
}

func NowMillis() int64 {
	return time.Now().UnixMilli()
}
