package services

import "time"

const (
	// idempotency:<wallet>:<client key> -> lock token, then the cached
	// settlement response once the bet lands.
	KeyIdempotencyLock   = "idempotency:%s:%s:lock"
	KeyIdempotencyResult = "idempotency:%s:%s:result"

	KeyRateLimit = "ratelimit:%s:%s"

	// price:<symbol> -> last oracle quote.
	KeyPrice = "price:%s"

	TTLIdempotencyLock   = 30 * time.Second
	TTLIdempotencyResult = 24 * time.Hour
	TTLPrice             = 2 * time.Second

	DefaultRateLimitBets    = 30  // bets per minute
	DefaultRateLimitCashout = 60  // cashouts per minute
	DefaultRateLimitReveals = 120 // mine reveals per minute
)
