package models

type SeedStatus string

const (
	SeedNext     SeedStatus = "next"
	SeedCurrent  SeedStatus = "current"
	SeedPrevious SeedStatus = "previous"
)

// SeedPair is the provably-fair commitment for a wallet. The server seed
// of a current or next pair never leaves the server; the hash is the
// public commitment players record before betting. Rotation demotes the
// current pair to previous, which reveals its server seed for
// verification.
type SeedPair struct {
	ID             int64      `db:"id" json:"id"`
	Wallet         string     `db:"wallet" json:"wallet"`
	ClientSeed     string     `db:"client_seed" json:"client_seed"`
	ServerSeed     string     `db:"server_seed" json:"-"`
	ServerSeedHash string     `db:"server_seed_hash" json:"server_seed_hash"`
	Nonce          uint64     `db:"nonce" json:"nonce"`
	Status         SeedStatus `db:"status" json:"status"`
	CreatedAt      int64      `db:"created_at" json:"created_at"`
	RotatedAt      int64      `db:"rotated_at" json:"rotated_at,omitempty"`
}

// Public returns a copy safe to hand to clients: the server seed is
// included only for already-rotated (previous) pairs.
func (s SeedPair) Public() map[string]any {
	out := map[string]any{
		"id":               s.ID,
		"client_seed":      s.ClientSeed,
		"server_seed_hash": s.ServerSeedHash,
		"nonce":            s.Nonce,
		"status":           s.Status,
	}
	if s.Status == SeedPrevious {
		out["server_seed"] = s.ServerSeed
	}
	return out
}
