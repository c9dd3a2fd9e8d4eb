package fair_test

import (
	"testing"

	"solana-casino-backend/internal/fair"
)

func TestFloatsDeterministic(t *testing.T) {
	server := "f0e1d2c3b4a5968778695a4b3c2d1e0f" + "f0e1d2c3b4a5968778695a4b3c2d1e0f"
	client := "deadbeefcafebabe"

	a := fair.Floats(server, client, 7, 0, 10)
	b := fair.Floats(server, client, 7, 0, 10)

	if len(a) != 10 || len(b) != 10 {
		t.Fatalf("expected 10 floats, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("float %d differs: %v vs %v", i, a[i], b[i])
		}
		if a[i] < 0 || a[i] >= 1 {
			t.Errorf("float %d out of [0,1): %v", i, a[i])
		}
	}
}

func TestFloatsCursorContinuation(t *testing.T) {
	server := fair.NewServerSeed()
	client := fair.NewClientSeed()

	// Drawing 16 at once must equal two cursor-sequenced batches of 8,
	// spanning a block boundary.
	all := fair.Floats(server, client, 3, 0, 16)
	first := fair.Floats(server, client, 3, 0, 8)
	second := fair.Floats(server, client, 3, 8, 8)

	for i := 0; i < 8; i++ {
		if all[i] != first[i] {
			t.Errorf("batch 1 float %d differs", i)
		}
		if all[8+i] != second[i] {
			t.Errorf("batch 2 float %d differs", i)
		}
	}
}

func TestFloatsVaryByInput(t *testing.T) {
	server := fair.NewServerSeed()
	client := fair.NewClientSeed()

	base := fair.Floats(server, client, 0, 0, 1)[0]
	otherNonce := fair.Floats(server, client, 1, 0, 1)[0]
	otherClient := fair.Floats(server, client+"x", 0, 0, 1)[0]

	if base == otherNonce {
		t.Error("nonce change did not change the draw")
	}
	if base == otherClient {
		t.Error("client seed change did not change the draw")
	}
}

func TestHashSeedCommitment(t *testing.T) {
	seed := "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	want := fair.HashSeed(seed)

	// The commitment must be stable so a hash recorded before betting
	// still matches after the seed is revealed.
	if got := fair.HashSeed(seed); got != want {
		t.Errorf("commitment not stable: %s vs %s", got, want)
	}
	if fair.HashSeed(seed+"0") == want {
		t.Error("different seeds must not collide on commitment")
	}
	if len(want) != 64 {
		t.Errorf("expected sha256 hex length 64, got %d", len(want))
	}
}

func TestNewSeedsUnique(t *testing.T) {
	if fair.NewServerSeed() == fair.NewServerSeed() {
		t.Error("server seeds should not repeat")
	}
	if len(fair.NewServerSeed()) != 64 {
		t.Error("server seed should be 32 bytes hex")
	}
	if len(fair.NewClientSeed()) != 32 {
		t.Error("client seed should be 16 bytes hex")
	}
}
