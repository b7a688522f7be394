package verify

import (
	"context"
	"testing"
	"time"

	"github.com/claimsift/claimsift/internal/model"
	"github.com/claimsift/claimsift/internal/store"
)

func TestSweeper_ReenqueuesStuckClaims(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := context.Background()

	seedClaim(t, st, "stuck", model.StatusVerifying)
	seedClaim(t, st, "failed", model.StatusFailed)
	seedClaim(t, st, "pending", model.StatusPending)

	// Age the VERIFYING claim past the stale window
	time.Sleep(30 * time.Millisecond)
	seedClaim(t, st, "fresh", model.StatusVerifying)

	broker := &fakeBroker{}
	sweeper := NewSweeper(st, broker, 10*time.Millisecond)

	swept, err := sweeper.Sweep(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if swept != 1 {
		t.Fatalf("swept = %d, want 1", swept)
	}
	if len(broker.enqueued) != 1 || broker.enqueued[0] != "stuck" {
		t.Errorf("enqueued = %v, want [stuck]", broker.enqueued)
	}

	// Status is untouched: the claim stays VERIFYING until a worker takes
	// the job again.
	claim, _ := st.GetClaim(ctx, "stuck")
	if claim.Status != model.StatusVerifying {
		t.Errorf("status = %s, want VERIFYING", claim.Status)
	}
}

func TestSweeper_NothingStuckSweepsNothing(t *testing.T) {
	st := store.NewMemoryStore()
	seedClaim(t, st, "fresh", model.StatusVerifying)

	broker := &fakeBroker{}
	sweeper := NewSweeper(st, broker, time.Hour)

	swept, err := sweeper.Sweep(context.Background())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if swept != 0 || len(broker.enqueued) != 0 {
		t.Errorf("swept %d, enqueued %v; want none", swept, broker.enqueued)
	}
}
