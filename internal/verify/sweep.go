package verify

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/claimsift/claimsift/internal/queue"
	"github.com/claimsift/claimsift/internal/store"
)

// Sweeper re-enqueues claims left in VERIFYING by a crashed worker.
// Status stays VERIFYING until a worker picks the job up again; it never
// reverts to PENDING. FAILED claims are out of scope here: they are only
// revived by an explicit external action.
type Sweeper struct {
	store      store.Store
	broker     queue.Broker
	staleAfter time.Duration
	log        *zap.SugaredLogger
}

// NewSweeper creates a sweeper treating claims VERIFYING for longer than
// staleAfter as stuck.
func NewSweeper(st store.Store, broker queue.Broker, staleAfter time.Duration) *Sweeper {
	if staleAfter <= 0 {
		staleAfter = 10 * time.Minute
	}
	return &Sweeper{
		store:      st,
		broker:     broker,
		staleAfter: staleAfter,
		log:        zap.S().Named("sweep"),
	}
}

// Sweep enqueues one fresh job per stuck claim and returns how many were
// re-enqueued. Individual enqueue failures are logged and skipped; the
// claim stays eligible for the next sweep.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-s.staleAfter)
	claims, err := s.store.StaleVerifying(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("list stale claims: %w", err)
	}

	swept := 0
	for _, claim := range claims {
		if err := s.broker.Enqueue(ctx, claim.ID); err != nil {
			s.log.Errorw("re-enqueue failed", "claim_id", claim.ID, "error", err)
			continue
		}
		s.log.Infow("re-enqueued stuck claim",
			"claim_id", claim.ID, "verifying_since", claim.UpdatedAt)
		swept++
	}
	return swept, nil
}
