// Package store is the claim/verdict persistence boundary. The pipeline
// requires read-your-own-writes ordering from implementations: a read
// issued after a write from the same worker observes that write, because
// the worker's step sequencing depends on it.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/claimsift/claimsift/internal/model"
)

var (
	// ErrNotFound indicates the claim or verdict does not exist
	ErrNotFound = errors.New("not found")

	// ErrStaleStatus indicates a status transition was rejected by the
	// monotonicity guard (e.g. VERIFIED -> anything).
	ErrStaleStatus = errors.New("stale status transition")

	// ErrDuplicateVerdict indicates a verdict already exists for the claim
	ErrDuplicateVerdict = errors.New("verdict already exists")
)

// Store is the storage collaborator contract
type Store interface {
	CreateClaim(ctx context.Context, claim *model.Claim) error
	GetClaim(ctx context.Context, id string) (*model.Claim, error)

	// UpdateClaimStatus transitions a claim to the given status, enforcing
	// the allowed-from guard from model.ClaimStatus.AllowedFrom. Returns
	// ErrNotFound if the claim does not exist and ErrStaleStatus if its
	// current status does not permit the transition.
	UpdateClaimStatus(ctx context.Context, id string, to model.ClaimStatus) error

	// ListClaimsByStatus returns claims for a debate in the given status,
	// oldest first. An empty debateID matches all debates.
	ListClaimsByStatus(ctx context.Context, debateID string, status model.ClaimStatus) ([]model.Claim, error)

	// StaleVerifying returns claims stuck in VERIFYING since before the
	// cutoff, candidates for the reconciliation sweep.
	StaleVerifying(ctx context.Context, cutoff time.Time) ([]model.Claim, error)

	// InsertVerdict persists the verdict for a claim. Returns
	// ErrDuplicateVerdict if one already exists; at most one verdict per
	// claim ever exists.
	InsertVerdict(ctx context.Context, verdict *model.Verdict) error
	GetVerdictByClaim(ctx context.Context, claimID string) (*model.Verdict, error)

	Close() error
}
