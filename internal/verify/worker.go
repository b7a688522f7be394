// Package verify drives persisted claims through the verification state
// machine: PENDING -> VERIFYING -> VERIFIED | FAILED. The worker is the
// only writer of claim status.
package verify

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/claimsift/claimsift/internal/cache"
	"github.com/claimsift/claimsift/internal/model"
	"github.com/claimsift/claimsift/internal/notify"
	"github.com/claimsift/claimsift/internal/oracle"
	"github.com/claimsift/claimsift/internal/queue"
	"github.com/claimsift/claimsift/internal/store"
)

// ErrClaimNotFound marks a job as fatally broken: the referenced claim
// does not exist, so redelivery cannot help.
var ErrClaimNotFound = errors.New("claim not found")

// Processor executes one verification job. A nil oracle client selects
// degraded mode: claims are marked VERIFIED without a verdict. Cache and
// notifier are optional.
type Processor struct {
	store    store.Store
	oracle   oracle.Client
	verdicts *cache.VerdictCache
	notifier notify.Notifier
	log      *zap.SugaredLogger
}

// NewProcessor wires a processor from its collaborators
func NewProcessor(st store.Store, client oracle.Client, verdicts *cache.VerdictCache, notifier notify.Notifier) *Processor {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Processor{
		store:    st,
		oracle:   client,
		verdicts: verdicts,
		notifier: notifier,
		log:      zap.S().Named("verify"),
	}
}

// Process runs the state machine for one job. Returned errors are
// retryable by the queue unless they wrap ErrClaimNotFound. Redelivery of
// an already-VERIFIED claim is a no-op, and an orphaned verdict (insert
// succeeded, VERIFIED write did not) is completed rather than duplicated.
func (p *Processor) Process(ctx context.Context, job *queue.Job) error {
	claim, err := p.store.GetClaim(ctx, job.ClaimID)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("claim %s: %w", job.ClaimID, ErrClaimNotFound)
	}
	if err != nil {
		return fmt.Errorf("load claim %s: %w", job.ClaimID, err)
	}

	if claim.Status == model.StatusVerified {
		p.log.Debugw("claim already verified, skipping", "claim_id", claim.ID)
		return nil
	}

	// At-least-once delivery: an existing verdict means verification
	// already happened, so only the VERIFIED transition may be missing.
	if _, err := p.store.GetVerdictByClaim(ctx, claim.ID); err == nil {
		if err := p.setStatus(ctx, claim, model.StatusVerified); err != nil {
			return fmt.Errorf("complete verified transition for claim %s: %w", claim.ID, err)
		}
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("check verdict for claim %s: %w", claim.ID, err)
	}

	// VERIFYING must be visible before any oracle call. If this write
	// fails the claim stays where it was and the queue retries.
	if err := p.setStatus(ctx, claim, model.StatusVerifying); err != nil {
		return fmt.Errorf("mark claim %s verifying: %w", claim.ID, err)
	}

	if p.oracle == nil {
		// Degraded mode: no oracle credential, skip verification entirely
		p.log.Infow("no oracle configured, marking verified without fact-check", "claim_id", claim.ID)
		if err := p.setStatus(ctx, claim, model.StatusVerified); err != nil {
			return p.fail(ctx, claim, fmt.Errorf("mark claim %s verified: %w", claim.ID, err))
		}
		return nil
	}

	result, err := p.check(ctx, claim.Text)
	if err != nil {
		return p.fail(ctx, claim, fmt.Errorf("fact-check claim %s: %w", claim.ID, err))
	}

	verdict := &model.Verdict{
		ID:         uuid.NewString(),
		ClaimID:    claim.ID,
		Verdict:    result.Verdict,
		Confidence: result.Confidence,
		Evidence:   result.Evidence,
		Reasoning:  result.Reasoning,
		Sources:    result.Sources,
	}
	switch err := p.store.InsertVerdict(ctx, verdict); {
	case err == nil:
		p.publish(ctx, claim, notify.Event{
			Kind:    notify.KindVerdictCreated,
			ClaimID: claim.ID,
			Debate:  claim.DebateID,
			Verdict: &verdict.Verdict,
		})
	case errors.Is(err, store.ErrDuplicateVerdict):
		p.log.Infow("verdict already exists, keeping it", "claim_id", claim.ID)
	default:
		// Leave the claim VERIFYING: a retry re-attempts the whole step,
		// and a stuck claim is detectable by the sweep.
		return fmt.Errorf("persist verdict for claim %s: %w", claim.ID, err)
	}

	if err := p.setStatus(ctx, claim, model.StatusVerified); err != nil {
		// The verdict exists, so redelivery completes the transition
		return fmt.Errorf("mark claim %s verified: %w", claim.ID, err)
	}

	p.log.Infow("claim verified",
		"claim_id", claim.ID, "verdict", verdict.Verdict, "confidence", verdict.Confidence)
	return nil
}

// check consults the verdict cache before paying the oracle
func (p *Processor) check(ctx context.Context, claimText string) (*oracle.Result, error) {
	if p.verdicts != nil {
		if result, hit := p.verdicts.Get(claimText); hit {
			p.log.Debugw("verdict cache hit")
			return result, nil
		}
	}

	result, err := p.oracle.Check(ctx, claimText)
	if err != nil {
		return nil, err
	}

	if p.verdicts != nil {
		if err := p.verdicts.Set(claimText, result); err != nil {
			p.log.Warnw("caching verdict failed", "error", err)
		}
	}
	return result, nil
}

// fail is the compensating action: best-effort FAILED write, then the
// original error propagates so the queue's retry policy governs
// redelivery. Losing the FAILED marker is acceptable degradation;
// swallowing the processing error is not.
func (p *Processor) fail(ctx context.Context, claim *model.Claim, cause error) error {
	if err := p.setStatus(ctx, claim, model.StatusFailed); err != nil {
		p.log.Errorw("compensating FAILED write lost", "claim_id", claim.ID, "error", err)
	}
	return cause
}

// setStatus writes a guarded status transition and publishes it. A
// transition rejected because the claim is already in the target status
// counts as success.
func (p *Processor) setStatus(ctx context.Context, claim *model.Claim, to model.ClaimStatus) error {
	err := p.store.UpdateClaimStatus(ctx, claim.ID, to)
	if errors.Is(err, store.ErrStaleStatus) {
		current, getErr := p.store.GetClaim(ctx, claim.ID)
		if getErr == nil && current.Status == to {
			claim.Status = to
			return nil
		}
		return err
	}
	if err != nil {
		return err
	}

	claim.Status = to
	p.publish(ctx, claim, notify.Event{
		Kind:    notify.KindClaimStatus,
		ClaimID: claim.ID,
		Debate:  claim.DebateID,
		Status:  to,
	})
	return nil
}

// publish is best-effort; fan-out is the collaborator's problem
func (p *Processor) publish(ctx context.Context, claim *model.Claim, event notify.Event) {
	if err := p.notifier.Publish(ctx, event); err != nil {
		p.log.Warnw("event publish failed", "kind", event.Kind, "claim_id", claim.ID, "error", err)
	}
}
