// Package notify publishes claim/verdict change events. Fan-out past the
// channel is the realtime collaborator's responsibility; the pipeline only
// performs the writes and announces them.
package notify

import (
	"context"
	"time"

	"github.com/claimsift/claimsift/internal/model"
)

// Event kinds
const (
	KindClaimStatus    = "claim.status"
	KindVerdictCreated = "verdict.created"
)

// Event is one claim/verdict change announcement
type Event struct {
	Kind    string             `json:"kind"`
	ClaimID string             `json:"claim_id"`
	Debate  string             `json:"debate_id,omitempty"`
	Status  model.ClaimStatus  `json:"status,omitempty"`
	Verdict *model.VerdictType `json:"verdict,omitempty"`
	At      time.Time          `json:"at"`
}

// Notifier announces events to the realtime collaborator
type Notifier interface {
	Publish(ctx context.Context, event Event) error
}

// Nop is a Notifier that drops everything (detector-only runs, tests)
type Nop struct{}

func (Nop) Publish(ctx context.Context, event Event) error { return nil }
