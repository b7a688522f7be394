// Package oracle is the adapter for the external fact-check service. It
// sends one structured prompt per claim and parses a labeled-field verdict
// out of the free-text reply. Transport failures are retryable and
// propagate to the queue; parse failures degrade to safe defaults because
// a malformed but received response is still paid verification work.
package oracle

import (
	"context"
	"errors"
	"fmt"

	"github.com/claimsift/claimsift/internal/model"
)

// Result is the structured outcome of fact-checking one claim
type Result struct {
	Verdict    model.VerdictType `json:"verdict"`
	Confidence float64           `json:"confidence"` // Clamped to [0,1]
	Evidence   string            `json:"evidence"`
	Sources    []string          `json:"sources"` // At most 5
	Reasoning  string            `json:"reasoning"`
}

// Client checks a single claim against the oracle. Implementations make
// exactly one upstream call per invocation; retry is the queue's job.
type Client interface {
	Check(ctx context.Context, claimText string) (*Result, error)
}

// TransportError indicates the oracle call itself could not be completed:
// network failure, auth rejection, non-2xx status, or timeout.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("oracle %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("oracle %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransport reports whether err is (or wraps) a TransportError
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
