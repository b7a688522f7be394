package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/claimsift/claimsift/internal/model"
)

// MemoryStore is an in-memory Store for local runs and tests. Same guards
// as the Postgres store, no durability.
type MemoryStore struct {
	mu       sync.RWMutex
	claims   map[string]model.Claim
	verdicts map[string]model.Verdict // keyed by claim id
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		claims:   make(map[string]model.Claim),
		verdicts: make(map[string]model.Verdict),
	}
}

func (s *MemoryStore) CreateClaim(ctx context.Context, claim *model.Claim) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if claim.CreatedAt.IsZero() {
		claim.CreatedAt = now
	}
	claim.UpdatedAt = now
	s.claims[claim.ID] = *claim
	return nil
}

func (s *MemoryStore) GetClaim(ctx context.Context, id string) (*model.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	claim, ok := s.claims[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &claim, nil
}

func (s *MemoryStore) UpdateClaimStatus(ctx context.Context, id string, to model.ClaimStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	claim, ok := s.claims[id]
	if !ok {
		return ErrNotFound
	}

	allowed := false
	for _, from := range to.AllowedFrom() {
		if claim.Status == from {
			allowed = true
			break
		}
	}
	if !allowed {
		return ErrStaleStatus
	}

	claim.Status = to
	claim.UpdatedAt = time.Now().UTC()
	s.claims[id] = claim
	return nil
}

func (s *MemoryStore) ListClaimsByStatus(ctx context.Context, debateID string, status model.ClaimStatus) ([]model.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Claim
	for _, claim := range s.claims {
		if claim.Status != status {
			continue
		}
		if debateID != "" && claim.DebateID != debateID {
			continue
		}
		out = append(out, claim)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (s *MemoryStore) StaleVerifying(ctx context.Context, cutoff time.Time) ([]model.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Claim
	for _, claim := range s.claims {
		if claim.Status == model.StatusVerifying && claim.UpdatedAt.Before(cutoff) {
			out = append(out, claim)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.Before(out[j].UpdatedAt) })
	return out, nil
}

func (s *MemoryStore) InsertVerdict(ctx context.Context, verdict *model.Verdict) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.verdicts[verdict.ClaimID]; exists {
		return ErrDuplicateVerdict
	}
	if verdict.CreatedAt.IsZero() {
		verdict.CreatedAt = time.Now().UTC()
	}
	s.verdicts[verdict.ClaimID] = *verdict
	return nil
}

func (s *MemoryStore) GetVerdictByClaim(ctx context.Context, claimID string) (*model.Verdict, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	verdict, ok := s.verdicts[claimID]
	if !ok {
		return nil, ErrNotFound
	}
	return &verdict, nil
}

func (s *MemoryStore) Close() error { return nil }
