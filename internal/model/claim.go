package model

import (
	"fmt"
	"time"
)

// ClaimType categorizes the nature of a detected claim
type ClaimType string

const (
	ClaimTypeStatistic  ClaimType = "statistic"  // Numeric/statistical assertions
	ClaimTypeFact       ClaimType = "fact"       // Factual statements with strong indicators
	ClaimTypeComparison ClaimType = "comparison" // Comparative assertions
	ClaimTypePrediction ClaimType = "prediction" // Future-oriented assertions
	ClaimTypeQuote      ClaimType = "quote"      // Quoted or attributed statements
)

// CandidateClaim is a sentence flagged by the detector as potentially
// fact-checkable. Candidates are ephemeral: the ingestion path decides
// whether they become persisted Claims.
type CandidateClaim struct {
	Text       string    `json:"text"`
	Type       ClaimType `json:"type"`
	Confidence float64   `json:"confidence"` // Always in (0.4, 1.0]
	Start      int       `json:"start"`      // Approximate offset in source text
	End        int       `json:"end"`        // Approximate, not guaranteed exact
}

// ClaimStatus is the persisted verification state of a claim
type ClaimStatus string

const (
	StatusPending   ClaimStatus = "PENDING"
	StatusVerifying ClaimStatus = "VERIFYING"
	StatusVerified  ClaimStatus = "VERIFIED"
	StatusFailed    ClaimStatus = "FAILED"
)

// ParseClaimStatus maps a storage string to a ClaimStatus, rejecting
// anything outside the closed set.
func ParseClaimStatus(s string) (ClaimStatus, error) {
	switch ClaimStatus(s) {
	case StatusPending, StatusVerifying, StatusVerified, StatusFailed:
		return ClaimStatus(s), nil
	}
	return "", fmt.Errorf("unknown claim status %q", s)
}

// Terminal reports whether no further verification work is expected for a
// claim in this status. FAILED is terminal for a job attempt but a
// redelivered job may still retry it; VERIFIED never moves again.
func (s ClaimStatus) Terminal() bool {
	return s == StatusVerified || s == StatusFailed
}

// AllowedFrom returns the set of statuses a claim may be in when
// transitioning to s. A claim never reverts to PENDING and never leaves
// VERIFIED. VERIFYING->VERIFYING is permitted so duplicate delivery is a
// no-op, and FAILED->VERIFYING so the queue's retry policy can re-attempt
// a failed job.
func (s ClaimStatus) AllowedFrom() []ClaimStatus {
	switch s {
	case StatusVerifying:
		return []ClaimStatus{StatusPending, StatusVerifying, StatusFailed}
	case StatusVerified:
		return []ClaimStatus{StatusVerifying}
	case StatusFailed:
		return []ClaimStatus{StatusVerifying}
	}
	return nil
}

// Claim is the persisted entity whose lifecycle the verification pipeline
// drives. Storage owns the row; only the worker mutates Status.
type Claim struct {
	ID        string      `json:"id"`
	DebateID  string      `json:"debate_id"`
	SpeakerID string      `json:"speaker_id,omitempty"`
	Text      string      `json:"text"`
	Timestamp time.Time   `json:"timestamp"`
	Status    ClaimStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
