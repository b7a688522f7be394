package model

import (
	"fmt"
	"strings"
	"time"
)

// VerdictType is the outcome of fact-checking a claim
type VerdictType string

const (
	VerdictTrue          VerdictType = "TRUE"
	VerdictFalse         VerdictType = "FALSE"
	VerdictPartiallyTrue VerdictType = "PARTIALLY_TRUE"
	VerdictMisleading    VerdictType = "MISLEADING"
	VerdictUnverifiable  VerdictType = "UNVERIFIABLE"
)

// ParseVerdictType maps a storage string to a VerdictType, rejecting
// anything outside the closed set.
func ParseVerdictType(s string) (VerdictType, error) {
	switch VerdictType(s) {
	case VerdictTrue, VerdictFalse, VerdictPartiallyTrue, VerdictMisleading, VerdictUnverifiable:
		return VerdictType(s), nil
	}
	return "", fmt.Errorf("unknown verdict %q", s)
}

// ParseVerdictLenient maps a raw oracle label to a VerdictType. Unknown
// labels default to UNVERIFIABLE: the oracle paid for the answer, we keep
// it rather than discard it.
func ParseVerdictLenient(s string) VerdictType {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRUE":
		return VerdictTrue
	case "FALSE":
		return VerdictFalse
	case "PARTIALLY_TRUE", "PARTIAL":
		return VerdictPartiallyTrue
	case "MISLEADING":
		return VerdictMisleading
	default:
		return VerdictUnverifiable
	}
}

// Verdict is the persisted outcome of fact-checking one claim. At most one
// verdict exists per claim, created while the claim is VERIFYING.
type Verdict struct {
	ID         string      `json:"id"`
	ClaimID    string      `json:"claim_id"`
	Verdict    VerdictType `json:"verdict"`
	Confidence float64     `json:"confidence"` // Clamped to [0,1]
	Evidence   string      `json:"evidence"`
	Reasoning  string      `json:"reasoning"`
	Sources    []string    `json:"sources"` // At most 5, oracle response order
	CreatedAt  time.Time   `json:"created_at"`
}
