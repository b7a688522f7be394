package oracle

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/claimsift/claimsift/internal/model"
)

// Safe defaults substituted for any field that cannot be located in the
// oracle's reply.
const (
	defaultConfidence = 0.5
	defaultEvidence   = "No evidence provided"
	defaultReasoning  = "No reasoning provided"
	maxSources        = 5
)

var (
	verdictRe    = regexp.MustCompile(`(?i)VERDICT:\s*([A-Z_]+)`)
	confidenceRe = regexp.MustCompile(`(?i)CONFIDENCE:\s*(-?[\d.]+)`)
	evidenceRe   = regexp.MustCompile(`(?is)EVIDENCE:\s*(.*?)(?:\nSOURCES:|\nREASONING:|$)`)
	sourcesRe    = regexp.MustCompile(`(?is)SOURCES:\s*(.*?)(?:\nREASONING:|$)`)
	reasoningRe  = regexp.MustCompile(`(?is)REASONING:\s*(.*)$`)
)

// ParseResult extracts the labeled fields from a free-text oracle reply.
// It never fails: missing or malformed fields fall back to safe defaults
// (UNVERIFIABLE, confidence 0.5, placeholder text, no sources) and the
// confidence is clamped to [0,1] regardless of what the oracle returned.
func ParseResult(content string) *Result {
	result := &Result{
		Verdict:    model.VerdictUnverifiable,
		Confidence: defaultConfidence,
		Evidence:   defaultEvidence,
		Reasoning:  defaultReasoning,
		Sources:    []string{},
	}

	if m := verdictRe.FindStringSubmatch(content); m != nil {
		result.Verdict = model.ParseVerdictLenient(m[1])
	}
	if m := confidenceRe.FindStringSubmatch(content); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			result.Confidence = clamp01(v)
		}
	}
	if m := evidenceRe.FindStringSubmatch(content); m != nil {
		if text := strings.TrimSpace(m[1]); text != "" {
			result.Evidence = text
		}
	}
	if m := sourcesRe.FindStringSubmatch(content); m != nil {
		result.Sources = splitSources(m[1])
	}
	if m := reasoningRe.FindStringSubmatch(content); m != nil {
		if text := strings.TrimSpace(m[1]); text != "" {
			result.Reasoning = text
		}
	}

	return result
}

// splitSources splits on ';' or newline, trims, drops empties, and keeps
// at most maxSources entries in order of appearance.
func splitSources(raw string) []string {
	sources := []string{}
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool {
		return r == ';' || r == '\n'
	}) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sources = append(sources, part)
		if len(sources) == maxSources {
			break
		}
	}
	return sources
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
