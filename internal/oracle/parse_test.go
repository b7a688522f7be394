package oracle

import (
	"strings"
	"testing"

	"github.com/claimsift/claimsift/internal/model"
)

func TestParseResult_FullResponse(t *testing.T) {
	content := `VERDICT: FALSE
CONFIDENCE: 0.92
EVIDENCE: Official statistics show unemployment rose, not fell, over the period.
SOURCES: https://bls.gov/report; https://example.org/analysis
REASONING: The claim contradicts the published federal data for that year.`

	result := ParseResult(content)

	if result.Verdict != model.VerdictFalse {
		t.Errorf("verdict = %s, want FALSE", result.Verdict)
	}
	if result.Confidence != 0.92 {
		t.Errorf("confidence = %v, want 0.92", result.Confidence)
	}
	if !strings.Contains(result.Evidence, "unemployment rose") {
		t.Errorf("unexpected evidence: %q", result.Evidence)
	}
	if len(result.Sources) != 2 {
		t.Fatalf("expected 2 sources, got %d: %v", len(result.Sources), result.Sources)
	}
	if result.Sources[0] != "https://bls.gov/report" {
		t.Errorf("source order not preserved: %v", result.Sources)
	}
	if !strings.Contains(result.Reasoning, "contradicts") {
		t.Errorf("unexpected reasoning: %q", result.Reasoning)
	}
}

func TestParseResult_MissingSourcesYieldsEmptySlice(t *testing.T) {
	content := `VERDICT: TRUE
CONFIDENCE: 0.8
EVIDENCE: Multiple datasets agree.
REASONING: Consistent across sources.`

	result := ParseResult(content)

	if result.Sources == nil || len(result.Sources) != 0 {
		t.Errorf("expected empty sources slice, got %v", result.Sources)
	}
	if result.Verdict != model.VerdictTrue {
		t.Errorf("verdict = %s, want TRUE", result.Verdict)
	}
}

func TestParseResult_ClampsConfidence(t *testing.T) {
	high := ParseResult("VERDICT: TRUE\nCONFIDENCE: 1.5\nEVIDENCE: x\nREASONING: y")
	if high.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", high.Confidence)
	}

	low := ParseResult("VERDICT: FALSE\nCONFIDENCE: -0.2\nEVIDENCE: x\nREASONING: y")
	if low.Confidence != 0.0 {
		t.Errorf("confidence = %v, want 0.0", low.Confidence)
	}
}

func TestParseResult_GarbageDegradesToDefaults(t *testing.T) {
	result := ParseResult("I'm sorry, I cannot help with that request.")

	if result.Verdict != model.VerdictUnverifiable {
		t.Errorf("verdict = %s, want UNVERIFIABLE", result.Verdict)
	}
	if result.Confidence != 0.5 {
		t.Errorf("confidence = %v, want 0.5", result.Confidence)
	}
	if result.Evidence != "No evidence provided" {
		t.Errorf("evidence = %q", result.Evidence)
	}
	if result.Reasoning != "No reasoning provided" {
		t.Errorf("reasoning = %q", result.Reasoning)
	}
	if len(result.Sources) != 0 {
		t.Errorf("sources = %v, want empty", result.Sources)
	}
}

func TestParseResult_PartialVerdictAlias(t *testing.T) {
	result := ParseResult("VERDICT: PARTIAL\nCONFIDENCE: 0.6")
	if result.Verdict != model.VerdictPartiallyTrue {
		t.Errorf("verdict = %s, want PARTIALLY_TRUE", result.Verdict)
	}
}

func TestParseResult_UnknownVerdictDefaultsToUnverifiable(t *testing.T) {
	result := ParseResult("VERDICT: BOGUS\nCONFIDENCE: 0.6")
	if result.Verdict != model.VerdictUnverifiable {
		t.Errorf("verdict = %s, want UNVERIFIABLE", result.Verdict)
	}
}

func TestParseResult_SourcesSplitAndCapped(t *testing.T) {
	content := `VERDICT: TRUE
CONFIDENCE: 0.7
SOURCES: a.gov; b.edu
c.org;  ; d.com; e.net; f.io; g.dev
REASONING: many sources`

	result := ParseResult(content)

	if len(result.Sources) != 5 {
		t.Fatalf("expected sources capped at 5, got %d: %v", len(result.Sources), result.Sources)
	}
	want := []string{"a.gov", "b.edu", "c.org", "d.com", "e.net"}
	for i, w := range want {
		if result.Sources[i] != w {
			t.Errorf("sources[%d] = %q, want %q", i, result.Sources[i], w)
		}
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt("Unemployment fell by 3.2 percent last year")

	if !strings.Contains(prompt, "Unemployment fell by 3.2 percent last year") {
		t.Error("prompt missing claim text")
	}
	for _, label := range []string{"VERDICT:", "CONFIDENCE:", "EVIDENCE:", "SOURCES:", "REASONING:"} {
		if !strings.Contains(prompt, label) {
			t.Errorf("prompt missing %s label", label)
		}
	}
	for _, verdict := range []string{"TRUE", "FALSE", "PARTIALLY_TRUE", "MISLEADING", "UNVERIFIABLE"} {
		if !strings.Contains(prompt, verdict) {
			t.Errorf("prompt missing %s definition", verdict)
		}
	}
}
