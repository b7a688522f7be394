package detect

import (
	"strings"
	"testing"

	"github.com/claimsift/claimsift/internal/model"
)

const sampleTranscript = `
According to recent studies, unemployment has decreased by 3.2 percent in the last year.
I think the economy is doing well, but crime rates have increased by 15% in major cities.
The data shows that renewable energy production rose by 40% compared to last year.
Maybe we should consider other options.
`

func TestDetector_SampleTranscript(t *testing.T) {
	detector := NewDetector()
	candidates := detector.Detect(sampleTranscript)

	if len(candidates) == 0 {
		t.Fatal("expected candidates from sample transcript")
	}

	// The hedged sentences must never surface
	for _, c := range candidates {
		lower := strings.ToLower(c.Text)
		if strings.Contains(lower, "i think") || strings.Contains(lower, "maybe") {
			t.Errorf("hedged sentence surfaced: %q", c.Text)
		}
	}

	// The unemployment sentence must surface with high confidence
	found := false
	for _, c := range candidates {
		if strings.Contains(c.Text, "unemployment has decreased by 3.2 percent") {
			found = true
			if c.Type != model.ClaimTypeStatistic && c.Type != model.ClaimTypeFact {
				t.Errorf("expected statistic or fact, got %s", c.Type)
			}
			if c.Confidence <= 0.7 {
				t.Errorf("expected confidence > 0.7, got %.2f", c.Confidence)
			}
		}
	}
	if !found {
		t.Error("expected the unemployment claim to be detected")
	}
}

func TestDetector_HedgedOnlyTextYieldsNothing(t *testing.T) {
	detector := NewDetector()
	candidates := detector.Detect("I think the economy is doing well overall.")

	if len(candidates) != 0 {
		t.Errorf("expected zero candidates, got %d: %v", len(candidates), candidates)
	}
}

func TestDetector_RankedByConfidence(t *testing.T) {
	detector := NewDetector()
	candidates := detector.Detect(sampleTranscript)

	for i := 1; i < len(candidates); i++ {
		if candidates[i].Confidence > candidates[i-1].Confidence {
			t.Errorf("candidates not ranked: %.2f before %.2f",
				candidates[i-1].Confidence, candidates[i].Confidence)
		}
	}
}

func TestDetector_HTMLInput(t *testing.T) {
	detector := NewDetector()
	page := `<html><body>
		<script>var x = "noise";</script>
		<p>According to recent studies, unemployment has decreased by 3.2 percent in the last year.</p>
	</body></html>`

	candidates := detector.DetectHTML(page)
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate from HTML, got %d: %v", len(candidates), candidates)
	}
	if strings.Contains(candidates[0].Text, "noise") {
		t.Errorf("script content leaked into candidate: %q", candidates[0].Text)
	}
}

func TestVisibleText_SkipsScriptAndStyle(t *testing.T) {
	text, err := VisibleText(`<html><head><style>.a{}</style></head><body><p>Visible words here.</p><script>hidden()</script></body></html>`)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(text, "Visible words here.") {
		t.Errorf("expected visible text, got %q", text)
	}
	if strings.Contains(text, "hidden") || strings.Contains(text, ".a{}") {
		t.Errorf("hidden content leaked: %q", text)
	}
}
