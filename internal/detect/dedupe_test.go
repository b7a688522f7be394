package detect

import (
	"reflect"
	"testing"

	"github.com/claimsift/claimsift/internal/model"
)

func candidate(text string, conf float64) model.CandidateClaim {
	return model.CandidateClaim{Text: text, Type: model.ClaimTypeFact, Confidence: conf}
}

func TestDedupe_DropsNearDuplicates(t *testing.T) {
	got := Dedupe([]model.CandidateClaim{
		candidate("Unemployment decreased by 3.2 percent last year", 0.9),
		candidate("unemployment decreased by 3.2 percent last year", 0.8),
		candidate("Renewable energy production rose by 40 percent", 0.7),
	})

	if len(got) != 2 {
		t.Fatalf("expected 2 unique candidates, got %d", len(got))
	}
	if got[0].Confidence != 0.9 {
		t.Errorf("expected first-seen duplicate to survive, got %.2f", got[0].Confidence)
	}
}

func TestDedupe_KeepsDistinctClaims(t *testing.T) {
	got := Dedupe([]model.CandidateClaim{
		candidate("Crime rates have increased by 15 percent in major cities", 0.8),
		candidate("The data shows renewable energy production rose by 40 percent", 0.9),
	})

	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
}

func TestDedupe_SortsByConfidenceDescending(t *testing.T) {
	got := Dedupe([]model.CandidateClaim{
		candidate("First claim about taxes going up significantly", 0.5),
		candidate("Second claim about exports falling to record lows", 0.9),
		candidate("Third claim about inflation reaching double digits", 0.7),
	})

	for i := 1; i < len(got); i++ {
		if got[i].Confidence > got[i-1].Confidence {
			t.Errorf("not sorted at %d: %.2f > %.2f", i, got[i].Confidence, got[i-1].Confidence)
		}
	}
}

func TestDedupe_StableOnTies(t *testing.T) {
	first := candidate("Crime rates doubled in the northern districts", 0.6)
	second := candidate("Exports to Asia tripled over the past decade", 0.6)

	got := Dedupe([]model.CandidateClaim{first, second})
	if len(got) != 2 || got[0].Text != first.Text {
		t.Errorf("tie broke first-seen order: %v", got)
	}
}

func TestDedupe_Idempotent(t *testing.T) {
	input := []model.CandidateClaim{
		candidate("Unemployment decreased by 3.2 percent last year", 0.9),
		candidate("Crime rates have increased by 15 percent in cities", 0.7),
		candidate("The budget deficit reached 2 trillion dollars", 0.8),
	}

	once := Dedupe(input)
	twice := Dedupe(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Dedupe not idempotent:\nonce:  %v\ntwice: %v", once, twice)
	}
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"the quick brown fox", "the quick brown fox", 1.0},
		{"the quick brown fox", "THE QUICK BROWN FOX", 1.0},
		{"a b c d", "e f g h", 0.0},
		{"a b c d", "a b c e", 0.6}, // 3 shared / 5 total
	}
	for _, tt := range tests {
		if got := jaccard(tt.a, tt.b); got != tt.want {
			t.Errorf("jaccard(%q, %q) = %.2f, want %.2f", tt.a, tt.b, got, tt.want)
		}
	}
}
