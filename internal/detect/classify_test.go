package detect

import (
	"testing"

	"github.com/claimsift/claimsift/internal/model"
)

func TestClassify_RejectsHedgedSentences(t *testing.T) {
	hedged := []string{
		"I think the economy is doing well overall.",
		"Maybe unemployment is lower this year",
		"Perhaps the data shows improvement somewhere",
		"In my opinion the statistics are encouraging",
		"We should increase spending by 40 percent",
	}
	for _, sentence := range hedged {
		if typ, conf, ok := Classify(sentence); ok {
			t.Errorf("Classify(%q) = (%s, %.2f), want rejection", sentence, typ, conf)
		}
	}
}

func TestClassify_RejectsFillerOpeners(t *testing.T) {
	if _, _, ok := Classify("Well the numbers went up by 20 percent again"); ok {
		t.Error("expected filler-opener sentence to be rejected")
	}
}

func TestClassify_StatisticWithPercentAndDirection(t *testing.T) {
	sentence := "According to recent studies, unemployment has decreased by 3.2 percent in the last year"

	typ, conf, ok := Classify(sentence)
	if !ok {
		t.Fatal("expected a candidate")
	}
	if typ != model.ClaimTypeStatistic && typ != model.ClaimTypeFact {
		t.Errorf("expected statistic or fact, got %s", typ)
	}
	if conf <= 0.7 {
		t.Errorf("expected confidence > 0.7, got %.2f", conf)
	}
}

func TestClassify_HighestConfidenceFamilyWins(t *testing.T) {
	// Matches both statistic (percent + directional, 1.0) and fact
	// (authority citation, 0.8); statistic must win.
	sentence := "According to the data, exports rose by 12 percent"

	typ, conf, ok := Classify(sentence)
	if !ok {
		t.Fatal("expected a candidate")
	}
	if typ != model.ClaimTypeStatistic {
		t.Errorf("expected statistic to win, got %s (%.2f)", typ, conf)
	}
	if conf != 1.0 {
		t.Errorf("expected confidence 1.0, got %.2f", conf)
	}
}

func TestClassify_Comparison(t *testing.T) {
	typ, conf, ok := Classify("Our economy is stronger compared to the rest of Europe")
	if !ok {
		t.Fatal("expected a candidate")
	}
	if typ != model.ClaimTypeComparison {
		t.Errorf("expected comparison, got %s", typ)
	}
	if conf != 0.7 {
		t.Errorf("expected confidence 0.7, got %.2f", conf)
	}
}

func TestClassify_Prediction(t *testing.T) {
	typ, _, ok := Classify("Unemployment will fall to record lows by 2030")
	if !ok {
		t.Fatal("expected a candidate")
	}
	if typ != model.ClaimTypePrediction {
		t.Errorf("expected prediction, got %s", typ)
	}
}

func TestClassify_Quote(t *testing.T) {
	typ, _, ok := Classify(`The senator stated that crime statistics were fabricated entirely`)
	if !ok {
		t.Fatal("expected a candidate")
	}
	if typ != model.ClaimTypeQuote {
		t.Errorf("expected quote, got %s", typ)
	}
}

func TestClassify_HedgeQuantifierPenalty(t *testing.T) {
	_, exact, ok := Classify("Crime increased by 20 percent since 2019")
	if !ok {
		t.Fatal("expected a candidate")
	}
	_, hedged, ok := Classify("Crime increased by roughly 20 percent since 2019")
	if !ok {
		t.Fatal("expected a candidate")
	}

	if hedged >= exact {
		t.Errorf("expected hedge penalty: hedged %.2f >= exact %.2f", hedged, exact)
	}
	if diff := exact - hedged; diff < 0.09 || diff > 0.11 {
		t.Errorf("expected a 0.1 penalty, got %.2f", diff)
	}
}

func TestClassify_AttributionHedgePenalty(t *testing.T) {
	_, exact, _ := Classify("The deficit rose by 5 percent this quarter")
	_, hedged, ok := Classify("Reportedly, the deficit rose by 5 percent this quarter")
	if !ok {
		t.Fatal("expected a candidate")
	}

	if diff := exact - hedged; diff < 0.19 || diff > 0.21 {
		t.Errorf("expected a 0.2 penalty, got %.2f", diff)
	}
}

func TestClassify_IndicatorFallback(t *testing.T) {
	// No family pattern matches, but indicator density is high
	typ, conf, ok := Classify("The research data was documented evidence")
	if !ok {
		t.Fatal("expected fallback candidate")
	}
	if typ != model.ClaimTypeFact {
		t.Errorf("fallback must classify as fact, got %s", typ)
	}
	if conf <= 0.4 || conf > 1.0 {
		t.Errorf("confidence out of range: %.2f", conf)
	}
}

func TestClassify_LowIndicatorDensityRejected(t *testing.T) {
	sentence := "The committee reviewed the annual statistics yesterday afternoon during the extended session"
	if typ, conf, ok := Classify(sentence); ok {
		t.Errorf("expected rejection, got (%s, %.2f)", typ, conf)
	}
}

func TestClassify_ConfidenceBounds(t *testing.T) {
	accepted := []string{
		"According to recent studies, unemployment has decreased by 3.2 percent in the last year",
		"Our economy is stronger compared to the rest of Europe",
		"Unemployment will fall to record lows by 2030",
		"The research data was documented evidence",
	}
	for _, sentence := range accepted {
		_, conf, ok := Classify(sentence)
		if !ok {
			t.Errorf("Classify(%q): expected candidate", sentence)
			continue
		}
		if conf <= 0.4 || conf > 1.0 {
			t.Errorf("Classify(%q): confidence %.2f outside (0.4, 1.0]", sentence, conf)
		}
	}
}
