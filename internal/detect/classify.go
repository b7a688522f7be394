package detect

import (
	"regexp"
	"strings"

	"github.com/claimsift/claimsift/internal/model"
)

// minConfidence is the acceptance floor: only candidates scoring strictly
// above it are surfaced for (costly) downstream verification.
const minConfidence = 0.4

// baseConfidence is the starting score for any matched pattern family
const baseConfidence = 0.5

// excludePatterns reject sentences up front: hedging language, modal
// uncertainty, and filler openers are not checkable claims.
var excludePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(i think|i believe|in my opinion|it seems|maybe|perhaps|possibly)\b`),
	regexp.MustCompile(`(?i)\b(should|could|might|may|would)\b`),
	regexp.MustCompile(`(?i)^(and|but|so|well|you know|um|uh)\b`),
}

// Universal penalties applied regardless of family
var (
	hedgeQuantifiers = regexp.MustCompile(`(?i)\b(approximately|about|roughly|around)\b`)
	attributionHedge = regexp.MustCompile(`(?i)\b(alleged|reportedly|supposedly)\b`)
)

// Family-specific bonus matchers
var (
	explicitPercent   = regexp.MustCompile(`(?i)\b\d+(\.\d+)?\s*(percent|%)`)
	directionalVerb   = regexp.MustCompile(`(?i)\b(increased|decreased|rose|fell)\b`)
	authorityCitation = regexp.MustCompile(`(?i)\b(according to|research|study|data)\b`)
	institutionalNoun = regexp.MustCompile(`(?i)\b(university|institute|government|official)\b`)
	comparativeTerm   = regexp.MustCompile(`(?i)\b(more than|less than|compared to)\b`)
)

// family is one row of the classification table: a claim type, the
// matchers that select it, and its confidence scorer. The table is
// evaluated in declaration order and the highest-confidence match wins,
// with earlier rows winning ties. That ordering is load-bearing: it
// decides which claims get sent to the oracle.
type family struct {
	typ      model.ClaimType
	patterns []*regexp.Regexp
	score    func(sentence string) float64
}

var families = []family{
	{
		typ: model.ClaimTypeStatistic,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b\d+(\.\d+)?\s*(percent|%|million|billion|trillion|thousand)`),
			regexp.MustCompile(`(?i)\b(increased|decreased|rose|fell|dropped)\s+by\s+\d+(\.\d+)?\s*(percent|%)`),
			regexp.MustCompile(`(?i)\b\d+(\.\d+)?\s*(times\s+)?(more|less|higher|lower)\b`),
		},
		score: func(s string) float64 {
			c := baseConfidence
			if explicitPercent.MatchString(s) {
				c += 0.3
			}
			if directionalVerb.MatchString(s) {
				c += 0.2
			}
			return c
		},
	},
	{
		typ: model.ClaimTypeFact,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(according to|studies show|research indicates|data shows|reports that)\b`),
			regexp.MustCompile(`(?i)\b(the fact is|it is true that|evidence shows|proven that)\b`),
			regexp.MustCompile(`(?i)\b(in \d{4}|last year|this year|since \d{4})\b`),
		},
		score: func(s string) float64 {
			c := baseConfidence
			if authorityCitation.MatchString(s) {
				c += 0.3
			}
			if institutionalNoun.MatchString(s) {
				c += 0.2
			}
			return c
		},
	},
	{
		typ: model.ClaimTypeComparison,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(compared to|versus|vs\.?|more than|less than|higher than|lower than)\b`),
			regexp.MustCompile(`(?i)\b(best|worst|highest|lowest|first|last)\s+(in|of)\b`),
		},
		score: func(s string) float64 {
			c := baseConfidence
			if comparativeTerm.MatchString(s) {
				c += 0.2
			}
			return c
		},
	},
	{
		typ: model.ClaimTypePrediction,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(will|would|going to|expect to|predict|forecast)\b`),
			regexp.MustCompile(`(?i)\b(by \d{4}|next year|in the future|within \d+\s+years?)\b`),
		},
		score: func(s string) float64 { return baseConfidence },
	},
	{
		typ: model.ClaimTypeQuote,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`"[^"]+"`),
			regexp.MustCompile(`(?i)\b(said|stated|claimed|announced|declared)\s+that\b`),
		},
		score: func(s string) float64 { return baseConfidence },
	},
}

// claimIndicators feed the fallback keyword-density score when no pattern
// family matches.
var claimIndicators = []string{
	"according to", "studies show", "research", "data", "statistics",
	"percent", "million", "billion", "increased", "decreased",
	"fact", "evidence", "proven", "documented", "reported",
	"compared to", "versus", "more than", "less than",
}

// Classify scores a sentence against the family table and returns the
// winning claim type with its confidence, or ok=false when the sentence is
// excluded or nothing clears the acceptance floor.
func Classify(sentence string) (model.ClaimType, float64, bool) {
	for _, p := range excludePatterns {
		if p.MatchString(sentence) {
			return "", 0, false
		}
	}

	var (
		bestType model.ClaimType
		bestConf float64
		matched  bool
	)
	for _, f := range families {
		for _, p := range f.patterns {
			if !p.MatchString(sentence) {
				continue
			}
			conf := clamp01(applyPenalties(sentence, f.score(sentence)))
			if !matched || conf > bestConf {
				bestType, bestConf, matched = f.typ, conf, true
			}
			break
		}
	}

	if !matched {
		if score := indicatorScore(sentence); score > 0.3 {
			bestType, bestConf, matched = model.ClaimTypeFact, score, true
		}
	}

	if !matched || bestConf <= minConfidence {
		return "", 0, false
	}
	return bestType, bestConf, true
}

func applyPenalties(sentence string, confidence float64) float64 {
	if hedgeQuantifiers.MatchString(sentence) {
		confidence -= 0.1
	}
	if attributionHedge.MatchString(sentence) {
		confidence -= 0.2
	}
	return confidence
}

// indicatorScore measures claim-indicator keyword density: matched
// indicators over word count, scaled by 2 and clamped to [0,1].
func indicatorScore(sentence string) float64 {
	lower := strings.ToLower(sentence)
	words := strings.Fields(lower)
	if len(words) == 0 {
		return 0
	}

	matches := 0
	for _, indicator := range claimIndicators {
		if strings.Contains(lower, indicator) {
			matches++
		}
	}

	return clamp01(float64(matches) / float64(len(words)) * 2)
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
