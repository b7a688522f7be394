package detect

import (
	"sort"
	"strings"

	"github.com/claimsift/claimsift/internal/model"
)

// similarityThreshold is the Jaccard similarity above which a later
// candidate is considered a duplicate of an earlier one.
const similarityThreshold = 0.8

// Dedupe removes near-duplicate candidates and ranks the survivors by
// confidence, descending. Each candidate is compared against every
// already-accepted one; ties in the final sort keep first-seen order.
func Dedupe(candidates []model.CandidateClaim) []model.CandidateClaim {
	var unique []model.CandidateClaim
	for _, c := range candidates {
		duplicate := false
		for _, accepted := range unique {
			if jaccard(c.Text, accepted.Text) > similarityThreshold {
				duplicate = true
				break
			}
		}
		if !duplicate {
			unique = append(unique, c)
		}
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].Confidence > unique[j].Confidence
	})
	return unique
}

// jaccard computes word-set Jaccard similarity between two texts:
// |intersection| / |union| of their lower-cased word sets.
func jaccard(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)

	intersection := 0
	for w := range setA {
		if setB[w] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		set[w] = true
	}
	return set
}
