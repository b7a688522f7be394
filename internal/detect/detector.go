package detect

import (
	"github.com/claimsift/claimsift/internal/model"
)

// Detector runs the full detection pipeline: segment, classify, dedupe.
// It is stateless and safe for concurrent use across transcript segments.
type Detector struct{}

// NewDetector creates a new detector
func NewDetector() *Detector {
	return &Detector{}
}

// Detect extracts confidence-ranked candidate claims from plain transcript
// text. Span offsets are advisory estimates, not exact positions.
func (d *Detector) Detect(text string) []model.CandidateClaim {
	sentences := Segment(text)

	var candidates []model.CandidateClaim
	for i, sentence := range sentences {
		typ, confidence, ok := Classify(sentence)
		if !ok {
			continue
		}
		candidates = append(candidates, model.CandidateClaim{
			Text:       sentence,
			Type:       typ,
			Confidence: confidence,
			Start:      i * 100,
			End:        (i + 1) * 100,
		})
	}

	return Dedupe(candidates)
}

// DetectHTML strips markup before running detection. Falls back to
// treating the input as plain text if it does not parse as HTML.
func (d *Detector) DetectHTML(htmlContent string) []model.CandidateClaim {
	text, err := VisibleText(htmlContent)
	if err != nil {
		text = htmlContent
	}
	return d.Detect(text)
}
