package worker

import (
	"context"
	"os"

	"github.com/claimsift/claimsift/internal/detect"
	"github.com/claimsift/claimsift/internal/model"
)

// TranscriptJob runs claim detection over one transcript file
type TranscriptJob struct {
	Path     string
	HTML     bool
	Detector *detect.Detector
}

// TranscriptResult is the detection outcome for one file
type TranscriptResult struct {
	Path       string
	Candidates []model.CandidateClaim
	Error      error
}

func (r *TranscriptResult) Err() error { return r.Error }

// Execute reads the file and detects candidate claims. The detector
// itself never errors; only the file read can.
func (j *TranscriptJob) Execute(ctx context.Context) Result {
	data, err := os.ReadFile(j.Path)
	if err != nil {
		return &TranscriptResult{Path: j.Path, Error: err}
	}

	text := string(data)
	var candidates []model.CandidateClaim
	if j.HTML {
		candidates = j.Detector.DetectHTML(text)
	} else {
		candidates = j.Detector.Detect(text)
	}
	return &TranscriptResult{Path: j.Path, Candidates: candidates}
}
