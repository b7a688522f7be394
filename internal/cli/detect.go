package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/claimsift/claimsift/internal/detect"
	"github.com/claimsift/claimsift/internal/model"
	"github.com/claimsift/claimsift/internal/worker"
)

var (
	detectJSON        bool
	detectHTML        bool
	detectConcurrency int
)

// detectCmd represents the detect command
var detectCmd = &cobra.Command{
	Use:   "detect [file...]",
	Short: "Detect candidate claims in transcript text",
	Long: `Run the claim detector over transcript text without persisting anything:
segment into sentences, classify against the pattern families, drop
near-duplicates, and print the surviving candidates ranked by confidence.

Reads stdin when no files are given. Multiple files are processed in
parallel.

Example:
  claimsift detect transcript.txt
  cat transcript.txt | claimsift detect
  claimsift detect --html --json exports/*.html`,
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)

	detectCmd.Flags().BoolVar(&detectJSON, "json", false, "print candidates as JSON")
	detectCmd.Flags().BoolVar(&detectHTML, "html", false, "strip HTML markup before detection")
	detectCmd.Flags().IntVar(&detectConcurrency, "concurrency", runtime.NumCPU(), "parallel workers for multiple files")
}

func runDetect(cmd *cobra.Command, args []string) error {
	detector := detect.NewDetector()

	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		return printCandidates("", detectText(detector, string(data)))
	}

	jobs := make([]worker.Job, 0, len(args))
	for _, path := range args {
		jobs = append(jobs, &worker.TranscriptJob{Path: path, HTML: detectHTML, Detector: detector})
	}

	pool := worker.NewPool(detectConcurrency)
	results := pool.Run(context.Background(), jobs)

	var firstErr error
	for _, res := range results {
		tr := res.(*worker.TranscriptResult)
		if tr.Error != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", tr.Path, tr.Error)
			if firstErr == nil {
				firstErr = tr.Error
			}
			continue
		}
		prefix := ""
		if len(args) > 1 {
			prefix = tr.Path
		}
		if err := printCandidates(prefix, tr.Candidates); err != nil {
			return err
		}
	}
	return firstErr
}

func detectText(detector *detect.Detector, text string) []model.CandidateClaim {
	if detectHTML {
		return detector.DetectHTML(text)
	}
	return detector.Detect(text)
}

func printCandidates(prefix string, candidates []model.CandidateClaim) error {
	if detectJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(candidates)
	}

	if prefix != "" {
		fmt.Printf("%s:\n", prefix)
	}
	if len(candidates) == 0 {
		fmt.Println("  No checkable claims found")
		return nil
	}
	for _, c := range candidates {
		fmt.Printf("  [%-10s] %.2f  %s\n", c.Type, c.Confidence, c.Text)
	}
	return nil
}
