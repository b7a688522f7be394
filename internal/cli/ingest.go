package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/claimsift/claimsift/internal/detect"
	"github.com/claimsift/claimsift/internal/model"
	"github.com/claimsift/claimsift/internal/queue"
)

var (
	ingestDebate  string
	ingestSpeaker string
	ingestHTML    bool
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Detect claims in a transcript, persist them, and enqueue verification",
	Long: `The ingestion trigger: run the detector over new transcript text, persist
each surviving candidate as a PENDING claim, and enqueue exactly one
verification job per persisted claim.

A claim whose job cannot be enqueued stays PENDING and is reported; it is
never transitioned without an accepted job.

Example:
  claimsift ingest --debate 7d1c... transcript.txt
  assemblyai-dump | claimsift ingest --debate 7d1c... --speaker a412...`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVar(&ingestDebate, "debate", "", "parent debate id (required)")
	ingestCmd.Flags().StringVar(&ingestSpeaker, "speaker", "", "speaker id, if known")
	ingestCmd.Flags().BoolVar(&ingestHTML, "html", false, "strip HTML markup before detection")
	_ = ingestCmd.MarkFlagRequired("debate")
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var data []byte
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}

	detector := detect.NewDetector()
	var candidates []model.CandidateClaim
	if ingestHTML {
		candidates = detector.DetectHTML(string(data))
	} else {
		candidates = detector.Detect(string(data))
	}
	if len(candidates) == 0 {
		fmt.Println("No checkable claims found; nothing ingested")
		return nil
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	redisClient, err := queue.NewClient(cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer redisClient.Close()
	broker := queue.NewRedisQueue(redisClient, cfg.Worker)

	ctx := context.Background()
	persisted, enqueued := 0, 0
	var enqueueErr error
	for _, candidate := range candidates {
		claim := &model.Claim{
			ID:        uuid.NewString(),
			DebateID:  ingestDebate,
			SpeakerID: ingestSpeaker,
			Text:      candidate.Text,
			Timestamp: time.Now().UTC(),
			Status:    model.StatusPending,
		}
		if err := st.CreateClaim(ctx, claim); err != nil {
			return fmt.Errorf("persist claim: %w", err)
		}
		persisted++

		if err := broker.Enqueue(ctx, claim.ID); err != nil {
			// The claim stays PENDING; a later sweep or re-ingestion of the
			// pending set can enqueue it.
			fmt.Fprintf(os.Stderr, "Error: claim %s left PENDING, enqueue failed: %v\n", claim.ID, err)
			enqueueErr = err
			continue
		}
		enqueued++
	}

	fmt.Printf("Ingested %d claims (%d enqueued) for debate %s\n", persisted, enqueued, ingestDebate)
	if enqueueErr != nil {
		return fmt.Errorf("some claims could not be enqueued: %w", enqueueErr)
	}
	return nil
}
