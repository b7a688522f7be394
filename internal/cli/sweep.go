package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/claimsift/claimsift/internal/queue"
	"github.com/claimsift/claimsift/internal/verify"
)

var sweepOlderThan time.Duration

// sweepCmd represents the sweep command
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Re-enqueue claims stuck in VERIFYING",
	Long: `Reconciliation pass for claims abandoned mid-verification by a crashed
worker: any claim that has been VERIFYING longer than the threshold gets a
fresh verification job. FAILED claims are not touched.`,
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.Flags().DurationVar(&sweepOlderThan, "older-than", 0, "stale threshold (default from config)")
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	staleAfter := cfg.Worker.StaleAfter
	if sweepOlderThan > 0 {
		staleAfter = sweepOlderThan
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

	sweeper := verify.NewSweeper(st, broker, staleAfter)
	swept, err := sweeper.Sweep(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Re-enqueued %d stuck claims (VERIFYING longer than %v)\n", swept, staleAfter)
	return nil
}
