package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/claimsift/claimsift/internal/cache"
	"github.com/claimsift/claimsift/internal/notify"
	"github.com/claimsift/claimsift/internal/oracle"
	"github.com/claimsift/claimsift/internal/queue"
	"github.com/claimsift/claimsift/internal/verify"
)

var workerConcurrency int

// workerCmd represents the worker command
var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the verification worker pool",
	Long: `Consume verification jobs and drive claims through the state machine:
load the claim, mark it VERIFYING, fact-check it against the oracle,
persist the verdict, and mark it VERIFIED. Transport and persistence
failures surface to the queue, which redelivers with exponential backoff
up to the attempt cap.

Without an oracle API key the worker runs in degraded mode and marks
claims VERIFIED without fact-checking them.

Runs until interrupted; claims stuck in VERIFYING by a crashed worker are
periodically re-enqueued.`,
	RunE: runWorker,
}

func init() {
	rootCmd.AddCommand(workerCmd)

	workerCmd.Flags().IntVar(&workerConcurrency, "concurrency", 0, "worker count (default from config)")
}

func runWorker(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if workerConcurrency > 0 {
		cfg.Worker.Concurrency = workerConcurrency
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	var client oracle.Client
	if cfg.Oracle.APIKey == "" {
		fmt.Fprintln(os.Stderr, "No oracle API key configured; running in degraded mode (claims verified without fact-check)")
	} else {
		pplx, err := oracle.NewPerplexityClient(cfg.Oracle)
		if err != nil {
			return err
		}
		client = pplx
	}

	var verdicts *cache.VerdictCache
	if cfg.Cache.Enabled {
		verdicts = cache.NewVerdictCache(
			cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval), cfg.Cache.TTL)
	}

	notifier := notify.NewRedisNotifier(redisClient, "")
	proc := verify.NewProcessor(st, client, verdicts, notifier)
	runner := verify.NewRunner(broker, proc, cfg.Worker.Concurrency, cfg.Worker.PollTimeout)

	if cfg.Worker.StaleAfter > 0 {
		sweeper := verify.NewSweeper(st, broker, cfg.Worker.StaleAfter)
		go runPeriodicSweep(ctx, sweeper, cfg.Worker.StaleAfter)
	}

	fmt.Fprintf(os.Stderr, "Verification worker running (%d workers), Ctrl-C to stop\n", cfg.Worker.Concurrency)
	return runner.Run(ctx)
}

// runPeriodicSweep re-enqueues stuck VERIFYING claims on an interval
func runPeriodicSweep(ctx context.Context, sweeper *verify.Sweeper, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := sweeper.Sweep(ctx); err != nil {
				zap.S().Errorw("periodic sweep failed", "error", err)
			}
		}
	}
}
