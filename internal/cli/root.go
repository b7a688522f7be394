package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/claimsift/claimsift/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "claimsift",
	Short: "Claimsift - debate claim detection and verification pipeline",
	Long: `Claimsift flags sentences in debate transcripts that look like checkable
factual claims and drives each persisted claim through an asynchronous
verification workflow against a fact-check oracle.

The detector is pure text analysis: sentence segmentation, pattern-family
classification, and near-duplicate removal. The verification side is a
queue-fed worker pool moving claims through
PENDING -> VERIFYING -> VERIFIED | FAILED.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("claimsift v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.claimsift/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(home + "/.claimsift")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("CLAIMSIFT")
	viper.AutomaticEnv()

	registerDefaults(model.DefaultConfig())

	// The oracle key and connection URLs are commonly provided through
	// their conventional environment names.
	_ = viper.BindEnv("oracle.api_key", "CLAIMSIFT_ORACLE_API_KEY", "PPLX_KEY")
	_ = viper.BindEnv("database.url", "CLAIMSIFT_DATABASE_URL", "DATABASE_URL")
	_ = viper.BindEnv("redis.url", "CLAIMSIFT_REDIS_URL", "REDIS_URL")

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}

	if verbose {
		if logger, err := zap.NewDevelopment(); err == nil {
			zap.ReplaceGlobals(logger)
		}
	}
}

// registerDefaults seeds viper so Unmarshal sees every key even when it
// only arrives through the environment.
func registerDefaults(cfg *model.Config) {
	viper.SetDefault("redis.url", cfg.Redis.URL)
	viper.SetDefault("redis.addr", cfg.Redis.Addr)
	viper.SetDefault("redis.password", cfg.Redis.Password)
	viper.SetDefault("redis.db", cfg.Redis.DB)

	viper.SetDefault("database.url", cfg.Database.URL)
	viper.SetDefault("database.max_open_conns", cfg.Database.MaxOpenConns)
	viper.SetDefault("database.max_idle_conns", cfg.Database.MaxIdleConns)
	viper.SetDefault("database.conn_max_lifetime", cfg.Database.ConnMaxLifetime)

	viper.SetDefault("oracle.api_key", cfg.Oracle.APIKey)
	viper.SetDefault("oracle.base_url", cfg.Oracle.BaseURL)
	viper.SetDefault("oracle.model", cfg.Oracle.Model)
	viper.SetDefault("oracle.max_tokens", cfg.Oracle.MaxTokens)
	viper.SetDefault("oracle.timeout", cfg.Oracle.Timeout)
	viper.SetDefault("oracle.rate_limit", cfg.Oracle.RateLimit)
	viper.SetDefault("oracle.rate_burst", cfg.Oracle.RateBurst)

	viper.SetDefault("worker.concurrency", cfg.Worker.Concurrency)
	viper.SetDefault("worker.max_attempts", cfg.Worker.MaxAttempts)
	viper.SetDefault("worker.backoff_base", cfg.Worker.BackoffBase)
	viper.SetDefault("worker.poll_timeout", cfg.Worker.PollTimeout)
	viper.SetDefault("worker.stale_after", cfg.Worker.StaleAfter)

	viper.SetDefault("cache.enabled", cfg.Cache.Enabled)
	viper.SetDefault("cache.ttl", cfg.Cache.TTL)
	viper.SetDefault("cache.cleanup_interval", cfg.Cache.CleanupInterval)
}
