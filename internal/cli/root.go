package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Fras28/NextLvlPadel-sub000/internal/factory"
	redisstorage "github.com/Fras28/NextLvlPadel-sub000/internal/storage/redis"
)

var (
	cfg *Config
	app *factory.App
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "padelctl",
		Short: "CLI client for the padel league backend",
		Long: `padelctl is a CLI client for the padel league's CMS backend.

It keeps a signed-in session across invocations (credential and cached
profile in local storage) and exposes the league's matches, rankings and
profile data.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			}))

			factoryCfg := factory.Config{
				ServerURL:   cfg.ServerURL,
				StorageType: cfg.StorageType,
				StorageDir:  cfg.StorageDir,
				Logger:      logger,
			}
			if cfg.StorageType == factory.StorageTypeRedis {
				redisCfg := redisstorage.DefaultConfig()
				if cfg.RedisURL != "" {
					redisCfg.URL = cfg.RedisURL
				}
				factoryCfg.RedisConfig = &redisCfg
			}

			var err error
			app, err = factory.New(factoryCfg)
			if err != nil {
				return err
			}

			// Restore any stored session before the command runs
			return app.Session.Bootstrap(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			// Bootstrap may have left a background profile refresh in
			// flight; let it finish writing before the process exits
			app.Session.Wait()
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Backend URL (env: PADEL_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.StorageType, "storage", cfg.StorageType, "Storage backend: file, memory, redis (env: PADEL_STORAGE)")
	rootCmd.PersistentFlags().StringVar(&cfg.StorageDir, "storage-dir", cfg.StorageDir, "Directory for file storage (env: PADEL_STORAGE_DIR)")
	rootCmd.PersistentFlags().StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL for redis storage (env: PADEL_REDIS_URL)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newRefreshCmd())
	rootCmd.AddCommand(newMatchesCmd())
	rootCmd.AddCommand(newRankingsCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
