// file: internals/cli/root.go
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"examku_backend/internals/configs"
	database "examku_backend/internals/databases"
	"examku_backend/internals/helpers/dbtime"
)

var (
	logLevel string

	cfg    configs.AppConfig
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "examku",
	Short: "examku - exam enrollment, results and hall tickets backend",
	Long: `examku serves the school exam operator API: per-exam student status,
statistics, bulk enrollment/notification/hall-ticket actions and result entry.

Run without a subcommand to start the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		source := configs.LoadEnv()

		var err error
		cfg, err = configs.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		logger, err = configs.NewLogger(cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		zap.ReplaceGlobals(logger)

		if err := dbtime.SetDefaultTimezone(cfg.SchoolTimezone); err != nil {
			return err
		}
		logger.Debug("config loaded", zap.String("env_source", source), zap.String("environment", cfg.Environment))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override LOG_LEVEL (debug|info|warn|error)")
	rootCmd.AddCommand(serveCmd, migrateCmd, statsCmd, seedCmd)
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openDB connects, tunes the pool and warms the connection up.
func openDB() (*gorm.DB, error) {
	db, err := database.ConnectDB(cfg.DB, logger)
	if err != nil {
		return nil, err
	}
	if err := database.TunePool(db, cfg.DB); err != nil {
		return nil, err
	}
	database.WarmUp(db, logger)
	return db, nil
}
