// file: internals/cli/serve.go
package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	database "examku_backend/internals/databases"
	examRoutes "examku_backend/internals/features/exams/route"
	routes "examku_backend/internals/route"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server and the exam reminder scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDB()
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	module, err := examRoutes.NewModule(db, cfg, logger)
	if err != nil {
		return err
	}

	app := routes.NewApp(cfg, logger)
	routes.SetupRoutes(app, db, module, cfg, logger)

	if err := module.Reminder.Start(); err != nil {
		return err
	}
	defer module.Reminder.Stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", "0.0.0.0:"+cfg.Port))
		errCh <- app.Listen("0.0.0.0:" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}
