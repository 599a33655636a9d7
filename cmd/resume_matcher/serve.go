package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/resume-matcher/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes scoring, ranking and application status endpoints.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runServe(cmd.Context())
	},
}

var serveMigrate bool

func init() {
	serveCmd.Flags().Int("port", 0, "Port to listen on (default 8080)")
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Apply pending migrations before serving")
	_ = settings.BindPFlag("port", serveCmd.Flags().Lookup("port"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting the resume matcher", zap.String("version", version))

	database, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	if serveMigrate {
		applied, err := database.Migrate(ctx)
		if err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
		log.Info("migrations applied", zap.Int64s("versions", applied))
	}

	scoreCache := openCache(ctx, cfg, log)
	if scoreCache != nil {
		defer func() { _ = scoreCache.Close() }()
	}

	srvCfg := server.Config{
		Port:     cfg.Port,
		Workers:  cfg.Workers,
		CacheTTL: cfg.CacheTTL,
		Logger:   log,
	}
	if scoreCache != nil {
		srvCfg.Cache = scoreCache
	}

	return server.New(database, srvCfg).Start(ctx)
}
