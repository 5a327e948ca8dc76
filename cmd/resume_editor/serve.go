package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/resume-editor/internal/config"
	"github.com/jonathan/resume-editor/internal/editing"
	"github.com/jonathan/resume-editor/internal/persistence"
	"github.com/jonathan/resume-editor/internal/rendering"
	"github.com/jonathan/resume-editor/internal/server"
	"github.com/jonathan/resume-editor/internal/server/ratelimit"
	"github.com/jonathan/resume-editor/internal/types"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the editing API server",
	Long: `Start an HTTP server for section editing and exports. Saved documents are
restored from the configured store on start and every commit is saved after a
short debounce; a pending save is written before the server exits.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config; default 8080)")
	rootCmd.AddCommand(serveCmd)
}

// newRasterizer builds the PDF backend. Tests replace it.
var newRasterizer = func(cfg config.Config, logger logrus.FieldLogger) rendering.Rasterizer {
	return rendering.NewChromeRasterizer(cfg.ChromePath, cfg.ExportTimeout(), logger)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer closeStore()

	workspace := editing.NewWorkspace(types.SampleDocuments(time.Now()), logger)
	adapter := persistence.NewAdapter(store, cfg.SaveDebounce(), logger)
	adapter.Hydrate(ctx, workspace)
	adapter.Watch(workspace.Controller())

	srv, err := server.New(server.Config{
		Port:      cfg.Port,
		Workspace: workspace,
		Exporter:  rendering.NewExporter(newRasterizer(cfg, logger), logger),
		Adapter:   adapter,
		RateLimit: ratelimit.LoadConfig(),
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}
