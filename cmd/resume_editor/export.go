package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/resume-editor/internal/observability"
	"github.com/jonathan/resume-editor/internal/rendering"
	"github.com/jonathan/resume-editor/internal/types"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a document to PDF, HTML, Word or plain text",
	Long: `Renders the résumé or cover letter from a documents JSON file (--in) or,
without --in, from the configured store. --all writes every format at once.`,
	RunE: runExport,
}

var (
	exportDocument string
	exportFormat   string
	exportAll      bool
	exportIn       string
	exportOut      string
)

func init() {
	exportCmd.Flags().StringVarP(&exportDocument, "document", "d", "resume", "Document to export: resume or cover_letter")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "pdf", "Export format: pdf, html, doc or txt")
	exportCmd.Flags().BoolVar(&exportAll, "all", false, "Export every format")
	exportCmd.Flags().StringVarP(&exportIn, "in", "i", "", "Path to a documents JSON file (default: configured store)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", ".", "Output directory")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	kind, err := types.ParseDocumentKind(exportDocument)
	if err != nil {
		return usageError("%v", err)
	}

	formats := rendering.Formats
	if !exportAll {
		format, err := rendering.ParseFormat(exportFormat)
		if err != nil {
			return usageError("%v", err)
		}
		formats = []rendering.Format{format}
	}

	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	docs, err := loadDocuments(ctx, exportIn, cfg, logger)
	if err != nil {
		return err
	}

	exporter := rendering.NewExporter(newRasterizer(cfg, logger), logger)
	artifacts, err := exportFormats(ctx, exporter, docs, kind, formats, rendering.Options{GeneratedAt: time.Now()})
	if err != nil {
		return err
	}
	if err := writeArtifacts(exportOut, artifacts); err != nil {
		return err
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintArtifacts(artifacts)
	return nil
}

// exportFormats renders one document in every requested format concurrently.
// Results keep the order of formats.
func exportFormats(ctx context.Context, exporter *rendering.Exporter, docs types.Documents, kind types.DocumentKind, formats []rendering.Format, opts rendering.Options) ([]*rendering.Artifact, error) {
	artifacts := make([]*rendering.Artifact, len(formats))

	g, ctx := errgroup.WithContext(ctx)
	for i, format := range formats {
		g.Go(func() error {
			artifact, err := exporter.Export(ctx, docs, kind, format, opts)
			if err != nil {
				return err
			}
			artifacts[i] = artifact
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

func writeArtifacts(dir string, artifacts []*rendering.Artifact) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, a := range artifacts {
		path := filepath.Join(dir, a.Filename)
		if err := os.WriteFile(path, a.Data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return nil
}
