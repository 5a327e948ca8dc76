package main

import (
	"context"

	"github.com/jonathan/resume-editor/internal/observability"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Summarize the saved documents",
	Long:  "Prints which sections of the saved résumé and cover letter have content.",
	RunE:  runShow,
}

var showIn string

func init() {
	showCmd.Flags().StringVarP(&showIn, "in", "i", "", "Path to a documents JSON file (default: configured store)")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	docs, err := loadDocuments(ctx, showIn, cfg, logger)
	if err != nil {
		return err
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintDocuments(docs)
	return nil
}
