package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/resume-editor/internal/persistence"
	"github.com/jonathan/resume-editor/internal/types"
	"github.com/spf13/cobra"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Write the bundled sample documents",
	Long:  "Writes the sample résumé and cover letter as a documents JSON file, or into the configured store with --save.",
	RunE:  runSample,
}

var (
	sampleOut  string
	sampleSave bool
)

func init() {
	sampleCmd.Flags().StringVarP(&sampleOut, "out", "o", "", "Output file (default: stdout)")
	sampleCmd.Flags().BoolVar(&sampleSave, "save", false, "Save into the configured store instead of writing JSON")
	rootCmd.AddCommand(sampleCmd)
}

func runSample(cmd *cobra.Command, _ []string) error {
	docs := types.SampleDocuments(time.Now())

	if sampleSave {
		return saveSample(cmd.Context(), docs)
	}

	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode sample: %w", err)
	}
	data = append(data, '\n')

	if sampleOut == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(sampleOut, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", sampleOut, err)
	}
	return nil
}

func saveSample(ctx context.Context, docs types.Documents) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	data, err := persistence.Encode(docs)
	if err != nil {
		return err
	}
	if err := store.Save(ctx, data); err != nil {
		return fmt.Errorf("failed to save sample: %w", err)
	}
	logger.Info("sample documents saved")
	return nil
}
