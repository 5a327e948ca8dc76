package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-editor/internal/observability"
	"github.com/jonathan/resume-editor/internal/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a documents JSON file",
	Long:  "Checks a documents JSON file against the bundled schema, or against --schema when given. Exits 1 when validation fails.",
	RunE:  runValidate,
}

var (
	validateJSON   string
	validateSchema string
)

func init() {
	validateCmd.Flags().StringVar(&validateJSON, "json", "", "Path to the JSON file to validate (required)")
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Path to a JSON schema (default: bundled documents schema)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	if validateJSON == "" {
		return usageError("--json is required")
	}

	var err error
	if validateSchema != "" {
		err = schemas.ValidateJSON(validateSchema, validateJSON)
	} else {
		data, readErr := os.ReadFile(validateJSON)
		if readErr != nil {
			return fmt.Errorf("failed to read %s: %w", validateJSON, readErr)
		}
		err = schemas.ValidateDocuments(data)
	}

	out := cmd.OutOrStdout()
	observability.NewPrinter(out).PrintValidation(err)
	if err != nil {
		_, _ = fmt.Fprintln(out, "Validation failed")
		return &exitError{code: 1, err: fmt.Errorf("validation failed: %w", err)}
	}
	_, _ = fmt.Fprintln(out, "Validation passed")
	return nil
}
