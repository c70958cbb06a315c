package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-paginator/internal/schemas"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	var (
		in         string
		pages      string
		schemaPath string
		jsonPath   string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate documents and pagination output against JSON Schemas",
		Long: `Validate a resume document (--in) against the built-in document schema and
field rules, a pagination result (--pages) against the built-in pages schema, or
any JSON file against a custom schema (--schema with --json).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			var target string
			var err error
			switch {
			case in != "":
				target = in
				_, err = readDocument(in)
			case pages != "":
				target = pages
				var data []byte
				if data, err = os.ReadFile(pages); err == nil {
					err = schemas.ValidatePages(data)
				}
			case schemaPath != "" && jsonPath != "":
				target = jsonPath
				err = schemas.ValidateJSON(schemaPath, jsonPath)
			default:
				return fmt.Errorf("pass --in, --pages, or both --schema and --json")
			}

			if err != nil {
				_, _ = fmt.Fprintf(out, "Validation failed: %s\n", target)
				return err
			}
			_, _ = fmt.Fprintf(out, "Validation passed: %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", "", "Path to a document JSON file")
	cmd.Flags().StringVar(&pages, "pages", "", "Path to a pagination result JSON file")
	cmd.Flags().StringVar(&schemaPath, "schema", "", "Path to a custom JSON Schema file")
	cmd.Flags().StringVar(&jsonPath, "json", "", "Path to the JSON file checked against --schema")
	cmd.MarkFlagsMutuallyExclusive("in", "pages", "schema")
	cmd.MarkFlagsRequiredTogether("schema", "json")

	return cmd
}
