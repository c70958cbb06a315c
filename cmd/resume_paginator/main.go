// Package main provides the resume_paginator CLI: batch pagination, document
// validation, wireframe previews and the REST API server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "resume_paginator",
		Short:        "Resume pagination engine",
		Long:         "resume_paginator splits structured resume documents into fixed-size pages of height-estimated content units, for sidebar and single-column layouts.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")

	root.AddCommand(newPaginateCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newPreviewCmd())
	root.AddCommand(newServeCmd())
	return root
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
