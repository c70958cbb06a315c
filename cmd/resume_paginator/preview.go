package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-paginator/internal/preview"
	"github.com/spf13/cobra"
)

func newPreviewCmd() *cobra.Command {
	var (
		configPath string
		in         string
		out        string
		noLabels   bool
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Draw a wireframe PDF of a document's pages",
		Long: `Paginate a document and draw every content unit as a box at its estimated
height, with capacity guides per column. Use it to check packing decisions by eye.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := resolveConfig(cmd, configPath)
			if err != nil {
				return err
			}
			engine, err := cfg.NewEngine()
			if err != nil {
				return err
			}

			doc, err := readDocument(in)
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			res, err := engine.Paginate(doc)
			if err != nil {
				return err
			}

			if dir := filepath.Dir(out); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			defer f.Close()

			renderer := preview.NewRenderer(engine.Budget(), preview.Options{
				Title:      doc.PersonalInfo.Name,
				ShowLabels: !noLabels,
			})
			if err := renderer.Render(f, res); err != nil {
				return err
			}

			prog.done("wrote preview", "path", out, "pages", res.PageCount())
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	cmd.Flags().StringP("topology", "t", "", "Layout topology: sidebar or single-column")
	cmd.Flags().StringVarP(&in, "in", "i", "", "Path to a document JSON file (required)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Path to the output PDF (required)")
	cmd.Flags().BoolVar(&noLabels, "no-labels", false, "Omit unit IDs and heights from the boxes")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
