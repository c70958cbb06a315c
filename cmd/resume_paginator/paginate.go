package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/resume-paginator/internal/db"
	"github.com/jonathan/resume-paginator/internal/observability"
	"github.com/jonathan/resume-paginator/internal/pagination"
	"github.com/jonathan/resume-paginator/internal/schemas"
	"github.com/jonathan/resume-paginator/internal/types"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type paginateOptions struct {
	configPath string
	topology   string
	dbURL      string
	inputs     []string
	documents  []string
	out        string
	outDir     string
	save       bool
	jobs       int
}

// paginateJob is one document to paginate, read from a file or the database
type paginateJob struct {
	name       string
	documentID uuid.UUID
	load       func(ctx context.Context) (*types.Document, error)
}

func newPaginateCmd() *cobra.Command {
	var opts paginateOptions

	cmd := &cobra.Command{
		Use:   "paginate [document.json...]",
		Short: "Split resume documents into pages",
		Long: `Paginate one or more resume documents and write the annotated pages as JSON.

Documents are read from files (--in or positional arguments) or loaded from the
database by ID (--document). Several documents are paginated in parallel, each as
an independent run. Layout settings can be loaded from a JSON file using --config;
command-line flags override config file values.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.inputs = append(opts.inputs, args...)
			return runPaginate(cmd, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	cmd.Flags().StringVarP(&opts.topology, "topology", "t", "", "Layout topology: sidebar or single-column")
	cmd.Flags().StringVar(&opts.dbURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	cmd.Flags().StringArrayVarP(&opts.inputs, "in", "i", nil, "Path to a document JSON file (repeatable)")
	cmd.Flags().StringArrayVar(&opts.documents, "document", nil, "Stored document ID to paginate (repeatable, requires a database)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output file for a single document (default: stdout)")
	cmd.Flags().StringVar(&opts.outDir, "out-dir", "", "Output directory, one <name>.pages.json per document")
	cmd.Flags().BoolVar(&opts.save, "save", false, "Persist runs of stored documents to the database")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 4, "Maximum documents paginated in parallel")

	return cmd
}

func runPaginate(cmd *cobra.Command, opts *paginateOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := resolveConfig(cmd, opts.configPath)
	if err != nil {
		return err
	}

	total := len(opts.inputs) + len(opts.documents)
	if total == 0 {
		return fmt.Errorf("no documents given: pass files with --in or stored IDs with --document")
	}
	if total > 1 && opts.out != "" {
		return fmt.Errorf("--out takes a single document; use --out-dir for %d documents", total)
	}
	if opts.save && len(opts.documents) == 0 {
		return fmt.Errorf("--save requires at least one --document")
	}

	engine, err := cfg.NewEngine()
	if err != nil {
		return err
	}

	jobs := make([]paginateJob, 0, total)
	for _, path := range opts.inputs {
		jobs = append(jobs, fileJob(path))
	}

	var database *db.DB
	if len(opts.documents) > 0 {
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required for --document")
		}
		database, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()

		for _, raw := range opts.documents {
			id, err := uuid.Parse(raw)
			if err != nil {
				return fmt.Errorf("invalid document id %q: %w", raw, err)
			}
			jobs = append(jobs, storedJob(database, id))
		}
	}

	if opts.outDir != "" {
		if err := checkOutputNames(jobs); err != nil {
			return err
		}
	}

	prog := newProgress(logger)
	docs, results, err := paginateAll(ctx, engine, jobs, opts.jobs)
	if err != nil {
		return err
	}

	if opts.save {
		for i, job := range jobs {
			if job.documentID == uuid.Nil {
				continue
			}
			run, err := db.NewPaginationRun(job.documentID, results[i])
			if err != nil {
				return err
			}
			if err := database.SavePaginationRun(ctx, run); err != nil {
				return err
			}
			logger.Debug("saved run", "document", job.documentID, "run", run.ID)
		}
	}

	if cfg.Verbose {
		if err := printVerbose(cmd, engine, docs, results); err != nil {
			return err
		}
	}

	if err := writeResults(cmd, opts, jobs, results); err != nil {
		return err
	}

	pages := 0
	for _, res := range results {
		pages += res.PageCount()
	}
	prog.done("paginated", "documents", len(results), "pages", pages, "topology", engine.Topology())
	return nil
}

// paginateAll runs the engine over every job with at most limit jobs in flight.
// Documents and results keep the order of jobs.
func paginateAll(ctx context.Context, engine *pagination.Engine, jobs []paginateJob, limit int) ([]*types.Document, []*pagination.Result, error) {
	logger := loggerFromContext(ctx)
	docs := make([]*types.Document, len(jobs))
	results := make([]*pagination.Result, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))
	for i, job := range jobs {
		g.Go(func() error {
			doc, err := job.load(gctx)
			if err != nil {
				return fmt.Errorf("%s: %w", job.name, err)
			}
			if doc.IsEmpty() {
				logger.Debug("document has no placeable content", "name", job.name)
			}
			res, err := engine.Paginate(doc)
			if err != nil {
				return fmt.Errorf("%s: %w", job.name, err)
			}
			docs[i] = doc
			results[i] = res
			logger.Debug("paginated document", "name", job.name, "run", res.RunID, "pages", res.PageCount(), "units", res.UnitCount)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return docs, results, nil
}

// printVerbose writes the extracted units and the packed pages of each document to stderr
func printVerbose(cmd *cobra.Command, engine *pagination.Engine, docs []*types.Document, results []*pagination.Result) error {
	printer := observability.NewPrinter(cmd.ErrOrStderr())
	extractor := pagination.NewExtractor(nil, engine.Budget())
	for i, doc := range docs {
		units, err := extractor.Extract(doc, engine.Topology())
		if err != nil {
			return err
		}
		printer.PrintUnits(units)
		printer.PrintResult(results[i])
	}
	return nil
}

// checkOutputNames rejects jobs that would write the same <name>.pages.json
func checkOutputNames(jobs []paginateJob) error {
	seen := make(map[string]bool, len(jobs))
	for _, job := range jobs {
		if seen[job.name] {
			return fmt.Errorf("two inputs would both write %s.pages.json to --out-dir; rename one of them", job.name)
		}
		seen[job.name] = true
	}
	return nil
}

func fileJob(path string) paginateJob {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return paginateJob{
		name: name,
		load: func(context.Context) (*types.Document, error) {
			return readDocument(path)
		},
	}
}

func storedJob(database *db.DB, id uuid.UUID) paginateJob {
	return paginateJob{
		name:       id.String(),
		documentID: id,
		load: func(ctx context.Context) (*types.Document, error) {
			rec, err := database.GetDocument(ctx, id)
			if err != nil {
				return nil, err
			}
			return &rec.Content, nil
		},
	}
}

// readDocument reads and validates a document JSON file
func readDocument(path string) (*types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return schemas.DecodeDocument(data)
}

func writeResults(cmd *cobra.Command, opts *paginateOptions, jobs []paginateJob, results []*pagination.Result) error {
	switch {
	case opts.outDir != "":
		if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		for i, job := range jobs {
			if err := writeJSON(filepath.Join(opts.outDir, job.name+".pages.json"), results[i]); err != nil {
				return err
			}
		}
		return nil
	case opts.out != "":
		return writeJSON(opts.out, results[0])
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if len(results) == 1 {
		return enc.Encode(results[0])
	}
	return enc.Encode(results)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
