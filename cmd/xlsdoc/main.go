// Package main provides the xlsdoc CLI: extract tables and formulas from
// workbooks, write the JSON exchange document, and optionally persist the
// snapshot to Postgres and generate LLM documentation.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"

	"github.com/hioki-d/xlsdoc/internal/config"
	"github.com/hioki-d/xlsdoc/internal/logging"
	"github.com/hioki-d/xlsdoc/pkg/docgen"
	"github.com/hioki-d/xlsdoc/pkg/store"
	"github.com/hioki-d/xlsdoc/pkg/xlsdoc"
	"github.com/hioki-d/xlsdoc/pkg/xlsdoc/models"
	"github.com/hioki-d/xlsdoc/pkg/xlsdoc/output"
)

var (
	outputDir string
	pretty    bool
	sheetsDir string
	docsDir   string
	workers   int
	useStore  bool
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "xlsdoc [workbook.xlsx ...]",
		Short: "Extract tables and formulas from spreadsheet workbooks",
		Long: `xlsdoc walks each sheet of a workbook, detects explicit and implicit
tables, extracts cell formulas with their references, and writes the result
as JSON. The snapshot can also be stored in Postgres and documented via an
LLM.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg, args)
		},
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&outputDir, "output", "o", cfg.Output.Dir, "Directory for extraction JSON files")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().StringVar(&sheetsDir, "sheets-dir", "", "Directory for per-sheet output files")
	rootCmd.Flags().StringVar(&docsDir, "docs", "", "Directory for generated LLM documentation")
	rootCmd.Flags().IntVar(&workers, "workers", cfg.Workers, "Concurrent sheets per workbook")
	rootCmd.Flags().BoolVar(&useStore, "store", false, "Persist results to Postgres (XLSDOC_POSTGRES_DSN)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, paths []string) error {
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer log.Sync()

	var st store.Store
	if useStore {
		if cfg.Postgres.DSN == "" {
			return fmt.Errorf("--store requires XLSDOC_POSTGRES_DSN")
		}
		st, err = store.NewPostgres(ctx, cfg.Postgres.DSN)
		if err != nil {
			return err
		}
		defer st.Close()
	}

	var gen *docgen.Generator
	if docsDir != "" {
		if cfg.LLM.Key == "" {
			return fmt.Errorf("--docs requires XLSDOC_LLM_KEY")
		}
		model, err := googleai.New(ctx,
			googleai.WithAPIKey(cfg.LLM.Key),
			googleai.WithDefaultModel(cfg.LLM.Model))
		if err != nil {
			return fmt.Errorf("docgen: %w", err)
		}
		gen = docgen.New(model)
	}

	// A load failure aborts only that workbook; the run continues and the
	// exit status reports the partial failure.
	failed := 0
	for _, path := range paths {
		if err := processWorkbook(ctx, log, st, gen, path); err != nil {
			log.Error("workbook failed", zap.String("path", path), zap.Error(err))
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d workbooks failed", failed, len(paths))
	}
	return nil
}

func processWorkbook(ctx context.Context, log *zap.Logger, st store.Store, gen *docgen.Generator, path string) error {
	res, err := xlsdoc.Extract(ctx, path, xlsdoc.Options{Workers: workers})
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		log.Warn(w.Message, zap.String("kind", string(w.Kind)), zap.String("sheet", w.Sheet), zap.String("cell", w.Cell))
	}
	log.Info("extracted",
		zap.String("workbook", res.BookName),
		zap.Int("tables", res.TableCount()),
		zap.Int("formulas", res.FormulaCount()))

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	data, err := output.Marshal(res, pretty)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	outPath := filepath.Join(outputDir, stem+"_extraction.json")
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return err
	}

	if sheetsDir != "" {
		if err := writeSheetFiles(res, stem); err != nil {
			return err
		}
	}
	if st != nil {
		if err := st.Save(ctx, res); err != nil {
			return err
		}
		log.Info("stored", zap.String("workbook", res.BookName))
	}
	if gen != nil {
		doc, err := gen.Document(ctx, res)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(docsDir, 0o755); err != nil {
			return err
		}
		docPath := filepath.Join(docsDir, stem+"_documentation.txt")
		if err := os.WriteFile(docPath, []byte(doc), 0o644); err != nil {
			return err
		}
		log.Info("documented", zap.String("path", docPath))
	}
	return nil
}

func writeSheetFiles(res *models.ExtractionResult, stem string) error {
	if err := os.MkdirAll(sheetsDir, 0o755); err != nil {
		return err
	}
	for i := range res.Sheets {
		data, err := output.MarshalSheet(&res.Sheets[i], pretty)
		if err != nil {
			return err
		}
		name := fmt.Sprintf("%s_%s.json", stem, res.Sheets[i].Name)
		if err := os.WriteFile(filepath.Join(sheetsDir, name), data, 0o644); err != nil {
			return err
		}
	}
	return nil
}
