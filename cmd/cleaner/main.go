package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/404Health/universal-dataCleaner/internal/cleaning"
	"github.com/404Health/universal-dataCleaner/internal/config"
	"github.com/404Health/universal-dataCleaner/internal/dataset"
	"github.com/404Health/universal-dataCleaner/internal/files"
	"github.com/404Health/universal-dataCleaner/internal/infrastructure"
)

// batchWorkers bounds concurrent file cleaning in batch mode.
const batchWorkers = 4

func main() {
	inDir := flag.String("in", "", "input directory of .csv/.xlsx/.xls files (default from config)")
	outDir := flag.String("out", "", "output directory for cleaned CSV files (default from config)")
	strategy := flag.String("strategy", "", "missing value strategy: delete, zero_missing, mean_or_mode, forward_fill, backward_fill")
	outliers := flag.Bool("outliers", true, "apply outlier treatment")
	method := flag.String("method", "", "outlier detection method: zscore or iqr")
	threshold := flag.Float64("threshold", 0, "z-score threshold for outliers")
	replacement := flag.String("replacement", "", "outlier replacement: median or mean")
	categorical := flag.String("categorical", "", "comma-separated categorical column names")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if _, err := infrastructure.InitializeLogger(cfg.Logging); err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}

	opts := optionsFromConfig(cfg.Cleaning)
	if *strategy != "" {
		opts.FillStrategy = cleaning.FillStrategy(*strategy)
	}
	opts.ApplyOutliers = *outliers
	if *method != "" {
		opts.OutlierMethod = cleaning.OutlierMethod(*method)
	}
	if *threshold > 0 {
		opts.OutlierThreshold = *threshold
	}
	if *replacement != "" {
		opts.OutlierReplacement = cleaning.Replacement(*replacement)
	}
	if *categorical != "" {
		for _, name := range strings.Split(*categorical, ",") {
			if name = strings.TrimSpace(name); name != "" {
				opts.CategoricalColumns = append(opts.CategoricalColumns, name)
			}
		}
	}
	if err := opts.Validate(); err != nil {
		slog.Error("Invalid cleaning options", "error", err)
		os.Exit(1)
	}

	input := cfg.Paths.InputDir
	if *inDir != "" {
		input = *inDir
	}
	output := cfg.Paths.OutputDir
	if *outDir != "" {
		output = *outDir
	}

	if err := run(context.Background(), input, output, opts); err != nil {
		slog.Error("Batch cleaning failed", "error", err)
		os.Exit(1)
	}
}

func optionsFromConfig(cfg config.CleaningConfig) cleaning.Options {
	return cleaning.Options{
		FillStrategy:       cleaning.FillStrategy(cfg.FillStrategy),
		ApplyOutliers:      cfg.ApplyOutliers,
		OutlierMethod:      cleaning.OutlierMethod(cfg.OutlierMethod),
		OutlierThreshold:   cfg.OutlierThreshold,
		OutlierReplacement: cleaning.Replacement(cfg.OutlierReplacement),
	}
}

// run cleans every supported file in the input directory, writing
// cleaned CSVs to the output directory. Files are processed
// concurrently; one failing file aborts the batch.
func run(ctx context.Context, inDir, outDir string, opts cleaning.Options) error {
	discovery := files.NewDiscovery(".")
	inputs, err := discovery.FindDataFiles(inDir)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no data files found in %s: add some CSV or Excel files", inDir)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchWorkers)
	for _, file := range inputs {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			return cleanFile(file, outDir, opts)
		})
	}
	return g.Wait()
}

func cleanFile(file files.FileInfo, outDir string, opts cleaning.Options) error {
	data, err := os.ReadFile(file.Path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", file.Path, err)
	}

	table, err := dataset.Load(file.Name, data)
	if err != nil {
		return err
	}

	cleaned, report, err := cleaning.Clean(table, opts)
	if err != nil {
		return fmt.Errorf("cleaning %s: %w", file.Name, err)
	}

	out, err := dataset.WriteCSV(cleaned, dataset.WriteOptions{BOMPrefix: true})
	if err != nil {
		return fmt.Errorf("serializing %s: %w", file.Name, err)
	}

	outPath := filepath.Join(outDir, dataset.CleanedFileName(file.Name, "csv"))
	if err := os.WriteFile(outPath, out, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	printReport(file.Name, outPath, report)
	return nil
}

// printReport writes the step log for one file to stdout.
func printReport(name, outPath string, report *cleaning.Report) {
	fmt.Printf("\n%s -> %s\n", name, outPath)
	for i, step := range report.Steps {
		fmt.Printf("  %2d. %s\n", i+1, step)
	}
	for _, action := range report.Actions {
		fmt.Printf("      %s: %s\n", action.Column, action.Action)
	}
}
