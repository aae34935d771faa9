// Command qa-report runs data-quality checks on a tabular healthcare
// encounter dataset and writes a cleaned copy, an outlier-flag table, and
// a structured JSON report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"ehrqa/internal/config"
	"ehrqa/internal/exporter"
	"ehrqa/internal/importer"
	"ehrqa/internal/infrastructure"
	"ehrqa/internal/qa"
	"ehrqa/internal/table"
	"ehrqa/internal/validation"
)

func main() {
	input := flag.String("input", "", "path to the input dataset (.csv or .xlsx)")
	configPath := flag.String("config", "", "optional YAML config file")
	outDir := flag.String("out", "", "output directory (defaults to config output.dir)")
	sheet := flag.String("sheet", "", "worksheet name for Excel input (defaults to first sheet)")
	ageCol := flag.String("age-col", "", "name of the age column (routed through censored-value normalization)")
	timeCol := flag.String("time-col", "", "name of the encoded time column (routed through hour-of-day derivation)")
	idCols := flag.String("id-cols", "", "comma-separated identifier columns for duplicate checks")
	outlierCols := flag.String("outlier-cols", "", "comma-separated numeric columns to check for IQR outliers")
	iqrK := flag.Float64("iqr-k", 0, "IQR multiplier (defaults to config qa.iqr_multiplier)")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "usage: qa-report -input <dataset> [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := infrastructure.NewLogger(cfg.Logging, os.Stderr)
	logger = infrastructure.WithRunID(logger, infrastructure.NewRunID())
	slog.SetDefault(logger)

	if *outDir == "" {
		*outDir = cfg.Output.Dir
	}
	if *iqrK == 0 {
		*iqrK = cfg.QA.IQRMultiplier
	}

	opts := qa.Options{
		IDColumns:      splitColumns(*idCols),
		AgeColumn:      *ageCol,
		TimeColumn:     *timeCol,
		OutlierColumns: splitColumns(*outlierCols),
		IQRMultiplier:  *iqrK,
		MissingTokens:  cfg.QA.MissingTokens,
	}

	if err := run(context.Background(), *input, *sheet, *outDir, *cfg, opts, logger); err != nil {
		logger.Error("QA run failed", "error", err)
		os.Exit(1)
	}
}

// run executes one full QA invocation: validate paths, load the dataset,
// run the pipeline, persist the outputs.
func run(ctx context.Context, input, sheet, outDir string, cfg config.Config, opts qa.Options, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateDatasetFile(input); err != nil {
		return err
	}
	if err := validator.ValidateOutputDirectory(outDir); err != nil {
		return err
	}

	tbl, err := loadTable(input, sheet, logger)
	if err != nil {
		return err
	}

	pipeline, err := qa.New(opts, logger)
	if err != nil {
		return fmt.Errorf("configure pipeline: %w", err)
	}
	report, err := pipeline.Run(ctx, tbl)
	if err != nil {
		return err
	}

	writer := exporter.NewCSVWriter(logger)
	cleanedPath := filepath.Join(outDir, cfg.Output.CleanedName)
	if err := writer.WriteTable(cleanedPath, tbl, exporter.WriteOptions{}); err != nil {
		return err
	}

	flagsPath := filepath.Join(outDir, cfg.Output.FlagsName)
	if cols := flagColumns(opts); len(cols) > 0 {
		if err := writer.WriteTable(flagsPath, tbl, exporter.WriteOptions{Columns: cols}); err != nil {
			return err
		}
	}

	reportPath := filepath.Join(outDir, cfg.Output.ReportName)
	if err := exporter.WriteReportJSON(reportPath, report, logger); err != nil {
		return err
	}

	logger.Info("QA complete",
		"cleaned", cleanedPath,
		"flags", flagsPath,
		"report", reportPath,
		"flagged_cells", report.TotalFlaggedCells,
		"parse_failures", report.TotalParseFailures)
	return nil
}

// loadTable dispatches on file extension to the matching importer.
func loadTable(path, sheet string, logger *slog.Logger) (*table.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return importer.LoadExcel(path, sheet, logger)
	default:
		return importer.LoadCSV(path, logger)
	}
}

// flagColumns lists the outlier-flag columns in binding order for the
// standalone flags table.
func flagColumns(opts qa.Options) []string {
	cols := make([]string, 0, len(opts.OutlierColumns))
	for _, name := range opts.OutlierColumns {
		cols = append(cols, name+qa.OutlierFlagSuffix)
	}
	return cols
}

// splitColumns parses a comma-separated column list, dropping empties.
func splitColumns(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var cols []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			cols = append(cols, part)
		}
	}
	return cols
}
