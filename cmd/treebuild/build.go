// The build command: workbook in, catalog out.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"greentree/internal/builder"
	"greentree/internal/config"
	"greentree/internal/storage"
)

const rejectedFileName = "rejected-rows.json"

var (
	inputPath string
	outDir    string
	publish   bool
)

func init() {
	buildCmd.Flags().StringVarP(&inputPath, "input", "i", "", "inventory workbook (xlsx)")
	buildCmd.Flags().StringVarP(&outDir, "out", "o", "data", "output directory for catalog and audit files")
	buildCmd.Flags().BoolVar(&publish, "publish", false, "upload the built files to object storage")
	_ = buildCmd.MarkFlagRequired("input")
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the tree catalog from an inventory workbook",
	Long: `Build reads every sheet of the inventory workbook, normalizes the rows
into catalog entries, and writes the catalog file plus one raw audit file
per sheet. Rows dropped for data defects are listed in ` + rejectedFileName + `.`,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	mapping, err := loadMapping(configFile)
	if err != nil {
		return err
	}

	wb, err := builder.ReadWorkbook(inputPath)
	if err != nil {
		return fmt.Errorf("read workbook %s: %w", inputPath, err)
	}

	result := builder.Build(wb, mapping)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", outDir, err)
	}

	catalogPath, err := builder.WriteCatalog(outDir, result.Trees)
	if err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}

	auditPaths := make([]string, 0, len(wb.Sheets))
	for _, sheet := range wb.Sheets {
		path, err := builder.WriteAudit(outDir, sheet)
		if err != nil {
			return fmt.Errorf("write audit for sheet %q: %w", sheet.Name, err)
		}
		auditPaths = append(auditPaths, path)
		slog.Info("audit written", "sheet", sheet.Name, "rows", len(sheet.Rows), "path", path)
	}

	rejectedPath, err := writeRejected(outDir, result.Rejected)
	if err != nil {
		return fmt.Errorf("write rejected report: %w", err)
	}

	logSummary(result, len(wb.Sheets), catalogPath)

	if publish {
		if err := publishFiles(cmd.Context(), append([]string{catalogPath, rejectedPath}, auditPaths...)); err != nil {
			return fmt.Errorf("publish: %w", err)
		}
	}

	return nil
}

// logSummary reports what the build produced: totals, the price range,
// and per-category variety counts.
func logSummary(result *builder.Result, sheets int, catalogPath string) {
	units := 0
	priceMin, priceMax := math.Inf(1), 0.0
	categories := make(map[string]int)
	for _, t := range result.Trees {
		units += t.QuantityInStock
		if t.Price < priceMin {
			priceMin = t.Price
		}
		if t.Price > priceMax {
			priceMax = t.Price
		}
		categories[t.Category]++
	}
	if len(result.Trees) == 0 {
		priceMin = 0
	}

	slog.Info("catalog built",
		"varieties", len(result.Trees),
		"units", units,
		"priceMin", priceMin,
		"priceMax", priceMax,
		"sheets", sheets,
		"rejected", len(result.Rejected),
		"path", catalogPath)
	for category, n := range categories {
		slog.Info("category", "name", category, "varieties", n)
	}
}

// writeRejected persists the rejected-row report next to the catalog. The
// file is written even when empty so a clean build is distinguishable from
// a build that never produced a report.
func writeRejected(dir string, rejected []builder.RejectedRow) (string, error) {
	if rejected == nil {
		rejected = []builder.RejectedRow{}
	}

	data, err := json.MarshalIndent(rejected, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal rejected rows: %w", err)
	}

	path := filepath.Join(dir, rejectedFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// publishFiles uploads the build outputs to the configured bucket under a
// date-stamped prefix, so successive builds stay retrievable.
func publishFiles(ctx context.Context, paths []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	client, err := storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket)
	if err != nil {
		return fmt.Errorf("connect storage: %w", err)
	}
	if client == nil {
		return fmt.Errorf("storage not configured: set S3_ENDPOINT, S3_ACCESS_KEY and S3_SECRET_KEY")
	}

	prefix := "builds/" + time.Now().UTC().Format("2006-01-02")
	for _, path := range paths {
		if err := client.PublishFile(ctx, prefix, path); err != nil {
			return err
		}
		slog.Info("published", "path", path, "key", prefix+"/"+filepath.Base(path))
	}
	return nil
}
